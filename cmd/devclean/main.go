// Package main is the entry point for the devclean CLI.
package main

import (
	"github.com/joho/godotenv"

	"github.com/theayoodukoya/devclean-ai/internal/app"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	// Pick up GEMINI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	app.SetVersion(version)
	app.Execute()
}

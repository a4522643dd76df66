package store

import "time"

// Scan is one recorded scan snapshot.
type Scan struct {
	ID            int64
	TakenAt       time.Time
	Root          string
	ScanAll       bool
	IncludeCaches bool
	ProjectCount  int
	TotalBytes    int64
	Version       string
}

// ProjectRisk is one project's assessment within a scan snapshot.
type ProjectRisk struct {
	ID               int64
	ScanID           int64
	Path             string
	Name             string
	Score            int
	Class            string
	Source           string
	SizeBytes        int64
	LastModifiedDays int
}

// Deletion is the audit row for one executed plan item.
type Deletion struct {
	ID          int64
	ExecutedAt  time.Time
	Path        string
	SizeBytes   int64
	Action      string
	Status      string
	Destination string
}

// Feedback is an operator keep/burn vote on an assessment.
type Feedback struct {
	ID        int64
	CreatedAt time.Time
	Path      string
	Name      string
	Score     int
	Class     string
	Vote      string
}

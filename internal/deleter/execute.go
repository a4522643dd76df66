package deleter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Execute processes a plan item by item. Items are independent: a failure
// on one records error:<reason> on that item and the batch continues. With
// DryRun set the filesystem is never touched and every status stays
// planned.
func Execute(plan []Item, opts Options) (Result, error) {
	result := Result{Items: make([]Item, len(plan))}
	copy(result.Items, plan)

	if opts.DryRun {
		return result, nil
	}

	var quarantineRoot string
	if opts.Quarantine {
		root, err := ensureQuarantineDir(opts.QuarantineDir)
		if err != nil {
			return result, fmt.Errorf("preparing quarantine dir: %w", err)
		}
		quarantineRoot = root
	}

	for i := range result.Items {
		item := &result.Items[i]

		if _, err := os.Stat(item.Path); err != nil {
			item.Status = errorStatus("vanished")
			continue
		}

		if opts.Quarantine {
			destination, err := quarantineMove(quarantineRoot, item.Path)
			if err != nil {
				item.Status = errorStatus(err.Error())
				continue
			}
			item.Status = StatusMoved
			item.Destination = destination
		} else {
			if err := os.RemoveAll(item.Path); err != nil {
				item.Status = errorStatus(err.Error())
				continue
			}
			item.Status = StatusDeleted
		}

		result.RemovedCount++
		result.ReclaimedBytes += item.SizeBytes
	}

	return result, nil
}

// errorStatus formats a terminal failure status.
func errorStatus(reason string) string {
	return "error:" + reason
}

// quarantineMove renames target into the holding area under a unique,
// timestamped name. A rename across devices fails and is reported on the
// item rather than falling back to a copy.
func quarantineMove(root, target string) (string, error) {
	name := filepath.Base(target)
	if name == "" || name == string(filepath.Separator) {
		name = "item"
	}
	stamp := time.Now().Unix()

	destination := filepath.Join(root, fmt.Sprintf("%d_%s", stamp, name))
	for counter := 1; ; counter++ {
		if _, err := os.Stat(destination); os.IsNotExist(err) {
			break
		}
		destination = filepath.Join(root, fmt.Sprintf("%d_%s_%d", stamp, name, counter))
	}

	if err := os.Rename(target, destination); err != nil {
		return "", err
	}
	return destination, nil
}

// Restore moves a quarantined item back to its original path. It refuses to
// overwrite anything that reappeared at the original location.
func Restore(item Item) error {
	if item.Status != StatusMoved || item.Destination == "" {
		return fmt.Errorf("item %s was not quarantined", item.Path)
	}
	if _, err := os.Stat(item.Path); err == nil {
		return fmt.Errorf("restore target %s already exists", item.Path)
	}
	if err := os.MkdirAll(filepath.Dir(item.Path), 0o755); err != nil {
		return fmt.Errorf("recreating parent dir: %w", err)
	}
	if err := os.Rename(item.Destination, item.Path); err != nil {
		return fmt.Errorf("restoring %s: %w", item.Path, err)
	}
	return nil
}

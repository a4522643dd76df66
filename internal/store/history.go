package store

import (
	"database/sql"
	"path/filepath"
	"time"
)

// CreateScan inserts a scan snapshot and returns its ID.
func (db *DB) CreateScan(s *Scan) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO scans (taken_at, root, scan_all, include_caches, project_count, total_bytes, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), s.Root, s.ScanAll, s.IncludeCaches,
		s.ProjectCount, s.TotalBytes, s.Version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertProjectRisk inserts one project's assessment for a scan snapshot.
func (db *DB) InsertProjectRisk(pr *ProjectRisk) error {
	_, err := db.conn.Exec(
		`INSERT INTO project_risks
		(scan_id, path, name, score, class, source, size_bytes, last_modified_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pr.ScanID, pr.Path, pr.Name, pr.Score, pr.Class, pr.Source,
		pr.SizeBytes, pr.LastModifiedDays,
	)
	return err
}

// InsertDeletion records the outcome of one executed plan item.
func (db *DB) InsertDeletion(d *Deletion) error {
	var destination any
	if d.Destination != "" {
		destination = d.Destination
	}
	_, err := db.conn.Exec(
		`INSERT INTO deletions (executed_at, path, size_bytes, action, status, destination)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), d.Path, d.SizeBytes, d.Action,
		d.Status, destination,
	)
	return err
}

// InsertFeedback records an operator vote on an assessment.
func (db *DB) InsertFeedback(f *Feedback) error {
	_, err := db.conn.Exec(
		`INSERT INTO feedback (created_at, path, name, score, class, vote)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), f.Path, f.Name, f.Score, f.Class, f.Vote,
	)
	return err
}

// GetRecentScans returns the most recent scan snapshots, newest first.
func (db *DB) GetRecentScans(limit int) ([]Scan, error) {
	rows, err := db.conn.Query(
		`SELECT id, taken_at, root, scan_all, include_caches, project_count, total_bytes, version
		 FROM scans ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scans []Scan
	for rows.Next() {
		var s Scan
		var takenAt string
		if err := rows.Scan(&s.ID, &takenAt, &s.Root, &s.ScanAll, &s.IncludeCaches,
			&s.ProjectCount, &s.TotalBytes, &s.Version); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// GetProjectRisks returns all project assessments for a scan snapshot.
func (db *DB) GetProjectRisks(scanID int64) ([]ProjectRisk, error) {
	rows, err := db.conn.Query(
		`SELECT id, scan_id, path, name, score, class, source, size_bytes, last_modified_days
		 FROM project_risks WHERE scan_id = ?`, scanID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var risks []ProjectRisk
	for rows.Next() {
		var pr ProjectRisk
		if err := rows.Scan(&pr.ID, &pr.ScanID, &pr.Path, &pr.Name, &pr.Score,
			&pr.Class, &pr.Source, &pr.SizeBytes, &pr.LastModifiedDays); err != nil {
			return nil, err
		}
		risks = append(risks, pr)
	}
	return risks, rows.Err()
}

// GetRecentDeletions returns the most recent deletion audit rows, newest
// first.
func (db *DB) GetRecentDeletions(limit int) ([]Deletion, error) {
	rows, err := db.conn.Query(
		`SELECT id, executed_at, path, size_bytes, action, status, destination
		 FROM deletions ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanDeletions(rows)
}

// FindDeletionByDestination looks up the newest moved item whose quarantine
// destination basename equals name exactly. Holding-area names may contain
// characters LIKE treats as wildcards, so the comparison happens here, not
// in SQL.
func (db *DB) FindDeletionByDestination(name string) (*Deletion, error) {
	rows, err := db.conn.Query(
		`SELECT id, executed_at, path, size_bytes, action, status, destination
		 FROM deletions WHERE status = ? ORDER BY id DESC`,
		"moved",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	deletions, err := scanDeletions(rows)
	if err != nil {
		return nil, err
	}
	for i := range deletions {
		if filepath.Base(deletions[i].Destination) == name {
			return &deletions[i], nil
		}
	}
	return nil, nil
}

func scanDeletions(rows *sql.Rows) ([]Deletion, error) {
	var deletions []Deletion
	for rows.Next() {
		var d Deletion
		var executedAt string
		var destination sql.NullString
		if err := rows.Scan(&d.ID, &executedAt, &d.Path, &d.SizeBytes,
			&d.Action, &d.Status, &destination); err != nil {
			return nil, err
		}
		d.ExecutedAt, _ = time.Parse(time.RFC3339, executedAt)
		d.Destination = destination.String
		deletions = append(deletions, d)
	}
	return deletions, rows.Err()
}

// ListFeedback returns all feedback rows, newest first.
func (db *DB) ListFeedback() ([]Feedback, error) {
	rows, err := db.conn.Query(
		`SELECT id, created_at, path, name, score, class, vote
		 FROM feedback ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var feedback []Feedback
	for rows.Next() {
		var f Feedback
		var createdAt string
		if err := rows.Scan(&f.ID, &createdAt, &f.Path, &f.Name, &f.Score, &f.Class, &f.Vote); err != nil {
			return nil, err
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

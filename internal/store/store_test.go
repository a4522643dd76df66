package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestScanRoundTrip(t *testing.T) {
	db := newTestDB(t)

	scanID, err := db.CreateScan(&Scan{
		Root:         "/home/dev/projects",
		ScanAll:      false,
		ProjectCount: 2,
		TotalBytes:   1 << 30,
		Version:      "1.0.0",
	})
	require.NoError(t, err)
	require.Positive(t, scanID)

	require.NoError(t, db.InsertProjectRisk(&ProjectRisk{
		ScanID: scanID, Path: "/home/dev/projects/api", Name: "api",
		Score: 9, Class: "Critical", Source: "combined",
		SizeBytes: 512 << 20, LastModifiedDays: 3,
	}))
	require.NoError(t, db.InsertProjectRisk(&ProjectRisk{
		ScanID: scanID, Path: "/home/dev/projects/todo-tutorial", Name: "todo-tutorial",
		Score: 1, Class: "Burner", Source: "heuristic",
		SizeBytes: 200 << 20, LastModifiedDays: 250,
	}))

	scans, err := db.GetRecentScans(10)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	require.Equal(t, "/home/dev/projects", scans[0].Root)
	require.Equal(t, 2, scans[0].ProjectCount)
	require.False(t, scans[0].TakenAt.IsZero())

	risks, err := db.GetProjectRisks(scanID)
	require.NoError(t, err)
	require.Len(t, risks, 2)
	require.Equal(t, "Critical", risks[0].Class)
	require.Equal(t, 250, risks[1].LastModifiedDays)

	empty, err := db.GetProjectRisks(scanID + 1)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDeletionRoundTrip(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/home/dev/projects/old", SizeBytes: 100,
		Action: "project root", Status: "deleted",
	}))
	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/home/dev/projects/held", SizeBytes: 200,
		Action: "project root", Status: "moved",
		Destination: "/home/dev/.config/devclean/quarantine/1756400000_held",
	}))

	deletions, err := db.GetRecentDeletions(10)
	require.NoError(t, err)
	require.Len(t, deletions, 2)
	// Newest first.
	require.Equal(t, "/home/dev/projects/held", deletions[0].Path)
	require.Equal(t, "moved", deletions[0].Status)
	require.Equal(t, "", deletions[1].Destination)
}

func TestFindDeletionByDestination(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/p/a", Action: "project root", Status: "moved",
		Destination: "/q/1756400000_a",
	}))
	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/p/b", Action: "project root", Status: "deleted",
	}))

	found, err := db.FindDeletionByDestination("1756400000_a")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "/p/a", found.Path)

	missing, err := db.FindDeletionByDestination("1756400000_b")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestFindDeletionByDestination_ExactNameOnly(t *testing.T) {
	db := newTestDB(t)

	// Entry names legally contain % and _; neither may act as a wildcard,
	// and a longer name must not match on a shared suffix.
	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/p/pct", Action: "project root", Status: "moved",
		Destination: "/q/175_a%b",
	}))
	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/p/plain", Action: "project root", Status: "moved",
		Destination: "/q/175_aXXb",
	}))
	require.NoError(t, db.InsertDeletion(&Deletion{
		Path: "/p/long", Action: "project root", Status: "moved",
		Destination: "/q/extra-175_a%b",
	}))

	found, err := db.FindDeletionByDestination("175_a%b")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "/p/pct", found.Path)

	found, err = db.FindDeletionByDestination("175_aXb")
	require.NoError(t, err)
	require.Nil(t, found, "underscore must not match an arbitrary character")
}

func TestFeedbackRoundTrip(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.InsertFeedback(&Feedback{
		Path: "/p/a", Name: "a", Score: 2, Class: "Burner", Vote: "burn",
	}))
	require.NoError(t, db.InsertFeedback(&Feedback{
		Path: "/p/b", Name: "b", Score: 8, Class: "Critical", Vote: "keep",
	}))

	feedback, err := db.ListFeedback()
	require.NoError(t, err)
	require.Len(t, feedback, 2)
	require.Equal(t, "keep", feedback[0].Vote)
	require.Equal(t, "burn", feedback[1].Vote)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

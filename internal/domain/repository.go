package domain

// MirrorRepository defines the interface for mirror run persistence
type MirrorRepository interface {
	// CreateRun creates a new mirror run
	CreateRun(run *MirrorRun) error

	// UpdateRun updates an existing mirror run
	UpdateRun(run *MirrorRun) error

	// FindRunByID finds a mirror run by ID
	FindRunByID(id string) (*MirrorRun, error)

	// FindRuns finds all runs with optional filters, newest first
	FindRuns(filters map[string]interface{}) ([]*MirrorRun, error)

	// CreateDigests records the file digests produced by a run
	CreateDigests(digests []*FileDigest) error

	// FindDigestsByRun finds all file digests recorded for a run
	FindDigestsByRun(runID string) ([]*FileDigest, error)

	// CountRuns returns the total number of runs
	CountRuns() (int64, error)

	// GetStats returns aggregate run statistics
	GetStats() (*MirrorStats, error)
}

// MirrorStats represents aggregate statistics over all mirror runs
type MirrorStats struct {
	Total     int64 `json:"total"`
	Queued    int64 `json:"queued"`
	Running   int64 `json:"running"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Files     int64 `json:"files"`
}

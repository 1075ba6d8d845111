package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/repomirror-go/internal/domain"
	"github.com/yourusername/repomirror-go/pkg/checksum"
)

// MirrorManager orchestrates mirror runs: enumerate the source tree, fetch
// every file under the concurrency cap, digest the resulting local tree,
// and record the outcome.
type MirrorManager struct {
	repo    domain.MirrorRepository
	source  domain.FileSource
	fetcher domain.Fetcher
	config  *domain.MirrorConfig
	logger  *zap.Logger
}

// NewMirrorManager creates a new mirror manager
func NewMirrorManager(
	repo domain.MirrorRepository,
	source domain.FileSource,
	fetcher domain.Fetcher,
	config *domain.MirrorConfig,
	logger *zap.Logger,
) *MirrorManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirrorManager{
		repo:    repo,
		source:  source,
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

// Run executes one mirror run synchronously and returns the run record with
// the digests of every file present in the destination tree afterwards.
// The first fetch error fails the whole run; files already written stay on
// disk, no cleanup is attempted.
func (m *MirrorManager) Run(ctx context.Context) (*domain.MirrorRun, []*domain.FileDigest, error) {
	run := domain.NewMirrorRun(m.config.RepoURL, m.config.BaseURL)
	if err := m.repo.CreateRun(run); err != nil {
		return nil, nil, fmt.Errorf("failed to create run: %w", err)
	}

	digests, err := m.execute(ctx, run)
	if err != nil {
		run.MarkFailed(err)
		if updateErr := m.repo.UpdateRun(run); updateErr != nil {
			m.logger.Error("Failed to update run status", zap.Error(updateErr))
		}
		m.logger.Error("Mirror run failed",
			zap.String("id", run.ID),
			zap.Error(err))
		return run, nil, err
	}

	run.MarkCompleted(len(digests))
	if err := m.repo.UpdateRun(run); err != nil {
		m.logger.Error("Failed to update run status", zap.Error(err))
	}

	m.logger.Info("Mirror run completed",
		zap.String("id", run.ID),
		zap.Int("files", len(digests)))

	return run, digests, nil
}

// StartRun launches a mirror run in the background and immediately returns a
// snapshot of its record. The run's progress is observable through the
// repository.
func (m *MirrorManager) StartRun(ctx context.Context) (*domain.MirrorRun, error) {
	run := domain.NewMirrorRun(m.config.RepoURL, m.config.BaseURL)
	if err := m.repo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	// The goroutine owns the live record from here on; hand the caller a
	// snapshot so it can be read or encoded without racing the run.
	// Progress is observable through the repository.
	snapshot := *run

	// The run outlives the caller (e.g. an HTTP request), so detach it
	// from the caller's cancellation.
	runCtx := context.WithoutCancel(ctx)

	go func() {
		digests, err := m.execute(runCtx, run)
		if err != nil {
			run.MarkFailed(err)
			m.logger.Error("Mirror run failed",
				zap.String("id", run.ID),
				zap.Error(err))
		} else {
			run.MarkCompleted(len(digests))
			m.logger.Info("Mirror run completed",
				zap.String("id", run.ID),
				zap.Int("files", len(digests)))
		}
		if updateErr := m.repo.UpdateRun(run); updateErr != nil {
			m.logger.Error("Failed to update run status", zap.Error(updateErr))
		}
	}()

	return &snapshot, nil
}

// GetRun retrieves a run by ID
func (m *MirrorManager) GetRun(id string) (*domain.MirrorRun, error) {
	return m.repo.FindRunByID(id)
}

// ListRuns lists all runs with optional filters
func (m *MirrorManager) ListRuns(filters map[string]interface{}) ([]*domain.MirrorRun, error) {
	return m.repo.FindRuns(filters)
}

// GetRunDigests retrieves the file digests recorded for a run
func (m *MirrorManager) GetRunDigests(runID string) ([]*domain.FileDigest, error) {
	return m.repo.FindDigestsByRun(runID)
}

// GetStats returns aggregate run statistics
func (m *MirrorManager) GetStats() (*domain.MirrorStats, error) {
	return m.repo.GetStats()
}

func (m *MirrorManager) execute(ctx context.Context, run *domain.MirrorRun) ([]*domain.FileDigest, error) {
	if m.config.RepoURL == "" {
		return nil, fmt.Errorf("repository URL not configured")
	}
	if m.config.BaseURL == "" {
		return nil, fmt.Errorf("origin base URL not configured")
	}

	relPaths, err := m.source.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate source: %w", err)
	}

	destDir := m.config.DestDir
	if destDir == "" {
		destDir, err = os.MkdirTemp("", "repomirror-")
		if err != nil {
			return nil, fmt.Errorf("create destination directory: %w", err)
		}
	} else if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	run.MarkRunning(destDir)
	if err := m.repo.UpdateRun(run); err != nil {
		m.logger.Error("Failed to update run status", zap.Error(err))
	}

	tasks, err := domain.BuildTasks(m.config.BaseURL, destDir, relPaths)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Fetching files",
		zap.String("id", run.ID),
		zap.Int("count", len(tasks)),
		zap.String("dest", destDir))

	if err := m.fetcher.FetchAll(ctx, tasks); err != nil {
		return nil, err
	}

	// Digest whatever the destination tree holds once every download
	// succeeded. A pre-existing file under a configured DestDir is
	// digested too.
	entries, err := checksum.Tree(destDir, m.config.ChunkSize)
	if err != nil {
		return nil, err
	}

	digests := make([]*domain.FileDigest, 0, len(entries))
	for _, entry := range entries {
		digests = append(digests, &domain.FileDigest{
			RunID:  run.ID,
			Path:   entry.Path,
			Digest: entry.Digest,
			Size:   entry.Size,
		})
	}

	if err := m.repo.CreateDigests(digests); err != nil {
		return nil, fmt.Errorf("record digests: %w", err)
	}

	return digests, nil
}

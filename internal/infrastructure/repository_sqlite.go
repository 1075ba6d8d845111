package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/repomirror-go/internal/domain"
)

// SQLiteMirrorRepository implements MirrorRepository using SQLite
type SQLiteMirrorRepository struct {
	db *gorm.DB
}

// NewSQLiteMirrorRepository creates a new SQLite repository
func NewSQLiteMirrorRepository(dbPath string) (*SQLiteMirrorRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.MirrorRun{}, &domain.FileDigest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteMirrorRepository{db: db}, nil
}

// CreateRun creates a new mirror run
func (r *SQLiteMirrorRepository) CreateRun(run *domain.MirrorRun) error {
	return r.db.Create(run).Error
}

// UpdateRun updates an existing mirror run
func (r *SQLiteMirrorRepository) UpdateRun(run *domain.MirrorRun) error {
	return r.db.Save(run).Error
}

// FindRunByID finds a mirror run by ID
func (r *SQLiteMirrorRepository) FindRunByID(id string) (*domain.MirrorRun, error) {
	var run domain.MirrorRun
	err := r.db.First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindRuns finds all runs with optional filters, newest first
func (r *SQLiteMirrorRepository) FindRuns(filters map[string]interface{}) ([]*domain.MirrorRun, error) {
	var runs []*domain.MirrorRun
	query := r.db

	for key, value := range filters {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	err := query.Order("created_at DESC").Find(&runs).Error
	return runs, err
}

// CreateDigests records the file digests produced by a run
func (r *SQLiteMirrorRepository) CreateDigests(digests []*domain.FileDigest) error {
	if len(digests) == 0 {
		return nil
	}
	return r.db.Create(&digests).Error
}

// FindDigestsByRun finds all file digests recorded for a run
func (r *SQLiteMirrorRepository) FindDigestsByRun(runID string) ([]*domain.FileDigest, error) {
	var digests []*domain.FileDigest
	err := r.db.Where("run_id = ?", runID).Order("path ASC").Find(&digests).Error
	return digests, err
}

// CountRuns returns the total number of runs
func (r *SQLiteMirrorRepository) CountRuns() (int64, error) {
	var count int64
	err := r.db.Model(&domain.MirrorRun{}).Count(&count).Error
	return count, err
}

// GetStats returns aggregate run statistics
func (r *SQLiteMirrorRepository) GetStats() (*domain.MirrorStats, error) {
	stats := &domain.MirrorStats{}

	if err := r.db.Model(&domain.MirrorRun{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		Status domain.RunStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.MirrorRun{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.StatusQueued:
			stats.Queued = sc.Count
		case domain.StatusRunning:
			stats.Running = sc.Count
		case domain.StatusCompleted:
			stats.Completed = sc.Count
		case domain.StatusFailed:
			stats.Failed = sc.Count
		}
	}

	if err := r.db.Model(&domain.FileDigest{}).Count(&stats.Files).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteMirrorRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

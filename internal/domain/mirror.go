package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the current status of a mirror run
type RunStatus string

const (
	StatusQueued    RunStatus = "queued"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// MirrorRun represents one execution of the mirror pipeline: enumerate the
// source tree, fetch every file from the origin, digest the result.
type MirrorRun struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	RepoURL      string     `json:"repo_url" gorm:"not null"`
	BaseURL      string     `json:"base_url" gorm:"not null"`
	DestDir      string     `json:"dest_dir"`
	Status       RunStatus  `json:"status" gorm:"not null;index"`
	FileCount    int        `json:"file_count" gorm:"default:0"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewMirrorRun creates a new mirror run in the queued state
func NewMirrorRun(repoURL, baseURL string) *MirrorRun {
	return &MirrorRun{
		ID:        uuid.New().String(),
		RepoURL:   repoURL,
		BaseURL:   baseURL,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkRunning marks the run as running
func (r *MirrorRun) MarkRunning(destDir string) {
	r.Status = StatusRunning
	r.DestDir = destDir
	now := time.Now()
	r.StartedAt = &now
	r.UpdatedAt = now
}

// MarkCompleted marks the run as completed with the number of mirrored files
func (r *MirrorRun) MarkCompleted(fileCount int) {
	r.Status = StatusCompleted
	r.FileCount = fileCount
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the run as failed
func (r *MirrorRun) MarkFailed(err error) {
	r.Status = StatusFailed
	r.ErrorMessage = err.Error()
	r.UpdatedAt = time.Now()
}

// IsTerminal checks if the run is in a terminal state
func (r *MirrorRun) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// FileDigest pairs a file from a run's destination tree with its SHA-256 digest
type FileDigest struct {
	ID        uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	RunID     string    `json:"-" gorm:"index;not null"`
	Path      string    `json:"path" gorm:"not null"`
	Digest    string    `json:"digest" gorm:"not null"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

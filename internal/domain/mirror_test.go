package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMirrorRun(t *testing.T) {
	run := NewMirrorRun("https://example.com/repo.git", "https://cdn.example.com")

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "https://example.com/repo.git", run.RepoURL)
	assert.Equal(t, "https://cdn.example.com", run.BaseURL)
	assert.Equal(t, StatusQueued, run.Status)
	assert.Equal(t, 0, run.FileCount)
	assert.False(t, run.IsTerminal())
}

func TestMirrorRun_MarkRunning(t *testing.T) {
	run := NewMirrorRun("https://example.com/repo.git", "https://cdn.example.com")

	run.MarkRunning("/tmp/mirror")

	assert.Equal(t, StatusRunning, run.Status)
	assert.Equal(t, "/tmp/mirror", run.DestDir)
	assert.NotNil(t, run.StartedAt)
	assert.False(t, run.IsTerminal())
}

func TestMirrorRun_MarkCompleted(t *testing.T) {
	run := NewMirrorRun("https://example.com/repo.git", "https://cdn.example.com")
	run.MarkRunning("/tmp/mirror")

	run.MarkCompleted(12)

	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 12, run.FileCount)
	assert.NotNil(t, run.CompletedAt)
	assert.True(t, run.IsTerminal())
}

func TestMirrorRun_MarkFailed(t *testing.T) {
	run := NewMirrorRun("https://example.com/repo.git", "https://cdn.example.com")

	run.MarkFailed(errors.New("origin unreachable"))

	assert.Equal(t, StatusFailed, run.Status)
	assert.Equal(t, "origin unreachable", run.ErrorMessage)
	assert.True(t, run.IsTerminal())
}

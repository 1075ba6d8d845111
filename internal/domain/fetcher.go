package domain

import "context"

// Fetcher downloads files from an HTTP origin under a fixed concurrency cap
type Fetcher interface {
	// Fetch downloads a single task's URL to its destination path
	Fetch(ctx context.Context, task DownloadTask) error

	// FetchAll runs all tasks concurrently, never exceeding the cap.
	// It fails fast: the first task error is returned as the batch error.
	FetchAll(ctx context.Context, tasks []DownloadTask) error
}

// FileSource enumerates the relative file paths to mirror.
// The returned paths are relative to the enumerated tree's root.
type FileSource interface {
	// Enumerate produces the ordered list of relative paths for one run
	Enumerate(ctx context.Context) ([]string, error)
}

package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DownloadTask pairs a source URL with a local destination path.
// Tasks are immutable once built and consumed exactly once by the fetcher.
type DownloadTask struct {
	URL  string
	Dest string
}

// ValidateRelativePath rejects paths that would escape the destination root.
// The remote and local layout share a 1:1 mapping, so an absolute path or a
// parent-directory segment has no valid meaning here.
func ValidateRelativePath(relPath string) error {
	if relPath == "" {
		return fmt.Errorf("empty relative path")
	}
	if filepath.IsAbs(relPath) || strings.HasPrefix(relPath, "/") {
		return fmt.Errorf("absolute path not allowed: %s", relPath)
	}
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		if seg == ".." {
			return fmt.Errorf("path escapes destination root: %s", relPath)
		}
	}
	return nil
}

// BuildTasks builds one DownloadTask per relative path, joining each path
// with the origin base URL and the destination root.
func BuildTasks(baseURL, destRoot string, relPaths []string) ([]DownloadTask, error) {
	tasks := make([]DownloadTask, 0, len(relPaths))
	base := strings.TrimSuffix(baseURL, "/")

	for _, relPath := range relPaths {
		if err := ValidateRelativePath(relPath); err != nil {
			return nil, err
		}
		tasks = append(tasks, DownloadTask{
			URL:  base + "/" + filepath.ToSlash(relPath),
			Dest: filepath.Join(destRoot, filepath.FromSlash(relPath)),
		})
	}

	return tasks, nil
}

// UnexpectedStatusError is returned when the origin answers a fetch with a
// status other than 200 OK.
type UnexpectedStatusError struct {
	URL        string
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("failed to download %s, status code: %d", e.URL, e.StatusCode)
}

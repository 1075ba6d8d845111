package infrastructure

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// GitSource enumerates the file tree of a git repository by cloning it into
// a temporary checkout and walking the worktree.
type GitSource struct {
	repoURL string
	branch  string
	logger  *zap.Logger
}

// NewGitSource creates a source for the given repository URL. An empty
// branch defaults to master.
func NewGitSource(repoURL, branch string, logger *zap.Logger) *GitSource {
	if branch == "" {
		branch = "master"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitSource{
		repoURL: repoURL,
		branch:  branch,
		logger:  logger,
	}
}

// Enumerate clones the repository and returns the relative path of every
// regular file in the checkout, excluding the .git directory. The checkout
// itself is discarded after the walk.
func (s *GitSource) Enumerate(ctx context.Context) ([]string, error) {
	checkoutDir, err := os.MkdirTemp("", "repomirror-checkout-")
	if err != nil {
		return nil, fmt.Errorf("create checkout directory: %w", err)
	}
	defer os.RemoveAll(checkoutDir)

	s.logger.Info("Cloning repository",
		zap.String("url", s.repoURL),
		zap.String("branch", s.branch))

	_, err = git.PlainCloneContext(ctx, checkoutDir, false, &git.CloneOptions{
		URL:           s.repoURL,
		ReferenceName: plumbing.NewBranchReferenceName(s.branch),
		SingleBranch:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", s.repoURL, err)
	}

	paths, err := WalkRelativePaths(checkoutDir)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enumerated repository files",
		zap.String("url", s.repoURL),
		zap.Int("count", len(paths)))

	return paths, nil
}

// WalkRelativePaths walks root and collects the path of every regular file
// relative to root, skipping the .git directory.
func WalkRelativePaths(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == git.GitDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return paths, nil
}

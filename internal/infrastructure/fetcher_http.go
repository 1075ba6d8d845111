package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/repomirror-go/internal/domain"
)

// DefaultConcurrentLimit caps in-flight downloads when no limit is configured.
const DefaultConcurrentLimit = 3

// HTTPFetcher downloads files from an HTTP origin. A buffered-channel
// semaphore bounds the number of concurrent network calls; any number of
// tasks may be pending on the gate.
type HTTPFetcher struct {
	client *http.Client
	sem    chan struct{}
	logger *zap.Logger
}

// NewHTTPFetcher creates a fetcher with the given concurrency limit.
// A nil client falls back to http.DefaultClient; no request timeout is
// applied unless the caller supplies a client with one, so a hung call
// holds its gate unit.
func NewHTTPFetcher(client *http.Client, concurrentLimit int, logger *zap.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if concurrentLimit < 1 {
		concurrentLimit = DefaultConcurrentLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPFetcher{
		client: client,
		sem:    make(chan struct{}, concurrentLimit),
		logger: logger,
	}
}

// Fetch downloads a single task's URL to its destination path. It blocks
// until a gate unit is available, issues the GET, and on 200 writes the
// whole body to the destination, creating parent directories as needed.
// Any other status fails with an UnexpectedStatusError and writes nothing.
// The gate unit is released after the network call and write complete,
// success or failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, task domain.DownloadTask) error {
	select {
	case f.sem <- struct{}{}:
		defer func() { <-f.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	return f.download(ctx, task)
}

func (f *HTTPFetcher) download(ctx context.Context, task domain.DownloadTask) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", task.URL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", task.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.UnexpectedStatusError{URL: task.URL, StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", task.Dest, err)
	}

	file, err := os.Create(task.Dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", task.Dest, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", task.Dest, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", task.Dest, err)
	}

	f.logger.Debug("Downloaded file",
		zap.String("url", task.URL),
		zap.String("dest", task.Dest))

	return nil
}

// FetchAll runs all tasks concurrently subject to the gate. The batch fails
// fast: the first task error becomes the batch error and tasks still waiting
// on the gate abort, while tasks already past the gate run to completion.
func (f *HTTPFetcher) FetchAll(ctx context.Context, tasks []domain.DownloadTask) error {
	// Cancels gate waits only; in-flight downloads keep the parent context.
	gateCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, task := range tasks {
		wg.Add(1)
		go func(task domain.DownloadTask) {
			defer wg.Done()

			err := func() error {
				select {
				case f.sem <- struct{}{}:
					defer func() { <-f.sem }()
				case <-gateCtx.Done():
					return gateCtx.Err()
				}
				return f.download(ctx, task)
			}()

			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()

				if !errors.Is(err, context.Canceled) {
					f.logger.Warn("Download failed",
						zap.String("url", task.URL),
						zap.Error(err))
				}
			}
		}(task)
	}

	wg.Wait()
	return firstErr
}

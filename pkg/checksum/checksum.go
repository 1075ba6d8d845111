// Package checksum computes SHA-256 digests of files and file trees.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultChunkSize is the read size used when streaming a file into the hash.
const DefaultChunkSize = 4096

// File computes the lowercase-hex SHA-256 digest of the file at path,
// streaming its contents in chunkSize-byte reads. Pass chunkSize <= 0 for
// DefaultChunkSize. The digest depends only on the file's bytes.
func File(path string, chunkSize int) (string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Entry pairs a path relative to the walked root with its digest and size.
type Entry struct {
	Path   string
	Digest string
	Size   int64
}

// Tree walks root and digests every regular file found, sequentially.
// The first error aborts the walk; no partial digest is ever recorded
// for the failing file.
func Tree(root string, chunkSize int) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		digest, err := File(path, chunkSize)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Path:   filepath.ToSlash(rel),
			Digest: digest,
			Size:   info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("digest tree %s: %w", root, err)
	}

	return entries, nil
}

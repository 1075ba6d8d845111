package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTasks(t *testing.T) {
	tasks, err := BuildTasks("https://example.com", "/tmp/mirror", []string{"file1.txt", "file2.txt"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "https://example.com/file1.txt", tasks[0].URL)
	assert.Equal(t, filepath.Join("/tmp/mirror", "file1.txt"), tasks[0].Dest)
	assert.Equal(t, "https://example.com/file2.txt", tasks[1].URL)
	assert.Equal(t, filepath.Join("/tmp/mirror", "file2.txt"), tasks[1].Dest)
}

func TestBuildTasks_TrailingSlash(t *testing.T) {
	tasks, err := BuildTasks("https://example.com/", "/tmp/mirror", []string{"docs/readme.md"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "https://example.com/docs/readme.md", tasks[0].URL)
	assert.Equal(t, filepath.Join("/tmp/mirror", "docs", "readme.md"), tasks[0].Dest)
}

func TestBuildTasks_EscapingPath(t *testing.T) {
	_, err := BuildTasks("https://example.com", "/tmp/mirror", []string{"../etc/passwd"})
	assert.Error(t, err)
}

func TestValidateRelativePath(t *testing.T) {
	assert.NoError(t, ValidateRelativePath("file.txt"))
	assert.NoError(t, ValidateRelativePath("a/b/c.txt"))

	assert.Error(t, ValidateRelativePath(""))
	assert.Error(t, ValidateRelativePath("/etc/passwd"))
	assert.Error(t, ValidateRelativePath("../secret"))
	assert.Error(t, ValidateRelativePath("a/../../secret"))
}

func TestUnexpectedStatusError(t *testing.T) {
	err := error(&UnexpectedStatusError{URL: "https://example.com/f.txt", StatusCode: 404})

	assert.Contains(t, err.Error(), "https://example.com/f.txt")
	assert.Contains(t, err.Error(), "404")

	var statusErr *UnexpectedStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.StatusCode)
}

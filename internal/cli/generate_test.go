package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2026", "august.md")

	require.NoError(t, writeReport(path, "# Work Report"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Work Report\n", string(data))
}

func TestWriteReportSurfacesDirectoryFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := writeReport(filepath.Join(blocker, "sub", "report.md"), "# Work Report")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")
}

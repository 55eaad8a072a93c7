package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringIncludesBuildMetadata(t *testing.T) {
	originalVersion := Version
	originalCommit := Commit
	originalDate := Date
	t.Cleanup(func() {
		Version = originalVersion
		Commit = originalCommit
		Date = originalDate
	})

	Version = "1.0.0"
	Commit = "f00dcafe"
	Date = "2026-08-30"

	got := String()
	require.Contains(t, got, "saathi 1.0.0")
	require.Contains(t, got, "commit=f00dcafe")
	require.Contains(t, got, "date=2026-08-30")
	require.Contains(t, got, "go=")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGo(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLintRepositoryQueries(t *testing.T) {
	violations, err := lint([]string{"../../sqlinline"})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestLintReportsProblems(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "a.go", "package q\n\nconst QOne = `--sql 11111111-2222-3333-4444-555555555555\nselect 1;`\n\nconst QBare = \"select 2\"\n")
	writeGo(t, dir, "b.go", "package q\n\nconst QCopy = `--sql 11111111-2222-3333-4444-555555555555\nselect 3;`\n\nconst Label = \"not sql at all\"\n")

	violations, err := lint([]string{dir})
	require.NoError(t, err)
	require.Len(t, violations, 2)

	byName := map[string]violation{}
	for _, v := range violations {
		byName[v.name] = v
	}
	assert.Contains(t, byName["QBare"].message, "missing or invalid")
	assert.Contains(t, byName["QCopy"].message, "already used by QOne")
}

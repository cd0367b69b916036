package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-results-backend/internal/repositories/memory"
	"github.com/ArowuTest/lottery-results-backend/internal/services"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
)

func newImporter(repo *memory.ResultRepository) *importer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ps := patterns.Default()
	return &importer{
		extraction: services.NewExtractionService(parser.New(ps), logger),
		results:    services.NewResultService(repo, ps, logger),
		logger:     logger,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "KARUNYA LOTTERY NO: KR-650\n1st Prize Rs :8000000/- KA 123456 (KOCHI)\n")
	writeFile(t, dir, "b.TXT", "WIN-WIN LOTTERY NO: W-765\n4th Prize Rs :5000/- 1111 2222\n")
	writeFile(t, dir, "dup.txt", "KARUNYA LOTTERY NO: KR-650\n1st Prize Rs :8000000/- KA 123456\n")
	writeFile(t, dir, "empty.txt", "  \n")
	writeFile(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o700))

	repo := memory.NewResultRepository()
	stats, err := newImporter(repo).importDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, importStats{imported: 2, skipped: 1, failed: 1}, stats)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// A second run finds every draw already stored.
	stats, err = newImporter(repo).importDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, importStats{skipped: 3, failed: 1}, stats)
}

func TestImportDirMissing(t *testing.T) {
	_, err := newImporter(memory.NewResultRepository()).importDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

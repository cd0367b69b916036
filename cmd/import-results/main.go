// Command import-results parses every .txt bulletin in a directory and stores
// the results. Draws that are already stored are skipped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ArowuTest/lottery-results-backend/internal/config"
	"github.com/ArowuTest/lottery-results-backend/internal/logging"
	"github.com/ArowuTest/lottery-results-backend/internal/models"
	mongorepo "github.com/ArowuTest/lottery-results-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottery-results-backend/internal/services"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/mongodb"
)

// importedBy marks results created by this command.
const importedBy = "import-results"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import-results <dir>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	ps, err := patterns.LoadFile(cfg.Parser.PatternsFile)
	if err != nil {
		logger.Error("import.patterns.failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		logger.Error("import.connect.failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	repo := mongorepo.NewResultRepository(client.Database(cfg.MongoDB.Database))
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Error("import.indexes.failed", "error", err)
		os.Exit(1)
	}

	imp := &importer{
		extraction: services.NewExtractionService(parser.New(ps, parser.WithLogger(logger)), logger),
		results:    services.NewResultService(repo, ps, logger),
		logger:     logger,
	}
	stats, err := imp.importDir(ctx, os.Args[1])
	if err != nil {
		logger.Error("import.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("import.done", "imported", stats.imported, "skipped", stats.skipped, "failed", stats.failed)
}

type importer struct {
	extraction *services.ExtractionService
	results    *services.ResultService
	logger     *slog.Logger
}

type importStats struct {
	imported, skipped, failed int
}

// importDir imports the .txt files of dir in name order. A file that cannot
// be read, parsed or stored is logged and counted, and the import goes on.
func (imp *importer) importDir(ctx context.Context, dir string) (importStats, error) {
	var stats importStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("failed to read directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		created, err := imp.importFile(ctx, filepath.Join(dir, e.Name()))
		switch {
		case err != nil:
			imp.logger.Warn("import.file.failed", "file", e.Name(), "error", err)
			stats.failed++
		case created:
			stats.imported++
		default:
			stats.skipped++
		}
	}
	return stats, nil
}

func (imp *importer) importFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	parsed, err := imp.extraction.Extract(ctx, string(data))
	if err != nil {
		return false, err
	}

	if parsed.DrawNumber != "" {
		_, err := imp.results.GetByDrawNumber(ctx, parsed.DrawNumber)
		if err == nil {
			imp.logger.Info("import.file.exists", "file", filepath.Base(path), "drawNumber", parsed.DrawNumber)
			return false, nil
		}
		if !errors.Is(err, services.ErrResultNotFound) {
			return false, err
		}
	}

	req := &models.ResultRequest{ParsedLotteryResult: *parsed, SourceName: filepath.Base(path)}
	if _, err := imp.results.Create(ctx, req, importedBy); err != nil {
		return false, err
	}
	return true, nil
}

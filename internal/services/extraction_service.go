package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
)

// ExtractionService turns bulletin text into a result for review. Nothing
// is stored.
type ExtractionService struct {
	parser *parser.Parser
	logger *slog.Logger
}

// NewExtractionService creates a new ExtractionService
func NewExtractionService(p *parser.Parser, logger *slog.Logger) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionService{parser: p, logger: logger}
}

// Extract parses text. Empty or blank text is rejected with ErrEmptyText;
// any other text yields a result, possibly with no fields found.
func (s *ExtractionService) Extract(ctx context.Context, text string) (*lottery.ParsedLotteryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := s.parser.Parse(text)

	level := slog.LevelInfo
	if len(result.Prizes) == 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "extract.parse.done",
		"bytes", len(text),
		"drawNumber", result.DrawNumber,
		"tiers", len(result.Prizes),
		"duration", time.Since(start).String())
	return result, nil
}

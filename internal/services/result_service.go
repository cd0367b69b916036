package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/prize"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/ticket"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ResultService manages stored results and checks tickets against them.
type ResultService struct {
	repo     repositories.ResultRepository
	patterns *patterns.Set
	matcher  *prize.Matcher
	logger   *slog.Logger
}

// NewResultService creates a new ResultService. ps decides the tier
// priority for ticket checks and the tier order of exports.
func NewResultService(repo repositories.ResultRepository, ps *patterns.Set, logger *slog.Logger) *ResultService {
	if ps == nil {
		ps = patterns.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{repo: repo, patterns: ps, matcher: prize.NewMatcher(ps), logger: logger}
}

// Create stores a reviewed result.
func (s *ResultService) Create(ctx context.Context, req *models.ResultRequest, createdBy string) (*models.LotteryResult, error) {
	result := &models.LotteryResult{
		ParsedLotteryResult: req.ParsedLotteryResult,
		SourceName:          strings.TrimSpace(req.SourceName),
		CreatedBy:           createdBy,
	}
	if err := prepare(result); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}
	s.logger.Info("result.create.ok",
		"resultId", result.ID.Hex(),
		"drawNumber", result.DrawNumber,
		"tiers", len(result.Prizes),
		"createdBy", createdBy)
	return result, nil
}

// GetByID retrieves a result by its hex id.
func (s *ResultService) GetByID(ctx context.Context, id string) (*models.LotteryResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.wrapFind(s.repo.FindByID(ctx, oid))
}

// GetByDrawNumber retrieves the newest result stored for a draw number.
func (s *ResultService) GetByDrawNumber(ctx context.Context, drawNumber string) (*models.LotteryResult, error) {
	return s.wrapFind(s.repo.FindByDrawNumber(ctx, strings.TrimSpace(drawNumber)))
}

// GetLatest retrieves the result of the most recent draw.
func (s *ResultService) GetLatest(ctx context.Context) (*models.LotteryResult, error) {
	return s.wrapFind(s.repo.FindLatest(ctx))
}

// List returns one page of results, newest draw first.
func (s *ResultService) List(ctx context.Context, page, limit int) (*models.PaginatedResults, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	results, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	return &models.PaginatedResults{Results: results, Page: page, Limit: limit, Total: total}, nil
}

// Update replaces the content of a stored result.
func (s *ResultService) Update(ctx context.Context, id string, req *models.ResultRequest) (*models.LotteryResult, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.ParsedLotteryResult = req.ParsedLotteryResult
	if name := strings.TrimSpace(req.SourceName); name != "" {
		existing.SourceName = name
	}
	if err := prepare(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to update result: %w", err)
	}
	s.logger.Info("result.update.ok", "resultId", id, "drawNumber", existing.DrawNumber)
	return existing, nil
}

// Delete removes a stored result.
func (s *ResultService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to delete result: %w", err)
	}
	s.logger.Info("result.delete.ok", "resultId", id)
	return nil
}

// CheckTicket validates t and matches it against the stored result id.
// A badly formatted ticket returns the validation details together with
// ErrInvalidTicket.
func (s *ResultService) CheckTicket(ctx context.Context, id, t string) (*models.CheckTicketResponse, error) {
	resp := &models.CheckTicketResponse{Validation: ticket.Validate(t)}
	if !resp.Validation.Valid {
		return resp, ErrInvalidTicket
	}

	result, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	match := s.matcher.Check(resp.Validation.Normalized, &result.ParsedLotteryResult)
	resp.Match = &match
	resp.DrawNumber = result.DrawNumber
	resp.DrawDate = result.DrawDate

	s.logger.Info("ticket.check.done", "resultId", id, "won", match.Won)
	return resp, nil
}

func (s *ResultService) wrapFind(result *models.LotteryResult, err error) (*models.LotteryResult, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return result, nil
}

// prepare checks the minimal metadata and fills a nil prize map.
func prepare(result *models.LotteryResult) error {
	result.DrawNumber = strings.TrimSpace(result.DrawNumber)
	result.LotteryName = strings.TrimSpace(result.LotteryName)
	if result.DrawNumber == "" && result.LotteryName == "" {
		return ErrInvalidResult
	}
	if result.Prizes == nil {
		result.Prizes = make(map[string]lottery.PrizeRecord)
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

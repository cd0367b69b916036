package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
)

// ErrNotFound is returned when no document matches a lookup.
var ErrNotFound = errors.New("document not found")

// ResultRepository defines the interface for stored lottery results
type ResultRepository interface {
	Create(ctx context.Context, result *models.LotteryResult) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LotteryResult, error)
	FindByDrawNumber(ctx context.Context, drawNumber string) (*models.LotteryResult, error)
	// FindAll returns results newest draw first; page starts at 1.
	FindAll(ctx context.Context, page, limit int) ([]*models.LotteryResult, error)
	FindLatest(ctx context.Context) (*models.LotteryResult, error)
	Update(ctx context.Context, result *models.LotteryResult) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

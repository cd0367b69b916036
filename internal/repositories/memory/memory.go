// Package memory holds map backed repositories for tests and local runs
// without MongoDB.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

var (
	_ repositories.ResultRepository    = (*ResultRepository)(nil)
	_ repositories.AdminUserRepository = (*AdminUserRepository)(nil)
)

// ResultRepository keeps results in memory.
type ResultRepository struct {
	mu      sync.RWMutex
	results map[primitive.ObjectID]models.LotteryResult
}

// NewResultRepository returns an empty repository.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{results: make(map[primitive.ObjectID]models.LotteryResult)}
}

func (r *ResultRepository) Create(_ context.Context, result *models.LotteryResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	r.results[result.ID] = clone(*result)
	return nil
}

func (r *ResultRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.LotteryResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	res = clone(res)
	return &res, nil
}

func (r *ResultRepository) FindByDrawNumber(_ context.Context, drawNumber string) (*models.LotteryResult, error) {
	for _, res := range r.sorted() {
		if res.DrawNumber == drawNumber {
			return res, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ResultRepository) FindAll(_ context.Context, page, limit int) ([]*models.LotteryResult, error) {
	all := r.sorted()
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []*models.LotteryResult{}, nil
	}
	end := min(start+limit, len(all))
	return all[start:end], nil
}

func (r *ResultRepository) FindLatest(_ context.Context) (*models.LotteryResult, error) {
	all := r.sorted()
	if len(all) == 0 {
		return nil, repositories.ErrNotFound
	}
	return all[0], nil
}

func (r *ResultRepository) Update(_ context.Context, result *models.LotteryResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.results[result.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	result.CreatedAt = old.CreatedAt
	result.CreatedBy = old.CreatedBy
	result.UpdatedAt = time.Now()
	r.results[result.ID] = clone(*result)
	return nil
}

func (r *ResultRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.results[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.results, id)
	return nil
}

func (r *ResultRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.results)), nil
}

// sorted returns copies ordered newest draw first, like the MongoDB store.
func (r *ResultRepository) sorted() []*models.LotteryResult {
	r.mu.RLock()
	out := make([]*models.LotteryResult, 0, len(r.results))
	for _, res := range r.results {
		res := clone(res)
		out = append(out, &res)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DrawDate != out[j].DrawDate {
			return out[i].DrawDate > out[j].DrawDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// clone copies the prize map and its slices so callers never share them
// with the stored value.
func clone(res models.LotteryResult) models.LotteryResult {
	if res.Prizes == nil {
		return res
	}
	prizes := make(map[string]lottery.PrizeRecord, len(res.Prizes))
	for key, rec := range res.Prizes {
		rec.Winners = slices.Clone(rec.Winners)
		rec.Numbers = slices.Clone(rec.Numbers)
		rec.Unparsed = slices.Clone(rec.Unparsed)
		prizes[key] = rec
	}
	res.Prizes = prizes
	return res
}

// AdminUserRepository keeps admin accounts in memory.
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.AdminUser
}

// NewAdminUserRepository returns an empty repository.
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[string]models.AdminUser)}
}

func (r *AdminUserRepository) Create(_ context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.Email] = *u
	return nil
}

func (r *AdminUserRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

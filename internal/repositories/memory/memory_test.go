package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

func newResult() *models.LotteryResult {
	return &models.LotteryResult{
		ParsedLotteryResult: lottery.ParsedLotteryResult{
			DrawNumber: "KR-650",
			DrawDate:   "2024-02-01",
			Prizes: map[string]lottery.PrizeRecord{
				"firstPrize":  {Label: "1st Prize", Amount: 100, Winners: []lottery.PrizeWinner{{Ticket: "KA 123456"}}},
				"fourthPrize": {Label: "4th Prize", Amount: 10, Numbers: []string{"1111"}},
			},
		},
	}
}

func TestResultRepositoryIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository()

	res := newResult()
	require.NoError(t, repo.Create(ctx, res))

	// Changing the caller's value after Create leaves the store alone.
	res.Prizes["fourthPrize"].Numbers[0] = "9999"
	res.Prizes["secondPrize"] = lottery.PrizeRecord{Label: "2nd Prize"}

	got, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1111"}, got.Prizes["fourthPrize"].Numbers)
	assert.NotContains(t, got.Prizes, "secondPrize")

	// Changing a returned value leaves the store alone too.
	got.Prizes["firstPrize"].Winners[0].Ticket = "ZZ 000000"
	delete(got.Prizes, "fourthPrize")

	latest, err := repo.FindLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KA 123456", latest.Prizes["firstPrize"].Winners[0].Ticket)
	assert.Contains(t, latest.Prizes, "fourthPrize")
}

func TestResultRepositoryUpdateKeepsCreation(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository()

	res := newResult()
	res.CreatedBy = "admin"
	require.NoError(t, repo.Create(ctx, res))
	created := res.CreatedAt

	upd := newResult()
	upd.ID = res.ID
	upd.Location = "KOCHI"
	require.NoError(t, repo.Update(ctx, upd))

	got, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "KOCHI", got.Location)
	assert.Equal(t, "admin", got.CreatedBy)
	assert.True(t, created.Equal(got.CreatedAt))

	upd.ID = [12]byte{1}
	assert.ErrorIs(t, repo.Update(ctx, upd), repositories.ErrNotFound)
}

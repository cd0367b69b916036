package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories/memory"
	"github.com/ArowuTest/lottery-results-backend/pkg/jwt"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
)

const sampleText = "KARUNYA LOTTERY NO: KR-650\nDRAW held on 01/02/2024 at 3:00 PM AT GORKY BHAVAN,\n" +
	"1st Prize Rs :8000000/- 1) KA 123456 (KOCHI)\n" +
	"Cons Prize-Rs :8000/- KB 123456\n" +
	"4th Prize Rs :5000/- 1111 2222\n"

func sampleRequest() *models.ResultRequest {
	return &models.ResultRequest{
		ParsedLotteryResult: *parser.Parse(sampleText),
		SourceName:          "kr-650.txt",
	}
}

type ResultServiceSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *memory.ResultRepository
	service *ResultService
}

func (s *ResultServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewResultRepository()
	s.service = NewResultService(s.repo, nil, nil)
}

func (s *ResultServiceSuite) TestCreateAndGet() {
	created, err := s.service.Create(s.ctx, sampleRequest(), "admin-1")
	s.Require().NoError(err)
	s.False(created.ID.IsZero())
	s.Equal("KR-650", created.DrawNumber)
	s.Equal("admin-1", created.CreatedBy)
	s.Equal("kr-650.txt", created.SourceName)

	got, err := s.service.GetByID(s.ctx, created.ID.Hex())
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Len(got.Prizes, 3)

	byDraw, err := s.service.GetByDrawNumber(s.ctx, " KR-650 ")
	s.Require().NoError(err)
	s.Equal(created.ID, byDraw.ID)
}

func (s *ResultServiceSuite) TestCreateRejectsEmptyResult() {
	_, err := s.service.Create(s.ctx, &models.ResultRequest{}, "admin-1")
	s.ErrorIs(err, ErrInvalidResult)
}

func (s *ResultServiceSuite) TestCreateFillsPrizes() {
	req := &models.ResultRequest{ParsedLotteryResult: lottery.ParsedLotteryResult{DrawNumber: "KR-1"}}
	created, err := s.service.Create(s.ctx, req, "")
	s.Require().NoError(err)
	s.NotNil(created.Prizes)
}

func (s *ResultServiceSuite) TestGetErrors() {
	_, err := s.service.GetByID(s.ctx, "not-an-id")
	s.ErrorIs(err, ErrInvalidID)

	_, err = s.service.GetByID(s.ctx, primitive.NewObjectID().Hex())
	s.ErrorIs(err, ErrResultNotFound)

	_, err = s.service.GetLatest(s.ctx)
	s.ErrorIs(err, ErrResultNotFound)
}

func (s *ResultServiceSuite) TestListAndLatest() {
	for _, d := range []struct{ number, date string }{
		{"KR-648", "2024-01-18"},
		{"KR-650", "2024-02-01"},
		{"KR-649", "2024-01-25"},
	} {
		req := &models.ResultRequest{ParsedLotteryResult: lottery.ParsedLotteryResult{DrawNumber: d.number, DrawDate: d.date}}
		_, err := s.service.Create(s.ctx, req, "")
		s.Require().NoError(err)
	}

	latest, err := s.service.GetLatest(s.ctx)
	s.Require().NoError(err)
	s.Equal("KR-650", latest.DrawNumber)

	page, err := s.service.List(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total)
	s.Require().Len(page.Results, 2)
	s.Equal("KR-650", page.Results[0].DrawNumber)
	s.Equal("KR-649", page.Results[1].DrawNumber)

	page, err = s.service.List(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page.Results, 1)
	s.Equal("KR-648", page.Results[0].DrawNumber)

	page, err = s.service.List(s.ctx, 0, 1000)
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(maxPageSize, page.Limit)
}

func (s *ResultServiceSuite) TestUpdateAndDelete() {
	created, err := s.service.Create(s.ctx, sampleRequest(), "admin-1")
	s.Require().NoError(err)

	req := sampleRequest()
	req.DrawDate = "2024-02-02"
	req.SourceName = ""
	updated, err := s.service.Update(s.ctx, created.ID.Hex(), req)
	s.Require().NoError(err)
	s.Equal("2024-02-02", updated.DrawDate)
	s.Equal("kr-650.txt", updated.SourceName)
	s.Equal("admin-1", updated.CreatedBy)

	s.Require().NoError(s.service.Delete(s.ctx, created.ID.Hex()))
	s.ErrorIs(s.service.Delete(s.ctx, created.ID.Hex()), ErrResultNotFound)

	_, err = s.service.Update(s.ctx, created.ID.Hex(), req)
	s.ErrorIs(err, ErrResultNotFound)
}

func (s *ResultServiceSuite) TestCheckTicket() {
	created, err := s.service.Create(s.ctx, sampleRequest(), "")
	s.Require().NoError(err)
	id := created.ID.Hex()

	resp, err := s.service.CheckTicket(s.ctx, id, "ka123456")
	s.Require().NoError(err)
	s.True(resp.Validation.Valid)
	s.Equal("KA 123456", resp.Validation.Normalized)
	s.Require().NotNil(resp.Match)
	s.True(resp.Match.Won)
	s.Equal("1st Prize", resp.Match.Prize.Level)
	s.Equal(int64(8000000), resp.Match.Prize.Amount)
	s.Equal("KR-650", resp.DrawNumber)

	resp, err = s.service.CheckTicket(s.ctx, id, "ZZ 992222")
	s.Require().NoError(err)
	s.Equal("4th Prize", resp.Match.Prize.Level)
	s.Equal(lottery.MatchLast4, resp.Match.Prize.MatchType)

	resp, err = s.service.CheckTicket(s.ctx, id, "ZZ 000000")
	s.Require().NoError(err)
	s.False(resp.Match.Won)

	resp, err = s.service.CheckTicket(s.ctx, id, "RT2074")
	s.ErrorIs(err, ErrInvalidTicket)
	s.Require().NotNil(resp)
	s.False(resp.Validation.Valid)
	s.NotEmpty(resp.Validation.Error)
	s.Nil(resp.Match)

	_, err = s.service.CheckTicket(s.ctx, primitive.NewObjectID().Hex(), "KA 123456")
	s.ErrorIs(err, ErrResultNotFound)
}

func (s *ResultServiceSuite) TestExportXLSX() {
	created, err := s.service.Create(s.ctx, sampleRequest(), "")
	s.Require().NoError(err)

	data, name, err := s.service.ExportXLSX(s.ctx, created.ID.Hex())
	s.Require().NoError(err)
	s.Equal("result-KR-650.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	s.Require().NoError(err)
	defer f.Close()

	summary, err := f.GetRows(summarySheet)
	s.Require().NoError(err)
	s.Equal([]string{"Draw Number", "KR-650"}, summary[1])

	rows, err := f.GetRows(prizesSheet)
	s.Require().NoError(err)
	s.Require().Len(rows, 5)
	s.Equal([]string{"Tier", "Amount", "Ticket / Number", "Location"}, rows[0])
	s.Equal([]string{"1st Prize", "8000000", "KA 123456", "KOCHI"}, rows[1])
	s.Equal([]string{"Consolation Prize", "8000", "KB 123456"}, rows[2])
	s.Equal([]string{"4th Prize", "5000", "1111"}, rows[3])
	s.Equal([]string{"4th Prize", "5000", "2222"}, rows[4])
}

func TestResultServiceSuite(t *testing.T) {
	suite.Run(t, new(ResultServiceSuite))
}

func TestExtract(t *testing.T) {
	svc := NewExtractionService(parser.New(nil), nil)
	ctx := context.Background()

	_, err := svc.Extract(ctx, "  \n ")
	assert.ErrorIs(t, err, ErrEmptyText)

	res, err := svc.Extract(ctx, sampleText)
	require.NoError(t, err)
	assert.Equal(t, "KARUNYA", res.LotteryName)
	assert.Equal(t, "KR-650", res.DrawNumber)
	assert.Len(t, res.Prizes, 3)

	res, err = svc.Extract(ctx, "no structure at all")
	require.NoError(t, err)
	assert.Empty(t, res.Prizes)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Extract(cancelled, sampleText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAdminUserRepository()
	tokens := jwt.NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, nil)

	created, err := svc.EnsureAdmin(ctx, "Admin@Example.com", "s3cret-pass", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@example.com", "other", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), claims.Subject)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

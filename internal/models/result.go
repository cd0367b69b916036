package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

// LotteryResult is a stored result bulletin.
type LotteryResult struct {
	ID                          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	lottery.ParsedLotteryResult `bson:",inline"`
	// SourceName is the uploaded file name or a label set by the admin.
	SourceName string    `bson:"sourceName,omitempty" json:"sourceName,omitempty"`
	CreatedBy  string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ResultRequest is the body of create and update calls: a parsed result,
// usually the output of the extract endpoint after review.
type ResultRequest struct {
	lottery.ParsedLotteryResult
	SourceName string `json:"sourceName"`
}

// ExtractRequest carries bulletin text to parse.
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// CheckTicketRequest carries a ticket number to check.
type CheckTicketRequest struct {
	Ticket string `json:"ticket"`
}

// CheckTicketResponse is the answer of the check endpoint.
type CheckTicketResponse struct {
	Validation lottery.TicketValidationResult `json:"validation"`
	Match      *lottery.PrizeMatch            `json:"match,omitempty"`
	DrawNumber string                         `json:"drawNumber,omitempty"`
	DrawDate   string                         `json:"drawDate,omitempty"`
}

// PaginatedResults is one page of stored results.
type PaginatedResults struct {
	Results []*LotteryResult `json:"results"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Total   int64            `json:"total"`
}

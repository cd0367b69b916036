// Package lottery holds the data model shared by the result parser and the
// ticket matching engine.
package lottery

// MatchKind tells how a ticket matched a prize tier.
type MatchKind string

const (
	MatchFull  MatchKind = "full"
	MatchLast4 MatchKind = "last4"
)

// Section is the text span from one recognized prize header up to the next
// recognized header (or end of text).
type Section struct {
	TierKey string
	Label   string
	Start   int
	Text    string
}

// PrizeWinner is a single winning ticket, e.g. "AB 123456" sold at KOCHI.
type PrizeWinner struct {
	Ticket   string `bson:"ticket" json:"ticket"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
}

// PrizeRecord holds one prize tier. Winners is used by tiers announced with
// full ticket codes, Numbers by tiers announced with 4 digit endings.
type PrizeRecord struct {
	Label   string        `bson:"label" json:"label"`
	Amount  int64         `bson:"amount" json:"amount"`
	Winners []PrizeWinner `bson:"winners,omitempty" json:"winners,omitempty"`
	Numbers []string      `bson:"numbers,omitempty" json:"numbers,omitempty"`
	// Unparsed keeps digit fragments that could not form a complete 4 digit
	// number, so a lossy split is visible to reviewers.
	Unparsed []string `bson:"unparsed,omitempty" json:"unparsed,omitempty"`
}

// IsTicketStyle reports whether the record lists full ticket winners.
func (p PrizeRecord) IsTicketStyle() bool {
	return len(p.Winners) > 0
}

// SoleWinner returns the winner of a single-winner tier.
func (p PrizeRecord) SoleWinner() (PrizeWinner, bool) {
	if len(p.Winners) != 1 {
		return PrizeWinner{}, false
	}
	return p.Winners[0], true
}

// DrawInfo is the draw level metadata found in the header and footer of a
// result bulletin. Any field may be empty.
type DrawInfo struct {
	LotteryName      string
	DrawNumber       string
	DrawDate         string
	DrawTime         string
	Location         string
	NextDrawDate     string
	NextDrawLocation string
	IssuedBy         string
	IssuerTitle      string
}

// ParsedLotteryResult is the structured form of one result bulletin.
// Prizes is keyed by tier key ("firstPrize", "consolationPrize", ...); tiers
// that were not found in the source are absent.
type ParsedLotteryResult struct {
	LotteryName      string                 `bson:"lotteryName" json:"lotteryName"`
	DrawNumber       string                 `bson:"drawNumber" json:"drawNumber"`
	DrawDate         string                 `bson:"drawDate" json:"drawDate"`
	DrawTime         string                 `bson:"drawTime" json:"drawTime"`
	Location         string                 `bson:"location" json:"location"`
	Prizes           map[string]PrizeRecord `bson:"prizes" json:"prizes"`
	NextDrawDate     string                 `bson:"nextDrawDate,omitempty" json:"nextDrawDate,omitempty"`
	NextDrawLocation string                 `bson:"nextDrawLocation,omitempty" json:"nextDrawLocation,omitempty"`
	IssuedBy         string                 `bson:"issuedBy,omitempty" json:"issuedBy,omitempty"`
	IssuerTitle      string                 `bson:"issuerTitle,omitempty" json:"issuerTitle,omitempty"`
}

// Prize returns the record for a tier key.
func (r *ParsedLotteryResult) Prize(key string) (PrizeRecord, bool) {
	if r == nil || r.Prizes == nil {
		return PrizeRecord{}, false
	}
	p, ok := r.Prizes[key]
	return p, ok
}

// ApplyDrawInfo copies header and footer fields onto the result.
func (r *ParsedLotteryResult) ApplyDrawInfo(info DrawInfo) {
	r.LotteryName = info.LotteryName
	r.DrawNumber = info.DrawNumber
	r.DrawDate = info.DrawDate
	r.DrawTime = info.DrawTime
	r.Location = info.Location
	r.NextDrawDate = info.NextDrawDate
	r.NextDrawLocation = info.NextDrawLocation
	r.IssuedBy = info.IssuedBy
	r.IssuerTitle = info.IssuerTitle
}

// TicketValidationResult is the outcome of checking a user supplied ticket.
type TicketValidationResult struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Error      string `json:"error,omitempty"`
}

// PrizeInfo describes a winning match.
type PrizeInfo struct {
	Amount    int64     `json:"amount"`
	Level     string    `json:"level"`
	MatchType MatchKind `json:"matchType"`
	Ticket    string    `json:"ticket"`
	Location  string    `json:"location,omitempty"`
}

// PrizeMatch is the verdict for a ticket against a result.
type PrizeMatch struct {
	Won   bool       `json:"won"`
	Prize *PrizeInfo `json:"prize,omitempty"`
}

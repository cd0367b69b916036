// Package parser turns the plain text of a lottery result bulletin into a
// lottery.ParsedLotteryResult.
//
// Parsing is best effort. A field or tier whose pattern does not match is
// left empty or absent; Parse never fails and never panics for any input.
package parser

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/textclean"
)

// Parser extracts results using one pattern set. It holds no per-call state
// and is safe for concurrent use.
type Parser struct {
	patterns *patterns.Set
	logger   *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for soft-miss and recovery events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a parser for the given pattern set. A nil set means
// patterns.Default().
func New(ps *patterns.Set, opts ...Option) *Parser {
	if ps == nil {
		ps = patterns.Default()
	}
	p := &Parser{patterns: ps, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = sync.OnceValue(func() *Parser { return New(nil) })

// Parse runs the default parser over raw.
func Parse(raw string) *lottery.ParsedLotteryResult {
	return defaultParser().Parse(raw)
}

// Parse normalizes raw, extracts the draw metadata and every prize tier it
// can find. A tier that never appears in the text is absent from Prizes.
func (p *Parser) Parse(raw string) (result *lottery.ParsedLotteryResult) {
	result = &lottery.ParsedLotteryResult{Prizes: make(map[string]lottery.PrizeRecord)}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parser.parse.recovered", "panic", fmt.Sprint(r), "bytes", len(raw))
			result = &lottery.ParsedLotteryResult{Prizes: make(map[string]lottery.PrizeRecord)}
		}
	}()

	text := textclean.Normalize(raw)
	if text == "" {
		return result
	}

	result.ApplyDrawInfo(p.ExtractHeader(text))

	for _, sec := range p.Segment(text) {
		tier, ok := p.patterns.TierByKey(sec.TierKey)
		if !ok {
			continue
		}
		record := p.ExtractPrize(tier, sec.Text)
		if len(record.Unparsed) > 0 {
			p.logger.Warn("parser.prize.unparsed_digits",
				"tier", tier.Key, "fragments", record.Unparsed)
		}
		result.Prizes[tier.Key] = record
	}

	p.logger.Debug("parser.parse.done",
		"lotteryName", result.LotteryName,
		"drawNumber", result.DrawNumber,
		"tiers", len(result.Prizes))
	return result
}

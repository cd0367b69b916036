// Package prize decides whether a ticket won anything in a parsed result.
package prize

import (
	"strings"
	"sync"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/ticket"
)

// Matcher checks tickets against results in the tier priority of its
// pattern set. It is safe for concurrent use.
type Matcher struct {
	tiers []patterns.Tier
}

// NewMatcher returns a matcher for ps. A nil set means patterns.Default().
func NewMatcher(ps *patterns.Set) *Matcher {
	if ps == nil {
		ps = patterns.Default()
	}
	return &Matcher{tiers: ps.TiersByCheckOrder()}
}

var defaultMatcher = sync.OnceValue(func() *Matcher { return NewMatcher(nil) })

// Check runs the default matcher.
func Check(t string, result *lottery.ParsedLotteryResult) lottery.PrizeMatch {
	return defaultMatcher().Check(t, result)
}

// Check compares t with the winners of the full-ticket tiers, then its last
// four digits with the numbers of the remaining tiers. The first tier that
// matches wins. t is expected to have passed ticket.Validate.
func (m *Matcher) Check(t string, result *lottery.ParsedLotteryResult) lottery.PrizeMatch {
	if result == nil {
		return lottery.PrizeMatch{}
	}
	normalized := ticket.Normalize(t)
	digits := ticket.Number(normalized)

	for _, tier := range m.tiers {
		rec, ok := result.Prize(tier.Key)
		if !ok {
			continue
		}
		switch tier.Match {
		case lottery.MatchFull:
			for _, w := range rec.Winners {
				if strings.EqualFold(w.Ticket, normalized) {
					return won(rec, tier, lottery.MatchFull, normalized, w.Location)
				}
			}
		case lottery.MatchLast4:
			last4 := ticket.Last4(digits)
			for _, n := range rec.Numbers {
				if endsWith(digits, last4, n) {
					return won(rec, tier, lottery.MatchLast4, n, "")
				}
			}
		}
	}
	return lottery.PrizeMatch{}
}

func won(rec lottery.PrizeRecord, tier patterns.Tier, kind lottery.MatchKind, t, location string) lottery.PrizeMatch {
	return lottery.PrizeMatch{
		Won: true,
		Prize: &lottery.PrizeInfo{
			Amount:    rec.Amount,
			Level:     tier.Label,
			MatchType: kind,
			Ticket:    t,
			Location:  location,
		},
	}
}

// endsWith reports whether the ticket digits end in the listed number. Four
// digit numbers are compared with the ticket's last four digits, five digit
// ones with its last five.
func endsWith(digits, last4, n string) bool {
	if len(n) == 4 {
		return n == last4
	}
	return len(digits) >= len(n) && strings.HasSuffix(digits, n)
}

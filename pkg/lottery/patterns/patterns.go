// Package patterns is the fixed table of textual matchers used to pull
// draw metadata and prize tiers out of result bulletin text.
//
// A Set is built once and shared read-only; compiled regular expressions are
// safe for concurrent use, so a single Set can serve any number of parse and
// check calls at the same time.
package patterns

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var defaultTiers string

// Set is an immutable pattern library. Its fields must not be modified after
// construction.
type Set struct {
	tiers []Tier
	byKey map[string]int

	// PrizeHeader matches a tier header at the start of a section, with the
	// amount in group 1 when present.
	PrizeHeader *regexp.Regexp
	// Amount matches "Rs" followed by a digit group anywhere.
	Amount *regexp.Regexp
	// Winner matches a full ticket code with an optional parenthesized
	// location: series (1), digits (2), location (3).
	Winner *regexp.Regexp
	// NumberSeparator splits a number list into tokens.
	NumberSeparator *regexp.Regexp

	LotteryName      *regexp.Regexp
	NameArticle      *regexp.Regexp
	DrawNumber       *regexp.Regexp
	OrdinalSuffix    *regexp.Regexp
	Date             *regexp.Regexp
	Time             *regexp.Regexp
	Venue            *regexp.Regexp
	VenueLoose       *regexp.Regexp
	NextDrawDate     *regexp.Regexp
	NextDrawLocation *regexp.Regexp
	Issuer           *regexp.Regexp
}

// Tier is a prize category as configured in the tier catalog.
type Tier struct {
	Key        string
	Label      string
	Match      lottery.MatchKind
	CheckOrder int
	Headers    []Header
}

// Header is one spelling of a tier header.
type Header struct {
	Text     string
	plain    *regexp.Regexp
	anchored *regexp.Regexp
}

type catalog struct {
	Tiers []struct {
		Key        string   `yaml:"key"`
		Label      string   `yaml:"label"`
		Headers    []string `yaml:"headers"`
		Match      string   `yaml:"match"`
		CheckOrder int      `yaml:"check_order"`
	} `yaml:"tiers"`
}

var defaultSet = sync.OnceValue(func() *Set {
	s, err := Load(strings.NewReader(defaultTiers))
	if err != nil {
		panic(fmt.Sprintf("patterns: embedded tier catalog: %v", err))
	}
	return s
})

// Default returns the process-wide pattern set built from the embedded tier
// catalog.
func Default() *Set {
	return defaultSet()
}

// Load builds a pattern set from a YAML tier catalog.
func Load(r io.Reader) (*Set, error) {
	var c catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding tier catalog: %w", err)
	}
	if len(c.Tiers) == 0 {
		return nil, fmt.Errorf("tier catalog has no tiers")
	}

	s := newSet()
	for i, t := range c.Tiers {
		if t.Key == "" || t.Label == "" {
			return nil, fmt.Errorf("tier %d: key and label are required", i)
		}
		if _, dup := s.byKey[t.Key]; dup {
			return nil, fmt.Errorf("tier %q defined twice", t.Key)
		}
		if len(t.Headers) == 0 {
			return nil, fmt.Errorf("tier %q: at least one header is required", t.Key)
		}
		kind := lottery.MatchKind(t.Match)
		if kind != lottery.MatchFull && kind != lottery.MatchLast4 {
			return nil, fmt.Errorf("tier %q: unknown match kind %q", t.Key, t.Match)
		}

		tier := Tier{Key: t.Key, Label: t.Label, Match: kind, CheckOrder: t.CheckOrder}
		for _, h := range t.Headers {
			header, err := compileHeader(h)
			if err != nil {
				return nil, fmt.Errorf("tier %q: %w", t.Key, err)
			}
			tier.Headers = append(tier.Headers, header)
		}
		s.byKey[t.Key] = len(s.tiers)
		s.tiers = append(s.tiers, tier)
	}
	return s, nil
}

// LoadFile reads a YAML tier catalog from path. An empty path means the
// embedded catalog.
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tier catalog: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

func newSet() *Set {
	return &Set{
		byKey: make(map[string]int),

		PrizeHeader:     regexp.MustCompile(`(?i)^\s*(?:\d{1,2}\s*(?:st|nd|rd|th)|cons(?:olation)?)[\s-]+prize(?:[\s\-:.]*rs[\s:.]*([0-9][0-9,]*)(?:\s*/-|\s*/)?)?`),
		Amount:          regexp.MustCompile(`(?i)\bRs[\s:.]*([0-9][0-9,]*)(?:\s*/-|\s*/)?`),
		Winner:          regexp.MustCompile(`(?i)([A-Z]{2})\s?(\d{6})(?:\s*\(([^()]*)\))?`),
		NumberSeparator: regexp.MustCompile(`[\s,]+`),

		LotteryName:      regexp.MustCompile(`(?i)([A-Z][A-Z \t-]*?)[ \t]+LOTTERY[ \t]+NO\b`),
		NameArticle:      regexp.MustCompile(`(?i)^in\s+`),
		DrawNumber:       regexp.MustCompile(`(?i)LOTTERY\s+NO\b[.:]?\s*([A-Z0-9-]+)`),
		OrdinalSuffix:    regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)$`),
		Date:             regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`),
		Time:             regexp.MustCompile(`(?i)(?:^|[:.,\s])(\d{1,2})\s*[:.]\s*(\d{2})\s*([AP])\.?\s*M\b`),
		Venue:            regexp.MustCompile(`(?s)\bAT\s+(.*?)\s*(?i:1st[\s-]+Prize)`),
		VenueLoose:       regexp.MustCompile(`(?is)\bat\s+(.*?)\s*1st[\s-]+Prize`),
		NextDrawDate:     regexp.MustCompile(`(?is)Next\s+.*?Draw.*?held\s+on[\s:.\-]*(\d{2}/\d{2}/\d{4})`),
		NextDrawLocation: regexp.MustCompile(`(?im)held\s+on[\s:.\-]*\d{2}/\d{2}/\d{4}\s+at\s+([^\n]*?)\s*(?:Directorate|$)`),
		Issuer:           regexp.MustCompile(`(?:Sd/-\s*)?([A-Z][A-Z. ]{2,}?)\s+((?i:(?:Joint|Deputy|Additional|Assistant|General)\s+)?(?i:Director)\b)`),
	}
}

// compileHeader turns "4th Prize" into a matcher that also accepts
// "4th-Prize" and "4TH  PRIZE". The anchored form additionally requires an
// "Rs" amount right after the label.
func compileHeader(text string) (Header, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Header{}, fmt.Errorf("empty header")
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	body := strings.Join(words, `[\s-]+`)

	plain, err := regexp.Compile(`(?i)` + body)
	if err != nil {
		return Header{}, fmt.Errorf("header %q: %w", text, err)
	}
	anchored, err := regexp.Compile(`(?i)` + body + `[\s\-:.]*Rs[\s:.]*\d`)
	if err != nil {
		return Header{}, fmt.Errorf("header %q: %w", text, err)
	}
	return Header{Text: text, plain: plain, anchored: anchored}, nil
}

// Locate returns the offset of the header in text. An occurrence followed by
// an amount wins over a bare mention; otherwise the first mention is used.
func (h Header) Locate(text string) (int, bool) {
	if loc := h.anchored.FindStringIndex(text); loc != nil {
		return loc[0], true
	}
	if loc := h.plain.FindStringIndex(text); loc != nil {
		return loc[0], true
	}
	return -1, false
}

// Tiers returns the tiers in catalog order.
func (s *Set) Tiers() []Tier {
	out := make([]Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// TiersByCheckOrder returns the tiers sorted by matching priority.
func (s *Set) TiersByCheckOrder() []Tier {
	out := s.Tiers()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckOrder < out[j].CheckOrder
	})
	return out
}

// TierByKey looks up a tier by its key, e.g. "firstPrize".
func (s *Set) TierByKey(key string) (Tier, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Tier{}, false
	}
	return s.tiers[i], true
}

package parser

import (
	"sort"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

// Segment slices normalized text into one section per tier header found.
// Each tier is located independently; sections are ordered by offset and
// run up to the next section's start or the end of text.
func (p *Parser) Segment(text string) []lottery.Section {
	var found []lottery.Section
	for _, tier := range p.patterns.Tiers() {
		start := -1
		for _, h := range tier.Headers {
			if at, ok := h.Locate(text); ok && (start < 0 || at < start) {
				start = at
			}
		}
		if start < 0 {
			continue
		}
		found = append(found, lottery.Section{TierKey: tier.Key, Label: tier.Label, Start: start})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].Start < found[j].Start })

	for i := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].Start
		}
		found[i].Text = text[found[i].Start:end]
	}
	return found
}

package parser

import (
	"strings"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

// ExtractHeader pulls the draw metadata out of normalized text. Every field
// is optional and left empty when its pattern does not match.
func (p *Parser) ExtractHeader(text string) lottery.DrawInfo {
	ps := p.patterns
	var info lottery.DrawInfo

	if m := ps.LotteryName.FindStringSubmatch(text); m != nil {
		info.LotteryName = strings.TrimSpace(ps.NameArticle.ReplaceAllString(strings.TrimSpace(m[1]), ""))
	}
	if m := ps.DrawNumber.FindStringSubmatch(text); m != nil {
		info.DrawNumber = ps.OrdinalSuffix.ReplaceAllString(m[1], "$1")
	}

	dateAt := -1
	if m := ps.Date.FindStringSubmatchIndex(text); m != nil {
		dateAt = m[0]
		info.DrawDate = isoDate(text, m)
	}
	info.DrawTime = p.drawTime(text, dateAt)

	if m := ps.Venue.FindStringSubmatch(text); m != nil {
		info.Location = cleanVenue(m[1])
	} else if m := ps.VenueLoose.FindStringSubmatch(text); m != nil {
		info.Location = cleanVenue(m[1])
	}

	// The next draw location is only read from the "Next ... held on" phrase,
	// the draw line itself also says "held on DATE at".
	if m := ps.NextDrawDate.FindStringSubmatchIndex(text); m != nil {
		if d := ps.Date.FindStringSubmatchIndex(text[m[2]:m[3]]); d != nil {
			info.NextDrawDate = isoDate(text[m[2]:m[3]], d)
		}
		if l := ps.NextDrawLocation.FindStringSubmatch(text[m[0]:]); l != nil {
			info.NextDrawLocation = strings.Trim(strings.Join(strings.Fields(l[1]), " "), " ,.")
		}
	}

	if m := ps.Issuer.FindStringSubmatch(text); m != nil {
		info.IssuedBy = strings.Trim(m[1], " .")
		info.IssuerTitle = strings.Join(strings.Fields(m[2]), " ")
	}
	return info
}

// isoDate formats a Date match (DD, MM, YYYY groups) as YYYY-MM-DD.
func isoDate(s string, m []int) string {
	return s[m[6]:m[7]] + "-" + s[m[4]:m[5]] + "-" + s[m[2]:m[3]]
}

// drawTime prefers a clock time printed after the draw date and falls back to
// the first one anywhere. The result is written as "3:00 PM".
func (p *Parser) drawTime(text string, dateAt int) string {
	re := p.patterns.Time
	var m []string
	if dateAt >= 0 {
		m = re.FindStringSubmatch(text[dateAt:])
	}
	if m == nil {
		m = re.FindStringSubmatch(text)
	}
	if m == nil {
		return ""
	}
	return m[1] + ":" + m[2] + " " + strings.ToUpper(m[3]) + "M"
}

func cleanVenue(s string) string {
	s = strings.TrimSpace(strings.Join(strings.Fields(s), " "))
	return strings.TrimSuffix(s, ",")
}

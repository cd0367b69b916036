package parser

import (
	"strconv"
	"strings"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/textclean"
)

// ExtractPrize reads the amount and the winners of one section.
//
// A section listing at least one full ticket code is ticket style and fills
// Winners; otherwise it is number style and fills Numbers. The tier's match
// kind is not consulted, real bulletins do not always follow it.
func (p *Parser) ExtractPrize(tier patterns.Tier, text string) lottery.PrizeRecord {
	record := lottery.PrizeRecord{Label: tier.Label}

	amount, body := p.splitHeader(text)
	record.Amount = amount

	if winners := p.winners(body); len(winners) > 0 {
		record.Winners = winners
		return record
	}
	record.Numbers, record.Unparsed = p.numbers(body)
	return record
}

// splitHeader returns the amount announced by the section header and the
// text that follows it.
func (p *Parser) splitHeader(text string) (int64, string) {
	if m := p.patterns.PrizeHeader.FindStringSubmatchIndex(text); m != nil {
		var amount int64
		if m[2] >= 0 {
			amount = parseAmount(text[m[2]:m[3]])
		}
		return amount, text[m[1]:]
	}
	if m := p.patterns.Amount.FindStringSubmatchIndex(text); m != nil {
		return parseAmount(text[m[2]:m[3]]), text[m[1]:]
	}
	return 0, text
}

func parseAmount(s string) int64 {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (p *Parser) winners(body string) []lottery.PrizeWinner {
	var out []lottery.PrizeWinner
	for _, m := range p.patterns.Winner.FindAllStringSubmatchIndex(body, -1) {
		// Reject series glued to a word and digit runs longer than six.
		if m[0] > 0 && isLetter(body[m[0]-1]) {
			continue
		}
		if m[5] < len(body) && isDigit(body[m[5]]) {
			continue
		}
		w := lottery.PrizeWinner{
			Ticket: strings.ToUpper(body[m[2]:m[3]]) + " " + body[m[4]:m[5]],
		}
		if m[6] >= 0 {
			w.Location = strings.TrimSpace(body[m[6]:m[7]])
		}
		out = append(out, w)
	}
	return out
}

// numbers keeps 4 and 5 digit tokens and splits runs of 8 or more digits
// into 4 digit numbers. Anything else is skipped.
func (p *Parser) numbers(body string) (numbers, unparsed []string) {
	for _, tok := range p.patterns.NumberSeparator.Split(body, -1) {
		tok = strings.Trim(tok, ".;")
		if !allDigits(tok) {
			continue
		}
		switch n := len(tok); {
		case n == 4 || n == 5:
			numbers = append(numbers, tok)
		case n >= 8:
			chunks, rest := textclean.SplitDigits(tok)
			numbers = append(numbers, chunks...)
			if rest != "" {
				unparsed = append(unparsed, rest)
			}
		}
	}
	return numbers, unparsed
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isLetter(b byte) bool { return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' }

// Package textclean canonicalizes PDF-extracted bulletin text and splits
// mashed digit runs into 4 digit numbers.
package textclean

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reSplitPrize = regexp.MustCompile(`(?i)(\d+(?:st|nd|rd|th))\s*\n\s*(Prize)`)
	reSplitRs    = regexp.MustCompile(`(?i)(Rs)\s*\n\s*(:)`)
	reColon      = regexp.MustCompile(`\s*:\s*`)
	reNonDigit   = regexp.MustCompile(`\D`)
)

// foldSpace maps exotic line and word separators left over after NFKC.
func foldSpace(r rune) rune {
	switch {
	case r == '\u0085' || r == '\u2028' || r == '\u2029':
		return '\n'
	case r != ' ' && unicode.Is(unicode.Zs, r):
		return ' '
	}
	return r
}

// Normalize returns the canonical form of raw bulletin text:
//   - every line ending becomes "\n"
//   - no-break and other Unicode spaces become " "
//   - "1st\nPrize" and "Rs\n:" split by a line break are rejoined
//   - every colon is written as ": "
//
// Normalize never fails and is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := reCRLF.ReplaceAllString(raw, "\n")
	// Chain keeps internal buffers, so it is built per call.
	fold := transform.Chain(norm.NFKC, runes.Map(foldSpace))
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = reSplitPrize.ReplaceAllString(s, "$1 $2")
	s = reSplitRs.ReplaceAllString(s, "$1 $2")
	s = reColon.ReplaceAllString(s, ": ")
	return s
}

// SplitDigits drops every non-digit and cuts the rest into 4 digit numbers,
// left to right. Digits left over after the last complete number are
// returned as remainder.
func SplitDigits(s string) (chunks []string, remainder string) {
	digits := reNonDigit.ReplaceAllString(s, "")
	n := len(digits) / 4
	chunks = make([]string, 0, n)
	for i := 0; i < n*4; i += 4 {
		chunks = append(chunks, digits[i:i+4])
	}
	return chunks, digits[n*4:]
}

// ChunkDigits is SplitDigits without the remainder. A trailing group shorter
// than 4 digits is dropped.
func ChunkDigits(s string) []string {
	chunks, _ := SplitDigits(s)
	return chunks
}

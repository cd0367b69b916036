// Package ticket validates and normalizes user entered ticket numbers.
package ticket

import (
	"regexp"
	"strings"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

const (
	errEmpty  = "Please enter your ticket number"
	errFormat = "Invalid format. Use format like 'RT 207473' or '207473'"
)

var (
	reFull   = regexp.MustCompile(`^([A-Z]{2}) ?(\d{6})$`)
	reDigits = regexp.MustCompile(`^\d{6}$`)
	reGlued  = regexp.MustCompile(`^([A-Z]{2})(\d{6})$`)
	reNonDig = regexp.MustCompile(`\D`)
)

// Validate accepts "RT 207473", "RT207473" and "rt 207473" as "RT 207473",
// and a bare "207473" as is. Any other input is rejected with a message
// suitable for showing to the user.
func Validate(s string) lottery.TicketValidationResult {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return lottery.TicketValidationResult{Error: errEmpty}
	}
	if m := reFull.FindStringSubmatch(t); m != nil {
		return lottery.TicketValidationResult{Valid: true, Normalized: m[1] + " " + m[2]}
	}
	if reDigits.MatchString(t) {
		return lottery.TicketValidationResult{Valid: true, Normalized: t}
	}
	return lottery.TicketValidationResult{Error: errFormat}
}

// Normalize upper-cases s and inserts the space in "RT207473". It does not
// validate.
func Normalize(s string) string {
	return reGlued.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "$1 $2")
}

// Last4 returns the rightmost four digits of s, or fewer if s has fewer.
func Last4(s string) string {
	d := Number(s)
	if len(d) > 4 {
		return d[len(d)-4:]
	}
	return d
}

// Number returns the digits of s.
func Number(s string) string {
	return reNonDig.ReplaceAllString(s, "")
}

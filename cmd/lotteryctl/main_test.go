package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

const bulletin = `KERALA STATE LOTTERIES - RESULT
KARUNYA LOTTERY NO.KR-650th DRAW held on:- 12/04/2024
1st Prize Rs :8000000/- 1) KA 123456 (KOLLAM)
4th Prize Rs :5000/- 0123 4567 8901`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, os.WriteFile(path, []byte(bulletin), 0o600))

	out, err := execute(t, "", "parse", path)
	require.NoError(t, err)

	var res lottery.ParsedLotteryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "KR-650", res.DrawNumber)
	assert.Equal(t, "2024-04-12", res.DrawDate)
	assert.Contains(t, res.Prizes, "firstPrize")
	assert.Equal(t, []string{"0123", "4567", "8901"}, res.Prizes["fourthPrize"].Numbers)
}

func TestCheckCommandFromStdin(t *testing.T) {
	out, err := execute(t, bulletin, "check", "-", "zz994567")
	require.NoError(t, err)

	var m lottery.PrizeMatch
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.True(t, m.Won)
	assert.Equal(t, "4th Prize", m.Prize.Level)
	assert.Equal(t, lottery.MatchLast4, m.Prize.MatchType)
}

func TestCheckCommandRejectsBadTicket(t *testing.T) {
	_, err := execute(t, bulletin, "check", "-", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid format")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "", "validate", "rt207473")
	require.NoError(t, err)

	var v lottery.TicketValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, "RT 207473", v.Normalized)
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

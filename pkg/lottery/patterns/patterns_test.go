package patterns

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NotNil(t, s)
	assert.Same(t, s, Default())

	tiers := s.Tiers()
	require.Len(t, tiers, 11)
	assert.Equal(t, "firstPrize", tiers[0].Key)

	cons, ok := s.TierByKey("consolationPrize")
	require.True(t, ok)
	assert.Equal(t, "Consolation Prize", cons.Label)
	assert.Equal(t, lottery.MatchFull, cons.Match)
	assert.Len(t, cons.Headers, 2)

	fourth, ok := s.TierByKey("fourthPrize")
	require.True(t, ok)
	assert.Equal(t, lottery.MatchLast4, fourth.Match)

	_, ok = s.TierByKey("eleventhPrize")
	assert.False(t, ok)
}

func TestTiersByCheckOrder(t *testing.T) {
	var keys []string
	for _, tier := range Default().TiersByCheckOrder() {
		keys = append(keys, tier.Key)
	}
	assert.Equal(t, []string{
		"firstPrize", "consolationPrize", "secondPrize", "thirdPrize",
		"fourthPrize", "fifthPrize", "sixthPrize", "seventhPrize",
		"eighthPrize", "ninthPrize", "tenthPrize",
	}, keys)
}

func TestTiersReturnsCopy(t *testing.T) {
	s := Default()
	tiers := s.Tiers()
	tiers[0].Key = "changed"
	assert.Equal(t, "firstPrize", s.Tiers()[0].Key)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		wantErr string
	}{
		{"not yaml", "tiers: [", "decoding tier catalog"},
		{"no tiers", "tiers: []", "no tiers"},
		{"missing label", "tiers:\n  - key: a\n    headers: [A Prize]\n    match: full\n", "key and label"},
		{"duplicate", "tiers:\n  - {key: a, label: A, headers: [A Prize], match: full}\n  - {key: a, label: B, headers: [B Prize], match: full}\n", "defined twice"},
		{"no headers", "tiers:\n  - {key: a, label: A, match: full}\n", "at least one header"},
		{"bad match", "tiers:\n  - {key: a, label: A, headers: [A Prize], match: partial}\n", "unknown match kind"},
		{"blank header", "tiers:\n  - {key: a, label: A, headers: [\"  \"], match: full}\n", "empty header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.catalog))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCustomCatalog(t *testing.T) {
	s, err := Load(strings.NewReader(`
tiers:
  - key: bumperPrize
    label: Bumper Prize
    headers: [Bumper Prize]
    match: full
    check_order: 1
`))
	require.NoError(t, err)
	tier, ok := s.TierByKey("bumperPrize")
	require.True(t, ok)
	assert.Equal(t, "Bumper Prize", tier.Label)
	assert.NotNil(t, s.Winner)
}

func TestHeaderLocate(t *testing.T) {
	fourth, ok := Default().TierByKey("fourthPrize")
	require.True(t, ok)
	h := fourth.Headers[0]

	text := "Winners of the 4th Prize are listed below.\n4th Prize Rs: 5000/- 1234"
	at, ok := h.Locate(text)
	require.True(t, ok)
	assert.Equal(t, strings.LastIndex(text, "4th Prize"), at)

	at, ok = h.Locate("header only: 4TH-PRIZE")
	require.True(t, ok)
	assert.Equal(t, 13, at)

	_, ok = h.Locate("5th Prize Rs: 2000")
	assert.False(t, ok)
}

func TestFieldPatterns(t *testing.T) {
	s := Default()

	m := s.Winner.FindStringSubmatch("1) AB 123456 (KOCHI)")
	require.NotNil(t, m)
	assert.Equal(t, []string{"AB 123456 (KOCHI)", "AB", "123456", "KOCHI"}, m)

	m = s.PrizeHeader.FindStringSubmatch("Cons Prize-Rs: 8000/- AB 123456")
	require.NotNil(t, m)
	assert.Equal(t, "8000", m[1])

	m = s.Amount.FindStringSubmatch("some text Rs.1,00,000/-")
	require.NotNil(t, m)
	assert.Equal(t, "1,00,000", m[1])

	assert.True(t, s.Issuer.MatchString("Sd/-\nSHIJU K.S\nJoint Director"))
	assert.False(t, s.Issuer.MatchString("THIRUVANANTHAPURAM Directorate"))
}

func TestLoadFile(t *testing.T) {
	s, err := LoadFile("")
	require.NoError(t, err)
	assert.Same(t, Default(), s)

	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  - key: bumperPrize
    label: Bumper Prize
    headers: [Bumper Prize]
    match: full
    check_order: 1
`), 0o600))
	s, err = LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Tiers(), 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("tiers: []"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

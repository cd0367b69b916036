package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
)

const (
	summarySheet = "Summary"
	prizesSheet  = "Prizes"
)

// ExportXLSX renders a stored result as a workbook with a summary sheet and
// one row per winning ticket or number. It returns the file bytes and a
// suggested file name.
func (s *ResultService) ExportXLSX(ctx context.Context, id string) ([]byte, string, error) {
	start := time.Now()

	result, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it instead of adding a sheet.
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, "", fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(prizesSheet); err != nil {
		return nil, "", fmt.Errorf("xlsx sheet: %w", err)
	}

	summary := [][2]string{
		{"Lottery", result.LotteryName},
		{"Draw Number", result.DrawNumber},
		{"Draw Date", result.DrawDate},
		{"Draw Time", result.DrawTime},
		{"Location", result.Location},
		{"Next Draw Date", result.NextDrawDate},
		{"Next Draw Location", result.NextDrawLocation},
		{"Issued By", strings.TrimSpace(result.IssuedBy + " " + result.IssuerTitle)},
	}
	for i, kv := range summary {
		setRow(f, summarySheet, i+1, kv[0], kv[1])
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 20)
	_ = f.SetColWidth(summarySheet, "B", "B", 60)

	setRow(f, prizesSheet, 1, "Tier", "Amount", "Ticket / Number", "Location")
	row := 2
	for _, key := range s.prizeOrder(result) {
		rec := result.Prizes[key]
		for _, w := range rec.Winners {
			setRow(f, prizesSheet, row, rec.Label, rec.Amount, w.Ticket, w.Location)
			row++
		}
		for _, n := range rec.Numbers {
			setRow(f, prizesSheet, row, rec.Label, rec.Amount, n, "")
			row++
		}
		if len(rec.Winners) == 0 && len(rec.Numbers) == 0 {
			setRow(f, prizesSheet, row, rec.Label, rec.Amount, "", "")
			row++
		}
	}
	_ = f.SetColWidth(prizesSheet, "A", "A", 22)
	_ = f.SetColWidth(prizesSheet, "B", "B", 14)
	_ = f.SetColWidth(prizesSheet, "C", "C", 18)
	_ = f.SetColWidth(prizesSheet, "D", "D", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"resultId", id,
		"rows", row-2,
		"bytes", buf.Len(),
		"duration", time.Since(start).String())
	return buf.Bytes(), exportFileName(result), nil
}

// prizeOrder lists the result's tier keys in catalog order, followed by any
// unknown keys sorted by name.
func (s *ResultService) prizeOrder(result *models.LotteryResult) []string {
	keys := make([]string, 0, len(result.Prizes))
	seen := make(map[string]bool, len(result.Prizes))
	for _, tier := range s.patterns.Tiers() {
		if _, ok := result.Prizes[tier.Key]; ok {
			keys = append(keys, tier.Key)
			seen[tier.Key] = true
		}
	}
	var rest []string
	for key := range result.Prizes {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// setRow writes values from column A. Empty strings leave the cell blank.
func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func exportFileName(result *models.LotteryResult) string {
	name := result.DrawNumber
	if name == "" {
		name = result.ID.Hex()
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	return "result-" + name + ".xlsx"
}

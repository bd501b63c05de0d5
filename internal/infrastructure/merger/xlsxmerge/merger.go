// Package xlsxmerge combines the three ledger-bundle spreadsheets (trailing
// twelve, year to date, general ledger) into one workbook with named
// sections. Cell values move over; source formatting does not.
package xlsxmerge

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Merger struct{}

func New() *Merger {
	return &Merger{}
}

type section struct {
	name string
	data []byte
}

// Merge builds a workbook with the sheets "T12", "YTD" and "General Ledger",
// each filled from the first sheet of the corresponding source workbook. All
// three sources must be present; partial merges are the caller's
// responsibility to avoid.
func (m *Merger) Merge(_ context.Context, trailingTwelve, yearToDate, generalLedger []byte) ([]byte, error) {
	sections := []section{
		{name: "T12", data: trailingTwelve},
		{name: "YTD", data: yearToDate},
		{name: "General Ledger", data: generalLedger},
	}

	out := excelize.NewFile()
	defer out.Close()

	for _, s := range sections {
		if len(s.data) == 0 {
			return nil, fmt.Errorf("missing workbook bytes for section %q", s.name)
		}
		if err := copySection(out, s); err != nil {
			return nil, err
		}
	}

	// The implicit default sheet is not one of our sections.
	if err := out.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	buf, err := out.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize merged workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func copySection(out *excelize.File, s section) error {
	src, err := excelize.OpenReader(bytes.NewReader(s.data))
	if err != nil {
		return fmt.Errorf("open workbook for section %q: %w", s.name, err)
	}
	defer src.Close()

	firstSheet := src.GetSheetName(0)
	if firstSheet == "" {
		return fmt.Errorf("workbook for section %q has no sheets", s.name)
	}
	rows, err := src.GetRows(firstSheet)
	if err != nil {
		return fmt.Errorf("read rows for section %q: %w", s.name, err)
	}

	if _, err := out.NewSheet(s.name); err != nil {
		return fmt.Errorf("create sheet %q: %w", s.name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := out.SetSheetRow(s.name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of section %q: %w", i+1, s.name, err)
		}
	}
	return nil
}

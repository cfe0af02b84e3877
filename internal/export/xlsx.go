package export

import (
	"fmt"
	"io"
	"math"

	"github.com/mauv0809/dartledger/internal/stats"
	"github.com/xuri/excelize/v2"
)

const (
	SheetX01     = "X01"
	SheetCricket = "Cricket"
)

type column struct {
	header string
	value  func(r stats.Record) any
}

var x01Columns = []column{
	{"Player", func(r stats.Record) any { return r.Player }},
	{"Legs", func(r stats.Record) any { return r.X01LegsPlayed }},
	{"Won", func(r stats.Record) any { return r.X01LegsWon }},
	{"3DA", func(r stats.Record) any { return round2(r.ThreeDartAverage()) }},
	{"First 9", func(r stats.Record) any { return round2(r.First9Average()) }},
	{"100+", func(r stats.Record) any { return r.X01Tons }},
	{"140+", func(r stats.Record) any { return r.X01Ton40s }},
	{"180", func(r stats.Record) any { return r.X01Ton80s }},
	{"High Turn", func(r stats.Record) any { return r.X01HighTurn }},
	{"High Out", func(r stats.Record) any { return r.X01HighCheckout }},
	{"Avg Finish", func(r stats.Record) any { return round2(r.AverageFinish()) }},
	{"Checkout %", func(r stats.Record) any { return round2(r.CheckoutPercentage()) }},
}

var cricketColumns = []column{
	{"Player", func(r stats.Record) any { return r.Player }},
	{"Legs", func(r stats.Record) any { return r.CricketLegsPlayed }},
	{"Won", func(r stats.Record) any { return r.CricketLegsWon }},
	{"MPR", func(r stats.Record) any { return round2(r.MarksPerRound()) }},
	{"Marks", func(r stats.Record) any { return r.CricketTotalMarks }},
	{"Rounds", func(r stats.Record) any { return r.CricketTotalRounds }},
	{"High Round", func(r stats.Record) any { return r.CricketHighMarkRound }},
	{"5M+", func(r stats.Record) any { return r.CricketFiveMarkRounds }},
}

// WriteLeaderboard writes records as a workbook with one sheet per format.
// A player appears on a sheet only if they played a leg of that format.
func WriteLeaderboard(w io.Writer, records []stats.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetX01); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetCricket); err != nil {
		return err
	}

	var x01, cricket []stats.Record
	for _, r := range records {
		if r.X01LegsPlayed > 0 {
			x01 = append(x01, r)
		}
		if r.CricketLegsPlayed > 0 {
			cricket = append(cricket, r)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return err
	}
	if err := writeSheet(f, SheetX01, x01Columns, x01, header); err != nil {
		return err
	}
	if err := writeSheet(f, SheetCricket, cricketColumns, cricket, header); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []column, records []stats.Record, headerStyle int) error {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c.header
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}

	for i, r := range records {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = c.value(r)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

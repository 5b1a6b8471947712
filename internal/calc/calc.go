// Package calc derives per-record day counts and results and folds them into
// a grand total.
package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/katsayi/internal/record"
)

// Places is the number of decimals results and totals are rounded to.
const Places = 3

type Row struct {
	Record    record.Record
	TotalDays int
	NetDays   int
	Result    decimal.Decimal // unrounded
}

// Rounded returns Result rounded for display and export.
func (r Row) Rounded() decimal.Decimal {
	return r.Result.Round(Places)
}

// DaysBetween returns the signed number of calendar days from start to end.
// Time of day and location are ignored. Spans longer than a time.Duration
// can hold are counted exactly.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int((e.Unix() - s.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func DeriveRow(r record.Record) Row {
	total := DaysBetween(r.Start, r.End)
	net := total - r.ReportedDays
	return Row{
		Record:    r,
		TotalDays: total,
		NetDays:   net,
		Result:    decimal.NewFromInt(int64(net)).Mul(r.Coefficient),
	}
}

// DeriveAll maps records to rows in order. The total is the sum of the
// unrounded results, rounded once at the end.
func DeriveAll(records []record.Record) ([]Row, decimal.Decimal) {
	rows := make([]Row, 0, len(records))
	sum := decimal.Zero
	for _, r := range records {
		row := DeriveRow(r)
		sum = sum.Add(row.Result)
		rows = append(rows, row)
	}
	return rows, sum.Round(Places)
}

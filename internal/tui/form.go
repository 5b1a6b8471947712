package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/record"
)

// defaultMinDate is the earliest date the form accepts unless a setting
// overrides it.
var defaultMinDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// recordForm holds the raw field values of the record form. The pointers
// survive value copies of the owning model.
type recordForm struct {
	city        *string
	start       *string
	end         *string
	reported    *string
	coefficient *string
}

func newRecordForm() recordForm {
	city, start, end, reported, coef := "", "", "", "", ""
	return recordForm{
		city:        &city,
		start:       &start,
		end:         &end,
		reported:    &reported,
		coefficient: &coef,
	}
}

// reset seeds the fields for a new record: both dates today, zero days.
func (f recordForm) reset(today time.Time, coef decimal.Decimal) {
	*f.city = ""
	*f.start = today.Format(record.DateLayout)
	*f.end = today.Format(record.DateLayout)
	*f.reported = "0"
	*f.coefficient = coef.StringFixed(calc.Places)
}

func (f recordForm) load(r record.Record) {
	*f.city = r.City
	*f.start = r.Start.Format(record.DateLayout)
	*f.end = r.End.Format(record.DateLayout)
	*f.reported = strconv.Itoa(r.ReportedDays)
	*f.coefficient = r.Coefficient.StringFixed(calc.Places)
}

// record parses the fields into a Record.
func (f recordForm) record(minDate time.Time) (record.Record, error) {
	start, err := parseDate(*f.start, minDate)
	if err != nil {
		return record.Record{}, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(*f.end, minDate)
	if err != nil {
		return record.Record{}, fmt.Errorf("end date: %w", err)
	}
	reported, err := parseReportedDays(*f.reported)
	if err != nil {
		return record.Record{}, fmt.Errorf("reported days: %w", err)
	}
	coef, err := parseCoefficient(*f.coefficient)
	if err != nil {
		return record.Record{}, fmt.Errorf("coefficient: %w", err)
	}
	return record.Record{
		City:         strings.TrimSpace(*f.city),
		Start:        start,
		End:          end,
		ReportedDays: reported,
		Coefficient:  coef,
	}, nil
}

func (f recordForm) build(minDate time.Time) *huh.Form {
	dateCheck := func(s string) error {
		_, err := parseDate(s, minDate)
		return err
	}
	reportedCheck := func(s string) error {
		_, err := parseReportedDays(s)
		return err
	}
	coefCheck := func(s string) error {
		_, err := parseCoefficient(s)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("City").Placeholder("e.g. Antalya").Value(f.city),
			huh.NewInput().Title("Start date").Description("DD.MM.YYYY").Value(f.start).Validate(dateCheck),
			huh.NewInput().Title("End date").Description("DD.MM.YYYY").Value(f.end).Validate(dateCheck),
			huh.NewInput().Title("Reported days").Value(f.reported).Validate(reportedCheck),
			huh.NewInput().Title("Coefficient").Description("step 0.001").Value(f.coefficient).Validate(coefCheck),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

// parseDate reads a DD.MM.YYYY date no earlier than minDate.
func parseDate(s string, minDate time.Time) (time.Time, error) {
	t, err := time.Parse(record.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("use DD.MM.YYYY")
	}
	if t.Before(minDate) {
		return time.Time{}, fmt.Errorf("must not be before %s", minDate.Format(record.DateLayout))
	}
	return t, nil
}

func parseReportedDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

// parseCoefficient accepts a non-negative decimal with either "." or "," as
// the separator, rounded to the form's three decimals.
func parseCoefficient(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("must not be negative")
	}
	return d.Round(calc.Places), nil
}

// minDateSetting parses the stored floor date, falling back to the default.
func minDateSetting(v string) time.Time {
	t, err := time.Parse(record.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return defaultMinDate
	}
	return t
}

// today returns the current local date at midnight UTC, the form's default.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// minRepresentableDate bounds the floor-date setting itself.
var minRepresentableDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/katsayi/internal/record"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", date(2024, 1, 1), date(2024, 1, 1), 0},
		{"ten days", date(2024, 1, 1), date(2024, 1, 11), 10},
		{"reversed", date(2024, 1, 10), date(2024, 1, 1), -9},
		{"leap february", date(2024, 2, 1), date(2024, 3, 1), 29},
		{"across years", date(2023, 12, 31), date(2024, 1, 1), 1},
		{"time of day ignored", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), 1},
		{"four centuries", date(2000, 1, 1), date(2400, 1, 1), 146097},
		{"four centuries reversed", date(2400, 1, 1), date(2000, 1, 1), -146097},
		{"from year one", date(1, 1, 1), date(2000, 1, 1), 730119},
		{"local dates", time.Date(2024, 3, 30, 0, 0, 0, 0, time.FixedZone("TRT", 3*3600)), time.Date(2024, 4, 2, 0, 0, 0, 0, time.FixedZone("TRT", 3*3600)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeriveRowLongSpan(t *testing.T) {
	row := DeriveRow(record.Record{
		City:         "Uzun",
		Start:        date(2000, 1, 1),
		End:          date(2400, 1, 1),
		ReportedDays: 97,
		Coefficient:  dec("0.5"),
	})
	if row.TotalDays != 146097 {
		t.Fatalf("TotalDays = %d, want 146097", row.TotalDays)
	}
	if row.NetDays != 146000 {
		t.Fatalf("NetDays = %d, want 146000", row.NetDays)
	}
	if !row.Result.Equal(dec("73000")) {
		t.Fatalf("Result = %s, want 73000", row.Result)
	}
}

func TestDeriveRowAntalya(t *testing.T) {
	r := record.Record{
		City:         "Antalya",
		Start:        date(2024, 1, 1),
		End:          date(2024, 1, 11),
		ReportedDays: 2,
		Coefficient:  dec("1.5"),
	}
	row := DeriveRow(r)

	if row.TotalDays != 10 {
		t.Fatalf("TotalDays = %d, want 10", row.TotalDays)
	}
	if row.NetDays != 8 {
		t.Fatalf("NetDays = %d, want 8", row.NetDays)
	}
	if !row.Result.Equal(dec("12")) {
		t.Fatalf("Result = %s, want 12", row.Result)
	}
	if row.Record.City != "Antalya" {
		t.Fatal("row should carry its record")
	}
}

func TestDeriveRowReversedDates(t *testing.T) {
	r := record.Record{
		Start:       date(2024, 1, 10),
		End:         date(2024, 1, 1),
		Coefficient: dec("2"),
	}
	row := DeriveRow(r)

	if row.TotalDays != -9 {
		t.Fatalf("TotalDays = %d, want -9", row.TotalDays)
	}
	if row.NetDays != -9 {
		t.Fatalf("NetDays = %d, want -9", row.NetDays)
	}
	if !row.Result.Equal(dec("-18")) {
		t.Fatalf("Result = %s, want -18", row.Result)
	}
}

func TestDeriveRowIsExact(t *testing.T) {
	tests := []struct {
		days, reported int
		coef           string
	}{
		{10, 0, "0.001"},
		{365, 12, "1.234"},
		{7, 9, "0.333"},
		{0, 0, "5"},
		{30, 3, "0"},
	}

	for _, tt := range tests {
		r := record.Record{
			Start:        date(2024, 1, 1),
			End:          date(2024, 1, 1).AddDate(0, 0, tt.days),
			ReportedDays: tt.reported,
			Coefficient:  dec(tt.coef),
		}
		row := DeriveRow(r)
		wantNet := tt.days - tt.reported
		if row.NetDays != wantNet {
			t.Errorf("NetDays = %d, want %d", row.NetDays, wantNet)
		}
		want := decimal.NewFromInt(int64(wantNet)).Mul(dec(tt.coef))
		if !row.Result.Equal(want) {
			t.Errorf("Result = %s, want %s", row.Result, want)
		}
	}
}

func TestRowRounded(t *testing.T) {
	row := Row{Result: dec("1.23456")}
	if got := row.Rounded(); !got.Equal(dec("1.235")) {
		t.Fatalf("Rounded = %s, want 1.235", got)
	}
}

func TestDeriveAllEmpty(t *testing.T) {
	rows, total := DeriveAll(nil)
	if rows == nil || len(rows) != 0 {
		t.Fatalf("rows = %v, want empty non-nil slice", rows)
	}
	if !total.IsZero() {
		t.Fatalf("total = %s, want 0", total)
	}
}

func TestDeriveAllTotal(t *testing.T) {
	records := []record.Record{
		{City: "Antalya", Start: date(2024, 1, 1), End: date(2024, 1, 11), ReportedDays: 2, Coefficient: dec("1.5")},
		{City: "Izmir", Start: date(2024, 1, 1), End: date(2024, 1, 6), ReportedDays: 0, Coefficient: dec("1.5")},
	}
	rows, total := DeriveAll(records)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Record.City != "Antalya" || rows[1].Record.City != "Izmir" {
		t.Fatal("rows should keep input order")
	}
	if !rows[1].Result.Equal(dec("7.5")) {
		t.Fatalf("rows[1].Result = %s, want 7.5", rows[1].Result)
	}
	if !total.Equal(dec("19.5")) {
		t.Fatalf("total = %s, want 19.5", total)
	}
}

func TestDeriveAllSumsBeforeRounding(t *testing.T) {
	// Each result is 0.0005: rounded per row they would add up to 0.002.
	r := record.Record{
		Start:       date(2024, 1, 1),
		End:         date(2024, 1, 2),
		Coefficient: dec("0.0005"),
	}
	rows, total := DeriveAll([]record.Record{r, r})

	perRow := decimal.Zero
	for _, row := range rows {
		perRow = perRow.Add(row.Rounded())
	}
	if !perRow.Equal(dec("0.002")) {
		t.Fatalf("sum of rounded rows = %s, want 0.002", perRow)
	}
	if !total.Equal(dec("0.001")) {
		t.Fatalf("total = %s, want 0.001", total)
	}
}

func TestDeriveAllRoundsTotal(t *testing.T) {
	r := record.Record{
		Start:       date(2024, 1, 1),
		End:         date(2024, 1, 4),
		Coefficient: dec("0.33335"),
	}
	_, total := DeriveAll([]record.Record{r})
	// 3 * 0.33335 = 1.00005
	if !total.Equal(dec("1")) {
		t.Fatalf("total = %s, want 1.000", total)
	}
	if total.Exponent() < -Places {
		t.Fatalf("total %s has more than %d decimals", total, Places)
	}
}

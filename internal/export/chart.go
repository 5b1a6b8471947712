package export

import "github.com/sadopc/katsayi/internal/calc"

type Bar struct {
	Label string
	Value float64
}

// Chart is a single-series bar chart dataset. It is built once per set of
// rows and drawn both in the terminal and into the PDF export.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

func BuildChart(rows []calc.Row) Chart {
	c := Chart{
		Title:  "Results by City",
		XLabel: "City",
		YLabel: "Result",
		Bars:   make([]Bar, 0, len(rows)),
	}
	for _, row := range rows {
		c.Bars = append(c.Bars, Bar{
			Label: row.Record.City,
			Value: row.Rounded().InexactFloat64(),
		})
	}
	return c
}

// Bounds returns the value range the axis must cover. Zero is always
// included so bars grow from a common baseline.
func (c Chart) Bounds() (lo, hi float64) {
	for _, b := range c.Bars {
		if b.Value < lo {
			lo = b.Value
		}
		if b.Value > hi {
			hi = b.Value
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

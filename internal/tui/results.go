package tui

import (
	"fmt"
	"strconv"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/export"
	"github.com/sadopc/katsayi/internal/record"
)

// resultsModel shows the derived table and the bar chart. rows, total and
// chart are rebuilt together on every records change and are what exports use.
type resultsModel struct {
	width  int
	height int

	rows  []calc.Row
	total decimal.Decimal
	chart export.Chart

	table table.Model
	bars  barchart.Model
}

var resultColumns = []struct {
	title string
	width int
}{
	{"City", 14},
	{"Start", 10},
	{"End", 10},
	{"Total", 6},
	{"Reported", 8},
	{"Net", 6},
	{"Coef.", 8},
	{"Result", 10},
}

func newResultsModel() resultsModel {
	cols := make([]table.Column, len(resultColumns))
	for i, c := range resultColumns {
		cols[i] = table.Column{Title: c.title, Width: c.width}
	}
	return resultsModel{
		table: table.New(
			table.WithColumns(cols),
			table.WithHeight(6),
			table.WithFocused(true),
			table.WithStyles(resultsTableStyles()),
		),
		bars: barchart.New(60, 12),
	}
}

func (r *resultsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.layout()
}

// load derives rows, total and chart from records.
func (r *resultsModel) load(records []record.Record) {
	r.rows, r.total = calc.DeriveAll(records)
	r.chart = export.BuildChart(r.rows)
	r.table.SetRows(tableRows(r.rows, r.total))
	r.layout()
}

func (r *resultsModel) layout() {
	tableHeight := len(r.rows) + 2
	if limit := r.height/2 - 2; limit > 3 && tableHeight > limit {
		tableHeight = limit
	}
	r.table.SetHeight(max(tableHeight, 3))
	r.buildChart()
}

func tableRows(rows []calc.Row, total decimal.Decimal) []table.Row {
	out := make([]table.Row, 0, len(rows)+1)
	for _, row := range rows {
		out = append(out, table.Row{
			truncate(row.Record.City, resultColumns[0].width),
			row.Record.Start.Format(record.DateLayout),
			row.Record.End.Format(record.DateLayout),
			strconv.Itoa(row.TotalDays),
			strconv.Itoa(row.Record.ReportedDays),
			strconv.Itoa(row.NetDays),
			row.Record.Coefficient.StringFixed(calc.Places),
			row.Rounded().StringFixed(calc.Places),
		})
	}
	out = append(out, table.Row{export.TotalLabel, "", "", "", "", "", "", total.StringFixed(calc.Places)})
	return out
}

func (r *resultsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 40 {
		chartHeight = 16
	}

	r.bars = barchart.New(chartWidth, chartHeight)

	var data []barchart.BarData
	for _, b := range r.chart.Bars {
		// The terminal chart has no negative axis; those bars show as empty.
		v := b.Value
		if v < 0 {
			v = 0
		}
		data = append(data, barchart.BarData{
			Label: truncate(b.Label, 8),
			Values: []barchart.BarValue{{
				Name:  b.Label,
				Value: v,
				Style: barStyle,
			}},
		})
	}

	if len(data) > 0 {
		r.bars.PushAll(data)
	}
	r.bars.Draw()
}

func (r resultsModel) update(msg tea.Msg) (resultsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		r.table, cmd = r.table.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r resultsModel) view() string {
	w := r.width - 4
	title := titleStyle.Render("Calculation Table")

	if len(r.rows) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No records yet. Add some in the Records view."),
		))
	}

	totalLine := totalStyle.Render(fmt.Sprintf("Total: %s", r.total.StringFixed(calc.Places)))
	chartTitle := titleStyle.Render(r.chart.Title)
	axis := mutedStyle.Render(fmt.Sprintf("x: %s  y: %s", r.chart.XLabel, r.chart.YLabel))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", r.table.View(), "", totalLine, "", chartTitle, axis, r.bars.View(),
	))
}

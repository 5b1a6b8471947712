package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontFamily is an embedded UTF-8 TrueType family, so city names keep
// letters outside cp1252 (İ, ş, ğ, ı).
const fontFamily = "go"

// Page geometry in millimetres (A4 landscape).
const (
	pageW      = 297.0
	pageH      = 210.0
	plotLeft   = 35.0
	plotRight  = pageW - 20
	plotTop    = 30.0
	plotBottom = pageH - 40
	gridLines  = 5
)

// WriteChartPDF draws c as a vertical bar chart on a single page.
func WriteChartPDF(w io.Writer, c Chart) error {
	pdf := drawChart(c)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawChart(c Chart) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	pdf.SetTitle(c.Title, true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.SetXY(plotLeft, 12)
	pdf.CellFormat(plotRight-plotLeft, 10, c.Title, "", 0, "C", false, 0, "")

	lo, hi := c.Bounds()
	lo, hi, step := niceScale(lo, hi)
	yOf := func(v float64) float64 {
		return plotBottom - (v-lo)/(hi-lo)*(plotBottom-plotTop)
	}

	// Gridlines and y tick labels.
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	for v := lo; v <= hi+step/2; v += step {
		y := yOf(v)
		pdf.Line(plotLeft, y, plotRight, y)
		label := formatTick(v, step)
		pdf.Text(plotLeft-3-pdf.GetStringWidth(label), y+1.2, label)
	}
	pdf.SetDashPattern([]float64{}, 0)

	// Bars.
	if n := len(c.Bars); n > 0 {
		slot := (plotRight - plotLeft) / float64(n)
		barW := slot * 0.7
		base := yOf(0)
		pdf.SetFillColor(135, 206, 235)
		pdf.SetFont(fontFamily, "", labelFontSize(n))
		for i, b := range c.Bars {
			x := plotLeft + float64(i)*slot + (slot-barW)/2
			top := yOf(b.Value)
			pdf.Rect(x, math.Min(top, base), barW, math.Abs(base-top), "F")

			label := b.Label
			lw := pdf.GetStringWidth(label)
			pdf.Text(x+(barW-lw)/2, plotBottom+6, label)
		}
	}

	// Axes.
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotTop, plotLeft, plotBottom)
	pdf.Line(plotLeft, yOf(0), plotRight, yOf(0))

	pdf.SetFont(fontFamily, "B", 11)
	xl := c.XLabel
	pdf.Text(plotLeft+(plotRight-plotLeft-pdf.GetStringWidth(xl))/2, plotBottom+18, xl)

	yl := c.YLabel
	cy := plotTop + (plotBottom-plotTop)/2
	pdf.TransformBegin()
	pdf.TransformRotate(90, 14, cy)
	pdf.Text(14-pdf.GetStringWidth(yl)/2, cy, yl)
	pdf.TransformEnd()

	return pdf
}

// niceScale widens [lo, hi] to round tick boundaries.
func niceScale(lo, hi float64) (float64, float64, float64) {
	raw := (hi - lo) / gridLines
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step, step
}

func formatTick(v, step float64) string {
	prec := 0
	if step < 1 {
		prec = int(math.Ceil(-math.Log10(step)))
	}
	if math.Abs(v) < step/1e6 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func labelFontSize(bars int) float64 {
	switch {
	case bars > 20:
		return 6
	case bars > 10:
		return 8
	default:
		return 10
	}
}

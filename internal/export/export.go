// Package export turns computed rows and their total into downloadable
// documents: a spreadsheet, a CSV table and a bar chart PDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/record"
)

const (
	FileNameXLSX = "katsayi_hesaplama.xlsx"
	FileNamePDF  = "sonuc_grafik.pdf"
	FileNameCSV  = "katsayi_hesaplama.csv"

	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF  = "application/pdf"
	MIMECSV  = "text/csv"
)

// Header is the column order of the tabular document.
var Header = []string{"City", "Start", "End", "TotalDays", "ReportedDays", "NetDays", "Coefficient", "Result"}

// TotalLabel is written in the city column of the trailing total row.
const TotalLabel = "Total"

// ToFile renders into memory with fn and writes the result to dir/name.
// Nothing is written when fn fails.
func ToFile(dir, name string, fn func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

func formatDate(r record.Record, end bool) string {
	if end {
		return r.End.Format(record.DateLayout)
	}
	return r.Start.Format(record.DateLayout)
}

func formatCoefficient(row calc.Row) string {
	return row.Record.Coefficient.StringFixed(calc.Places)
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sadopc/katsayi/internal/calc"
)

// WriteCSV writes the same table as WriteXLSX without styling.
func WriteCSV(w io.Writer, rows []calc.Row, total decimal.Decimal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, row := range rows {
		line := []string{
			row.Record.City,
			formatDate(row.Record, false),
			formatDate(row.Record, true),
			strconv.Itoa(row.TotalDays),
			strconv.Itoa(row.Record.ReportedDays),
			strconv.Itoa(row.NetDays),
			formatCoefficient(row),
			row.Rounded().String(),
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	totalLine := make([]string, len(Header))
	totalLine[0] = TotalLabel
	totalLine[len(Header)-1] = total.String()
	if err := cw.Write(totalLine); err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

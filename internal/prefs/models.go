package prefs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setting keys.
const (
	KeyExportDir          = "export_dir"
	KeyMinDate            = "min_date"
	KeyDefaultCoefficient = "default_coefficient"
)

type Setting struct {
	Key   string
	Value string
}

// Export kinds.
const (
	KindXLSX = "xlsx"
	KindPDF  = "pdf"
	KindCSV  = "csv"
)

// Export is one row of the export history.
type Export struct {
	ID          int64
	Kind        string
	Path        string
	RecordCount int
	Total       decimal.Decimal
	CreatedAt   time.Time
}

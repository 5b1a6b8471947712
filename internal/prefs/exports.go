package prefs

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordExport appends an entry to the export history.
func (s *Store) RecordExport(kind, path string, count int, total decimal.Decimal) (*Export, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO exports (kind, path, record_count, total, created_at) VALUES (?, ?, ?, ?, ?)`,
		kind, path, count, total.String(), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetExport(id)
}

func (s *Store) GetExport(id int64) (*Export, error) {
	e := &Export{}
	var total, createdAt string
	err := s.db.QueryRow(
		`SELECT id, kind, path, record_count, total, created_at FROM exports WHERE id = ?`, id,
	).Scan(&e.ID, &e.Kind, &e.Path, &e.RecordCount, &total, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get export %d: %w", id, err)
	}
	e.Total, _ = decimal.NewFromString(total)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// ListExports returns the most recent exports first. A limit <= 0 returns all.
func (s *Store) ListExports(limit int) ([]Export, error) {
	query := `SELECT id, kind, path, record_count, total, created_at FROM exports ORDER BY id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var e Export
		var total, createdAt string
		if err := rows.Scan(&e.ID, &e.Kind, &e.Path, &e.RecordCount, &total, &createdAt); err != nil {
			return nil, err
		}
		e.Total, _ = decimal.NewFromString(total)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

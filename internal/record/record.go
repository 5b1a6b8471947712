// Package record holds the in-memory list of entered records and the
// pointer to the record currently being edited.
package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrIndexOutOfRange = errors.New("record index out of range")
	ErrNoActiveEdit    = errors.New("no record is being edited")
)

// DateLayout is the display and input format for record dates.
const DateLayout = "02.01.2006"

type Record struct {
	ID           uuid.UUID
	City         string
	Start        time.Time
	End          time.Time
	ReportedDays int
	Coefficient  decimal.Decimal
}

// Store is an ordered collection of records. Insertion order is the display
// and export order. It is not safe for concurrent use; each session owns one.
type Store struct {
	records   []Record
	editIndex int // -1 when no edit is in progress
}

func NewStore() *Store {
	return &Store{editIndex: -1}
}

// Add appends r and returns the stored copy with its assigned ID.
func (s *Store) Add(r Record) Record {
	r.ID = uuid.New()
	s.records = append(s.records, r)
	return r
}

// BeginEdit marks the record at index as the edit target, replacing any
// previous target.
func (s *Store) BeginEdit(index int) error {
	if index < 0 || index >= len(s.records) {
		return ErrIndexOutOfRange
	}
	s.editIndex = index
	return nil
}

// CommitEdit overwrites the edit target with r and ends the edit. The
// target keeps its ID.
func (s *Store) CommitEdit(r Record) error {
	if s.editIndex < 0 {
		return ErrNoActiveEdit
	}
	r.ID = s.records[s.editIndex].ID
	s.records[s.editIndex] = r
	s.editIndex = -1
	return nil
}

func (s *Store) CancelEdit() {
	s.editIndex = -1
}

// Remove deletes the record at index. The edit pointer keeps following the
// same logical record, or is cleared when that record is the one removed.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.records) {
		return ErrIndexOutOfRange
	}
	s.records = append(s.records[:index], s.records[index+1:]...)

	switch {
	case s.editIndex < 0:
	case index == s.editIndex:
		s.editIndex = -1
	case index < s.editIndex:
		s.editIndex--
	}
	return nil
}

func (s *Store) Clear() {
	s.records = nil
	s.editIndex = -1
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Get(index int) (Record, error) {
	if index < 0 || index >= len(s.records) {
		return Record{}, ErrIndexOutOfRange
	}
	return s.records[index], nil
}

// Records returns a copy of the collection in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// EditIndex reports the current edit target, if any.
func (s *Store) EditIndex() (int, bool) {
	return s.editIndex, s.editIndex >= 0
}

func (s *Store) Editing() (Record, bool) {
	if s.editIndex < 0 {
		return Record{}, false
	}
	return s.records[s.editIndex], true
}

// IndexOf returns the current position of the record with the given ID, or -1.
func (s *Store) IndexOf(id uuid.UUID) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

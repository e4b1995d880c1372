// Package ledger owns the on-disk record file: append of single records and
// ordered full-file reads. The CSV codec lives here too so uploads and
// filtered exports share one row/column shape with the persistent file.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gastos/internal/core"
)

var (
	// ErrNotFound signals an absent record file. Callers treat it as
	// "no records yet", not a hard error.
	ErrNotFound = errors.New("record file not found")
)

// Store reads and appends expense records in a single CSV file.
// The path is fixed at construction; no state is cached between calls.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the record file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record to the end of the file, creating it with a header
// row when absent.
func (s *Store) Append(_ context.Context, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open record file %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat record file %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		if err := writeHeader(f); err != nil {
			return fmt.Errorf("write header to %s: %w", s.path, err)
		}
	}
	if err := writeRow(f, rec); err != nil {
		return fmt.Errorf("append record to %s: %w", s.path, err)
	}
	return nil
}

// LoadAll returns every parseable record in file order plus a count of rows
// dropped for an unparseable date or amount. A missing file yields
// ErrNotFound.
func (s *Store) LoadAll(_ context.Context) (LoadResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}, fmt.Errorf("%s: %w", s.path, ErrNotFound)
		}
		return LoadResult{}, fmt.Errorf("open record file %s: %w", s.path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

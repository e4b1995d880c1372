package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gastos/internal/core"
)

// ErrMissingColumns signals an input whose header lacks one of the required
// columns (date, category, amount).
var ErrMissingColumns = errors.New("missing required columns")

// Column order of the persistent record file and of every export.
var columns = []string{"date", "category", "description", "amount"}

// LoadResult is the outcome of decoding a record source: the records that
// parsed, in input order, and how many rows were dropped because their date
// or amount did not parse. Dropped rows are surfaced to the user, never
// silently swallowed.
type LoadResult struct {
	Records []core.Record
	Skipped int
}

// ReadRecords decodes CSV rows into typed records. Column names are matched
// case-insensitively and may appear in any order; description is optional.
// The required trio is date, category and amount — anything less is an
// ErrMissingColumns, the blocking upload-format error.
func ReadRecords(r io.Reader) (LoadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return LoadResult{}, fmt.Errorf("%w: empty input", ErrMissingColumns)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range head {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var out LoadResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row is a malformed row, not a fatal read.
			out.Skipped++
			continue
		}
		rec, ok := rowToRecord(row, idx)
		if !ok {
			out.Skipped++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// WriteRecords serializes records in the canonical column order, header first.
func WriteRecords(w io.Writer, recs []core.Record) error {
	if err := writeHeader(w); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := writeRow(w, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeRow(w io.Writer, rec core.Record) error {
	cw := csv.NewWriter(w)
	row := []string{rec.Date.String(), rec.Category, rec.Description, rec.Amount.Decimal()}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func rowToRecord(row []string, idx map[string]int) (core.Record, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	date, err := core.ParseDate(field("date"))
	if err != nil {
		return core.Record{}, false
	}
	amount, err := core.ParseAmount(field("amount"))
	if err != nil {
		return core.Record{}, false
	}
	return core.Record{
		Date:        date,
		Category:    strings.TrimSpace(field("category")),
		Description: field("description"),
		Amount:      amount,
	}, true
}

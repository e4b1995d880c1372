// Package report implements the aggregation pipeline: filtering the record
// set by date range and category membership, then grouping and summing by
// category or by date bucket. Everything is a pure function over records;
// each caller recomputes from its current filtered set.
package report

import (
	"sort"

	"gastos/internal/core"
)

// Granularity selects the bucket width of the time series.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// ParseGranularity maps a form value to a Granularity, defaulting to Daily.
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case Weekly:
		return Weekly
	case Monthly:
		return Monthly
	default:
		return Daily
	}
}

// Range is an inclusive date interval. A zero bound is open on that side.
type Range struct {
	From core.Date
	To   core.Date
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d core.Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Filter applies the date-range predicate and then the category-membership
// predicate. An empty category selection means all categories (identity).
func Filter(recs []core.Record, r Range, categories []string) []core.Record {
	allowed := map[string]bool{}
	for _, c := range categories {
		allowed[c] = true
	}
	out := make([]core.Record, 0, len(recs))
	for _, rec := range recs {
		if !r.Contains(rec.Date) {
			continue
		}
		if len(allowed) > 0 && !allowed[rec.Category] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// CategoryTotal is an amount summed over one category.
type CategoryTotal struct {
	Category string
	Amount   core.Money
}

// ByCategory groups records by category and sums amounts, largest first.
// Every distinct category in the input appears exactly once.
func ByCategory(recs []core.Record) []CategoryTotal {
	sums := map[string]core.Money{}
	order := []string{}
	for _, rec := range recs {
		if _, seen := sums[rec.Category]; !seen {
			order = append(order, rec.Category)
		}
		sums[rec.Category] = sums[rec.Category].Add(rec.Amount)
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Amount: sums[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// DatePoint is an amount summed over one time bucket.
type DatePoint struct {
	Date   core.Date
	Amount core.Money
}

// ByDate buckets records at the given granularity and sums amounts per
// bucket, in stable chronological order. Same-bucket rows are merged.
func ByDate(recs []core.Record, g Granularity) []DatePoint {
	sums := map[core.Date]core.Money{}
	for _, rec := range recs {
		b := bucket(rec.Date, g)
		sums[b] = sums[b].Add(rec.Amount)
	}
	out := make([]DatePoint, 0, len(sums))
	for d, m := range sums {
		out = append(out, DatePoint{Date: d, Amount: m})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// bucket normalizes a date to the start of its day, week (Monday) or month.
func bucket(d core.Date, g Granularity) core.Date {
	switch g {
	case Weekly:
		delta := (int(d.Weekday()) + 6) % 7
		return core.Date{Time: d.AddDate(0, 0, -delta)}
	case Monthly:
		return core.NewDate(d.Year(), int(d.Month()), 1)
	default:
		return d
	}
}

// Summary holds the headline figures for a filtered set.
type Summary struct {
	Total core.Money
	Count int
	Mean  core.Money
}

// Totals computes total, transaction count and mean amount.
func Totals(recs []core.Record) Summary {
	var s Summary
	for _, rec := range recs {
		s.Total = s.Total.Add(rec.Amount)
	}
	s.Count = len(recs)
	if s.Count > 0 {
		s.Mean = core.Money{Cents: s.Total.Cents / int64(s.Count)}
	}
	return s
}

// Share is one category's slice of the positive total.
type Share struct {
	Category string
	Amount   core.Money
	Fraction float64
}

// Shares computes each category's proportion of the whole. Categories with a
// zero or negative net sum contribute no segment.
func Shares(recs []core.Record) []Share {
	totals := ByCategory(recs)
	var whole int64
	for _, t := range totals {
		if t.Amount.Cents > 0 {
			whole += t.Amount.Cents
		}
	}
	if whole == 0 {
		return nil
	}
	out := make([]Share, 0, len(totals))
	for _, t := range totals {
		if t.Amount.Cents <= 0 {
			continue
		}
		out = append(out, Share{
			Category: t.Category,
			Amount:   t.Amount,
			Fraction: float64(t.Amount.Cents) / float64(whole),
		})
	}
	return out
}

// Categories returns the distinct category names in the input, sorted.
func Categories(recs []core.Record) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, rec := range recs {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			out = append(out, rec.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Bounds returns the earliest and latest dates in the input. ok is false for
// an empty input.
func Bounds(recs []core.Record) (min, max core.Date, ok bool) {
	for _, rec := range recs {
		if !ok {
			min, max, ok = rec.Date, rec.Date, true
			continue
		}
		if rec.Date.Before(min) {
			min = rec.Date
		}
		if rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max, ok
}

// SortByDateDesc orders records newest first, for the filtered-data table.
// The sort is stable so same-date rows keep input order.
func SortByDateDesc(recs []core.Record) []core.Record {
	out := append([]core.Record(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}

package report

import (
	"testing"

	"gastos/internal/core"
)

func rec(date, category, desc, amount string) core.Record {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	m, err := core.ParseAmount(amount)
	if err != nil {
		panic(err)
	}
	return core.Record{Date: d, Category: category, Description: desc, Amount: m}
}

func sampleRecs() []core.Record {
	return []core.Record{
		rec("2024-01-05", "Comida", "Almuerzo", "1200"),
		rec("2024-01-06", "Transporte", "Subte", "350"),
	}
}

func TestByCategoryScenario(t *testing.T) {
	totals := ByCategory(sampleRecs())
	if len(totals) != 2 {
		t.Fatalf("got %d categories, want 2", len(totals))
	}
	want := map[string]int64{"Comida": 120000, "Transporte": 35000}
	for _, ct := range totals {
		if ct.Amount.Cents != want[ct.Category] {
			t.Errorf("%s = %d cents, want %d", ct.Category, ct.Amount.Cents, want[ct.Category])
		}
	}
	// Largest first
	if totals[0].Category != "Comida" {
		t.Errorf("first category = %q, want Comida", totals[0].Category)
	}
}

func TestByDateScenario(t *testing.T) {
	points := ByDate(sampleRecs(), Daily)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Date.String() != "2024-01-05" || points[0].Amount.Cents != 120000 {
		t.Errorf("point 0 = %v %d", points[0].Date, points[0].Amount.Cents)
	}
	if points[1].Date.String() != "2024-01-06" || points[1].Amount.Cents != 35000 {
		t.Errorf("point 1 = %v %d", points[1].Date, points[1].Amount.Cents)
	}
}

func TestTotalsAgreeAcrossViews(t *testing.T) {
	recs := []core.Record{
		rec("2024-01-05", "Comida", "Almuerzo", "1200"),
		rec("2024-01-05", "Comida", "Cafe", "300.50"),
		rec("2024-01-06", "Transporte", "Subte", "350"),
		rec("2024-03-01", "Hogar", "Super", "5500"),
	}
	sum := Totals(recs).Total.Cents

	var byCat int64
	for _, ct := range ByCategory(recs) {
		byCat += ct.Amount.Cents
	}
	if byCat != sum {
		t.Errorf("category bars total %d, filtered set total %d", byCat, sum)
	}
	for _, g := range []Granularity{Daily, Weekly, Monthly} {
		var byDate int64
		for _, p := range ByDate(recs, g) {
			byDate += p.Amount.Cents
		}
		if byDate != sum {
			t.Errorf("time series (%s) total %d, filtered set total %d", g, byDate, sum)
		}
	}
}

func TestByDateMergesDuplicateDates(t *testing.T) {
	recs := []core.Record{
		rec("2024-01-06", "Transporte", "Subte", "350"),
		rec("2024-01-05", "Comida", "Almuerzo", "1200"),
		rec("2024-01-05", "Comida", "Cafe", "300"),
	}
	points := ByDate(recs, Daily)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Date.String() != "2024-01-05" || points[0].Amount.Cents != 150000 {
		t.Errorf("same-date rows not merged chronologically: %+v", points)
	}
}

func TestByDateWeeklyAndMonthlyBuckets(t *testing.T) {
	recs := []core.Record{
		rec("2024-01-02", "Transporte", "Taxi", "900"),  // Tuesday, week of Jan 1
		rec("2024-01-05", "Comida", "Almuerzo", "1200"), // Friday, same week
		rec("2024-01-10", "Entretenimiento", "Cine", "800"),
	}
	weekly := ByDate(recs, Weekly)
	if len(weekly) != 2 {
		t.Fatalf("weekly buckets = %d, want 2", len(weekly))
	}
	if weekly[0].Date.String() != "2024-01-01" || weekly[0].Amount.Cents != 210000 {
		t.Errorf("week bucket = %+v", weekly[0])
	}

	monthly := ByDate(recs, Monthly)
	if len(monthly) != 1 {
		t.Fatalf("monthly buckets = %d, want 1", len(monthly))
	}
	if monthly[0].Date.String() != "2024-01-01" || monthly[0].Amount.Cents != 290000 {
		t.Errorf("month bucket = %+v", monthly[0])
	}
}

func TestFilterDateRange(t *testing.T) {
	recs := sampleRecs()
	from, _ := core.ParseDate("2024-01-06")
	to, _ := core.ParseDate("2024-01-06")
	got := Filter(recs, Range{From: from, To: to}, nil)
	if len(got) != 1 || got[0].Category != "Transporte" {
		t.Fatalf("inclusive bounds: got %+v", got)
	}
}

func TestFilterExcludingRangeYieldsEmpty(t *testing.T) {
	recs := sampleRecs()
	from, _ := core.ParseDate("2025-01-01")
	to, _ := core.ParseDate("2025-12-31")
	got := Filter(recs, Range{From: from, To: to}, nil)
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
	// Empty set must aggregate to empty views, never an error.
	if pts := ByDate(got, Daily); len(pts) != 0 {
		t.Errorf("time series not empty: %+v", pts)
	}
	if cts := ByCategory(got); len(cts) != 0 {
		t.Errorf("category bars not empty: %+v", cts)
	}
	if sh := Shares(got); len(sh) != 0 {
		t.Errorf("shares not empty: %+v", sh)
	}
}

func TestFilterEmptyCategorySelectionIsIdentity(t *testing.T) {
	recs := sampleRecs()
	all := Filter(recs, Range{}, nil)
	alsoAll := Filter(recs, Range{}, []string{})
	if len(all) != len(recs) || len(alsoAll) != len(recs) {
		t.Fatalf("empty selection must be identity: %d, %d, want %d", len(all), len(alsoAll), len(recs))
	}
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(sampleRecs(), Range{}, []string{"Comida"})
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Category != "Comida" || got[0].Amount.Cents != 120000 {
		t.Errorf("record = %+v", got[0])
	}
}

func TestTotalsKPIs(t *testing.T) {
	s := Totals(sampleRecs())
	if s.Total.Cents != 155000 {
		t.Errorf("Total = %d, want 155000", s.Total.Cents)
	}
	if s.Count != 2 {
		t.Errorf("Count = %d, want 2", s.Count)
	}
	if s.Mean.Cents != 77500 {
		t.Errorf("Mean = %d, want 77500", s.Mean.Cents)
	}

	empty := Totals(nil)
	if empty.Total.Cents != 0 || empty.Count != 0 || empty.Mean.Cents != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestSharesExcludeNonPositive(t *testing.T) {
	recs := []core.Record{
		rec("2024-01-05", "Comida", "Almuerzo", "300"),
		rec("2024-01-06", "Reintegro", "Devolucion", "-100"),
		rec("2024-01-07", "Transporte", "Subte", "100"),
	}
	shares := Shares(recs)
	if len(shares) != 2 {
		t.Fatalf("got %d shares, want 2 (negative net excluded)", len(shares))
	}
	var total float64
	for _, sh := range shares {
		if sh.Fraction <= 0 {
			t.Errorf("%s fraction = %f", sh.Category, sh.Fraction)
		}
		total += sh.Fraction
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("fractions sum to %f, want 1", total)
	}
	if shares[0].Category != "Comida" || shares[0].Fraction != 0.75 {
		t.Errorf("share 0 = %+v", shares[0])
	}
}

func TestCategoriesAndBounds(t *testing.T) {
	recs := sampleRecs()
	cats := Categories(recs)
	if len(cats) != 2 || cats[0] != "Comida" || cats[1] != "Transporte" {
		t.Errorf("Categories = %v", cats)
	}
	min, max, ok := Bounds(recs)
	if !ok || min.String() != "2024-01-05" || max.String() != "2024-01-06" {
		t.Errorf("Bounds = %v %v %v", min, max, ok)
	}
	if _, _, ok := Bounds(nil); ok {
		t.Error("Bounds(nil) must report not ok")
	}
}

func TestSortByDateDesc(t *testing.T) {
	recs := []core.Record{
		rec("2024-01-05", "Comida", "Almuerzo", "1200"),
		rec("2024-03-01", "Hogar", "Super", "5500"),
		rec("2024-01-06", "Transporte", "Subte", "350"),
	}
	sorted := SortByDateDesc(recs)
	if sorted[0].Category != "Hogar" || sorted[2].Category != "Comida" {
		t.Errorf("order = %v %v %v", sorted[0].Category, sorted[1].Category, sorted[2].Category)
	}
	// Input must stay untouched.
	if recs[0].Category != "Comida" {
		t.Error("SortByDateDesc mutated its input")
	}
}

package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"gastos/internal/chart"
	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/log"
	"gastos/internal/report"
	"gastos/internal/sample"
)

// Source labels reported back to the page.
const (
	sourceUpload = "archivo subido"
	sourceSample = "dataset de ejemplo"
	sourceLedger = "archivo de gastos"
)

// pipeline is one full ingest→filter pass, rebuilt from scratch per request.
type pipeline struct {
	source   string
	all      []core.Record
	skipped  int
	filtered []core.Record
	rng      report.Range
	selected []string
	gran     report.Granularity
}

type categoryOption struct {
	Name     string
	Selected bool
}

type tableRow struct {
	Date        string
	Category    string
	Description string
	Amount      string
}

// dashboardView is the template payload for one render.
type dashboardView struct {
	Submitted bool
	Error     string
	Source    string
	UseSample bool
	From      string
	To        string
	Gran      string

	Categories []categoryOption
	Count      int
	Skipped    int
	Total      string
	Mean       string
	Empty      bool

	TimeSeriesPNG string
	BarsPNG       string
	SharePNG      string
	Rows          []tableRow
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		s.render(w, r, dashboardView{})
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	p, err := s.runPipeline(w, r)
	if err != nil {
		s.renderPipelineError(w, r, err)
		return
	}
	s.renderResult(w, r, p)
}

// handleExport re-runs the same pipeline and serializes exactly the filtered
// rows in the record file format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.runPipeline(w, r)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, ledger.ErrMissingColumns) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	var buf bytes.Buffer
	if err := ledger.WriteRecords(&buf, p.filtered); err != nil {
		s.logger.ErrorContext(r.Context(), "Export serialization failed", log.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="gastos_filtrados.csv"`)
	_, _ = w.Write(buf.Bytes())
}

// runPipeline ingests the selected source and applies the active filters.
// Source precedence: uploaded file, then the sample toggle, then the
// persistent ledger (a missing ledger means zero records).
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) (*pipeline, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	p := &pipeline{}
	file, _, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		loaded, err := ledger.ReadRecords(file)
		if err != nil {
			return nil, err
		}
		p.source = sourceUpload
		p.all, p.skipped = loaded.Records, loaded.Skipped
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		if r.Form.Get("use_sample") != "" {
			p.source = sourceSample
			p.all = sample.Records()
			break
		}
		loaded, err := s.store.LoadAll(r.Context())
		if err != nil && !errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("read ledger: %w", err)
		}
		p.source = sourceLedger
		p.all, p.skipped = loaded.Records, loaded.Skipped
	default:
		return nil, fmt.Errorf("read upload: %w", err)
	}

	// Date pickers submit ISO dates or nothing; anything else is ignored.
	if from, err := core.ParseDate(r.Form.Get("from")); err == nil {
		p.rng.From = from
	}
	if to, err := core.ParseDate(r.Form.Get("to")); err == nil {
		p.rng.To = to
	}
	p.selected = r.Form["categories"]
	p.gran = report.ParseGranularity(r.Form.Get("granularity"))
	p.filtered = report.Filter(p.all, p.rng, p.selected)
	return p, nil
}

func (s *Server) renderResult(w http.ResponseWriter, r *http.Request, p *pipeline) {
	view := dashboardView{
		Submitted: true,
		Source:    p.source,
		UseSample: p.source == sourceSample,
		Gran:      string(p.gran),
		Count:     len(p.filtered),
		Skipped:   p.skipped,
		Empty:     len(p.filtered) == 0,
	}
	if !p.rng.From.IsZero() {
		view.From = p.rng.From.String()
	}
	if !p.rng.To.IsZero() {
		view.To = p.rng.To.String()
	}

	selected := map[string]bool{}
	for _, c := range p.selected {
		selected[c] = true
	}
	for _, name := range report.Categories(p.all) {
		view.Categories = append(view.Categories, categoryOption{Name: name, Selected: selected[name]})
	}

	totals := report.Totals(p.filtered)
	view.Total = totals.Total.Display()
	view.Mean = totals.Mean.Display()

	timeSeries, err := chart.TimeSeries(report.ByDate(p.filtered, p.gran))
	if err == nil {
		view.TimeSeriesPNG = base64.StdEncoding.EncodeToString(timeSeries)
	}
	bars, err2 := chart.CategoryBars(report.ByCategory(p.filtered))
	if err2 == nil {
		view.BarsPNG = base64.StdEncoding.EncodeToString(bars)
	}
	share, err3 := chart.CategoryShare(report.Shares(p.filtered))
	if err3 == nil {
		view.SharePNG = base64.StdEncoding.EncodeToString(share)
	}
	for _, e := range []error{err, err2, err3} {
		if e != nil {
			s.logger.ErrorContext(r.Context(), "Chart render failed", log.FieldError, e)
		}
	}

	for _, rec := range report.SortByDateDesc(p.filtered) {
		view.Rows = append(view.Rows, tableRow{
			Date:        rec.Date.String(),
			Category:    rec.Category,
			Description: rec.Description,
			Amount:      rec.Amount.Display(),
		})
	}
	s.render(w, r, view)
}

func (s *Server) renderPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	view := dashboardView{Submitted: true}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case errors.Is(err, ledger.ErrMissingColumns):
		// Blocking upload-format error: no charts until the file is fixed.
		view.Error = "El CSV debe incluir las columnas date, category y amount (" +
			strings.TrimPrefix(err.Error(), ledger.ErrMissingColumns.Error()+": ") + ")"
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		s.logger.ErrorContext(r.Context(), "Dashboard pipeline failed", log.FieldError, err)
		view.Error = "No se pudo procesar el archivo: " + err.Error()
		w.WriteHeader(http.StatusBadRequest)
	}
	s.render(w, r, view)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, view dashboardView) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard template execution failed", log.FieldError, err)
	}
}

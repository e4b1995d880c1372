// Package console implements the interactive menu loop over the ledger:
// add an expense, print per-category totals, or render the category chart.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gastos/internal/chart"
	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/log"
	"gastos/internal/report"
)

// State identifies a step of the menu loop. The loop always returns to
// StateMenu after an action and terminates only on the exit selection.
type State int

const (
	StateMenu State = iota
	StateAdding
	StateSummarizing
	StatePlotting
	StateDone
)

// Console drives the menu loop on an injected reader/writer pair, so tests
// can script a whole session.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	store    *ledger.Store
	plotPath string
	logger   *log.Logger
	today    func() core.Date
}

func New(in io.Reader, out io.Writer, store *ledger.Store, plotPath string, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		store:    store,
		plotPath: plotPath,
		logger:   logger.WithComponent(log.ComponentConsole),
		today:    core.Today,
	}
}

// Run executes the state machine until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	state := StateMenu
	for state != StateDone {
		switch state {
		case StateMenu:
			state = c.menu()
		case StateAdding:
			c.add(ctx)
			state = StateMenu
		case StateSummarizing:
			c.summarize(ctx)
			state = StateMenu
		case StatePlotting:
			c.plot(ctx)
			state = StateMenu
		}
	}
	fmt.Fprintln(c.out, "Bye.")
	return nil
}

func (c *Console) menu() State {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "--- Expense Manager ---")
	fmt.Fprintln(c.out, "1. Add expense")
	fmt.Fprintln(c.out, "2. View summary")
	fmt.Fprintln(c.out, "3. Plot expenses")
	fmt.Fprintln(c.out, "4. Exit")

	choice, ok := c.prompt("Choose an option: ")
	if !ok {
		// Input ended; leave the loop cleanly.
		return StateDone
	}
	switch choice {
	case "1":
		return StateAdding
	case "2":
		return StateSummarizing
	case "3":
		return StatePlotting
	case "4":
		return StateDone
	default:
		fmt.Fprintln(c.out, "Invalid option.")
		return StateMenu
	}
}

func (c *Console) add(ctx context.Context) {
	date := c.readDate()

	category, ok := c.readNonEmpty("Category: ")
	if !ok {
		return
	}
	description, ok := c.prompt("Description: ")
	if !ok {
		return
	}
	amount, ok := c.readAmount()
	if !ok {
		return
	}

	rec := core.Record{
		Date:        date,
		Category:    category,
		Description: description,
		Amount:      amount,
	}
	if err := c.store.Append(ctx, rec); err != nil {
		c.logger.ErrorContext(ctx, "Append failed", log.FieldError, err, log.FieldLedgerPath, c.store.Path())
		fmt.Fprintf(c.out, "Could not save expense: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Expense added successfully.")
}

// readDate prompts for an optional date. Blank means today; an invalid value
// falls back to today with a visible warning.
func (c *Console) readDate() core.Date {
	raw, ok := c.prompt("Date (YYYY-MM-DD) [Enter for today]: ")
	if !ok || strings.TrimSpace(raw) == "" {
		return c.today()
	}
	date, err := core.ParseDate(raw)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid format. Using today's date instead.")
		return c.today()
	}
	return date
}

// readAmount re-prompts until the input parses as a number.
func (c *Console) readAmount() (core.Money, bool) {
	for {
		raw, ok := c.prompt("Amount: ")
		if !ok {
			return core.Money{}, false
		}
		amount, err := core.ParseAmount(raw)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid amount. Please enter a number.")
			continue
		}
		return amount, true
	}
}

func (c *Console) readNonEmpty(label string) (string, bool) {
	for {
		raw, ok := c.prompt(label)
		if !ok {
			return "", false
		}
		if v := strings.TrimSpace(raw); v != "" {
			return v, true
		}
		fmt.Fprintln(c.out, "A value is required.")
	}
}

func (c *Console) summarize(ctx context.Context) {
	recs, skipped := c.loadRecords(ctx)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Expense summary:")
	totals := report.ByCategory(recs)
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	for _, t := range totals {
		fmt.Fprintf(c.out, "  %s: %s\n", t.Category, t.Amount.Display())
	}
	fmt.Fprintf(c.out, "Total expense: %s\n", report.Totals(recs).Total.Display())
	c.warnSkipped(skipped)
}

func (c *Console) plot(ctx context.Context) {
	recs, skipped := c.loadRecords(ctx)

	img, err := chart.CategoryBars(report.ByCategory(recs))
	if err != nil {
		c.logger.ErrorContext(ctx, "Chart render failed", log.FieldError, err)
		fmt.Fprintf(c.out, "Could not render chart: %v\n", err)
		return
	}
	if dir := filepath.Dir(c.plotPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(c.out, "Could not create chart directory: %v\n", err)
			return
		}
	}
	if err := os.WriteFile(c.plotPath, img, 0o644); err != nil {
		c.logger.ErrorContext(ctx, "Chart write failed", log.FieldError, err, log.FieldPath, c.plotPath)
		fmt.Fprintf(c.out, "Could not save chart: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Chart saved to %s\n", c.plotPath)
	c.warnSkipped(skipped)
}

// loadRecords reads the ledger, treating a missing file as zero records.
func (c *Console) loadRecords(ctx context.Context) ([]core.Record, int) {
	loaded, err := c.store.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, 0
		}
		c.logger.ErrorContext(ctx, "Ledger read failed", log.FieldError, err, log.FieldLedgerPath, c.store.Path())
		fmt.Fprintf(c.out, "Could not read records: %v\n", err)
		return nil, 0
	}
	return loaded.Records, loaded.Skipped
}

func (c *Console) warnSkipped(skipped int) {
	if skipped > 0 {
		fmt.Fprintf(c.out, "Warning: %d malformed row(s) were ignored.\n", skipped)
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

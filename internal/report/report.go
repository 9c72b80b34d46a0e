// Package report builds spending summaries for a user over a window of
// time resolved against the server clock.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
)

// Window selects the period a report covers.
type Window string

const (
	Today Window = "today"
	Month Window = "month"
	Year  Window = "year"
)

// ParseWindow validates a window name.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case Today, Month, Year:
		return w, nil
	default:
		return "", fmt.Errorf("unknown report window %q", s)
	}
}

// Bounds returns the half-open range [from, to) of w around now.
func (w Window) Bounds(now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	switch w {
	case Today:
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1)
	case Month:
		from = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		from = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0)
	}
}

// TimePoint is one expense on the today timeline. Points are not summed per
// minute; each expense yields its own point.
type TimePoint struct {
	Time   string          `json:"time"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// DayTotal is the amount spent on one calendar day.
type DayTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotal is the amount spent in one calendar month.
type MonthTotal struct {
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Total     decimal.Decimal `json:"total"`
}

// Report is the bundle returned for one user and window.
type Report struct {
	Window         Window
	From           time.Time
	To             time.Time
	RawExpenses    []models.Expense
	TotalExpenses  decimal.Decimal
	CategoryTotals map[string]decimal.Decimal

	// Exactly one series is populated, matching Window.
	TimeSeries    []TimePoint
	DailyTotals   []DayTotal
	MonthlyTotals []MonthTotal
}

// MarshalJSON emits only the series that belongs to the report's window.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"window":          r.Window,
		"from":            r.From.Format(models.DateLayout),
		"to":              r.To.AddDate(0, 0, -1).Format(models.DateLayout),
		"raw_expenses":    r.RawExpenses,
		"total_expenses":  r.TotalExpenses,
		"category_totals": r.CategoryTotals,
	}
	switch r.Window {
	case Today:
		out["time_series"] = r.TimeSeries
	case Month:
		out["daily_totals"] = r.DailyTotals
	case Year:
		out["monthly_totals"] = r.MonthlyTotals
	}
	return json.Marshal(out)
}

// Source supplies a user's expenses in [from, to), newest first.
type Source interface {
	ListExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Expense, error)
}

// Engine recomputes reports from the source on every call.
type Engine struct {
	src Source
	now func() time.Time
}

// NewEngine creates an Engine reading from src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src, now: time.Now}
}

// WithClock returns a copy of the engine that resolves windows against now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	return &Engine{src: e.src, now: now}
}

// Build produces the report for userID over window. Source errors are
// returned unchanged; no partial report is produced.
func (e *Engine) Build(ctx context.Context, userID int64, window Window) (*Report, error) {
	from, to := window.Bounds(e.now())

	expenses, err := e.src.ListExpensesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return Summarize(window, from, to, expenses), nil
}

// Summarize computes totals and the window's series over expenses, which
// must be ordered by date then id descending.
func Summarize(window Window, from, to time.Time, expenses []models.Expense) *Report {
	if expenses == nil {
		expenses = []models.Expense{}
	}
	r := &Report{
		Window:         window,
		From:           from,
		To:             to,
		RawExpenses:    expenses,
		TotalExpenses:  decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
	}

	for _, e := range expenses {
		r.TotalExpenses = r.TotalExpenses.Add(e.Amount)
		r.CategoryTotals[e.Category] = r.CategoryTotals[e.Category].Add(e.Amount)
	}

	switch window {
	case Today:
		r.TimeSeries = timeline(expenses)
	case Month:
		r.DailyTotals = dailyTotals(expenses)
	case Year:
		r.MonthlyTotals = monthlyTotals(expenses)
	}
	return r
}

func timeline(expenses []models.Expense) []TimePoint {
	points := make([]TimePoint, 0, len(expenses))
	// Input is newest first; walk it backwards for chronological order.
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		points = append(points, TimePoint{
			Time:   e.Date.Format(models.ClockLayout),
			Date:   e.Date.Format(models.DateLayout),
			Amount: e.Amount,
		})
	}
	return points
}

func dailyTotals(expenses []models.Expense) []DayTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := e.Date.Format(models.DateLayout)
		sums[day] = sums[day].Add(e.Amount)
	}

	days := make([]DayTotal, 0, len(sums))
	for day, total := range sums {
		days = append(days, DayTotal{Day: day, Total: total})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

func monthlyTotals(expenses []models.Expense) []MonthTotal {
	sums := make(map[time.Month]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Date.Month()] = sums[e.Date.Month()].Add(e.Amount)
	}

	months := make([]MonthTotal, 0, len(sums))
	for m, total := range sums {
		months = append(months, MonthTotal{Month: int(m), MonthName: m.String(), Total: total})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

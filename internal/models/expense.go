package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are written as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// DateLayout is the calendar date format used on the wire.
	DateLayout = "2006-01-02"
	// TimestampLayout is how expense dates are stored; it sorts lexically.
	TimestampLayout = "2006-01-02 15:04:05"
	// ClockLayout is the time-of-day format used by the today report.
	ClockLayout = "15:04"
)

// Expense represents a financial expense record owned by one user.
type Expense struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"userid"`
	Date     time.Time       `json:"date"`
	Name     string          `json:"expensename"`
	Amount   decimal.Decimal `json:"amount"`
	PayMode  string          `json:"paymode"`
	Category string          `json:"category"`
}

// MarshalJSON writes the date as YYYY-MM-DD plus a separate HH:MM time.
func (e Expense) MarshalJSON() ([]byte, error) {
	type alias Expense
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
		Time string `json:"time"`
	}{
		alias: alias(e),
		Date:  e.Date.Format(DateLayout),
		Time:  e.Date.Format(ClockLayout),
	})
}

// ExpenseInput holds the replaceable fields of an expense.
type ExpenseInput struct {
	Date     time.Time
	Name     string
	Amount   decimal.Decimal
	PayMode  string
	Category string
}

// Suggested vocabularies. Storage accepts any value that passes validation.
var (
	Categories = []string{"food", "entertainment", "business", "rent", "EMI", "other"}
	PayModes   = []string{"cash", "card", "online"}
)

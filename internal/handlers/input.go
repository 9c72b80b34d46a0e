package handlers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
)

// field binds from form values, query strings and JSON bodies. JSON numbers
// are kept as their literal text so every input goes through the same parser.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
	default:
		*f = field(b)
	}
	return nil
}

func (f field) String() string {
	return strings.TrimSpace(string(f))
}

const (
	maxNameLength  = 100
	maxLabelLength = 32

	maxAmountLength        = 32
	maxAmountIntegerDigits = 12
	maxAmountFraction      = 10
)

var (
	labelPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

	dateLayouts = []string{
		models.DateLayout,
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		models.TimestampLayout,
	}
)

func required(name string, f field) (string, error) {
	v := f.String()
	if v == "" {
		return "", models.Invalid(name, "is required")
	}
	return v, nil
}

func parseID(name string, f field) (int64, error) {
	v, err := required(name, f)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func parseAmount(name string, f field) (decimal.Decimal, error) {
	v, err := required(name, f)
	if err != nil {
		return decimal.Zero, err
	}
	if len(v) > maxAmountLength {
		return decimal.Zero, models.Invalid(name, "is too large")
	}
	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, models.Invalid(name, "must be a number")
	}
	if amount.IsNegative() {
		return decimal.Zero, models.Invalid(name, "must not be negative")
	}
	// Bounds use the exponent and digit count; value comparisons expand the exponent.
	if amount.Exponent() < -maxAmountFraction {
		return decimal.Zero, models.Invalid(name, "has too many decimal places")
	}
	if int64(amount.NumDigits())+int64(amount.Exponent()) > maxAmountIntegerDigits {
		return decimal.Zero, models.Invalid(name, "is too large")
	}
	return amount, nil
}

// parseDate accepts a calendar date, a local date-time or RFC3339. Dates
// without a time of day mean midnight; RFC3339 values are moved to local time.
func parseDate(name string, f field) (time.Time, error) {
	v, err := required(name, f)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Local(), nil
	}
	return time.Time{}, models.Invalid(name, "must be a date in YYYY-MM-DD form")
}

func parseName(name string, f field) (string, error) {
	v, err := required(name, f)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(v) > maxNameLength {
		return "", models.Invalid(name, "must be at most 100 characters")
	}
	return v, nil
}

// parseLabel validates an open-vocabulary value such as a category.
func parseLabel(name string, f field) (string, error) {
	v, err := required(name, f)
	if err != nil {
		return "", err
	}
	if len(v) > maxLabelLength || !labelPattern.MatchString(v) {
		return "", models.Invalid(name, "must start with a letter and contain only letters, digits, spaces, '_' or '-' (max 32)")
	}
	return v, nil
}

type expenseForm struct {
	UserID   field `form:"userid" json:"userid"`
	Date     field `form:"date" json:"date"`
	Name     field `form:"expensename" json:"expensename"`
	Amount   field `form:"amount" json:"amount"`
	PayMode  field `form:"paymode" json:"paymode"`
	Category field `form:"category" json:"category"`
}

func (f *expenseForm) input() (models.ExpenseInput, error) {
	var (
		in  models.ExpenseInput
		err error
	)
	if in.Date, err = parseDate("date", f.Date); err != nil {
		return in, err
	}
	if in.Name, err = parseName("expensename", f.Name); err != nil {
		return in, err
	}
	if in.Amount, err = parseAmount("amount", f.Amount); err != nil {
		return in, err
	}
	if in.PayMode, err = parseLabel("paymode", f.PayMode); err != nil {
		return in, err
	}
	if in.Category, err = parseLabel("category", f.Category); err != nil {
		return in, err
	}
	return in, nil
}

type credentialsForm struct {
	Username field `form:"username" json:"username"`
	Email    field `form:"email" json:"email"`
	Password field `form:"password" json:"password"`
}

type limitForm struct {
	UserID field `form:"userid" json:"userid"`
	Limit  field `form:"limit" json:"limit"`
	Number field `form:"number" json:"number"`
}

func (f *limitForm) value() (decimal.Decimal, error) {
	if f.Limit.String() == "" && f.Number.String() != "" {
		return parseAmount("limit", f.Number)
	}
	return parseAmount("limit", f.Limit)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
)

const expenseColumns = "id, user_id, date, name, amount, paymode, category"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var e models.Expense
	var date string
	if err := row.Scan(&e.ID, &e.UserID, &date, &e.Name, &e.Amount, &e.PayMode, &e.Category); err != nil {
		return e, err
	}
	ts, err := parseTimestamp(date)
	if err != nil {
		return e, fmt.Errorf("expense %d: %w", e.ID, err)
	}
	e.Date = ts
	return e, nil
}

// CreateExpense inserts a new expense owned by userID and returns its id.
func (db *DB) CreateExpense(ctx context.Context, userID int64, in models.ExpenseInput) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		"INSERT INTO expenses (user_id, date, name, amount, paymode, category) VALUES (?, ?, ?, ?, ?, ?)",
		userID, in.Date.Format(models.TimestampLayout), in.Name, in.Amount.StringFixed(2), in.PayMode, in.Category,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return res.LastInsertId()
}

// GetExpense retrieves a single expense by ID, scoped to its owner.
func (db *DB) GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// UpdateExpense replaces every field of an expense except its id and owner.
func (db *DB) UpdateExpense(ctx context.Context, id, userID int64, in models.ExpenseInput) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE expenses SET date = ?, name = ?, amount = ?, paymode = ?, category = ? WHERE id = ? AND user_id = ?",
		in.Date.Format(models.TimestampLayout), in.Name, in.Amount.StringFixed(2), in.PayMode, in.Category, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	return affected(res, id)
}

// DeleteExpense removes an expense owned by userID.
func (db *DB) DeleteExpense(ctx context.Context, id, userID int64) (int64, error) {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return affected(res, id)
}

func affected(res sql.Result, id int64) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// ListExpenses retrieves every expense of a user, ordered by date then id descending.
func (db *DB) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return db.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
}

// ListExpensesBetween retrieves a user's expenses dated in [from, to),
// ordered by date then id descending.
func (db *DB) ListExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Expense, error) {
	return db.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date DESC, id DESC",
		userID, from.Format(models.TimestampLayout), to.Format(models.TimestampLayout),
	)
}

func (db *DB) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

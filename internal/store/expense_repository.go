package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/domain"
)

const expenseColumns = `
	id, owner_id, category, amount, description, date,
	is_recurring, frequency, recurring_day,
	is_loan, loan_principal, loan_rate, loan_tenure_months,
	is_sip, sip_asset_type`

// ExpenseRepository provides owner-scoped access to the expense table
type ExpenseRepository struct {
	s *Store
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(s *Store) *ExpenseRepository {
	return &ExpenseRepository{s: s}
}

// List returns every expense of the owner, newest first
func (r *ExpenseRepository) List(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE owner_id = ? ORDER BY date DESC, id`
	return r.query(ctx, query, ownerID)
}

// ListSince returns the owner's expenses dated on or after since, newest first
func (r *ExpenseRepository) ListSince(ctx context.Context, ownerID string, since time.Time) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE owner_id = ? AND date >= ? ORDER BY date DESC, id`
	return r.query(ctx, query, ownerID, formatTime(since))
}

// Create stores an expense, generating its ID when missing
func (r *ExpenseRepository) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Category == "" {
		e.Category = domain.ExpenseOther
	}

	query := `INSERT INTO expense (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(query),
		e.ID, e.OwnerID, string(e.Category), e.Amount, e.Description, formatTime(e.Date),
		e.IsRecurring, e.Frequency, e.RecurringDay,
		e.IsLoan, e.LoanPrincipal, e.LoanRate, e.LoanTenureMonths,
		e.IsSIP, e.SIPAssetType,
	)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("failed to insert expense: %w", err)
	}
	return e, nil
}

// Delete removes one expense of the owner
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM expense WHERE owner_id = ? AND id = ?`), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectRow(res, apperrors.ErrExpenseNotFound)
}

func (r *ExpenseRepository) query(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}
	return expenses, nil
}

func scanExpense(rows *sql.Rows) (domain.Expense, error) {
	var (
		e              domain.Expense
		category, date string
	)
	err := rows.Scan(
		&e.ID, &e.OwnerID, &category, &e.Amount, &e.Description, &date,
		&e.IsRecurring, &e.Frequency, &e.RecurringDay,
		&e.IsLoan, &e.LoanPrincipal, &e.LoanRate, &e.LoanTenureMonths,
		&e.IsSIP, &e.SIPAssetType,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan expense row: %w", err)
	}
	e.Category = domain.ParseExpenseCategory(category)
	if e.Date, err = parseTime(date); err != nil {
		return e, err
	}
	return e, nil
}

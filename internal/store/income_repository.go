package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/domain"
)

const incomeColumns = `
	id, owner_id, name, category, income_type, nature, payout_frequency,
	amount_invested, growth_rate, monthly_income, risk_factor, weekly_hours, in_hand,
	investment_date, created_at, invested_until, next_payout_date,
	tds_deducted, tds_rate, sort_order`

// IncomeRepository provides owner-scoped access to income_source and its payout_schedule rows.
type IncomeRepository struct {
	s   *Store
	now func() time.Time
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(s *Store) *IncomeRepository {
	return &IncomeRepository{s: s, now: time.Now}
}

// List returns the owner's sources in display order with their payouts attached.
// Returns an empty slice when the owner has none.
func (r *IncomeRepository) List(ctx context.Context, ownerID string) ([]domain.IncomeSource, error) {
	query := `SELECT ` + incomeColumns + `
		FROM income_source
		WHERE owner_id = ?
		ORDER BY sort_order, created_at DESC, id`

	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query income_source table: %w", err)
	}
	defer rows.Close()

	sources := []domain.IncomeSource{}
	index := map[string]int{}
	for rows.Next() {
		src, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		index[src.ID] = len(sources)
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income_source table: %w", err)
	}
	if len(sources) == 0 {
		return sources, nil
	}

	payouts, err := r.payoutsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for sourceID, list := range payouts {
		if i, ok := index[sourceID]; ok {
			sources[i].Payouts = list
		}
	}
	return sources, nil
}

// Get returns one source of the owner. A source held by someone else yields
// apperrors.ErrForbidden, an unknown ID apperrors.ErrIncomeSourceNotFound.
func (r *IncomeRepository) Get(ctx context.Context, ownerID, id string) (domain.IncomeSource, error) {
	query := `SELECT ` + incomeColumns + `
		FROM income_source
		WHERE owner_id = ? AND id = ?`

	src, err := scanIncome(r.s.db.QueryRowContext(ctx, r.s.rebind(query), ownerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IncomeSource{}, r.missing(ctx, r.s.db, id)
	}
	if err != nil {
		return domain.IncomeSource{}, err
	}

	payouts, err := r.payoutsForSource(ctx, r.s.db, id)
	if err != nil {
		return domain.IncomeSource{}, err
	}
	src.Payouts = payouts
	return src, nil
}

// Create inserts a source and its payouts. Missing IDs are generated, CreatedAt
// defaults to now and the source is appended after the owner's last one.
func (r *IncomeRepository) Create(ctx context.Context, src domain.IncomeSource) (domain.IncomeSource, error) {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	if src.CreatedAt == nil {
		now := r.now().UTC()
		src.CreatedAt = &now
	}

	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx,
			r.s.rebind(`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM income_source WHERE owner_id = ?`),
			src.OwnerID).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}
		src.SortOrder = next

		query := `INSERT INTO income_source (` + incomeColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, r.s.rebind(query), incomeArgs(src)...); err != nil {
			return fmt.Errorf("failed to insert income source: %w", err)
		}

		src.Payouts, err = r.insertPayouts(ctx, tx, src.ID, src.Payouts)
		return err
	})
	if err != nil {
		return domain.IncomeSource{}, err
	}
	return src, nil
}

// Update replaces the editable fields of a source. Payouts are left untouched;
// use ReplacePayouts for those.
func (r *IncomeRepository) Update(ctx context.Context, src domain.IncomeSource) error {
	query := `UPDATE income_source SET
			name = ?, category = ?, income_type = ?, nature = ?, payout_frequency = ?,
			amount_invested = ?, growth_rate = ?, monthly_income = ?, risk_factor = ?, weekly_hours = ?,
			in_hand = ?, investment_date = ?, invested_until = ?, next_payout_date = ?,
			tds_deducted = ?, tds_rate = ?
		WHERE owner_id = ? AND id = ?`

	res, err := r.s.db.ExecContext(ctx, r.s.rebind(query),
		src.Name, string(src.Category), string(src.Type), string(src.Nature), src.PayoutFrequency,
		src.AmountInvested, src.GrowthRate, src.MonthlyIncome, src.RiskFactor, src.WeeklyHours,
		src.InHand, formatTimePtr(src.InvestmentDate), formatTimePtr(src.InvestedUntil), formatTimePtr(src.NextPayoutDate),
		src.TDSDeducted, src.TDSRate,
		src.OwnerID, src.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income source: %w", err)
	}
	if err := expectRow(res, apperrors.ErrIncomeSourceNotFound); err != nil {
		return r.missing(ctx, r.s.db, src.ID)
	}
	return nil
}

// Delete removes a source; its payouts go with it
func (r *IncomeRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM payout_schedule WHERE income_source_id IN
			(SELECT id FROM income_source WHERE owner_id = ? AND id = ?)`), ownerID, id); err != nil {
			return fmt.Errorf("failed to delete payouts: %w", err)
		}
		res, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM income_source WHERE owner_id = ? AND id = ?`), ownerID, id)
		if err != nil {
			return fmt.Errorf("failed to delete income source: %w", err)
		}
		if err := expectRow(res, apperrors.ErrIncomeSourceNotFound); err != nil {
			return r.missing(ctx, tx, id)
		}
		return nil
	})
}

// Reorder sets sort_order to each ID's position in ids. Every ID must belong to the owner.
func (r *IncomeRepository) Reorder(ctx context.Context, ownerID string, ids []string) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		for i, id := range ids {
			res, err := tx.ExecContext(ctx, r.s.rebind(`UPDATE income_source SET sort_order = ? WHERE owner_id = ? AND id = ?`), i, ownerID, id)
			if err != nil {
				return fmt.Errorf("failed to reorder income source %s: %w", id, err)
			}
			if err := expectRow(res, apperrors.ErrIncomeSourceNotFound); err != nil {
				return fmt.Errorf("reorder %s: %w", id, r.missing(ctx, tx, id))
			}
		}
		return nil
	})
}

// ReplacePayouts swaps the whole payout schedule of a source
func (r *IncomeRepository) ReplacePayouts(ctx context.Context, ownerID, id string, payouts []domain.PayoutSchedule) ([]domain.PayoutSchedule, error) {
	var stored []domain.PayoutSchedule
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, r.s.rebind(`SELECT COUNT(*) FROM income_source WHERE owner_id = ? AND id = ?`), ownerID, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up income source: %w", err)
		}
		if exists == 0 {
			return r.missing(ctx, tx, id)
		}
		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM payout_schedule WHERE income_source_id = ?`), id); err != nil {
			return fmt.Errorf("failed to clear payouts: %w", err)
		}
		stored, err = r.insertPayouts(ctx, tx, id, payouts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *IncomeRepository) insertPayouts(ctx context.Context, q querier, sourceID string, payouts []domain.PayoutSchedule) ([]domain.PayoutSchedule, error) {
	out := make([]domain.PayoutSchedule, 0, len(payouts))
	query := r.s.rebind(`INSERT INTO payout_schedule (id, income_source_id, date, amount, payout_type, status) VALUES (?, ?, ?, ?, ?, ?)`)
	for _, p := range payouts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Status == "" {
			p.Status = domain.PayoutScheduled
		}
		if _, err := q.ExecContext(ctx, query, p.ID, sourceID, formatTime(p.Date), p.Amount, string(p.Type), string(p.Status)); err != nil {
			return nil, fmt.Errorf("failed to insert payout: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *IncomeRepository) payoutsForSource(ctx context.Context, q querier, sourceID string) ([]domain.PayoutSchedule, error) {
	rows, err := q.QueryContext(ctx, r.s.rebind(`SELECT id, income_source_id, date, amount, payout_type, status
		FROM payout_schedule WHERE income_source_id = ? ORDER BY date, id`), sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout_schedule table: %w", err)
	}
	defer rows.Close()

	grouped, err := scanPayouts(rows)
	if err != nil {
		return nil, err
	}
	return grouped[sourceID], nil
}

func (r *IncomeRepository) payoutsForOwner(ctx context.Context, ownerID string) (map[string][]domain.PayoutSchedule, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`SELECT p.id, p.income_source_id, p.date, p.amount, p.payout_type, p.status
		FROM payout_schedule p
		JOIN income_source s ON s.id = p.income_source_id
		WHERE s.owner_id = ?
		ORDER BY p.date, p.id`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout_schedule table: %w", err)
	}
	defer rows.Close()
	return scanPayouts(rows)
}

// missing explains why an owner-scoped lookup matched nothing
func (r *IncomeRepository) missing(ctx context.Context, q querier, id string) error {
	var owner string
	err := q.QueryRowContext(ctx, r.s.rebind(`SELECT owner_id FROM income_source WHERE id = ?`), id).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.ErrIncomeSourceNotFound
	case err != nil:
		return fmt.Errorf("failed to look up income source owner: %w", err)
	default:
		return apperrors.ErrForbidden
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (domain.IncomeSource, error) {
	var (
		src                                 domain.IncomeSource
		category, incomeType, nature        string
		investmentDate, investedUntil, next sql.NullString
		createdAt                           string
	)
	err := row.Scan(
		&src.ID, &src.OwnerID, &src.Name, &category, &incomeType, &nature, &src.PayoutFrequency,
		&src.AmountInvested, &src.GrowthRate, &src.MonthlyIncome, &src.RiskFactor, &src.WeeklyHours, &src.InHand,
		&investmentDate, &createdAt, &investedUntil, &next,
		&src.TDSDeducted, &src.TDSRate, &src.SortOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return src, err
	}
	if err != nil {
		return src, fmt.Errorf("failed to scan income_source row: %w", err)
	}

	src.Category = domain.ParseCategory(category)
	src.Type = domain.ParseIncomeType(incomeType)
	src.Nature = domain.ParseNature(nature)

	created, err := parseTime(createdAt)
	if err != nil {
		return src, err
	}
	src.CreatedAt = &created
	if src.InvestmentDate, err = parseTimePtr(investmentDate); err != nil {
		return src, err
	}
	if src.InvestedUntil, err = parseTimePtr(investedUntil); err != nil {
		return src, err
	}
	if src.NextPayoutDate, err = parseTimePtr(next); err != nil {
		return src, err
	}
	return src, nil
}

func scanPayouts(rows *sql.Rows) (map[string][]domain.PayoutSchedule, error) {
	out := map[string][]domain.PayoutSchedule{}
	for rows.Next() {
		var (
			p                      domain.PayoutSchedule
			sourceID, date         string
			payoutType, statusText string
		)
		if err := rows.Scan(&p.ID, &sourceID, &date, &p.Amount, &payoutType, &statusText); err != nil {
			return nil, fmt.Errorf("failed to scan payout_schedule row: %w", err)
		}
		d, err := parseTime(date)
		if err != nil {
			return nil, err
		}
		p.Date = d
		p.Type = domain.ParsePayoutType(payoutType)
		p.Status = domain.ParsePayoutStatus(statusText)
		out[sourceID] = append(out[sourceID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payout_schedule table: %w", err)
	}
	return out, nil
}

func incomeArgs(src domain.IncomeSource) []any {
	return []any{
		src.ID, src.OwnerID, strings.TrimSpace(src.Name), string(src.Category), string(src.Type), string(src.Nature), src.PayoutFrequency,
		src.AmountInvested, src.GrowthRate, src.MonthlyIncome, src.RiskFactor, src.WeeklyHours, src.InHand,
		formatTimePtr(src.InvestmentDate), formatTime(*src.CreatedAt), formatTimePtr(src.InvestedUntil), formatTimePtr(src.NextPayoutDate),
		src.TDSDeducted, src.TDSRate, src.SortOrder,
	}
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

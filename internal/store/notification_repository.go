package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// NotificationSettings is an owner's payout reminder preference
type NotificationSettings struct {
	OwnerID    string    `json:"owner_id"`
	Email      string    `json:"email"`
	Enabled    bool      `json:"enabled"`
	WindowDays int       `json:"window_days"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ErrNotificationSettingsNotFound is returned when an owner never saved settings
var ErrNotificationSettingsNotFound = errors.New("notification settings not found")

// NotificationRepository stores reminder preferences, one row per owner
type NotificationRepository struct {
	s   *Store
	now func() time.Time
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{s: s, now: time.Now}
}

// Upsert inserts or replaces the owner's settings and returns the stored row
func (r *NotificationRepository) Upsert(ctx context.Context, ns NotificationSettings) (NotificationSettings, error) {
	ns.UpdatedAt = r.now().UTC()
	query := `INSERT INTO notification_settings (owner_id, email, enabled, window_days, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET
			email = excluded.email,
			enabled = excluded.enabled,
			window_days = excluded.window_days,
			updated_at = excluded.updated_at`

	_, err := r.s.db.ExecContext(ctx, r.s.rebind(query),
		ns.OwnerID, ns.Email, ns.Enabled, ns.WindowDays, formatTime(ns.UpdatedAt))
	if err != nil {
		return NotificationSettings{}, fmt.Errorf("failed to upsert notification settings: %w", err)
	}
	return ns, nil
}

// Get returns the owner's settings or ErrNotificationSettingsNotFound
func (r *NotificationRepository) Get(ctx context.Context, ownerID string) (NotificationSettings, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`SELECT owner_id, email, enabled, window_days, updated_at
		FROM notification_settings WHERE owner_id = ?`), ownerID)

	ns, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return NotificationSettings{}, ErrNotificationSettingsNotFound
	}
	return ns, err
}

// ListEnabled returns every owner who wants reminders
func (r *NotificationRepository) ListEnabled(ctx context.Context) ([]NotificationSettings, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`SELECT owner_id, email, enabled, window_days, updated_at
		FROM notification_settings WHERE enabled = ? ORDER BY owner_id`), true)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification_settings table: %w", err)
	}
	defer rows.Close()

	out := []NotificationSettings{}
	for rows.Next() {
		ns, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification_settings table: %w", err)
	}
	return out, nil
}

func scanNotification(row rowScanner) (NotificationSettings, error) {
	var (
		ns      NotificationSettings
		updated string
	)
	if err := row.Scan(&ns.OwnerID, &ns.Email, &ns.Enabled, &ns.WindowDays, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ns, err
		}
		return ns, fmt.Errorf("failed to scan notification_settings row: %w", err)
	}
	t, err := parseTime(updated)
	if err != nil {
		return ns, err
	}
	ns.UpdatedAt = t
	return ns, nil
}

package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles plan_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Use atomically checks the monthly quota and deducts one generation.
// It resets the counter to DefaultMonthlyPlans when last_reset_month is
// behind the current month. Returns ErrQuotaExhausted when 0 rows are
// updated (quota exhausted or user absent).
func (s *Store) Use(ctx context.Context, uid string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE plan_usage SET
			remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR remaining > 0)
	`, now, DefaultMonthlyPlans, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a new plan_usage row for uid with the default allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_usage (uid, remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultMonthlyPlans, time.Now().Format("2006-01"))
	return err
}

// Remaining reports how many generations the user has left this month.
// Unknown users and rows from a previous month report the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	var remaining int
	var lastReset string
	err := s.db.QueryRow(ctx,
		`SELECT remaining, last_reset_month FROM plan_usage WHERE uid = $1`, uid,
	).Scan(&remaining, &lastReset)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultMonthlyPlans, nil
	}
	if err != nil {
		return 0, err
	}
	if lastReset != time.Now().Format("2006-01") {
		return DefaultMonthlyPlans, nil
	}
	return remaining, nil
}

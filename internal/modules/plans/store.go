// README: Plan store backed by PostgreSQL (JSONB documents).
package plans

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Save inserts the plan document and fills in the generated id and
// creation time. Identity columns are kept out of the JSONB document;
// reads restore them from the row.
func (s *Store) Save(ctx context.Context, p *Plan) error {
	doc := *p
	doc.ID = ""
	doc.UID = ""
	doc.CreatedAt = time.Time{}
	raw, err := json.Marshal(&doc)
	if err != nil {
		return err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO plans (uid, destination, start_date, end_date, document)
		VALUES ($1, $2, $3::date, $4::date, $5)
		RETURNING id, created_at`,
		p.UID, p.Destination, p.StartDate, p.EndDate, raw,
	)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (s *Store) Get(ctx context.Context, id string) (*Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT uid, document, created_at
		FROM plans
		WHERE id = $1`, id,
	)

	var uid string
	var raw []byte
	var createdAt time.Time
	err := row.Scan(&uid, &raw, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	p.ID = id
	p.UID = uid
	p.CreatedAt = createdAt
	return &p, nil
}

func (s *Store) List(ctx context.Context, uid string, limit int) ([]*Plan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, document, created_at
		FROM plans
		WHERE uid = $1
		ORDER BY created_at DESC
		LIMIT $2`, uid, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Plan
	for rows.Next() {
		var id string
		var raw []byte
		var createdAt time.Time
		if err := rows.Scan(&id, &raw, &createdAt); err != nil {
			return nil, err
		}
		var p Plan
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		p.ID = id
		p.UID = uid
		p.CreatedAt = createdAt
		out = append(out, &p)
	}
	return out, rows.Err()
}

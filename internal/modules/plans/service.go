// README: Plan service over the store (id validation, list limits).
package plans

import (
	"context"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50
)

// Service wraps plan persistence for the HTTP layer.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Save persists a finished plan.
func (s *Service) Save(ctx context.Context, p *Plan) error {
	return s.store.Save(ctx, p)
}

// Get loads one plan by id. Malformed ids behave like unknown ids so the
// store never sees invalid UUID input.
func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPlanNotFound
	}
	return s.store.Get(ctx, id)
}

// List returns the caller's most recent plans, newest first.
func (s *Service) List(ctx context.Context, uid string, limit int) ([]*Plan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.List(ctx, uid, limit)
}

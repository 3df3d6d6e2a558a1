package domain

import "context"

// InfographicRepository persists generated infographics. The collection is
// append-only: there is no update or delete.
type InfographicRepository interface {
	Create(ctx context.Context, infographic *Infographic) error
	// List returns at most limit records in insertion order.
	List(ctx context.Context, limit int) ([]Infographic, error)
	// GetByID returns ErrNotFound when no record carries the id.
	GetByID(ctx context.Context, id string) (*Infographic, error)
	Ping(ctx context.Context) error
}

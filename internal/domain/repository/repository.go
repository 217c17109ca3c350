package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/pixcode/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("idempotency key already used")
)

// ChargeRepository stores issued charges. Finders return (nil, nil) when nothing matches.
type ChargeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Charge, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Charge, error)
	Save(ctx context.Context, charge *entity.Charge) error
}

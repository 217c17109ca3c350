package findcharge

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/pixcode/internal/domain/entity"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
)

var ErrInvalidID = errors.New("invalid charge id")

type UseCase struct {
	charges repository.ChargeRepository
}

// NewUseCase accepts a nil repository; every lookup then reports ErrNotFound.
func NewUseCase(charges repository.ChargeRepository) *UseCase {
	return &UseCase{charges: charges}
}

func (uc *UseCase) Execute(ctx context.Context, rawID string) (*entity.Charge, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if uc.charges == nil {
		return nil, repository.ErrNotFound
	}

	charge, err := uc.charges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, repository.ErrNotFound
	}
	return charge, nil
}

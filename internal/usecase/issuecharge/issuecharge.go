package issuecharge

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/domain/entity"
	"github.com/Xausdorf/pixcode/internal/domain/qrcode"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/Xausdorf/pixcode/internal/domain/repository ChargeRepository
//go:generate mockgen -destination=mocks/generator.go -package=mocks github.com/Xausdorf/pixcode/internal/domain/qrcode Generator

type Request struct {
	IdempotencyKey string
	Key            string
	Name           string
	City           string
	Amount         decimal.Decimal
	TxID           string
	// PayloadOnly skips PNG rendering; Response.QRCode stays nil.
	PayloadOnly bool
}

type Response struct {
	ChargeID string
	Payload  string
	QRCode   []byte
	Replayed bool
}

type Option func(*UseCase)

// WithLedger persists every issued charge and enables idempotent replays.
func WithLedger(charges repository.ChargeRepository) Option {
	return func(uc *UseCase) {
		uc.charges = charges
	}
}

// WithStrictValidation rejects keys and txids that do not follow a Pix format.
func WithStrictValidation() Option {
	return func(uc *UseCase) {
		uc.strict = true
	}
}

type UseCase struct {
	generator qrcode.Generator
	charges   repository.ChargeRepository
	strict    bool
}

func NewUseCase(generator qrcode.Generator, opts ...Option) *UseCase {
	uc := &UseCase{generator: generator}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	charge := brcode.Charge{
		Key:    req.Key,
		Name:   req.Name,
		City:   req.City,
		Amount: req.Amount,
		TxID:   req.TxID,
	}
	if uc.strict {
		if err := brcode.ValidateCharge(charge); err != nil {
			return nil, err
		}
	}

	idempotent := uc.charges != nil && req.IdempotencyKey != ""
	if idempotent {
		cached, err := uc.charges.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return uc.replay(cached, req.PayloadOnly)
		}
	}

	payload, err := brcode.BuildStaticPayload(charge)
	if err != nil {
		return nil, err
	}

	png, err := uc.render(payload, req.PayloadOnly)
	if err != nil {
		return nil, err
	}

	// The ledger keeps the amount as encoded in tag 54.
	encoded, err := brcode.FormatAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(encoded)
	if err != nil {
		return nil, err
	}

	issued := entity.NewCharge(entity.ChargeParams{
		IdempotencyKey: req.IdempotencyKey,
		PixKey:         req.Key,
		MerchantName:   req.Name,
		MerchantCity:   req.City,
		Amount:         amount,
		TxID:           req.TxID,
		Payload:        payload,
	})

	if uc.charges != nil {
		err := uc.charges.Save(ctx, issued)
		if idempotent && errors.Is(err, repository.ErrConflict) {
			winner, findErr := uc.charges.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if findErr != nil {
				return nil, findErr
			}
			if winner == nil {
				return nil, err
			}
			return uc.replay(winner, req.PayloadOnly)
		}
		if err != nil {
			return nil, err
		}
	}

	return &Response{
		ChargeID: issued.ID().String(),
		Payload:  payload,
		QRCode:   png,
	}, nil
}

func (uc *UseCase) replay(c *entity.Charge, payloadOnly bool) (*Response, error) {
	png, err := uc.render(c.Payload(), payloadOnly)
	if err != nil {
		return nil, err
	}
	return &Response{
		ChargeID: c.ID().String(),
		Payload:  c.Payload(),
		QRCode:   png,
		Replayed: true,
	}, nil
}

func (uc *UseCase) render(payload string, payloadOnly bool) ([]byte, error) {
	if payloadOnly {
		return nil, nil
	}
	return uc.generator.Generate(payload)
}

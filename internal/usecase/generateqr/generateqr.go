package generateqr

import (
	"github.com/shopspring/decimal"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/domain/qrcode"
)

type Request struct {
	Key    string
	Name   string
	City   string
	Amount decimal.Decimal
	TxID   string
}

type UseCase struct {
	generator qrcode.Generator
	strict    bool
}

func NewUseCase(generator qrcode.Generator, strict bool) *UseCase {
	return &UseCase{generator: generator, strict: strict}
}

// Execute renders the static BR Code for req as a PNG. Nothing is stored.
func (uc *UseCase) Execute(req Request) ([]byte, error) {
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

	payload, err := brcode.BuildStaticPayload(charge)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(payload)
}

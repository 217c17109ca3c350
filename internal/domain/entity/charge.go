package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Charge is an issued static Pix BR Code.
type Charge struct {
	id             uuid.UUID
	idempotencyKey string
	pixKey         string
	merchantName   string
	merchantCity   string
	amount         decimal.Decimal
	txID           string
	payload        string
	createdAt      time.Time
}

type ChargeParams struct {
	IdempotencyKey string
	PixKey         string
	MerchantName   string
	MerchantCity   string
	Amount         decimal.Decimal
	TxID           string
	Payload        string
}

func NewCharge(p ChargeParams) *Charge {
	return ReconstructCharge(uuid.New(), p, time.Now().UTC())
}

func ReconstructCharge(id uuid.UUID, p ChargeParams, createdAt time.Time) *Charge {
	return &Charge{
		id:             id,
		idempotencyKey: p.IdempotencyKey,
		pixKey:         p.PixKey,
		merchantName:   p.MerchantName,
		merchantCity:   p.MerchantCity,
		amount:         p.Amount,
		txID:           p.TxID,
		payload:        p.Payload,
		createdAt:      createdAt,
	}
}

func (c *Charge) ID() uuid.UUID {
	return c.id
}

func (c *Charge) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *Charge) PixKey() string {
	return c.pixKey
}

func (c *Charge) MerchantName() string {
	return c.merchantName
}

func (c *Charge) MerchantCity() string {
	return c.merchantCity
}

func (c *Charge) Amount() decimal.Decimal {
	return c.amount
}

func (c *Charge) TxID() string {
	return c.txID
}

func (c *Charge) Payload() string {
	return c.payload
}

func (c *Charge) CreatedAt() time.Time {
	return c.createdAt
}

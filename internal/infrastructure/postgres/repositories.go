package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Xausdorf/pixcode/internal/domain/entity"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS pix_charges (
	id              UUID PRIMARY KEY,
	idempotency_key TEXT UNIQUE,
	pix_key         TEXT NOT NULL,
	merchant_name   TEXT NOT NULL,
	merchant_city   TEXT NOT NULL,
	amount          NUMERIC(12, 2) NOT NULL,
	txid            TEXT NOT NULL,
	payload         TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
)`

const selectCharge = `SELECT id, idempotency_key, pix_key, merchant_name, merchant_city,
	amount::text, txid, payload, created_at FROM pix_charges`

// Migrate creates the charge ledger table if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

type ChargeRepo struct {
	pool *pgxpool.Pool
}

func NewChargeRepo(pool *pgxpool.Pool) *ChargeRepo {
	return &ChargeRepo{pool: pool}
}

func (r *ChargeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Charge, error) {
	return r.findOne(ctx, selectCharge+` WHERE id = $1`, id)
}

func (r *ChargeRepo) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Charge, error) {
	return r.findOne(ctx, selectCharge+` WHERE idempotency_key = $1`, key)
}

func (r *ChargeRepo) Save(ctx context.Context, c *entity.Charge) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO pix_charges
		 (id, idempotency_key, pix_key, merchant_name, merchant_city, amount, txid, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9)
		 ON CONFLICT (idempotency_key) DO NOTHING`,
		c.ID(), nullable(c.IdempotencyKey()), c.PixKey(), c.MerchantName(), c.MerchantCity(),
		c.Amount().StringFixed(2), c.TxID(), c.Payload(), c.CreatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (r *ChargeRepo) findOne(ctx context.Context, query string, arg any) (*entity.Charge, error) {
	var (
		id             uuid.UUID
		idempotencyKey *string
		amount         string
		createdAt      time.Time
		p              entity.ChargeParams
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id, &idempotencyKey, &p.PixKey, &p.MerchantName, &p.MerchantCity,
		&amount, &p.TxID, &p.Payload, &createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("charge %s: amount %q: %w", id, amount, err)
	}
	if idempotencyKey != nil {
		p.IdempotencyKey = *idempotencyKey
	}
	return entity.ReconstructCharge(id, p, createdAt), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

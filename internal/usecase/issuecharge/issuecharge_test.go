package issuecharge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/domain/entity"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
	"github.com/Xausdorf/pixcode/internal/usecase/issuecharge"
	"github.com/Xausdorf/pixcode/internal/usecase/issuecharge/mocks"
)

const scenarioPayload = "00020126330014br.gov.bcb.pix011111999998888520400005303986540510.005802BR" +
	"5913FULANO DE TAL6008BRASILIA62130509DEVPROPAY6304DC7C"

var png = []byte{0x89, 'P', 'N', 'G'}

func scenarioRequest(idempotencyKey string) issuecharge.Request {
	return issuecharge.Request{
		IdempotencyKey: idempotencyKey,
		Key:            "11999998888",
		Name:           "Fulano de Tal",
		City:           "Brasilia",
		Amount:         decimal.NewFromInt(10),
		TxID:           "DEVPROPAY",
	}
}

func storedCharge(key string) *entity.Charge {
	return entity.ReconstructCharge(uuid.New(), entity.ChargeParams{
		IdempotencyKey: key,
		PixKey:         "11999998888",
		MerchantName:   "Fulano de Tal",
		MerchantCity:   "Brasilia",
		Amount:         decimal.NewFromInt(10),
		TxID:           "DEVPROPAY",
		Payload:        scenarioPayload,
	}, time.Time{})
}

func TestIssueCharge_Execute_WithoutLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(scenarioPayload).Return(png, nil)

	uc := issuecharge.NewUseCase(gen)

	resp, err := uc.Execute(context.Background(), scenarioRequest("ignored"))

	require.NoError(t, err)
	assert.Equal(t, scenarioPayload, resp.Payload)
	assert.Equal(t, png, resp.QRCode)
	assert.False(t, resp.Replayed)
	_, parseErr := uuid.Parse(resp.ChargeID)
	assert.NoError(t, parseErr)
}

func TestIssueCharge_Execute_SavesNewCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "new-key").Return(nil, nil)
	gen.EXPECT().Generate(scenarioPayload).Return(png, nil)

	var saved *entity.Charge
	charges.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *entity.Charge) error {
			saved = c
			return nil
		})

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	resp, err := uc.Execute(context.Background(), scenarioRequest("new-key"))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID().String(), resp.ChargeID)
	assert.Equal(t, "new-key", saved.IdempotencyKey())
	assert.Equal(t, scenarioPayload, saved.Payload())
	assert.Equal(t, "11999998888", saved.PixKey())
	assert.False(t, resp.Replayed)
}

func TestIssueCharge_Execute_ReplaysIdempotentRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	cached := storedCharge("replayed-key")
	charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "replayed-key").Return(cached, nil)
	gen.EXPECT().Generate(scenarioPayload).Return(png, nil)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	req := scenarioRequest("replayed-key")
	req.Amount = decimal.NewFromInt(99)
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.Equal(t, cached.ID().String(), resp.ChargeID)
	assert.Equal(t, scenarioPayload, resp.Payload)
}

func TestIssueCharge_Execute_ConflictReturnsWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	winner := storedCharge("race-key")
	gomock.InOrder(
		charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "race-key").Return(nil, nil),
		charges.EXPECT().Save(gomock.Any(), gomock.Any()).Return(repository.ErrConflict),
		charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "race-key").Return(winner, nil),
	)
	gen.EXPECT().Generate(scenarioPayload).Return(png, nil).Times(2)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	resp, err := uc.Execute(context.Background(), scenarioRequest("race-key"))

	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.Equal(t, winner.ID().String(), resp.ChargeID)
}

func TestIssueCharge_Execute_WithoutIdempotencyKeySkipsLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	gen.EXPECT().Generate(scenarioPayload).Return(png, nil)
	charges.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	resp, err := uc.Execute(context.Background(), scenarioRequest(""))

	require.NoError(t, err)
	assert.False(t, resp.Replayed)
}

func TestIssueCharge_Execute_StrictRejectsUnknownKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges), issuecharge.WithStrictValidation())

	req := scenarioRequest("strict-key")
	req.Key = "not-a-pix-key"
	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, brcode.ErrUnknownKeyType)
	assert.True(t, brcode.IsEncodingError(err))
}

func TestIssueCharge_Execute_EncodingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)
	charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "bad-amount").Return(nil, nil)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	req := scenarioRequest("bad-amount")
	req.Amount = decimal.NewFromInt(-5)
	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, brcode.ErrNegativeAmount)
}

func TestIssueCharge_Execute_GeneratorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any()).Return(nil, errors.New("qr too large"))

	uc := issuecharge.NewUseCase(gen)

	_, err := uc.Execute(context.Background(), scenarioRequest(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "qr too large")
}

func TestIssueCharge_Execute_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)
	charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "db-down").Return(nil, errors.New("connection refused"))

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	_, err := uc.Execute(context.Background(), scenarioRequest("db-down"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIssueCharge_Execute_PayloadOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	cached := storedCharge("payload-only")
	charges.EXPECT().FindByIdempotencyKey(gomock.Any(), "payload-only").Return(cached, nil)
	charges.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	req := scenarioRequest("")
	req.PayloadOnly = true
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, scenarioPayload, resp.Payload)
	assert.Nil(t, resp.QRCode)

	req = scenarioRequest("payload-only")
	req.PayloadOnly = true
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.Nil(t, resp.QRCode)
}

func TestIssueCharge_Execute_StoresEncodedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	gen.EXPECT().Generate(gomock.Any()).Return(png, nil)
	var saved *entity.Charge
	charges.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *entity.Charge) error {
			saved = c
			return nil
		})

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	req := scenarioRequest("")
	req.Amount = decimal.RequireFromString("10.565")
	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "10.57", saved.Amount().StringFixed(2))
	assert.True(t, saved.Amount().Equal(decimal.RequireFromString("10.57")))
}

func TestIssueCharge_Execute_OversizedAmountNeverReachesLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	charges := mocks.NewMockChargeRepository(ctrl)

	uc := issuecharge.NewUseCase(gen, issuecharge.WithLedger(charges))

	for _, amount := range []string{"10000000000000", "1e10000000"} {
		req := scenarioRequest("")
		req.Amount = decimal.RequireFromString(amount)
		_, err := uc.Execute(context.Background(), req)

		require.ErrorIs(t, err, brcode.ErrValueTooLong, amount)
		assert.True(t, brcode.IsEncodingError(err))
	}
}

package grpc

import (
	"context"
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/usecase/issuecharge"
)

var errInvalidAmount = errors.New("amount must be a number or a decimal string")

type Handler struct {
	issueUC *issuecharge.UseCase
}

func NewHandler(issueUC *issuecharge.UseCase) *Handler {
	return &Handler{issueUC: issueUC}
}

func (h *Handler) GenerateStaticPayload(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	fields := req.GetFields()

	amount, err := amountFrom(fields["amount"])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.issueUC.Execute(ctx, issuecharge.Request{
		IdempotencyKey: fields["idempotency_key"].GetStringValue(),
		Key:            fields["key"].GetStringValue(),
		Name:           fields["name"].GetStringValue(),
		City:           fields["city"].GetStringValue(),
		Amount:         amount,
		TxID:           fields["txid"].GetStringValue(),
		PayloadOnly:    true,
	})
	if err != nil {
		if brcode.IsEncodingError(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "issue charge failed: %v", err)
	}

	return wrapperspb.String(resp.Payload), nil
}

// amountFrom accepts a JSON number or a decimal string. Strings avoid float
// rounding and are preferred by callers that hold exact cents.
func amountFrom(v *structpb.Value) (decimal.Decimal, error) {
	switch k := v.GetKind().(type) {
	case nil:
		return decimal.Zero, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return decimal.Zero, errInvalidAmount
		}
		return decimal.NewFromFloat(k.NumberValue), nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(k.StringValue)
		if err != nil {
			return decimal.Zero, errInvalidAmount
		}
		return d, nil
	default:
		return decimal.Zero, errInvalidAmount
	}
}

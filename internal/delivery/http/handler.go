package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/domain/entity"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
	"github.com/Xausdorf/pixcode/internal/usecase/findcharge"
	"github.com/Xausdorf/pixcode/internal/usecase/generateqr"
	"github.com/Xausdorf/pixcode/internal/usecase/issuecharge"
)

const idempotencyHeader = "X-Idempotency-Key"

type Handler struct {
	issueUC      *issuecharge.UseCase
	generateQRUC *generateqr.UseCase
	findUC       *findcharge.UseCase
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewHandler(
	issueUC *issuecharge.UseCase,
	generateQRUC *generateqr.UseCase,
	findUC *findcharge.UseCase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		issueUC:      issueUC,
		generateQRUC: generateQRUC,
		findUC:       findUC,
		validate:     newValidator(),
		logger:       logger,
	}
}

type IssueRequest struct {
	Key    string          `json:"key" validate:"required,max=77"`
	Name   string          `json:"name" validate:"required,max=200"`
	City   string          `json:"city" validate:"max=200"`
	Amount decimal.Decimal `json:"amount"`
	TxID   string          `json:"txid" validate:"max=99"`
}

type IssueResponse struct {
	ChargeID  string `json:"charge_id"`
	Payload   string `json:"payload"`
	QRCodePNG []byte `json:"qr_code_png"`
	Replayed  bool   `json:"replayed"`
}

type ChargeResponse struct {
	ID           string    `json:"id"`
	PixKey       string    `json:"pix_key"`
	MerchantName string    `json:"merchant_name"`
	MerchantCity string    `json:"merchant_city"`
	Amount       string    `json:"amount"`
	TxID         string    `json:"txid"`
	Payload      string    `json:"payload"`
	CreatedAt    time.Time `json:"created_at"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *Handler) HandleIssueCharge(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid request",
			Details: formatValidationError(err),
		})
		return
	}

	resp, err := h.issueUC.Execute(r.Context(), issuecharge.Request{
		IdempotencyKey: r.Header.Get(idempotencyHeader),
		Key:            req.Key,
		Name:           req.Name,
		City:           req.City,
		Amount:         req.Amount,
		TxID:           req.TxID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	status := http.StatusCreated
	if resp.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, IssueResponse{
		ChargeID:  resp.ChargeID,
		Payload:   resp.Payload,
		QRCodePNG: resp.QRCode,
		Replayed:  resp.Replayed,
	})
}

func (h *Handler) HandleGetCharge(w http.ResponseWriter, r *http.Request) {
	charge, err := h.findUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeResponse(charge))
}

func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amountStr := q.Get("amount")
	if amountStr == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount query param required"})
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}

	png, err := h.generateQRUC.Execute(generateqr.Request{
		Key:    q.Get("key"),
		Name:   q.Get("name"),
		City:   q.Get("city"),
		Amount: amount,
		TxID:   q.Get("txid"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case brcode.IsEncodingError(err), errors.Is(err, findcharge.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "charge not found"})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toChargeResponse(c *entity.Charge) ChargeResponse {
	return ChargeResponse{
		ID:           c.ID().String(),
		PixKey:       c.PixKey(),
		MerchantName: c.MerchantName(),
		MerchantCity: c.MerchantCity(),
		Amount:       c.Amount().StringFixed(2),
		TxID:         c.TxID(),
		Payload:      c.Payload(),
		CreatedAt:    c.CreatedAt(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

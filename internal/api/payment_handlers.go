package api

import (
	"encoding/json"
	"net/http"

	"slotpark/internal/db"
	"slotpark/internal/entities"
	apperrors "slotpark/internal/errors"
	"slotpark/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// Process handles POST /api/payments/process. The amount is taken from the
// referenced booking, not from the request.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req entities.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payment := &db.Payment{Amount: req.Amount}
	if err := h.Service.Process(req.BookingID, payment); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeText(w, msgPaymentProcessed)
}

// Delete handles DELETE /api/payments/{paymentId}. Succeeds regardless of
// prior existence.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeText(w, msgPaymentDeleted)
}

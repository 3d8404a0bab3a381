package handlers

import (
	"net/http"

	"payment-module/http/response"
	"payment-module/logger"
	"payment-module/services"
	"payment-module/utils"
)

// CreatePayment handles POST /api/payment/create-payment. It initiates the
// order, signs the authorization token, dispatches to the gateway and
// records the pending settlement row.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req services.CreatePaymentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.payments.CreatePayment(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.Info("Payment created: order_id=%s custom_order_id=%s", resp.OrderID, resp.CustomOrderID)
	response.SendJSON(w, http.StatusOK, resp)
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"payment-module/http/response"
	"payment-module/logger"
	"payment-module/services"
	"payment-module/store"
	"payment-module/utils"
)

// transactionPage wraps a page of joined transaction rows with page info.
type transactionPage struct {
	Data  []interface{} `json:"data"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total"`
}

// ListTransactions handles GET /api/transactions with paging, sorting and an
// optional status filter.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := utils.ParsePageParams(r)

	transactions, total, err := h.transactions.List(store.ListParams{
		Page:   params.Page,
		Limit:  params.Limit,
		Sort:   params.Sort,
		Order:  params.Order,
		Status: params.Status,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	data := make([]interface{}, len(transactions))
	for i := range transactions {
		data[i] = transactions[i]
	}

	response.SendJSON(w, http.StatusOK, transactionPage{
		Data:  data,
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	})
}

// ListTransactionsBySchool handles GET /api/transactions/school/{schoolId}.
// A school with no transactions gets an empty list, not an error.
func (h *Handler) ListTransactionsBySchool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schoolID := strings.TrimPrefix(r.URL.Path, "/api/transactions/school/")
	if schoolID == "" || strings.Contains(schoolID, "/") {
		response.ErrorResponse(w, http.StatusBadRequest, "school id is required")
		return
	}

	transactions, err := h.transactions.ListBySchool(schoolID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SendJSON(w, http.StatusOK, map[string]interface{}{"data": transactions})
}

// GetTransactionStatus handles GET /api/transaction-status/{custom_order_id}.
// The lookup runs against the status record alone.
func (h *Handler) GetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	customOrderID := strings.TrimPrefix(r.URL.Path, "/api/transaction-status/")
	if customOrderID == "" || strings.Contains(customOrderID, "/") {
		response.ErrorResponse(w, http.StatusBadRequest, "custom order id is required")
		return
	}

	status, err := h.payments.GetStatus(customOrderID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SendJSON(w, http.StatusOK, status)
}

// Transaction handles GET and PUT on /api/transactions/{id}. The PUT is the
// administrative settlement override.
func (h *Handler) Transaction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		response.ErrorResponse(w, http.StatusNotFound, "transaction not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		txn, err := h.transactions.GetByCollectID(id)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.SendJSON(w, http.StatusOK, txn)

	case http.MethodPut:
		var req services.UpdateStatusRequest
		if err := utils.DecodeJSONRequest(r, &req); err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := h.payments.UpdateStatus(id, req)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.SuccessResponse(w, http.StatusOK, "transaction updated", updated)

	default:
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ExportTransactions handles GET /api/transactions/export, streaming the
// joined listing as an XLSX workbook.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := utils.ParsePageParams(r)

	// Export is not paginated; pull up to the cap in one page.
	transactions, _, err := h.transactions.List(store.ListParams{
		Page:   1,
		Limit:  utils.MaxLimit,
		Sort:   params.Sort,
		Order:  params.Order,
		Status: params.Status,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		"attachment; filename=transactions_"+time.Now().Format("20060102")+".xlsx")

	if err := services.WriteTransactionsXLSX(w, transactions); err != nil {
		// Headers are already out; log and let the truncated download signal it.
		logger.Error("Error writing transactions export: %v", err)
	}
}

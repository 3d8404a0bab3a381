package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"payment-module/config"
	"payment-module/errors"
	"payment-module/logger"
	"payment-module/models"
	"payment-module/store"
)

// PaymentService coordinates order creation, token signing, gateway dispatch
// and settlement tracking.
type PaymentService struct {
	orders   *store.OrderStore
	statuses *store.StatusStore
	issuer   *TokenIssuer
	gateway  Dispatcher
	razorpay Dispatcher

	defaultGateway string
}

// NewPaymentService creates a PaymentService around the given stores, token
// issuer and default gateway dispatcher.
func NewPaymentService(orders *store.OrderStore, statuses *store.StatusStore, issuer *TokenIssuer, gateway Dispatcher) *PaymentService {
	return &PaymentService{
		orders:         orders,
		statuses:       statuses,
		issuer:         issuer,
		gateway:        gateway,
		defaultGateway: config.AppConfig.DefaultGateway,
	}
}

// WithRazorpay registers the Razorpay dispatcher, used when a caller asks for
// gateway_name "razorpay".
func (s *PaymentService) WithRazorpay(d Dispatcher) *PaymentService {
	s.razorpay = d
	return s
}

// CreatePaymentRequest represents a create-payment call.
type CreatePaymentRequest struct {
	SchoolID    string              `json:"school_id"`
	StudentInfo *models.StudentInfo `json:"student_info"`
	OrderAmount float64             `json:"order_amount"`
	GatewayName string              `json:"gateway_name"`
}

// CreatePaymentResponse is returned to the caller on success.
type CreatePaymentResponse struct {
	PaymentURL    *string `json:"payment_url"`
	OrderID       string  `json:"order_id"`
	CustomOrderID string  `json:"custom_order_id"`
}

func (r *CreatePaymentRequest) validate() error {
	if r.SchoolID == "" {
		return errors.NewInvalidParamsError("school_id is required")
	}
	if r.StudentInfo == nil || r.StudentInfo.Name == "" || r.StudentInfo.ID == "" {
		return errors.NewInvalidParamsError("student_info with name and id is required")
	}
	if r.OrderAmount <= 0 {
		return errors.NewInvalidParamsError("order_amount must be greater than 0")
	}
	return nil
}

// CreatePayment runs the full payment initiation flow:
//
//  1. persist the immutable order (must succeed before anything else)
//  2. sign the {collect_id, order_amount} authorization token
//  3. dispatch the signed payload to the gateway
//  4. persist the pending status row
//
// A signing or dispatch failure fails the whole request; the order row may
// remain orphaned but a status row is never written without its order.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	gatewayName := req.GatewayName
	if gatewayName == "" {
		gatewayName = s.defaultGateway
	}

	order := &models.Order{
		SchoolID:    req.SchoolID,
		StudentInfo: *req.StudentInfo,
		OrderAmount: req.OrderAmount,
		GatewayName: gatewayName,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	payload := CollectPayload{CollectID: order.ID, OrderAmount: order.OrderAmount}

	signed, err := s.issuer.Sign(payload.CollectID, payload.OrderAmount)
	if err != nil {
		logger.Error("Payment creation failed for order %s: %v", order.ID, err)
		return nil, errors.E(errors.Internal, "payment creation failed", err)
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, GatewayTimeout)
	defer cancel()

	result, err := s.pickGateway(gatewayName).Dispatch(dispatchCtx, payload, signed)
	if err != nil {
		logger.Error("Payment creation failed for order %s: %v", order.ID, err)
		return nil, errors.E(errors.Unavailable, "payment creation failed", err)
	}

	status := &models.OrderStatus{
		CollectID:   order.ID,
		OrderAmount: order.OrderAmount,
		GatewayName: gatewayName,
	}
	if err := s.statuses.Create(status); err != nil {
		return nil, err
	}

	s.publishPaymentInitiated(order, status)

	return &CreatePaymentResponse{
		PaymentURL:    result.RedirectURL,
		OrderID:       order.ID,
		CustomOrderID: status.CustomOrderID,
	}, nil
}

func (s *PaymentService) pickGateway(name string) Dispatcher {
	if s.razorpay != nil && strings.EqualFold(name, "razorpay") {
		return s.razorpay
	}
	return s.gateway
}

// StatusResponse is the stand-alone status check answer. It never touches
// the order row.
type StatusResponse struct {
	Status            string   `json:"status"`
	OrderAmount       float64  `json:"order_amount"`
	TransactionAmount *float64 `json:"transaction_amount,omitempty"`
}

// GetStatus looks up the settlement state by the caller-facing id.
func (s *PaymentService) GetStatus(customOrderID string) (*StatusResponse, error) {
	status, err := s.statuses.GetByCustomOrderID(customOrderID)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		Status:            status.Status,
		OrderAmount:       status.OrderAmount,
		TransactionAmount: status.TransactionAmount,
	}, nil
}

// UpdateStatusRequest represents an administrative settlement update.
type UpdateStatusRequest struct {
	Status            string   `json:"status"`
	TransactionAmount *float64 `json:"transaction_amount"`
}

// UpdateStatus overwrites the settlement state of an order. This is the
// administrative override path: it may move a terminal row, which a
// gateway-driven transition never would, so it sits behind operator auth.
func (s *PaymentService) UpdateStatus(collectID string, req UpdateStatusRequest) (*models.OrderStatus, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, errors.NewInvalidParamsError(
			fmt.Sprintf("invalid status %q: must be pending, success or failed", req.Status))
	}

	if err := s.statuses.Update(collectID, req.Status, req.TransactionAmount); err != nil {
		return nil, err
	}

	updated, err := s.statuses.GetByCollectID(collectID)
	if err != nil {
		return nil, err
	}

	s.publishStatusUpdated(updated)

	if updated.Status == models.StatusSuccess {
		go s.sendSettlementReceipt(updated)
	}

	return updated, nil
}

func (s *PaymentService) publishPaymentInitiated(order *models.Order, status *models.OrderStatus) {
	go func() {
		evt := map[string]interface{}{
			"event":           "payment.initiated",
			"collect_id":      order.ID,
			"custom_order_id": status.CustomOrderID,
			"school_id":       order.SchoolID,
			"order_amount":    order.OrderAmount,
			"gateway":         order.GatewayName,
			"status":          status.Status,
			"ts":              time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish(config.AppConfig.KafkaTopic, "school-"+order.SchoolID, evt); err != nil {
			logger.Warn("Failed to publish payment.initiated event: %v", err)
		}
	}()
}

func (s *PaymentService) publishStatusUpdated(status *models.OrderStatus) {
	go func() {
		evt := map[string]interface{}{
			"event":           "payment.status_updated",
			"collect_id":      status.CollectID,
			"custom_order_id": status.CustomOrderID,
			"status":          status.Status,
			"ts":              time.Now().UTC().Format(time.RFC3339),
		}
		if status.TransactionAmount != nil {
			evt["transaction_amount"] = *status.TransactionAmount
		}
		if err := Publish(config.AppConfig.KafkaTopic, "order-"+status.CollectID, evt); err != nil {
			logger.Warn("Failed to publish payment.status_updated event: %v", err)
		}
	}()
}

// sendSettlementReceipt generates a receipt PDF and mails it to the student
// when the order carries an email address. Best-effort: failures are logged,
// never surfaced.
func (s *PaymentService) sendSettlementReceipt(status *models.OrderStatus) {
	order, err := s.orders.GetByID(status.CollectID)
	if err != nil {
		logger.Warn("Receipt skipped, order %s not found: %v", status.CollectID, err)
		return
	}
	if order.StudentInfo.Email == "" {
		return
	}

	filePath, err := GenerateReceipt(order, status)
	if err != nil {
		logger.Error("Error generating receipt for order %s: %v", order.ID, err)
		return
	}

	if err := SendReceiptEmail(order, status, filePath); err != nil {
		logger.Error("Error emailing receipt for order %s: %v", order.ID, err)
		return
	}

	logger.Info("Settlement receipt sent for order %s to %s", order.ID, order.StudentInfo.Email)
}

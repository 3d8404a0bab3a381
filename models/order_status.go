package models

import "time"

// Settlement states of an OrderStatus. A status row starts as pending and
// normally ends at success or failed; only the administrative update path
// may move it again afterwards.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// IsValidStatus reports whether s is one of the settlement states.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// OrderStatus tracks the settlement state of an Order over time. It snapshots
// the amount and gateway at dispatch time so a status check never needs the
// Order row.
type OrderStatus struct {
	CollectID         string    `json:"collect_id"`
	CustomOrderID     string    `json:"custom_order_id"`
	OrderAmount       float64   `json:"order_amount"`
	TransactionAmount *float64  `json:"transaction_amount,omitempty"`
	Status            string    `json:"status"`
	GatewayName       string    `json:"gateway_name"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Transaction is the joined Order + OrderStatus projection returned by the
// listing endpoints.
type Transaction struct {
	CollectID         string    `json:"collect_id"`
	CustomOrderID     string    `json:"custom_order_id"`
	SchoolID          string    `json:"school_id"`
	StudentName       string    `json:"student_name"`
	GatewayName       string    `json:"gateway"`
	OrderAmount       float64   `json:"order_amount"`
	TransactionAmount *float64  `json:"transaction_amount,omitempty"`
	Status            string    `json:"status"`
	PaymentTime       time.Time `json:"payment_time"`
}

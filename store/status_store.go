package store

import (
	"database/sql"
	"strings"
	"time"

	"payment-module/errors"
	"payment-module/models"

	"github.com/google/uuid"
)

// StatusStore persists the mutable settlement record of each order. One row
// is created per order at dispatch time and mutated afterwards.
type StatusStore struct {
	db *sql.DB
}

// NewStatusStore creates a StatusStore backed by db
func NewStatusStore(db *sql.DB) *StatusStore {
	return &StatusStore{db: db}
}

// Create inserts the initial pending row for an order, snapshotting the
// amount and gateway so status lookups stand alone. The generated
// custom_order_id is filled in on status.
func (s *StatusStore) Create(status *models.OrderStatus) error {
	status.CustomOrderID = newCustomOrderID()
	status.Status = models.StatusPending
	status.UpdatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO order_status (collect_id, custom_order_id, order_amount, status, gateway_name, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		status.CollectID, status.CustomOrderID, status.OrderAmount,
		status.Status, status.GatewayName, status.UpdatedAt,
	)
	if err != nil {
		return errors.E(errors.Internal, "error saving order status", err)
	}

	return nil
}

// GetByCustomOrderID fetches a status row by its caller-facing id. The order
// row is never consulted.
func (s *StatusStore) GetByCustomOrderID(customOrderID string) (*models.OrderStatus, error) {
	return s.get(`custom_order_id`, customOrderID)
}

// GetByCollectID fetches a status row by its order link.
func (s *StatusStore) GetByCollectID(collectID string) (*models.OrderStatus, error) {
	return s.get(`collect_id`, collectID)
}

func (s *StatusStore) get(column, value string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	var txnAmount sql.NullFloat64

	err := s.db.QueryRow(
		`SELECT collect_id, custom_order_id, order_amount, transaction_amount, status, gateway_name, updated_at
		 FROM order_status WHERE `+column+` = $1`, value,
	).Scan(&status.CollectID, &status.CustomOrderID, &status.OrderAmount,
		&txnAmount, &status.Status, &status.GatewayName, &status.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("transaction not found")
	}
	if err != nil {
		return nil, errors.E(errors.Internal, "error fetching order status", err)
	}

	if txnAmount.Valid {
		status.TransactionAmount = &txnAmount.Float64
	}

	return &status, nil
}

// Update overwrites status and transaction_amount for a collect id and bumps
// updated_at. The single UPDATE statement makes the read-modify-write atomic;
// racing administrative updates resolve last-writer-wins.
func (s *StatusStore) Update(collectID, status string, transactionAmount *float64) error {
	var txnAmount sql.NullFloat64
	if transactionAmount != nil {
		txnAmount = sql.NullFloat64{Float64: *transactionAmount, Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE order_status SET status = $1, transaction_amount = $2, updated_at = NOW() WHERE collect_id = $3`,
		status, txnAmount, collectID,
	)
	if err != nil {
		return errors.E(errors.Internal, "error updating order status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.E(errors.Internal, "error checking status update", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("transaction not found")
	}

	return nil
}

// newCustomOrderID builds the caller-facing correlation id used for external
// status lookups.
func newCustomOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

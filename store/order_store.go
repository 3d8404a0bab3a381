package store

import (
	"database/sql"
	"fmt"
	"time"

	"payment-module/errors"
	"payment-module/models"

	"github.com/google/uuid"
)

// OrderStore persists the immutable order records. Rows are only ever
// inserted; there is no update path.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates an OrderStore backed by db
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts a new order and fills in its generated id and creation time.
func (s *OrderStore) Create(order *models.Order) error {
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO orders (id, school_id, student_name, student_external_id, student_email, order_amount, gateway_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.SchoolID, order.StudentInfo.Name, order.StudentInfo.ID,
		nullable(order.StudentInfo.Email), order.OrderAmount, order.GatewayName, order.CreatedAt,
	)
	if err != nil {
		return errors.E(errors.Internal, "error saving order", fmt.Errorf("insert order: %w", err))
	}

	return nil
}

// GetByID fetches a single order row.
func (s *OrderStore) GetByID(id string) (*models.Order, error) {
	var order models.Order
	var email sql.NullString

	err := s.db.QueryRow(
		`SELECT id, school_id, student_name, student_external_id, student_email, order_amount, gateway_name, created_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.SchoolID, &order.StudentInfo.Name, &order.StudentInfo.ID,
		&email, &order.OrderAmount, &order.GatewayName, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, errors.E(errors.Internal, "error fetching order", err)
	}

	if email.Valid {
		order.StudentInfo.Email = email.String
	}

	return &order, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

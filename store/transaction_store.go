package store

import (
	"database/sql"
	"fmt"

	"payment-module/errors"
	"payment-module/models"
)

// TransactionStore serves the read-only joined Order + OrderStatus
// projections used by the dashboard. Nothing here mutates state.
type TransactionStore struct {
	db *sql.DB
}

// NewTransactionStore creates a TransactionStore backed by db
func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// ListParams carries the paging, sorting and filter options for List.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string // one of the sortColumns keys
	Order  string // "asc" or "desc"
	Status string // optional settlement state filter
}

// Whitelisted sort fields mapped to join columns. Anything else falls back
// to payment time.
var sortColumns = map[string]string{
	"payment_time":       "os.updated_at",
	"order_amount":       "os.order_amount",
	"transaction_amount": "os.transaction_amount",
	"status":             "os.status",
	"school_id":          "o.school_id",
}

const transactionSelect = `
	SELECT o.id, os.custom_order_id, o.school_id, o.student_name, os.gateway_name,
	       os.order_amount, os.transaction_amount, os.status, os.updated_at
	FROM orders o
	JOIN order_status os ON os.collect_id = o.id`

// List returns one page of transactions plus the total row count for the
// applied filter.
func (s *TransactionStore) List(params ListParams) ([]models.Transaction, int, error) {
	column, ok := sortColumns[params.Sort]
	if !ok {
		column = sortColumns["payment_time"]
	}
	direction := "DESC"
	if params.Order == "asc" {
		direction = "ASC"
	}

	where := ""
	args := []interface{}{}
	if params.Status != "" {
		where = " WHERE os.status = $1"
		args = append(args, params.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o JOIN order_status os ON os.collect_id = o.id` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.E(errors.Internal, "error counting transactions", err)
	}

	offset := (params.Page - 1) * params.Limit
	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		transactionSelect, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, params.Limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, errors.E(errors.Internal, "error listing transactions", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListBySchool returns every transaction for a school, newest first. An
// unknown school yields an empty list.
func (s *TransactionStore) ListBySchool(schoolID string) ([]models.Transaction, error) {
	rows, err := s.db.Query(transactionSelect+` WHERE o.school_id = $1 ORDER BY os.updated_at DESC`, schoolID)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing school transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByCollectID returns the joined row for a single order.
func (s *TransactionStore) GetByCollectID(collectID string) (*models.Transaction, error) {
	row := s.db.QueryRow(transactionSelect+` WHERE o.id = $1`, collectID)

	txn, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("transaction not found")
	}
	if err != nil {
		return nil, errors.E(errors.Internal, "error fetching transaction", err)
	}

	return txn, nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, errors.E(errors.Internal, "error scanning transaction", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.E(errors.Internal, "error reading transactions", err)
	}
	return transactions, nil
}

func scanTransaction(scan func(dest ...interface{}) error) (*models.Transaction, error) {
	var txn models.Transaction
	var txnAmount sql.NullFloat64

	err := scan(&txn.CollectID, &txn.CustomOrderID, &txn.SchoolID, &txn.StudentName,
		&txn.GatewayName, &txn.OrderAmount, &txnAmount, &txn.Status, &txn.PaymentTime)
	if err != nil {
		return nil, err
	}

	if txnAmount.Valid {
		txn.TransactionAmount = &txnAmount.Float64
	}

	return &txn, nil
}

package store

import (
	"testing"
	"time"

	"payment-module/errors"
	"payment-module/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStoreCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orders := NewOrderStore(db)

	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))

	order := &models.Order{
		SchoolID:    "S1",
		StudentInfo: models.StudentInfo{Name: "A", ID: "R1"},
		OrderAmount: 500,
		GatewayName: "UPI",
	}

	err = orders.Create(order)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreCreateDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orders := NewOrderStore(db)

	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(assert.AnError)

	err = orders.Create(&models.Order{
		SchoolID:    "S1",
		StudentInfo: models.StudentInfo{Name: "A", ID: "R1"},
		OrderAmount: 500,
		GatewayName: "UPI",
	})
	require.Error(t, err)
	assert.Equal(t, errors.Internal, errors.KindOf(err))
}

func TestOrderStoreGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orders := NewOrderStore(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "school_id", "student_name", "student_external_id",
		"student_email", "order_amount", "gateway_name", "created_at",
	}).AddRow("o-1", "S1", "A", "R1", "a@school.test", 500.0, "UPI", now)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("o-1").
		WillReturnRows(rows)

	order, err := orders.GetByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, "S1", order.SchoolID)
	assert.Equal(t, "a@school.test", order.StudentInfo.Email)
	assert.Equal(t, 500.0, order.OrderAmount)
}

func TestOrderStoreGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orders := NewOrderStore(db)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := orders.GetByID("missing")
	assert.Nil(t, order)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}

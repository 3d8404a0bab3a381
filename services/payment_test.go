package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-module/config"
	"payment-module/errors"
	"payment-module/models"
	"payment-module/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaymentService(t *testing.T, gatewayHandler http.HandlerFunc) (*PaymentService, sqlmock.Sqlmock, *httptest.Server) {
	t.Helper()

	config.AppConfig.DefaultGateway = "UPI"
	config.AppConfig.KafkaBrokers = "" // events disabled in tests

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	server := httptest.NewServer(gatewayHandler)
	t.Cleanup(server.Close)

	issuer, err := NewTokenIssuer("test-secret")
	require.NoError(t, err)

	svc := NewPaymentService(
		store.NewOrderStore(db),
		store.NewStatusStore(db),
		issuer,
		NewHTTPGateway(server.URL, "pg-key"),
	)
	return svc, mock, server
}

func gatewayOK(redirectURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if redirectURL == "" {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"redirect_url":"` + redirectURL + `"}`))
	}
}

func validRequest() CreatePaymentRequest {
	return CreatePaymentRequest{
		SchoolID:    "S1",
		StudentInfo: &models.StudentInfo{Name: "A", ID: "R1"},
		OrderAmount: 500,
	}
}

func TestCreatePayment(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK("https://pay.example/abc"))

	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_status").WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.CreatePayment(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
	assert.NotEmpty(t, resp.CustomOrderID)
	require.NotNil(t, resp.PaymentURL)
	assert.Equal(t, "https://pay.example/abc", *resp.PaymentURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentNoRedirectURLStillPends(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_status").WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.CreatePayment(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.PaymentURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	cases := []struct {
		name string
		req  CreatePaymentRequest
	}{
		{"missing school", CreatePaymentRequest{StudentInfo: &models.StudentInfo{Name: "A", ID: "R1"}, OrderAmount: 500}},
		{"missing student info", CreatePaymentRequest{SchoolID: "S1", OrderAmount: 500}},
		{"incomplete student info", CreatePaymentRequest{SchoolID: "S1", StudentInfo: &models.StudentInfo{Name: "A"}, OrderAmount: 500}},
		{"missing amount", CreatePaymentRequest{SchoolID: "S1", StudentInfo: &models.StudentInfo{Name: "A", ID: "R1"}}},
		{"negative amount", CreatePaymentRequest{SchoolID: "S1", StudentInfo: &models.StudentInfo{Name: "A", ID: "R1"}, OrderAmount: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.CreatePayment(context.Background(), tc.req)
			assert.Nil(t, resp)
			assert.Equal(t, errors.Invalid, errors.KindOf(err))
		})
	}

	// No writes attempted for any invalid request
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentOrderWriteFails(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	mock.ExpectExec("INSERT INTO orders").WillReturnError(assert.AnError)

	resp, err := svc.CreatePayment(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, errors.Internal, errors.KindOf(err))
	// Nothing after the failed order write was attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentGatewayFailure(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	// Only the order insert happens; no status row is ever written
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.CreatePayment(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, errors.Unavailable, errors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentGatewayTimeout(t *testing.T) {
	done := make(chan struct{})
	svc, mock, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(done) })

	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err := svc.CreatePayment(ctx, validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, errors.Unavailable, errors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatus(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	rows := sqlmock.NewRows([]string{
		"collect_id", "custom_order_id", "order_amount",
		"transaction_amount", "status", "gateway_name", "updated_at",
	}).AddRow("o-1", "ord_abc", 500.0, nil, "pending", "UPI", time.Now())

	mock.ExpectQuery("FROM order_status WHERE custom_order_id").
		WithArgs("ord_abc").
		WillReturnRows(rows)

	status, err := svc.GetStatus("ord_abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status)
	assert.Equal(t, 500.0, status.OrderAmount)
	assert.Nil(t, status.TransactionAmount)
}

func TestGetStatusNotFound(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	mock.ExpectQuery("FROM order_status WHERE custom_order_id").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"collect_id"}))

	status, err := svc.GetStatus("nope")
	assert.Nil(t, status)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	updated, err := svc.UpdateStatus("o-1", UpdateStatusRequest{Status: "SETTLED"})
	assert.Nil(t, updated)
	assert.Equal(t, errors.Invalid, errors.KindOf(err))
	// The stored record was never touched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))
	amount := 500.0

	mock.ExpectExec("UPDATE order_status SET status").
		WithArgs("success", sqlmock.AnyArg(), "o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows([]string{
		"collect_id", "custom_order_id", "order_amount",
		"transaction_amount", "status", "gateway_name", "updated_at",
	}).AddRow("o-1", "ord_abc", 500.0, amount, "success", "UPI", time.Now())
	mock.ExpectQuery("FROM order_status WHERE collect_id").
		WithArgs("o-1").
		WillReturnRows(rows)

	updated, err := svc.UpdateStatus("o-1", UpdateStatusRequest{Status: "success", TransactionAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, updated.Status)
	require.NotNil(t, updated.TransactionAmount)
	assert.Equal(t, 500.0, *updated.TransactionAmount)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t, gatewayOK(""))

	mock.ExpectExec("UPDATE order_status SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := svc.UpdateStatus("missing", UpdateStatusRequest{Status: "failed"})
	assert.Nil(t, updated)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}

package services

import (
	"testing"

	"payment-module/config"
	"payment-module/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-jwt-secret"

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAuthService(db), mock
}

func TestRegisterValidation(t *testing.T) {
	auth, mock := newTestAuthService(t)

	_, err := auth.Register("not-an-email", "longenough")
	assert.Equal(t, errors.Invalid, errors.KindOf(err))

	_, err = auth.Register("ops@school.test", "short")
	assert.Equal(t, errors.Invalid, errors.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister(t *testing.T) {
	auth, mock := newTestAuthService(t)

	mock.ExpectQuery("INSERT INTO dashboard_users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	user, err := auth.Register("ops@school.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "ops@school.test", user.Email)
}

func TestLogin(t *testing.T) {
	auth, mock := newTestAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, password_hash FROM dashboard_users").
		WithArgs("ops@school.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(1, "ops@school.test", string(hash)))

	token, err := auth.Login("ops@school.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, mock := newTestAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, password_hash FROM dashboard_users").
		WithArgs("ops@school.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(1, "ops@school.test", string(hash)))

	token, err := auth.Login("ops@school.test", "wrong")
	assert.Empty(t, token)
	assert.Equal(t, errors.Unauthorized, errors.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	auth, mock := newTestAuthService(t)

	mock.ExpectQuery("SELECT id, email, password_hash FROM dashboard_users").
		WithArgs("ghost@school.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}))

	token, err := auth.Login("ghost@school.test", "whatever")
	assert.Empty(t, token)
	assert.Equal(t, errors.Unauthorized, errors.KindOf(err))
}

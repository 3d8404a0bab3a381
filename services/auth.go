package services

import (
	"database/sql"
	"time"

	"payment-module/config"
	"payment-module/errors"
	"payment-module/models"
	"payment-module/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Dashboard auth tokens stay valid for a day.
const authTokenTTL = 24 * time.Hour

// AuthService manages dashboard operator accounts and their bearer tokens.
type AuthService struct {
	db *sql.DB
}

// NewAuthService creates an AuthService backed by db
func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a dashboard user with a bcrypt-hashed password.
func (s *AuthService) Register(email, password string) (*models.DashboardUser, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return nil, errors.NewInvalidParamsError(err.Error())
	}
	if len(password) < 8 {
		return nil, errors.NewInvalidParamsError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.E(errors.Internal, "error hashing password", err)
	}

	user := &models.DashboardUser{Email: email, CreatedAt: time.Now().UTC()}
	err = s.db.QueryRow(
		`INSERT INTO dashboard_users (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		email, string(hash), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.NewConflictError("user already exists")
		}
		return nil, errors.E(errors.Internal, "error creating user", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed bearer token.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.DashboardUser
	err := s.db.QueryRow(
		`SELECT id, email, password_hash FROM dashboard_users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}
	if err != nil {
		return "", errors.E(errors.Internal, "error fetching user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(authTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", errors.E(errors.Internal, "error signing auth token", err)
	}

	return signed, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// unique_violation
		return pqErr.Code == "23505"
	}
	return false
}

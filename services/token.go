package services

import (
	"fmt"
	"time"

	"payment-module/errors"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the validity window of a payment authorization token.
const TokenTTL = 5 * time.Minute

// TokenIssuer signs the short-lived authorization payload handed to the
// payment gateway. The token is a capability: it authorizes collecting
// exactly order_amount against collect_id until it expires.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer from the configured signing secret. An
// empty secret is a configuration error the caller should treat as fatal.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.NewError("payment signing secret not configured (set PAYMENT_API_KEY)")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: TokenTTL}, nil
}

// CollectClaims is the signed payload carried by an authorization token.
type CollectClaims struct {
	CollectID   string  `json:"collect_id"`
	OrderAmount float64 `json:"order_amount"`
	jwt.RegisteredClaims
}

// Sign produces a compact HS256 token over {collect_id, order_amount} with
// the issuer's validity window.
func (t *TokenIssuer) Sign(collectID string, orderAmount float64) (string, error) {
	claims := CollectClaims{
		CollectID:   collectID,
		OrderAmount: orderAmount,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("error signing payment token: %w", err)
	}

	return signed, nil
}

// Verify parses a token and returns its claims. Tokens with a bad signature
// or an elapsed validity window are rejected.
func (t *TokenIssuer) Verify(tokenStr string) (*CollectClaims, error) {
	claims := &CollectClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorizedError("invalid or expired payment token")
	}

	return claims, nil
}

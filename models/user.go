package models

import "time"

// DashboardUser is an operator account for the transactions dashboard.
type DashboardUser struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

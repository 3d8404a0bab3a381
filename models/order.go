package models

import "time"

// StudentInfo identifies the student a payment is collected for.
type StudentInfo struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Order is the immutable record of a payment request. Once created its
// school, student and requested amount never change.
type Order struct {
	ID          string      `json:"id"`
	SchoolID    string      `json:"school_id"`
	StudentInfo StudentInfo `json:"student_info"`
	OrderAmount float64     `json:"order_amount"`
	GatewayName string      `json:"gateway_name"`
	CreatedAt   time.Time   `json:"created_at"`
}

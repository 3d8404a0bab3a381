package db

import (
	"database/sql"
	"fmt"

	"payment-module/config"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	return nil
}

func createTables() error {
	orderTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		student_external_id TEXT NOT NULL,
		student_email TEXT,
		order_amount NUMERIC(12,2) NOT NULL,
		gateway_name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	orderStatusTable := `
	CREATE TABLE IF NOT EXISTS order_status (
		collect_id TEXT PRIMARY KEY,
		custom_order_id TEXT UNIQUE NOT NULL,
		order_amount NUMERIC(12,2) NOT NULL,
		transaction_amount NUMERIC(12,2),
		status TEXT NOT NULL DEFAULT 'pending',
		gateway_name TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_order
			FOREIGN KEY (collect_id)
			REFERENCES orders(id)
	);`

	userTable := `
	CREATE TABLE IF NOT EXISTS dashboard_users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Orders first so order_status can reference it
	if _, err := DB.Exec(orderTable); err != nil {
		return fmt.Errorf("error creating orders table: %w", err)
	}

	if _, err := DB.Exec(orderStatusTable); err != nil {
		return fmt.Errorf("error creating order_status table: %w", err)
	}

	if _, err := DB.Exec(userTable); err != nil {
		return fmt.Errorf("error creating dashboard_users table: %w", err)
	}

	// Listing endpoints sort on school and settlement time
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_school_id ON orders(school_id)`); err != nil {
		return fmt.Errorf("error creating school index: %w", err)
	}
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS idx_order_status_updated_at ON order_status(updated_at)`); err != nil {
		return fmt.Errorf("error creating updated_at index: %w", err)
	}

	return nil
}

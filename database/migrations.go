package database

import "database/sql"

// RunMigrations ensures all required tables exist.
// Note: In production, use a proper migration tool
func RunMigrations(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS trains (
			id SERIAL PRIMARY KEY,
			train_number TEXT NOT NULL,
			type TEXT NOT NULL,
			from_station_id INTEGER NOT NULL REFERENCES stations(id),
			to_station_id INTEGER NOT NULL REFERENCES stations(id),
			departure_time TIMESTAMPTZ NOT NULL,
			arrival_time TIMESTAMPTZ NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			total_seats INTEGER NOT NULL,
			wagons JSONB NOT NULL DEFAULT '[]',
			route JSONB NOT NULL DEFAULT '{"intermediateStations":[]}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trains_endpoints
			ON trains (from_station_id, to_station_id, departure_time)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			booking_number TEXT NOT NULL UNIQUE,
			user_id INTEGER NOT NULL REFERENCES users(id),
			train_id INTEGER NOT NULL REFERENCES trains(id),
			train_snapshot JSONB NOT NULL DEFAULT '{}',
			passengers JSONB NOT NULL DEFAULT '[]',
			payment_method TEXT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			total_price NUMERIC(10,2) NOT NULL CHECK (total_price >= 0),
			status TEXT NOT NULL DEFAULT 'confirmed',
			booking_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			cancellation_date TIMESTAMPTZ,
			cancellation_reason TEXT NOT NULL DEFAULT '',
			qr_code TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user
			ON bookings (user_id, status, booking_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_train ON bookings (train_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			booking_id INTEGER NOT NULL UNIQUE REFERENCES bookings(id),
			user_id INTEGER NOT NULL REFERENCES users(id),
			amount NUMERIC(10,2) NOT NULL CHECK (amount >= 0),
			currency TEXT NOT NULL DEFAULT 'RON',
			method TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			transaction_id TEXT NOT NULL UNIQUE,
			payment_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			refund_date TIMESTAMPTZ,
			refund_amount NUMERIC(10,2),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

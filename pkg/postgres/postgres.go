package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/wanderbook/backend/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		// The event log is append-only: seq carries the append order, the
		// unique index on event_id rejects replays.
		`CREATE TABLE IF NOT EXISTS events (
			seq BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(36) UNIQUE NOT NULL,
			aggregate_id VARCHAR(36) NOT NULL,
			event_type VARCHAR(100) NOT NULL,
			timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			data JSONB NOT NULL,
			version INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS trips (
			id VARCHAR(36) PRIMARY KEY,
			user_id BIGINT NOT NULL,
			name VARCHAR(200),
			destination VARCHAR(100),
			start_date VARCHAR(10),
			end_date VARCHAR(10),
			total_price DOUBLE PRECISION DEFAULT 0,
			currency VARCHAR(3) DEFAULT 'EUR',
			status VARCHAR(20) DEFAULT 'CONFIRMED',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) REFERENCES trips(id),
			user_id BIGINT,
			booking_type VARCHAR(20) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			currency VARCHAR(3) DEFAULT 'EUR',
			status VARCHAR(20) NOT NULL DEFAULT 'CONFIRMED',
			provider_name VARCHAR(50),
			provider_id VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			event_id VARCHAR(36) NOT NULL,
			offer_id VARCHAR(100),
			departure VARCHAR(100),
			destination VARCHAR(100),
			depart_date VARCHAR(10),
			return_date VARCHAR(10),
			airline VARCHAR(100),
			adults INTEGER DEFAULT 1,
			hotel_name VARCHAR(200),
			hotel_city VARCHAR(100),
			check_in VARCHAR(10),
			check_out VARCHAR(10),
			guests INTEGER DEFAULT 1,
			activity_name VARCHAR(200),
			activity_date VARCHAR(10),
			activity_duration VARCHAR(50)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_events_aggregate_id ON events(aggregate_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_trip_id ON bookings(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

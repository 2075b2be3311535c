package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/wanderbook/backend/internal/entity"
)

type eventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) EventStore {
	return &eventStore{db: db}
}

const eventColumns = `event_id, aggregate_id, event_type, timestamp, data, version`

// Append persists one event. The unique index on event_id makes appends
// idempotency-safe: a replayed event id fails with entity.ErrEventExists
// instead of duplicating history.
func (s *eventStore) Append(ctx context.Context, event *entity.Event) error {
	data, err := event.EncodePayload()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (event_id, aggregate_id, event_type, timestamp, data, version)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		event.EventID,
		event.AggregateID,
		event.Type,
		event.Timestamp,
		data,
		event.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", entity.ErrEventExists, event.EventID)
		}
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// AppendBatch persists all events in a single transaction. Either every event
// in the batch becomes durable or none does, so a package booking can never
// leave a partial set of events behind.
func (s *eventStore) AppendBatch(ctx context.Context, events []*entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (event_id, aggregate_id, event_type, timestamp, data, version)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, event := range events {
		data, err := event.EncodePayload()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query,
			event.EventID,
			event.AggregateID,
			event.Type,
			event.Timestamp,
			data,
			event.Version,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", entity.ErrEventExists, event.EventID)
			}
			return fmt.Errorf("failed to append event %s: %w", event.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event batch: %w", err)
	}

	return nil
}

// GetByAggregate returns all events for one aggregate in append order. The
// seq column, not the timestamp, carries the order: timestamps only need to be
// non-decreasing within a process.
func (s *eventStore) GetByAggregate(ctx context.Context, aggregateID string) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE aggregate_id = $1
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by aggregate: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *eventStore) GetAll(ctx context.Context, eventType entity.EventType) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
	`
	var args []interface{}

	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}
	query += ` ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *eventStore) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func scanEvents(rows *sql.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var (
			event entity.Event
			data  []byte
		)
		err := rows.Scan(
			&event.EventID,
			&event.AggregateID,
			&event.Type,
			&event.Timestamp,
			&data,
			&event.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		payload, err := entity.DecodePayload(event.Type, data)
		if err != nil {
			return nil, err
		}
		event.Payload = payload

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// ErrConcurrencyConflict is returned when a stream moved past the expected version.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// PostgresEventStore implements EventStore using PostgreSQL
type PostgresEventStore struct {
	db *sqlx.DB
}

func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

type postgresEvent struct {
	ID            string    `db:"id"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
	StreamVersion int       `db:"stream_version"`
}

const insertEventQuery = `
	INSERT INTO event_stream (
		id, aggregate_id, event_type, version, data, metadata,
		timestamp, correlation_id, stream_version
	) VALUES (
		:id, :aggregate_id, :event_type, :version, :data, :metadata,
		:timestamp, :correlation_id, :stream_version
	)`

const selectEventColumns = `
	SELECT id, aggregate_id, event_type, version, data, metadata,
		   timestamp, correlation_id, stream_version
	FROM event_stream`

// SaveEvents appends events to the aggregate's stream if its current version
// equals expectedVersion.
func (es *PostgresEventStore) SaveEvents(ctx context.Context, aggregateID string, evts []*events.Event, expectedVersion int) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(stream_version), 0) FROM event_stream WHERE aggregate_id = $1",
		aggregateID)
	if err != nil {
		return errors.Wrap(err, "failed to get current version")
	}

	if currentVersion != expectedVersion {
		return errors.Wrapf(ErrConcurrencyConflict, "stream %s: expected version %d, got %d", aggregateID, expectedVersion, currentVersion)
	}

	for i, event := range evts {
		pgEvent, err := toPostgresEvent(aggregateID, event, currentVersion+i+1)
		if err != nil {
			return err
		}

		if _, err := tx.NamedExecContext(ctx, insertEventQuery, pgEvent); err != nil {
			return errors.Wrap(err, "failed to insert event")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit events")
}

// GetEvents returns the aggregate's stream in order.
func (es *PostgresEventStore) GetEvents(ctx context.Context, aggregateID string) ([]*events.Event, error) {
	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents,
		selectEventColumns+" WHERE aggregate_id = $1 ORDER BY stream_version ASC",
		aggregateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events")
	}

	return toDomainEvents(pgEvents)
}

// GetEventsByType returns events of one type, newest first.
func (es *PostgresEventStore) GetEventsByType(ctx context.Context, eventType string, offset, limit int) ([]*events.Event, error) {
	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents,
		selectEventColumns+" WHERE event_type = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3",
		eventType, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events by type")
	}

	return toDomainEvents(pgEvents)
}

func toPostgresEvent(aggregateID string, event *events.Event, streamVersion int) (*postgresEvent, error) {
	data, err := event.MarshalPayload()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	return &postgresEvent{
		ID:            event.ID.String(),
		AggregateID:   aggregateID,
		EventType:     event.EventType,
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: event.CorrelationID.String(),
		StreamVersion: streamVersion,
	}, nil
}

func toDomainEvents(pgEvents []postgresEvent) ([]*events.Event, error) {
	result := make([]*events.Event, len(pgEvents))
	for i := range pgEvents {
		event, err := toDomainEvent(&pgEvents[i])
		if err != nil {
			return nil, err
		}
		result[i] = event
	}
	return result, nil
}

func toDomainEvent(pgEvent *postgresEvent) (*events.Event, error) {
	var data interface{}
	if len(pgEvent.Data) > 0 {
		if err := json.Unmarshal(pgEvent.Data, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal data of event %s", pgEvent.ID)
		}
	}

	metadata := make(events.Metadata)
	if len(pgEvent.Metadata) > 0 {
		if err := json.Unmarshal(pgEvent.Metadata, &metadata); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal metadata of event %s", pgEvent.ID)
		}
	}

	return &events.Event{
		ID:            models.ID(pgEvent.ID),
		AggregateID:   pgEvent.AggregateID,
		Topic:         events.Topic(pgEvent.EventType),
		EventType:     pgEvent.EventType,
		Version:       pgEvent.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     pgEvent.Timestamp,
		CorrelationID: models.ID(pgEvent.CorrelationID),
	}, nil
}

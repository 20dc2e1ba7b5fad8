package saga

import (
	"context"
	"sync"
	"time"

	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/models"
)

// EntryType is a saga run transition.
type EntryType string

const (
	EntryStarted            EntryType = events.SagaStartedEvent
	EntryStepCompleted      EntryType = events.SagaStepCompletedEvent
	EntryStepFailed         EntryType = events.SagaStepFailedEvent
	EntryCompleted          EntryType = events.SagaCompletedEvent
	EntryCompensated        EntryType = events.SagaCompensatedEvent
	EntryCompensationFailed EntryType = events.SagaCompensationFailedEvent
)

// Entry is one journal record.
type Entry struct {
	RunID models.ID `json:"run_id"`
	Saga  string    `json:"saga"`
	Type  EntryType `json:"type"`
	Step  string    `json:"step,omitempty"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

// Journal records saga transitions for later inspection. Failures to record
// are logged by the orchestrator and never change a run's outcome.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, Entry) error { return nil }

// EventStoreJournal appends entries to an event store, one stream per run.
type EventStoreJournal struct {
	store events.EventStore

	mu       sync.Mutex
	versions map[models.ID]int
}

func NewEventStoreJournal(store events.EventStore) *EventStoreJournal {
	return &EventStoreJournal{
		store:    store,
		versions: make(map[models.ID]int),
	}
}

func (j *EventStoreJournal) Record(ctx context.Context, entry Entry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	j.mu.Lock()
	version := j.versions[entry.RunID]
	j.mu.Unlock()

	event := events.NewEvent(entry.RunID.String(), string(entry.Type), entry).
		WithCorrelationID(entry.RunID).
		WithMetadata("saga", entry.Saga)

	err := j.store.SaveEvents(ctx, entry.RunID.String(), []*events.Event{event}, version)

	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case entry.Type.terminal():
		delete(j.versions, entry.RunID)
	case err == nil:
		j.versions[entry.RunID] = version + 1
	}

	return err
}

func (t EntryType) terminal() bool {
	switch t {
	case EntryCompleted, EntryCompensated, EntryCompensationFailed:
		return true
	}
	return false
}

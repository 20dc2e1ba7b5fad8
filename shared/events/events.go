package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/collabhub/platform/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")
)

// Topic represents an event topic with pattern matching support
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

// Matches reports whether the topic matches pattern. A pattern may use "*"
// for a single segment, a leading or trailing "#" for suffix or prefix
// matching, or "#" alone to match everything.
func (t Topic) Matches(pattern Topic) bool {
	topicStr := t.String()
	patternStr := pattern.String()

	if patternStr == "#" {
		return true
	}

	if strings.HasPrefix(patternStr, "#") && strings.HasSuffix(patternStr, "#") {
		return strings.Contains(topicStr, strings.Trim(patternStr, "#"))
	}

	if strings.HasPrefix(patternStr, "#") {
		return strings.HasSuffix(topicStr, strings.TrimPrefix(patternStr, "#"))
	}

	if strings.HasSuffix(patternStr, "#") {
		return strings.HasPrefix(topicStr, strings.TrimSuffix(patternStr, "#"))
	}

	return matchSegments(strings.Split(patternStr, "."), strings.Split(topicStr, "."))
}

func (t Topic) String() string {
	return string(t)
}

func matchSegments(patternParts, topicParts []string) bool {
	if len(patternParts) != len(topicParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != topicParts[i] {
			return false
		}
	}

	return true
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metadata) Set(key string, value string) {
	m[key] = value
}

func (m Metadata) Clone() Metadata {
	clone := Metadata{}
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event represents a domain or integration event
type Event struct {
	ID            models.ID   `json:"id"`
	AggregateID   string      `json:"aggregate_id"`
	Topic         Topic       `json:"topic"`
	EventType     string      `json:"event_type"`
	Version       string      `json:"version"`
	Data          interface{} `json:"data"`
	Metadata      Metadata    `json:"metadata"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID models.ID   `json:"correlation_id,omitempty"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber subscribes to events
type Subscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler handles events
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// EventStore stores and retrieves events
type EventStore interface {
	SaveEvents(ctx context.Context, aggregateID string, events []*Event, expectedVersion int) error
	GetEvents(ctx context.Context, aggregateID string) ([]*Event, error)
}

// NewEvent creates a new event; the event type doubles as its topic.
func NewEvent(aggregateID string, eventType string, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       Topic(eventType),
		EventType:   eventType,
		Version:     "1.0",
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now().UTC(),
	}
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	switch b := e.Data.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload decodes the event payload into v. Payloads that arrived
// over the wire are generic maps, so they are round-tripped through JSON.
func (e *Event) UnmarshalPayload(v interface{}) error {
	vValue := reflect.ValueOf(v)
	if vValue.Kind() != reflect.Ptr || vValue.IsNil() {
		return ErrInvalidReceiver
	}

	if e.Data != nil {
		payloadValue := reflect.ValueOf(e.Data)
		if vValue.Elem().Type() == payloadValue.Type() {
			vValue.Elem().Set(payloadValue)
			return nil
		}
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, v)
}

// Event type constants
const (
	// Project service integration events
	ProjectCreatedEvent       = "project.created"
	ProjectDeletedEvent       = "project.deleted"
	ApplicationSubmittedEvent = "application.submitted"
	ApplicationAcceptedEvent  = "application.accepted"
	ApplicationRejectedEvent  = "application.rejected"
	ApplicationWithdrawnEvent = "application.withdrawn"

	// Team service events consumed by the project service
	TeamMemberRemovedEvent = "team.member.removed"

	// Saga journal events
	SagaStartedEvent            = "saga.started"
	SagaStepCompletedEvent      = "saga.step.completed"
	SagaStepFailedEvent         = "saga.step.failed"
	SagaCompletedEvent          = "saga.completed"
	SagaCompensatedEvent        = "saga.compensated"
	SagaCompensationFailedEvent = "saga.compensation.failed"
)

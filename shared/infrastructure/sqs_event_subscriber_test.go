package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/collabhub/platform/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	mu          sync.Mutex
	messages    []types.Message
	deleted     []string
	visibility  map[string]int32
	receiveErr  error
	receivedAll chan struct{}
}

func newFakeSQS(messages ...types.Message) *fakeSQS {
	return &fakeSQS{
		messages:    messages,
		visibility:  make(map[string]int32),
		receivedAll: make(chan struct{}),
	}
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.receiveErr != nil {
		return nil, f.receiveErr
	}

	out := &sqs.ReceiveMessageOutput{Messages: f.messages}
	f.messages = nil
	return out, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) ChangeMessageVisibility(_ context.Context, params *sqs.ChangeMessageVisibilityInput, _ ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility[aws.ToString(params.ReceiptHandle)] = params.VisibilityTimeout
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

func (f *fakeSQS) settled(n int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)+len(f.visibility) >= n
}

func sqsBody(t *testing.T, event *events.Event) *string {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return aws.String(string(body))
}

func TestDecodeMessage(t *testing.T) {
	event := events.NewEvent("7", events.TeamMemberRemovedEvent, map[string]interface{}{"project_id": 7, "user_id": "u-1"})
	raw := aws.ToString(sqsBody(t, event))

	envelope, err := json.Marshal(snsEnvelope{Type: "Notification", Message: raw})
	require.NoError(t, err)

	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{name: "raw delivery", body: raw},
		{name: "sns envelope", body: string(envelope)},
		{name: "malformed", body: "{not json", expectedError: "failed to decode event"},
		{name: "missing topic", body: `{"id":"x","data":{}}`, expectedError: "event has no topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := decodeMessage(types.Message{
				MessageId:     aws.String("m-1"),
				ReceiptHandle: aws.String("r-1"),
				Body:          aws.String(tt.body),
				MessageAttributes: map[string]types.MessageAttributeValue{
					"source": {DataType: aws.String("String"), StringValue: aws.String("team-service")},
				},
			})

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, event.ID, decoded.ID)
			assert.Equal(t, events.Topic(events.TeamMemberRemovedEvent), decoded.Topic)
			assert.Equal(t, "m-1", decoded.Metadata[SQSMessageIDKey])
			assert.Equal(t, "r-1", decoded.Metadata[SQSReceiptHandleKey])
			assert.Equal(t, "team-service", decoded.Metadata["source"])
		})
	}
}

func TestSQSEventSubscriber_AcksAndRetries(t *testing.T) {
	ok := events.NewEvent("1", events.TeamMemberRemovedEvent, map[string]string{"user_id": "ok"})
	bad := events.NewEvent("2", events.TeamMemberRemovedEvent, map[string]string{"user_id": "bad"})

	client := newFakeSQS(
		types.Message{MessageId: aws.String("m-ok"), ReceiptHandle: aws.String("r-ok"), Body: sqsBody(t, ok)},
		types.Message{
			MessageId:     aws.String("m-bad"),
			ReceiptHandle: aws.String("r-bad"),
			Body:          sqsBody(t, bad),
			Attributes:    map[string]string{"ApproximateReceiveCount": "6"},
		},
		types.Message{MessageId: aws.String("m-junk"), ReceiptHandle: aws.String("r-junk"), Body: aws.String("junk")},
	)

	handler := NewEventHandlerFunc("test", func(ctx context.Context, event *events.Event) error {
		if event.ID == bad.ID {
			return errors.New("handler failed")
		}
		return nil
	})

	subscriber := NewSQSEventSubscriber(client, "http://localhost:4566/000000000000/project-events", handler,
		WithWorkers(2),
		WithWaitTimeSeconds(0),
	)
	require.NoError(t, subscriber.Start(context.Background()))

	assert.Eventually(t, func() bool { return client.settled(3) }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, subscriber.Stop(ctx))

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.ElementsMatch(t, []string{"r-ok", "r-junk"}, client.deleted)
	// 30s base + (6/3)*30s offset
	assert.Equal(t, int32(90), client.visibility["r-bad"])
}

func TestSQSEventSubscriber_RetryVisibilityIsCapped(t *testing.T) {
	subscriber := NewSQSEventSubscriber(newFakeSQS(), "queue", NewEventHandlerFunc("noop", nil))

	timeout := subscriber.retryVisibilityTimeout(types.Message{
		Attributes: map[string]string{"ApproximateReceiveCount": "1000"},
	})

	assert.Equal(t, int32(900), timeout)
}

func TestTopicFilter(t *testing.T) {
	var handled []string
	filter := &topicFilter{
		pattern: events.Topic("team.member.*"),
		handler: NewEventHandlerFunc("collect", func(ctx context.Context, event *events.Event) error {
			handled = append(handled, event.EventType)
			return nil
		}),
	}

	for _, eventType := range []string{events.TeamMemberRemovedEvent, events.ProjectCreatedEvent} {
		require.NoError(t, filter.Handle(context.Background(), events.NewEvent("1", eventType, nil)))
	}

	assert.Equal(t, []string{events.TeamMemberRemovedEvent}, handled)
}

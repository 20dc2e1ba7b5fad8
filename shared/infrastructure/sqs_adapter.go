package infrastructure

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ events.Subscriber = (*SQSSubscriberAdapter)(nil)

// SQSSubscriberAdapter exposes an SQSEventSubscriber as an events.Subscriber.
type SQSSubscriberAdapter struct {
	mu            sync.Mutex
	awsConfig     AWSConfig
	queueURL      string
	opts          []SQSSubscriberOption
	sqsSubscriber *SQSEventSubscriber
}

func NewSQSSubscriberAdapter(awsConfig AWSConfig, queueURL string, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("sqs queue url is required")
	}

	return &SQSSubscriberAdapter{
		awsConfig: awsConfig,
		queueURL:  queueURL,
		opts:      opts,
	}, nil
}

// topicFilter passes through only events whose topic matches pattern.
type topicFilter struct {
	pattern events.Topic
	handler events.EventHandler
}

func (f *topicFilter) HandlerID() string {
	return "topic-filter:" + f.pattern.String()
}

func (f *topicFilter) Handle(ctx context.Context, event *events.Event) error {
	if f.pattern != "" && !event.Topic.Matches(f.pattern) {
		logger.Debug("ignoring event", zap.String("topic", event.Topic.String()), zap.String("pattern", f.pattern.String()))
		return nil
	}
	return f.handler.Handle(ctx, event)
}

// Subscribe starts consuming the queue, dispatching events whose topic
// matches pattern to handler. An empty pattern matches every event. Only one
// subscription per adapter is supported.
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, pattern string, handler events.EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sqsSubscriber != nil {
		return errors.New("subscriber is already running")
	}

	cfg, err := LoadAWSConfig(ctx, s.awsConfig)
	if err != nil {
		return err
	}

	filter := &topicFilter{pattern: events.Topic(pattern), handler: handler}
	subscriber := NewSQSEventSubscriber(sqs.NewFromConfig(cfg), s.queueURL, filter, s.opts...)

	if err := subscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.sqsSubscriber = subscriber
	return nil
}

// Close stops the subscriber and waits for in-flight messages.
func (s *SQSSubscriberAdapter) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sqsSubscriber == nil {
		return nil
	}

	if err := s.sqsSubscriber.Stop(ctx); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.sqsSubscriber = nil
	return nil
}

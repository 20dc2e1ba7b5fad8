package infrastructure

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	SQSMessageIDKey     = "sqs_message_id"
	SQSReceiptHandleKey = "sqs_receipt_handle"
)

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

type sqsMessage struct {
	Message types.Message
	Event   *events.Event
	Err     error
}

// EventHandler is an events.EventHandler with a stable identifier for logs.
type EventHandler interface {
	HandlerID() string
	Handle(ctx context.Context, event *events.Event) error
}

// EventHandlerFunc creates a handler from a function
type EventHandlerFunc struct {
	id string
	fn func(ctx context.Context, event *events.Event) error
}

func NewEventHandlerFunc(id string, fn func(ctx context.Context, event *events.Event) error) *EventHandlerFunc {
	return &EventHandlerFunc{
		id: id,
		fn: fn,
	}
}

func (h *EventHandlerFunc) HandlerID() string {
	return h.id
}

func (h *EventHandlerFunc) Handle(ctx context.Context, event *events.Event) error {
	return h.fn(ctx, event)
}

// SQSEventSubscriber consumes events from an SQS queue with a pool of
// readers, workers and cleaners. Handled messages are deleted; failed ones
// get a growing visibility timeout so SQS redelivers them later.
type SQSEventSubscriber struct {
	mux              sync.Mutex
	inboundMessages  chan *sqsMessage
	outboundMessages chan *sqsMessage
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	running          atomic.Bool
	options          *sqsSubscriberOptions

	client   sqsAPI
	queueURL string
	handler  EventHandler
}

type sqsSubscriberOptions struct {
	workers                        int32
	readers                        int32
	cleaners                       int32
	maxNumberOfMessages            int32
	waitTimeSeconds                int32
	visibilityTimeout              int32
	sleepTimeAfterEmptyReceive     time.Duration
	sleepTimeAfterError            time.Duration
	ack                            bool
	extendVisibilityTimeoutOnError bool
	receiveCountRange              int32
	visibilityTimeoutOffset        int32
	maxVisibilityTimeout           int32
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithReaders(readers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.readers = readers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

func WithWaitTimeSeconds(seconds int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.waitTimeSeconds = seconds
	}
}

// NewSQSEventSubscriber creates a new SQS event subscriber
func NewSQSEventSubscriber(
	client sqsAPI,
	queueURL string,
	handler EventHandler,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		workers:                        10,
		readers:                        1,
		cleaners:                       2,
		maxNumberOfMessages:            5,
		waitTimeSeconds:                15,
		visibilityTimeout:              30,
		sleepTimeAfterEmptyReceive:     time.Second,
		sleepTimeAfterError:            20 * time.Second,
		ack:                            true,
		extendVisibilityTimeoutOnError: true,
		receiveCountRange:              3,
		visibilityTimeoutOffset:        30,
		maxVisibilityTimeout:           900,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:   client,
		queueURL: queueURL,
		handler:  handler,
		options:  options,
	}
}

// Start launches the goroutine pools. It is a no-op when already running.
func (s *SQSEventSubscriber) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.running.Load() {
		return nil
	}
	if s.handler == nil {
		return errors.New("no handler configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.inboundMessages = make(chan *sqsMessage, s.options.maxNumberOfMessages*2)
	s.outboundMessages = make(chan *sqsMessage, s.options.maxNumberOfMessages*2)
	s.cancel = cancel

	s.spawn(int(s.options.workers), func() { s.startWorker(ctx) })
	s.spawn(int(s.options.readers), func() { s.startReader(ctx) })
	s.spawn(int(s.options.cleaners), func() { s.startCleaner(ctx) })

	s.running.Store(true)
	logger.Info("sqs subscriber started",
		zap.String("queue_url", s.queueURL),
		zap.String("handler", s.handler.HandlerID()),
	)

	return nil
}

func (s *SQSEventSubscriber) spawn(n int, fn func()) {
	for i := 0; i < n; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			fn()
		}()
	}
}

// Stop cancels the pools and waits for in-flight messages, bounded by ctx.
func (s *SQSEventSubscriber) Stop(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.running.Load() {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "timed out waiting for sqs workers")
	}

	s.cancel = nil
	s.running.Store(false)
	logger.Info("sqs subscriber stopped", zap.String("queue_url", s.queueURL))

	return nil
}

func (s *SQSEventSubscriber) startWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.inboundMessages:
			s.handle(ctx, message)
		}
	}
}

func (s *SQSEventSubscriber) startReader(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.read(ctx); err != nil && ctx.Err() == nil {
			logger.Error("sqs receive failed", zap.String("queue_url", s.queueURL), zap.Error(err))
			sleep(ctx, s.options.sleepTimeAfterError)
		}
	}
}

func (s *SQSEventSubscriber) startCleaner(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.outboundMessages:
			if err := s.clean(ctx, message); err != nil {
				logger.Warn("sqs cleanup failed",
					zap.String("message_id", aws.ToString(message.Message.MessageId)),
					zap.Error(err),
				)
			}
		}
	}
}

func (s *SQSEventSubscriber) read(ctx context.Context) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxNumberOfMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
		},
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to receive message from SQS")
	}

	if len(output.Messages) == 0 {
		sleep(ctx, s.options.sleepTimeAfterEmptyReceive)
		return nil
	}

	for _, message := range output.Messages {
		event, err := decodeMessage(message)
		if err != nil {
			// A body that cannot be decoded will never succeed, so it is
			// acked rather than redelivered.
			logger.Error("dropping malformed sqs message",
				zap.String("message_id", aws.ToString(message.MessageId)),
				zap.Error(err),
			)
			telemetry.RecordCounter(ctx, "events_consumed_total", "Events received from SQS", 1,
				attribute.String("topic", "unknown"),
				attribute.String("status", "malformed"),
			)
			event = nil
		}

		next := s.inboundMessages
		msg := &sqsMessage{Message: message, Event: event}
		if event == nil {
			next = s.outboundMessages
		}

		select {
		case next <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// snsEnvelope is the body SQS receives from an SNS subscription without raw
// message delivery.
type snsEnvelope struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

func decodeMessage(message types.Message) (*events.Event, error) {
	body := []byte(aws.ToString(message.Body))

	var envelope snsEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Type == "Notification" {
		body = []byte(envelope.Message)
	}

	var event events.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode event")
	}
	if event.Topic == "" {
		event.Topic = events.Topic(event.EventType)
	}
	if event.Topic == "" {
		return nil, errors.Wrap(events.ErrInvalidTopic, "event has no topic")
	}

	if event.Metadata == nil {
		event.Metadata = make(events.Metadata)
	}

	event.Metadata.Set(SQSMessageIDKey, aws.ToString(message.MessageId))
	if message.ReceiptHandle != nil {
		event.Metadata.Set(SQSReceiptHandleKey, *message.ReceiptHandle)
	}

	for k, v := range message.MessageAttributes {
		if v.StringValue != nil {
			event.Metadata.Set(k, *v.StringValue)
		}
	}

	return &event, nil
}

func (s *SQSEventSubscriber) handle(ctx context.Context, message *sqsMessage) {
	message.Err = s.handler.Handle(ctx, message.Event)

	status := "handled"
	if message.Err != nil {
		status = "failed"
		logger.Warn("event handler failed",
			zap.String("handler", s.handler.HandlerID()),
			zap.String("topic", message.Event.Topic.String()),
			zap.String("event_id", message.Event.ID.String()),
			zap.Error(message.Err),
		)
	}

	telemetry.RecordCounter(ctx, "events_consumed_total", "Events received from SQS", 1,
		attribute.String("topic", message.Event.Topic.String()),
		attribute.String("status", status),
	)

	select {
	case s.outboundMessages <- message:
	case <-ctx.Done():
	}
}

func (s *SQSEventSubscriber) clean(ctx context.Context, message *sqsMessage) error {
	if message.Err != nil {
		if !s.options.extendVisibilityTimeoutOnError {
			return nil
		}

		_, err := s.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
			QueueUrl:          aws.String(s.queueURL),
			ReceiptHandle:     message.Message.ReceiptHandle,
			VisibilityTimeout: s.retryVisibilityTimeout(message.Message),
		})
		return errors.Wrap(err, "failed to extend visibility timeout")
	}

	if !s.options.ack {
		return nil
	}

	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: message.Message.ReceiptHandle,
	})
	return errors.Wrap(err, "failed to delete message from SQS")
}

// retryVisibilityTimeout grows by visibilityTimeoutOffset every
// receiveCountRange deliveries, capped at maxVisibilityTimeout.
func (s *SQSEventSubscriber) retryVisibilityTimeout(message types.Message) int32 {
	receiveCount, err := strconv.Atoi(message.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)])
	if err != nil {
		receiveCount = 1
	}

	visibilityTimeout := s.options.visibilityTimeout
	visibilityTimeout += (int32(receiveCount) / s.options.receiveCountRange) * s.options.visibilityTimeoutOffset

	if visibilityTimeout > s.options.maxVisibilityTimeout {
		visibilityTimeout = s.options.maxVisibilityTimeout
	}

	return visibilityTimeout
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const maxBatchSize = 10

type snsAPI interface {
	PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error)
}

// SNSEventPublisher publishes events to an SNS topic in batches of ten. The
// message body is the JSON-encoded event; its topic is also sent as a
// message attribute so subscriptions can filter on it.
type SNSEventPublisher struct {
	client   snsAPI
	topicArn string
}

func NewSNSEventPublisher(client snsAPI, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
	}
}

// Publish publishes events to SNS
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	gr, ctx := errgroup.WithContext(ctx)

	for _, eventBatch := range splitToChunks(evts, maxBatchSize) {
		eventBatch := eventBatch
		gr.Go(func() error {
			return p.batchPublish(ctx, eventBatch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, batch []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(batch))

	for i, event := range batch {
		body, err := json.Marshal(event)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal event %s", event.ID)
		}

		attrs := map[string]types.MessageAttributeValue{
			"topic": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Topic.String()),
			},
		}

		for k, v := range event.Metadata {
			if k == SQSMessageIDKey || k == SQSReceiptHandleKey || v == "" {
				continue
			}

			attrs[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}

		requests[i] = types.PublishBatchRequestEntry{
			Id:                aws.String(event.ID.String()),
			Message:           aws.String(string(body)),
			MessageAttributes: attrs,
		}
	}

	res, err := p.client.PublishBatch(ctx, &sns.PublishBatchInput{
		TopicArn:                   aws.String(p.topicArn),
		PublishBatchRequestEntries: requests,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	failed := make(map[string]string, len(res.Failed))
	for _, entry := range res.Failed {
		failed[aws.ToString(entry.Id)] = aws.ToString(entry.Message)
	}

	for _, event := range batch {
		status := "published"
		if reason, ok := failed[event.ID.String()]; ok {
			status = "failed"
			logger.Warn("sns rejected event",
				zap.String("event_id", event.ID.String()),
				zap.String("topic", event.Topic.String()),
				zap.String("reason", reason),
			)
		}

		telemetry.RecordCounter(ctx, "events_published_total", "Events sent to SNS", 1,
			attribute.String("topic", event.Topic.String()),
			attribute.String("status", status),
		)
	}

	if len(failed) > 0 {
		return errors.Errorf("%d of %d events rejected by SNS", len(failed), len(batch))
	}

	return nil
}

func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}

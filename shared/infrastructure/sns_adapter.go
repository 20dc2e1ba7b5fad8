package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/collabhub/platform/shared/events"
	"github.com/pkg/errors"
)

// SNSPublisherAdapter owns the SNS client behind an SNSEventPublisher.
type SNSPublisherAdapter struct {
	snsPublisher *SNSEventPublisher
}

// NewSNSPublisherAdapter creates a publisher for topicArn using awsCfg.
func NewSNSPublisherAdapter(ctx context.Context, awsCfg AWSConfig, topicArn string) (*SNSPublisherAdapter, error) {
	if topicArn == "" {
		return nil, errors.New("sns topic arn is required")
	}

	cfg, err := LoadAWSConfig(ctx, awsCfg)
	if err != nil {
		return nil, err
	}

	return &SNSPublisherAdapter{
		snsPublisher: NewSNSEventPublisher(sns.NewFromConfig(cfg), topicArn),
	}, nil
}

// Publish implements events.Publisher interface
func (p *SNSPublisherAdapter) Publish(ctx context.Context, evts ...*events.Event) error {
	return p.snsPublisher.Publish(ctx, evts...)
}

// Close is a no-op; the SNS client holds no resources.
func (p *SNSPublisherAdapter) Close() error {
	return nil
}

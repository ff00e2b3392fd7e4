package eventbridge

import (
	"context"
	"encoding/json"

	"devlink-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "devlink.backend"

// Publisher sends lifecycle events to an EventBridge bus. Publishing is
// best effort: failures are logged and never fail the originating request.
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single event
func (p *Publisher) Publish(ctx context.Context, event ports.Event) {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		p.logger.Error("Failed to marshal event detail",
			zap.String("detailType", event.DetailType),
			zap.Error(err),
		)
		return
	}

	_, err = p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.DetailType),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("detailType", event.DetailType),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("Event published", zap.String("detailType", event.DetailType))
}

// NoopPublisher discards events. Used when no event bus is configured.
type NoopPublisher struct{}

// Publish discards the event
func (NoopPublisher) Publish(ctx context.Context, event ports.Event) {}

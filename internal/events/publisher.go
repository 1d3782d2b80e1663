package events

import (
	"context"
	"os"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/sirupsen/logrus"
)

// Quote event types
const (
	QuoteComputed  = "quote.computed"
	QuoteFailed    = "quote.failed"
	RulesRefreshed = "quote.rules_refreshed"
)

// QuoteEvent represents a shipping quote event
type QuoteEvent struct {
	events.BaseEvent
	CountryCode    string `json:"countryCode,omitempty"`
	ZoneCode       string `json:"zoneCode,omitempty"`
	MethodCode     string `json:"methodCode,omitempty"`
	ShippingPrice  int64  `json:"shippingPrice,omitempty"`
	OptionsPrice   int64  `json:"optionsPrice,omitempty"`
	IsFreeShipping bool   `json:"isFreeShipping,omitempty"`
	IsSplit        bool   `json:"isSplit,omitempty"`
	ErrorCode      string `json:"errorCode,omitempty"`
	ActorID        string `json:"actorId,omitempty"`
}

func (e *QuoteEvent) GetSubject() string {
	return e.EventType
}

func (e *QuoteEvent) GetStream() string {
	return "QUOTE_EVENTS"
}

// Publisher wraps the shared events publisher for quote-specific events
type Publisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewPublisher creates a new quote events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://nats.nats.svc.cluster.local:4222"
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "shipping-quote-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := publisher.EnsureStream(ctx, "QUOTE_EVENTS", []string{"quote.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure QUOTE_EVENTS stream")
	}

	return &Publisher{
		publisher: publisher,
		logger:    logger.WithField("component", "events.publisher"),
	}, nil
}

// PublishQuoteComputed publishes a successfully computed quote
func (p *Publisher) PublishQuoteComputed(ctx context.Context, tenantID, countryCode, zoneCode, methodCode string, shippingPrice, optionsPrice int64, isFree, isSplit bool) error {
	event := &QuoteEvent{
		BaseEvent: events.BaseEvent{
			EventType: QuoteComputed,
			TenantID:  tenantID,
			Timestamp: time.Now().UTC(),
		},
		CountryCode:    countryCode,
		ZoneCode:       zoneCode,
		MethodCode:     methodCode,
		ShippingPrice:  shippingPrice,
		OptionsPrice:   optionsPrice,
		IsFreeShipping: isFree,
		IsSplit:        isSplit,
	}

	return p.publisher.Publish(ctx, event)
}

// PublishQuoteFailed publishes a quote that ended in a domain error
func (p *Publisher) PublishQuoteFailed(ctx context.Context, tenantID, countryCode, methodCode, errorCode string) error {
	event := &QuoteEvent{
		BaseEvent: events.BaseEvent{
			EventType: QuoteFailed,
			TenantID:  tenantID,
			Timestamp: time.Now().UTC(),
		},
		CountryCode: countryCode,
		MethodCode:  methodCode,
		ErrorCode:   errorCode,
	}

	return p.publisher.Publish(ctx, event)
}

// PublishRulesRefreshed publishes a reference-data cache invalidation
func (p *Publisher) PublishRulesRefreshed(ctx context.Context, tenantID, actorID string) error {
	event := &QuoteEvent{
		BaseEvent: events.BaseEvent{
			EventType: RulesRefreshed,
			TenantID:  tenantID,
			Timestamp: time.Now().UTC(),
		},
		ActorID: actorID,
	}

	return p.publisher.Publish(ctx, event)
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.publisher.IsConnected()
}

// Close closes the publisher connection
func (p *Publisher) Close() {
	p.publisher.Close()
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shipping-quote-service/internal/engine"
	"shipping-quote-service/internal/events"
	"shipping-quote-service/internal/models"
	"shipping-quote-service/internal/repository"
)

// QuoteService handles shipping quote business logic
type QuoteService interface {
	GetQuote(ctx context.Context, request models.QuoteRequest, tenantID string) (*models.QuoteResult, error)
	RefreshRules(ctx context.Context, tenantID, actorID string) error
}

type quoteService struct {
	rulesRepo  *repository.RulesRepository
	calculator *engine.Calculator
	publisher  *events.Publisher // optional, quotes work without events
	logger     *logrus.Entry
}

// NewQuoteService creates a new quote service
func NewQuoteService(rulesRepo *repository.RulesRepository, publisher *events.Publisher, logger *logrus.Logger) QuoteService {
	return &quoteService{
		rulesRepo:  rulesRepo,
		calculator: engine.NewCalculator(),
		publisher:  publisher,
		logger:     logger.WithField("component", "quote-service"),
	}
}

// GetQuote loads the current rule set snapshot and computes a quote. Domain
// failures (NO_ZONE, NO_METHOD, NO_RATE_RULE) come back on the result, not
// as an error; an error here means the snapshot could not be loaded.
func (s *quoteService) GetQuote(ctx context.Context, request models.QuoteRequest, tenantID string) (*models.QuoteResult, error) {
	if err := s.validateQuoteRequest(request); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	rules, err := s.rulesRepo.LoadRuleSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping rules: %w", err)
	}

	result := s.calculator.Calculate(request, rules)

	s.logger.WithFields(logrus.Fields{
		"country":  request.CountryCode,
		"methodId": request.MethodID,
		"price":    result.ShippingPrice,
		"free":     result.IsFreeShipping,
		"error":    result.ErrorCode,
	}).Info("Quote computed")

	if s.publisher != nil {
		go s.publishQuoteEvent(tenantID, request, result)
	}

	return &result, nil
}

// RefreshRules invalidates the cached rule set snapshot so edits to the
// reference tables take effect before the cache TTL expires
func (s *quoteService) RefreshRules(ctx context.Context, tenantID, actorID string) error {
	if err := s.rulesRepo.InvalidateRuleSet(ctx); err != nil {
		return fmt.Errorf("failed to invalidate rule set cache: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRulesRefreshed(ctx, tenantID, actorID); err != nil {
			s.logger.WithError(err).Warn("Failed to publish rules refreshed event")
		}
	}

	return nil
}

// publishQuoteEvent publishes the quote outcome for analytics. Event
// failures are logged, never surfaced to the caller.
func (s *quoteService) publishQuoteEvent(tenantID string, request models.QuoteRequest, result models.QuoteResult) {
	ctx := context.Background()

	methodCode := ""
	if result.Method != nil {
		methodCode = result.Method.Code
	}

	if result.ErrorCode != "" {
		if err := s.publisher.PublishQuoteFailed(ctx, tenantID, request.CountryCode, methodCode, string(result.ErrorCode)); err != nil {
			s.logger.WithError(err).Warn("Failed to publish quote failed event")
		}
		return
	}

	zoneCode := ""
	if result.Zone != nil {
		zoneCode = result.Zone.Code
	}
	isSplit := result.SplitDetails != nil

	if err := s.publisher.PublishQuoteComputed(ctx, tenantID, request.CountryCode, zoneCode, methodCode, result.ShippingPrice, result.OptionsPrice, result.IsFreeShipping, isSplit); err != nil {
		s.logger.WithError(err).Warn("Failed to publish quote computed event")
	}
}

// validateQuoteRequest validates the quote request
func (s *quoteService) validateQuoteRequest(req models.QuoteRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("at least one cart item is required")
	}
	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return fmt.Errorf("item %d: product ID is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be greater than 0", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d: unit price must not be negative", i)
		}
	}
	if req.CountryCode == "" {
		return fmt.Errorf("country code is required")
	}
	if req.MethodID == uuid.Nil {
		return fmt.Errorf("method ID is required")
	}
	if req.ShipmentPreference != "" && req.ShipmentPreference != models.ShipmentSingle && req.ShipmentPreference != models.ShipmentSplit {
		return fmt.Errorf("shipment preference must be %q or %q", models.ShipmentSingle, models.ShipmentSplit)
	}
	return nil
}

package engine

import (
	"shipping-quote-service/internal/models"
)

// Calculator computes shipping quotes from an immutable rule set snapshot.
// It is stateless and performs no I/O, so a single instance is safe to share
// across goroutines without synchronization.
type Calculator struct{}

// NewCalculator creates a new shipping quote calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes the shipping price, free-shipping eligibility, customs
// notice, delivery window and production lead time for a cart. Failures are
// returned as an error code on the result, never as a Go error: the result
// always carries whatever context (zone, method, customs notice) was
// resolved before the failure so callers can render partial state.
func (c *Calculator) Calculate(req models.QuoteRequest, rules *RuleSet) models.QuoteResult {
	var result models.QuoteResult

	zone := c.resolveZone(req.CountryCode, rules)
	if zone == nil {
		result.ErrorCode = models.QuoteErrorNoZone
		return result
	}
	result.Zone = &models.ZoneSummary{
		ID:            zone.ID,
		Code:          zone.Code,
		Names:         zone.Names,
		CustomsNotice: zone.CustomsNotice,
	}
	result.CustomsNotice = zone.CustomsNotice

	method := rules.FindMethod(req.MethodID)
	if method == nil {
		result.ErrorCode = models.QuoteErrorNoMethod
		return result
	}
	result.Method = &models.MethodSummary{
		ID:         method.ID,
		Code:       method.Code,
		Names:      method.Names,
		EtaMinDays: method.EtaMinDays,
		EtaMaxDays: method.EtaMaxDays,
	}
	result.EtaMinDays = method.EtaMinDays
	result.EtaMaxDays = method.EtaMaxDays
	result.LeadTimeDays = maxLeadTimeDays(req.Items)

	optionsPrice := c.priceOptions(req.Options, method, zone.ID, rules)

	if req.ShipmentPreference == models.ShipmentSplit {
		basePrice, details := c.planSplit(req.Items, zone, method, rules)
		result.SplitDetails = details
		result.IsFreeShipping = allLegsFree(details)
		result.OptionsPrice = optionsPrice
		result.ShippingPrice = basePrice + optionsPrice
		return result
	}

	cartSubtotal := subtotal(req.Items)
	weightPoints := c.totalWeightPoints(req.Items, rules)

	if c.qualifiesForFreeShipping(zone.ID, method.ID, cartSubtotal, rules) {
		result.IsFreeShipping = true
		result.OptionsPrice = optionsPrice
		result.ShippingPrice = optionsPrice
		return result
	}

	rule := c.matchRateRule(zone.ID, method.ID, cartSubtotal, weightPoints, rules)
	if rule == nil {
		result.ErrorCode = models.QuoteErrorNoRateRule
		return result
	}

	result.OptionsPrice = optionsPrice
	result.ShippingPrice = rule.Price + optionsPrice
	return result
}

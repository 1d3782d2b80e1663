package engine

import (
	"shipping-quote-service/internal/models"
)

// planSplit partitions the cart into a ready-to-ship group and a
// made-to-order group and evaluates each independently. An empty group
// contributes 0 and is reported as a nil leg. Unlike single mode, a group
// with no matching rate rule does not fail the quote; the leg is flagged
// with NoRateRule and contributes 0.
func (c *Calculator) planSplit(items []models.CartItem, zone *models.ShippingZone, method *models.ShippingMethod, rules *RuleSet) (int64, *models.SplitDetails) {
	var ready, madeToOrder []models.CartItem
	for _, item := range items {
		if item.MadeToOrder && item.LeadTimeDays != nil && *item.LeadTimeDays > 0 {
			madeToOrder = append(madeToOrder, item)
		} else {
			ready = append(ready, item)
		}
	}

	details := &models.SplitDetails{
		ReadyShipment:       c.evaluateLeg(ready, zone, method, rules),
		MadeToOrderShipment: c.evaluateLeg(madeToOrder, zone, method, rules),
	}

	var basePrice int64
	if details.ReadyShipment != nil {
		basePrice += details.ReadyShipment.ShippingPrice
	}
	if details.MadeToOrderShipment != nil {
		basePrice += details.MadeToOrderShipment.ShippingPrice
	}

	return basePrice, details
}

// evaluateLeg computes subtotal, weight, free-shipping eligibility and the
// base price for one shipment leg. Returns nil for an empty group.
func (c *Calculator) evaluateLeg(items []models.CartItem, zone *models.ShippingZone, method *models.ShippingMethod, rules *RuleSet) *models.ShipmentLeg {
	if len(items) == 0 {
		return nil
	}

	leg := &models.ShipmentLeg{
		ItemCount:    len(items),
		Subtotal:     subtotal(items),
		WeightPoints: c.totalWeightPoints(items, rules),
		EtaMinDays:   method.EtaMinDays,
		EtaMaxDays:   method.EtaMaxDays,
		LeadTimeDays: maxLeadTimeDays(items),
	}

	if c.qualifiesForFreeShipping(zone.ID, method.ID, leg.Subtotal, rules) {
		leg.IsFreeShipping = true
		return leg
	}

	if rule := c.matchRateRule(zone.ID, method.ID, leg.Subtotal, leg.WeightPoints, rules); rule != nil {
		leg.ShippingPrice = rule.Price
	} else {
		leg.NoRateRule = true
	}

	return leg
}

// allLegsFree reports whether every non-empty leg qualified for free shipping
func allLegsFree(details *models.SplitDetails) bool {
	legs := []*models.ShipmentLeg{details.ReadyShipment, details.MadeToOrderShipment}
	seen := false
	for _, leg := range legs {
		if leg == nil {
			continue
		}
		seen = true
		if !leg.IsFreeShipping {
			return false
		}
	}
	return seen
}

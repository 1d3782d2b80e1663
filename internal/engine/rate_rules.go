package engine

import (
	"sort"

	"shipping-quote-service/internal/models"

	"github.com/google/uuid"
)

// matchRateRule finds the best-matching priced rule for a (zone, method,
// subtotal, weight) tuple. All range bounds are inclusive; nil max means
// unbounded. Among matches the lowest priority value wins; equal priorities
// are broken by rule id ascending so selection is stable regardless of the
// snapshot's row order. Returns nil when no rule matches.
func (c *Calculator) matchRateRule(zoneID, methodID uuid.UUID, subtotal int64, weightPoints int, rules *RuleSet) *models.RateRule {
	var matches []*models.RateRule
	for i := range rules.RateRules {
		rule := &rules.RateRules[i]
		if !rule.IsActive || rule.ZoneID != zoneID || rule.MethodID != methodID {
			continue
		}
		if subtotal < rule.MinSubtotal {
			continue
		}
		if rule.MaxSubtotal != nil && subtotal > *rule.MaxSubtotal {
			continue
		}
		if weightPoints < rule.MinWeightPoints {
			continue
		}
		if rule.MaxWeightPoints != nil && weightPoints > *rule.MaxWeightPoints {
			continue
		}
		matches = append(matches, rule)
	}

	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority < matches[j].Priority
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})

	return matches[0]
}

// qualifiesForFreeShipping reports whether any active threshold waives the
// base shipping cost for this zone, method and subtotal. A threshold with a
// nil method applies to every method in the zone. This check runs before
// rate rule matching; when it succeeds the matcher is skipped entirely.
func (c *Calculator) qualifiesForFreeShipping(zoneID, methodID uuid.UUID, subtotal int64, rules *RuleSet) bool {
	for i := range rules.FreeThresholds {
		threshold := &rules.FreeThresholds[i]
		if !threshold.IsActive || threshold.ZoneID != zoneID {
			continue
		}
		if threshold.MethodID != nil && *threshold.MethodID != methodID {
			continue
		}
		if subtotal >= threshold.Threshold {
			return true
		}
	}
	return false
}

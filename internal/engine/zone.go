package engine

import (
	"strings"

	"shipping-quote-service/internal/models"
)

// resolveZone maps a destination country to its active zone. Returns nil when
// the country has no mapping or the mapped zone is inactive; there is no
// default zone fallback.
func (c *Calculator) resolveZone(countryCode string, rules *RuleSet) *models.ShippingZone {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil
	}

	for _, mapping := range rules.ZoneCountries {
		if mapping.CountryCode != code {
			continue
		}
		for i := range rules.Zones {
			zone := &rules.Zones[i]
			if zone.ID == mapping.ZoneID && zone.IsActive {
				return zone
			}
		}
		return nil
	}

	return nil
}

package engine

import (
	"shipping-quote-service/internal/models"

	"github.com/google/uuid"
)

// RuleSet is one coherent snapshot of the shipping reference tables. The
// engine treats it as immutable; refreshing is the data layer's job. All
// tables must come from the same refresh cycle so that a rule or threshold
// never references a zone or method the snapshot considers missing.
type RuleSet struct {
	Zones          []models.ShippingZone          `json:"zones"`
	ZoneCountries  []models.ZoneCountry           `json:"zoneCountries"`
	SizeClasses    []models.SizeClass             `json:"sizeClasses"`
	Methods        []models.ShippingMethod        `json:"methods"`
	Options        []models.ShippingOption        `json:"options"`
	RateRules      []models.RateRule              `json:"rateRules"`
	FreeThresholds []models.FreeShippingThreshold `json:"freeThresholds"`
	OptionPrices   []models.OptionPrice           `json:"optionPrices"`
}

// FindMethod returns the active method with the given id, or nil
func (rs *RuleSet) FindMethod(methodID uuid.UUID) *models.ShippingMethod {
	for i := range rs.Methods {
		m := &rs.Methods[i]
		if m.ID == methodID && m.IsActive {
			return m
		}
	}
	return nil
}

// FindOption returns the active option with the given code, or nil
func (rs *RuleSet) FindOption(code models.OptionCode) *models.ShippingOption {
	for i := range rs.Options {
		o := &rs.Options[i]
		if o.Code == code && o.IsActive {
			return o
		}
	}
	return nil
}

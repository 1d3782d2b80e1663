package engine

import (
	"shipping-quote-service/internal/models"

	"github.com/google/uuid"
)

// priceOptions sums the prices of the selected add-ons. An option that is
// selected but not supported by the method's capability flags is silently
// ignored, and an option with no price row at any specificity level
// contributes 0; neither case is an error. Options are priced once per quote
// against the whole cart's method, independent of split partitioning.
func (c *Calculator) priceOptions(selected models.SelectedOptions, method *models.ShippingMethod, zoneID uuid.UUID, rules *RuleSet) int64 {
	wanted := []struct {
		code      models.OptionCode
		selected  bool
		supported bool
	}{
		{models.OptionInsurance, selected.Insurance, method.SupportsInsurance},
		{models.OptionSignature, selected.Signature, method.SupportsSignature},
		{models.OptionGiftWrap, selected.GiftWrap, method.SupportsGiftWrap},
	}

	var total int64
	for _, w := range wanted {
		if !w.selected || !w.supported {
			continue
		}
		option := rules.FindOption(w.code)
		if option == nil {
			continue
		}
		total += c.resolveOptionPrice(option.ID, zoneID, method.ID, rules)
	}
	return total
}

// resolveOptionPrice walks the specificity cascade for one option:
// (zone+method) beats (zone only) beats (global, both nil). Rows with a
// method but no zone do not participate. Missing at all levels means 0.
func (c *Calculator) resolveOptionPrice(optionID, zoneID, methodID uuid.UUID, rules *RuleSet) int64 {
	var zoneMethod, zoneOnly, global *models.OptionPrice

	for i := range rules.OptionPrices {
		price := &rules.OptionPrices[i]
		if !price.IsActive || price.OptionID != optionID {
			continue
		}
		switch {
		case price.ZoneID != nil && price.MethodID != nil:
			if *price.ZoneID == zoneID && *price.MethodID == methodID && zoneMethod == nil {
				zoneMethod = price
			}
		case price.ZoneID != nil:
			if *price.ZoneID == zoneID && zoneOnly == nil {
				zoneOnly = price
			}
		case price.MethodID == nil:
			if global == nil {
				global = price
			}
		}
	}

	switch {
	case zoneMethod != nil:
		return zoneMethod.Price
	case zoneOnly != nil:
		return zoneOnly.Price
	case global != nil:
		return global.Price
	}
	return 0
}

package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-quote-service/internal/models"
)

// TestCalculate_DomesticUnderThreshold verifies the base single-shipment path:
// a cart below the free-shipping threshold pays the matched rule's price.
func TestCalculate_DomesticUnderThreshold(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{openRule(zoneEUID, methodStdID, 590)}
	rules.FreeThresholds = []models.FreeShippingThreshold{
		{ID: uuid.New(), ZoneID: zoneEUID, Threshold: 5000, IsActive: true},
	}

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "MEDIUM")},
		CountryCode: "DE",
		MethodID:    methodStdID,
	}, rules)

	assert.Empty(t, result.ErrorCode)
	assert.Equal(t, int64(590), result.ShippingPrice)
	assert.False(t, result.IsFreeShipping)
	assert.Equal(t, int64(0), result.OptionsPrice)
	require.NotNil(t, result.Zone)
	assert.Equal(t, "eu", result.Zone.Code)
	require.NotNil(t, result.Method)
	assert.Equal(t, "standard", result.Method.Code)
	assert.Equal(t, 3, result.EtaMinDays)
	require.NotNil(t, result.EtaMaxDays)
	assert.Equal(t, 7, *result.EtaMaxDays)
	assert.False(t, result.CustomsNotice)
}

// TestCalculate_FreeShippingSkipsRateRules verifies a cart at or above the
// threshold is free even when no rate rule could match it.
func TestCalculate_FreeShippingSkipsRateRules(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.FreeThresholds = []models.FreeShippingThreshold{
		{ID: uuid.New(), ZoneID: zoneEUID, Threshold: 5000, IsActive: true},
	}
	// no rate rules at all: the matcher must not run for a free cart

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(6000, 1, "")},
		CountryCode: "DE",
		MethodID:    methodStdID,
	}, rules)

	assert.Empty(t, result.ErrorCode)
	assert.True(t, result.IsFreeShipping)
	assert.Equal(t, int64(0), result.ShippingPrice)
}

// TestCalculate_FreeShippingStillChargesOptions verifies option prices are
// charged on top of a free base price.
func TestCalculate_FreeShippingStillChargesOptions(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.FreeThresholds = []models.FreeShippingThreshold{
		{ID: uuid.New(), ZoneID: zoneEUID, Threshold: 5000, IsActive: true},
	}
	rules.OptionPrices = []models.OptionPrice{
		optionPrice(optGiftWrapID, nil, nil, 300),
	}

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(6000, 1, "")},
		CountryCode: "DE",
		MethodID:    methodStdID,
		Options:     models.SelectedOptions{GiftWrap: true},
	}, rules)

	assert.True(t, result.IsFreeShipping)
	assert.Equal(t, int64(300), result.OptionsPrice)
	assert.Equal(t, int64(300), result.ShippingPrice)
}

// TestCalculate_UnmappedCountry verifies NO_ZONE with no partial context.
func TestCalculate_UnmappedCountry(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{openRule(zoneEUID, methodStdID, 590)}

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "")},
		CountryCode: "ZZ",
		MethodID:    methodStdID,
	}, rules)

	assert.Equal(t, models.QuoteErrorNoZone, result.ErrorCode)
	assert.Equal(t, int64(0), result.ShippingPrice)
	assert.Nil(t, result.Zone)
	assert.Nil(t, result.Method)
}

// TestCalculate_UnknownMethod verifies NO_METHOD keeps the resolved zone
// context on the result.
func TestCalculate_UnknownMethod(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "")},
		CountryCode: "US",
		MethodID:    uuid.New(),
	}, rules)

	assert.Equal(t, models.QuoteErrorNoMethod, result.ErrorCode)
	assert.Equal(t, int64(0), result.ShippingPrice)
	require.NotNil(t, result.Zone)
	assert.Equal(t, "world", result.Zone.Code)
	assert.True(t, result.CustomsNotice)
	assert.Nil(t, result.Method)
}

// TestCalculate_InactiveMethod verifies an inactive method resolves like an
// unknown one.
func TestCalculate_InactiveMethod(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "")},
		CountryCode: "DE",
		MethodID:    methodRetired,
	}, rules)

	assert.Equal(t, models.QuoteErrorNoMethod, result.ErrorCode)
}

// TestCalculate_NoRateRule verifies single mode fails the quote when no rule
// matches, with zone and method context still populated.
func TestCalculate_NoRateRule(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.OptionPrices = []models.OptionPrice{
		optionPrice(optGiftWrapID, nil, nil, 300),
	}
	// no rate rules

	result := calc.Calculate(models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "")},
		CountryCode: "DE",
		MethodID:    methodStdID,
		Options:     models.SelectedOptions{GiftWrap: true},
	}, rules)

	assert.Equal(t, models.QuoteErrorNoRateRule, result.ErrorCode)
	assert.Equal(t, int64(0), result.ShippingPrice)
	assert.Equal(t, int64(0), result.OptionsPrice)
	require.NotNil(t, result.Zone)
	require.NotNil(t, result.Method)
}

// TestCalculate_SplitShipment verifies the split path populates both legs
// and reports the maximum lead time at the top level.
func TestCalculate_SplitShipment(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{openRule(zoneEUID, methodStdID, 590)}

	result := calc.Calculate(models.QuoteRequest{
		Items: []models.CartItem{
			cartItem(2000, 1, ""),
			madeToOrderItem(8000, 1, 21),
		},
		CountryCode:        "DE",
		MethodID:           methodStdID,
		ShipmentPreference: models.ShipmentSplit,
	}, rules)

	assert.Empty(t, result.ErrorCode)
	require.NotNil(t, result.SplitDetails)
	require.NotNil(t, result.SplitDetails.ReadyShipment)
	require.NotNil(t, result.SplitDetails.MadeToOrderShipment)
	assert.Equal(t, int64(1180), result.ShippingPrice)
	assert.Equal(t, 21, result.LeadTimeDays)
	assert.Equal(t, 21, result.SplitDetails.MadeToOrderShipment.LeadTimeDays)
}

// TestCalculate_SplitChargesOptionsOnce verifies options are charged once per
// quote, not once per leg.
func TestCalculate_SplitChargesOptionsOnce(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{openRule(zoneEUID, methodStdID, 590)}
	rules.OptionPrices = []models.OptionPrice{
		optionPrice(optGiftWrapID, nil, nil, 300),
	}

	result := calc.Calculate(models.QuoteRequest{
		Items: []models.CartItem{
			cartItem(2000, 1, ""),
			madeToOrderItem(8000, 1, 14),
		},
		CountryCode:        "DE",
		MethodID:           methodStdID,
		Options:            models.SelectedOptions{GiftWrap: true},
		ShipmentPreference: models.ShipmentSplit,
	}, rules)

	assert.Equal(t, int64(300), result.OptionsPrice)
	assert.Equal(t, int64(590+590+300), result.ShippingPrice)
}

// TestCalculate_SplitAllLegsFree verifies the quote is free only when every
// non-empty leg qualifies.
func TestCalculate_SplitAllLegsFree(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{openRule(zoneEUID, methodStdID, 590)}
	rules.FreeThresholds = []models.FreeShippingThreshold{
		{ID: uuid.New(), ZoneID: zoneEUID, Threshold: 5000, IsActive: true},
	}

	result := calc.Calculate(models.QuoteRequest{
		Items: []models.CartItem{
			cartItem(6000, 1, ""),
			madeToOrderItem(7000, 1, 14),
		},
		CountryCode:        "DE",
		MethodID:           methodStdID,
		ShipmentPreference: models.ShipmentSplit,
	}, rules)

	assert.True(t, result.IsFreeShipping)
	assert.Equal(t, int64(0), result.ShippingPrice)
}

// TestCalculate_Deterministic verifies repeated evaluation of the same
// request against the same snapshot yields identical results.
func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator()
	rules := baseRuleSet()
	rules.RateRules = []models.RateRule{
		rateRule("00000000-0000-0000-0000-000000000002", zoneEUID, methodStdID, 990, 1),
		rateRule("00000000-0000-0000-0000-000000000001", zoneEUID, methodStdID, 590, 1),
	}

	req := models.QuoteRequest{
		Items:       []models.CartItem{cartItem(3000, 1, "SMALL")},
		CountryCode: "DE",
		MethodID:    methodStdID,
	}

	first := calc.Calculate(req, rules)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.Calculate(req, rules))
	}
}

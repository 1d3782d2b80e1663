package engine

import (
	"github.com/google/uuid"

	"shipping-quote-service/internal/models"
)

// Fixed ids keep the fixtures readable and the tie-break tests deterministic.
var (
	zoneEUID       = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	zoneWorldID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	zoneDormantID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	methodStdID    = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	methodExprID   = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	methodRetired  = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	optInsuranceID = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
	optSignatureID = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
	optGiftWrapID  = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
)

func intPtr(v int) *int          { return &v }
func int64Ptr(v int64) *int64    { return &v }
func idPtr(v uuid.UUID) *uuid.UUID { return &v }

// baseRuleSet returns a snapshot with zones, countries, size classes, methods
// and options but no rate rules, thresholds or option prices; tests append
// the pricing rows they exercise.
func baseRuleSet() *RuleSet {
	return &RuleSet{
		Zones: []models.ShippingZone{
			{ID: zoneEUID, Code: "eu", CustomsNotice: false, SortOrder: 10, IsActive: true},
			{ID: zoneWorldID, Code: "world", CustomsNotice: true, SortOrder: 20, IsActive: true},
			{ID: zoneDormantID, Code: "dormant", CustomsNotice: false, SortOrder: 30, IsActive: false},
		},
		ZoneCountries: []models.ZoneCountry{
			{ID: uuid.New(), ZoneID: zoneEUID, CountryCode: "DE"},
			{ID: uuid.New(), ZoneID: zoneEUID, CountryCode: "FR"},
			{ID: uuid.New(), ZoneID: zoneWorldID, CountryCode: "US"},
			{ID: uuid.New(), ZoneID: zoneDormantID, CountryCode: "AQ"},
		},
		SizeClasses: []models.SizeClass{
			{ID: uuid.New(), Code: "SMALL", WeightPoints: 1, IsActive: true},
			{ID: uuid.New(), Code: "MEDIUM", WeightPoints: 2, IsActive: true},
			{ID: uuid.New(), Code: "LARGE", WeightPoints: 4, IsActive: true},
			{ID: uuid.New(), Code: "RETIRED", WeightPoints: 9, IsActive: false},
		},
		Methods: []models.ShippingMethod{
			{
				ID:               methodStdID,
				Code:             "standard",
				SupportsGiftWrap: true,
				EtaMinDays:       3,
				EtaMaxDays:       intPtr(7),
				IsActive:         true,
			},
			{
				ID:                methodExprID,
				Code:              "express",
				SupportsInsurance: true,
				SupportsSignature: true,
				SupportsGiftWrap:  true,
				EtaMinDays:        1,
				EtaMaxDays:        intPtr(3),
				IsActive:          true,
			},
			{
				ID:         methodRetired,
				Code:       "retired",
				EtaMinDays: 1,
				IsActive:   false,
			},
		},
		Options: []models.ShippingOption{
			{ID: optInsuranceID, Code: models.OptionInsurance, IsActive: true},
			{ID: optSignatureID, Code: models.OptionSignature, IsActive: true},
			{ID: optGiftWrapID, Code: models.OptionGiftWrap, IsActive: true},
		},
	}
}

func cartItem(unitPrice int64, quantity int, sizeClass string) models.CartItem {
	return models.CartItem{
		ProductID:     uuid.New(),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		SizeClassCode: sizeClass,
	}
}

func madeToOrderItem(unitPrice int64, quantity, leadDays int) models.CartItem {
	return models.CartItem{
		ProductID:    uuid.New(),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		MadeToOrder:  true,
		LeadTimeDays: intPtr(leadDays),
	}
}

func rateRule(id string, zoneID, methodID uuid.UUID, price int64, priority int) models.RateRule {
	return models.RateRule{
		ID:       uuid.MustParse(id),
		ZoneID:   zoneID,
		MethodID: methodID,
		Price:    price,
		Priority: priority,
		IsActive: true,
	}
}

// openRule is a catch-all rule with no upper bounds
func openRule(zoneID, methodID uuid.UUID, price int64) models.RateRule {
	return models.RateRule{
		ID:       uuid.New(),
		ZoneID:   zoneID,
		MethodID: methodID,
		Price:    price,
		Priority: 1,
		IsActive: true,
	}
}

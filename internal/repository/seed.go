package repository

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shipping-quote-service/internal/models"
)

// SeedShippingRules seeds the default zones, country mappings, size classes,
// methods and options. Rate rules, thresholds and option prices are merchant
// configuration and are not seeded. This is idempotent - it uses upsert to
// avoid duplicates.
func SeedShippingRules(db *gorm.DB) error {
	intPtr := func(v int) *int { return &v }

	zones := []models.ShippingZone{
		{
			Code:          "domestic",
			Names:         models.JSONB{"en": "Domestic", "de": "Inland"},
			CustomsNotice: false,
			SortOrder:     10,
			IsActive:      true,
		},
		{
			Code:          "eu",
			Names:         models.JSONB{"en": "European Union", "de": "Europäische Union"},
			CustomsNotice: false,
			SortOrder:     20,
			IsActive:      true,
		},
		{
			Code:          "europe_non_eu",
			Names:         models.JSONB{"en": "Europe (non-EU)", "de": "Europa (Nicht-EU)"},
			CustomsNotice: true,
			SortOrder:     30,
			IsActive:      true,
		},
		{
			Code:          "world",
			Names:         models.JSONB{"en": "Rest of World", "de": "Übrige Welt"},
			CustomsNotice: true,
			SortOrder:     40,
			IsActive:      true,
		},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"names", "customs_notice", "sort_order", "is_active", "updated_at"}),
	}).Create(&zones).Error; err != nil {
		return err
	}

	// Resolve zone ids by code so country mappings survive re-seeding
	var storedZones []models.ShippingZone
	if err := db.Find(&storedZones).Error; err != nil {
		return err
	}
	zoneByCode := make(map[string]models.ShippingZone, len(storedZones))
	for _, zone := range storedZones {
		zoneByCode[zone.Code] = zone
	}

	countryMap := map[string][]string{
		"domestic":      {"DE"},
		"eu":            {"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "GR", "HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE"},
		"europe_non_eu": {"CH", "GB", "NO", "IS", "LI"},
		"world":         {"US", "CA", "AU", "NZ", "JP", "SG", "KR"},
	}

	var countries []models.ZoneCountry
	for zoneCode, codes := range countryMap {
		zone, ok := zoneByCode[zoneCode]
		if !ok {
			continue
		}
		for _, cc := range codes {
			countries = append(countries, models.ZoneCountry{ZoneID: zone.ID, CountryCode: cc})
		}
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "country_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"zone_id"}),
	}).Create(&countries).Error; err != nil {
		return err
	}

	sizeClasses := []models.SizeClass{
		{Code: "SMALL", WeightPoints: 1, IsActive: true},
		{Code: "MEDIUM", WeightPoints: 2, IsActive: true},
		{Code: "LARGE", WeightPoints: 4, IsActive: true},
		{Code: "BULKY", WeightPoints: 8, IsActive: true},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_points", "is_active", "updated_at"}),
	}).Create(&sizeClasses).Error; err != nil {
		return err
	}

	methods := []models.ShippingMethod{
		{
			Code:              "standard",
			Names:             models.JSONB{"en": "Standard", "de": "Standard"},
			SupportsInsurance: false,
			SupportsSignature: false,
			SupportsGiftWrap:  true,
			EtaMinDays:        3,
			EtaMaxDays:        intPtr(7),
			SortOrder:         10,
			IsActive:          true,
		},
		{
			Code:              "express",
			Names:             models.JSONB{"en": "Express", "de": "Express"},
			SupportsInsurance: true,
			SupportsSignature: true,
			SupportsGiftWrap:  true,
			EtaMinDays:        1,
			EtaMaxDays:        intPtr(3),
			SortOrder:         20,
			IsActive:          true,
		},
		{
			Code:              "premium",
			Names:             models.JSONB{"en": "Premium Courier", "de": "Premium-Kurier"},
			SupportsInsurance: true,
			SupportsSignature: true,
			SupportsGiftWrap:  false,
			EtaMinDays:        1,
			EtaMaxDays:        nil, // carrier publishes no upper bound
			SortOrder:         30,
			IsActive:          true,
		},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"names",
			"supports_insurance",
			"supports_signature",
			"supports_gift_wrap",
			"eta_min_days",
			"eta_max_days",
			"sort_order",
			"is_active",
			"updated_at",
		}),
	}).Create(&methods).Error; err != nil {
		return err
	}

	options := []models.ShippingOption{
		{Code: models.OptionInsurance, Names: models.JSONB{"en": "Shipping Insurance", "de": "Transportversicherung"}, IsActive: true},
		{Code: models.OptionSignature, Names: models.JSONB{"en": "Signature on Delivery", "de": "Unterschrift bei Zustellung"}, IsActive: true},
		{Code: models.OptionGiftWrap, Names: models.JSONB{"en": "Gift Wrapping", "de": "Geschenkverpackung"}, IsActive: true},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"names", "is_active", "updated_at"}),
	}).Create(&options).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d zones, %d country mappings, %d size classes, %d methods, %d options",
		len(zones), len(countries), len(sizeClasses), len(methods), len(options))
	return nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONB custom type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(j))
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*j = JSONB(m)
	return nil
}

// OptionCode identifies a shipping add-on
type OptionCode string

const (
	OptionInsurance OptionCode = "insurance"
	OptionSignature OptionCode = "signature"
	OptionGiftWrap  OptionCode = "gift_wrap"
)

// ShippingZone represents a shipping region composed of one or more countries.
// A country maps to at most one active zone.
type ShippingZone struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string        `json:"code" gorm:"type:varchar(50);not null;uniqueIndex"`
	Names         JSONB         `json:"names" gorm:"type:jsonb;default:'{}'"` // locale -> display name
	CustomsNotice bool          `json:"customsNotice" gorm:"default:false"`
	SortOrder     int           `json:"sortOrder" gorm:"default:0"`
	IsActive      bool          `json:"isActive" gorm:"default:true;index"`
	Countries     []ZoneCountry `json:"countries,omitempty" gorm:"foreignKey:ZoneID"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ZoneCountry maps an ISO 2-letter country code to a zone (many-to-one)
type ZoneCountry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ZoneID      uuid.UUID `json:"zoneId" gorm:"type:uuid;not null;index"`
	CountryCode string    `json:"countryCode" gorm:"type:varchar(2);not null;uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// SizeClass represents an abstract bulkiness unit, not physical kilograms.
// Cart items reference a size class by code; the engine sums weight points.
type SizeClass struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string    `json:"code" gorm:"type:varchar(50);not null;uniqueIndex"`
	WeightPoints int       `json:"weightPoints" gorm:"not null;default:0;check:weight_points >= 0"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ShippingMethod represents a carrier method with capability flags and an ETA window
type ShippingMethod struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code              string    `json:"code" gorm:"type:varchar(50);not null;uniqueIndex"`
	Names             JSONB     `json:"names" gorm:"type:jsonb;default:'{}'"`
	SupportsInsurance bool      `json:"supportsInsurance" gorm:"default:false"`
	SupportsSignature bool      `json:"supportsSignature" gorm:"default:false"`
	SupportsGiftWrap  bool      `json:"supportsGiftWrap" gorm:"default:false"`
	EtaMinDays        int       `json:"etaMinDays" gorm:"default:0"`
	EtaMaxDays        *int      `json:"etaMaxDays"` // nil = open-ended
	SortOrder         int       `json:"sortOrder" gorm:"default:0"`
	IsActive          bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ShippingOption represents a priced add-on (insurance, signature, gift wrap)
type ShippingOption struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      OptionCode `json:"code" gorm:"type:varchar(50);not null;uniqueIndex"`
	Names     JSONB      `json:"names" gorm:"type:jsonb;default:'{}'"`
	IsActive  bool       `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// RateRule is a priced matching condition over (zone, method, subtotal range,
// weight range). All bounds are inclusive; nil max means unbounded. Lower
// priority value wins when several rules match.
type RateRule struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ZoneID          uuid.UUID `json:"zoneId" gorm:"type:uuid;not null;index"`
	MethodID        uuid.UUID `json:"methodId" gorm:"type:uuid;not null;index"`
	MinSubtotal     int64     `json:"minSubtotal" gorm:"not null;default:0"`
	MaxSubtotal     *int64    `json:"maxSubtotal"`
	MinWeightPoints int       `json:"minWeightPoints" gorm:"not null;default:0"`
	MaxWeightPoints *int      `json:"maxWeightPoints"`
	Price           int64     `json:"price" gorm:"not null"` // minor units
	Priority        int       `json:"priority" gorm:"not null;default:100;index"`
	IsActive        bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// FreeShippingThreshold waives the base shipping cost for a zone once the
// subtotal reaches the threshold. A nil method applies zone-wide.
type FreeShippingThreshold struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ZoneID    uuid.UUID  `json:"zoneId" gorm:"type:uuid;not null;index"`
	MethodID  *uuid.UUID `json:"methodId" gorm:"type:uuid;index"`
	Threshold int64      `json:"threshold" gorm:"not null"` // minor units
	IsActive  bool       `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OptionPrice prices an add-on at one of three specificity levels:
// (zone+method) > (zone only) > (both nil = global default)
type OptionPrice struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OptionID  uuid.UUID  `json:"optionId" gorm:"type:uuid;not null;index"`
	ZoneID    *uuid.UUID `json:"zoneId" gorm:"type:uuid;index"`
	MethodID  *uuid.UUID `json:"methodId" gorm:"type:uuid;index"`
	Price     int64      `json:"price" gorm:"not null"` // minor units
	IsActive  bool       `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

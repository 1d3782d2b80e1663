package models

import (
	"github.com/google/uuid"
)

// ShipmentPreference selects single or split fulfillment
type ShipmentPreference string

const (
	ShipmentSingle ShipmentPreference = "single"
	ShipmentSplit  ShipmentPreference = "split"
)

// QuoteErrorCode represents a non-fatal quote failure
type QuoteErrorCode string

const (
	QuoteErrorNoZone     QuoteErrorCode = "NO_ZONE"
	QuoteErrorNoMethod   QuoteErrorCode = "NO_METHOD"
	QuoteErrorNoRateRule QuoteErrorCode = "NO_RATE_RULE"
)

// CartItem represents one cart line in a quote request
type CartItem struct {
	ProductID     uuid.UUID `json:"productId" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice     int64     `json:"unitPrice" binding:"gte=0"` // minor units
	MadeToOrder   bool      `json:"madeToOrder"`
	LeadTimeDays  *int      `json:"leadTimeDays"`
	SizeClassCode string    `json:"sizeClassCode"` // optional, defaults to MEDIUM
}

// SelectedOptions holds the add-ons chosen by the customer
type SelectedOptions struct {
	Insurance bool `json:"insurance"`
	Signature bool `json:"signature"`
	GiftWrap  bool `json:"giftWrap"`
}

// QuoteRequest represents a request to compute a shipping quote
type QuoteRequest struct {
	Items              []CartItem         `json:"items" binding:"required,min=1"`
	CountryCode        string             `json:"countryCode" binding:"required"`
	MethodID           uuid.UUID          `json:"methodId" binding:"required"`
	Options            SelectedOptions    `json:"options"`
	ShipmentPreference ShipmentPreference `json:"shipmentPreference"` // defaults to single
}

// ZoneSummary is the resolved-zone portion of a quote result
type ZoneSummary struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Names         JSONB     `json:"names"`
	CustomsNotice bool      `json:"customsNotice"`
}

// MethodSummary is the resolved-method portion of a quote result
type MethodSummary struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Names      JSONB     `json:"names"`
	EtaMinDays int       `json:"etaMinDays"`
	EtaMaxDays *int      `json:"etaMaxDays"`
}

// ShipmentLeg describes one leg of a split shipment
type ShipmentLeg struct {
	ItemCount      int   `json:"itemCount"`
	Subtotal       int64 `json:"subtotal"`
	WeightPoints   int   `json:"weightPoints"`
	ShippingPrice  int64 `json:"shippingPrice"`
	IsFreeShipping bool  `json:"isFreeShipping"`
	// NoRateRule flags a leg that matched no pricing rule. Split mode does not
	// surface this as a quote error; the leg contributes price 0.
	NoRateRule   bool `json:"noRateRule,omitempty"`
	EtaMinDays   int  `json:"etaMinDays"`
	EtaMaxDays   *int `json:"etaMaxDays"`
	LeadTimeDays int  `json:"leadTimeDays"`
}

// SplitDetails exposes both legs of a split shipment so callers can render
// two shipment lines. A nil leg means that group had no items.
type SplitDetails struct {
	ReadyShipment       *ShipmentLeg `json:"readyShipment"`
	MadeToOrderShipment *ShipmentLeg `json:"madeToOrderShipment"`
}

// QuoteResult represents a computed shipping quote. On failure ErrorCode is
// set, ShippingPrice is 0, and whatever context was resolved before the
// failure (zone, method, customs notice) is still populated.
type QuoteResult struct {
	ShippingPrice  int64          `json:"shippingPrice"` // minor units, base + options
	IsFreeShipping bool           `json:"isFreeShipping"`
	OptionsPrice   int64          `json:"optionsPrice"`
	Zone           *ZoneSummary   `json:"zone,omitempty"`
	Method         *MethodSummary `json:"method,omitempty"`
	CustomsNotice  bool           `json:"customsNotice"`
	EtaMinDays     int            `json:"etaMinDays"`
	EtaMaxDays     *int           `json:"etaMaxDays"`
	LeadTimeDays   int            `json:"leadTimeDays"`
	SplitDetails   *SplitDetails  `json:"splitDetails,omitempty"`
	ErrorCode      QuoteErrorCode `json:"errorCode,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message,omitempty"`
}

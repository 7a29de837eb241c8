package model

// CustomerPreferences holds a customer's manufacturing defaults. Missing or
// malformed preference data is never fatal to validation: ResolvePreferences
// substitutes the conservative defaults below so a pass can always proceed.
type CustomerPreferences struct {
	CustomerID string `json:"customer_id" yaml:"customer_id"`

	// LED manufacturing defaults
	UseLeds     bool    `json:"use_leds" yaml:"use_leds"` // Whether quotes include LEDs by default
	LedType     string  `json:"led_type" yaml:"led_type"` // Catalog code of the preferred LED
	WattsPerLed float64 `json:"watts_per_led" yaml:"watts_per_led"`

	// Power supply defaults
	UsePowerSupplies bool   `json:"use_power_supplies" yaml:"use_power_supplies"` // Whether quotes include transformers by default
	PowerSupplyType  string `json:"power_supply_type" yaml:"power_supply_type"`   // Catalog code of the preferred supply

	// Compliance and shipping
	RequireUL          bool    `json:"require_ul" yaml:"require_ul"`
	ShippingMultiplier float64 `json:"shipping_multiplier" yaml:"shipping_multiplier"`
}

// Conservative fallback values used when a customer record is absent or
// incomplete: no LEDs, no transformers, no UL, 60W supply class.
const (
	DefaultWattsPerLed        = 1.2
	DefaultPowerSupplyType    = "ps1" // Non-UL 60W class
	DefaultShippingMultiplier = 1.0
)

// DefaultPreferences returns the fallback preference set for an unknown
// customer.
func DefaultPreferences() CustomerPreferences {
	return CustomerPreferences{
		UseLeds:            false,
		UsePowerSupplies:   false,
		RequireUL:          false,
		WattsPerLed:        DefaultWattsPerLed,
		PowerSupplyType:    DefaultPowerSupplyType,
		ShippingMultiplier: DefaultShippingMultiplier,
	}
}

// ResolvePreferences fills zero-valued numeric fields of a loaded preference
// record with the documented fallbacks.
func ResolvePreferences(p CustomerPreferences) CustomerPreferences {
	if p.WattsPerLed <= 0 {
		p.WattsPerLed = DefaultWattsPerLed
	}
	if p.PowerSupplyType == "" {
		p.PowerSupplyType = DefaultPowerSupplyType
	}
	if p.ShippingMultiplier <= 0 {
		p.ShippingMultiplier = DefaultShippingMultiplier
	}
	return p
}

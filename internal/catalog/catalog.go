// Package catalog resolves pricing rates, power supply SKUs, and LED types
// from a YAML-backed rate catalog, and customer manufacturing preferences
// through an explicitly invalidated TTL cache.
//
// Missing catalog data is always a hard error. A silently substituted zero
// rate would corrupt a customer quote.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PowerSupply is one power supply SKU in the catalog.
type PowerSupply struct {
	Code     string  `yaml:"code"`
	Name     string  `yaml:"name"`
	Watts    float64 `yaml:"watts"`
	ULListed bool    `yaml:"ul_listed"`
	Price    float64 `yaml:"price"`
}

// LedType is one LED module type in the catalog.
type LedType struct {
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name"`
	WattsPerLed float64 `yaml:"watts_per_led"`
	Price       float64 `yaml:"price"`
}

// Catalog holds all rate data needed by the pricing calculators.
type Catalog struct {
	PowerSupplies []PowerSupply      `yaml:"power_supplies"`
	LedTypes      []LedType          `yaml:"led_types"`
	Rates         map[string]float64 `yaml:"rates"`
}

// Rate names used by the pricing calculators.
const (
	RateChannelLetterPerInch = "channel_letter_per_inch"
	RateULBase               = "ul_base_fee"
	RateULPerSet             = "ul_per_set_fee"
	RatePinPerUnit           = "pin_per_unit"
	RateWirePerFoot          = "wire_per_foot"
	RateShippingBase         = "shipping_base"
)

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Save writes the catalog to a YAML file.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PowerSupply returns the SKU with the given code, or an error when the
// catalog has no such entry or the entry has no wattage data.
func (c *Catalog) PowerSupply(code string) (PowerSupply, error) {
	for _, ps := range c.PowerSupplies {
		if ps.Code == code {
			if ps.Watts <= 0 {
				return PowerSupply{}, fmt.Errorf("power supply '%s' has no wattage data", code)
			}
			return ps, nil
		}
	}
	return PowerSupply{}, fmt.Errorf("unknown power supply '%s'", code)
}

// ULPowerSupplies returns every UL-listed SKU in catalog order.
func (c *Catalog) ULPowerSupplies() []PowerSupply {
	var listed []PowerSupply
	for _, ps := range c.PowerSupplies {
		if ps.ULListed {
			listed = append(listed, ps)
		}
	}
	return listed
}

// LedType returns the LED type with the given code.
func (c *Catalog) LedType(code string) (LedType, error) {
	for _, led := range c.LedTypes {
		if led.Code == code {
			return led, nil
		}
	}
	return LedType{}, fmt.Errorf("unknown LED type '%s'", code)
}

// Rate returns a named rate. Absent rates are configuration errors.
func (c *Catalog) Rate(name string) (float64, error) {
	rate, ok := c.Rates[name]
	if !ok {
		return 0, fmt.Errorf("missing rate '%s'", name)
	}
	return rate, nil
}

// Builtin returns the default shop catalog used when no catalog file is
// configured. ps2 and ps3 are the UL-capable pair used by the selection
// optimization.
func Builtin() *Catalog {
	return &Catalog{
		PowerSupplies: []PowerSupply{
			{Code: "ps1", Name: "Standard 60W", Watts: 60, ULListed: false, Price: 42.50},
			{Code: "ps2", Name: "UL 50W", Watts: 50, ULListed: true, Price: 58.00},
			{Code: "ps3", Name: "UL 135W", Watts: 135, ULListed: true, Price: 96.00},
			{Code: "ps4", Name: "Outdoor 100W", Watts: 100, ULListed: false, Price: 74.00},
		},
		LedTypes: []LedType{
			{Code: "led_std", Name: "Standard White", WattsPerLed: 1.2, Price: 1.85},
			{Code: "led_hd", Name: "High Density White", WattsPerLed: 0.8, Price: 2.40},
		},
		Rates: map[string]float64{
			RateChannelLetterPerInch: 3.25,
			RateULBase:               150.00,
			RateULPerSet:             50.00,
			RatePinPerUnit:           2.00,
			RateWirePerFoot:          1.25,
			RateShippingBase:         25.00,
		},
	}
}

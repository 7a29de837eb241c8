package pricing

import (
	"fmt"
	"math"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/validate"
)

// channelLetterCalculator is the canonical product calculator: it consumes
// the full calculated triad for a channel letter row and emits letter,
// LED, power supply, UL, pin, and wire components.
type channelLetterCalculator struct {
	catalog *catalog.Catalog
}

func (c *channelLetterCalculator) ProductType() string { return model.ProductChannelLetters }

func (c *channelLetterCalculator) Calculate(in Input) Result {
	metrics := in.Calculated.Metrics
	if metrics == nil {
		return Result{Status: StatusPending, Display: "letter data incomplete"}
	}

	var components []model.ComponentItem

	inchRate, err := c.catalog.Rate(catalog.RateChannelLetterPerInch)
	if err != nil {
		return configError(err)
	}
	inches := metrics.TotalWidth()
	components = append(components, model.ComponentItem{
		Name:        letterName(in.Row.Field(validate.CLFieldStyle)),
		UnitPrice:   roundCents(inches * inchRate),
		Type:        "letters",
		Calculation: fmt.Sprintf("%.1f linear in x $%.2f/in", inches, inchRate),
	})

	if leds := in.Calculated.ActualLedCount; leds > 0 {
		led, err := c.catalog.LedType(ledCode(in.Prefs))
		if err != nil {
			return configError(err)
		}
		components = append(components, model.ComponentItem{
			Name:        led.Name + " LEDs",
			UnitPrice:   roundCents(float64(leds) * led.Price),
			Type:        "leds",
			Calculation: fmt.Sprintf("%d x %s at $%.2f each", leds, led.Name, led.Price),
		})
	}

	selection := SelectPowerSupplies(c.catalog, c.supplyInput(in))
	if selection.Error != "" {
		return Result{Status: StatusError, Error: selection.Error}
	}
	components = append(components, selection.Components...)

	ulComponents, err := c.ulComponents(in, selection.TotalCount)
	if err != nil {
		return configError(err)
	}
	components = append(components, ulComponents...)

	if pins, ok := in.CalculatedCells[validate.CLFieldPins]; ok && pins.Kind == validate.ParsedNumber && pins.Number > 0 {
		rate, err := c.catalog.Rate(catalog.RatePinPerUnit)
		if err != nil {
			return configError(err)
		}
		components = append(components, model.ComponentItem{
			Name:        "Mounting pins",
			UnitPrice:   roundCents(pins.Number * rate),
			Type:        "pins",
			Calculation: fmt.Sprintf("%.0f pins x $%.2f", pins.Number, rate),
		})
	}

	if wire, ok := in.Parsed[validate.CLFieldExtraWire]; ok && wire.Kind == validate.ParsedNumber && wire.Number > 0 {
		rate, err := c.catalog.Rate(catalog.RateWirePerFoot)
		if err != nil {
			return configError(err)
		}
		components = append(components, model.ComponentItem{
			Name:        "Extra wire",
			UnitPrice:   roundCents(wire.Number * rate),
			Type:        "wire",
			Calculation: fmt.Sprintf("%.1f ft x $%.2f/ft", wire.Number, rate),
		})
	}

	return Result{
		Status:     StatusCompleted,
		Display:    fmt.Sprintf("%.0f linear in, %d LEDs, %d power supplies", inches, in.Calculated.ActualLedCount, selection.TotalCount),
		Components: components,
		Subtotal:   sumComponents(components, in.Quantity),
	}
}

// supplyInput wires the row's validated override cells into the selector.
// Only genuinely explicit input becomes an override; blank fields leave the
// selector free to optimize.
func (c *channelLetterCalculator) supplyInput(in Input) SupplyInput {
	si := SupplyInput{
		TotalWattage: in.Calculated.TotalWattage,
		RequireUL:    rowRequiresUL(in.Row, in.CalculatedCells),
		Prefs:        in.Prefs,
	}

	if v, ok := in.Parsed[validate.CLFieldPsType]; ok && v.Kind == validate.ParsedLiteral {
		si.TypeOverride = v.Literal
	}

	if v, ok := in.Parsed[validate.CLFieldPsCount]; ok {
		switch v.Kind {
		case validate.ParsedNumber:
			count := int(v.Number)
			si.CountOverride = &count
		case validate.ParsedLiteral:
			count := 0
			if v.Literal == "yes" {
				count = in.Calculated.SavedPsCount
			}
			si.CountOverride = &count
		}
	}

	// With supplies excluded by preference and nothing explicit asking for
	// them, the row ships none at all.
	if si.CountOverride == nil && si.TypeOverride == "" && in.Calculated.DefaultPsCount == 0 {
		zero := 0
		si.CountOverride = &zero
	}

	if v, ok := in.Parsed[validate.CLFieldPsPrice]; ok {
		if v.Kind == validate.ParsedNumber || v.Kind == validate.ParsedCurrency {
			price := v.Number
			si.PriceOverride = &price
		}
	}
	return si
}

// ulComponents prices the UL requirement: an explicit $-amount verbatim,
// otherwise the base fee (first UL row in the grid only) plus the per-set
// fee for every power supply set.
func (c *channelLetterCalculator) ulComponents(in Input, supplyCount int) ([]model.ComponentItem, error) {
	ul, ok := in.CalculatedCells[validate.CLFieldUL]
	if !ok {
		return nil, nil
	}
	one := 1

	if ul.Kind == validate.ParsedCurrency {
		return []model.ComponentItem{{
			Name:             "UL certification",
			UnitPrice:        ul.Number,
			Type:             "ul",
			Calculation:      "explicit certification price",
			QuantityOverride: &one,
		}}, nil
	}
	if ul.Kind != validate.ParsedLiteral || ul.Literal != "yes" {
		return nil, nil
	}

	perSet, err := c.catalog.Rate(catalog.RateULPerSet)
	if err != nil {
		return nil, err
	}
	fee := perSet * float64(supplyCount)
	calc := fmt.Sprintf("%d sets x $%.2f", supplyCount, perSet)
	if !in.ULExistsAbove {
		base, err := c.catalog.Rate(catalog.RateULBase)
		if err != nil {
			return nil, err
		}
		fee += base
		calc = fmt.Sprintf("$%.2f base + %s", base, calc)
	}
	return []model.ComponentItem{{
		Name:             "UL certification",
		UnitPrice:        roundCents(fee),
		Type:             "ul",
		Calculation:      calc,
		QuantityOverride: &one,
	}}, nil
}

// rowRequiresUL reads the UL requirement off the row's validated UL cell,
// wherever its product schema places that cell.
func rowRequiresUL(row model.Row, calculated map[string]validate.ParsedValue) bool {
	for _, fs := range validate.SchemaFor(row.ProductTypeID, row.Kind) {
		if fs.Template != validate.TplULOverride {
			continue
		}
		ul, ok := calculated[fs.Field]
		if !ok {
			return false
		}
		return ul.Kind == validate.ParsedCurrency || (ul.Kind == validate.ParsedLiteral && ul.Literal == "yes")
	}
	return false
}

func ledCode(prefs model.CustomerPreferences) string {
	if prefs.LedType != "" {
		return prefs.LedType
	}
	return "led_std"
}

func letterName(style string) string {
	if style == "" {
		return "Channel letters"
	}
	return fmt.Sprintf("Channel letters (%s)", style)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

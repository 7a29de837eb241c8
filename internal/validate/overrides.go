package validate

import (
	"fmt"
	"strings"

	"github.com/JonBeak/signquote/internal/formula"
)

// The override templates are the context-aware part of the template set.
// Each accepts a union of forms (blank for the computed default, an
// explicit yes/no toggle, a bare number, and for prices a $-amount) and
// performs redundancy detection: explicit input that merely restates what
// the default would already produce is a validation failure, not a warning,
// so users either omit the field or provide a genuinely different value.

// overrideForm is the classified shape of an override input.
type overrideForm int

const (
	formEmpty overrideForm = iota
	formYes
	formNo
	formNumber
	formCurrency
	formInvalid
)

// classifyOverride parses an override input into its form. Numbers are
// validated strictly; currency requires a leading '$'.
func classifyOverride(raw string, wholeNumber bool) (overrideForm, float64) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "":
		return formEmpty, 0
	case "yes":
		return formYes, 0
	case "no":
		return formNo, 0
	}

	if strings.HasPrefix(trimmed, "$") {
		two := 2
		res := formula.ValidateNumeric(trimmed[1:], formula.NumericConstraints{DecimalPlaces: &two})
		if !res.IsValid {
			return formInvalid, 0
		}
		return formCurrency, res.Value
	}

	c := formula.NumericConstraints{}
	if wholeNumber {
		zero := 0
		c.DecimalPlaces = &zero
	}
	if res := formula.ValidateNumeric(trimmed, c); res.IsValid {
		return formNumber, res.Value
	}
	return formInvalid, 0
}

type ledOverrideTemplate struct{}

func (ledOverrideTemplate) Validate(raw string, _ Params, ctx *Context) ValidationResult {
	saved, def := 0, 0
	if ctx != nil {
		saved = ctx.Calculated.SavedLedCount
		def = ctx.Calculated.DefaultLedCount
	}

	form, value := classifyOverride(raw, true)
	switch form {
	case formEmpty:
		return ValidWithCalc(EmptyValue(), NumberValue(float64(def)))
	case formYes:
		if saved == 0 {
			return Invalid("no LEDs are computed for this row", "leave blank, 'yes', 'no', or a count")
		}
		if def > 0 {
			return Invalid("LEDs are already included by default; leave blank or enter a count", "leave blank, 'no', or a count")
		}
		return ValidWithCalc(LiteralValue("yes"), NumberValue(float64(saved)))
	case formNo:
		if def == 0 {
			return Invalid("LEDs are already excluded by default; leave blank", "leave blank, 'yes', or a count")
		}
		return ValidWithCalc(LiteralValue("no"), NumberValue(0))
	case formNumber:
		if value < 0 {
			return Invalid("LED count cannot be negative", "leave blank, 'yes', 'no', or a count")
		}
		return ValidWithCalc(NumberValue(value), NumberValue(value))
	}
	return Invalid(fmt.Sprintf("'%s' is not a valid LED override", strings.TrimSpace(raw)),
		"leave blank, 'yes', 'no', or a count")
}

func (ledOverrideTemplate) Describe() string {
	return "LED inclusion override: blank, yes/no, or an explicit count"
}

func (ledOverrideTemplate) ParameterSchema() []ParamSpec { return nil }

type psCountOverrideTemplate struct{}

func (psCountOverrideTemplate) Validate(raw string, _ Params, ctx *Context) ValidationResult {
	saved, def := 0, 0
	if ctx != nil {
		saved = ctx.Calculated.SavedPsCount
		def = ctx.Calculated.DefaultPsCount
	}

	form, value := classifyOverride(raw, true)
	switch form {
	case formEmpty:
		return ValidWithCalc(EmptyValue(), NumberValue(float64(def)))
	case formYes:
		if saved == 0 {
			return Invalid("no power supplies are computed for this row", "leave blank, 'yes', 'no', or a count")
		}
		if def > 0 {
			return Invalid("power supplies are already included by default; leave blank or enter a count", "leave blank, 'no', or a count")
		}
		return ValidWithCalc(LiteralValue("yes"), NumberValue(float64(saved)))
	case formNo:
		if def == 0 {
			return Invalid("power supplies are already excluded by default; leave blank", "leave blank, 'yes', or a count")
		}
		return ValidWithCalc(LiteralValue("no"), NumberValue(0))
	case formNumber:
		if value < 0 {
			return Invalid("power supply count cannot be negative", "leave blank, 'yes', 'no', or a count")
		}
		return ValidWithCalc(NumberValue(value), NumberValue(value))
	}
	return Invalid(fmt.Sprintf("'%s' is not a valid power supply override", strings.TrimSpace(raw)),
		"leave blank, 'yes', 'no', or a count")
}

func (psCountOverrideTemplate) Describe() string {
	return "Power supply count override: blank, yes/no, or an explicit count"
}

func (psCountOverrideTemplate) ParameterSchema() []ParamSpec { return nil }

type psTypeTemplate struct{}

func (psTypeTemplate) Validate(raw string, _ Params, ctx *Context) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		def := ""
		if ctx != nil {
			def = ctx.Prefs.PowerSupplyType
		}
		return ValidWithCalc(EmptyValue(), LiteralValue(def))
	}

	if ctx == nil || ctx.Catalog == nil {
		return Invalid("power supply catalog is unavailable", "a catalog power supply code")
	}
	if _, err := ctx.Catalog.PowerSupply(trimmed); err != nil {
		return Invalid(err.Error(), "a catalog power supply code, e.g. ps3")
	}
	if trimmed == ctx.Prefs.PowerSupplyType {
		return Invalid(fmt.Sprintf("'%s' is already the customer default; leave blank", trimmed),
			"leave blank or enter a different code")
	}
	return ValidWithCalc(LiteralValue(trimmed), LiteralValue(trimmed))
}

func (psTypeTemplate) Describe() string {
	return "Power supply type override: blank for the customer default, or a catalog code"
}

func (psTypeTemplate) ParameterSchema() []ParamSpec { return nil }

type psPriceOverrideTemplate struct{}

func (psPriceOverrideTemplate) Validate(raw string, _ Params, ctx *Context) ValidationResult {
	form, value := classifyOverride(raw, false)
	switch form {
	case formEmpty:
		return Valid(EmptyValue())
	case formNumber, formCurrency:
		if value < 0 {
			return Invalid("price cannot be negative", "a price, e.g. $85.00")
		}
		if !rowHasSupplies(ctx) {
			return Invalid("no power supplies on this row to price", "add supplies before overriding their price")
		}
		parsed := NumberValue(value)
		if form == formCurrency {
			parsed = CurrencyValue(value)
		}
		return ValidWithCalc(parsed, CurrencyValue(value))
	}
	return Invalid(fmt.Sprintf("'%s' is not a valid price", strings.TrimSpace(raw)), "a price, e.g. $85.00")
}

func (psPriceOverrideTemplate) Describe() string {
	return "Per-unit power supply price override"
}

func (psPriceOverrideTemplate) ParameterSchema() []ParamSpec { return nil }

// rowHasSupplies reports whether the row will carry any power supplies after
// overrides: either computed ones, or an explicit positive count override.
func rowHasSupplies(ctx *Context) bool {
	if ctx == nil {
		return false
	}
	if ctx.Calculated.SavedPsCount > 0 {
		return true
	}
	form, value := classifyOverride(ctx.Field(fieldWithTemplate(ctx.Row, TplPsCountOverride)), true)
	return form == formYes || (form == formNumber && value > 0)
}

type ulOverrideTemplate struct{}

func (ulOverrideTemplate) Validate(raw string, _ Params, ctx *Context) ValidationResult {
	leds := 0
	defaultUL := false
	if ctx != nil {
		leds = ctx.Calculated.ActualLedCount
		defaultUL = ctx.Prefs.RequireUL && leds > 0
	}

	form, value := classifyOverride(raw, false)
	switch form {
	case formEmpty:
		calc := "no"
		if defaultUL {
			calc = "yes"
		}
		return ValidWithCalc(EmptyValue(), LiteralValue(calc))
	case formYes:
		// LEDs are the precondition for UL; checked before redundancy so a
		// zero-LED row fails for the right reason even when the customer
		// default already requires UL.
		if leds == 0 {
			return Invalid("UL requires LEDs on this row", "add LEDs before requesting UL")
		}
		if defaultUL {
			return Invalid("UL is already required by default; leave blank", "leave blank or 'no'")
		}
		return ValidWithCalc(LiteralValue("yes"), LiteralValue("yes"))
	case formNo:
		if !defaultUL {
			return Invalid("UL is already off by default; leave blank", "leave blank or 'yes'")
		}
		return ValidWithCalc(LiteralValue("no"), LiteralValue("no"))
	case formCurrency:
		if leds == 0 {
			return Invalid("UL requires LEDs on this row", "add LEDs before requesting UL")
		}
		return ValidWithCalc(CurrencyValue(value), CurrencyValue(value))
	}
	return Invalid(fmt.Sprintf("'%s' is not a valid UL override", strings.TrimSpace(raw)),
		"leave blank, 'yes', 'no', or a price like $150")
}

func (ulOverrideTemplate) Describe() string {
	return "UL requirement override: blank, yes/no, or an explicit certification price"
}

func (ulOverrideTemplate) ParameterSchema() []ParamSpec { return nil }

// multiplierTemplate accepts a positive multiplier. Blank is valid since
// the field is optional, and scientific notation never passes the strict
// numeric grammar.
type multiplierTemplate struct{}

func (multiplierTemplate) Validate(raw string, _ Params, _ *Context) ValidationResult {
	res := formula.ValidateNumeric(raw, formula.NumericConstraints{AllowEmpty: true})
	if !res.IsValid {
		return Invalid(res.Error, "a positive number, e.g. 2 or 1.5")
	}
	if res.IsEmpty {
		return Valid(EmptyValue())
	}
	if res.Value <= 0 {
		return Invalid("multiplier must be greater than zero", "a positive number, e.g. 2 or 1.5")
	}
	return Valid(NumberValue(res.Value))
}

func (multiplierTemplate) Describe() string { return "An optional positive quantity multiplier" }

func (multiplierTemplate) ParameterSchema() []ParamSpec { return nil }

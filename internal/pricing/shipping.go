package pricing

import (
	"fmt"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/validate"
)

// shippingCalculator prices shipping rows off the catalog base rate, scaled
// by the row's own multiplier field and the customer shipping multiplier.
type shippingCalculator struct {
	catalog *catalog.Catalog
}

func (c *shippingCalculator) ProductType() string { return model.ProductShipping }

func (c *shippingCalculator) Calculate(in Input) Result {
	base, err := c.catalog.Rate(catalog.RateShippingBase)
	if err != nil {
		return configError(err)
	}

	factor := 1.0
	if v, ok := in.Parsed["field1"]; ok && v.Kind == validate.ParsedNumber && v.Number > 0 {
		factor = v.Number
	}
	customer := in.Prefs.ShippingMultiplier
	if customer <= 0 {
		customer = model.DefaultShippingMultiplier
	}

	components := []model.ComponentItem{{
		Name:        "Shipping",
		UnitPrice:   roundCents(base * factor * customer),
		Type:        "shipping",
		Calculation: fmt.Sprintf("$%.2f base x %.2f x %.2f customer rate", base, factor, customer),
	}}
	return Result{
		Status:     StatusCompleted,
		Display:    "shipping",
		Components: components,
		Subtotal:   sumComponents(components, in.Quantity),
	}
}

// Package pricing turns validated grid rows into priced line items: a
// registry of per-product calculators, the power supply selector, the
// multiplier scope resolver, and the quote totals rollup. Money totals are
// carried as decimals; a float never crosses a quote boundary unrounded.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/validate"
)

// Status is the outcome class of one row's pricing step.
type Status string

const (
	StatusCompleted     Status = "completed"
	StatusPending       Status = "pending"
	StatusError         Status = "error"
	StatusNotConfigured Status = "not_configured"
)

// Input is the contract handed to a product calculator. Parsed and
// CalculatedCells are only populated for cells that passed validation, so a
// calculator never prices invalid text.
type Input struct {
	Row             model.Row
	Quantity        int
	Parsed          map[string]validate.ParsedValue
	CalculatedCells map[string]validate.ParsedValue
	Calculated      model.CalculatedValues
	HasErrors       bool
	Prefs           model.CustomerPreferences

	// ULExistsAbove is true when an earlier row already carries the UL
	// requirement, so the base certification fee is not charged again.
	ULExistsAbove bool
}

// Result is one row's pricing outcome.
type Result struct {
	Status     Status
	Display    string
	Components []model.ComponentItem
	Subtotal   decimal.Decimal
	Error      string
}

// Calculator prices rows of one product type.
type Calculator interface {
	ProductType() string
	Calculate(in Input) Result
}

// Registry maps product types to their calculators.
type Registry struct {
	catalog     *catalog.Catalog
	calculators map[string]Calculator
}

// NewRegistry returns a registry with the built-in calculators registered.
func NewRegistry(cat *catalog.Catalog) *Registry {
	r := &Registry{catalog: cat, calculators: map[string]Calculator{}}
	r.Register(&channelLetterCalculator{catalog: cat})
	r.Register(&shippingCalculator{catalog: cat})
	return r
}

// Register adds or replaces the calculator for its product type.
func (r *Registry) Register(c Calculator) {
	r.calculators[c.ProductType()] = c
}

// Calculate prices one row. The second return is false for marker rows,
// which carry configuration for other rows and never render as priced
// lines. Rows with validation errors price as pending, unknown product
// types as not configured.
func (r *Registry) Calculate(in Input) (Result, bool) {
	if in.Row.Kind.IsMarker() {
		return Result{}, false
	}
	if in.HasErrors {
		return Result{Status: StatusPending, Display: "waiting for valid input"}, true
	}
	c, ok := r.calculators[in.Row.ProductTypeID]
	if !ok {
		return Result{
			Status:  StatusNotConfigured,
			Display: fmt.Sprintf("no calculator for product type '%s'", in.Row.ProductTypeID),
		}, true
	}
	return c.Calculate(in), true
}

// configError wraps a missing-rate or missing-SKU lookup. Configuration
// gaps are never defaulted; a silent zero-cost component would corrupt a
// customer quote.
func configError(err error) Result {
	return Result{Status: StatusError, Error: err.Error()}
}

// extendedPrice is a component's price after quantity: the row quantity, or
// the component's own fixed quantity when set.
func extendedPrice(c model.ComponentItem, rowQuantity int) decimal.Decimal {
	qty := rowQuantity
	if c.QuantityOverride != nil {
		qty = *c.QuantityOverride
	}
	return decimal.NewFromFloat(c.UnitPrice).Mul(decimal.NewFromInt(int64(qty)))
}

func sumComponents(components []model.ComponentItem, rowQuantity int) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(extendedPrice(c, rowQuantity))
	}
	return total
}

package validate

import (
	"math"
	"strings"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/formula"
	"github.com/JonBeak/signquote/internal/model"
)

// Context is the read-only state handed to every template when validating a
// row. It is rebuilt from scratch on every validation pass and never mutated
// by a template.
type Context struct {
	Row        model.Row
	Prefs      model.CustomerPreferences
	Calculated model.CalculatedValues
	Catalog    *catalog.Catalog

	// Grid-wide facts
	GridULExists     bool    // Any row in the grid resolves to requiring UL
	GridTotalWattage float64 // Aggregate wattage across all rows
}

// Field returns the raw text of another field on the same row.
func (c *Context) Field(name string) string {
	if c == nil {
		return ""
	}
	return c.Row.Field(name)
}

// ContextBuilder derives per-row calculated values and assembles validation
// contexts. The preference store is an explicit dependency; there is no
// package-level cache.
type ContextBuilder struct {
	catalog *catalog.Catalog
	prefs   *catalog.PreferenceStore
}

// NewContextBuilder creates a builder over a catalog and preference store.
func NewContextBuilder(cat *catalog.Catalog, prefs *catalog.PreferenceStore) *ContextBuilder {
	return &ContextBuilder{catalog: cat, prefs: prefs}
}

// Build runs both phases for a full grid pass: derive calculated values for
// every row, then assemble one context per row combining derived values,
// resolved preferences, and grid-wide aggregates.
func (b *ContextBuilder) Build(rows []model.Row, customerID string) map[string]*Context {
	prefs := model.DefaultPreferences()
	if b.prefs != nil {
		prefs = b.prefs.Get(customerID)
	}

	// Phase 1: derive
	calculated := make(map[string]model.CalculatedValues, len(rows))
	for _, row := range rows {
		calculated[row.ID] = b.deriveRow(row, prefs)
	}

	// Grid-wide aggregates
	var totalWattage float64
	ulExists := false
	for _, row := range rows {
		cv := calculated[row.ID]
		totalWattage += cv.TotalWattage
		if resolveUL(row, prefs, cv.ActualLedCount) {
			ulExists = true
		}
	}

	// Phase 2: assemble
	contexts := make(map[string]*Context, len(rows))
	for _, row := range rows {
		contexts[row.ID] = &Context{
			Row:              row,
			Prefs:            prefs,
			Calculated:       calculated[row.ID],
			Catalog:          b.catalog,
			GridULExists:     ulExists,
			GridTotalWattage: totalWattage,
		}
	}
	return contexts
}

// deriveRow computes the saved/default/actual triad for one row. Saved is
// what geometry alone implies, default gates saved on the customer
// preference toggle, and actual applies any explicit row override.
func (b *ContextBuilder) deriveRow(row model.Row, prefs model.CustomerPreferences) model.CalculatedValues {
	var cv model.CalculatedValues

	metrics := deriveMetrics(row)
	cv.Metrics = metrics
	if metrics == nil {
		return cv
	}

	cv.SavedLedCount = metrics.LedCount()
	if cv.SavedLedCount == 0 && metrics.Scalar > 0 {
		// Scalar entries carry no per-piece LED data; estimate from the
		// linear-inch total.
		cv.SavedLedCount = formula.LedsForLinearInches(metrics.Scalar)
	}

	cv.DefaultLedCount = 0
	if prefs.UseLeds {
		cv.DefaultLedCount = cv.SavedLedCount
	}
	cv.ActualLedCount = resolveLedOverride(row, cv.SavedLedCount, cv.DefaultLedCount)

	cv.TotalWattage = float64(cv.ActualLedCount) * b.wattsPerLed(prefs)

	capacity := b.supplyCapacity(prefs)
	if cv.TotalWattage > 0 {
		cv.SavedPsCount = int(math.Ceil(cv.TotalWattage / capacity))
	}
	if prefs.UsePowerSupplies {
		cv.DefaultPsCount = cv.SavedPsCount
	}
	return cv
}

// deriveMetrics parses the row's geometry source field, if its product type
// has one. Parse failures surface during template validation, not here.
func deriveMetrics(row model.Row) *model.ChannelLetterMetrics {
	switch row.ProductTypeID {
	case model.ProductChannelLetters:
		m, err := formula.ParseChannelLetterValue(row.Field(CLFieldLetterData))
		if err != nil {
			return nil
		}
		return &m
	case model.ProductPushThru, model.ProductBladeSign:
		dims, err := splitDimensions(row.Field("field1"), 3)
		if err != nil {
			return nil
		}
		li := formula.LinearInches(dims[0], dims[1])
		return &model.ChannelLetterMetrics{Pieces: []model.LetterPiece{{
			LinearInches: li,
			LedCount:     formula.LedCount(dims[0], dims[1], li),
		}}}
	}
	return nil
}

// resolveLedOverride applies the raw override field to the default count.
// Only well-formed override text changes the result; anything else is left
// for template validation to reject.
func resolveLedOverride(row model.Row, saved, defaultCount int) int {
	raw := strings.TrimSpace(row.Field(ledOverrideField(row)))
	switch strings.ToLower(raw) {
	case "":
		return defaultCount
	case "yes":
		return saved
	case "no":
		return 0
	}
	zero := 0
	if res := formula.ValidateNumeric(raw, formula.NumericConstraints{DecimalPlaces: &zero}); res.IsValid {
		return int(res.Value)
	}
	return defaultCount
}

// resolveUL determines whether a row requires UL after overrides. Explicit
// toggles and currency amounts win; otherwise the customer default applies,
// gated on the row actually having LEDs.
func resolveUL(row model.Row, prefs model.CustomerPreferences, actualLeds int) bool {
	raw := strings.ToLower(strings.TrimSpace(row.Field(ulOverrideField(row))))
	switch {
	case raw == "yes":
		return true
	case raw == "no":
		return false
	case strings.HasPrefix(raw, "$"):
		return true
	}
	return prefs.RequireUL && actualLeds > 0
}

func (b *ContextBuilder) wattsPerLed(prefs model.CustomerPreferences) float64 {
	if b.catalog != nil && prefs.LedType != "" {
		if led, err := b.catalog.LedType(prefs.LedType); err == nil && led.WattsPerLed > 0 {
			return led.WattsPerLed
		}
	}
	return prefs.WattsPerLed
}

// supplyCapacity resolves the wattage class used for default supply counts.
// Catalog misses fall back to the conservative 60W class.
func (b *ContextBuilder) supplyCapacity(prefs model.CustomerPreferences) float64 {
	if b.catalog != nil {
		if ps, err := b.catalog.PowerSupply(prefs.PowerSupplyType); err == nil {
			return ps.Watts
		}
	}
	return 60
}

// ledOverrideField returns the row's LED override field name, per its
// product schema.
func ledOverrideField(row model.Row) string {
	return fieldWithTemplate(row, TplLedOverride)
}

// ulOverrideField returns the row's UL override field name.
func ulOverrideField(row model.Row) string {
	return fieldWithTemplate(row, TplULOverride)
}

func fieldWithTemplate(row model.Row, template string) string {
	for _, fs := range SchemaFor(row.ProductTypeID, row.Kind) {
		if fs.Template == template {
			return fs.Field
		}
	}
	return ""
}

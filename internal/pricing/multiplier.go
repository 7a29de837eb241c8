package pricing

import (
	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/validate"
)

// EffectiveMultipliers resolves every Multiplier marker row against the
// ordered grid and returns each priceable row's composed multiplier.
//
// Each of a Multiplier row's three fields scans upward over the rows above
// it with a different stopping rule: the first field stops at the nearest
// preceding Divider, the second at the nearest preceding Subtotal, and the
// third covers all preceding rows. Overlapping scopes compose
// multiplicatively, both within one Multiplier row and across several.
// Marker rows are never multiplied; rows outside every scope map to 1.
func EffectiveMultipliers(rows []model.Row, results *validate.Results) map[string]float64 {
	multipliers := make(map[string]float64, len(rows))
	for _, row := range rows {
		if !row.Kind.IsMarker() {
			multipliers[row.ID] = 1
		}
	}

	for i, row := range rows {
		if row.Kind != model.RowMultiplier {
			continue
		}
		values := results.ParsedValues(row.ID)

		applyScope(rows, i, multipliers, values[validate.MultFieldDivider], model.RowDivider)
		applyScope(rows, i, multipliers, values[validate.MultFieldSubtotal], model.RowSubtotal)
		applyScope(rows, i, multipliers, values[validate.MultFieldAll], model.RowKind(-1))
	}
	return multipliers
}

// applyScope multiplies every priceable row above index i until a row of
// the bounding kind is reached. A kind no row can have makes the scope
// unbounded.
func applyScope(rows []model.Row, i int, multipliers map[string]float64, value validate.ParsedValue, bound model.RowKind) {
	if value.Kind != validate.ParsedNumber || value.Number <= 0 {
		return
	}
	for j := i - 1; j >= 0; j-- {
		if rows[j].Kind == bound {
			return
		}
		if rows[j].Kind.IsMarker() {
			continue
		}
		multipliers[rows[j].ID] *= value.Number
	}
}

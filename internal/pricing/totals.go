package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/validate"
)

// LineItem is one priced quote line after multiplier scopes are applied.
type LineItem struct {
	RowID       string
	Description string
	Quantity    int
	Multiplier  float64
	Pricing     Result
	Extended    decimal.Decimal
}

// Adjustment is a flat quote-level discount (negative) or fee (positive)
// carried by a DiscountFee marker row.
type Adjustment struct {
	RowID       string
	Description string
	Amount      decimal.Decimal
}

// SubtotalLine is the running total recorded at one Subtotal marker.
type SubtotalLine struct {
	RowID  string
	Amount decimal.Decimal
}

// QuoteTotals is the full rollup of a validated grid.
type QuoteTotals struct {
	Lines       []LineItem
	Adjustments []Adjustment
	Subtotals   []SubtotalLine
	Total       decimal.Decimal
}

// Rollup prices every row in grid order, applies multiplier scopes, and
// folds marker rows into quote-level totals. Subtotal markers record the
// running total since the previous Subtotal; DiscountFee markers adjust the
// grand total directly; the remaining markers only shape scopes.
func (r *Registry) Rollup(rows []model.Row, results *validate.Results, prefs model.CustomerPreferences) QuoteTotals {
	multipliers := EffectiveMultipliers(rows, results)

	var totals QuoteTotals
	running := decimal.Zero
	ulAbove := false

	for _, row := range rows {
		switch row.Kind {
		case model.RowSubtotal:
			totals.Subtotals = append(totals.Subtotals, SubtotalLine{RowID: row.ID, Amount: running})
			running = decimal.Zero
			continue
		case model.RowDiscountFee:
			if v, ok := results.ParsedValues(row.ID)["field1"]; ok && v.Kind == validate.ParsedNumber {
				amount := decimal.NewFromFloat(v.Number)
				totals.Adjustments = append(totals.Adjustments, Adjustment{
					RowID:       row.ID,
					Description: row.Field("field2"),
					Amount:      amount,
				})
				totals.Total = totals.Total.Add(amount)
			}
			continue
		}

		in := r.inputFor(row, results, prefs, ulAbove)
		res, priced := r.Calculate(in)
		if !priced {
			continue
		}
		if rowRequiresUL(row, in.CalculatedCells) {
			ulAbove = true
		}

		multiplier := multipliers[row.ID]
		extended := res.Subtotal.Mul(decimal.NewFromFloat(multiplier))

		totals.Lines = append(totals.Lines, LineItem{
			RowID:       row.ID,
			Description: lineDescription(row, res),
			Quantity:    in.Quantity,
			Multiplier:  multiplier,
			Pricing:     res,
			Extended:    extended,
		})
		running = running.Add(extended)
		totals.Total = totals.Total.Add(extended)
	}
	return totals
}

// inputFor assembles the calculator contract for one row from the
// validation results of the current pass.
func (r *Registry) inputFor(row model.Row, results *validate.Results, prefs model.CustomerPreferences, ulAbove bool) Input {
	quantity := 1
	parsed := results.ParsedValues(row.ID)
	if q, ok := parsed[model.FieldQuantity]; ok && q.Kind == validate.ParsedNumber && q.Number >= 1 {
		quantity = int(q.Number)
	}
	return Input{
		Row:             row,
		Quantity:        quantity,
		Parsed:          parsed,
		CalculatedCells: results.CalculatedCellValues(row.ID),
		Calculated:      results.Calculated[row.ID],
		HasErrors:       results.RowHasErrors(row.ID),
		Prefs:           prefs,
		ULExistsAbove:   ulAbove,
	}
}

func lineDescription(row model.Row, res Result) string {
	if res.Display != "" {
		return res.Display
	}
	return row.ProductTypeID
}

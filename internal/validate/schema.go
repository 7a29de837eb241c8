package validate

import "github.com/JonBeak/signquote/internal/model"

// Channel letter rows use a fixed field layout. The context builder and the
// pricing calculators address these fields by name.
const (
	CLFieldStyle       = "field1"
	CLFieldLetterData  = "field2"
	CLFieldLedOverride = "field3"
	CLFieldPsType      = "field4"
	CLFieldPsCount     = "field5"
	CLFieldUL          = "field6"
	CLFieldPins        = "field7"
	CLFieldExtraWire   = "field8"
	CLFieldPsPrice     = "field9"
	CLFieldNotes       = "field10"
)

// Multiplier marker rows carry three scope-bound multiplier values.
const (
	MultFieldDivider  = "field1" // Scope stops at the nearest preceding Divider
	MultFieldSubtotal = "field2" // Scope stops at the nearest preceding Subtotal
	MultFieldAll      = "field3" // Unbounded scope over all preceding rows
)

// FieldSchema binds one field of a product type to a validation template.
type FieldSchema struct {
	Field    string
	Label    string
	Template string
	Params   Params
	Required bool
}

// SchemaFor returns the field schemas for a row. Marker rows have their own
// layouts; unknown product types validate only their quantity.
func SchemaFor(productTypeID string, kind model.RowKind) []FieldSchema {
	switch kind {
	case model.RowMultiplier:
		return []FieldSchema{
			{Field: MultFieldDivider, Label: "Multiplier (to divider)", Template: TplMultiplierValue},
			{Field: MultFieldSubtotal, Label: "Multiplier (to subtotal)", Template: TplMultiplierValue},
			{Field: MultFieldAll, Label: "Multiplier (all above)", Template: TplMultiplierValue},
		}
	case model.RowDiscountFee:
		return []FieldSchema{
			{Field: "field1", Label: "Amount", Template: TplFloat,
				Params: Params{AllowNegative: true, DecimalPlaces: intPtr(2)}, Required: true},
			{Field: "field2", Label: "Description", Template: TplOptionalText},
		}
	case model.RowDivider, model.RowSubtotal, model.RowEmpty:
		return nil
	}

	quantity := FieldSchema{
		Field: model.FieldQuantity, Label: "Quantity", Template: TplQuantity, Required: true,
	}

	switch productTypeID {
	case model.ProductChannelLetters:
		return []FieldSchema{
			quantity,
			{Field: CLFieldStyle, Label: "Style", Template: TplRequired, Required: true},
			{Field: CLFieldLetterData, Label: "Letter Data", Template: TplChannelLetters, Required: true},
			{Field: CLFieldLedOverride, Label: "LEDs", Template: TplLedOverride},
			{Field: CLFieldPsType, Label: "PS Type", Template: TplPsType},
			{Field: CLFieldPsCount, Label: "PS Count", Template: TplPsCountOverride},
			{Field: CLFieldUL, Label: "UL", Template: TplULOverride},
			{Field: CLFieldPins, Label: "Pins", Template: TplPinFormula, Params: Params{AllowEmpty: true}},
			{Field: CLFieldExtraWire, Label: "Extra Wire (ft)", Template: TplFloat,
				Params: Params{AllowEmpty: true, MinValue: floatPtr(0)}},
			{Field: CLFieldPsPrice, Label: "PS Price", Template: TplPsPriceOverride},
			{Field: CLFieldNotes, Label: "Notes", Template: TplOptionalText},
		}
	case model.ProductVinyl:
		return []FieldSchema{
			quantity,
			{Field: "field1", Label: "Dimensions", Template: TplDimensions,
				Params: Params{MaxWidth: floatPtr(600), MaxHeight: floatPtr(600)}, Required: true},
			{Field: "field2", Label: "Colors", Template: TplTextSplit, Params: Params{Delimiter: ",", MaxParts: 6}},
			{Field: "field3", Label: "Application Fee", Template: TplFloat,
				Params: Params{AllowEmpty: true, MinValue: floatPtr(0), DecimalPlaces: intPtr(2)}},
		}
	case model.ProductSubstrate, model.ProductBackerPanel:
		return []FieldSchema{
			quantity,
			{Field: "field1", Label: "Material", Template: TplRequired, Required: true},
			{Field: "field2", Label: "Dimensions", Template: TplConditionalDims,
				Params: Params{
					ConditionField: "field1",
					Condition3D:    "extruded",
					Thickness:      2,
					MaxWidth:       floatPtr(240),
					MaxHeight:      floatPtr(120),
				}, Required: true},
			{Field: "field3", Label: "Double Sided", Template: TplYesNo, Params: Params{AllowEmpty: true}},
		}
	case model.ProductPushThru, model.ProductBladeSign:
		return []FieldSchema{
			quantity,
			{Field: "field1", Label: "Dimensions", Template: TplDimensions3D,
				Params: Params{MaxWidth: floatPtr(240), MaxHeight: floatPtr(120), MaxDepth: floatPtr(12)}, Required: true},
			{Field: "field2", Label: "LEDs", Template: TplLedOverride},
			{Field: "field3", Label: "UL", Template: TplULOverride},
		}
	case model.ProductShipping:
		return []FieldSchema{
			quantity,
			{Field: "field1", Label: "Multiplier", Template: TplMultiplierValue},
			{Field: "field2", Label: "Notes", Template: TplOptionalText},
		}
	default:
		return []FieldSchema{quantity}
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

package model

import (
	"fmt"

	"github.com/google/uuid"
)

// RowKind classifies a grid row.
type RowKind int

const (
	RowMain         RowKind = iota // A normal product row
	RowContinuation                // Continues the product of the previous main row
	RowSubItem                     // Child line under a main row
	RowMultiplier                  // Marker: multiplies preceding rows
	RowDivider                     // Marker: bounds field-1 multiplier scope
	RowSubtotal                    // Marker: bounds field-2 multiplier scope
	RowDiscountFee                 // Marker: flat discount or fee
	RowEmpty                       // Marker: spacing row
)

func (k RowKind) String() string {
	switch k {
	case RowContinuation:
		return "Continuation"
	case RowSubItem:
		return "SubItem"
	case RowMultiplier:
		return "Multiplier"
	case RowDivider:
		return "Divider"
	case RowSubtotal:
		return "Subtotal"
	case RowDiscountFee:
		return "DiscountFee"
	case RowEmpty:
		return "Empty"
	default:
		return "Main"
	}
}

// IsMarker reports whether the row only carries configuration for other
// rows and must never be rendered as a priced line item.
func (k RowKind) IsMarker() bool {
	switch k {
	case RowMultiplier, RowDivider, RowSubtotal, RowDiscountFee, RowEmpty:
		return true
	}
	return false
}

// Product type identifiers. Marker rows are addressed through RowKind, not
// through a product type.
const (
	ProductChannelLetters = "channel_letters"
	ProductVinyl          = "vinyl"
	ProductSubstrate      = "substrate_cut"
	ProductBackerPanel    = "backer_panel"
	ProductPushThru       = "push_thru"
	ProductBladeSign      = "blade_sign"
	ProductLEDNeon        = "led_neon"
	ProductPainting       = "painting"
	ProductCustom         = "custom"
	ProductShipping       = "shipping"
)

// FieldQuantity is the name of the quantity column in a row's field map.
// Data fields are named field1..field10 (see FieldName).
const (
	FieldQuantity = "quantity"
	FieldCount    = 10
)

// FieldName returns the canonical name for the nth data field (1-based).
func FieldName(n int) string {
	return fmt.Sprintf("field%d", n)
}

// Row is a single grid row. Raw data is always text; typed values only
// exist after validation.
type Row struct {
	ID            string            `json:"id"`
	ProductTypeID string            `json:"product_type_id,omitempty"`
	Kind          RowKind           `json:"kind"`
	ParentID      string            `json:"parent_id,omitempty"` // Set on continuation and sub-item rows
	Fields        map[string]string `json:"fields"`
}

// NewRow creates a main row of the given product type with an empty field map.
func NewRow(productTypeID string) Row {
	return Row{
		ID:            uuid.New().String()[:8],
		ProductTypeID: productTypeID,
		Kind:          RowMain,
		Fields:        map[string]string{},
	}
}

// NewMarkerRow creates a marker row of the given kind.
func NewMarkerRow(kind RowKind) Row {
	return Row{
		ID:     uuid.New().String()[:8],
		Kind:   kind,
		Fields: map[string]string{},
	}
}

// Field returns the raw text for a field name, or "" when unset.
func (r Row) Field(name string) string {
	return r.Fields[name]
}

// SetField stores raw text for a field, initializing the map if needed.
func (r *Row) SetField(name, value string) {
	if r.Fields == nil {
		r.Fields = map[string]string{}
	}
	r.Fields[name] = value
}

// CalculatedValues holds the derived quantities for one row. They are fully
// recomputed on every validation pass from raw data and preferences; nothing
// is patched incrementally.
type CalculatedValues struct {
	SavedLedCount   int                   `json:"saved_led_count"`   // Implied purely by geometry
	DefaultLedCount int                   `json:"default_led_count"` // Saved count gated by customer preference
	ActualLedCount  int                   `json:"actual_led_count"`  // Default count after explicit override
	SavedPsCount    int                   `json:"saved_ps_count"`
	DefaultPsCount  int                   `json:"default_ps_count"`
	TotalWattage    float64               `json:"total_wattage"`
	Metrics         *ChannelLetterMetrics `json:"metrics,omitempty"`
}

// ComponentItem is one priced component emitted by a pricing calculator.
type ComponentItem struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Type        string  `json:"type"`
	Calculation string  `json:"calculation,omitempty"` // Multi-line breakdown text
	// QuantityOverride fixes the billed quantity regardless of the parent
	// row quantity (UL certification is priced once per row).
	QuantityOverride *int `json:"quantity_override,omitempty"`
}

// PowerSupplySelection is the output of the power supply selector.
type PowerSupplySelection struct {
	Components []ComponentItem `json:"components"`
	TotalCount int             `json:"total_count"`
	Error      string          `json:"error,omitempty"` // Non-empty when the selection is unresolvable
}

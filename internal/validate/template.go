package validate

import "sort"

// Params configures a template for one field. Each template reads only the
// fields relevant to it; the rest are ignored.
type Params struct {
	// Numeric constraints
	AllowNegative bool
	AllowEmpty    bool
	MinValue      *float64
	MaxValue      *float64
	DecimalPlaces *int

	// Dimension bounds (inches)
	MaxWidth  *float64
	MaxHeight *float64
	MaxDepth  *float64

	// Conditional dimensions
	ConditionField string  // Field whose value selects the 2D or 3D branch
	Condition3D    string  // Value of ConditionField that selects the 3D branch
	Thickness      float64 // Flat adjustment added to both axes in the 3D branch

	// Text splitting
	Delimiter string
	MaxParts  int
}

// ParamSpec documents one accepted parameter of a template.
type ParamSpec struct {
	Name        string
	Type        string
	Description string
}

// Template validates one cell's raw text. Templates are pure functions of
// (value, params, context); all state lives in the context object rebuilt
// each pass.
type Template interface {
	Validate(raw string, params Params, ctx *Context) ValidationResult
	Describe() string
	ParameterSchema() []ParamSpec
}

// Template names. Dispatch goes through the registry rather than a switch
// over type ids, so each handler stays independently testable.
const (
	TplFloat           = "float"
	TplInteger         = "integer"
	TplQuantity        = "quantity"
	TplRequired        = "required"
	TplOptionalText    = "optional_text"
	TplYesNo           = "yes_no"
	TplTextSplit       = "text_split"
	TplDimensions      = "dimensions"
	TplDimensions3D    = "dimensions_3d"
	TplConditionalDims = "conditional_dimensions"
	TplPinFormula      = "pin_formula"
	TplChannelLetters  = "channel_letters"
	TplLedOverride     = "led_override"
	TplPsCountOverride = "ps_count_override"
	TplPsType          = "ps_type"
	TplPsPriceOverride = "ps_price_override"
	TplULOverride      = "ul_override"
	TplMultiplierValue = "multiplier"
)

// Registry maps template names to handlers.
type Registry struct {
	templates map[string]Template
}

// NewRegistry returns a registry with every built-in template registered.
func NewRegistry() *Registry {
	r := &Registry{templates: map[string]Template{}}
	r.Register(TplFloat, floatTemplate{})
	r.Register(TplInteger, integerTemplate{})
	r.Register(TplQuantity, quantityTemplate{})
	r.Register(TplRequired, requiredTemplate{})
	r.Register(TplOptionalText, optionalTextTemplate{})
	r.Register(TplYesNo, yesNoTemplate{})
	r.Register(TplTextSplit, textSplitTemplate{})
	r.Register(TplDimensions, dimensionsTemplate{})
	r.Register(TplDimensions3D, dimensions3DTemplate{})
	r.Register(TplConditionalDims, conditionalDimensionsTemplate{})
	r.Register(TplPinFormula, pinFormulaTemplate{})
	r.Register(TplChannelLetters, channelLettersTemplate{})
	r.Register(TplLedOverride, ledOverrideTemplate{})
	r.Register(TplPsCountOverride, psCountOverrideTemplate{})
	r.Register(TplPsType, psTypeTemplate{})
	r.Register(TplPsPriceOverride, psPriceOverrideTemplate{})
	r.Register(TplULOverride, ulOverrideTemplate{})
	r.Register(TplMultiplierValue, multiplierTemplate{})
	return r
}

// Register adds or replaces a template under a name.
func (r *Registry) Register(name string, t Template) {
	r.templates[name] = t
}

// Get returns the template registered under a name.
func (r *Registry) Get(name string) (Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Names returns all registered template names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

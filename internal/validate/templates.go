package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/JonBeak/signquote/internal/formula"
)

// splitDimensions splits "WxH" (or "WxHxD") into exactly n strictly parsed
// positive numbers. Malformed splits like "48xx24" fail on the empty part.
func splitDimensions(raw string, n int) ([]float64, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		return r == 'x' || r == 'X'
	})
	// FieldsFunc drops empty parts, so count separators to catch "48xx24"
	separators := strings.Count(strings.ToLower(raw), "x")
	if len(parts) != n || separators != n-1 {
		return nil, fmt.Errorf("expected %d values separated by 'x'", n)
	}

	values := make([]float64, n)
	for i, part := range parts {
		res := formula.ValidateNumeric(part, formula.NumericConstraints{})
		if !res.IsValid {
			return nil, fmt.Errorf("%s", res.Error)
		}
		if res.Value <= 0 {
			return nil, fmt.Errorf("dimensions must be positive")
		}
		values[i] = res.Value
	}
	return values, nil
}

func numericConstraints(p Params) formula.NumericConstraints {
	return formula.NumericConstraints{
		AllowNegative: p.AllowNegative,
		AllowEmpty:    p.AllowEmpty,
		MinValue:      p.MinValue,
		MaxValue:      p.MaxValue,
		DecimalPlaces: p.DecimalPlaces,
	}
}

var numericParamSchema = []ParamSpec{
	{Name: "allowNegative", Type: "bool", Description: "Accept negative values"},
	{Name: "allowEmpty", Type: "bool", Description: "Treat blank input as valid"},
	{Name: "minValue", Type: "float", Description: "Lower bound, inclusive"},
	{Name: "maxValue", Type: "float", Description: "Upper bound, inclusive"},
	{Name: "decimalPlaces", Type: "int", Description: "Max digits after the decimal point"},
}

type floatTemplate struct{}

func (floatTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	res := formula.ValidateNumeric(raw, numericConstraints(params))
	if !res.IsValid {
		return Invalid(res.Error, "a number, e.g. 12.5")
	}
	if res.IsEmpty {
		return Valid(EmptyValue())
	}
	return Valid(NumberValue(res.Value))
}

func (floatTemplate) Describe() string { return "A single numeric value" }

func (floatTemplate) ParameterSchema() []ParamSpec { return numericParamSchema }

type integerTemplate struct{}

func (integerTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	c := numericConstraints(params)
	zero := 0
	c.DecimalPlaces = &zero
	res := formula.ValidateNumeric(raw, c)
	if !res.IsValid {
		return Invalid(res.Error, "a whole number, e.g. 12")
	}
	if res.IsEmpty {
		return Valid(EmptyValue())
	}
	return Valid(NumberValue(res.Value))
}

func (integerTemplate) Describe() string { return "A whole number" }

func (integerTemplate) ParameterSchema() []ParamSpec { return numericParamSchema }

type quantityTemplate struct{}

func (quantityTemplate) Validate(raw string, _ Params, _ *Context) ValidationResult {
	zero := 0
	one := 1.0
	res := formula.ValidateNumeric(raw, formula.NumericConstraints{MinValue: &one, DecimalPlaces: &zero})
	if !res.IsValid {
		return Invalid(res.Error, "a whole number of 1 or more")
	}
	return Valid(NumberValue(res.Value))
}

func (quantityTemplate) Describe() string { return "Row quantity, a positive whole number" }

func (quantityTemplate) ParameterSchema() []ParamSpec { return nil }

type requiredTemplate struct{}

func (requiredTemplate) Validate(raw string, _ Params, _ *Context) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Invalid("value is required", "any non-empty text")
	}
	return Valid(LiteralValue(trimmed))
}

func (requiredTemplate) Describe() string { return "Any non-empty text" }

func (requiredTemplate) ParameterSchema() []ParamSpec { return nil }

type optionalTextTemplate struct{}

func (optionalTextTemplate) Validate(raw string, _ Params, _ *Context) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Valid(EmptyValue())
	}
	return Valid(LiteralValue(trimmed))
}

func (optionalTextTemplate) Describe() string { return "Optional free text" }

func (optionalTextTemplate) ParameterSchema() []ParamSpec { return nil }

type yesNoTemplate struct{}

func (yesNoTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "":
		if params.AllowEmpty {
			return Valid(EmptyValue())
		}
		return Invalid("value is required", "'yes' or 'no'")
	case "yes", "no":
		return Valid(LiteralValue(trimmed))
	}
	return Invalid(fmt.Sprintf("'%s' is not a yes/no value", strings.TrimSpace(raw)), "'yes' or 'no'")
}

func (yesNoTemplate) Describe() string { return "A yes/no toggle" }

func (yesNoTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{{Name: "allowEmpty", Type: "bool", Description: "Treat blank input as valid"}}
}

type textSplitTemplate struct{}

func (textSplitTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Valid(EmptyValue())
	}

	delimiter := params.Delimiter
	if delimiter == "" {
		delimiter = ","
	}

	var parts []string
	for _, part := range strings.Split(trimmed, delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			return Invalid("list contains an empty entry", fmt.Sprintf("values separated by '%s'", delimiter))
		}
		parts = append(parts, part)
	}
	if params.MaxParts > 0 && len(parts) > params.MaxParts {
		return Invalid(fmt.Sprintf("at most %d entries allowed, got %d", params.MaxParts, len(parts)),
			fmt.Sprintf("up to %d values separated by '%s'", params.MaxParts, delimiter))
	}
	return Valid(PartsValue(parts))
}

func (textSplitTemplate) Describe() string { return "A delimited list of text entries" }

func (textSplitTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{
		{Name: "delimiter", Type: "string", Description: "List separator, default ','"},
		{Name: "maxParts", Type: "int", Description: "Maximum number of entries"},
	}
}

type dimensionsTemplate struct{}

func (dimensionsTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	dims, err := splitDimensions(raw, 2)
	if err != nil {
		return Invalid(err.Error(), "width x height, e.g. 48x24")
	}
	if r := checkDimensionBounds(dims[0], dims[1], params.MaxWidth, params.MaxHeight); r != nil {
		return *r
	}
	return Valid(NumbersValue(dims...))
}

func (dimensionsTemplate) Describe() string { return "Two dimensions as width x height" }

func (dimensionsTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{
		{Name: "maxWidth", Type: "float", Description: "Maximum width in inches"},
		{Name: "maxHeight", Type: "float", Description: "Maximum height in inches"},
	}
}

type dimensions3DTemplate struct{}

func (dimensions3DTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	dims, err := splitDimensions(raw, 3)
	if err != nil {
		return Invalid(err.Error(), "width x height x depth, e.g. 48x24x4")
	}
	if r := checkDimensionBounds(dims[0], dims[1], params.MaxWidth, params.MaxHeight); r != nil {
		return *r
	}
	if params.MaxDepth != nil && dims[2] > *params.MaxDepth {
		return Invalid(fmt.Sprintf("depth %g exceeds maximum %g", dims[2], *params.MaxDepth),
			"width x height x depth")
	}
	return Valid(NumbersValue(dims...))
}

func (dimensions3DTemplate) Describe() string { return "Three dimensions as width x height x depth" }

func (dimensions3DTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{
		{Name: "maxWidth", Type: "float", Description: "Maximum width in inches"},
		{Name: "maxHeight", Type: "float", Description: "Maximum height in inches"},
		{Name: "maxDepth", Type: "float", Description: "Maximum depth in inches"},
	}
}

// conditionalDimensionsTemplate parses 2 or 3 numbers depending on another
// field's value. The 3D branch adds a flat thickness to both axes and
// normalizes so the larger adjusted dimension is checked against the
// horizontal bound.
type conditionalDimensionsTemplate struct{}

func (conditionalDimensionsTemplate) Validate(raw string, params Params, ctx *Context) ValidationResult {
	condition := strings.TrimSpace(ctx.Field(params.ConditionField))
	if condition == "" {
		return Invalid(fmt.Sprintf("requires %s to be set first", params.ConditionField),
			"set the material field before the dimensions")
	}

	if strings.EqualFold(condition, params.Condition3D) {
		dims, err := splitDimensions(raw, 3)
		if err != nil {
			return Invalid(err.Error(), "width x height x depth, e.g. 48x24x4")
		}
		adjustedW := dims[0] + params.Thickness
		adjustedH := dims[1] + params.Thickness
		larger := math.Max(adjustedW, adjustedH)
		smaller := math.Min(adjustedW, adjustedH)
		if params.MaxWidth != nil && larger > *params.MaxWidth {
			return Invalid(fmt.Sprintf("adjusted size %g exceeds maximum %g", larger, *params.MaxWidth),
				"width x height x depth")
		}
		if params.MaxHeight != nil && smaller > *params.MaxHeight {
			return Invalid(fmt.Sprintf("adjusted size %g exceeds maximum %g", smaller, *params.MaxHeight),
				"width x height x depth")
		}
		return Valid(NumbersValue(dims...))
	}

	dims, err := splitDimensions(raw, 2)
	if err != nil {
		return Invalid(err.Error(), "width x height, e.g. 48x24")
	}
	if r := checkDimensionBounds(dims[0], dims[1], params.MaxWidth, params.MaxHeight); r != nil {
		return *r
	}
	return Valid(NumbersValue(dims...))
}

func (conditionalDimensionsTemplate) Describe() string {
	return "Dimensions whose arity depends on another field"
}

func (conditionalDimensionsTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{
		{Name: "conditionField", Type: "string", Description: "Field whose value selects the branch"},
		{Name: "condition3D", Type: "string", Description: "Condition value that selects the 3D branch"},
		{Name: "thickness", Type: "float", Description: "Flat adjustment added to both axes in the 3D branch"},
		{Name: "maxWidth", Type: "float", Description: "Horizontal bound"},
		{Name: "maxHeight", Type: "float", Description: "Vertical bound"},
	}
}

type pinFormulaTemplate struct{}

func (pinFormulaTemplate) Validate(raw string, params Params, _ *Context) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if params.AllowEmpty {
			return Valid(EmptyValue())
		}
		return Invalid("value is required", "a count or formula, e.g. 50 + 25x9")
	}

	value, err := formula.EvaluateArithmetic(trimmed)
	if err != nil {
		return Invalid(err.Error(), "a count or formula, e.g. 50 + 25x9")
	}
	if value < 0 {
		return Invalid("pin count cannot be negative", "a count or formula, e.g. 50 + 25x9")
	}
	return ValidWithCalc(LiteralValue(trimmed), NumberValue(value))
}

func (pinFormulaTemplate) Describe() string { return "A pin count or arithmetic formula" }

func (pinFormulaTemplate) ParameterSchema() []ParamSpec {
	return []ParamSpec{{Name: "allowEmpty", Type: "bool", Description: "Treat blank input as valid"}}
}

type channelLettersTemplate struct{}

func (channelLettersTemplate) Validate(raw string, _ Params, _ *Context) ValidationResult {
	m, err := formula.ParseChannelLetterValue(raw)
	if err != nil {
		return Invalid(err.Error(), "dimensions formula (48x48*12 + 30), grouped lists (12,15..7,8), or linear inches")
	}
	return Valid(MetricsValue(m))
}

func (channelLettersTemplate) Describe() string { return "Channel letter sizing data" }

func (channelLettersTemplate) ParameterSchema() []ParamSpec { return nil }

func checkDimensionBounds(w, h float64, maxW, maxH *float64) *ValidationResult {
	if maxW != nil && w > *maxW {
		r := Invalid(fmt.Sprintf("width %g exceeds maximum %g", w, *maxW), "width x height")
		return &r
	}
	if maxH != nil && h > *maxH {
		r := Invalid(fmt.Sprintf("height %g exceeds maximum %g", h, *maxH), "width x height")
		return &r
	}
	return nil
}

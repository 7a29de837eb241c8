package validate

import (
	"testing"

	"github.com/JonBeak/signquote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateWith(t *testing.T, name, raw string, params Params, ctx *Context) ValidationResult {
	t.Helper()
	tpl, ok := NewRegistry().Get(name)
	require.True(t, ok, "template %s not registered", name)
	return tpl.Validate(raw, params, ctx)
}

func TestRegistryHasAllTemplates(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, r.Names(), 18)
	for _, name := range r.Names() {
		tpl, ok := r.Get(name)
		require.True(t, ok)
		assert.NotEmpty(t, tpl.Describe(), "template %s has no description", name)
	}
}

func TestFloatTemplate(t *testing.T) {
	res := validateWith(t, TplFloat, "12.5", Params{}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, ParsedNumber, res.Parsed.Kind)
	assert.Equal(t, 12.5, res.Parsed.Number)

	res = validateWith(t, TplFloat, "12abc", Params{}, nil)
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.ExpectedFormat)

	res = validateWith(t, TplFloat, "", Params{AllowEmpty: true}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, ParsedEmpty, res.Parsed.Kind)
}

func TestQuantityTemplate(t *testing.T) {
	res := validateWith(t, TplQuantity, "3", Params{}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, 3.0, res.Parsed.Number)

	for _, bad := range []string{"0", "-1", "2.5", "", "abc"} {
		res := validateWith(t, TplQuantity, bad, Params{}, nil)
		assert.False(t, res.IsValid, "quantity %q should fail", bad)
	}
}

func TestDimensionsTemplate(t *testing.T) {
	res := validateWith(t, TplDimensions, "48x24", Params{}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, []float64{48, 24}, res.Parsed.Numbers)

	res = validateWith(t, TplDimensions, "48X24", Params{}, nil)
	assert.True(t, res.IsValid, "uppercase X separator should parse")

	for _, bad := range []string{"48xx24", "48", "48x24x12", "48x", "axb", "48x-4"} {
		res := validateWith(t, TplDimensions, bad, Params{}, nil)
		assert.False(t, res.IsValid, "dimensions %q should fail", bad)
	}
}

func TestDimensionsTemplateBounds(t *testing.T) {
	params := Params{MaxWidth: floatPtr(100), MaxHeight: floatPtr(50)}
	assert.True(t, validateWith(t, TplDimensions, "100x50", params, nil).IsValid)
	assert.False(t, validateWith(t, TplDimensions, "101x50", params, nil).IsValid)
	assert.False(t, validateWith(t, TplDimensions, "100x51", params, nil).IsValid)
}

func TestDimensions3DTemplate(t *testing.T) {
	res := validateWith(t, TplDimensions3D, "48x24x4", Params{MaxDepth: floatPtr(12)}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, []float64{48, 24, 4}, res.Parsed.Numbers)

	assert.False(t, validateWith(t, TplDimensions3D, "48x24", Params{}, nil).IsValid)
	assert.False(t, validateWith(t, TplDimensions3D, "48x24x14", Params{MaxDepth: floatPtr(12)}, nil).IsValid)
}

func conditionalCtx(material string) *Context {
	row := model.NewRow(model.ProductSubstrate)
	row.SetField("field1", material)
	return &Context{Row: row}
}

func TestConditionalDimensionsRequiresCondition(t *testing.T) {
	params := Params{ConditionField: "field1", Condition3D: "extruded"}
	res := validateWith(t, TplConditionalDims, "48x24", params, conditionalCtx(""))
	require.False(t, res.IsValid)
	assert.Contains(t, res.Error, "field1")
}

func TestConditionalDimensionsBranches(t *testing.T) {
	params := Params{
		ConditionField: "field1",
		Condition3D:    "extruded",
		Thickness:      2,
		MaxWidth:       floatPtr(100),
		MaxHeight:      floatPtr(50),
	}

	// 2D branch
	res := validateWith(t, TplConditionalDims, "90x40", params, conditionalCtx("flat"))
	require.True(t, res.IsValid)
	assert.Len(t, res.Parsed.Numbers, 2)
	assert.False(t, validateWith(t, TplConditionalDims, "90x40x2", params, conditionalCtx("flat")).IsValid)

	// 3D branch parses three values and adds the thickness to both axes
	res = validateWith(t, TplConditionalDims, "90x40x3", params, conditionalCtx("extruded"))
	require.True(t, res.IsValid)
	assert.Len(t, res.Parsed.Numbers, 3)

	// 99 + 2 = 101 exceeds the horizontal bound
	assert.False(t, validateWith(t, TplConditionalDims, "99x40x3", params, conditionalCtx("extruded")).IsValid)

	// Axis normalization: 40x99 has the larger adjusted dimension (101)
	// checked against the horizontal bound, not the vertical one
	assert.False(t, validateWith(t, TplConditionalDims, "40x99x3", params, conditionalCtx("extruded")).IsValid)

	// 49 + 2 = 51 exceeds the vertical bound for the smaller axis
	assert.False(t, validateWith(t, TplConditionalDims, "90x49x3", params, conditionalCtx("extruded")).IsValid)
}

func TestTextSplitTemplate(t *testing.T) {
	res := validateWith(t, TplTextSplit, "red, white, blue", Params{MaxParts: 3}, nil)
	require.True(t, res.IsValid)
	assert.Equal(t, []string{"red", "white", "blue"}, res.Parsed.Parts)

	assert.False(t, validateWith(t, TplTextSplit, "red,,blue", Params{}, nil).IsValid)
	assert.False(t, validateWith(t, TplTextSplit, "a,b,c,d", Params{MaxParts: 3}, nil).IsValid)
	assert.True(t, validateWith(t, TplTextSplit, "", Params{}, nil).IsValid)
}

func TestPinFormulaTemplate(t *testing.T) {
	res := validateWith(t, TplPinFormula, "50 + 25x9", Params{}, nil)
	require.True(t, res.IsValid)
	require.NotNil(t, res.Calculated)
	assert.Equal(t, 275.0, res.Calculated.Number)

	res = validateWith(t, TplPinFormula, "", Params{AllowEmpty: true}, nil)
	assert.True(t, res.IsValid)

	assert.False(t, validateWith(t, TplPinFormula, "10/0", Params{}, nil).IsValid)
	assert.False(t, validateWith(t, TplPinFormula, "", Params{}, nil).IsValid)
}

func TestChannelLettersTemplate(t *testing.T) {
	res := validateWith(t, TplChannelLetters, "10x5 + 30", Params{}, nil)
	require.True(t, res.IsValid)
	require.NotNil(t, res.Parsed.Metrics)
	assert.Equal(t, 2, res.Parsed.Metrics.PieceCount())

	assert.False(t, validateWith(t, TplChannelLetters, "garbage", Params{}, nil).IsValid)
}

func TestYesNoTemplate(t *testing.T) {
	assert.True(t, validateWith(t, TplYesNo, "Yes", Params{}, nil).IsValid)
	assert.True(t, validateWith(t, TplYesNo, "no", Params{}, nil).IsValid)
	assert.False(t, validateWith(t, TplYesNo, "maybe", Params{}, nil).IsValid)
	assert.False(t, validateWith(t, TplYesNo, "", Params{}, nil).IsValid)
	assert.True(t, validateWith(t, TplYesNo, "", Params{AllowEmpty: true}, nil).IsValid)
}

package formula

import "testing"

func TestValidateNumericStrictRejection(t *testing.T) {
	bad := []string{"12abc", "1e5", ".5", ".5.5", "1.2.3", "--4", "12 34", "abc"}
	for _, input := range bad {
		res := ValidateNumeric(input, NumericConstraints{AllowNegative: true})
		if res.IsValid {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

func TestValidateNumericAccepts(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"12", 12},
		{"0", 0},
		{"3.75", 3.75},
		{" 42 ", 42},
		{"-8", -8},
	}
	for _, c := range cases {
		res := ValidateNumeric(c.input, NumericConstraints{AllowNegative: true})
		if !res.IsValid {
			t.Errorf("expected %q to be valid, got error %q", c.input, res.Error)
			continue
		}
		if res.Value != c.want {
			t.Errorf("%q: expected %g, got %g", c.input, c.want, res.Value)
		}
	}
}

func TestValidateNumericNegativeRejectedByDefault(t *testing.T) {
	res := ValidateNumeric("-5", NumericConstraints{})
	if res.IsValid {
		t.Error("expected negative value to be rejected without AllowNegative")
	}
}

func TestValidateNumericRange(t *testing.T) {
	c := NumericConstraints{MinValue: Float64Ptr(1), MaxValue: Float64Ptr(100)}
	if res := ValidateNumeric("0.5", c); res.IsValid {
		t.Error("expected below-min value to be rejected")
	}
	if res := ValidateNumeric("101", c); res.IsValid {
		t.Error("expected above-max value to be rejected")
	}
	if res := ValidateNumeric("100", c); !res.IsValid {
		t.Errorf("expected boundary value to be valid, got %q", res.Error)
	}
}

func TestValidateNumericDecimalPlaces(t *testing.T) {
	c := NumericConstraints{DecimalPlaces: IntPtr(2)}
	if res := ValidateNumeric("1.234", c); res.IsValid {
		t.Error("expected 3 decimal places to overflow a 2-place limit")
	}
	if res := ValidateNumeric("1.23", c); !res.IsValid {
		t.Errorf("expected 2 decimal places to be valid, got %q", res.Error)
	}

	whole := NumericConstraints{DecimalPlaces: IntPtr(0)}
	if res := ValidateNumeric("3.1", whole); res.IsValid {
		t.Error("expected decimal to be rejected with 0-place limit")
	}
}

func TestValidateNumericEmpty(t *testing.T) {
	if res := ValidateNumeric("  ", NumericConstraints{}); res.IsValid {
		t.Error("expected empty input to be rejected by default")
	}
	res := ValidateNumeric("", NumericConstraints{AllowEmpty: true})
	if !res.IsValid || !res.IsEmpty {
		t.Error("expected empty input to be valid and flagged empty with AllowEmpty")
	}
}

package model

import (
	"testing"
)

func TestRowKindString(t *testing.T) {
	cases := map[RowKind]string{
		RowMain:         "Main",
		RowContinuation: "Continuation",
		RowSubItem:      "SubItem",
		RowMultiplier:   "Multiplier",
		RowDivider:      "Divider",
		RowSubtotal:     "Subtotal",
		RowDiscountFee:  "DiscountFee",
		RowEmpty:        "Empty",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("RowKind(%d).String() = %s, want %s", kind, got, want)
		}
	}
}

func TestRowKindIsMarker(t *testing.T) {
	markers := []RowKind{RowMultiplier, RowDivider, RowSubtotal, RowDiscountFee, RowEmpty}
	for _, kind := range markers {
		if !kind.IsMarker() {
			t.Errorf("expected %s to be a marker", kind)
		}
	}
	for _, kind := range []RowKind{RowMain, RowContinuation, RowSubItem} {
		if kind.IsMarker() {
			t.Errorf("expected %s not to be a marker", kind)
		}
	}
}

func TestNewRowAssignsID(t *testing.T) {
	a := NewRow(ProductChannelLetters)
	b := NewRow(ProductChannelLetters)

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected rows to get ids")
	}
	if a.ID == b.ID {
		t.Error("expected distinct row ids")
	}
	if a.Kind != RowMain {
		t.Errorf("expected new rows to be main rows, got %s", a.Kind)
	}
	if a.ProductTypeID != ProductChannelLetters {
		t.Errorf("unexpected product type %s", a.ProductTypeID)
	}
}

func TestNewMarkerRowHasNoProduct(t *testing.T) {
	row := NewMarkerRow(RowSubtotal)
	if row.ProductTypeID != "" {
		t.Errorf("marker rows carry no product type, got %s", row.ProductTypeID)
	}
	if row.Kind != RowSubtotal {
		t.Errorf("expected Subtotal kind, got %s", row.Kind)
	}
}

func TestRowFieldRoundTrip(t *testing.T) {
	row := NewRow(ProductVinyl)
	row.SetField("field1", "3m vinyl")

	if got := row.Field("field1"); got != "3m vinyl" {
		t.Errorf("expected field value back, got %q", got)
	}
	if got := row.Field("field2"); got != "" {
		t.Errorf("expected empty string for unset field, got %q", got)
	}
}

func TestSetFieldInitializesNilMap(t *testing.T) {
	var row Row
	row.SetField(FieldQuantity, "2")
	if row.Field(FieldQuantity) != "2" {
		t.Error("SetField should work on a zero-value row")
	}
}

func TestFieldName(t *testing.T) {
	if got := FieldName(1); got != "field1" {
		t.Errorf("FieldName(1) = %s", got)
	}
	if got := FieldName(FieldCount); got != "field10" {
		t.Errorf("FieldName(10) = %s", got)
	}
}

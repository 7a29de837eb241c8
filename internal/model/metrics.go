package model

// LetterPiece is one letter or shape in a channel letter set.
type LetterPiece struct {
	LinearInches float64 `json:"linear_inches"`
	LedCount     int     `json:"led_count"`
}

// ChannelLetterMetrics is the parsed geometry of a channel letter entry.
// It is either an expanded per-piece list or a single scalar fallback when
// the input was a bare linear-inch total.
type ChannelLetterMetrics struct {
	Pieces []LetterPiece `json:"pieces,omitempty"`
	Scalar float64       `json:"scalar,omitempty"` // Used when Pieces is empty
}

// TotalWidth returns the summed linear inches across all pieces, or the
// scalar fallback.
func (m ChannelLetterMetrics) TotalWidth() float64 {
	if len(m.Pieces) == 0 {
		return m.Scalar
	}
	var total float64
	for _, p := range m.Pieces {
		total += p.LinearInches
	}
	return total
}

// TotalPerimeter returns the same value as TotalWidth. Perimeter has never
// been tracked separately from linear inches; downstream calculators rely
// on the equality, so it stays an alias until product confirms otherwise.
func (m ChannelLetterMetrics) TotalPerimeter() float64 {
	return m.TotalWidth()
}

// LedCount returns the summed LED count across all pieces.
func (m ChannelLetterMetrics) LedCount() int {
	var total int
	for _, p := range m.Pieces {
		total += p.LedCount
	}
	return total
}

// PieceCount returns the number of pieces, or 1 for a scalar entry with a
// positive value.
func (m ChannelLetterMetrics) PieceCount() int {
	if len(m.Pieces) > 0 {
		return len(m.Pieces)
	}
	if m.Scalar > 0 {
		return 1
	}
	return 0
}

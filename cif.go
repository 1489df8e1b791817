package vita49

// Cif is a raw 32-bit context indicator field. Each set bit declares the
// presence of one typed field that follows in the canonical high-to-low
// bit order. Bits with no field assigned in the active CIF are reserved;
// this module's field records (Cif0Fields etc.) derive the indicator word
// from which typed fields are non-nil rather than storing the raw decoded
// word, so reserved bits are dropped on a decode/encode round trip, not
// preserved (§9 "Open question — reserved bits", decided in DESIGN.md).
type Cif uint32

// Bit reports whether bit n (0-31) is set.
func (c Cif) Bit(n uint) bool {
	return c&(1<<n) != 0
}

// WithBit returns c with bit n set to v.
func (c Cif) WithBit(n uint, v bool) Cif {
	if v {
		return c | (1 << n)
	}
	return c &^ (1 << n)
}

// Popcount returns the number of set bits.
func (c Cif) Popcount() int {
	return popcount32(uint32(c))
}

// Empty reports whether the whole indicator word is zero.
func (c Cif) Empty() bool {
	return c == 0
}

package vita49

import "testing"

func TestCifBitWithBit(t *testing.T) {
	var c Cif
	c = c.WithBit(31, true)
	c = c.WithBit(0, true)
	if !c.Bit(31) || !c.Bit(0) {
		t.Fatalf("expected bits 31 and 0 set, got %#032b", uint32(c))
	}
	if c.Bit(15) {
		t.Errorf("bit 15 unexpectedly set")
	}
	if c.Popcount() != 2 {
		t.Errorf("Popcount() = %d, want 2", c.Popcount())
	}
	c = c.WithBit(31, false)
	if c.Bit(31) {
		t.Errorf("bit 31 still set after WithBit(31, false)")
	}
}

func TestCifEmpty(t *testing.T) {
	var c Cif
	if !c.Empty() {
		t.Errorf("zero Cif should be Empty")
	}
	c = c.WithBit(5, true)
	if c.Empty() {
		t.Errorf("non-zero Cif should not be Empty")
	}
}

func TestCif7NumAttributes(t *testing.T) {
	var c Cif7
	c = c.WithBit(Cif7BitCurrent, true)
	if got := c.NumAttributes(); got != 0 {
		t.Errorf("current-only Cif7.NumAttributes() = %d, want 0", got)
	}
	c = c.WithBit(Cif7BitMean, true)
	c = c.WithBit(Cif7BitMax, true)
	if got := c.NumAttributes(); got != 2 {
		t.Errorf("NumAttributes() = %d, want 2", got)
	}
}

func TestCif7AttributesRoundTripPlainCodec(t *testing.T) {
	active := Cif7(0).WithBit(Cif7BitMean, true).WithBit(Cif7BitMax, true)
	in := &Cif7Attributes{}
	mean, max := 12.0, 99.0
	in.Mean = &mean
	in.Max = &max

	codec := plainWordCodec("reference_point_id")
	b, err := encodeCif7Attributes(nil, active, in, "reference_point_id", codec)
	if err != nil {
		t.Fatalf("encodeCif7Attributes: %v", err)
	}
	if len(b) != codec.words*active.NumAttributes()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), codec.words*active.NumAttributes()*4)
	}
	out, n := decodeCif7Attributes(b, 0, active, codec)
	if n != len(b) {
		t.Fatalf("decodeCif7Attributes consumed %d bytes, want %d", n, len(b))
	}
	if out.Mean == nil || *out.Mean != mean {
		t.Errorf("Mean = %v, want %v", out.Mean, mean)
	}
	if out.Max == nil || *out.Max != max {
		t.Errorf("Max = %v, want %v", out.Max, max)
	}
	if out.Median != nil {
		t.Errorf("Median should be unset, got %v", out.Median)
	}
}

func TestCif7AttributesEmissionOrder(t *testing.T) {
	// FirstSample must be written before Mean, per cif7EmissionOrder,
	// regardless of declaration order in Cif7Attributes.
	active := Cif7(0).WithBit(Cif7BitFirstSample, true).WithBit(Cif7BitMean, true)
	in := &Cif7Attributes{}
	first, mean := 1.0, 2.0
	in.FirstSample = &first
	in.Mean = &mean

	codec := plainWordCodec("x")
	b, err := encodeCif7Attributes(nil, active, in, "x", codec)
	if err != nil {
		t.Fatalf("encodeCif7Attributes: %v", err)
	}
	if got := readInt32(b, 0); got != 1 {
		t.Errorf("first word = %d, want 1 (FirstSample)", got)
	}
	if got := readInt32(b, 4); got != 2 {
		t.Errorf("second word = %d, want 2 (Mean)", got)
	}
}

func TestFieldWordCodecWidths(t *testing.T) {
	if radixU64Codec("x").words != 2 {
		t.Errorf("radixU64Codec width = %d, want 2", radixU64Codec("x").words)
	}
	if radixI64Codec("x").words != 2 {
		t.Errorf("radixI64Codec width = %d, want 2", radixI64Codec("x").words)
	}
	if plainWordCodec("x").words != 1 {
		t.Errorf("plainWordCodec width = %d, want 1", plainWordCodec("x").words)
	}
}

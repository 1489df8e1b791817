package vita49

// Context is the CIF-bearing container shared by Context packets, Control
// command payloads and QueryAck command payloads (§3 "Control and
// QueryAck share this exact container"). Go struct embedding reproduces
// the source's trait-based sharing of CIF0 manipulation behavior: a type
// that embeds Context gets every CIF accessor promoted automatically.
//
// Wire layout: CIF0 indicator word, then (if enabled) CIF1, CIF2, CIF3,
// CIF7 indicator words in that order, then the CIF0 data fields in
// canonical high-to-low bit order (each optionally followed by its CIF7
// attribute vector), then the CIF1, CIF2 and CIF3 data fields in turn
// (§6 "CIF0, optional CIF1/2/3/7 in that order, then the data fields").
type Context struct {
	Cif0 Cif0Fields
	Cif1 *Cif1Fields
	Cif2 *Cif2Fields
	Cif3 *Cif3Fields
	Cif7 *Cif7
}

// EnableCif7 turns on field-attribute reporting with the given attribute
// bits (see cif7.go for the bit constants).
func (c *Context) EnableCif7(bits Cif7) { c.Cif7 = &bits }

// DisableCif7 turns field-attribute reporting back off.
func (c *Context) DisableCif7() { c.Cif7 = nil }

func (c *Context) cif0Indicator() Cif {
	ind := c.Cif0.indicator()
	ind = ind.WithBit(Cif0BitCif1Enabled, c.Cif1 != nil)
	ind = ind.WithBit(Cif0BitCif2Enabled, c.Cif2 != nil)
	ind = ind.WithBit(Cif0BitCif3Enabled, c.Cif3 != nil)
	ind = ind.WithBit(Cif0BitField7Enabled, c.Cif7 != nil)
	return ind
}

func (c *Context) sizeWords() int {
	n := 1 + c.Cif0.sizeWords(c.Cif7)
	if c.Cif1 != nil {
		n += 1 + c.Cif1.sizeWords()
	}
	if c.Cif2 != nil {
		n += 1 + c.Cif2.sizeWords()
	}
	if c.Cif3 != nil {
		n += 1 + c.Cif3.sizeWords()
	}
	if c.Cif7 != nil {
		n += 1
	}
	return n
}

func (c *Context) encode(b []byte) ([]byte, error) {
	b = appendUint32(b, uint32(c.cif0Indicator()))
	if c.Cif1 != nil {
		b = appendUint32(b, uint32(c.Cif1.indicator()))
	}
	if c.Cif2 != nil {
		b = appendUint32(b, uint32(c.Cif2.indicator()))
	}
	if c.Cif3 != nil {
		b = appendUint32(b, uint32(c.Cif3.indicator()))
	}
	if c.Cif7 != nil {
		b = appendUint32(b, uint32(*c.Cif7))
	}
	var err error
	if b, err = c.Cif0.encode(b, c.Cif7); err != nil {
		return nil, err
	}
	if c.Cif1 != nil {
		if b, err = c.Cif1.encode(b); err != nil {
			return nil, err
		}
	}
	if c.Cif2 != nil {
		b = c.Cif2.encode(b)
	}
	if c.Cif3 != nil {
		if b, err = c.Cif3.encode(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeContext(b []byte, off int) (*Context, int, error) {
	cur := off
	cif0Indicator := Cif(readUint32(b, cur))
	cur += 4

	var cif1Indicator, cif2Indicator, cif3Indicator Cif
	haveCif1 := cif1Enabled(cif0Indicator)
	haveCif2 := cif2Enabled(cif0Indicator)
	haveCif3 := cif3Enabled(cif0Indicator)
	haveCif7 := cif7Enabled(cif0Indicator)

	if haveCif1 {
		cif1Indicator = Cif(readUint32(b, cur))
		cur += 4
	}
	if haveCif2 {
		cif2Indicator = Cif(readUint32(b, cur))
		cur += 4
	}
	if haveCif3 {
		cif3Indicator = Cif(readUint32(b, cur))
		cur += 4
	}
	var cif7 *Cif7
	if haveCif7 {
		v := Cif7(readUint32(b, cur))
		cur += 4
		cif7 = &v
	}

	fields, n, err := decodeCif0Fields(b, cur, cif0Indicator, cif7)
	if err != nil {
		return nil, 0, err
	}
	cur += n

	out := &Context{Cif0: *fields, Cif7: cif7}
	if haveCif1 {
		cif1, n := decodeCif1Fields(b, cur, cif1Indicator)
		cur += n
		out.Cif1 = cif1
	}
	if haveCif2 {
		cif2, n := decodeCif2Fields(b, cur, cif2Indicator)
		cur += n
		out.Cif2 = cif2
	}
	if haveCif3 {
		cif3, n := decodeCif3Fields(b, cur, cif3Indicator)
		cur += n
		out.Cif3 = cif3
	}
	return out, cur - off, nil
}

package vita49

// Cif7 is the field-attributes indicator, enabled by CIF0 bit 7. Each bit
// names one kind of attribute copy that may follow a base field's value;
// the bit order below is the declaration order named in the glossary
// ("current, mean, median, standard-deviation, max, min, precision,
// accuracy, first-sample, second-sample-valid"), assigned to bits 31
// downward exactly as CIF0's own field bits are assigned high-to-low.
//
// Declaration order is NOT emission order: the wire order of attribute
// copies that follow a base field is fixed independently by the standard
// and implemented in cif7EmissionOrder below (§4.4).
type Cif7 uint32

const (
	Cif7BitCurrent           = 31
	Cif7BitMean              = 30
	Cif7BitMedian            = 29
	Cif7BitStandardDeviation = 28
	Cif7BitMax               = 27
	Cif7BitMin               = 26
	Cif7BitPrecision         = 25
	Cif7BitAccuracy          = 24
	Cif7BitFirstSample       = 23
	Cif7BitSecondSampleValid = 22
)

func (c Cif7) Bit(n uint) bool             { return Cif(c).Bit(n) }
func (c Cif7) WithBit(n uint, v bool) Cif7 { return Cif7(Cif(c).WithBit(n, v)) }

// NumAttributes returns the number of attribute copies that follow every
// present field when this Cif7 is active: the popcount of all bits
// except "current", which denotes the base value itself rather than an
// extra entry (§3 invariant 4).
func (c Cif7) NumAttributes() int {
	withoutCurrent := c.WithBit(Cif7BitCurrent, false)
	return Cif(withoutCurrent).Popcount()
}

// Cif7Attributes holds the attribute copies attached to one CIF0 field
// when CIF7 is active, in the field's own natural unit (Hz, dB, ...).
// Only the entries whose Cif7 bit is set are populated; emission order on
// the wire is fixed by cif7EmissionOrder, not by the order fields are
// listed here.
type Cif7Attributes struct {
	FirstSample       *float64
	SecondSampleValid *float64
	Mean              *float64
	Median            *float64
	StandardDeviation *float64
	Max               *float64
	Min               *float64
	Precision         *float64
	Accuracy          *float64
}

type cif7Slot struct {
	bit uint
	get func(*Cif7Attributes) *float64
	set func(*Cif7Attributes, float64)
}

// cif7EmissionOrder is the fixed wire order attribute copies are written
// in, per §4.4: first-sample, second-sample, [current: no extra entry],
// mean, median, standard-deviation, max, min, precision, accuracy.
var cif7EmissionOrder = []cif7Slot{
	{Cif7BitFirstSample, func(a *Cif7Attributes) *float64 { return a.FirstSample }, func(a *Cif7Attributes, v float64) { a.FirstSample = &v }},
	{Cif7BitSecondSampleValid, func(a *Cif7Attributes) *float64 { return a.SecondSampleValid }, func(a *Cif7Attributes, v float64) { a.SecondSampleValid = &v }},
	{Cif7BitMean, func(a *Cif7Attributes) *float64 { return a.Mean }, func(a *Cif7Attributes, v float64) { a.Mean = &v }},
	{Cif7BitMedian, func(a *Cif7Attributes) *float64 { return a.Median }, func(a *Cif7Attributes, v float64) { a.Median = &v }},
	{Cif7BitStandardDeviation, func(a *Cif7Attributes) *float64 { return a.StandardDeviation }, func(a *Cif7Attributes, v float64) { a.StandardDeviation = &v }},
	{Cif7BitMax, func(a *Cif7Attributes) *float64 { return a.Max }, func(a *Cif7Attributes, v float64) { a.Max = &v }},
	{Cif7BitMin, func(a *Cif7Attributes) *float64 { return a.Min }, func(a *Cif7Attributes, v float64) { a.Min = &v }},
	{Cif7BitPrecision, func(a *Cif7Attributes) *float64 { return a.Precision }, func(a *Cif7Attributes, v float64) { a.Precision = &v }},
	{Cif7BitAccuracy, func(a *Cif7Attributes) *float64 { return a.Accuracy }, func(a *Cif7Attributes, v float64) { a.Accuracy = &v }},
}

// fieldWordCodec describes how to turn one attribute value into wire
// words using the same encoding as the field it decorates, so an
// attribute copy of a u64-radix field costs the same 2 words the base
// field does, matching §3's "vector of N attribute copies of the same
// typed field".
type fieldWordCodec struct {
	words  int
	encode func(field string, v float64) ([]byte, error)
	decode func(b []byte) float64
}

func radixU64Codec(name string) fieldWordCodec {
	return fieldWordCodec{
		words: 2,
		encode: func(field string, v float64) ([]byte, error) {
			raw, err := encodeFixedU64Q20(field, v)
			if err != nil {
				return nil, err
			}
			b := appendUint32(nil, uint32(raw>>32))
			return appendUint32(b, uint32(raw)), nil
		},
		decode: func(b []byte) float64 {
			raw := uint64(readUint32(b, 0))<<32 | uint64(readUint32(b, 4))
			return decodeFixedU64Q20(raw)
		},
	}
}

func radixI64Codec(name string) fieldWordCodec {
	return fieldWordCodec{
		words: 2,
		encode: func(field string, v float64) ([]byte, error) {
			raw, err := encodeFixedI64Q20(field, v)
			if err != nil {
				return nil, err
			}
			b := appendUint32(nil, uint32(uint64(raw)>>32))
			return appendUint32(b, uint32(raw)), nil
		},
		decode: func(b []byte) float64 {
			raw := int64(uint64(readUint32(b, 0))<<32 | uint64(readUint32(b, 4)))
			return decodeFixedI64Q20(raw)
		},
	}
}

func plainWordCodec(name string) fieldWordCodec {
	return fieldWordCodec{
		words: 1,
		encode: func(field string, v float64) ([]byte, error) {
			return appendUint32(nil, uint32(int32(v))), nil
		},
		decode: func(b []byte) float64 {
			return float64(readInt32(b, 0))
		},
	}
}

// encodeCif7Attributes appends attrs in emission order for the bits set
// in active, using codec to match the decorated field's own wire width.
func encodeCif7Attributes(b []byte, active Cif7, attrs *Cif7Attributes, field string, codec fieldWordCodec) ([]byte, error) {
	if attrs == nil {
		attrs = &Cif7Attributes{}
	}
	for _, slot := range cif7EmissionOrder {
		if !active.Bit(slot.bit) {
			continue
		}
		var v float64
		if p := slot.get(attrs); p != nil {
			v = *p
		}
		words, err := codec.encode(field, v)
		if err != nil {
			return nil, err
		}
		b = append(b, words...)
	}
	return b, nil
}

func decodeCif7Attributes(b []byte, off int, active Cif7, codec fieldWordCodec) (Cif7Attributes, int) {
	var out Cif7Attributes
	cur := off
	for _, slot := range cif7EmissionOrder {
		if !active.Bit(slot.bit) {
			continue
		}
		v := codec.decode(b[cur : cur+codec.words*4])
		slot.set(&out, v)
		cur += codec.words * 4
	}
	return out, cur - off
}

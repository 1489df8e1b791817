package vita49

// CIF0 bit assignments (ANSI/VITA-49.2-2017 §9.1), bits 31 downto 8 one
// named context field each, bit 7 the CIF7 enable, bits 3/2/1 the
// CIF3/CIF2/CIF1 chain-enable bits, bits 0 and 4-6 reserved.
const (
	Cif0BitContextFieldChanged     = 31
	Cif0BitReferencePointID        = 30
	Cif0BitBandwidth               = 29
	Cif0BitIfRefFreq               = 28
	Cif0BitRfRefFreq               = 27
	Cif0BitRfRefFreqOffset         = 26
	Cif0BitIfBandOffset            = 25
	Cif0BitReferenceLevel          = 24
	Cif0BitGain                    = 23
	Cif0BitOverRangeCount          = 22
	Cif0BitSampleRate              = 21
	Cif0BitTimestampAdjustment     = 20
	Cif0BitTimestampCalTime        = 19
	Cif0BitTemperature             = 18
	Cif0BitDeviceID                = 17
	Cif0BitStateIndicators         = 16
	Cif0BitSignalDataPayloadFormat = 15
	Cif0BitFormattedGps            = 14
	Cif0BitFormattedIns            = 13
	Cif0BitEcefEphemeris           = 12
	Cif0BitRelativeEphemeris       = 11
	Cif0BitEphemerisRefID          = 10
	Cif0BitGpsAscii                = 9
	Cif0BitContextAssociationLists = 8
	Cif0BitField7Enabled           = 7
	Cif0BitCif3Enabled             = 3
	Cif0BitCif2Enabled             = 2
	Cif0BitCif1Enabled             = 1
)

// cif1Enabled, cif2Enabled, cif3Enabled and cif7Enabled read the CIF0
// chain bits that gate whether CIF1/2/3/7 follow.
func cif1Enabled(c Cif) bool { return c.Bit(Cif0BitCif1Enabled) }
func cif2Enabled(c Cif) bool { return c.Bit(Cif0BitCif2Enabled) }
func cif3Enabled(c Cif) bool { return c.Bit(Cif0BitCif3Enabled) }
func cif7Enabled(c Cif) bool { return c.Bit(Cif0BitField7Enabled) }

// Cif0Fields is the parallel optional-value record for CIF0: exactly one
// of fields[i] is non-nil iff indicator.Bit(i) is set (§3 invariant 3).
// Attribute vectors are carried only for the 15 scalar/radix fields for
// which a CIF7 statistic has defined meaning (§7 of the expanded spec);
// the 8 composite fields never carry attributes.
type Cif0Fields struct {
	ReferencePointID        *uint32
	ReferencePointIDAttrs   *Cif7Attributes
	BandwidthHz             *float64
	BandwidthHzAttrs        *Cif7Attributes
	IfRefFreqHz             *float64
	IfRefFreqHzAttrs        *Cif7Attributes
	RfRefFreqHz             *float64
	RfRefFreqHzAttrs        *Cif7Attributes
	RfRefFreqOffsetHz       *float64
	RfRefFreqOffsetHzAttrs  *Cif7Attributes
	IfBandOffsetHz          *float64
	IfBandOffsetHzAttrs     *Cif7Attributes
	ReferenceLevelDB        *float32
	ReferenceLevelDBAttrs   *Cif7Attributes
	Gain                    *Gain
	OverRangeCount          *uint32
	OverRangeCountAttrs     *Cif7Attributes
	SampleRateSps           *float64
	SampleRateSpsAttrs      *Cif7Attributes
	TimestampAdjustment     *uint64
	TimestampAdjustmentAttrs *Cif7Attributes
	TimestampCalTime        *uint32
	TimestampCalTimeAttrs   *Cif7Attributes
	Temperature             *int32
	TemperatureAttrs        *Cif7Attributes
	DeviceID                *DeviceId
	StateIndicators         *uint32
	StateIndicatorsAttrs    *Cif7Attributes
	SignalDataPayloadFormat *uint64
	SignalDataPayloadFormatAttrs *Cif7Attributes
	FormattedGps            *FormattedGps
	FormattedIns            *FormattedGps
	EcefEphemeris           *EcefEphemeris
	RelativeEphemeris       *EcefEphemeris
	EphemerisRefID          *uint32
	EphemerisRefIDAttrs     *Cif7Attributes
	GpsAscii                *GpsAscii
	ContextAssociationLists *ContextAssociationLists
}

// indicator derives the CIF0 indicator word from which fields are
// non-nil, rather than trusting a separately mutated bitmap (§9 "Optional
// vs bitmap double-representation" — this module exposes only the
// optional-field view and derives the bitmap at encode time).
func (f *Cif0Fields) indicator() Cif {
	var c Cif
	set := func(bit uint, present bool) {
		if present {
			c = c.WithBit(bit, true)
		}
	}
	set(Cif0BitReferencePointID, f.ReferencePointID != nil)
	set(Cif0BitBandwidth, f.BandwidthHz != nil)
	set(Cif0BitIfRefFreq, f.IfRefFreqHz != nil)
	set(Cif0BitRfRefFreq, f.RfRefFreqHz != nil)
	set(Cif0BitRfRefFreqOffset, f.RfRefFreqOffsetHz != nil)
	set(Cif0BitIfBandOffset, f.IfBandOffsetHz != nil)
	set(Cif0BitReferenceLevel, f.ReferenceLevelDB != nil)
	set(Cif0BitGain, f.Gain != nil)
	set(Cif0BitOverRangeCount, f.OverRangeCount != nil)
	set(Cif0BitSampleRate, f.SampleRateSps != nil)
	set(Cif0BitTimestampAdjustment, f.TimestampAdjustment != nil)
	set(Cif0BitTimestampCalTime, f.TimestampCalTime != nil)
	set(Cif0BitTemperature, f.Temperature != nil)
	set(Cif0BitDeviceID, f.DeviceID != nil)
	set(Cif0BitStateIndicators, f.StateIndicators != nil)
	set(Cif0BitSignalDataPayloadFormat, f.SignalDataPayloadFormat != nil)
	set(Cif0BitFormattedGps, f.FormattedGps != nil)
	set(Cif0BitFormattedIns, f.FormattedIns != nil)
	set(Cif0BitEcefEphemeris, f.EcefEphemeris != nil)
	set(Cif0BitRelativeEphemeris, f.RelativeEphemeris != nil)
	set(Cif0BitEphemerisRefID, f.EphemerisRefID != nil)
	set(Cif0BitGpsAscii, f.GpsAscii != nil)
	set(Cif0BitContextAssociationLists, f.ContextAssociationLists != nil)
	return c
}

// sizeWords reports the word count of the data fields this record would
// serialize, excluding the indicator word itself, given the active CIF7
// attribute indicator (nil if CIF7 disabled).
func (f *Cif0Fields) sizeWords(cif7 *Cif7) int {
	n := 0
	attrWords := func(codecWords int, attrs *Cif7Attributes) int {
		// encode emits zero-valued attributes for a field with nil attrs,
		// so every present field is counted once CIF7 is active.
		if cif7 == nil {
			return 0
		}
		return codecWords * cif7.NumAttributes()
	}
	if f.ReferencePointID != nil {
		n += 1 + attrWords(1, f.ReferencePointIDAttrs)
	}
	if f.BandwidthHz != nil {
		n += 2 + attrWords(2, f.BandwidthHzAttrs)
	}
	if f.IfRefFreqHz != nil {
		n += 2 + attrWords(2, f.IfRefFreqHzAttrs)
	}
	if f.RfRefFreqHz != nil {
		n += 2 + attrWords(2, f.RfRefFreqHzAttrs)
	}
	if f.RfRefFreqOffsetHz != nil {
		n += 2 + attrWords(2, f.RfRefFreqOffsetHzAttrs)
	}
	if f.IfBandOffsetHz != nil {
		n += 2 + attrWords(2, f.IfBandOffsetHzAttrs)
	}
	if f.ReferenceLevelDB != nil {
		n += 1 + attrWords(1, f.ReferenceLevelDBAttrs)
	}
	if f.Gain != nil {
		n += f.Gain.sizeWords()
	}
	if f.OverRangeCount != nil {
		n += 1 + attrWords(1, f.OverRangeCountAttrs)
	}
	if f.SampleRateSps != nil {
		n += 2 + attrWords(2, f.SampleRateSpsAttrs)
	}
	if f.TimestampAdjustment != nil {
		n += 2 + attrWords(2, f.TimestampAdjustmentAttrs)
	}
	if f.TimestampCalTime != nil {
		n += 1 + attrWords(1, f.TimestampCalTimeAttrs)
	}
	if f.Temperature != nil {
		n += 1 + attrWords(1, f.TemperatureAttrs)
	}
	if f.DeviceID != nil {
		n += f.DeviceID.sizeWords()
	}
	if f.StateIndicators != nil {
		n += 1 + attrWords(1, f.StateIndicatorsAttrs)
	}
	if f.SignalDataPayloadFormat != nil {
		n += 2 + attrWords(2, f.SignalDataPayloadFormatAttrs)
	}
	if f.FormattedGps != nil {
		n += f.FormattedGps.sizeWords()
	}
	if f.FormattedIns != nil {
		n += f.FormattedIns.sizeWords()
	}
	if f.EcefEphemeris != nil {
		n += f.EcefEphemeris.sizeWords()
	}
	if f.RelativeEphemeris != nil {
		n += f.RelativeEphemeris.sizeWords()
	}
	if f.EphemerisRefID != nil {
		n += 1 + attrWords(1, f.EphemerisRefIDAttrs)
	}
	if f.GpsAscii != nil {
		n += f.GpsAscii.sizeWords()
	}
	if f.ContextAssociationLists != nil {
		n += f.ContextAssociationLists.sizeWords()
	}
	return n
}

// encode appends the CIF0 data fields in canonical high-to-low bit order,
// each optionally followed by its CIF7 attribute vector.
func (f *Cif0Fields) encode(b []byte, cif7 *Cif7) ([]byte, error) {
	var err error
	emitAttrs := func(name string, attrs *Cif7Attributes, codec fieldWordCodec) error {
		if cif7 == nil {
			return nil
		}
		var e error
		b, e = encodeCif7Attributes(b, *cif7, attrs, name, codec)
		return e
	}
	emitRadixU64 := func(name string, v *float64, attrs *Cif7Attributes) error {
		raw, e := encodeFixedU64Q20(name, *v)
		if e != nil {
			return e
		}
		b = appendUint32(b, uint32(raw>>32))
		b = appendUint32(b, uint32(raw))
		return emitAttrs(name, attrs, radixU64Codec(name))
	}
	emitRadixI64 := func(name string, v *float64, attrs *Cif7Attributes) error {
		raw, e := encodeFixedI64Q20(name, *v)
		if e != nil {
			return e
		}
		b = appendUint32(b, uint32(uint64(raw)>>32))
		b = appendUint32(b, uint32(raw))
		return emitAttrs(name, attrs, radixI64Codec(name))
	}
	emitPlainU32 := func(v *uint32, attrs *Cif7Attributes, name string) error {
		b = appendUint32(b, *v)
		return emitAttrs(name, attrs, plainWordCodec(name))
	}
	emitPlainU64 := func(v *uint64, attrs *Cif7Attributes, name string) error {
		b = appendUint32(b, uint32(*v>>32))
		b = appendUint32(b, uint32(*v))
		return emitAttrs(name, attrs, radixU64Codec(name))
	}

	if f.ReferencePointID != nil {
		if err = emitPlainU32(f.ReferencePointID, f.ReferencePointIDAttrs, "reference_point_id"); err != nil {
			return nil, err
		}
	}
	if f.BandwidthHz != nil {
		if err = emitRadixU64("bandwidth_hz", f.BandwidthHz, f.BandwidthHzAttrs); err != nil {
			return nil, err
		}
	}
	if f.IfRefFreqHz != nil {
		if err = emitRadixI64("if_ref_freq_hz", f.IfRefFreqHz, f.IfRefFreqHzAttrs); err != nil {
			return nil, err
		}
	}
	if f.RfRefFreqHz != nil {
		if err = emitRadixU64("rf_ref_freq_hz", f.RfRefFreqHz, f.RfRefFreqHzAttrs); err != nil {
			return nil, err
		}
	}
	if f.RfRefFreqOffsetHz != nil {
		if err = emitRadixI64("rf_ref_freq_offset_hz", f.RfRefFreqOffsetHz, f.RfRefFreqOffsetHzAttrs); err != nil {
			return nil, err
		}
	}
	if f.IfBandOffsetHz != nil {
		if err = emitRadixI64("if_band_offset_hz", f.IfBandOffsetHz, f.IfBandOffsetHzAttrs); err != nil {
			return nil, err
		}
	}
	if f.ReferenceLevelDB != nil {
		raw, e := encodeFixedI16Q7("reference_level_db", *f.ReferenceLevelDB)
		if e != nil {
			return nil, e
		}
		b = appendUint32(b, raw)
		if err = emitAttrs("reference_level_db", f.ReferenceLevelDBAttrs, plainWordCodec("reference_level_db")); err != nil {
			return nil, err
		}
	}
	if f.Gain != nil {
		raw, e := f.Gain.encode()
		if e != nil {
			return nil, e
		}
		b = appendUint32(b, raw)
	}
	if f.OverRangeCount != nil {
		if err = emitPlainU32(f.OverRangeCount, f.OverRangeCountAttrs, "over_range_count"); err != nil {
			return nil, err
		}
	}
	if f.SampleRateSps != nil {
		if err = emitRadixU64("sample_rate_sps", f.SampleRateSps, f.SampleRateSpsAttrs); err != nil {
			return nil, err
		}
	}
	if f.TimestampAdjustment != nil {
		if err = emitPlainU64(f.TimestampAdjustment, f.TimestampAdjustmentAttrs, "timestamp_adjustment"); err != nil {
			return nil, err
		}
	}
	if f.TimestampCalTime != nil {
		if err = emitPlainU32(f.TimestampCalTime, f.TimestampCalTimeAttrs, "timestamp_cal_time"); err != nil {
			return nil, err
		}
	}
	if f.Temperature != nil {
		v := uint32(*f.Temperature)
		b = appendUint32(b, v)
		if err = emitAttrs("temperature", f.TemperatureAttrs, plainWordCodec("temperature")); err != nil {
			return nil, err
		}
	}
	if f.DeviceID != nil {
		b = f.DeviceID.encode(b)
	}
	if f.StateIndicators != nil {
		if err = emitPlainU32(f.StateIndicators, f.StateIndicatorsAttrs, "state_indicators"); err != nil {
			return nil, err
		}
	}
	if f.SignalDataPayloadFormat != nil {
		if err = emitPlainU64(f.SignalDataPayloadFormat, f.SignalDataPayloadFormatAttrs, "signal_data_payload_format"); err != nil {
			return nil, err
		}
	}
	if f.FormattedGps != nil {
		if b, err = f.FormattedGps.encode(b); err != nil {
			return nil, err
		}
	}
	if f.FormattedIns != nil {
		if b, err = f.FormattedIns.encode(b); err != nil {
			return nil, err
		}
	}
	if f.EcefEphemeris != nil {
		if b, err = f.EcefEphemeris.encode(b); err != nil {
			return nil, err
		}
	}
	if f.RelativeEphemeris != nil {
		if b, err = f.RelativeEphemeris.encode(b); err != nil {
			return nil, err
		}
	}
	if f.EphemerisRefID != nil {
		if err = emitPlainU32(f.EphemerisRefID, f.EphemerisRefIDAttrs, "ephemeris_ref_id"); err != nil {
			return nil, err
		}
	}
	if f.GpsAscii != nil {
		b = f.GpsAscii.encode(b)
	}
	if f.ContextAssociationLists != nil {
		if b, err = f.ContextAssociationLists.encode(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func decodeCif0Fields(b []byte, off int, indicator Cif, cif7 *Cif7) (*Cif0Fields, int, error) {
	f := &Cif0Fields{}
	cur := off

	readAttrs := func(name string, codec fieldWordCodec) (*Cif7Attributes, error) {
		if cif7 == nil {
			return nil, nil
		}
		a, n := decodeCif7Attributes(b, cur, *cif7, codec)
		cur += n
		return &a, nil
	}

	if indicator.Bit(Cif0BitReferencePointID) {
		v := readUint32(b, cur)
		cur += 4
		f.ReferencePointID = &v
		var err error
		if f.ReferencePointIDAttrs, err = readAttrs("reference_point_id", plainWordCodec("reference_point_id")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitBandwidth) {
		raw := uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4))
		cur += 8
		v := decodeFixedU64Q20(raw)
		f.BandwidthHz = &v
		var err error
		if f.BandwidthHzAttrs, err = readAttrs("bandwidth_hz", radixU64Codec("bandwidth_hz")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitIfRefFreq) {
		raw := int64(uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4)))
		cur += 8
		v := decodeFixedI64Q20(raw)
		f.IfRefFreqHz = &v
		var err error
		if f.IfRefFreqHzAttrs, err = readAttrs("if_ref_freq_hz", radixI64Codec("if_ref_freq_hz")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitRfRefFreq) {
		raw := uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4))
		cur += 8
		v := decodeFixedU64Q20(raw)
		f.RfRefFreqHz = &v
		var err error
		if f.RfRefFreqHzAttrs, err = readAttrs("rf_ref_freq_hz", radixU64Codec("rf_ref_freq_hz")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitRfRefFreqOffset) {
		raw := int64(uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4)))
		cur += 8
		v := decodeFixedI64Q20(raw)
		f.RfRefFreqOffsetHz = &v
		var err error
		if f.RfRefFreqOffsetHzAttrs, err = readAttrs("rf_ref_freq_offset_hz", radixI64Codec("rf_ref_freq_offset_hz")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitIfBandOffset) {
		raw := int64(uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4)))
		cur += 8
		v := decodeFixedI64Q20(raw)
		f.IfBandOffsetHz = &v
		var err error
		if f.IfBandOffsetHzAttrs, err = readAttrs("if_band_offset_hz", radixI64Codec("if_band_offset_hz")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitReferenceLevel) {
		v := decodeFixedI16Q7(readUint32(b, cur))
		cur += 4
		f.ReferenceLevelDB = &v
		var err error
		if f.ReferenceLevelDBAttrs, err = readAttrs("reference_level_db", plainWordCodec("reference_level_db")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitGain) {
		v := decodeGain(readUint32(b, cur))
		cur += 4
		f.Gain = &v
	}
	if indicator.Bit(Cif0BitOverRangeCount) {
		v := readUint32(b, cur)
		cur += 4
		f.OverRangeCount = &v
		var err error
		if f.OverRangeCountAttrs, err = readAttrs("over_range_count", plainWordCodec("over_range_count")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitSampleRate) {
		raw := uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4))
		cur += 8
		v := decodeFixedU64Q20(raw)
		f.SampleRateSps = &v
		var err error
		if f.SampleRateSpsAttrs, err = readAttrs("sample_rate_sps", radixU64Codec("sample_rate_sps")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitTimestampAdjustment) {
		v := uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4))
		cur += 8
		f.TimestampAdjustment = &v
		var err error
		if f.TimestampAdjustmentAttrs, err = readAttrs("timestamp_adjustment", radixU64Codec("timestamp_adjustment")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitTimestampCalTime) {
		v := readUint32(b, cur)
		cur += 4
		f.TimestampCalTime = &v
		var err error
		if f.TimestampCalTimeAttrs, err = readAttrs("timestamp_cal_time", plainWordCodec("timestamp_cal_time")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitTemperature) {
		v := readInt32(b, cur)
		cur += 4
		f.Temperature = &v
		var err error
		if f.TemperatureAttrs, err = readAttrs("temperature", plainWordCodec("temperature")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitDeviceID) {
		v := decodeDeviceId(b, cur)
		cur += v.sizeWords() * 4
		f.DeviceID = &v
	}
	if indicator.Bit(Cif0BitStateIndicators) {
		v := readUint32(b, cur)
		cur += 4
		f.StateIndicators = &v
		var err error
		if f.StateIndicatorsAttrs, err = readAttrs("state_indicators", plainWordCodec("state_indicators")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitSignalDataPayloadFormat) {
		v := uint64(readUint32(b, cur))<<32 | uint64(readUint32(b, cur+4))
		cur += 8
		f.SignalDataPayloadFormat = &v
		var err error
		if f.SignalDataPayloadFormatAttrs, err = readAttrs("signal_data_payload_format", radixU64Codec("signal_data_payload_format")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitFormattedGps) {
		v := decodeFormattedGps(b, cur)
		cur += v.sizeWords() * 4
		f.FormattedGps = &v
	}
	if indicator.Bit(Cif0BitFormattedIns) {
		v := decodeFormattedGps(b, cur)
		cur += v.sizeWords() * 4
		f.FormattedIns = &v
	}
	if indicator.Bit(Cif0BitEcefEphemeris) {
		v := decodeEcefEphemeris(b, cur)
		cur += v.sizeWords() * 4
		f.EcefEphemeris = &v
	}
	if indicator.Bit(Cif0BitRelativeEphemeris) {
		v := decodeEcefEphemeris(b, cur)
		cur += v.sizeWords() * 4
		f.RelativeEphemeris = &v
	}
	if indicator.Bit(Cif0BitEphemerisRefID) {
		v := readUint32(b, cur)
		cur += 4
		f.EphemerisRefID = &v
		var err error
		if f.EphemerisRefIDAttrs, err = readAttrs("ephemeris_ref_id", plainWordCodec("ephemeris_ref_id")); err != nil {
			return nil, 0, err
		}
	}
	if indicator.Bit(Cif0BitGpsAscii) {
		v, words := decodeGpsAscii(b, cur)
		cur += words * 4
		f.GpsAscii = &v
	}
	if indicator.Bit(Cif0BitContextAssociationLists) {
		v, words := decodeContextAssociationLists(b, cur)
		cur += words * 4
		f.ContextAssociationLists = &v
	}

	return f, cur - off, nil
}

package vita49

import (
	"encoding/binary"
	"math"
)

// readUint32 reads a big-endian 32-bit word at offset off.
func readUint32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

func writeUint32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

func readUint64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

func writeUint64(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(b[off:off+8], v)
}

func readInt32(b []byte, off int) int32 {
	return int32(readUint32(b, off))
}

func writeInt32(b []byte, off int, v int32) {
	writeUint32(b, off, uint32(v))
}

func readInt64(b []byte, off int) int64 {
	return int64(readUint64(b, off))
}

func writeInt64(b []byte, off int, v int64) {
	writeUint64(b, off, uint64(v))
}

// --- Fixed-point ("radix") conversions. ---
//
// The three grids used by the context-indicator field table (§4.3 of the
// expanded specification): an unsigned 64-bit word with 20 fractional
// bits (bandwidth/rf_ref_freq/sample_rate), a signed 64-bit word with 20
// fractional bits (if_ref_freq/rf_ref_freq_offset/if_band_offset), and a
// signed 16-bit word with 7 fractional bits masked into the low half of a
// 32-bit word (reference_level). Rounding is round-half-to-even after
// scaling; values outside the representable grid are rejected rather than
// silently wrapped.

const (
	fixedU64Q20Frac = 20
	fixedI64Q20Frac = 20
	fixedI16Q7Frac  = 7
)

// encodeFixedU64Q20 converts a frequency/bandwidth value in Hz to its
// unsigned 64-bit, 20-fractional-bit wire representation.
func encodeFixedU64Q20(field string, hz float64) (uint64, error) {
	if hz < 0 || math.IsNaN(hz) {
		return 0, errFieldOutOfRange{field, hz}
	}
	scaled := roundHalfToEven(hz * (1 << fixedU64Q20Frac))
	if scaled < 0 || scaled > math.MaxUint64 {
		return 0, errFieldOutOfRange{field, hz}
	}
	return uint64(scaled), nil
}

func decodeFixedU64Q20(raw uint64) float64 {
	return float64(raw) / (1 << fixedU64Q20Frac)
}

// encodeFixedI64Q20 converts a signed Hz-scale offset to its signed
// 64-bit, 20-fractional-bit wire representation.
func encodeFixedI64Q20(field string, hz float64) (int64, error) {
	if math.IsNaN(hz) {
		return 0, errFieldOutOfRange{field, hz}
	}
	scaled := roundHalfToEven(hz * (1 << fixedI64Q20Frac))
	if scaled < math.MinInt64 || scaled > math.MaxInt64 {
		return 0, errFieldOutOfRange{field, hz}
	}
	return int64(scaled), nil
}

func decodeFixedI64Q20(raw int64) float64 {
	return float64(raw) / (1 << fixedI64Q20Frac)
}

// encodeFixedI16Q7 converts a reference-level dB value to its signed
// 16-bit, 7-fractional-bit wire representation, masked into the low 16
// bits of a 32-bit word (upper 16 bits are always written zero).
func encodeFixedI16Q7(field string, db float32) (uint32, error) {
	if math.IsNaN(float64(db)) {
		return 0, errFieldOutOfRange{field, float64(db)}
	}
	scaled := roundHalfToEven(float64(db) * (1 << fixedI16Q7Frac))
	if scaled < math.MinInt16 || scaled > math.MaxInt16 {
		return 0, errFieldOutOfRange{field, float64(db)}
	}
	return uint32(uint16(int16(scaled))), nil
}

func decodeFixedI16Q7(raw uint32) float32 {
	low := int16(uint16(raw & 0xffff))
	return float32(low) / (1 << fixedI16Q7Frac)
}

// roundHalfToEven implements banker's rounding for the fixed-point encoders.
// math.Round always rounds halves away from zero, which is not what the
// wire format's rounding rule specifies.
func roundHalfToEven(v float64) float64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

// popcount32 counts set bits, used throughout the CIF/CAM accounting.
func popcount32(v uint32) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

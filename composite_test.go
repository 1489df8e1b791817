package vita49

import (
	"reflect"
	"testing"
)

func TestGainEncodeDecodeRoundTrip(t *testing.T) {
	g := Gain{Stage1DB: 10.5, Stage2DB: -3.25}
	w, err := g.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := decodeGain(w)
	if got.Stage1DB != g.Stage1DB || got.Stage2DB != g.Stage2DB {
		t.Errorf("round trip = %+v, want %+v", got, g)
	}
}

func TestDeviceIdEncodeDecodeRoundTrip(t *testing.T) {
	d := DeviceId{OUI: 0x00aabbcc, DeviceCode: 42}
	b := d.encode(nil)
	if len(b) != d.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), d.sizeWords()*4)
	}
	got := decodeDeviceId(b, 0)
	if got != d {
		t.Errorf("round trip = %+v, want %+v", got, d)
	}
}

func TestFormattedGpsEncodeDecodeRoundTrip(t *testing.T) {
	g := FormattedGps{
		Tsi:                  TsiUtc,
		Tsf:                  TsfRealTimePs,
		OUI:                  0x001122,
		IntegerTimestamp:     12345,
		FractionalTimestamp:  6789,
		LatitudeDeg:          37.773972,
		LongitudeDeg:         -122.431297,
		AltitudeM:            15,
		SpeedOverGroundMps:   12,
		HeadingDeg:           180,
		TrackAngleDeg:        179,
		MagneticVariationDeg: -2,
	}
	b, err := g.encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != g.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), g.sizeWords()*4)
	}
	got := decodeFormattedGps(b, 0)
	if got.Tsi != g.Tsi || got.Tsf != g.Tsf || got.OUI != g.OUI {
		t.Errorf("header fields mismatch: %+v", got)
	}
	if got.LatitudeDeg-g.LatitudeDeg > 1e-5 || g.LatitudeDeg-got.LatitudeDeg > 1e-5 {
		t.Errorf("LatitudeDeg = %v, want %v", got.LatitudeDeg, g.LatitudeDeg)
	}
	if got.LongitudeDeg-g.LongitudeDeg > 1e-5 || g.LongitudeDeg-got.LongitudeDeg > 1e-5 {
		t.Errorf("LongitudeDeg = %v, want %v", got.LongitudeDeg, g.LongitudeDeg)
	}
}

func TestEcefEphemerisEncodeDecodeRoundTrip(t *testing.T) {
	e := EcefEphemeris{
		Tsi: TsiGps, Tsf: TsfSampleCount,
		OUI:                 0x00beef,
		IntegerTimestamp:    1,
		FractionalTimestamp: 2,
		PositionXM:          100, PositionYM: -200, PositionZM: 300,
		AttitudeAlphaDeg: 1, AttitudeBetaDeg: -1, AttitudePhiDeg: 0.5,
		VelocityXMps: 5, VelocityYMps: -5, VelocityZMps: 0,
	}
	b, err := e.encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != e.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), e.sizeWords()*4)
	}
	got := decodeEcefEphemeris(b, 0)
	if got.PositionXM != e.PositionXM || got.PositionYM != e.PositionYM || got.PositionZM != e.PositionZM {
		t.Errorf("position mismatch: %+v", got)
	}
	if got.VelocityXMps != e.VelocityXMps || got.VelocityZMps != e.VelocityZMps {
		t.Errorf("velocity mismatch: %+v", got)
	}
}

func TestGpsAsciiEncodeDecodeRoundTrip(t *testing.T) {
	g := GpsAscii{OUI: 0x00cafe, Text: "$GPGGA,...*47"}
	b := g.encode(nil)
	if len(b) != g.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), g.sizeWords()*4)
	}
	got, words := decodeGpsAscii(b, 0)
	if words != g.sizeWords() {
		t.Errorf("decodeGpsAscii words = %d, want %d", words, g.sizeWords())
	}
	if got.OUI != g.OUI || got.Text != g.Text {
		t.Errorf("round trip = %+v, want %+v", got, g)
	}
}

func TestContextAssociationListsEncodeDecodeRoundTrip(t *testing.T) {
	c := ContextAssociationLists{
		SourceListIDs:          []uint32{1, 2},
		SystemListIDs:          []uint32{3},
		VectorComponentListIDs: []uint32{4, 5, 6},
		AsyncChannelListIDs:    []uint32{7},
		AsyncChannelTags:       []uint32{8},
	}
	b, err := c.encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != c.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), c.sizeWords()*4)
	}
	got, words := decodeContextAssociationLists(b, 0)
	if words != c.sizeWords() {
		t.Errorf("decodeContextAssociationLists words = %d, want %d", words, c.sizeWords())
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestSpectrumEncodeDecodeRoundTrip(t *testing.T) {
	s := Spectrum{
		NumTransformPoints: 1280,
		NumWindowPoints:    1024,
		ResolutionHz:       6.25e3,
		SpanHz:             8e6,
		NumAverages:        4,
		WindowTimeDelta:    10,
		F1Index:            -1280,
		F2Index:            1279,
	}
	b, err := s.encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != s.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), s.sizeWords()*4)
	}
	got := decodeSpectrum(b, 0)
	if got.NumTransformPoints != s.NumTransformPoints || got.F1Index != s.F1Index || got.F2Index != s.F2Index {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}

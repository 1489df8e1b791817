package vita49

import "testing"

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := &Header{
		PacketType:     PacketTypeContext,
		ClassIDPresent: true,
		Tsi:            TsiUtc,
		Tsf:            TsfRealTimePs,
		PacketCount:    7,
		PacketSize:     42,
	}
	h.SetNot49d0(true)

	got := decodeHeader(h.encode())
	if got.PacketType != h.PacketType {
		t.Errorf("PacketType = %v, want %v", got.PacketType, h.PacketType)
	}
	if got.ClassIDPresent != h.ClassIDPresent {
		t.Errorf("ClassIDPresent = %v, want %v", got.ClassIDPresent, h.ClassIDPresent)
	}
	if got.Tsi != h.Tsi || got.Tsf != h.Tsf {
		t.Errorf("Tsi/Tsf = %v/%v, want %v/%v", got.Tsi, got.Tsf, h.Tsi, h.Tsf)
	}
	if got.PacketCount != h.PacketCount {
		t.Errorf("PacketCount = %d, want %d", got.PacketCount, h.PacketCount)
	}
	if got.PacketSize != h.PacketSize {
		t.Errorf("PacketSize = %d, want %d", got.PacketSize, h.PacketSize)
	}
	if !got.IsNot49d0() {
		t.Errorf("IsNot49d0 = false, want true")
	}
}

func TestHeaderIndicatorBitAliasing(t *testing.T) {
	// The same two raw bits mean (trailer, not49d0) for signal-data packets
	// and (ack, cancellation) for command packets.
	h := &Header{PacketType: PacketTypeCommand}
	h.SetAck(true)
	h.SetCancellation(false)
	if !h.IsAck() || h.IsCancellation() {
		t.Fatalf("ack/cancellation bits not independent: ack=%v cancellation=%v", h.IsAck(), h.IsCancellation())
	}

	sig := &Header{PacketType: PacketTypeSignalData}
	sig.SetTrailer(true)
	if !sig.HasTrailer() {
		t.Errorf("HasTrailer = false after SetTrailer(true)")
	}
}

func TestPacketTypeHasStreamID(t *testing.T) {
	cases := []struct {
		t    PacketType
		want bool
	}{
		{PacketTypeSignalData, false},
		{PacketTypeSignalDataStreamID, true},
		{PacketTypeContext, true},
		{PacketTypeCommand, true},
	}
	for _, c := range cases {
		if got := c.t.HasStreamID(); got != c.want {
			t.Errorf("%v.HasStreamID() = %v, want %v", c.t, got, c.want)
		}
	}
}

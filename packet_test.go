package vita49

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestSignalDataPacketRoundTrip(t *testing.T) {
	streamID := uint32(0xDEADBEEF)
	pkt := NewSignalDataPacket()
	pkt.SetStreamID(&streamID)
	if err := pkt.SignalData.SetPayload([]byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	pkt.UpdatePacketSize()

	if pkt.Header.PacketType != PacketTypeSignalDataStreamID {
		t.Errorf("PacketType = %v, want SignalDataStreamId", pkt.Header.PacketType)
	}
	if pkt.Header.PacketSize != 4 {
		t.Errorf("PacketSize = %d, want 4", pkt.Header.PacketSize)
	}

	data, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("len(data) = %d, want 16", len(data))
	}
	if !bytes.Equal(data[8:], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("payload tail = %x, want 01020304 05060708", data[8:])
	}

	got, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if got.StreamID == nil || *got.StreamID != streamID {
		t.Errorf("StreamID = %v, want %#x", got.StreamID, streamID)
	}
	if !bytes.Equal(got.SignalData.Payload(), []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("decoded payload = %x, want 01020304 05060708", got.SignalData.Payload())
	}
}

func TestContextPacketWithBandwidthAndSpectrum(t *testing.T) {
	streamID := uint32(0xDEADBEEF)
	pkt := NewContextPacket()
	pkt.SetStreamID(&streamID)

	bandwidth := 8.0e6
	pkt.Context.Cif0.BandwidthHz = &bandwidth
	resolution := 6.25e3
	pkt.Context.Cif1 = &Cif1Fields{
		Spectrum: &Spectrum{
			NumTransformPoints: 1280,
			ResolutionHz:       resolution,
			F1Index:            -1280,
			F2Index:            1279,
		},
	}
	pkt.UpdatePacketSize()

	if !pkt.Context.Cif0.indicator().Bit(Cif0BitBandwidth) {
		t.Fatalf("CIF0 bandwidth bit not set")
	}

	data, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	got, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if got.Context.Cif0.BandwidthHz == nil || *got.Context.Cif0.BandwidthHz != bandwidth {
		t.Errorf("BandwidthHz = %v, want %v", got.Context.Cif0.BandwidthHz, bandwidth)
	}
	if got.Context.Cif1 == nil || got.Context.Cif1.Spectrum == nil {
		t.Fatalf("Cif1.Spectrum missing after round trip")
	}
	sp := got.Context.Cif1.Spectrum
	if sp.NumTransformPoints != 1280 || sp.F1Index != -1280 || sp.F2Index != 1279 {
		t.Errorf("Spectrum fields mismatch: %+v", sp)
	}
	if sp.ResolutionHz-resolution > 1e-3 || resolution-sp.ResolutionHz > 1e-3 {
		t.Errorf("ResolutionHz = %v, want %v", sp.ResolutionHz, resolution)
	}
}

func TestControlPacketTuneCommandRoundTrip(t *testing.T) {
	streamID := uint32(0xDEADBEEF)
	pkt := NewControlPacket()
	pkt.SetStreamID(&streamID)

	controlleeID := uint32(0)
	if err := pkt.Command.SetControlleeID(&controlleeID); err != nil {
		t.Fatalf("SetControlleeID: %v", err)
	}
	var controllerUUID uuid.UUID
	if err := pkt.Command.SetControllerUUID(&controllerUUID); err != nil {
		t.Fatalf("SetControllerUUID: %v", err)
	}
	pkt.Command.Cam.ActionMode = ActionModeExecute
	pkt.Command.Cam.PartialPacketImplPermitted = true
	pkt.Command.Cam.WarningsPermitted = true
	pkt.Command.Cam.RequestValidation = true
	pkt.Command.Cam.RequestWarning = true
	pkt.Command.Cam.RequestError = true

	control := pkt.Command.Payload.(*Control)
	rf, sr, bw := 100e6, 128e6, 100e6
	control.Cif0.RfRefFreqHz = &rf
	control.Cif0.SampleRateSps = &sr
	control.Cif0.BandwidthHz = &bw

	pkt.UpdatePacketSize()

	if pkt.Command.Cam.ControlleeIDFormat != IDFormat32Bit {
		t.Errorf("ControlleeIDFormat = %v, want 32-bit", pkt.Command.Cam.ControlleeIDFormat)
	}
	if pkt.Command.Cam.ControllerIDFormat != IDFormat128Bit {
		t.Errorf("ControllerIDFormat = %v, want 128-bit", pkt.Command.Cam.ControllerIDFormat)
	}
	if !pkt.Header.PacketType.isCommand() {
		t.Fatalf("header does not mark a command packet: %v", pkt.Header.PacketType)
	}

	data, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	got, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	gotControl, ok := got.Command.Payload.(*Control)
	if !ok {
		t.Fatalf("Payload type = %T, want *Control", got.Command.Payload)
	}
	if *gotControl.Cif0.RfRefFreqHz != rf || *gotControl.Cif0.SampleRateSps != sr || *gotControl.Cif0.BandwidthHz != bw {
		t.Errorf("tune fields mismatch after round trip: %+v", gotControl.Cif0)
	}
	if got.Command.ControlleeID() == nil || *got.Command.ControlleeID() != controlleeID {
		t.Errorf("ControlleeID = %v, want %v", got.Command.ControlleeID(), controlleeID)
	}
	if got.Command.ControllerUUID() == nil || *got.Command.ControllerUUID() != controllerUUID {
		t.Errorf("ControllerUUID = %v, want %v", got.Command.ControllerUUID(), controllerUUID)
	}
}

func TestExecAckPacketRoundTrip(t *testing.T) {
	pkt := NewExecAckPacket()
	pkt.UpdatePacketSize()

	if !pkt.Header.IsAck() {
		t.Fatalf("IsAck() = false, want true")
	}
	data, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	got, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if _, ok := got.Command.Payload.(*ExecAck); !ok {
		t.Fatalf("Payload type = %T, want *ExecAck", got.Command.Payload)
	}
	if !got.Command.Cam.RequestExecution {
		t.Errorf("RequestExecution = false, want true")
	}
	if got.Command.Cam.RequestValidation || got.Command.Cam.RequestQueryState {
		t.Errorf("expected only RequestExecution set, got %+v", got.Command.Cam)
	}
}

func TestControlleeIDThenUUIDMutualExclusionLeavesCommandUnchanged(t *testing.T) {
	pkt := NewControlPacket()
	id := uint32(7)
	if err := pkt.Command.SetControlleeID(&id); err != nil {
		t.Fatalf("SetControlleeID: %v", err)
	}
	u := uuid.New()
	if err := pkt.Command.SetControlleeUUID(&u); !IsErrTriedUuidWhenIdSet(err) {
		t.Fatalf("expected errTriedUuidWhenIdSet, got %v", err)
	}
	if pkt.Command.ControlleeID() == nil || *pkt.Command.ControlleeID() != id {
		t.Errorf("ControlleeID changed after rejected SetControlleeUUID: %v", pkt.Command.ControlleeID())
	}
	if pkt.Command.ControlleeUUID() != nil {
		t.Errorf("ControlleeUUID should remain unset, got %v", pkt.Command.ControlleeUUID())
	}
}

func TestContextPacketWithCif7AttributeFields(t *testing.T) {
	pkt := NewContextPacket()
	bandwidth, sampleRate := 8e6, 10e6
	pkt.Context.Cif0.BandwidthHz = &bandwidth
	pkt.Context.Cif0.SampleRateSps = &sampleRate

	mean1, median1 := 8.0, 7.0
	pkt.Context.Cif0.BandwidthHzAttrs = &Cif7Attributes{Mean: &mean1, Median: &median1}
	mean2, median2 := 11.0, 9.0
	pkt.Context.Cif0.SampleRateSpsAttrs = &Cif7Attributes{Mean: &mean2, Median: &median2}

	pkt.Context.EnableCif7(Cif7(0).WithBit(Cif7BitCurrent, true).WithBit(Cif7BitMean, true).WithBit(Cif7BitMedian, true))
	pkt.UpdatePacketSize()

	if pkt.Header.PacketSize != 16 {
		t.Errorf("PacketSize = %d, want 16", pkt.Header.PacketSize)
	}
	if !pkt.Context.cif0Indicator().Bit(Cif0BitField7Enabled) {
		t.Fatalf("CIF7 enable bit not set")
	}

	data, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	got, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	bwAttrs := got.Context.Cif0.BandwidthHzAttrs
	if bwAttrs == nil || *bwAttrs.Mean != mean1 || *bwAttrs.Median != median1 {
		t.Errorf("BandwidthHzAttrs = %+v, want mean=%v median=%v", bwAttrs, mean1, median1)
	}
	srAttrs := got.Context.Cif0.SampleRateSpsAttrs
	if srAttrs == nil || *srAttrs.Mean != mean2 || *srAttrs.Median != median2 {
		t.Errorf("SampleRateSpsAttrs = %+v, want mean=%v median=%v", srAttrs, mean2, median2)
	}
}

func TestParsePacketTruncated(t *testing.T) {
	_, err := ParsePacket([]byte{0x00, 0x00})
	if !IsErrTruncatedPacket(err) {
		t.Fatalf("expected errTruncatedPacket, got %v", err)
	}

	h := &Header{PacketType: PacketTypeSignalData, PacketSize: 3}
	data := appendUint32(nil, h.encode())
	_, err = ParsePacket(data)
	if !IsErrTruncatedPacket(err) {
		t.Fatalf("expected errTruncatedPacket for short buffer, got %v", err)
	}
}

package vita49

import (
	"bytes"
	"testing"
)

func TestSignalDataPayloadRoundTrip(t *testing.T) {
	var sd SignalData
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0xaa, 0xbb, 0xcc, 0xdd}
	if err := sd.SetPayload(payload); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	if got := sd.Payload(); !bytes.Equal(got, payload) {
		t.Errorf("Payload() = %x, want %x", got, payload)
	}
	if sd.sizeWords() != 2 {
		t.Errorf("sizeWords() = %d, want 2", sd.sizeWords())
	}

	encoded := sd.encode(nil)
	decoded := decodeSignalData(encoded, 0, sd.sizeWords())
	if !bytes.Equal(decoded.Payload(), payload) {
		t.Errorf("decodeSignalData round trip = %x, want %x", decoded.Payload(), payload)
	}
}

func TestSignalDataSetPayloadUnevenLength(t *testing.T) {
	var sd SignalData
	err := sd.SetPayload([]byte{0x01, 0x02, 0x03})
	if !IsErrPayloadUneven32BitWords(err) {
		t.Fatalf("expected errPayloadUneven32BitWords, got %v", err)
	}
}

func TestSignalDataEmptyPayload(t *testing.T) {
	var sd SignalData
	if err := sd.SetPayload(nil); err != nil {
		t.Fatalf("SetPayload(nil): %v", err)
	}
	if sd.sizeWords() != 0 {
		t.Errorf("sizeWords() = %d, want 0", sd.sizeWords())
	}
}

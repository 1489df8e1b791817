package vita49

import (
	"testing"

	"github.com/google/uuid"
)

func TestDeriveCommandPayloadVariant(t *testing.T) {
	cases := []struct {
		name string
		h    *Header
		cam  Cam
		want string
	}{
		{"control", &Header{PacketType: PacketTypeCommand}, Cam{}, "control"},
		{"cancellation", func() *Header { h := &Header{PacketType: PacketTypeCommand}; h.SetCancellation(true); return h }(), Cam{}, "cancellation"},
		{"validation_ack", func() *Header { h := &Header{PacketType: PacketTypeCommand}; h.SetAck(true); return h }(), Cam{RequestValidation: true}, "validation_ack"},
		{"exec_ack", func() *Header { h := &Header{PacketType: PacketTypeCommand}; h.SetAck(true); return h }(), Cam{RequestExecution: true}, "exec_ack"},
		{"query_ack", func() *Header { h := &Header{PacketType: PacketTypeCommand}; h.SetAck(true); return h }(), Cam{RequestQueryState: true}, "query_ack"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := deriveCommandPayloadVariant(c.h, c.cam)
			if err != nil {
				t.Fatalf("deriveCommandPayloadVariant: %v", err)
			}
			if got != c.want {
				t.Errorf("kind = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDeriveCommandPayloadVariantAmbiguousAck(t *testing.T) {
	h := &Header{PacketType: PacketTypeCommand}
	h.SetAck(true)
	_, err := deriveCommandPayloadVariant(h, Cam{RequestValidation: true, RequestExecution: true})
	if !IsErrAmbiguousAckKind(err) {
		t.Fatalf("expected errAmbiguousAckKind, got %v", err)
	}
	_, err = deriveCommandPayloadVariant(h, Cam{})
	if !IsErrAmbiguousAckKind(err) {
		t.Fatalf("expected errAmbiguousAckKind for zero requests, got %v", err)
	}
}

func TestCommandControlleeAddressingMutualExclusion(t *testing.T) {
	c := &Command{}
	id := uint32(7)
	if err := c.SetControlleeID(&id); err != nil {
		t.Fatalf("SetControlleeID: %v", err)
	}
	u := uuid.New()
	if err := c.SetControlleeUUID(&u); !IsErrTriedUuidWhenIdSet(err) {
		t.Fatalf("expected errTriedUuidWhenIdSet, got %v", err)
	}

	c2 := &Command{}
	if err := c2.SetControlleeUUID(&u); err != nil {
		t.Fatalf("SetControlleeUUID: %v", err)
	}
	if err := c2.SetControlleeID(&id); !IsErrTriedIdWhenUuidSet(err) {
		t.Fatalf("expected errTriedIdWhenUuidSet, got %v", err)
	}
}

func TestCommandEncodeDecodeRoundTripWithUUIDAddressing(t *testing.T) {
	c := &Command{MessageID: 99, Payload: &Control{}}
	controllee := uuid.New()
	if err := c.SetControlleeUUID(&controllee); err != nil {
		t.Fatalf("SetControlleeUUID: %v", err)
	}

	b, err := c.encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) != c.sizeWords()*4 {
		t.Fatalf("encoded length = %d, want %d", len(b), c.sizeWords()*4)
	}

	got, n, err := decodeCommand(b, 0)
	if err != nil {
		t.Fatalf("decodeCommand: %v", err)
	}
	if got.MessageID != 99 {
		t.Errorf("MessageID = %d, want 99", got.MessageID)
	}
	if got.ControlleeUUID() == nil || *got.ControlleeUUID() != controllee {
		t.Errorf("ControlleeUUID() = %v, want %v", got.ControlleeUUID(), controllee)
	}
	if n != c.addressingSizeWords()*4+8 {
		t.Errorf("decodeCommand consumed %d bytes, want %d", n, c.addressingSizeWords()*4+8)
	}
}

package vita49

import "github.com/google/uuid"

// CommandPayload is the closed tagged union of command-payload variants,
// discriminated from already-parsed header and CAM bits by
// deriveCommandPayloadVariant — the Go analogue of the source's closed
// Rust enum, matching the teacher's own Frame interface pattern used to
// discriminate I/S/U frames.
type CommandPayload interface {
	commandPayloadVariant()
	sizeWords() int
	encode(b []byte) ([]byte, error)
}

// Control carries the CIF0-3/7 field table describing the tune/config
// request a controllee should apply.
type Control struct{ Context }

func (*Control) commandPayloadVariant() {}
func (c *Control) sizeWords() int       { return c.Context.sizeWords() }
func (c *Control) encode(b []byte) ([]byte, error) { return c.Context.encode(b) }

// Cancellation references a prior command without carrying data fields of
// its own (glossary: "a command variant that references prior commands
// without carrying data fields").
type Cancellation struct{}

func (*Cancellation) commandPayloadVariant()             {}
func (c *Cancellation) sizeWords() int                    { return 0 }
func (c *Cancellation) encode(b []byte) ([]byte, error)  { return b, nil }

// ValidationAck reports whether a command's parameters are plausible,
// without having executed them.
type ValidationAck struct{ Ack }

func (*ValidationAck) commandPayloadVariant()            {}
func (a *ValidationAck) sizeWords() int                   { return a.Ack.sizeWords() }
func (a *ValidationAck) encode(b []byte) ([]byte, error) { return a.Ack.encode(b) }

// ExecAck reports whether a command was actually performed.
type ExecAck struct{ Ack }

func (*ExecAck) commandPayloadVariant()                  {}
func (a *ExecAck) sizeWords() int                         { return a.Ack.sizeWords() }
func (a *ExecAck) encode(b []byte) ([]byte, error)       { return a.Ack.encode(b) }

// QueryAck reports a controllee's current state, sharing the same CIF
// container Control and Context packets use.
type QueryAck struct{ Context }

func (*QueryAck) commandPayloadVariant() {}
func (q *QueryAck) sizeWords() int       { return q.Context.sizeWords() }
func (q *QueryAck) encode(b []byte) ([]byte, error) { return q.Context.encode(b) }

// deriveCommandPayloadVariant is a pure function of header+CAM bits, table
// dispatched with no backtracking, per §4.5 and command_payload.rs's
// derive_type.
func deriveCommandPayloadVariant(h *Header, cam Cam) (kind string, err error) {
	if h.IsCancellation() {
		return "cancellation", nil
	}
	if h.IsAck() {
		switch cam.AckKindPopcount() {
		case 1:
			switch {
			case cam.RequestValidation:
				return "validation_ack", nil
			case cam.RequestExecution:
				return "exec_ack", nil
			case cam.RequestQueryState:
				return "query_ack", nil
			}
		default:
			return "", errAmbiguousAckKind{cam.AckKindPopcount()}
		}
	}
	return "control", nil
}

// Command is the top-level payload of Command/ExtensionCommand packets:
// a CAM word, a message id, optional controllee/controller addressing,
// and a variant payload (§3 "Command").
type Command struct {
	Cam       Cam
	MessageID uint32

	controlleeID   *uint32
	controlleeUUID *uuid.UUID
	controllerID   *uint32
	controllerUUID *uuid.UUID

	Payload CommandPayload
}

func (c *Command) ControlleeID() *uint32     { return c.controlleeID }
func (c *Command) ControlleeUUID() *uuid.UUID { return c.controlleeUUID }
func (c *Command) ControllerID() *uint32     { return c.controllerID }
func (c *Command) ControllerUUID() *uuid.UUID { return c.controllerUUID }

// SetControlleeID sets the 32-bit controllee address. Fails with
// errTriedIdWhenUuidSet if a controllee UUID is already set (§3 invariant:
// 32-bit and 128-bit forms are mutually exclusive).
func (c *Command) SetControlleeID(id *uint32) error {
	if id != nil && c.controlleeUUID != nil {
		return errTriedIdWhenUuidSet{"controllee"}
	}
	c.controlleeID = id
	c.Cam.ControlleeEnabled = id != nil
	c.Cam.ControlleeIDFormat = IDFormat32Bit
	return nil
}

// SetControlleeUUID is the 128-bit mirror of SetControlleeID.
func (c *Command) SetControlleeUUID(id *uuid.UUID) error {
	if id != nil && c.controlleeID != nil {
		return errTriedUuidWhenIdSet{"controllee"}
	}
	c.controlleeUUID = id
	c.Cam.ControlleeEnabled = id != nil
	c.Cam.ControlleeIDFormat = IDFormat128Bit
	return nil
}

// SetControllerID sets the 32-bit controller address.
func (c *Command) SetControllerID(id *uint32) error {
	if id != nil && c.controllerUUID != nil {
		return errTriedIdWhenUuidSet{"controller"}
	}
	c.controllerID = id
	c.Cam.ControllerEnabled = id != nil
	c.Cam.ControllerIDFormat = IDFormat32Bit
	return nil
}

// SetControllerUUID is the 128-bit mirror of SetControllerID.
func (c *Command) SetControllerUUID(id *uuid.UUID) error {
	if id != nil && c.controllerID != nil {
		return errTriedUuidWhenIdSet{"controller"}
	}
	c.controllerUUID = id
	c.Cam.ControllerEnabled = id != nil
	c.Cam.ControllerIDFormat = IDFormat128Bit
	return nil
}

// Control returns the payload as a *Control, or errControlOnly if this
// command carries a different variant (§7 "ControlOnly").
func (c *Command) Control() (*Control, error) {
	v, ok := c.Payload.(*Control)
	if !ok {
		return nil, errControlOnly{}
	}
	return v, nil
}

// Cancellation returns the payload as a *Cancellation, or
// errCancellationOnly if this command carries a different variant (§7
// "CancellationOnly").
func (c *Command) Cancellation() (*Cancellation, error) {
	v, ok := c.Payload.(*Cancellation)
	if !ok {
		return nil, errCancellationOnly{}
	}
	return v, nil
}

// ValidationAck returns the payload as a *ValidationAck, or
// errValidationAckOnly if this command carries a different variant (§7
// "ValidationAckOnly").
func (c *Command) ValidationAck() (*ValidationAck, error) {
	v, ok := c.Payload.(*ValidationAck)
	if !ok {
		return nil, errValidationAckOnly{}
	}
	return v, nil
}

// ExecAck returns the payload as an *ExecAck, or errExecAckOnly if this
// command carries a different variant (§7 "ExecAckOnly").
func (c *Command) ExecAck() (*ExecAck, error) {
	v, ok := c.Payload.(*ExecAck)
	if !ok {
		return nil, errExecAckOnly{}
	}
	return v, nil
}

// QueryAck returns the payload as a *QueryAck, or errQueryAckOnly if this
// command carries a different variant (§7 "QueryAckOnly").
func (c *Command) QueryAck() (*QueryAck, error) {
	v, ok := c.Payload.(*QueryAck)
	if !ok {
		return nil, errQueryAckOnly{}
	}
	return v, nil
}

func (c *Command) addressingSizeWords() int {
	n := 0
	if c.Cam.ControlleeEnabled {
		if c.Cam.ControlleeIDFormat == IDFormat128Bit {
			n += 4
		} else {
			n++
		}
	}
	if c.Cam.ControllerEnabled {
		if c.Cam.ControllerIDFormat == IDFormat128Bit {
			n += 4
		} else {
			n++
		}
	}
	return n
}

func (c *Command) sizeWords() int {
	n := 2 // CAM + message id
	n += c.addressingSizeWords()
	if c.Payload != nil {
		n += c.Payload.sizeWords()
	}
	return n
}

func (c *Command) encode(b []byte) ([]byte, error) {
	b = appendUint32(b, c.Cam.encode())
	b = appendUint32(b, c.MessageID)
	if c.Cam.ControlleeEnabled {
		if c.Cam.ControlleeIDFormat == IDFormat128Bit {
			b = appendUUID(b, *c.controlleeUUID)
		} else {
			b = appendUint32(b, *c.controlleeID)
		}
	}
	if c.Cam.ControllerEnabled {
		if c.Cam.ControllerIDFormat == IDFormat128Bit {
			b = appendUUID(b, *c.controllerUUID)
		} else {
			b = appendUint32(b, *c.controllerID)
		}
	}
	if c.Payload == nil {
		return b, nil
	}
	return c.Payload.encode(b)
}

func appendUUID(b []byte, id uuid.UUID) []byte {
	return append(b, id[:]...)
}

func readUUID(b []byte, off int) uuid.UUID {
	var id uuid.UUID
	copy(id[:], b[off:off+16])
	return id
}

// decodeCommand parses the CAM/message-id/addressing prefix shared by
// every command payload variant; the caller is responsible for then
// decoding the variant-specific payload that follows at the returned
// offset.
func decodeCommand(b []byte, off int) (*Command, int, error) {
	cur := off
	cam := decodeCam(readUint32(b, cur))
	cur += 4
	messageID := readUint32(b, cur)
	cur += 4

	c := &Command{Cam: cam, MessageID: messageID}
	if cam.ControlleeEnabled {
		if cam.ControlleeIDFormat == IDFormat128Bit {
			id := readUUID(b, cur)
			c.controlleeUUID = &id
			cur += 16
		} else {
			v := readUint32(b, cur)
			c.controlleeID = &v
			cur += 4
		}
	}
	if cam.ControllerEnabled {
		if cam.ControllerIDFormat == IDFormat128Bit {
			id := readUUID(b, cur)
			c.controllerUUID = &id
			cur += 16
		} else {
			v := readUint32(b, cur)
			c.controllerID = &v
			cur += 4
		}
	}
	return c, cur - off, nil
}

package vita49

import "runtime"

// Vrt is the top-level packet: a header plus whichever optional header-tail
// extensions and payload variant its packet type implies, plus an optional
// trailer (§3 "Packet (top-level)", §4.1).
type Vrt struct {
	Header Header

	StreamID            *uint32
	ClassID             *ClassIdentifier
	IntegerTimestamp    *IntegerTimestamp
	FractionalTimestamp *FractionalTimestamp

	SignalData *SignalData
	Context    *Context
	Command    *Command

	Trailer *uint32
}

// NewSignalDataPacket returns a well-formed signal-data packet skeleton
// with an empty payload.
func NewSignalDataPacket() *Vrt {
	return &Vrt{
		Header:     Header{PacketType: PacketTypeSignalData},
		SignalData: &SignalData{},
	}
}

// NewContextPacket returns a well-formed context packet skeleton.
func NewContextPacket() *Vrt {
	return &Vrt{
		Header:  Header{PacketType: PacketTypeContext},
		Context: &Context{},
	}
}

func newCommandPacket(payload CommandPayload) *Vrt {
	return &Vrt{
		Header:  Header{PacketType: PacketTypeCommand},
		Command: &Command{Payload: payload},
	}
}

// NewControlPacket returns a well-formed control command packet skeleton.
func NewControlPacket() *Vrt {
	return newCommandPacket(&Control{})
}

// NewCancellationPacket returns a command packet whose header marks it as
// a cancellation.
func NewCancellationPacket() *Vrt {
	v := newCommandPacket(&Cancellation{})
	v.Header.SetCancellation(true)
	return v
}

// NewValidationAckPacket returns an ACK command packet requesting
// validation.
func NewValidationAckPacket() *Vrt {
	v := newCommandPacket(&ValidationAck{})
	v.Header.SetAck(true)
	v.Command.Cam.RequestValidation = true
	return v
}

// NewExecAckPacket returns an ACK command packet requesting execution
// confirmation.
func NewExecAckPacket() *Vrt {
	v := newCommandPacket(&ExecAck{})
	v.Header.SetAck(true)
	v.Command.Cam.RequestExecution = true
	return v
}

// NewQueryAckPacket returns an ACK command packet requesting current
// state.
func NewQueryAckPacket() *Vrt {
	v := newCommandPacket(&QueryAck{})
	v.Header.SetAck(true)
	v.Command.Cam.RequestQueryState = true
	return v
}

// SetStreamID sets or clears the packet's stream ID, switching the
// header's packet type between the stream-ID and no-stream-ID variants
// for signal-data/extension-data packets (§3 "stream-ID presence is
// implied by packet type"). Context and Command packet types always
// carry a stream ID, so this only updates the value for those.
func (v *Vrt) SetStreamID(id *uint32) {
	v.StreamID = id
	switch v.Header.PacketType {
	case PacketTypeSignalData, PacketTypeSignalDataStreamID:
		if id != nil {
			v.Header.PacketType = PacketTypeSignalDataStreamID
		} else {
			v.Header.PacketType = PacketTypeSignalData
		}
	case PacketTypeExtensionData, PacketTypeExtensionDataStreamID:
		if id != nil {
			v.Header.PacketType = PacketTypeExtensionDataStreamID
		} else {
			v.Header.PacketType = PacketTypeExtensionData
		}
	}
}

// SetClassID sets or clears the optional class identifier and toggles the
// header's presence bit to match.
func (v *Vrt) SetClassID(id *ClassIdentifier) {
	v.ClassID = id
	v.Header.ClassIDPresent = id != nil
}

// SetIntegerTimestamp sets or clears the optional integer timestamp and
// the TSI mode together, atomically (§4.1).
func (v *Vrt) SetIntegerTimestamp(ts *uint32, tsi Tsi) {
	if ts == nil {
		v.IntegerTimestamp = nil
		v.Header.Tsi = TsiNone
		return
	}
	t := IntegerTimestamp(*ts)
	v.IntegerTimestamp = &t
	v.Header.Tsi = tsi
}

// SetFractionalTimestamp is the fractional-timestamp/TSF mirror of
// SetIntegerTimestamp.
func (v *Vrt) SetFractionalTimestamp(ts *uint64, tsf Tsf) {
	if ts == nil {
		v.FractionalTimestamp = nil
		v.Header.Tsf = TsfNone
		return
	}
	t := FractionalTimestamp(*ts)
	v.FractionalTimestamp = &t
	v.Header.Tsf = tsf
}

// SetTrailer sets or clears the optional trailer word. Meaningful only
// for signal-data packets (§3).
func (v *Vrt) SetTrailer(trailer *uint32) {
	v.Trailer = trailer
	v.Header.SetTrailer(trailer != nil)
}

func (v *Vrt) headerTailWords() int {
	n := 0
	if v.Header.PacketType.HasStreamID() {
		n++
	}
	if v.Header.ClassIDPresent {
		n += 2
	}
	if v.Header.Tsi != TsiNone {
		n++
	}
	if v.Header.Tsf != TsfNone {
		n += 2
	}
	return n
}

func (v *Vrt) payloadSizeWords() int {
	switch {
	case v.SignalData != nil:
		return v.SignalData.sizeWords()
	case v.Context != nil:
		return v.Context.sizeWords()
	case v.Command != nil:
		return v.Command.sizeWords()
	default:
		return 0
	}
}

// UpdatePacketSize walks the payload, computing word counts, and writes
// the total into header.PacketSize (§4.1).
func (v *Vrt) UpdatePacketSize() {
	total := 1 + v.headerTailWords() + v.payloadSizeWords()
	if v.Header.HasTrailer() && v.Header.PacketType.isData() {
		total++
	}
	v.Header.PacketSize = uint16(total)
}

// ToBytes serializes the packet into a big-endian byte sequence. The
// caller should have called UpdatePacketSize first; ToBytes does not call
// it implicitly so that callers can assert the recorded size matches
// what they expect to encode (§4.1, §8 property 2).
func (v *Vrt) ToBytes() ([]byte, error) {
	b := make([]byte, 0, int(v.Header.PacketSize)*4)
	b = appendUint32(b, v.Header.encode())
	if v.Header.PacketType.HasStreamID() {
		var id uint32
		if v.StreamID != nil {
			id = *v.StreamID
		}
		b = appendUint32(b, id)
	}
	if v.Header.ClassIDPresent && v.ClassID != nil {
		b = append(b, make([]byte, 8)...)
		v.ClassID.encode(b, len(b)-8)
	}
	if v.Header.Tsi != TsiNone && v.IntegerTimestamp != nil {
		b = appendUint32(b, uint32(*v.IntegerTimestamp))
	}
	if v.Header.Tsf != TsfNone && v.FractionalTimestamp != nil {
		b = appendUint32(b, uint32(uint64(*v.FractionalTimestamp)>>32))
		b = appendUint32(b, uint32(*v.FractionalTimestamp))
	}

	var err error
	switch {
	case v.SignalData != nil:
		b = v.SignalData.encode(b)
	case v.Context != nil:
		if b, err = v.Context.encode(b); err != nil {
			return nil, err
		}
	case v.Command != nil:
		if b, err = v.Command.encode(b); err != nil {
			return nil, err
		}
	}

	if v.Header.HasTrailer() && v.Trailer != nil {
		b = appendUint32(b, *v.Trailer)
	}
	return b, nil
}

// ParsePacket parses a VRT packet from bytes. Parsing fails with
// errTruncatedPacket if fewer bytes are available than the header
// declares, errUnknownPacketType for an unrecognized packet-type code,
// errInconsistentHeader if the declared size disagrees with the parsed
// structure, or a wrapped errMalformedField from a sub-parser.
//
// The CIF/composite/ACK field tables below trust their governing indicator
// bits and read fixed offsets without re-checking bounds field by field;
// a packet whose declared size is consistent with the top-level check
// below but too short for the fields its own indicators claim to carry
// would otherwise index past the end of the slice. The recover here turns
// that out-of-range read into errTruncatedPacket instead of a panic, so a
// malformed packet always fails the decode as a whole (§4.10/§7) rather
// than crashing the caller.
func ParsePacket(data []byte) (v *Vrt, err error) {
	origLen := len(data)
	declaredBytes := -1
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			v, err = nil, errTruncatedPacket{declaredBytes, origLen}
		}
	}()

	if len(data) < 4 {
		return nil, errTruncatedPacket{4, len(data)}
	}
	header := decodeHeader(readUint32(data, 0))
	declaredBytes = int(header.PacketSize) * 4
	if declaredBytes > len(data) {
		return nil, errTruncatedPacket{declaredBytes, len(data)}
	}
	if declaredBytes < 4 {
		return nil, errInconsistentHeader{int(header.PacketSize), 1}
	}
	data = data[:declaredBytes]

	switch header.PacketType {
	case PacketTypeSignalData, PacketTypeSignalDataStreamID,
		PacketTypeContext, PacketTypeCommand:
	case PacketTypeExtensionData, PacketTypeExtensionDataStreamID,
		PacketTypeExtensionContext, PacketTypeExtensionCommand:
		return nil, errUnsupportedFeature{"extension packet classes"}
	default:
		return nil, errUnknownPacketType{uint8(header.PacketType)}
	}

	v = &Vrt{Header: *header}
	cur := 4

	if header.PacketType.HasStreamID() {
		id := readUint32(data, cur)
		v.StreamID = &id
		cur += 4
	}
	if header.ClassIDPresent {
		if cur+8 > len(data) {
			return nil, errTruncatedPacket{cur + 8, len(data)}
		}
		cid := decodeClassIdentifier(data, cur)
		v.ClassID = &cid
		cur += 8
	}
	if header.Tsi != TsiNone {
		if cur+4 > len(data) {
			return nil, errTruncatedPacket{cur + 4, len(data)}
		}
		ts := IntegerTimestamp(readUint32(data, cur))
		v.IntegerTimestamp = &ts
		cur += 4
	}
	if header.Tsf != TsfNone {
		if cur+8 > len(data) {
			return nil, errTruncatedPacket{cur + 8, len(data)}
		}
		ts := FractionalTimestamp(uint64(readUint32(data, cur))<<32 | uint64(readUint32(data, cur+4)))
		v.FractionalTimestamp = &ts
		cur += 8
	}

	trailerWords := 0
	if header.HasTrailer() && header.PacketType.isData() {
		trailerWords = 1
	}
	payloadEnd := len(data) - trailerWords*4
	if payloadEnd < cur {
		return nil, errInconsistentHeader{int(header.PacketSize), cur / 4}
	}

	switch {
	case header.PacketType.isData():
		words := (payloadEnd - cur) / 4
		v.SignalData = decodeSignalData(data, cur, words)
		cur += words * 4
	case header.PacketType.isContext():
		ctx, n, err := decodeContext(data, cur)
		if err != nil {
			return nil, errMalformedField{"context", cur, err}
		}
		v.Context = ctx
		cur += n
	case header.PacketType.isCommand():
		cmd, n, err := decodeCommand(data, cur)
		if err != nil {
			return nil, errMalformedField{"command", cur, err}
		}
		cur += n
		kind, err := deriveCommandPayloadVariant(header, cmd.Cam)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "cancellation":
			cmd.Payload = &Cancellation{}
		case "control":
			ctx, n, err := decodeContext(data, cur)
			if err != nil {
				return nil, errMalformedField{"control", cur, err}
			}
			cmd.Payload = &Control{Context: *ctx}
			cur += n
		case "query_ack":
			ctx, n, err := decodeContext(data, cur)
			if err != nil {
				return nil, errMalformedField{"query_ack", cur, err}
			}
			cmd.Payload = &QueryAck{Context: *ctx}
			cur += n
		case "validation_ack":
			ack, n, err := decodeAck(data, cur, cmd.Cam)
			if err != nil {
				return nil, errMalformedField{"validation_ack", cur, err}
			}
			cmd.Payload = &ValidationAck{Ack: *ack}
			cur += n
		case "exec_ack":
			ack, n, err := decodeAck(data, cur, cmd.Cam)
			if err != nil {
				return nil, errMalformedField{"exec_ack", cur, err}
			}
			cmd.Payload = &ExecAck{Ack: *ack}
			cur += n
		}
		v.Command = cmd
	}

	if header.HasTrailer() && header.PacketType.isData() {
		t := readUint32(data, payloadEnd)
		v.Trailer = &t
	}

	if cur != payloadEnd {
		return nil, errInconsistentHeader{int(header.PacketSize), cur / 4}
	}
	return v, nil
}

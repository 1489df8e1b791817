package vita49

// SignalData is the opaque payload of a SignalData/ExtensionData packet:
// a sequence of 32-bit big-endian words exposed as a byte view (§3
// "SignalData").
type SignalData struct {
	words []uint32
}

// SetPayload stores bytes as 32-bit big-endian groups. Fails with
// errPayloadUneven32BitWords if length is not a multiple of 4 (§4.8).
func (s *SignalData) SetPayload(data []byte) error {
	if len(data)%4 != 0 {
		return errPayloadUneven32BitWords{len(data)}
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = readUint32(data, i*4)
	}
	s.words = words
	return nil
}

// Payload materializes the original byte view.
func (s *SignalData) Payload() []byte {
	out := make([]byte, len(s.words)*4)
	for i, w := range s.words {
		writeUint32(out, i*4, w)
	}
	return out
}

func (s *SignalData) sizeWords() int { return len(s.words) }

func (s *SignalData) encode(b []byte) []byte {
	for _, w := range s.words {
		b = appendUint32(b, w)
	}
	return b
}

func decodeSignalData(b []byte, off int, words int) *SignalData {
	ws := make([]uint32, words)
	for i := range ws {
		ws[i] = readUint32(b, off+i*4)
	}
	return &SignalData{words: ws}
}

package vita49

import "fmt"

// errTruncatedPacket reports fewer bytes available than the header declared.
type errTruncatedPacket struct {
	wanted, got int
}

func (e errTruncatedPacket) Error() string {
	return fmt.Sprintf("truncated packet: wanted %d bytes, got %d", e.wanted, e.got)
}

// IsErrTruncatedPacket reports whether err is a truncated-packet error.
func IsErrTruncatedPacket(err error) bool {
	_, ok := err.(errTruncatedPacket)
	return ok
}

// errInconsistentHeader reports a declared packet size that disagrees with
// the structure actually parsed.
type errInconsistentHeader struct {
	declaredWords, actualWords int
}

func (e errInconsistentHeader) Error() string {
	return fmt.Sprintf("inconsistent header: declared %d words, parsed %d", e.declaredWords, e.actualWords)
}

func IsErrInconsistentHeader(err error) bool {
	_, ok := err.(errInconsistentHeader)
	return ok
}

// errUnknownPacketType reports a packet type code this library does not
// recognize.
type errUnknownPacketType struct {
	code uint8
}

func (e errUnknownPacketType) Error() string {
	return fmt.Sprintf("unknown packet type code: %#x", e.code)
}

func IsErrUnknownPacketType(err error) bool {
	_, ok := err.(errUnknownPacketType)
	return ok
}

// errUnsupportedFeature reports a recognizable but unimplemented codepoint.
type errUnsupportedFeature struct {
	feature string
}

func (e errUnsupportedFeature) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.feature)
}

func IsErrUnsupportedFeature(err error) bool {
	_, ok := err.(errUnsupportedFeature)
	return ok
}

// errAmbiguousAckKind reports that CAM does not select exactly one of
// validation/execution/state for an ACK packet.
type errAmbiguousAckKind struct {
	popcount int
}

func (e errAmbiguousAckKind) Error() string {
	return fmt.Sprintf("ambiguous ack kind: %d of {validation,execution,state} set, want exactly 1", e.popcount)
}

func IsErrAmbiguousAckKind(err error) bool {
	_, ok := err.(errAmbiguousAckKind)
	return ok
}

// errTriedIdWhenUuidSet reports an attempt to set a 32-bit id while the
// 128-bit uuid form of the same party is already set.
type errTriedIdWhenUuidSet struct{ party string }

func (e errTriedIdWhenUuidSet) Error() string {
	return fmt.Sprintf("tried to set %s id while %s uuid is set", e.party, e.party)
}

func IsErrTriedIdWhenUuidSet(err error) bool {
	_, ok := err.(errTriedIdWhenUuidSet)
	return ok
}

// errTriedUuidWhenIdSet is the mirror image of errTriedIdWhenUuidSet.
type errTriedUuidWhenIdSet struct{ party string }

func (e errTriedUuidWhenIdSet) Error() string {
	return fmt.Sprintf("tried to set %s uuid while %s id is set", e.party, e.party)
}

func IsErrTriedUuidWhenIdSet(err error) bool {
	_, ok := err.(errTriedUuidWhenIdSet)
	return ok
}

// errPayloadUneven32BitWords reports signal-data bytes that are not a
// multiple of 4.
type errPayloadUneven32BitWords struct{ length int }

func (e errPayloadUneven32BitWords) Error() string {
	return fmt.Sprintf("signal data payload length %d is not a multiple of 4 bytes", e.length)
}

func IsErrPayloadUneven32BitWords(err error) bool {
	_, ok := err.(errPayloadUneven32BitWords)
	return ok
}

// errFieldOutOfRange reports a fixed-point conversion overflow.
type errFieldOutOfRange struct {
	field string
	value float64
}

func (e errFieldOutOfRange) Error() string {
	return fmt.Sprintf("field %s: value %g out of representable range", e.field, e.value)
}

func IsErrFieldOutOfRange(err error) bool {
	_, ok := err.(errFieldOutOfRange)
	return ok
}

// errControlOnly reports a Command.Control() call on a payload that is not
// the Control variant.
type errControlOnly struct{}

func (e errControlOnly) Error() string {
	return "operation only valid on control command payloads"
}

func IsErrControlOnly(err error) bool {
	_, ok := err.(errControlOnly)
	return ok
}

// errCancellationOnly reports a Command.Cancellation() call on a payload
// that is not the Cancellation variant.
type errCancellationOnly struct{}

func (e errCancellationOnly) Error() string {
	return "operation only valid on cancellation command payloads"
}

func IsErrCancellationOnly(err error) bool {
	_, ok := err.(errCancellationOnly)
	return ok
}

// errValidationAckOnly reports a Command.ValidationAck() call on a payload
// that is not the ValidationAck variant.
type errValidationAckOnly struct{}

func (e errValidationAckOnly) Error() string {
	return "operation only valid on validation-ack command payloads"
}

func IsErrValidationAckOnly(err error) bool {
	_, ok := err.(errValidationAckOnly)
	return ok
}

// errExecAckOnly reports a Command.ExecAck() call on a payload that is not
// the ExecAck variant.
type errExecAckOnly struct{}

func (e errExecAckOnly) Error() string {
	return "operation only valid on exec-ack command payloads"
}

func IsErrExecAckOnly(err error) bool {
	_, ok := err.(errExecAckOnly)
	return ok
}

// errQueryAckOnly reports a Command.QueryAck() call on a payload that is
// not the QueryAck variant.
type errQueryAckOnly struct{}

func (e errQueryAckOnly) Error() string {
	return "operation only valid on query-ack command payloads"
}

func IsErrQueryAckOnly(err error) bool {
	_, ok := err.(errQueryAckOnly)
	return ok
}

// errMalformedField reports a sub-parser failure with a byte offset.
type errMalformedField struct {
	field  string
	offset int
	cause  error
}

func (e errMalformedField) Error() string {
	return fmt.Sprintf("malformed field %s at offset %d: %v", e.field, e.offset, e.cause)
}

func (e errMalformedField) Unwrap() error {
	return e.cause
}

func IsErrMalformedField(err error) bool {
	_, ok := err.(errMalformedField)
	return ok
}

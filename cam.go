package vita49

// ActionMode selects what a controllee should actually do with a control
// packet's field values.
type ActionMode uint8

const (
	ActionModeNoAction ActionMode = 0
	ActionModeDryRun   ActionMode = 1
	ActionModeExecute  ActionMode = 2
)

// IDFormat selects whether a controllee/controller is addressed by a
// 32-bit ID or a 128-bit UUID.
type IDFormat uint8

const (
	IDFormat32Bit  IDFormat = 0
	IDFormat128Bit IDFormat = 1
)

// Cam is the Control/Ack Mode word carried by every command payload. Bit
// layout follows ANSI/VITA-49.2-2017 §8.3.1; see command.rs in the
// original source for the field catalog this mirrors.
type Cam struct {
	ControlleeEnabled bool
	ControllerEnabled bool
	ControlleeIDFormat IDFormat
	ControllerIDFormat IDFormat
	PartialPacketImplPermitted bool
	WarningsPermitted          bool
	ActionMode                 ActionMode
	RequestValidation          bool
	RequestExecution           bool
	RequestQueryState          bool
	RequestWarning             bool
	RequestError               bool
}

// AckKindPopcount returns how many of {validation, execution, state} are
// requested — exactly one is required to select an ACK variant (§4.5).
func (c Cam) AckKindPopcount() int {
	n := 0
	if c.RequestValidation {
		n++
	}
	if c.RequestExecution {
		n++
	}
	if c.RequestQueryState {
		n++
	}
	return n
}

func (c Cam) encode() uint32 {
	var w uint32
	if c.ControlleeEnabled {
		w |= 1 << 31
	}
	if c.ControllerEnabled {
		w |= 1 << 30
	}
	w |= uint32(c.ControlleeIDFormat&1) << 29
	w |= uint32(c.ControllerIDFormat&1) << 28
	if c.PartialPacketImplPermitted {
		w |= 1 << 27
	}
	if c.WarningsPermitted {
		w |= 1 << 26
	}
	w |= uint32(c.ActionMode&0x3) << 24
	if c.RequestValidation {
		w |= 1 << 23
	}
	if c.RequestExecution {
		w |= 1 << 22
	}
	if c.RequestQueryState {
		w |= 1 << 21
	}
	if c.RequestWarning {
		w |= 1 << 20
	}
	if c.RequestError {
		w |= 1 << 19
	}
	return w
}

func decodeCam(w uint32) Cam {
	return Cam{
		ControlleeEnabled:          (w>>31)&1 == 1,
		ControllerEnabled:          (w>>30)&1 == 1,
		ControlleeIDFormat:         IDFormat((w >> 29) & 1),
		ControllerIDFormat:         IDFormat((w >> 28) & 1),
		PartialPacketImplPermitted: (w>>27)&1 == 1,
		WarningsPermitted:          (w>>26)&1 == 1,
		ActionMode:                 ActionMode((w >> 24) & 0x3),
		RequestValidation:          (w>>23)&1 == 1,
		RequestExecution:           (w>>22)&1 == 1,
		RequestQueryState:          (w>>21)&1 == 1,
		RequestWarning:             (w>>20)&1 == 1,
		RequestError:               (w>>19)&1 == 1,
	}
}

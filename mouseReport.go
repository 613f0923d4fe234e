package headlessterm

import "fmt"

// MouseProtocol selects the wire encoding used for mouse event reports
// sent to the PTY (spec.md §6.3).
type MouseProtocol int

const (
	// MouseProtocolLegacy is the original xterm X10/normal encoding:
	// CSI M Cb Cx Cy, with Cb/Cx/Cy each a single byte clamped to 255
	// (coordinates beyond 223 cannot be represented).
	MouseProtocolLegacy MouseProtocol = iota
	// MouseProtocolURXVT (mode 1015) reports decimal coordinates:
	// CSI Cb ; Cx ; Cy M.
	MouseProtocolURXVT
	// MouseProtocolSGR (mode 1006) reports decimal coordinates with an
	// explicit press/release suffix: CSI < Cb ; Cx ; Cy M|m.
	MouseProtocolSGR
)

// MouseButton identifies which button, or wheel direction, a mouse event
// reports, using xterm's base numbering before modifier/motion bits are
// added (spec.md §6.3: "Buttons 4..7 encoded with bits 64+").
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	// MouseButtonRelease is reported as the button on a release event in
	// the legacy/URXVT encodings, which cannot name which button was
	// released.
	MouseButtonRelease
	MouseButtonWheelUp
	MouseButtonWheelDown
	MouseButtonWheelLeft
	MouseButtonWheelRight
)

// MouseModifiers is a bitmask of modifier keys held during a mouse event,
// added into the reported button code per xterm convention.
type MouseModifiers int

const (
	MouseModShift MouseModifiers = 4
	MouseModMeta  MouseModifiers = 8
	MouseModCtrl  MouseModifiers = 16
)

// baseButtonCode returns the xterm button number for b, before modifier
// or motion bits are added.
func baseButtonCode(b MouseButton) int {
	switch b {
	case MouseButtonLeft:
		return 0
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseButtonRelease:
		return 3
	case MouseButtonWheelUp:
		return 64
	case MouseButtonWheelDown:
		return 65
	case MouseButtonWheelLeft:
		return 66
	case MouseButtonWheelRight:
		return 67
	default:
		return 0
	}
}

// EncodeMouseEvent returns the escape sequence reporting a mouse event in
// the given protocol (spec.md §6.3). x and y are 1-based cell
// coordinates. motion reports a drag/hover event (mode 1002/1003); it is
// mutually exclusive with a release (pressed is ignored when motion is
// true). Legacy and URXVT encodings only report presses, motion and
// releases-of-any-button (button == MouseButtonRelease); they return nil for
// other release events. Motion events are always encoded.
func EncodeMouseEvent(protocol MouseProtocol, button MouseButton, mods MouseModifiers, x, y int, pressed, motion bool) []byte {
	code := baseButtonCode(button) | int(mods)
	if motion {
		code |= 32
	}

	switch protocol {
	case MouseProtocolSGR:
		suffix := byte('M')
		if !pressed && !motion {
			suffix = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x, y, suffix))
	case MouseProtocolURXVT:
		if !pressed && !motion && button != MouseButtonRelease {
			return nil
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, x, y))
	default: // MouseProtocolLegacy
		if !pressed && !motion && button != MouseButtonRelease {
			return nil
		}
		cb, cx, cy := code+32, x+32, y+32
		if cb > 255 {
			cb = 255
		}
		if cx > 255 {
			cx = 255
		}
		if cy > 255 {
			cy = 255
		}
		return []byte{0x1b, '[', 'M', byte(cb), byte(cx), byte(cy)}
	}
}

// EncodeFocusEvent returns the CSI I / CSI O sequence xterm's focus
// reporting mode (1004) sends on focus-in/focus-out (spec.md §6.3). The
// embedder calls this when it detects a focus change and mode 1004 is
// enabled.
func EncodeFocusEvent(focused bool) []byte {
	if focused {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

// WrapBracketedPaste wraps pasted text in the CSI 200~ / CSI 201~
// delimiters mode 2004 requires (spec.md §6.3). When filterControls is
// true, control bytes other than tab/CR/LF are stripped from the payload
// first, guarding against pasted text smuggling further escape sequences
// into the shell — policy spec.md leaves to the embedder ("optionally
// filtered").
func WrapBracketedPaste(data []byte, filterControls bool) []byte {
	if filterControls {
		filtered := make([]byte, 0, len(data))
		for _, b := range data {
			if b == 0x7f {
				continue
			}
			if b < 0x20 && b != '\t' && b != '\r' && b != '\n' {
				continue
			}
			filtered = append(filtered, b)
		}
		data = filtered
	}

	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}

// MouseProtocol derives which wire encoding to use for mouse reports from
// the terminal's current mode bits (spec.md §6.3): SGR (1006) takes
// priority when enabled; otherwise the legacy X10/normal encoding is
// used. URXVT (1015) has no dedicated mode bit in this terminal's mode
// set and must be selected explicitly by the embedder when it knows the
// application requested it.
func (t *Terminal) MouseProtocol() MouseProtocol {
	if t.HasMode(ModeSGRMouse) {
		return MouseProtocolSGR
	}
	return MouseProtocolLegacy
}

// MouseReportingEnabled returns true if any mouse tracking mode (click,
// cell-motion, or all-motion) is currently active.
func (t *Terminal) MouseReportingEnabled() bool {
	return t.HasMode(ModeReportMouseClicks | ModeReportCellMouseMotion | ModeReportAllMouseMotion)
}

// MouseMotionReportingEnabled returns true if motion events should be
// reported: mode 1002 (button-drag only) or mode 1003 (all motion).
func (t *Terminal) MouseMotionReportingEnabled() bool {
	return t.HasMode(ModeReportCellMouseMotion | ModeReportAllMouseMotion)
}

// FocusReportingEnabled returns true if mode 1004 (focus in/out
// reporting) is currently active.
func (t *Terminal) FocusReportingEnabled() bool {
	return t.HasMode(ModeReportFocusInOut)
}

// BracketedPasteEnabled returns true if mode 2004 is currently active.
func (t *Terminal) BracketedPasteEnabled() bool {
	return t.HasMode(ModeBracketedPaste)
}

package headlessterm

import "testing"

func TestEncodeMouseEventSGRPress(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolSGR, MouseButtonLeft, 0, 5, 10, true, false)
	want := "\x1b[<0;5;10M"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventSGRRelease(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolSGR, MouseButtonLeft, 0, 5, 10, false, false)
	want := "\x1b[<0;5;10m"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventSGRWithModifiers(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolSGR, MouseButtonRight, MouseModShift|MouseModCtrl, 1, 1, true, false)
	want := "\x1b[<22;1;1M" // 2 (right) | 4 (shift) | 16 (ctrl) = 22
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventSGRWheel(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolSGR, MouseButtonWheelUp, 0, 3, 4, true, false)
	want := "\x1b[<64;3;4M"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventSGRMotion(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolSGR, MouseButtonLeft, 0, 7, 8, true, true)
	want := "\x1b[<32;7;8M" // motion bit (32) set, always reported as M regardless of pressed
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventURXVT(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolURXVT, MouseButtonLeft, 0, 5, 10, true, false)
	want := "\x1b[32;5;10M" // 0 (left) + 32
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventURXVTRelease(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolURXVT, MouseButtonRelease, 0, 5, 10, false, false)
	want := "\x1b[35;5;10M" // 3 (release) + 32
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMouseEventURXVTDropsUnreportableRelease(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolURXVT, MouseButtonLeft, 0, 5, 10, false, false)
	if got != nil {
		t.Errorf("expected nil (non-motion, non-release-coded release is unreportable), got %q", got)
	}
}

func TestEncodeMouseEventLegacyPress(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolLegacy, MouseButtonLeft, 0, 5, 10, true, false)
	want := []byte{0x1b, '[', 'M', 32, 37, 42}
	if string(got) != string(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeMouseEventLegacyRelease(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolLegacy, MouseButtonRelease, 0, 5, 10, false, false)
	want := []byte{0x1b, '[', 'M', 32 + 3, 37, 42}
	if string(got) != string(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeMouseEventLegacyClampsLargeCoordinates(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolLegacy, MouseButtonLeft, 0, 300, 300, true, false)
	if len(got) != 6 {
		t.Fatalf("expected 6-byte sequence, got %d bytes", len(got))
	}
	if got[4] != 255 || got[5] != 255 {
		t.Errorf("expected coordinates clamped to 255, got cx=%d cy=%d", got[4], got[5])
	}
}

func TestEncodeMouseEventLegacyDropsUnreportableRelease(t *testing.T) {
	got := EncodeMouseEvent(MouseProtocolLegacy, MouseButtonLeft, 0, 5, 10, false, false)
	if got != nil {
		t.Errorf("expected nil for a non-press non-motion non-release event, got %v", got)
	}
}

func TestEncodeFocusEvent(t *testing.T) {
	if got := string(EncodeFocusEvent(true)); got != "\x1b[I" {
		t.Errorf("focus-in: got %q, want %q", got, "\x1b[I")
	}
	if got := string(EncodeFocusEvent(false)); got != "\x1b[O" {
		t.Errorf("focus-out: got %q, want %q", got, "\x1b[O")
	}
}

func TestWrapBracketedPaste(t *testing.T) {
	got := string(WrapBracketedPaste([]byte("hello"), false))
	want := "\x1b[200~hello\x1b[201~"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapBracketedPasteFiltersControlBytes(t *testing.T) {
	payload := []byte("he\x1b[2Jllo\x07\x7fworld\tend\r\n")
	got := string(WrapBracketedPaste(payload, true))
	want := "\x1b[200~he[2Jlloworld\tend\r\n\x1b[201~"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapBracketedPasteFilterKeepsWhitespaceControls(t *testing.T) {
	payload := []byte("a\tb\r\nc")
	got := string(WrapBracketedPaste(payload, true))
	want := "\x1b[200~a\tb\r\nc\x1b[201~"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTerminalMouseProtocolDefaultsToLegacy(t *testing.T) {
	term := New(WithSize(5, 20))
	if got := term.MouseProtocol(); got != MouseProtocolLegacy {
		t.Errorf("expected MouseProtocolLegacy by default, got %v", got)
	}
}

func TestTerminalMouseProtocolSGRAfterMode1006(t *testing.T) {
	term := New(WithSize(5, 20))
	term.WriteString("\x1b[?1006h")
	if got := term.MouseProtocol(); got != MouseProtocolSGR {
		t.Errorf("expected MouseProtocolSGR after DECSET 1006, got %v", got)
	}
}

func TestTerminalMouseReportingEnabled(t *testing.T) {
	term := New(WithSize(5, 20))
	if term.MouseReportingEnabled() {
		t.Error("expected mouse reporting disabled by default")
	}
	term.WriteString("\x1b[?1000h")
	if !term.MouseReportingEnabled() {
		t.Error("expected mouse reporting enabled after DECSET 1000")
	}
}

func TestTerminalFocusReportingEnabled(t *testing.T) {
	term := New(WithSize(5, 20))
	if term.FocusReportingEnabled() {
		t.Error("expected focus reporting disabled by default")
	}
	term.WriteString("\x1b[?1004h")
	if !term.FocusReportingEnabled() {
		t.Error("expected focus reporting enabled after DECSET 1004")
	}
}

func TestTerminalBracketedPasteEnabled(t *testing.T) {
	term := New(WithSize(5, 20))
	if term.BracketedPasteEnabled() {
		t.Error("expected bracketed paste disabled by default")
	}
	term.WriteString("\x1b[?2004h")
	if !term.BracketedPasteEnabled() {
		t.Error("expected bracketed paste enabled after DECSET 2004")
	}
}

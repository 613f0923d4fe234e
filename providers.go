package headlessterm

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position reports) back to the PTY.
// Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC Provider ---

// APCProvider handles Application Program Command sequences (OSC _).
type APCProvider interface {
	// Receive is called with the payload of an APC sequence.
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// --- PM Provider ---

// PMProvider handles Privacy Message sequences (OSC ^).
type PMProvider interface {
	// Receive is called with the payload of a PM sequence.
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// --- SOS Provider ---

// SOSProvider handles Start of String sequences (OSC X).
type SOSProvider interface {
	// Receive is called with the payload of a SOS sequence.
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// Ensure implementations satisfy their interfaces
var _ ResponseProvider = NoopResponse{}

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// ScrollbackProvider stores lines scrolled off the top of the primary buffer.
// Implementations can use in-memory storage, disk, database, etc. wrapped
// and bidiFlags mirror the row-stream record spec.md §4.3 describes
// ({text_start, attr_start, soft_wrapped, bidi_flags}); a cell's own
// Hyperlink field (not a separate parameter) carries the "id;uri" string
// the attr stream inlines, so eviction never depends on the live Ring
// hyperlink table surviving index reuse.
type ScrollbackProvider interface {
	// Push appends a line to scrollback. Oldest lines should be removed if MaxLines is exceeded.
	Push(line []Cell, wrapped bool, bidiFlags RowBidiFlags)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns nil if out of range.
	Line(index int) []Cell
	// RowAttrs returns the soft_wrapped/bidi_flags stored alongside the row
	// at index, mirroring spec.md §3.4's "is_soft_wrapped(r): rows
	// off-window are consulted via streams."
	RowAttrs(index int) (wrapped bool, bidiFlags RowBidiFlags)
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity. Implementations should trim oldest lines if needed.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// --- Clipboard Implementations ---

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string  { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Scrollback Implementations ---

// NoopScrollback discards all scrollback lines (useful for alternate buffer which has no scrollback).
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell, wrapped bool, bidiFlags RowBidiFlags) {}
func (NoopScrollback) Len() int                                              { return 0 }
func (NoopScrollback) Line(index int) []Cell                                 { return nil }
func (NoopScrollback) RowAttrs(index int) (bool, RowBidiFlags)               { return false, 0 }
func (NoopScrollback) Clear()                                                {}
func (NoopScrollback) SetMaxLines(max int)                                   {}
func (NoopScrollback) MaxLines() int                                         { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// Ensure implementations satisfy their interfaces
var _ BellProvider = (*NoopBell)(nil)
var _ TitleProvider = (*NoopTitle)(nil)
var _ APCProvider = (*NoopAPC)(nil)
var _ PMProvider = (*NoopPM)(nil)
var _ SOSProvider = (*NoopSOS)(nil)
var _ ClipboardProvider = (*NoopClipboard)(nil)
var _ ScrollbackProvider = (*NoopScrollback)(nil)
var _ RecordingProvider = (*NoopRecording)(nil)

// --- PCTERM Converter ---

// PCTERMConverter converts raw bytes from a legacy 8-bit NRCS/PC-termio
// charset into UTF-8 ahead of the terminal's UTF-8 decode stage (spec.md
// §6.1). The core never designates ISO-2022 charsets itself; when a
// converter other than NoopPCTERM is set, Write routes incoming bytes
// through it before handing them to the decoder.
type PCTERMConverter interface {
	// Convert appends the UTF-8 expansion of input to *out and returns the
	// number of leading bytes of input it consumed. Implementations may
	// consume fewer than len(input) bytes when a multi-byte sequence is
	// incomplete; the remainder is represented to Convert again, prefixed
	// to the next Write call's data, on the following invocation.
	Convert(input []byte, out *[]byte) (consumed int)
	// Charset names the legacy charset this converter decodes from.
	Charset() string
}

// NoopPCTERM treats input as already-decoded UTF-8: Convert copies input
// through unchanged and consumes all of it.
type NoopPCTERM struct{}

func (NoopPCTERM) Convert(input []byte, out *[]byte) int {
	*out = append(*out, input...)
	return len(input)
}

func (NoopPCTERM) Charset() string { return "" }

var _ PCTERMConverter = NoopPCTERM{}

// --- Change Notifications ---

// ChangeProvider receives coalesced per-Write-call notifications for
// cursor movement, content changes, and selection changes (spec.md §6.2).
// Unlike BellProvider/TitleProvider, which fire once per underlying
// control sequence, these are coalesced: Write fires CursorMoved/
// ContentsChanged at most once each per call regardless of how many cells
// or cursor moves happened while processing it, and SetSelection/
// ClearSelection fire SelectionChanged once per call.
type ChangeProvider interface {
	// CursorMoved is called after a Write call that moved the cursor.
	CursorMoved()
	// ContentsChanged is called after a Write call that mutated the
	// active buffer's cells.
	ContentsChanged()
	// SelectionChanged is called when the selection is set or cleared.
	SelectionChanged()
}

// NoopChange ignores all change notifications.
type NoopChange struct{}

func (NoopChange) CursorMoved()      {}
func (NoopChange) ContentsChanged()  {}
func (NoopChange) SelectionChanged() {}

var _ ChangeProvider = NoopChange{}

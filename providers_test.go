package headlessterm

import "testing"

// TestNoopPCTERMPassesThrough verifies the default converter is a pure
// identity pass-through (spec.md §6.1: "when unset, input is treated as
// UTF-8 directly").
func TestNoopPCTERMPassesThrough(t *testing.T) {
	var conv PCTERMConverter = NoopPCTERM{}
	var out []byte
	n := conv.Convert([]byte("hello"), &out)
	if n != 5 {
		t.Errorf("expected 5 bytes consumed, got %d", n)
	}
	if string(out) != "hello" {
		t.Errorf("expected %q, got %q", "hello", out)
	}
	if conv.Charset() != "" {
		t.Errorf("expected empty charset name, got %q", conv.Charset())
	}
}

// upperPCTERM is a trivial test converter: it uppercases ASCII letters,
// one byte at a time, to prove Write actually routes bytes through a
// configured PCTERMConverter before decoding (spec.md §6.1).
type upperPCTERM struct{}

func (upperPCTERM) Convert(input []byte, out *[]byte) int {
	for _, b := range input {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		*out = append(*out, b)
	}
	return len(input)
}

func (upperPCTERM) Charset() string { return "upper-test" }

func TestTerminalPCTERMConverterRoutesWrites(t *testing.T) {
	term := New(WithSize(5, 20), WithPCTERM(upperPCTERM{}))

	term.WriteString("hello")

	if term.Cell(0, 0).Char != 'H' {
		t.Errorf("expected converted (uppercased) input, got %q", term.Cell(0, 0).Char)
	}
	if term.Cell(0, 4).Char != 'O' {
		t.Errorf("expected converted (uppercased) input, got %q", term.Cell(0, 4).Char)
	}
}

// splitPCTERM only ever consumes bytes in pairs, to exercise the
// pending-byte carryover path across Write calls.
type splitPCTERM struct{}

func (splitPCTERM) Convert(input []byte, out *[]byte) int {
	if len(input) < 2 {
		return 0
	}
	n := len(input) - len(input)%2
	*out = append(*out, input[:n]...)
	return n
}

func (splitPCTERM) Charset() string { return "split-test" }

func TestTerminalPCTERMConverterBuffersPartialInput(t *testing.T) {
	term := New(WithSize(5, 20), WithPCTERM(splitPCTERM{}))

	// Feed one byte at a time; the converter only accepts even-length
	// chunks, so each single-byte Write should be held as pending until
	// enough bytes accumulate.
	term.WriteString("A")
	if term.Cell(0, 0).Char != ' ' {
		t.Errorf("expected no output yet (odd byte count buffered), got %q", term.Cell(0, 0).Char)
	}
	term.WriteString("B")
	if term.Cell(0, 0).Char != 'A' || term.Cell(0, 1).Char != 'B' {
		t.Errorf("expected buffered bytes flushed once paired, got %q %q",
			term.Cell(0, 0).Char, term.Cell(0, 1).Char)
	}
}

// testChangeProvider records which coalesced notifications fired and how
// many times, to verify Write/SetSelection/ClearSelection coalesce
// correctly (spec.md §6.2: "coalesced per process cycle").
type testChangeProvider struct {
	cursorMoved      int
	contentsChanged  int
	selectionChanged int
}

func (p *testChangeProvider) CursorMoved()      { p.cursorMoved++ }
func (p *testChangeProvider) ContentsChanged()  { p.contentsChanged++ }
func (p *testChangeProvider) SelectionChanged() { p.selectionChanged++ }

func TestNoopChangeIgnoresEverything(t *testing.T) {
	var provider ChangeProvider = NoopChange{}
	provider.CursorMoved()
	provider.ContentsChanged()
	provider.SelectionChanged()
}

func TestTerminalChangeProviderCoalescesPerWrite(t *testing.T) {
	changes := &testChangeProvider{}
	term := New(WithSize(5, 20), WithChange(changes))

	// A single Write containing many characters and cursor moves should
	// fire each notification at most once, not once per cell/move.
	term.WriteString("Hello\r\nWorld\x1b[2;2H")

	if changes.contentsChanged != 1 {
		t.Errorf("expected ContentsChanged coalesced to 1 call, got %d", changes.contentsChanged)
	}
	if changes.cursorMoved != 1 {
		t.Errorf("expected CursorMoved coalesced to 1 call, got %d", changes.cursorMoved)
	}
}

func TestTerminalChangeProviderNoCursorMoveWhenUnchanged(t *testing.T) {
	changes := &testChangeProvider{}
	term := New(WithSize(5, 20), WithChange(changes))

	term.WriteString("\x1b[1;31m") // SGR only, no cursor motion, no cell writes

	if changes.cursorMoved != 0 {
		t.Errorf("expected no CursorMoved call, got %d", changes.cursorMoved)
	}
	if changes.contentsChanged != 0 {
		t.Errorf("expected no ContentsChanged call (no cells written), got %d", changes.contentsChanged)
	}
}

func TestTerminalChangeProviderSelectionChanged(t *testing.T) {
	changes := &testChangeProvider{}
	term := New(WithSize(5, 20), WithChange(changes))

	term.SetSelection(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 3})
	if changes.selectionChanged != 1 {
		t.Errorf("expected 1 SelectionChanged call after SetSelection, got %d", changes.selectionChanged)
	}

	term.ClearSelection()
	if changes.selectionChanged != 2 {
		t.Errorf("expected 2 SelectionChanged calls after ClearSelection, got %d", changes.selectionChanged)
	}
}

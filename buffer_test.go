package headlessterm

import (
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(24, 80)

	if b.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", b.Rows())
	}
	if b.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", b.Cols())
	}
}

func TestBufferCell(t *testing.T) {
	b := NewBuffer(24, 80)

	cell := b.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}

	cell.Char = 'A'

	retrieved := b.Cell(0, 0)
	if retrieved.Char != 'A' {
		t.Errorf("expected 'A', got '%c'", retrieved.Char)
	}
}

func TestBufferCellOutOfBounds(t *testing.T) {
	b := NewBuffer(24, 80)

	if b.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if b.Cell(0, -1) != nil {
		t.Error("expected nil for negative col")
	}
	if b.Cell(24, 0) != nil {
		t.Error("expected nil for row >= rows")
	}
	if b.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}
}

func TestBufferClearRow(t *testing.T) {
	b := NewBuffer(24, 80)

	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 1).Char = 'B'

	b.ClearRow(0)

	if b.Cell(0, 0).Char != ' ' {
		t.Error("expected cell to be cleared")
	}
	if b.Cell(0, 1).Char != ' ' {
		t.Error("expected cell to be cleared")
	}
}

func TestBufferScrollUp(t *testing.T) {
	b := NewBuffer(5, 10)

	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('0' + row)
	}

	b.ScrollUp(0, 5, 1)

	// Row 0 should now have what was in row 1
	if b.Cell(0, 0).Char != '1' {
		t.Errorf("expected '1', got '%c'", b.Cell(0, 0).Char)
	}
	// Last row should be cleared
	if b.Cell(4, 0).Char != ' ' {
		t.Errorf("expected space, got '%c'", b.Cell(4, 0).Char)
	}
}

func TestBufferScrollDown(t *testing.T) {
	b := NewBuffer(5, 10)

	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('0' + row)
	}

	b.ScrollDown(0, 5, 1)

	// Row 1 should now have what was in row 0
	if b.Cell(1, 0).Char != '0' {
		t.Errorf("expected '0', got '%c'", b.Cell(1, 0).Char)
	}
	// First row should be cleared
	if b.Cell(0, 0).Char != ' ' {
		t.Errorf("expected space, got '%c'", b.Cell(0, 0).Char)
	}
}

func TestBufferScrollback(t *testing.T) {
	storage := &testScrollbackBuffer{lines: make([][]Cell, 0), maxLines: 100}
	b := NewBufferWithStorage(5, 10, storage)

	for row := 0; row < 5; row++ {
		b.Cell(row, 0).Char = rune('A' + row)
	}

	// Scroll up, line 0 should go to scrollback
	b.ScrollUp(0, 5, 1)

	if b.ScrollbackLen() != 1 {
		t.Errorf("expected 1 scrollback line, got %d", b.ScrollbackLen())
	}

	line := b.ScrollbackLine(0)
	if line == nil {
		t.Fatal("expected scrollback line")
	}
	if line[0].Char != 'A' {
		t.Errorf("expected 'A' in scrollback, got '%c'", line[0].Char)
	}
}

// testScrollbackBuffer is a test implementation of ScrollbackProvider
type testScrollbackBuffer struct {
	lines     [][]Cell
	wrapped   []bool
	bidiFlags []RowBidiFlags
	maxLines  int
}

func (s *testScrollbackBuffer) Push(line []Cell, wrapped bool, bidiFlags RowBidiFlags) {
	lineCopy := make([]Cell, len(line))
	copy(lineCopy, line)
	s.lines = append(s.lines, lineCopy)
	s.wrapped = append(s.wrapped, wrapped)
	s.bidiFlags = append(s.bidiFlags, bidiFlags)
	if s.maxLines > 0 && len(s.lines) > s.maxLines {
		s.lines = s.lines[len(s.lines)-s.maxLines:]
		s.wrapped = s.wrapped[len(s.wrapped)-s.maxLines:]
		s.bidiFlags = s.bidiFlags[len(s.bidiFlags)-s.maxLines:]
	}
}

func (s *testScrollbackBuffer) Len() int              { return len(s.lines) }
func (s *testScrollbackBuffer) Line(index int) []Cell { return s.lines[index] }
func (s *testScrollbackBuffer) RowAttrs(index int) (bool, RowBidiFlags) {
	if index < 0 || index >= len(s.wrapped) {
		return false, 0
	}
	return s.wrapped[index], s.bidiFlags[index]
}
func (s *testScrollbackBuffer) Clear()              { s.lines = make([][]Cell, 0); s.wrapped = nil; s.bidiFlags = nil }
func (s *testScrollbackBuffer) SetMaxLines(max int) { s.maxLines = max }
func (s *testScrollbackBuffer) MaxLines() int       { return s.maxLines }

func (s *testScrollbackBuffer) Pop() []Cell {
	if len(s.lines) == 0 {
		return nil
	}
	line := s.lines[len(s.lines)-1]
	s.lines = s.lines[:len(s.lines)-1]
	return line
}

func TestBufferLineContent(t *testing.T) {
	b := NewBuffer(24, 80)

	b.Cell(0, 0).Char = 'H'
	b.Cell(0, 1).Char = 'e'
	b.Cell(0, 2).Char = 'l'
	b.Cell(0, 3).Char = 'l'
	b.Cell(0, 4).Char = 'o'

	content := b.LineContent(0)
	if content != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", content)
	}
}

func TestBufferTabStops(t *testing.T) {
	b := NewBuffer(24, 80)

	// Default tab stops at 0, 8, 16, etc.
	next := b.NextTabStop(0)
	if next != 8 {
		t.Errorf("expected next tab at 8, got %d", next)
	}

	next = b.NextTabStop(8)
	if next != 16 {
		t.Errorf("expected next tab at 16, got %d", next)
	}

	prev := b.PrevTabStop(16)
	if prev != 8 {
		t.Errorf("expected prev tab at 8, got %d", prev)
	}
}

func TestBufferResize(t *testing.T) {
	b := NewBuffer(10, 20)

	b.Cell(0, 0).Char = 'A'
	b.Cell(5, 10).Char = 'B'

	b.Resize(20, 40)

	if b.Rows() != 20 || b.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", b.Rows(), b.Cols())
	}

	// Content should be preserved
	if b.Cell(0, 0).Char != 'A' {
		t.Error("expected content to be preserved")
	}
	if b.Cell(5, 10).Char != 'B' {
		t.Error("expected content to be preserved")
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(24, 80)

	b.ClearAllDirty()

	if b.HasDirty() {
		t.Error("expected no dirty cells")
	}

	b.MarkDirty(0, 0)

	if !b.HasDirty() {
		t.Error("expected dirty cells")
	}

	dirty := b.DirtyCells()
	if len(dirty) != 1 {
		t.Errorf("expected 1 dirty cell, got %d", len(dirty))
	}
	if dirty[0].Row != 0 || dirty[0].Col != 0 {
		t.Error("expected dirty cell at (0,0)")
	}
}

func TestBufferInsertBlanks(t *testing.T) {
	b := NewBuffer(24, 80)

	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 1).Char = 'B'
	b.Cell(0, 2).Char = 'C'

	b.InsertBlanks(0, 1, 2)

	if b.Cell(0, 0).Char != 'A' {
		t.Errorf("expected 'A', got '%c'", b.Cell(0, 0).Char)
	}
	if b.Cell(0, 1).Char != ' ' {
		t.Errorf("expected space, got '%c'", b.Cell(0, 1).Char)
	}
	if b.Cell(0, 2).Char != ' ' {
		t.Errorf("expected space, got '%c'", b.Cell(0, 2).Char)
	}
	if b.Cell(0, 3).Char != 'B' {
		t.Errorf("expected 'B', got '%c'", b.Cell(0, 3).Char)
	}
}

func TestBufferDeleteChars(t *testing.T) {
	b := NewBuffer(24, 80)

	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 1).Char = 'B'
	b.Cell(0, 2).Char = 'C'
	b.Cell(0, 3).Char = 'D'

	b.DeleteChars(0, 1, 2)

	if b.Cell(0, 0).Char != 'A' {
		t.Errorf("expected 'A', got '%c'", b.Cell(0, 0).Char)
	}
	if b.Cell(0, 1).Char != 'D' {
		t.Errorf("expected 'D', got '%c'", b.Cell(0, 1).Char)
	}
}

func TestBufferWrappedLineTracking(t *testing.T) {
	b := NewBuffer(5, 10)

	// Initially no lines are wrapped
	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped initially")
	}

	// Set wrapped
	b.SetWrapped(0, true)
	if !b.IsWrapped(0) {
		t.Error("expected line 0 to be wrapped")
	}

	// Clear wrapped
	b.SetWrapped(0, false)
	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped after clear")
	}

	// Out of bounds should not panic
	b.SetWrapped(-1, true)
	b.SetWrapped(100, true)
	if b.IsWrapped(-1) {
		t.Error("expected false for out of bounds")
	}
	if b.IsWrapped(100) {
		t.Error("expected false for out of bounds")
	}
}

func TestBufferWrappedLineTrackingWithScroll(t *testing.T) {
	b := NewBuffer(5, 10)

	// Set some wrapped flags
	b.SetWrapped(0, true)
	b.SetWrapped(1, false)
	b.SetWrapped(2, true)

	// Scroll up
	b.ScrollUp(0, 5, 1)

	// Wrapped flags should move with lines
	if b.IsWrapped(0) != false { // was line 1
		t.Error("expected line 0 not wrapped after scroll")
	}
	if b.IsWrapped(1) != true { // was line 2
		t.Error("expected line 1 wrapped after scroll")
	}
	if b.IsWrapped(4) { // new line should not be wrapped
		t.Error("expected new line not wrapped")
	}
}

func TestBufferGrowRows(t *testing.T) {
	b := NewBuffer(5, 10)

	b.Cell(0, 0).Char = 'A'
	b.Cell(4, 0).Char = 'E'

	b.GrowRows(3)

	if b.Rows() != 8 {
		t.Errorf("expected 8 rows, got %d", b.Rows())
	}

	// Content should be preserved
	if b.Cell(0, 0).Char != 'A' {
		t.Error("expected content preserved")
	}
	if b.Cell(4, 0).Char != 'E' {
		t.Error("expected content preserved")
	}

	// New rows should be empty
	if b.Cell(7, 0).Char != ' ' {
		t.Error("expected new row to be empty")
	}
}

func TestBufferGrowCols(t *testing.T) {
	b := NewBuffer(5, 10)

	b.Cell(0, 0).Char = 'A'
	b.Cell(0, 9).Char = 'B'

	b.GrowCols(0, 20)

	if b.Cols() != 20 {
		t.Errorf("expected 20 cols, got %d", b.Cols())
	}

	// Content should be preserved
	if b.Cell(0, 0).Char != 'A' {
		t.Error("expected content preserved")
	}
	if b.Cell(0, 9).Char != 'B' {
		t.Error("expected content preserved")
	}

	// New cells should be empty
	if b.Cell(0, 15).Char != ' ' {
		t.Error("expected new cell to be empty")
	}
}

func TestBufferRewrapNarrower(t *testing.T) {
	b := NewBuffer(5, 10)

	// One paragraph: row 0 ("HelloWorld", full width, soft-wrapped) joined
	// to row 1 ("Wide" followed by blanks out to the full row width).
	for i, ch := range "HelloWorld" {
		b.Cell(0, i).Char = ch
	}
	b.SetWrapped(0, true)
	for i, ch := range "Wide" {
		b.Cell(1, i).Char = ch
	}

	// Cursor on the 'W' of "Wide" (row 1, col 0).
	newRow, newCol := b.Rewrap(5, 5, 1, 0)

	if b.Cols() != 5 {
		t.Fatalf("expected 5 cols after rewrap, got %d", b.Cols())
	}

	got := ""
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			got += string(b.Cell(r, c).Char)
		}
	}
	if got != "HelloWorldWide " {
		t.Errorf("expected reflowed text %q, got %q", "HelloWorldWide ", got)
	}

	// 20 logical chars at width 5 need 4 rows; rows 0-2 continue the
	// paragraph (wrapped), row 3 ends it (not wrapped).
	if !b.IsWrapped(0) || !b.IsWrapped(1) || !b.IsWrapped(2) || b.IsWrapped(3) {
		t.Errorf("expected rows 0-2 wrapped and row 3 not, got %v %v %v %v",
			b.IsWrapped(0), b.IsWrapped(1), b.IsWrapped(2), b.IsWrapped(3))
	}

	if b.Cell(newRow, newCol).Char != 'W' {
		t.Errorf("expected cursor to track the same glyph ('W'), got %q at (%d,%d)",
			b.Cell(newRow, newCol).Char, newRow, newCol)
	}
}

func TestBufferRewrapWider(t *testing.T) {
	b := NewBuffer(5, 5)

	for i, ch := range "Hello" {
		b.Cell(0, i).Char = ch
	}
	b.SetWrapped(0, true)
	for i, ch := range "World" {
		b.Cell(1, i).Char = ch
	}

	b.Rewrap(5, 10, 0, 0)

	got := ""
	for c := 0; c < 10; c++ {
		got += string(b.Cell(0, c).Char)
	}
	if got != "HelloWorld" {
		t.Errorf("expected merged row %q, got %q", "HelloWorld", got)
	}
	if b.IsWrapped(0) {
		t.Error("expected row 0 no longer wrapped after merging into one row")
	}
}

func TestBufferRewrapSameColsIsResize(t *testing.T) {
	b := NewBuffer(5, 10)
	b.Cell(0, 0).Char = 'A'

	newRow, newCol := b.Rewrap(8, 10, 0, 0)

	if b.Rows() != 8 || b.Cols() != 10 {
		t.Errorf("expected 8x10, got %dx%d", b.Rows(), b.Cols())
	}
	if newRow != 0 || newCol != 0 {
		t.Errorf("expected cursor unchanged at (0,0), got (%d,%d)", newRow, newCol)
	}
	if b.Cell(0, 0).Char != 'A' {
		t.Error("expected content preserved when only row count changes")
	}
}

func TestBufferRewrapOverflowPushesToScrollback(t *testing.T) {
	storage := NewMemoryScrollback(100)
	b := NewBufferWithStorage(3, 10, storage)

	for i, ch := range "AAAAABBBBB" {
		b.Cell(0, i).Char = ch
	}
	b.SetWrapped(0, true)
	for i, ch := range "CCCCCDDDDD" {
		b.Cell(1, i).Char = ch
	}
	b.SetWrapped(1, true)
	for i, ch := range "EEEEE" {
		b.Cell(2, i).Char = ch
	}

	// Reflowing 30 logical chars (3 rows x 10 cols) at width 5 needs 6
	// rows, but the window only has 3: the oldest 3 must be pushed to
	// scrollback.
	b.Rewrap(3, 5, 2, 0)

	if storage.Len() != 3 {
		t.Fatalf("expected 3 rows pushed to scrollback, got %d", storage.Len())
	}
}

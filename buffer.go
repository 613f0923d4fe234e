package headlessterm

// Buffer stores a 2D grid of cells and tracks line wrapping state.
// Supports optional scrollback storage for lines scrolled off the top.
type Buffer struct {
	rows       int
	cols       int
	cells      [][]Cell
	wrapped    []bool // tracks if each line was wrapped (vs explicit newline)
	bidiFlags  []RowBidiFlags
	tabStop    []bool
	scrollback ScrollbackProvider
	hasDirty   bool

	// insertDelta counts every row ever pushed to scrollback since the
	// buffer was created (spec.md §3.4's "delta", monotonically
	// increasing). scrollDelta is the viewport's current scroll-back
	// offset in rows, expressed as spec.md §3.5's "scroll_delta: f64".
	insertDelta uint64
	scrollDelta float64

	// contentGeneration increments on every content mutation, independent
	// of hasDirty/ClearAllDirty (which a renderer owns and resets on its
	// own schedule). Terminal.Write uses it to detect whether this Feed
	// cycle produced any change, for coalesced ContentsChanged
	// notifications (spec.md §6.2).
	contentGeneration uint64

	// Hyperlink table: index (1..N) -> interned "id;uri" string. Index 0
	// means "no hyperlink"; freeList holds indices whose last referencing
	// cell has been overwritten, for reuse by InternHyperlink.
	hyperlinks map[uint32]string
	freeList   []uint32
	nextLinkID uint32
}

// NewBuffer creates a buffer with the given dimensions and no scrollback.
func NewBuffer(rows, cols int) *Buffer {
	return NewBufferWithStorage(rows, cols, NoopScrollback{})
}

// NewBufferWithStorage creates a buffer with custom scrollback storage.
// Tab stops are initialized every 8 columns.
func NewBufferWithStorage(rows, cols int, storage ScrollbackProvider) *Buffer {
	b := &Buffer{
		rows:       rows,
		cols:       cols,
		cells:      make([][]Cell, rows),
		wrapped:    make([]bool, rows),
		bidiFlags:  make([]RowBidiFlags, rows),
		tabStop:    make([]bool, cols),
		scrollback: storage,
	}

	for i := range b.cells {
		b.cells[i] = make([]Cell, cols)
		for j := range b.cells[i] {
			b.cells[i][j] = NewCell()
		}
	}

	// Set default tab stops every 8 columns
	for i := 0; i < cols; i += 8 {
		b.tabStop[i] = true
	}

	return b
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.cells[row][col]
}

// SetCell replaces the cell at (row, col) and marks it dirty.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	cell.MarkDirty()
	b.cells[row][col] = cell
	b.markContentDirty()
}

// MarkDirty marks the cell at (row, col) as modified.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) MarkDirty(row, col int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row][col].MarkDirty()
	b.markContentDirty()
}

// markContentDirty flags the buffer as modified for both the renderer's
// dirty-cell tracking and the coalesced-notification generation counter.
func (b *Buffer) markContentDirty() {
	b.hasDirty = true
	b.contentGeneration++
}

// ContentGeneration returns a counter incremented on every content
// mutation. Unlike HasDirty/ClearAllDirty, nothing resets it; callers
// compare two readings to detect whether any mutation happened in
// between, independent of a renderer's own dirty-tracking cadence.
func (b *Buffer) ContentGeneration() uint64 {
	return b.contentGeneration
}

// HasDirty returns true if any cell has been modified since the last ClearAllDirty call.
func (b *Buffer) HasDirty() bool {
	return b.hasDirty
}

// DirtyCells returns positions of all modified cells.
func (b *Buffer) DirtyCells() []Position {
	var positions []Position
	for row := range b.cells {
		for col := range b.cells[row] {
			if b.cells[row][col].IsDirty() {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// ClearAllDirty resets the dirty state of all cells.
func (b *Buffer) ClearAllDirty() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].ClearDirty()
		}
	}
	b.hasDirty = false
}

// ClearRow resets all cells in the row to default state and marks them dirty.
func (b *Buffer) ClearRow(row int) {
	if row < 0 || row >= b.rows {
		return
	}
	for col := range b.cells[row] {
		b.releaseCellHyperlink(row, col)
		b.cells[row][col].Reset()
		b.cells[row][col].MarkDirty()
	}
	b.markContentDirty()
}

// ClearRowRange resets cells in the row from startCol (inclusive) to endCol (exclusive).
func (b *Buffer) ClearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= b.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > b.cols {
		endCol = b.cols
	}
	for col := startCol; col < endCol; col++ {
		b.releaseCellHyperlink(row, col)
		b.cells[row][col].Reset()
		b.cells[row][col].MarkDirty()
	}
	b.markContentDirty()
}

// releaseCellHyperlink releases the hyperlink table entry a cell holds, if
// any, before the cell is discarded by an erase/scroll operation.
func (b *Buffer) releaseCellHyperlink(row, col int) {
	if idx := b.cells[row][col].HyperlinkIdx; idx != 0 {
		b.ReleaseHyperlink(idx)
	}
}

// ClearAll resets all cells in the buffer to default state.
func (b *Buffer) ClearAll() {
	for row := range b.cells {
		b.ClearRow(row)
	}
}

// ScrollUp shifts lines up by n positions within [top, bottom).
// Lines scrolled off the top are pushed to scrollback if enabled and top==0.
// Bottom lines are cleared and marked dirty.
func (b *Buffer) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}

	if n > bottom-top {
		n = bottom - top
	}

	// Save lines to scrollback if enabled and scrolling from top
	if b.scrollback != nil && b.scrollback.MaxLines() > 0 && top == 0 {
		for i := 0; i < n; i++ {
			b.pushScrollbackRow(b.cells[i], b.wrapped[i], b.bidiFlags[i])
		}
	}

	// Move lines up (including wrapped flags). The row being overwritten at
	// each step was not pushed to scrollback (only rows [0,n) were, above),
	// so any hyperlink it held is released here before its cell data is
	// replaced.
	for row := top; row < bottom-n; row++ {
		if row >= n || top != 0 {
			for col := range b.cells[row] {
				b.releaseCellHyperlink(row, col)
			}
		}
		b.cells[row] = b.cells[row+n]
		b.wrapped[row] = b.wrapped[row+n]
		b.bidiFlags[row] = b.bidiFlags[row+n]
		for col := range b.cells[row] {
			b.cells[row][col].MarkDirty()
		}
	}

	// Clear the bottom lines
	for row := bottom - n; row < bottom; row++ {
		for col := range b.cells[row] {
			b.releaseCellHyperlink(row, col)
		}
		b.cells[row] = make([]Cell, b.cols)
		b.wrapped[row] = false
		b.bidiFlags[row] = 0
		for col := range b.cells[row] {
			b.cells[row][col] = NewCell()
			b.cells[row][col].MarkDirty()
		}
	}
	b.markContentDirty()
}

// pushScrollbackRow evicts one row into the scrollback provider and advances
// insertDelta, spec.md §3.4's monotonic row-eviction counter.
func (b *Buffer) pushScrollbackRow(cells []Cell, wrapped bool, bidiFlags RowBidiFlags) {
	b.scrollback.Push(cells, wrapped, bidiFlags)
	b.insertDelta++
}

// ScrollDown shifts lines down by n positions within [top, bottom).
// Top lines are cleared and marked dirty.
func (b *Buffer) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}

	if n > bottom-top {
		n = bottom - top
	}

	// Move lines down (including wrapped flags)
	for row := bottom - 1; row >= top+n; row-- {
		b.cells[row] = b.cells[row-n]
		b.wrapped[row] = b.wrapped[row-n]
		b.bidiFlags[row] = b.bidiFlags[row-n]
		for col := 0; col < b.cols; col++ {
			b.cells[row][col].MarkDirty()
		}
	}

	// Clear the top lines
	for row := top; row < top+n; row++ {
		b.cells[row] = make([]Cell, b.cols)
		b.wrapped[row] = false
		b.bidiFlags[row] = 0
		for col := 0; col < b.cols; col++ {
			b.cells[row][col] = NewCell()
			b.cells[row][col].MarkDirty()
		}
	}
	b.markContentDirty()
}

// InsertLines inserts n blank lines at row, shifting existing lines down.
// Equivalent to ScrollDown(row, bottom, n).
func (b *Buffer) InsertLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollDown(row, bottom, n)
}

// DeleteLines removes n lines at row, shifting remaining lines up.
// Equivalent to ScrollUp(row, bottom, n).
func (b *Buffer) DeleteLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollUp(row, bottom, n)
}

// InsertBlanks inserts n blank cells at (row, col), shifting existing characters right.
func (b *Buffer) InsertBlanks(row, col, n int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}

	// Shift characters to the right, releasing whatever hyperlink each
	// destination cell held before being overwritten.
	for c := b.cols - 1; c >= col+n; c-- {
		b.releaseCellHyperlink(row, c)
		b.cells[row][c] = b.cells[row][c-n]
		b.cells[row][c].MarkDirty()
	}

	// Clear the inserted positions
	for c := col; c < col+n && c < b.cols; c++ {
		b.releaseCellHyperlink(row, c)
		b.cells[row][c].Reset()
		b.cells[row][c].MarkDirty()
	}
	b.markContentDirty()
}

// DeleteChars removes n characters at (row, col), shifting remaining characters left.
func (b *Buffer) DeleteChars(row, col, n int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}

	// Shift characters to the left, releasing whatever hyperlink each
	// destination cell held before being overwritten.
	for c := col; c < b.cols-n; c++ {
		b.releaseCellHyperlink(row, c)
		b.cells[row][c] = b.cells[row][c+n]
		b.cells[row][c].MarkDirty()
	}

	// Clear the end of the line
	for c := b.cols - n; c < b.cols; c++ {
		if c >= 0 {
			b.releaseCellHyperlink(row, c)
			b.cells[row][c].Reset()
			b.cells[row][c].MarkDirty()
		}
	}
	b.markContentDirty()
}

// Resize changes buffer dimensions, preserving existing cells where possible.
// Content is kept at the top-left corner. When shrinking, bottom/right content is lost.
// When growing, new empty cells are added at the bottom/right.
// Tab stops are extended if columns increase.
func (b *Buffer) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = make([]Cell, cols)
		for j := range newCells[i] {
			if i < b.rows && j < b.cols {
				newCells[i][j] = b.cells[i][j]
			} else {
				newCells[i][j] = NewCell()
			}
			newCells[i][j].MarkDirty()
		}
	}

	// Resize wrapped/bidi tracking
	newWrapped := make([]bool, rows)
	copy(newWrapped, b.wrapped)
	newBidiFlags := make([]RowBidiFlags, rows)
	copy(newBidiFlags, b.bidiFlags)

	b.cells = newCells
	b.wrapped = newWrapped
	b.bidiFlags = newBidiFlags
	b.rows = rows
	b.cols = cols
	b.markContentDirty()

	// Resize tab stops
	newTabStop := make([]bool, cols)
	copy(newTabStop, b.tabStop)
	for i := len(b.tabStop); i < cols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop
}

// Rewrap reflows paragraph-connected rows (runs joined by a soft wrap, per
// spec.md §3.4/§4.3) to a new row/column window instead of truncating or
// padding rows in place. It operates on the in-memory window only: if the
// reflowed paragraphs need more rows than newRows, the oldest resulting
// rows are pushed to scrollback exactly as ring eviction would; if they
// need fewer, the remainder is padded with blank rows at the bottom.
//
// cursorRow/cursorCol locate the cursor's current absolute position in the
// buffer; the returned position re-anchors it to the same logical offset
// in the reflowed content, per spec.md §4.3 step 4.
func (b *Buffer) Rewrap(newRows, newCols, cursorRow, cursorCol int) (newCursorRow, newCursorCol int) {
	if newRows <= 0 || newCols <= 0 {
		return cursorRow, cursorCol
	}
	if newCols == b.cols {
		// No column change: fall back to the simple row-count adjustment,
		// no reflow needed.
		b.Resize(newRows, newCols)
		if cursorRow >= newRows {
			cursorRow = newRows - 1
		}
		return cursorRow, cursorCol
	}

	type glyph struct {
		cells            []Cell
		origRow, origCol int
	}

	var paragraphs [][]glyph
	var paragraphFlags []RowBidiFlags
	var cur []glyph
	curFlags := RowBidiFlags(0)
	// Trailing blank rows below the cursor are not reflowed; the padding
	// added after reflow replaces them.
	lastRow := b.rows - 1
	for ; lastRow > cursorRow && lastRow > 0 && (lastRow >= len(b.wrapped) || !b.wrapped[lastRow]); lastRow-- {
		blank := true
		for _, c := range b.cells[lastRow] {
			blank = blank && (c.Char == ' ' || c.Char == 0)
		}
		if !blank {
			break
		}
	}
	for r := 0; r <= lastRow; r++ {
		row := b.cells[r]
		if len(cur) == 0 && r < len(b.bidiFlags) {
			curFlags = b.bidiFlags[r]
		}
		for c := 0; c < len(row); {
			span := int(row[c].Columns)
			if span < 1 {
				span = 1
			}
			if c+span > len(row) {
				span = len(row) - c
			}
			cur = append(cur, glyph{
				cells:   append([]Cell(nil), row[c:c+span]...),
				origRow: r,
				origCol: c,
			})
			c += span
		}
		if r >= len(b.wrapped) || !b.wrapped[r] {
			paragraphs = append(paragraphs, cur)
			paragraphFlags = append(paragraphFlags, curFlags)
			cur = nil
		}
	}
	if cur != nil {
		paragraphs = append(paragraphs, cur)
		paragraphFlags = append(paragraphFlags, curFlags)
	}

	var newCells [][]Cell
	var newWrapped []bool
	var newBidiFlags []RowBidiFlags
	cursorFound := false

	blankRow := func() []Cell {
		row := make([]Cell, newCols)
		for i := range row {
			row[i] = NewCell()
		}
		return row
	}

	for pi, para := range paragraphs {
		flags := paragraphFlags[pi]
		if len(para) == 0 {
			newCells = append(newCells, blankRow())
			newWrapped = append(newWrapped, false)
			newBidiFlags = append(newBidiFlags, flags)
			continue
		}

		rowCells := make([]Cell, 0, newCols)
		flush := func(wrap bool) {
			for len(rowCells) < newCols {
				rowCells = append(rowCells, NewCell())
			}
			newCells = append(newCells, rowCells)
			newWrapped = append(newWrapped, wrap)
			newBidiFlags = append(newBidiFlags, flags)
			rowCells = make([]Cell, 0, newCols)
		}

		for _, g := range para {
			if len(rowCells)+len(g.cells) > newCols && len(rowCells) > 0 {
				flush(true)
			}
			destRow := len(newCells)
			destCol := len(rowCells)
			rowCells = append(rowCells, g.cells...)

			if !cursorFound && g.origRow == cursorRow &&
				cursorCol >= g.origCol && cursorCol < g.origCol+len(g.cells) {
				newCursorRow = destRow
				newCursorCol = destCol + (cursorCol - g.origCol)
				cursorFound = true
			}
		}
		flush(false)
	}

	if !cursorFound {
		if len(newCells) > 0 {
			newCursorRow = len(newCells) - 1
			newCursorCol = 0
		} else {
			newCursorRow, newCursorCol = 0, 0
		}
	}

	if overflow := len(newCells) - newRows; overflow > 0 {
		for i := 0; i < overflow; i++ {
			b.pushScrollbackRow(newCells[i], newWrapped[i], newBidiFlags[i])
		}
		newCells = newCells[overflow:]
		newWrapped = newWrapped[overflow:]
		newBidiFlags = newBidiFlags[overflow:]
		newCursorRow -= overflow
		if newCursorRow < 0 {
			newCursorRow = 0
		}
	} else if overflow := newRows - len(newCells); overflow > 0 {
		for i := 0; i < overflow; i++ {
			newCells = append(newCells, blankRow())
			newWrapped = append(newWrapped, false)
			newBidiFlags = append(newBidiFlags, 0)
		}
	}

	for i := range newCells {
		for j := range newCells[i] {
			newCells[i][j].MarkDirty()
		}
	}

	b.cells = newCells
	b.wrapped = newWrapped
	b.bidiFlags = newBidiFlags
	b.rows = newRows
	b.cols = newCols
	b.markContentDirty()

	newTabStop := make([]bool, newCols)
	for i := 0; i < newCols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop

	if newCursorCol > newCols {
		newCursorCol = newCols
	}
	if newCursorRow >= newRows {
		newCursorRow = newRows - 1
	}
	return newCursorRow, newCursorCol
}

// SetTabStop enables a tab stop at the specified column.
func (b *Buffer) SetTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the specified column.
func (b *Buffer) ClearTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = false
	}
}

// ClearAllTabStops disables all tab stops.
func (b *Buffer) ClearAllTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = false
	}
}

// NextTabStop returns the column index of the next enabled tab stop after col.
// Returns the last column if no tab stop is found.
func (b *Buffer) NextTabStop(col int) int {
	for c := col + 1; c < b.cols; c++ {
		if b.tabStop[c] {
			return c
		}
	}
	return b.cols - 1
}

// PrevTabStop returns the column index of the previous enabled tab stop before col.
// Returns 0 if no tab stop is found.
func (b *Buffer) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if b.tabStop[c] {
			return c
		}
	}
	return 0
}

// FillWithE fills all cells with 'E' (used by DECALN alignment test pattern).
func (b *Buffer) FillWithE() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].Reset()
			b.cells[row][col].Char = 'E'
			b.cells[row][col].MarkDirty()
		}
	}
	b.markContentDirty()
}

// ScrollbackLen returns the number of lines stored in scrollback.
func (b *Buffer) ScrollbackLen() int {
	if b.scrollback == nil {
		return 0
	}
	return b.scrollback.Len()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest line.
// Returns nil if index is out of range or scrollback is disabled.
func (b *Buffer) ScrollbackLine(index int) []Cell {
	if b.scrollback == nil {
		return nil
	}
	return b.scrollback.Line(index)
}

// ClearScrollback removes all stored scrollback lines.
func (b *Buffer) ClearScrollback() {
	if b.scrollback != nil {
		b.scrollback.Clear()
	}
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
func (b *Buffer) SetMaxScrollback(max int) {
	if b.scrollback != nil {
		b.scrollback.SetMaxLines(max)
	}
}

// MaxScrollback returns the current maximum scrollback capacity.
func (b *Buffer) MaxScrollback() int {
	if b.scrollback == nil {
		return 0
	}
	return b.scrollback.MaxLines()
}

// SetScrollbackProvider replaces the scrollback storage implementation.
func (b *Buffer) SetScrollbackProvider(storage ScrollbackProvider) {
	b.scrollback = storage
}

// ScrollbackProvider returns the current scrollback storage implementation.
func (b *Buffer) ScrollbackProvider() ScrollbackProvider {
	return b.scrollback
}

// LineContent returns the text content of a line, trimming trailing spaces.
// Wide character spacers are skipped. Returns empty string if the line is empty or out of bounds.
func (b *Buffer) LineContent(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}

	// Find the last non-space character
	lastNonSpace := -1
	for col := b.cols - 1; col >= 0; col-- {
		cell := &b.cells[row][col]
		if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := range b.cells[row][:lastNonSpace+1] {
		cell := &b.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
			runes = append(runes, cell.Accents()...)
		}
	}

	return string(runes)
}

// --- Auto Resize ---

// GrowRows appends n new rows to the bottom of the buffer.
// New cells are initialized to default state and marked dirty.
func (b *Buffer) GrowRows(n int) {
	if n <= 0 {
		return
	}

	newRows := b.rows + n
	newCells := make([][]Cell, newRows)
	newWrapped := make([]bool, newRows)
	newBidiFlags := make([]RowBidiFlags, newRows)

	// Copy existing rows
	copy(newCells, b.cells)
	copy(newWrapped, b.wrapped)
	copy(newBidiFlags, b.bidiFlags)

	// Initialize new rows
	for i := b.rows; i < newRows; i++ {
		newCells[i] = make([]Cell, b.cols)
		for j := range newCells[i] {
			newCells[i][j] = NewCell()
			newCells[i][j].MarkDirty()
		}
	}

	b.cells = newCells
	b.wrapped = newWrapped
	b.bidiFlags = newBidiFlags
	b.rows = newRows
	b.markContentDirty()
}

// GrowCols expands a single row to at least minCols columns.
// Does nothing if the row is already wider. Tab stops are extended if needed.
func (b *Buffer) GrowCols(row, minCols int) {
	if row < 0 || row >= b.rows {
		return
	}
	if minCols <= len(b.cells[row]) {
		return
	}

	// Expand just this row
	newCells := make([]Cell, minCols)
	copy(newCells, b.cells[row])
	for j := len(b.cells[row]); j < minCols; j++ {
		newCells[j] = NewCell()
		newCells[j].MarkDirty()
	}
	b.cells[row] = newCells

	// Track max cols for reference
	if minCols > b.cols {
		b.cols = minCols
		// Expand tabstops
		newTabStop := make([]bool, minCols)
		copy(newTabStop, b.tabStop)
		for i := len(b.tabStop); i < minCols; i += 8 {
			newTabStop[i] = true
		}
		b.tabStop = newTabStop
	}

	b.markContentDirty()
}

// --- Wrapped Line Tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow.
func (b *Buffer) IsWrapped(row int) bool {
	if row < 0 || row >= b.rows {
		return false
	}
	return b.wrapped[row]
}

// SetWrapped sets whether the line was wrapped or ended with an explicit newline.
func (b *Buffer) SetWrapped(row int, wrapped bool) {
	if row < 0 || row >= b.rows {
		return
	}
	b.wrapped[row] = wrapped
}

// BidiFlags returns the attrs.bidi_flags bitmask stored for row (spec.md
// §3.3), or 0 if row is out of bounds.
func (b *Buffer) BidiFlags(row int) RowBidiFlags {
	if row < 0 || row >= b.rows {
		return 0
	}
	return b.bidiFlags[row]
}

// SetBidiFlags stores the attrs.bidi_flags bitmask for row.
func (b *Buffer) SetBidiFlags(row int, flags RowBidiFlags) {
	if row < 0 || row >= b.rows {
		return
	}
	b.bidiFlags[row] = flags
}

// --- Ring accounting (spec.md §3.4) ---

// Ring is the name spec.md §3.4 gives this type; Buffer already realizes
// the ring's bounded in-memory window plus eviction into append-only
// streams (ring.go's ScrollbackProvider), so Ring is kept as an alias
// rather than a parallel type.
type Ring = Buffer

// Delta returns the number of rows ever evicted from the live window and
// since trimmed from scrollback itself, spec.md §3.4's "delta" counter:
// rows still reachable via the ScrollbackProvider don't count, only rows
// dropped entirely.
func (b *Buffer) Delta() uint64 {
	trimmed := b.insertDelta - uint64(b.ScrollbackLen())
	return trimmed
}

// Writable returns the row index at which the live, mutable window begins,
// spec.md §3.4's invariant "delta <= writable <= delta+len". This
// implementation evicts synchronously (a row is written to the
// ScrollbackProvider in the same call that frees its slot), so there is
// never a frozen-but-still-resident span: Writable always equals Delta.
func (b *Buffer) Writable() uint64 {
	return b.Delta()
}

// InsertDelta returns the total number of rows ever pushed to scrollback
// since the buffer was created, spec.md §3.4's monotonically increasing
// counter (unlike Delta, this never decreases when old scrollback entries
// are themselves trimmed by a MaxLines cap).
func (b *Buffer) InsertDelta() uint64 {
	return b.insertDelta
}

// ScrollDelta returns the viewport's current scroll-back offset in rows,
// spec.md §3.5's "scroll_delta: f64" (0 = scrolled to the live bottom).
func (b *Buffer) ScrollDelta() float64 {
	return b.scrollDelta
}

// SetScrollDelta sets the viewport's scroll-back offset, clamped to
// [0, ScrollbackLen()].
func (b *Buffer) SetScrollDelta(delta float64) {
	if delta < 0 {
		delta = 0
	}
	if max := float64(b.ScrollbackLen()); delta > max {
		delta = max
	}
	b.scrollDelta = delta
}

// ScrollToBottom resets ScrollDelta to 0.
func (b *Buffer) ScrollToBottom() {
	b.scrollDelta = 0
}

// AtBottom reports whether the viewport is scrolled to the live bottom.
func (b *Buffer) AtBottom() bool {
	return b.scrollDelta == 0
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	if p.Row == other.Row && p.Col < other.Col {
		return true
	}
	return false
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// --- Hyperlink table (spec.md §3.4's per-ring hyperlink table) ---

// InternHyperlink interns "id;uri" and returns its index, reusing a freed
// index when one is available so the table does not grow unboundedly under
// repeated OSC 8 start/end cycles.
func (b *Buffer) InternHyperlink(idURI string) uint32 {
	if b.hyperlinks == nil {
		b.hyperlinks = make(map[uint32]string)
	}
	for idx, s := range b.hyperlinks {
		if s == idURI {
			return idx
		}
	}
	var idx uint32
	if n := len(b.freeList); n > 0 {
		idx = b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
	} else {
		b.nextLinkID++
		idx = b.nextLinkID
	}
	b.hyperlinks[idx] = idURI
	return idx
}

// ResolveHyperlink returns the "id;uri" string for idx, or "" if unknown.
func (b *Buffer) ResolveHyperlink(idx uint32) string {
	if idx == 0 || b.hyperlinks == nil {
		return ""
	}
	return b.hyperlinks[idx]
}

// ReleaseHyperlink marks idx as free once the caller has verified no live
// cell still references it (eviction/overwrite bookkeeping is the caller's
// responsibility; this only reclaims the table slot).
func (b *Buffer) ReleaseHyperlink(idx uint32) {
	if idx == 0 || b.hyperlinks == nil {
		return
	}
	delete(b.hyperlinks, idx)
	b.freeList = append(b.freeList, idx)
}

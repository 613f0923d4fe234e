package headlessterm

// RingView is a paragraph-aligned windowed cache over a Buffer (Ring),
// feeding BidiRunner and the regex search layer (spec.md §4.6). It holds
// copies of row cell data (so mutations to the live buffer don't tear a
// read in progress) plus the BidiRow for each row in the requested range.
type RingView struct {
	buf    *Buffer
	runner *BidiRunner

	top, len        int // paragraph-aligned window bounds
	reqStart, reqLen int // the range the caller actually asked for

	rows     [][]Cell
	bidiRows []*BidiRow

	paused bool
}

// NewRingView creates a view over buf using runner to resolve bidi/shaping.
func NewRingView(buf *Buffer, runner *BidiRunner) *RingView {
	return &RingView{buf: buf, runner: runner}
}

// Pause releases all held buffers (spec.md §5's resource-model note: "RingView
// buffers: released on pause() and reallocated on resume()").
func (v *RingView) Pause() {
	v.paused = true
	v.rows = nil
	v.bidiRows = nil
}

// Resume re-enables updates; the next SetRows call reallocates buffers.
func (v *RingView) Resume() {
	v.paused = false
}

// SetRows requests coverage of [start, start+length). The view grows to the
// paragraph boundaries containing that range (capped at MaxParagraphLines)
// and re-runs BidiRunner over every paragraph touched.
func (v *RingView) SetRows(start, length int) {
	v.reqStart, v.reqLen = start, length
	if v.paused {
		return
	}
	v.update()
}

func (v *RingView) update() {
	top := v.reqStart
	for top > 0 && v.buf.IsWrapped(top-1) && v.reqStart-top < MaxParagraphLines {
		top--
	}
	end := v.reqStart + v.reqLen
	for end < v.buf.Rows() && v.buf.IsWrapped(end-1) && end-top < MaxParagraphLines {
		end++
	}
	v.top = top
	v.len = end - top

	v.rows = make([][]Cell, v.len)
	for i := 0; i < v.len; i++ {
		row := top + i
		src := v.buf.cells[row]
		cp := make([]Cell, len(src))
		for j := range src {
			cp[j] = src[j].Copy()
		}
		v.rows[i] = cp
	}

	v.bidiRows = make([]*BidiRow, v.len)
	if v.runner == nil {
		for i := range v.bidiRows {
			v.bidiRows[i] = NewTrivialBidiRow()
		}
		return
	}

	// Run BidiRunner once per paragraph within the window.
	i := 0
	for i < v.len {
		paraStart := i
		flags := v.buf.BidiFlags(top + paraStart)
		for i < v.len && v.buf.IsWrapped(top+i) {
			i++
		}
		if i < v.len {
			i++ // include the terminal (non-wrapped) row of the paragraph
		}
		para := v.rows[paraStart:i]
		resolved := v.runner.Run(para, flags)
		copy(v.bidiRows[paraStart:i], resolved)
	}
}

// Row returns the cached cell data for absolute row index (top-relative),
// or nil if outside the current window.
func (v *RingView) Row(absRow int) []Cell {
	idx := absRow - v.top
	if idx < 0 || idx >= len(v.rows) {
		return nil
	}
	return v.rows[idx]
}

// BidiRow returns the cached BidiRow for absolute row index, or nil if
// outside the current window.
func (v *RingView) BidiRow(absRow int) *BidiRow {
	idx := absRow - v.top
	if idx < 0 || idx >= len(v.bidiRows) {
		return nil
	}
	return v.bidiRows[idx]
}

// Bounds returns the view's current paragraph-aligned [top, top+len) window.
func (v *RingView) Bounds() (top, length int) {
	return v.top, v.len
}

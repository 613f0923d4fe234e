package headlessterm

import (
	"golang.org/x/text/unicode/bidi"
)

// RowBidiFlags is the bitmask attrs.bidi_flags carries per row (spec.md §3.3).
type RowBidiFlags uint8

const (
	BidiFlagImplicit RowBidiFlags = 1 << iota
	BidiFlagRTL
	BidiFlagAuto
	BidiFlagBoxMirror
)

// MaxParagraphLines bounds how many soft-wrapped rows BidiRunner will
// attempt full UBA resolution over before falling back to the explicit
// (non-reordering) path. Matches spec.md §4.5's default of 500.
const MaxParagraphLines = 500

// BidiRow holds the per-row logical<->visual mapping produced by
// BidiRunner. A row with Width == 0 is the "trivial LTR" fast path: every
// query collapses to the identity mapping with no shaping.
type BidiRow struct {
	Width          int
	log2vis        []int
	vis2log        []int
	visRTL         []bool
	visShapedBase  []rune // 0 = no shaping override at this visual column
	hasShapedBase  []bool
}

// NewTrivialBidiRow returns the zero-cost LTR identity row.
func NewTrivialBidiRow() *BidiRow {
	return &BidiRow{Width: 0}
}

func newBidiRow(width int) *BidiRow {
	return &BidiRow{
		Width:         width,
		log2vis:       make([]int, width),
		vis2log:       make([]int, width),
		visRTL:        make([]bool, width),
		visShapedBase: make([]rune, width),
		hasShapedBase: make([]bool, width),
	}
}

// Log2Vis returns the visual column for logical column i.
func (r *BidiRow) Log2Vis(i int) int {
	if r.Width == 0 {
		return i
	}
	if i < 0 || i >= r.Width {
		return i
	}
	return r.log2vis[i]
}

// Vis2Log returns the logical column for visual column i.
func (r *BidiRow) Vis2Log(i int) int {
	if r.Width == 0 {
		return i
	}
	if i < 0 || i >= r.Width {
		return i
	}
	return r.vis2log[i]
}

// VisIsRTL reports whether the glyph at visual column col reads
// right-to-left. Columns off the row (and every column of a zero-width row)
// return false; the paragraph's base direction is not consulted.
func (r *BidiRow) VisIsRTL(col int) bool {
	if r.Width == 0 || col < 0 || col >= r.Width {
		return false
	}
	return r.visRTL[col]
}

// LogIsRTL reports whether the glyph at logical column col reads
// right-to-left.
func (r *BidiRow) LogIsRTL(col int) bool {
	return r.VisIsRTL(r.Log2Vis(col))
}

// VisGetShaped returns the shaped base code point at visual column col, or
// fallback if shaping did not replace that column's base glyph.
func (r *BidiRow) VisGetShaped(col int, fallback Unistr) Unistr {
	if r.Width == 0 || col < 0 || col >= r.Width || !r.hasShapedBase[col] {
		return fallback
	}
	return UnistrReplaceBase(fallback, r.visShapedBase[col])
}

// BidiConfig toggles the two independent passes BidiRunner performs.
type BidiConfig struct {
	EnableBidi    bool
	EnableShaping bool
}

// BidiRunner resolves embedding levels (and optionally shapes Arabic text)
// for one paragraph's worth of rows extracted from a RingView, producing one
// BidiRow per row. Implements spec.md §4.5.
type BidiRunner struct {
	cfg BidiConfig
}

// NewBidiRunner creates a runner with the given configuration.
func NewBidiRunner(cfg BidiConfig) *BidiRunner {
	return &BidiRunner{cfg: cfg}
}

// paragraphCharRef maps a character position in the paragraph's flattened
// logical text back to (row, col) within the paragraph, or (-1,-1) if the
// position is a combining accent with no independent cell identity.
type paragraphCharRef struct {
	row, col int
}

// Run resolves bidi levels (and shaping, if enabled) for the rows in
// paragraph, honoring baseFlags (the BidiFlags of the paragraph's anchor
// row). It returns one BidiRow per input row, in order.
func (br *BidiRunner) Run(paragraph [][]Cell, baseFlags RowBidiFlags) []*BidiRow {
	if len(paragraph) == 0 {
		return nil
	}
	if len(paragraph) > MaxParagraphLines {
		return br.runExplicit(paragraph, baseFlags)
	}

	// Flatten the paragraph's logical text, recording a (row,col) back
	// pointer for every base character (combining accents are folded into
	// the owning cell's Unistr and do not get their own position).
	var text []rune
	var refs []paragraphCharRef
	rowWidths := make([]int, len(paragraph))
	for ri, row := range paragraph {
		rowWidths[ri] = len(row)
		for ci := range row {
			cell := &row[ci]
			if cell.Fragment() {
				continue
			}
			text = append(text, cell.Char)
			refs = append(refs, paragraphCharRef{row: ri, col: ci})
		}
	}

	if !br.cfg.EnableBidi {
		return br.runExplicit(paragraph, baseFlags)
	}

	direction := bidiDirectionFor(baseFlags)
	para := bidi.Paragraph{}
	para.SetString(string(text), bidi.DefaultDirection(direction))
	ordering, err := para.Order()
	if err != nil {
		return br.runExplicit(paragraph, baseFlags)
	}

	// Build a logical-position -> is-RTL map by walking the runs the bidi
	// package grouped the paragraph into; direction parity stands in for
	// the numeric embedding level (even=LTR, odd=RTL) for reordering
	// purposes, which is all §4.5's row-reorder step needs.
	rtl := make([]bool, len(text))
	pos := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		runLen := len([]rune(run.String()))
		isRTL := run.Direction() == bidi.RightToLeft
		for j := 0; j < runLen && pos < len(rtl); j++ {
			rtl[pos] = isRTL
			pos++
		}
	}

	if br.cfg.EnableShaping {
		applyArabicShaping(paragraph, refs, text)
	}

	return br.reorderPerRow(paragraph, rowWidths, refs, rtl)
}

// bidiDirectionFor maps spec.md §4.5's four base-direction cases onto the
// x/text/unicode/bidi package's direction constants. WRTL/WLTR ("weak",
// auto-detected) map to RightToLeft/LeftToRight as the seed direction that
// Paragraph.Order() uses when no strong character is found.
func bidiDirectionFor(flags RowBidiFlags) bidi.Direction {
	auto := flags&BidiFlagAuto != 0
	rtl := flags&BidiFlagRTL != 0
	switch {
	case auto && rtl:
		return bidi.RightToLeft
	case auto && !rtl:
		return bidi.LeftToRight
	case !auto && rtl:
		return bidi.RightToLeft
	default:
		return bidi.LeftToRight
	}
}

// reorderPerRow takes resolved per-character levels and produces one
// BidiRow per input row, respecting that double-wide glyphs must not cross
// row boundaries and reverse their fragment cells when their level is odd.
func (br *BidiRunner) reorderPerRow(paragraph [][]Cell, rowWidths []int, refs []paragraphCharRef, rtl []bool) []*BidiRow {
	out := make([]*BidiRow, len(paragraph))

	// Group resolved directions back by row.
	rowRTL := make([][]bool, len(paragraph))
	for ri := range paragraph {
		rowRTL[ri] = make([]bool, rowWidths[ri])
	}
	for i, ref := range refs {
		if ref.row < 0 {
			continue
		}
		isRTL := rtl[i]
		row := paragraph[ref.row]
		cols := row[ref.col].Columns
		if cols == 0 {
			cols = 1
		}
		for c := 0; c < int(cols) && ref.col+c < len(rowRTL[ref.row]); c++ {
			rowRTL[ref.row][ref.col+c] = isRTL
		}
	}

	for ri, width := range rowWidths {
		if width == 0 {
			out[ri] = NewTrivialBidiRow()
			continue
		}
		allLTR := true
		for _, isRTL := range rowRTL[ri] {
			if isRTL {
				allLTR = false
				break
			}
		}
		if allLTR {
			out[ri] = NewTrivialBidiRow()
			continue
		}

		br2 := newBidiRow(width)
		// Reorder contiguous same-direction runs; RTL runs reverse.
		col := 0
		vis := 0
		for col < width {
			dir := rowRTL[ri][col]
			start := col
			for col < width && rowRTL[ri][col] == dir {
				col++
			}
			runLen := col - start
			if dir {
				for k := runLen - 1; k >= 0; k-- {
					logical := start + k
					br2.vis2log[vis] = logical
					br2.log2vis[logical] = vis
					br2.visRTL[vis] = true
					vis++
				}
			} else {
				for k := 0; k < runLen; k++ {
					logical := start + k
					br2.vis2log[vis] = logical
					br2.log2vis[logical] = vis
					br2.visRTL[vis] = false
					vis++
				}
			}
		}
		out[ri] = br2
	}
	return out
}

// runExplicit implements spec.md §4.5's non-UBA path for pure LTR/RTL
// paragraphs (or paragraphs too large to run the full resolver over).
func (br *BidiRunner) runExplicit(paragraph [][]Cell, baseFlags RowBidiFlags) []*BidiRow {
	out := make([]*BidiRow, len(paragraph))
	rtl := baseFlags&BidiFlagRTL != 0 && baseFlags&BidiFlagAuto == 0

	for ri, row := range paragraph {
		width := len(row)
		if !rtl || width == 0 {
			out[ri] = NewTrivialBidiRow()
			continue
		}
		r := newBidiRow(width)
		for i := 0; i < width; i++ {
			v := width - 1 - i
			r.log2vis[i] = v
			r.vis2log[v] = i
			r.visRTL[v] = true
		}
		out[ri] = r
	}

	if br.cfg.EnableShaping && rtl {
		var text []rune
		var refs []paragraphCharRef
		for ri, row := range paragraph {
			for ci := range row {
				if row[ci].Fragment() {
					continue
				}
				text = append(text, row[ci].Char)
				refs = append(refs, paragraphCharRef{row: ri, col: ci})
			}
		}
		applyArabicShaping(paragraph, refs, text)
	}

	return out
}

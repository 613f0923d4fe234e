package headlessterm

import "image/color"

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoubleUnderline
	CellFlagCurlyUnderline
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlinkSlow
	CellFlagBlinkFast
	CellFlagReverse
	CellFlagHidden
	CellFlagStrike
	CellFlagWideChar
	CellFlagWideCharSpacer
	CellFlagDirty
)

// Cell stores the character, colors, and formatting attributes for one grid position.
// Wide characters (2 columns) use a spacer cell in the second position.
type Cell struct {
	Char           rune
	accents        []rune // combining marks attached to Char, interned lazily via Unistr
	Columns        uint8  // visual column span of the owning glyph (0 = untracked/1-equivalent)
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color
	Flags          CellFlags
	Hyperlink      *Hyperlink // resolved view; source of truth is HyperlinkIdx once owned by a Ring
	HyperlinkIdx   uint32     // index into the owning Ring's hyperlink table; 0 = none
	Image          *CellImage // Image reference, nil if no image
}

// Hyperlink associates a cell with a clickable link (OSC 8).
type Hyperlink struct {
	ID  string
	URI string
}

// HyperlinkIdxInStream marks a cell whose hyperlink has been frozen into a
// scrollback stream rather than the live Ring hyperlink table (spec.md
// §3.2: "0xFFFFFFFF = target in stream"). A cell carrying this sentinel
// resolves its link from its own Hyperlink field, never from the table —
// the table's indices may have been reused by the time the row is read
// back out of scrollback.
const HyperlinkIdxInStream uint32 = 0xFFFFFFFF

// NewCell creates a cell initialized with space character and default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   &NamedColor{Name: NamedColorForeground},
		Bg:   &NamedColor{Name: NamedColorBackground},
	}
}

// Reset clears all attributes and sets the cell to default state (space character, default colors).
func (c *Cell) Reset() {
	c.Char = ' '
	c.accents = nil
	c.Columns = 0
	c.Fg = &NamedColor{Name: NamedColorForeground}
	c.Bg = &NamedColor{Name: NamedColorBackground}
	c.UnderlineColor = nil
	c.Flags = 0
	c.Hyperlink = nil
	c.HyperlinkIdx = 0
	c.Image = nil
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsDirty returns true if the cell was modified since the last ClearDirty call.
func (c *Cell) IsDirty() bool {
	return c.HasFlag(CellFlagDirty)
}

// MarkDirty marks the cell as modified for dirty tracking.
func (c *Cell) MarkDirty() {
	c.SetFlag(CellFlagDirty)
}

// ClearDirty resets the dirty tracking flag.
func (c *Cell) ClearDirty() {
	c.ClearFlag(CellFlagDirty)
}

// IsWide returns true if this cell contains a wide character (CJK, emoji, etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Copy returns a deep copy of the cell, including the hyperlink and image pointers.
func (c *Cell) Copy() Cell {
	var accents []rune
	if len(c.accents) > 0 {
		accents = make([]rune, len(c.accents))
		copy(accents, c.accents)
	}
	return Cell{
		Char:           c.Char,
		accents:        accents,
		Columns:        c.Columns,
		Fg:             c.Fg,
		Bg:             c.Bg,
		UnderlineColor: c.UnderlineColor,
		Flags:          c.Flags,
		Hyperlink:      c.Hyperlink,
		HyperlinkIdx:   c.HyperlinkIdx,
		Image:          c.Image,
	}
}

// HasImage returns true if this cell has an image reference.
func (c *Cell) HasImage() bool {
	return c.Image != nil
}

// AppendAccent attaches a combining mark to the cell's base character. The
// base Char is left untouched; the accent is appended to the cell's own
// accent list, which Copy duplicates.
func (c *Cell) AppendAccent(mark rune) {
	c.accents = append(c.accents, mark)
}

// Accents returns the combining marks attached to this cell, if any.
func (c *Cell) Accents() []rune {
	return c.accents
}

// Unistr returns the interned grapheme-cluster id for this cell: just the
// base scalar when there are no combining accents (the common case, kept
// allocation-free), or an interned id covering base+accents otherwise.
func (c *Cell) Unistr() Unistr {
	if len(c.accents) == 0 {
		return Unistr(c.Char)
	}
	return globalUnistrTable.intern(c.Char, c.accents)
}

// SetUnistr overwrites the cell's base character and accents from u.
func (c *Cell) SetUnistr(u Unistr) {
	base, accents := globalUnistrTable.lookup(u)
	c.Char = base
	if len(accents) == 0 {
		c.accents = nil
		return
	}
	c.accents = make([]rune, len(accents))
	copy(c.accents, accents)
}

// Fragment reports whether this cell is a continuation of a wide glyph that
// began to the left, mirroring the IsWideSpacer flag under the vocabulary
// spec.md uses for the concept.
func (c *Cell) Fragment() bool {
	return c.IsWideSpacer()
}

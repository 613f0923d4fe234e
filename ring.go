package headlessterm

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// fileRingStore is the file-backed ScrollbackProvider (enabled through
// WithScrollbackLines, built by NewFileRingStore) that holds a Buffer's rows
// once they scroll off the top of the in-memory window: three append-only
// streams (text/attr/row) plus an in-memory index of per-row offsets. The
// three temp files are created and unlinked when the store is constructed,
// not on first eviction; they are reclaimed on process exit.
//
// Encoding is process-internal only (spec.md §4.3: "not a public wire
// format"): the text stream holds each row's UTF-8 expansion (base chars
// plus any combining accents) delimited by 0x00; the attr stream holds one
// variable-length record per cell (a fixed header plus an inline
// "id;uri" hyperlink string, so a frozen cell never depends on the live
// Ring hyperlink table surviving index reuse); the row stream holds one
// fixed 18-byte record per row (text offset, attr offset, soft_wrapped,
// bidi_flags) indexing into the other two.
type fileRingStore struct {
	text *os.File
	attr *os.File
	rows *os.File

	index    []ringRowIndex // one entry per stored row, oldest first
	maxLines int
}

type ringRowIndex struct {
	textOffset int64
	attrOffset int64
	cellCount  int32
	wrapped    bool
	bidiFlags  RowBidiFlags
}

const rowStreamRecordSize = 18

// NewFileRingStore creates a ScrollbackProvider backed by three temp files
// that are removed immediately after creation (still usable via the open
// file descriptor on POSIX systems; reclaimed automatically on process
// exit, matching spec.md's resource-model note).
func NewFileRingStore(maxLines int) ScrollbackProvider {
	text, errT := os.CreateTemp("", "headlessterm-text-*")
	attr, errA := os.CreateTemp("", "headlessterm-attr-*")
	rows, errR := os.CreateTemp("", "headlessterm-row-*")
	if errT != nil || errA != nil || errR != nil {
		// Fall back to pure in-memory scrollback if the platform won't give
		// us temp files (e.g. a restricted sandbox or wasm build).
		closeIfOpen(text)
		closeIfOpen(attr)
		closeIfOpen(rows)
		return NewMemoryScrollback(maxLines)
	}
	os.Remove(text.Name())
	os.Remove(attr.Name())
	os.Remove(rows.Name())

	return &fileRingStore{text: text, attr: attr, rows: rows, maxLines: maxLines}
}

func closeIfOpen(f *os.File) {
	if f != nil {
		f.Close()
	}
}

// hyperlinkBytes returns the inline "id;uri" encoding of a cell's hyperlink,
// or nil if the cell has none.
func hyperlinkBytes(cell *Cell) []byte {
	if cell.Hyperlink == nil {
		return nil
	}
	return []byte(cell.Hyperlink.ID + ";" + cell.Hyperlink.URI)
}

func (s *fileRingStore) Push(line []Cell, wrapped bool, bidiFlags RowBidiFlags) {
	textOff, err := s.text.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}
	attrOff, err := s.attr.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}

	tw := bufio.NewWriter(s.text)
	aw := bufio.NewWriter(s.attr)
	for i := range line {
		cell := &line[i]
		tw.WriteString(string(cell.Char))
		for _, a := range cell.Accents() {
			tw.WriteRune(a)
		}

		link := hyperlinkBytes(cell)

		var rec [22]byte
		rec[0] = boolByte(cell.Fragment())
		rec[1] = cell.Columns
		binary.LittleEndian.PutUint16(rec[2:4], uint16(cell.Flags))
		colors := PackCellColors(cell)
		binary.LittleEndian.PutUint32(rec[4:8], colors[0])
		binary.LittleEndian.PutUint32(rec[8:12], colors[1])
		binary.LittleEndian.PutUint32(rec[12:16], colors[2])
		binary.LittleEndian.PutUint32(rec[16:20], uint32(len(cell.Accents())))
		binary.LittleEndian.PutUint16(rec[20:22], uint16(len(link)))
		aw.Write(rec[:])
		if len(link) > 0 {
			aw.Write(link)
		}
	}
	tw.WriteByte(0)
	tw.Flush()
	aw.Flush()

	rowOff, err := s.rows.Seek(0, io.SeekEnd)
	if err == nil {
		var rrec [rowStreamRecordSize]byte
		binary.LittleEndian.PutUint64(rrec[0:8], uint64(textOff))
		binary.LittleEndian.PutUint64(rrec[8:16], uint64(attrOff))
		rrec[16] = boolByte(wrapped)
		rrec[17] = byte(bidiFlags)
		s.rows.WriteAt(rrec[:], rowOff)
	}

	s.index = append(s.index, ringRowIndex{
		textOffset: textOff,
		attrOffset: attrOff,
		cellCount:  int32(len(line)),
		wrapped:    wrapped,
		bidiFlags:  bidiFlags,
	})

	if s.maxLines > 0 {
		for len(s.index) > s.maxLines {
			s.index = s.index[1:]
		}
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (s *fileRingStore) Len() int {
	return len(s.index)
}

func (s *fileRingStore) RowAttrs(i int) (bool, RowBidiFlags) {
	if i < 0 || i >= len(s.index) {
		return false, 0
	}
	entry := s.index[i]
	return entry.wrapped, entry.bidiFlags
}

func (s *fileRingStore) Line(i int) []Cell {
	if i < 0 || i >= len(s.index) {
		return nil
	}
	entry := s.index[i]

	textEnd := entry.textOffset
	buf := make([]byte, 0, 64)
	one := make([]byte, 1)
	for {
		if _, err := s.text.ReadAt(one, textEnd); err != nil || one[0] == 0 {
			break
		}
		buf = append(buf, one[0])
		textEnd++
	}
	runes := []rune(string(buf))

	cells := make([]Cell, entry.cellCount)
	runeIdx := 0
	cursor := entry.attrOffset
	header := make([]byte, 22)
	for i := range cells {
		if _, err := s.attr.ReadAt(header, cursor); err != nil {
			break
		}
		cursor += 22
		cell := &cells[i]
		if runeIdx < len(runes) {
			cell.Char = runes[runeIdx]
			runeIdx++
		}
		accentCount := int(binary.LittleEndian.Uint32(header[16:20]))
		for a := 0; a < accentCount && runeIdx < len(runes); a++ {
			cell.AppendAccent(runes[runeIdx])
			runeIdx++
		}
		if header[0] == 1 {
			cell.SetFlag(CellFlagWideCharSpacer)
		}
		cell.Columns = header[1]
		cell.Flags |= CellFlags(binary.LittleEndian.Uint16(header[2:4]))
		var colors [3]uint32
		colors[0] = binary.LittleEndian.Uint32(header[4:8])
		colors[1] = binary.LittleEndian.Uint32(header[8:12])
		colors[2] = binary.LittleEndian.Uint32(header[12:16])
		UnpackCellColors(cell, colors)

		linkLen := int(binary.LittleEndian.Uint16(header[20:22]))
		if linkLen > 0 {
			linkBuf := make([]byte, linkLen)
			if _, err := s.attr.ReadAt(linkBuf, cursor); err == nil {
				if idx := bytes.IndexByte(linkBuf, ';'); idx >= 0 {
					cell.Hyperlink = &Hyperlink{ID: string(linkBuf[:idx]), URI: string(linkBuf[idx+1:])}
					cell.HyperlinkIdx = HyperlinkIdxInStream
				}
			}
			cursor += int64(linkLen)
		}
	}
	return cells
}

func (s *fileRingStore) Clear() {
	s.index = nil
	s.text.Truncate(0)
	s.attr.Truncate(0)
	s.rows.Truncate(0)
	s.text.Seek(0, io.SeekStart)
	s.attr.Seek(0, io.SeekStart)
	s.rows.Seek(0, io.SeekStart)
}

func (s *fileRingStore) SetMaxLines(max int) {
	s.maxLines = max
	if max > 0 {
		for len(s.index) > max {
			s.index = s.index[1:]
		}
	}
}

func (s *fileRingStore) MaxLines() int {
	return s.maxLines
}

// memoryScrollback is a pure in-memory ScrollbackProvider, used as a
// fallback when temp files are unavailable and as the explicit choice for
// embedders (e.g. the wasm build) that should not touch the filesystem.
type memoryScrollback struct {
	lines     [][]Cell
	wrapped   []bool
	bidiFlags []RowBidiFlags
	maxLines  int
}

// NewMemoryScrollback creates an in-memory-only ScrollbackProvider.
func NewMemoryScrollback(maxLines int) ScrollbackProvider {
	return &memoryScrollback{maxLines: maxLines}
}

func (m *memoryScrollback) Push(line []Cell, wrapped bool, bidiFlags RowBidiFlags) {
	cp := make([]Cell, len(line))
	for i := range line {
		cp[i] = line[i].Copy()
		if cp[i].Hyperlink != nil {
			cp[i].HyperlinkIdx = HyperlinkIdxInStream
		}
	}
	m.lines = append(m.lines, cp)
	m.wrapped = append(m.wrapped, wrapped)
	m.bidiFlags = append(m.bidiFlags, bidiFlags)
	if m.maxLines > 0 {
		for len(m.lines) > m.maxLines {
			m.lines = m.lines[1:]
			m.wrapped = m.wrapped[1:]
			m.bidiFlags = m.bidiFlags[1:]
		}
	}
}

func (m *memoryScrollback) Len() int { return len(m.lines) }

func (m *memoryScrollback) Line(i int) []Cell {
	if i < 0 || i >= len(m.lines) {
		return nil
	}
	return m.lines[i]
}

func (m *memoryScrollback) RowAttrs(i int) (bool, RowBidiFlags) {
	if i < 0 || i >= len(m.wrapped) {
		return false, 0
	}
	return m.wrapped[i], m.bidiFlags[i]
}

func (m *memoryScrollback) Clear() {
	m.lines = nil
	m.wrapped = nil
	m.bidiFlags = nil
}

func (m *memoryScrollback) SetMaxLines(max int) {
	m.maxLines = max
	if max > 0 {
		for len(m.lines) > max {
			m.lines = m.lines[1:]
			m.wrapped = m.wrapped[1:]
			m.bidiFlags = m.bidiFlags[1:]
		}
	}
}

func (m *memoryScrollback) MaxLines() int { return m.maxLines }

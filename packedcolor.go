package headlessterm

import "image/color"

// Packed color encoding used by the Ring's attr stream (spec.md §4.3): each
// color.Color value is reduced to one of three 24-bit-plus-tag forms and
// packed into a uint32 field:
//
//	bits 31..30  kind (0 = default, 1 = palette index, 2 = RGB literal)
//	bits 29..0   payload (9-bit palette/named index, or 24-bit RGB)
//
// This is purely a serialisation concern for the backing streams; the live
// Cell keeps the richer color.Color interface value the teacher already
// used, since that is strictly more capable (lazy palette resolution,
// reverse-video aware named colors) and there is no reason to regress the
// in-memory representation to a narrower wire form.
const (
	packedColorKindDefault = 0
	packedColorKindIndexed = 1
	packedColorKindRGB     = 2
)

// PackColor reduces a color.Color to its packed stream representation.
func PackColor(c color.Color) uint32 {
	switch v := c.(type) {
	case nil:
		return packedColorKindDefault << 30
	case *IndexedColor:
		return packedColorKindIndexed<<30 | uint32(v.Index)&0x1FF
	case *NamedColor:
		return packedColorKindIndexed<<30 | uint32(v.Name)&0x1FF
	default:
		r, g, b, _ := c.RGBA()
		rgb := uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
		return packedColorKindRGB<<30 | rgb
	}
}

// UnpackColor reconstructs a color.Color from its packed stream form.
func UnpackColor(packed uint32) color.Color {
	kind := packed >> 30
	payload := packed & 0x3FFFFFFF
	switch kind {
	case packedColorKindIndexed:
		idx := int(payload & 0x1FF)
		if idx < 256 {
			return &IndexedColor{Index: idx}
		}
		return &NamedColor{Name: idx}
	case packedColorKindRGB:
		return color.RGBA{
			R: uint8(payload >> 16),
			G: uint8(payload >> 8),
			B: uint8(payload),
			A: 255,
		}
	default:
		return nil
	}
}

// PackCellColors packs a cell's three color fields (foreground, background,
// decoration) into the triple spec.md §3.2 describes. Full 24-bit RGB on
// all three channels cannot be losslessly folded into a single u64 without
// giving up precision somewhere, and the Ring stream format is explicitly
// "not a public wire format" (spec.md §4.3) — so this returns three packed
// 32-bit words rather than inventing a lossy sub-field layout.
func PackCellColors(c *Cell) [3]uint32 {
	return [3]uint32{PackColor(c.Fg), PackColor(c.Bg), PackColor(c.UnderlineColor)}
}

// UnpackCellColors applies a packed color triple back onto a cell.
func UnpackCellColors(c *Cell, packed [3]uint32) {
	c.Fg = UnpackColor(packed[0])
	c.Bg = UnpackColor(packed[1])
	c.UnderlineColor = UnpackColor(packed[2])
}

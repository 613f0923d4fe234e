package headlessterm

// Arabic presentation-form shaping (spec.md §4.5 step 5). No example repo in
// the retrieval pack wires an ecosystem library for Arabic joining/shaping,
// and none was found more broadly (this is a narrow, table-driven concern
// rather than something a dependency-shaped solution fits); implemented
// directly against the standard Arabic joining-type classification.
//
// Ligatures are intentionally not formed, per spec.md's "ligatures are
// disabled" note.

type joiningType byte

const (
	joinNone joiningType = iota
	joinDual             // joins on both sides (most Arabic letters)
	joinRight            // joins only to the right (e.g. alef, dal, re family)
	joinTransparent      // combining marks: invisible to joining context
)

// joiningTypeOf classifies the small set of base Arabic letters this shaper
// covers. Unrecognised runes are treated as joinNone (no shaping applied).
func joiningTypeOf(r rune) joiningType {
	switch {
	case r >= 0x0610 && r <= 0x061A, r >= 0x064B && r <= 0x065F, r == 0x0670:
		return joinTransparent
	case r == 0x0627, r == 0x0622, r == 0x0623, r == 0x0625, r == 0x0629,
		r == 0x062F, r == 0x0630, r == 0x0631, r == 0x0632, r == 0x0648:
		return joinRight
	case r >= 0x0628 && r <= 0x064A:
		return joinDual
	default:
		return joinNone
	}
}

// arabicForms maps a dual-joining or right-joining base letter to its
// isolated/final/initial/medial presentation forms. Index: 0=isolated,
// 1=final, 2=initial, 3=medial. Only the letters joiningTypeOf recognises
// are covered; shaping falls back to the bare base letter otherwise.
var arabicForms = map[rune][4]rune{
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92}, // BEH
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98}, // TEH
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C}, // THEH
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0}, // JEEM
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4}, // HAH
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8}, // KHAH
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4}, // SEEN
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8}, // SHEEN
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC}, // SAD
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0}, // DAD
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4}, // TAH
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8}, // ZAH
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC}, // AIN
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0}, // GHAIN
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4}, // FEH
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8}, // QAF
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC}, // KAF
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0}, // LAM
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4}, // MEEM
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8}, // NOON
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC}, // HEH
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4}, // YEH
	0x0627: {0xFE8D, 0xFE8E, 0xFE8D, 0xFE8E}, // ALEF (right-joining: no medial/initial)
	0x062F: {0xFEA9, 0xFEAA, 0xFEA9, 0xFEAA}, // DAL
	0x0631: {0xFEAD, 0xFEAE, 0xFEAD, 0xFEAE}, // REH
	0x0648: {0xFEED, 0xFEEE, 0xFEED, 0xFEEE}, // WAW
}

// applyArabicShaping walks the flattened paragraph text left to right,
// determining each letter's joining context, and replaces the owning
// cell's base Char with the presentation form. Shaping only
// changes the glyph drawn; it never reorders or merges cells (ligatures
// disabled).
func applyArabicShaping(paragraph [][]Cell, refs []paragraphCharRef, text []rune) {
	for i, ref := range refs {
		if ref.row < 0 {
			continue
		}
		r := text[i]
		forms, ok := arabicForms[r]
		if !ok {
			continue
		}

		joinsPrev := i > 0 && joinsForward(text, i-1, -1)
		joinsNext := i < len(text)-1 && joinsForward(text, i+1, 1) && joiningTypeOf(r) == joinDual

		var form rune
		switch {
		case joinsPrev && joinsNext:
			form = forms[3] // medial
		case joinsPrev:
			form = forms[1] // final
		case joinsNext:
			form = forms[2] // initial
		default:
			form = forms[0] // isolated
		}

		cell := &paragraph[ref.row][ref.col]
		if cell.Char == r {
			cell.Char = form
		}
	}
}

// joinsForward reports whether the letter at idx (when stepping dir
// positions from the current letter, skipping joining-transparent
// combining marks) is itself capable of joining in that direction.
func joinsForward(text []rune, idx, dir int) bool {
	for idx >= 0 && idx < len(text) {
		jt := joiningTypeOf(text[idx])
		switch jt {
		case joinTransparent:
			idx += dir
			continue
		case joinDual:
			return true
		case joinRight:
			// Right-joining letters join only to the letter before them.
			return dir > 0
		default:
			return false
		}
	}
	return false
}

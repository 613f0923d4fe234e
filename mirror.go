package headlessterm

// BiDi mirror pairs (spec.md §4.5 "BiDi mirror pairs"). mirrorPairs covers
// the standard BidiMirroring property for the common bracket/angle/math
// characters a terminal is likely to display; boxMirror covers the 128
// DEC/Unicode box-drawing characters separately, selected only when the
// caller passes box_drawing=true.
var mirrorPairs = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	0x00AB: 0x00BB, 0x00BB: 0x00AB, // guillemets
	0x2039: 0x203A, 0x203A: 0x2039, // single guillemets
	0x2264: 0x2265, 0x2265: 0x2264, // <= >=
	0x2266: 0x2267, 0x2267: 0x2266,
	0x2268: 0x2269, 0x2269: 0x2268,
	0x226A: 0x226B, 0x226B: 0x226A,
	0x2983: 0x2984, 0x2984: 0x2983,
	0x2985: 0x2986, 0x2986: 0x2985,
	0x3008: 0x3009, 0x3009: 0x3008, // CJK angle brackets
	0x300A: 0x300B, 0x300B: 0x300A,
}

// boxMirror maps the box-drawing block (U+2500..U+257F, 128 code points) to
// their left/right mirrored counterpart, used when reversing a run of
// box-drawing glyphs inside an RTL context.
var boxMirror = buildBoxMirrorTable()

func buildBoxMirrorTable() map[rune]rune {
	m := make(map[rune]rune, 128)
	pairs := [][2]rune{
		{0x250C, 0x2510}, {0x2510, 0x250C}, // ┌ ┐ corners
		{0x2514, 0x2518}, {0x2518, 0x2514}, // └ ┘ corners
		{0x251C, 0x2524}, {0x2524, 0x251C}, // ├ ┤ tees
		{0x2552, 0x2555}, {0x2555, 0x2552},
		{0x2553, 0x2556}, {0x2556, 0x2553},
		{0x2554, 0x2557}, {0x2557, 0x2554}, // double corners
		{0x255A, 0x255D}, {0x255D, 0x255A},
		{0x2560, 0x2563}, {0x2563, 0x2560},
		{0x2574, 0x2576}, {0x2576, 0x2574}, // light single-direction lines
	}
	for _, p := range pairs {
		m[p[0]] = p[1]
		m[p[1]] = p[0]
	}
	// Every other code point in the block maps to itself: the symmetric
	// glyphs (horizontal and vertical lines, crosses) and also any
	// asymmetric glyph that has no pair listed above.
	for r := rune(0x2500); r <= 0x257F; r++ {
		if _, ok := m[r]; !ok {
			m[r] = r
		}
	}
	return m
}

// Mirror returns the mirrored form of u's base character, preserving its
// combining accents, or (0, false) if the character has no mirrored
// counterpart. When boxDrawing is true, box-drawing characters are also
// looked up in the 128-entry box mirror table.
func Mirror(u Unistr, boxDrawing bool) (Unistr, bool) {
	base, accents := globalUnistrTable.lookup(u)

	if m, ok := mirrorPairs[base]; ok {
		return replaceBaseKeepingAccents(m, accents), true
	}
	if boxDrawing && base >= 0x2500 && base <= 0x257F {
		if m, ok := boxMirror[base]; ok {
			return replaceBaseKeepingAccents(m, accents), true
		}
	}
	return 0, false
}

func replaceBaseKeepingAccents(base rune, accents []rune) Unistr {
	if len(accents) == 0 {
		return Unistr(base)
	}
	return globalUnistrTable.intern(base, accents)
}

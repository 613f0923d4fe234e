package headlessterm

import "testing"

func TestApplyArabicShapingIsolatedForm(t *testing.T) {
	row := makeRowOfText(string(rune(0x0628))) // BEH, alone
	text := []rune{0x0628}
	refs := []paragraphCharRef{{row: 0, col: 0}}

	applyArabicShaping([][]Cell{row}, refs, text)

	if row[0].Char != arabicForms[0x0628][0] {
		t.Errorf("expected isolated form %U, got %U", arabicForms[0x0628][0], row[0].Char)
	}
}

func TestApplyArabicShapingInitialMedialFinal(t *testing.T) {
	// BEH BEH BEH: first gets initial form, middle gets medial, last gets final.
	text := []rune{0x0628, 0x0628, 0x0628}
	row := make([]Cell, 3)
	for i, r := range text {
		row[i] = NewCell()
		row[i].Char = r
	}
	refs := []paragraphCharRef{{row: 0, col: 0}, {row: 0, col: 1}, {row: 0, col: 2}}

	applyArabicShaping([][]Cell{row}, refs, text)

	forms := arabicForms[0x0628]
	if row[0].Char != forms[2] {
		t.Errorf("expected initial form %U at position 0, got %U", forms[2], row[0].Char)
	}
	if row[1].Char != forms[3] {
		t.Errorf("expected medial form %U at position 1, got %U", forms[3], row[1].Char)
	}
	if row[2].Char != forms[1] {
		t.Errorf("expected final form %U at position 2, got %U", forms[1], row[2].Char)
	}
}

func TestApplyArabicShapingRightJoiningNeverMedial(t *testing.T) {
	// ALEF (right-joining only) flanked by BEH on both sides should never
	// take a medial form, since ALEF cannot join forward.
	text := []rune{0x0628, 0x0627, 0x0628}
	row := make([]Cell, 3)
	for i, r := range text {
		row[i] = NewCell()
		row[i].Char = r
	}
	refs := []paragraphCharRef{{row: 0, col: 0}, {row: 0, col: 1}, {row: 0, col: 2}}

	applyArabicShaping([][]Cell{row}, refs, text)

	alefForms := arabicForms[0x0627]
	if row[1].Char != alefForms[1] {
		t.Errorf("expected ALEF final form %U, got %U", alefForms[1], row[1].Char)
	}
}

func TestJoiningTypeClassification(t *testing.T) {
	if joiningTypeOf(0x0628) != joinDual {
		t.Error("expected BEH to be dual-joining")
	}
	if joiningTypeOf(0x0627) != joinRight {
		t.Error("expected ALEF to be right-joining only")
	}
	if joiningTypeOf(0x064B) != joinTransparent {
		t.Error("expected fathatan (tanween) to be joining-transparent")
	}
	if joiningTypeOf('x') != joinNone {
		t.Error("expected a Latin letter to be joinNone")
	}
}

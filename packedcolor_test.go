package headlessterm

import (
	"image/color"
	"testing"
)

func TestPackColorDefault(t *testing.T) {
	packed := PackColor(nil)
	if UnpackColor(packed) != nil {
		t.Error("expected round-tripping a nil color to stay nil")
	}
}

func TestPackColorIndexed(t *testing.T) {
	c := &IndexedColor{Index: 42}
	packed := PackColor(c)

	got, ok := UnpackColor(packed).(*IndexedColor)
	if !ok {
		t.Fatalf("expected *IndexedColor, got %T", UnpackColor(packed))
	}
	if got.Index != 42 {
		t.Errorf("expected index 42, got %d", got.Index)
	}
}

func TestPackColorNamed(t *testing.T) {
	c := &NamedColor{Name: NamedColorCursor}
	packed := PackColor(c)

	unpacked := UnpackColor(packed)
	named, ok := unpacked.(*NamedColor)
	if !ok {
		t.Fatalf("expected *NamedColor, got %T", unpacked)
	}
	if named.Name != NamedColorCursor {
		t.Errorf("expected name %d, got %d", NamedColorCursor, named.Name)
	}
}

func TestPackColorRGB(t *testing.T) {
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	packed := PackColor(c)

	got, ok := UnpackColor(packed).(color.RGBA)
	if !ok {
		t.Fatalf("expected color.RGBA, got %T", UnpackColor(packed))
	}
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("expected (10,20,30), got (%d,%d,%d)", got.R, got.G, got.B)
	}
}

func TestPackCellColorsRoundTrip(t *testing.T) {
	cell := NewCell()
	cell.Fg = color.RGBA{R: 1, G: 2, B: 3, A: 255}
	cell.Bg = &IndexedColor{Index: 7}
	cell.UnderlineColor = nil

	packed := PackCellColors(&cell)

	var restored Cell
	UnpackCellColors(&restored, packed)

	fg, ok := restored.Fg.(color.RGBA)
	if !ok || fg.R != 1 || fg.G != 2 || fg.B != 3 {
		t.Errorf("expected foreground to round-trip, got %#v", restored.Fg)
	}
	bg, ok := restored.Bg.(*IndexedColor)
	if !ok || bg.Index != 7 {
		t.Errorf("expected background index 7, got %#v", restored.Bg)
	}
	if restored.UnderlineColor != nil {
		t.Errorf("expected nil underline color, got %#v", restored.UnderlineColor)
	}
}

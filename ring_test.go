package headlessterm

import "testing"

func makeTestLine(text string) []Cell {
	cells := make([]Cell, len(text))
	for i, r := range text {
		cells[i] = NewCell()
		cells[i].Char = r
	}
	return cells
}

func TestFileRingStorePushAndLine(t *testing.T) {
	store := NewFileRingStore(100)
	defer store.Clear()

	store.Push(makeTestLine("hello"), false, 0)
	store.Push(makeTestLine("world"), true, BidiFlagRTL)

	if store.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", store.Len())
	}

	line0 := store.Line(0)
	if got := cellsToText(line0); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	line1 := store.Line(1)
	if got := cellsToText(line1); got != "world" {
		t.Errorf("expected %q, got %q", "world", got)
	}

	if wrapped, flags := store.RowAttrs(0); wrapped || flags != 0 {
		t.Errorf("expected row 0 to be unwrapped with no flags, got wrapped=%v flags=%v", wrapped, flags)
	}
	if wrapped, flags := store.RowAttrs(1); !wrapped || flags != BidiFlagRTL {
		t.Errorf("expected row 1 to be wrapped with RTL flag, got wrapped=%v flags=%v", wrapped, flags)
	}
}

func TestFileRingStoreOutOfRange(t *testing.T) {
	store := NewFileRingStore(10)
	defer store.Clear()

	if store.Line(0) != nil {
		t.Error("expected nil for an empty store")
	}
	store.Push(makeTestLine("x"), false, 0)
	if store.Line(-1) != nil || store.Line(5) != nil {
		t.Error("expected nil for out-of-range indices")
	}
}

func TestFileRingStoreMaxLinesEviction(t *testing.T) {
	store := NewFileRingStore(2)
	defer store.Clear()

	store.Push(makeTestLine("a"), false, 0)
	store.Push(makeTestLine("b"), false, 0)
	store.Push(makeTestLine("c"), false, 0)

	if store.Len() != 2 {
		t.Fatalf("expected eviction down to 2 lines, got %d", store.Len())
	}
	if got := cellsToText(store.Line(0)); got != "b" {
		t.Errorf("expected oldest-surviving line %q, got %q", "b", got)
	}
}

func TestFileRingStorePreservesHyperlinkInline(t *testing.T) {
	store := NewFileRingStore(10)
	defer store.Clear()

	line := makeTestLine("hi")
	line[0].Hyperlink = &Hyperlink{ID: "42", URI: "https://example.com"}
	line[0].HyperlinkIdx = 7 // live Ring table index; must not be trusted after eviction
	store.Push(line, false, 0)

	got := store.Line(0)
	if got[0].Hyperlink == nil || got[0].Hyperlink.ID != "42" || got[0].Hyperlink.URI != "https://example.com" {
		t.Errorf("expected hyperlink to round-trip inline, got %+v", got[0].Hyperlink)
	}
	if got[0].HyperlinkIdx != HyperlinkIdxInStream {
		t.Errorf("expected HyperlinkIdxInStream sentinel, got %d", got[0].HyperlinkIdx)
	}
	if got[1].Hyperlink != nil || got[1].HyperlinkIdx != 0 {
		t.Errorf("expected no hyperlink on second cell, got hyperlink=%+v idx=%d", got[1].Hyperlink, got[1].HyperlinkIdx)
	}
}

func TestFileRingStoreClear(t *testing.T) {
	store := NewFileRingStore(10)
	defer store.Clear()

	store.Push(makeTestLine("x"), false, 0)
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("expected 0 lines after Clear, got %d", store.Len())
	}
}

func TestMemoryScrollbackRoundTrip(t *testing.T) {
	store := NewMemoryScrollback(10)

	store.Push(makeTestLine("abc"), true, BidiFlagAuto)
	if store.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", store.Len())
	}
	if got := cellsToText(store.Line(0)); got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}
	if wrapped, flags := store.RowAttrs(0); !wrapped || flags != BidiFlagAuto {
		t.Errorf("expected wrapped=true flags=BidiFlagAuto, got wrapped=%v flags=%v", wrapped, flags)
	}

	store.Clear()
	if store.Len() != 0 {
		t.Error("expected 0 lines after Clear")
	}
}

func cellsToText(cells []Cell) string {
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.Char
	}
	return string(runes)
}

package headlessterm

import "testing"

func TestRingViewSetRowsCopiesCells(t *testing.T) {
	buf := NewBuffer(5, 10)
	buf.Cell(2, 0).Char = 'A'

	view := NewRingView(buf, nil)
	view.SetRows(2, 1)

	row := view.Row(2)
	if row == nil || row[0].Char != 'A' {
		t.Fatalf("expected view to see row 2's content, got %v", row)
	}

	// Mutating the live buffer afterward must not affect the already-copied view.
	buf.Cell(2, 0).Char = 'B'
	if view.Row(2)[0].Char != 'A' {
		t.Error("expected RingView's cached row to be independent of later buffer mutation")
	}
}

func TestRingViewGrowsToParagraphBoundary(t *testing.T) {
	buf := NewBuffer(5, 10)
	buf.SetWrapped(0, true) // row 0 soft-wraps into row 1
	buf.SetWrapped(1, false)

	view := NewRingView(buf, nil)
	view.SetRows(1, 1) // ask only for row 1

	top, length := view.Bounds()
	if top != 0 || length != 2 {
		t.Errorf("expected the view to grow to cover the wrapped paragraph [0,2), got [%d,%d)", top, top+length)
	}
}

func TestRingViewOutOfWindowReturnsNil(t *testing.T) {
	buf := NewBuffer(5, 10)
	view := NewRingView(buf, nil)
	view.SetRows(0, 2)

	if view.Row(4) != nil {
		t.Error("expected rows outside the current window to return nil")
	}
	if view.BidiRow(4) != nil {
		t.Error("expected BidiRow outside the window to return nil")
	}
}

func TestRingViewPauseReleasesBuffers(t *testing.T) {
	buf := NewBuffer(5, 10)
	view := NewRingView(buf, nil)
	view.SetRows(0, 2)

	if view.Row(0) == nil {
		t.Fatal("expected a row before pausing")
	}

	view.Pause()
	if view.Row(0) != nil {
		t.Error("expected Pause to release cached rows")
	}

	view.Resume()
	view.SetRows(0, 2)
	if view.Row(0) == nil {
		t.Error("expected Resume + SetRows to reallocate the view")
	}
}

func TestRingViewNilRunnerUsesTrivialBidiRows(t *testing.T) {
	buf := NewBuffer(3, 10)
	view := NewRingView(buf, nil)
	view.SetRows(0, 3)

	for i := 0; i < 3; i++ {
		if view.BidiRow(i) == nil {
			t.Fatalf("expected a trivial BidiRow at %d when no runner is configured", i)
		}
	}
}

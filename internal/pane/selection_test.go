package pane

import "testing"

func TestMoveClampsToBounds(t *testing.T) {
	s := NewSelectionState(3)
	s = s.MoveUp() // already at 0
	if s.Cursor() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", s.Cursor())
	}
	s = s.MoveEnd().MoveDown()
	if s.Cursor() != 2 {
		t.Errorf("expected cursor clamped to 2, got %d", s.Cursor())
	}
}

func TestAddRangeUsesAnchor(t *testing.T) {
	s := NewSelectionState(10)
	s = s.withCursor(3) // sets anchor=3, cursor=3
	s = s.AddRange(6)
	for i := 3; i <= 6; i++ {
		if !s.Selected(i) {
			t.Errorf("expected index %d selected in range", i)
		}
	}
	if s.Selected(2) || s.Selected(7) {
		t.Errorf("expected indices outside range to be unselected")
	}
	if s.Cursor() != 6 {
		t.Errorf("expected cursor at range end, got %d", s.Cursor())
	}
}

func TestInvertAndClear(t *testing.T) {
	s := NewSelectionState(4).Replace(0, 2)
	s = s.Invert()
	if s.Selected(0) || s.Selected(2) {
		t.Errorf("expected originally selected indices to be cleared after invert")
	}
	if !s.Selected(1) || !s.Selected(3) {
		t.Errorf("expected originally unselected indices to be selected after invert")
	}
	s = s.Clear()
	if len(s.SelectedIndices()) != 0 {
		t.Errorf("expected no selection after Clear")
	}
}

func TestRebuildReKeysByPath(t *testing.T) {
	prevPaths := []string{"/a", "/b", "/c"}
	s := NewSelectionState(3).Replace(0, 2)
	s = s.withCursor(1)

	// /b disappears; /a and /c remain, order changes.
	newPaths := []string{"/c", "/a"}
	next := Rebuild(s, prevPaths, newPaths)

	if !next.Selected(0) || !next.Selected(1) {
		t.Errorf("expected both surviving paths to remain selected, got %v", next.SelectedIndices())
	}
	// cursor was on /b which vanished; falls back to numeric clamp.
	if next.Cursor() < 0 || next.Cursor() >= next.Length() {
		t.Errorf("expected cursor within bounds, got %d", next.Cursor())
	}
}

func TestRebuildDropsVanishedSelection(t *testing.T) {
	prevPaths := []string{"/a", "/b"}
	s := NewSelectionState(2).Replace(1)
	next := Rebuild(s, prevPaths, []string{"/a"})
	if len(next.SelectedIndices()) != 0 {
		t.Errorf("expected selection on vanished path to be dropped, got %v", next.SelectedIndices())
	}
}

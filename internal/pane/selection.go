// Package pane implements per-pane cursor/selection and back/forward
// navigation state. Nothing here touches the filesystem; it operates
// purely on the current listing's paths and indices.
package pane

// SelectionState holds one pane's cursor, anchor, and selected-index set.
// Indices refer to positions in the current filtered+sorted listing. Cursor
// is always within [0, len) whenever len > 0.
type SelectionState struct {
	cursor   int
	anchor   int
	selected map[int]struct{}
	length   int
}

// NewSelectionState returns a state with cursor and anchor at 0, nothing
// selected, sized for a listing of length entries.
func NewSelectionState(length int) SelectionState {
	return SelectionState{selected: map[int]struct{}{}, length: length}
}

func (s SelectionState) Cursor() int   { return s.cursor }
func (s SelectionState) Anchor() int   { return s.anchor }
func (s SelectionState) Length() int   { return s.length }

// Selected reports whether index i is currently selected.
func (s SelectionState) Selected(i int) bool {
	_, ok := s.selected[i]
	return ok
}

// SelectedIndices returns the selected indices in ascending order.
func (s SelectionState) SelectedIndices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	insertionSort(out)
	return out
}

func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}

func (s SelectionState) clampIndex(i int) int {
	if s.length == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= s.length {
		return s.length - 1
	}
	return i
}

// withCursor returns a copy of s with cursor moved to i (clamped) and anchor
// reset to match, as plain cursor movement (without shift-extend) does.
func (s SelectionState) withCursor(i int) SelectionState {
	s.cursor = s.clampIndex(i)
	s.anchor = s.cursor
	return s
}

// MoveUp/Down/Home/End/Page return a new SelectionState with the cursor
// relocated; selection is untouched (callers wanting range-extend call
// AddRange with the new cursor explicitly, mirroring shift-click semantics).
func (s SelectionState) MoveUp() SelectionState   { return s.withCursor(s.cursor - 1) }
func (s SelectionState) MoveDown() SelectionState { return s.withCursor(s.cursor + 1) }
func (s SelectionState) MoveHome() SelectionState { return s.withCursor(0) }
func (s SelectionState) MoveEnd() SelectionState  { return s.withCursor(s.length - 1) }

// MovePage moves the cursor by pageSize rows, toward the end when down is
// true and toward the start otherwise, clamped to the listing bounds.
func (s SelectionState) MovePage(pageSize int, down bool) SelectionState {
	if down {
		return s.withCursor(s.cursor + pageSize)
	}
	return s.withCursor(s.cursor - pageSize)
}

// Toggle flips the selected state of index i.
func (s SelectionState) Toggle(i int) SelectionState {
	i = s.clampIndex(i)
	next := s.cloneSelected()
	if _, ok := next[i]; ok {
		delete(next, i)
	} else {
		next[i] = struct{}{}
	}
	s.selected = next
	return s
}

// AddRange selects every index between the pane's anchor and i inclusive,
// using anchor as the fixed endpoint, and moves the cursor to i.
func (s SelectionState) AddRange(i int) SelectionState {
	i = s.clampIndex(i)
	lo, hi := s.anchor, i
	if lo > hi {
		lo, hi = hi, lo
	}
	next := s.cloneSelected()
	for idx := lo; idx <= hi; idx++ {
		next[idx] = struct{}{}
	}
	s.selected = next
	s.cursor = i
	return s
}

// Replace clears the selection and selects exactly the given indices.
func (s SelectionState) Replace(indices ...int) SelectionState {
	next := map[int]struct{}{}
	for _, i := range indices {
		next[s.clampIndex(i)] = struct{}{}
	}
	s.selected = next
	return s
}

// SelectAll selects every index in [0, length).
func (s SelectionState) SelectAll() SelectionState {
	next := make(map[int]struct{}, s.length)
	for i := 0; i < s.length; i++ {
		next[i] = struct{}{}
	}
	s.selected = next
	return s
}

// Invert flips every index's selected state.
func (s SelectionState) Invert() SelectionState {
	next := make(map[int]struct{}, s.length)
	for i := 0; i < s.length; i++ {
		if _, ok := s.selected[i]; !ok {
			next[i] = struct{}{}
		}
	}
	s.selected = next
	return s
}

// Clear empties the selection.
func (s SelectionState) Clear() SelectionState {
	s.selected = map[int]struct{}{}
	return s
}

func (s SelectionState) cloneSelected() map[int]struct{} {
	next := make(map[int]struct{}, len(s.selected))
	for k := range s.selected {
		next[k] = struct{}{}
	}
	return next
}

// Rebuild re-keys the selection against a new listing of paths, preserving
// cursor and selection by path where possible. Entries whose path is no
// longer present are dropped from the selection; if the cursor's path is
// gone, the cursor falls back to the same numeric index (clamped), or 0.
func Rebuild(prev SelectionState, prevPaths, newPaths []string) SelectionState {
	next := NewSelectionState(len(newPaths))
	indexOf := make(map[string]int, len(newPaths))
	for i, p := range newPaths {
		indexOf[p] = i
	}

	for i := range prev.selected {
		if i < 0 || i >= len(prevPaths) {
			continue
		}
		if ni, ok := indexOf[prevPaths[i]]; ok {
			next.selected[ni] = struct{}{}
		}
	}

	cursorPath := ""
	if prev.cursor >= 0 && prev.cursor < len(prevPaths) {
		cursorPath = prevPaths[prev.cursor]
	}
	if ni, ok := indexOf[cursorPath]; ok {
		next.cursor = ni
		next.anchor = ni
	} else {
		next.cursor = next.clampIndex(prev.cursor)
		next.anchor = next.cursor
	}
	return next
}

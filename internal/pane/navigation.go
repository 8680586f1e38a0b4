package pane

// defaultHistoryCapacity bounds each per-pane stack; pushing past the bound
// evicts the oldest entry.
const defaultHistoryCapacity = 100

// NavigationState tracks one pane's current location and its bounded
// back/forward history. Duplicate adjacent entries are never stored.
type NavigationState struct {
	current  string
	back     []string
	forward  []string
	capacity int
}

// NewNavigationState starts a pane at path with empty history.
func NewNavigationState(path string) NavigationState {
	return NavigationState{current: path, capacity: defaultHistoryCapacity}
}

func (n NavigationState) Current() string    { return n.current }
func (n NavigationState) BackLen() int       { return len(n.back) }
func (n NavigationState) ForwardLen() int    { return len(n.forward) }

// Goto pushes the outgoing path onto the back-stack and clears the
// forward-stack, then moves current to path. A no-op if path equals current
// (never store a duplicate adjacent entry).
func (n NavigationState) Goto(path string) NavigationState {
	if path == n.current {
		return n
	}
	n.back = pushBounded(n.back, n.current, n.capacity)
	n.forward = nil
	n.current = path
	return n
}

// Back pops the most recent back-stack entry onto the forward-stack and
// moves current there. A no-op if the back-stack is empty.
func (n NavigationState) Back() NavigationState {
	if len(n.back) == 0 {
		return n
	}
	last := n.back[len(n.back)-1]
	n.back = n.back[:len(n.back)-1]
	n.forward = pushBounded(n.forward, n.current, n.capacity)
	n.current = last
	return n
}

// Forward pops the most recent forward-stack entry onto the back-stack and
// moves current there. A no-op if the forward-stack is empty.
func (n NavigationState) Forward() NavigationState {
	if len(n.forward) == 0 {
		return n
	}
	next := n.forward[len(n.forward)-1]
	n.forward = n.forward[:len(n.forward)-1]
	n.back = pushBounded(n.back, n.current, n.capacity)
	n.current = next
	return n
}

// Up navigates to parent(current) via Goto, using the supplied parent
// function so the package stays filesystem-agnostic (callers pass
// filepath.Dir or an equivalent).
func (n NavigationState) Up(parent func(string) string) NavigationState {
	return n.Goto(parent(n.current))
}

func pushBounded(stack []string, v string, capacity int) []string {
	if len(stack) > 0 && stack[len(stack)-1] == v {
		return stack
	}
	stack = append(stack, v)
	if capacity > 0 && len(stack) > capacity {
		stack = stack[len(stack)-capacity:]
	}
	return stack
}

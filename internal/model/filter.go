package model

import (
	"sort"
	"strings"
)

// FilterSpec describes the predicates a directory child must pass to appear
// in a listing. An entry passes iff every predicate accepts it.
type FilterSpec struct {
	Pattern     string // case-insensitive substring match against Name; "" disables
	ShowHidden  bool
	ShowSystem  bool
	Extensions  map[string]struct{} // empty/nil means "no extension restriction"
	MinSize     int64
	MaxSize     int64 // 0 means "no upper bound"
}

// Passes applies the filter predicates in a fixed order: extension set ->
// hidden/system -> size bounds -> substring pattern. Kind has no predicate
// of its own at this layer (callers that want to exclude directories apply
// that before calling Passes).
func Passes(e EntryMeta, f FilterSpec) bool {
	if len(f.Extensions) > 0 {
		if _, ok := f.Extensions[e.Extension]; !ok {
			return false
		}
	}
	if !f.ShowHidden && e.Attributes.Hidden {
		return false
	}
	if !f.ShowSystem && e.Attributes.System {
		return false
	}
	if e.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && e.Size > f.MaxSize {
		return false
	}
	if f.Pattern != "" {
		if !strings.Contains(foldName(e.Name), foldName(f.Pattern)) {
			return false
		}
	}
	return true
}

// ApplySortAndFilter returns the subset of entries passing f, ordered by s.
// The result is a fresh slice; entries is never mutated in place.
func ApplySortAndFilter(entries []EntryMeta, s SortSpec, f FilterSpec) []EntryMeta {
	out := make([]EntryMeta, 0, len(entries))
	for _, e := range entries {
		if Passes(e, f) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j], s) == Less
	})
	return out
}

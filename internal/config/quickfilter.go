package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// RememberQuickFilter validates pattern as a doublestar glob and records or
// bumps its usage in the quick-filter history, evicting the
// least-recently-used entry once MaxEntries is exceeded. The live filter
// predicate itself (model.FilterSpec.Pattern) is a plain substring match;
// this history only powers pattern autocompletion, so it accepts the
// strictly richer glob syntax.
func (c *Config) RememberQuickFilter(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("config: empty quick-filter pattern")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("config: invalid glob pattern %q", pattern)
	}

	now := time.Now()
	qf := &c.UI.QuickFilter
	for i := range qf.Entries {
		if qf.Entries[i].Pattern == pattern {
			qf.Entries[i].LastUsed = now
			qf.Entries[i].UseCount++
			return nil
		}
	}

	qf.Entries = append(qf.Entries, QuickFilterEntry{Pattern: pattern, LastUsed: now, UseCount: 1})
	if len(qf.Entries) > qf.MaxEntries {
		sort.Slice(qf.Entries, func(i, j int) bool {
			return qf.Entries[i].LastUsed.Before(qf.Entries[j].LastUsed)
		})
		qf.Entries = qf.Entries[len(qf.Entries)-qf.MaxEntries:]
	}
	return nil
}

// QuickFilterHistory returns the remembered patterns, most recently used
// first.
func (c *Config) QuickFilterHistory() []QuickFilterEntry {
	out := make([]QuickFilterEntry, len(c.UI.QuickFilter.Entries))
	copy(out, c.UI.QuickFilter.Entries)
	sort.Slice(out, func(i, j int) bool { return out[i].LastUsed.After(out[j].LastUsed) })
	return out
}

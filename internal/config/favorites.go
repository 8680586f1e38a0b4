package config

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"wfm/internal/model"
)

// FavoriteList returns the persisted favorites as model.Favorite, ordered by
// Order ascending.
func (c *Config) FavoriteList() []model.Favorite {
	out := make([]model.Favorite, 0, len(c.Favorites))
	for _, f := range c.Favorites {
		out = append(out, model.Favorite{ID: f.ID, Name: f.Name, Path: f.Path, Order: f.Order, Icon: f.Icon})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// AddFavorite appends a new favorite at the end of the order, assigning it
// a fresh uuid. Returns the assigned ID.
func (c *Config) AddFavorite(name, path string) string {
	id := uuid.NewString()
	order := 0
	for _, f := range c.Favorites {
		if f.Order >= order {
			order = f.Order + 1
		}
	}
	c.Favorites = append(c.Favorites, FavoriteEntry{ID: id, Name: name, Path: path, Order: order})
	return id
}

// RemoveFavorite deletes the favorite with the given id, if present.
func (c *Config) RemoveFavorite(id string) {
	out := c.Favorites[:0]
	for _, f := range c.Favorites {
		if f.ID != id {
			out = append(out, f)
		}
	}
	c.Favorites = out
}

// RenameFavorite updates the display name of the favorite with the given id.
func (c *Config) RenameFavorite(id, name string) error {
	for i := range c.Favorites {
		if c.Favorites[i].ID == id {
			c.Favorites[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("config: favorite %q not found", id)
}

// Reorder assigns a new strictly-ascending Order to each favorite named in
// orderedIDs, in the given sequence. It is an error if orderedIDs does not
// name exactly the current set of favorite IDs with no duplicates — a
// partial or stale reorder must never silently corrupt the list.
func (c *Config) Reorder(orderedIDs []string) error {
	if len(orderedIDs) != len(c.Favorites) {
		return fmt.Errorf("config: reorder must name exactly %d favorites, got %d", len(c.Favorites), len(orderedIDs))
	}

	byID := make(map[string]FavoriteEntry, len(c.Favorites))
	for _, f := range c.Favorites {
		byID[f.ID] = f
	}

	seen := make(map[string]bool, len(orderedIDs))
	next := make([]FavoriteEntry, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("config: reorder lists %q more than once", id)
		}
		seen[id] = true
		f, ok := byID[id]
		if !ok {
			return fmt.Errorf("config: reorder names unknown favorite %q", id)
		}
		f.Order = i
		next = append(next, f)
	}

	c.Favorites = next
	return nil
}

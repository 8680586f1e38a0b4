// Package config owns the single on-disk configuration document. UI/Theme
// sections are ambient product state owned by the outer application;
// Favorites, Session, and QuickFilter are wired to the core's domain types.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Config represents the application configuration.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Theme     ThemeConfig     `json:"theme"`
	UI        UIConfig        `json:"ui"`
	Favorites []FavoriteEntry `json:"favorites"`
	Session   SessionConfig   `json:"session"`
}

// WindowConfig represents window-related settings.
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings.
type ThemeConfig struct {
	Dark     bool   `json:"dark"`
	FontSize int    `json:"fontSize"`
	FontPath string `json:"fontPath"`
}

// UIConfig represents UI-related settings.
type UIConfig struct {
	ShowHiddenFiles   bool                    `json:"showHiddenFiles"`
	Sort              SortConfig              `json:"sort"`
	ItemSpacing       int                     `json:"itemSpacing"`
	CursorStyle       CursorStyleConfig       `json:"cursorStyle"`
	CursorMemory      CursorMemoryConfig      `json:"cursorMemory"`
	NavigationHistory NavigationHistoryConfig `json:"navigationHistory"`
	QuickFilter       QuickFilterConfig       `json:"quickFilter"`
}

// SortConfig is the persisted default model.SortSpec.
type SortConfig struct {
	SortBy           string `json:"sortBy"`           // "name", "size", "modified", "extension"
	SortOrder        string `json:"sortOrder"`        // "asc", "desc"
	DirectoriesFirst bool   `json:"directoriesFirst"`
}

// CursorStyleConfig represents cursor appearance settings, owned by the
// external UI layer but persisted alongside the core's own sections.
type CursorStyleConfig struct {
	Type      string `json:"type"`
	Thickness int    `json:"thickness"`
}

// CursorMemoryConfig remembers, per directory, the last-selected child name.
type CursorMemoryConfig struct {
	MaxEntries int                  `json:"maxEntries"`
	Entries    map[string]string    `json:"entries"`
	LastUsed   map[string]time.Time `json:"lastUsed"`
}

// NavigationHistoryConfig is the persisted "recently visited paths" list.
// It is distinct from the live per-pane back/forward stacks in
// internal/pane, which are session-only and never written to disk.
type NavigationHistoryConfig struct {
	MaxEntries int                  `json:"maxEntries"`
	Entries    []string             `json:"entries"`
	LastUsed   map[string]time.Time `json:"lastUsed"`
}

// QuickFilterEntry is one remembered doublestar glob pattern.
type QuickFilterEntry struct {
	Pattern  string    `json:"pattern"`
	LastUsed time.Time `json:"lastUsed"`
	UseCount int       `json:"useCount"`
}

// QuickFilterConfig holds the quick-filter pattern history. The live filter
// predicate (model.FilterSpec.Pattern) stays a plain case-insensitive
// substring match; this history only feeds pattern-completion for a future
// quick-filter dialog and is validated against doublestar glob syntax, a
// strictly richer language a substring is always valid in.
type QuickFilterConfig struct {
	MaxEntries int                `json:"maxEntries"`
	Entries    []QuickFilterEntry `json:"entries"`
}

// SessionConfig is the last-session state: one entry per pane, saved
// atomically so a crash mid-write never leaves a half-written session.
type SessionConfig struct {
	PanePaths []string `json:"panePaths"`
}

// FavoriteEntry is the on-disk projection of model.Favorite.
type FavoriteEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Order int    `json:"order"`
	Icon  string `json:"icon,omitempty"`
}

// Manager provides configuration management functionality.
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager rooted at the platform's
// conventional per-user config directory.
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// Load loads configuration from file and merges with defaults. A missing or
// malformed file never prevents startup; it falls back to defaults.
func (m *Manager) Load() (*Config, error) {
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		log.Printf("config file not found, using defaults: %v", err)
		return config, nil
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			log.Printf("config file malformed, using defaults: %v", err)
			return config, nil
		}
		// A wrongly typed field is left at its zero value by Unmarshal; the
		// fields that did decode are still merged below.
		log.Printf("config file has an invalid field, keeping the rest: %v", err)
	}

	mergeConfigs(config, &fileConfig)
	return config, nil
}

// Save atomically persists config: write to a temp file in the same
// directory, then rename over the target, so a crash mid-write leaves
// either the old file or the new one, never a partial one.
func (m *Manager) Save(config *Config) error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	tmp, err := os.CreateTemp(configDir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp config file: %w", err)
	}
	if err := os.Rename(tmpName, m.configPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration.
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Theme: ThemeConfig{
			Dark:     true,
			FontSize: 14,
			FontPath: "",
		},
		UI: UIConfig{
			ShowHiddenFiles: false,
			Sort: SortConfig{
				SortBy:           "name",
				SortOrder:        "asc",
				DirectoriesFirst: true,
			},
			ItemSpacing: 4,
			CursorStyle: CursorStyleConfig{
				Type:      "underline",
				Thickness: 2,
			},
			CursorMemory: CursorMemoryConfig{
				MaxEntries: 100,
				Entries:    make(map[string]string),
				LastUsed:   make(map[string]time.Time),
			},
			NavigationHistory: NavigationHistoryConfig{
				MaxEntries: 50,
				Entries:    make([]string, 0),
				LastUsed:   make(map[string]time.Time),
			},
			QuickFilter: QuickFilterConfig{
				MaxEntries: 30,
				Entries:    make([]QuickFilterEntry, 0),
			},
		},
		Favorites: make([]FavoriteEntry, 0),
		Session:   SessionConfig{PanePaths: make([]string, 0)},
	}
}

// getConfigPath returns the path to the configuration file following OS
// conventions.
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "config.json"
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "wfm")

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.json"
		}
		configDir = filepath.Join(home, "Library", "Application Support", "wfm")

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "config.json"
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, "wfm")
	}

	return filepath.Join(configDir, "config.json")
}

// mergeConfigs merges file config values into default config, field by
// field, so one malformed field never discards an otherwise-valid sibling.
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	defaultConfig.Theme.Dark = fileConfig.Theme.Dark
	if fileConfig.Theme.FontSize != 0 {
		defaultConfig.Theme.FontSize = fileConfig.Theme.FontSize
	}
	if fileConfig.Theme.FontPath != "" {
		defaultConfig.Theme.FontPath = fileConfig.Theme.FontPath
	}

	defaultConfig.UI.ShowHiddenFiles = fileConfig.UI.ShowHiddenFiles
	if fileConfig.UI.Sort.SortBy != "" {
		defaultConfig.UI.Sort.SortBy = fileConfig.UI.Sort.SortBy
	}
	if fileConfig.UI.Sort.SortOrder != "" {
		defaultConfig.UI.Sort.SortOrder = fileConfig.UI.Sort.SortOrder
	}
	defaultConfig.UI.Sort.DirectoriesFirst = fileConfig.UI.Sort.DirectoriesFirst
	if fileConfig.UI.ItemSpacing != 0 {
		defaultConfig.UI.ItemSpacing = fileConfig.UI.ItemSpacing
	}

	if fileConfig.UI.CursorStyle.Type != "" {
		defaultConfig.UI.CursorStyle.Type = fileConfig.UI.CursorStyle.Type
	}
	if fileConfig.UI.CursorStyle.Thickness != 0 {
		defaultConfig.UI.CursorStyle.Thickness = fileConfig.UI.CursorStyle.Thickness
	}

	if fileConfig.UI.CursorMemory.MaxEntries != 0 {
		defaultConfig.UI.CursorMemory.MaxEntries = fileConfig.UI.CursorMemory.MaxEntries
	}
	if fileConfig.UI.CursorMemory.Entries != nil {
		defaultConfig.UI.CursorMemory.Entries = fileConfig.UI.CursorMemory.Entries
	}
	if fileConfig.UI.CursorMemory.LastUsed != nil {
		defaultConfig.UI.CursorMemory.LastUsed = fileConfig.UI.CursorMemory.LastUsed
	}

	if fileConfig.UI.NavigationHistory.MaxEntries != 0 {
		defaultConfig.UI.NavigationHistory.MaxEntries = fileConfig.UI.NavigationHistory.MaxEntries
	}
	if fileConfig.UI.NavigationHistory.Entries != nil {
		defaultConfig.UI.NavigationHistory.Entries = fileConfig.UI.NavigationHistory.Entries
	}
	if fileConfig.UI.NavigationHistory.LastUsed != nil {
		defaultConfig.UI.NavigationHistory.LastUsed = fileConfig.UI.NavigationHistory.LastUsed
	}

	if fileConfig.UI.QuickFilter.MaxEntries != 0 {
		defaultConfig.UI.QuickFilter.MaxEntries = fileConfig.UI.QuickFilter.MaxEntries
	}
	if fileConfig.UI.QuickFilter.Entries != nil {
		defaultConfig.UI.QuickFilter.Entries = fileConfig.UI.QuickFilter.Entries
	}

	if fileConfig.Favorites != nil {
		defaultConfig.Favorites = fileConfig.Favorites
	}
	if fileConfig.Session.PanePaths != nil {
		defaultConfig.Session.PanePaths = fileConfig.Session.PanePaths
	}
}

// AddToNavigationHistory adds a path to navigation history.
func (c *Config) AddToNavigationHistory(path string) {
	now := time.Now()

	for i, entry := range c.UI.NavigationHistory.Entries {
		if entry == path {
			c.UI.NavigationHistory.Entries = append(
				c.UI.NavigationHistory.Entries[:i],
				c.UI.NavigationHistory.Entries[i+1:]...,
			)
			break
		}
	}

	c.UI.NavigationHistory.Entries = append([]string{path}, c.UI.NavigationHistory.Entries...)
	c.UI.NavigationHistory.LastUsed[path] = now

	if len(c.UI.NavigationHistory.Entries) > c.UI.NavigationHistory.MaxEntries {
		oldestPath := c.UI.NavigationHistory.Entries[c.UI.NavigationHistory.MaxEntries]
		c.UI.NavigationHistory.Entries = c.UI.NavigationHistory.Entries[:c.UI.NavigationHistory.MaxEntries]
		delete(c.UI.NavigationHistory.LastUsed, oldestPath)
	}
}

// FilterNavigationHistory filters history entries by query (case-insensitive
// partial match).
func (c *Config) FilterNavigationHistory(query string) []string {
	if query == "" {
		return c.UI.NavigationHistory.Entries
	}

	query = strings.ToLower(query)
	var filtered []string
	for _, path := range c.UI.NavigationHistory.Entries {
		if strings.Contains(strings.ToLower(path), query) {
			filtered = append(filtered, path)
		}
	}
	return filtered
}

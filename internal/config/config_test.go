package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	if config.Window.Width != 800 {
		t.Errorf("Expected default window width 800, got %d", config.Window.Width)
	}
	if config.Window.Height != 600 {
		t.Errorf("Expected default window height 600, got %d", config.Window.Height)
	}

	if !config.Theme.Dark {
		t.Error("Expected dark theme to be true by default")
	}
	if config.Theme.FontSize != 14 {
		t.Errorf("Expected default font size 14, got %d", config.Theme.FontSize)
	}

	if config.UI.ShowHiddenFiles {
		t.Error("Expected ShowHiddenFiles to be false by default")
	}
	if config.UI.Sort.SortBy != "name" {
		t.Errorf("Expected default sort by 'name', got '%s'", config.UI.Sort.SortBy)
	}
	if !config.UI.Sort.DirectoriesFirst {
		t.Error("Expected directories-first to default true")
	}
	if config.UI.ItemSpacing != 4 {
		t.Errorf("Expected default item spacing 4, got %d", config.UI.ItemSpacing)
	}

	if config.UI.CursorStyle.Type != "underline" {
		t.Errorf("Expected default cursor type 'underline', got '%s'", config.UI.CursorStyle.Type)
	}

	if len(config.Favorites) != 0 {
		t.Errorf("Expected no default favorites, got %d", len(config.Favorites))
	}
	if len(config.Session.PanePaths) != 0 {
		t.Errorf("Expected no default session paths, got %d", len(config.Session.PanePaths))
	}
}

func TestMergeConfigs(t *testing.T) {
	defaultConfig := getDefaultConfig()
	fileConfig := &Config{
		Window: WindowConfig{Width: 1024, Height: 768},
		Theme:  ThemeConfig{Dark: false, FontSize: 16, FontPath: "/path/to/font.ttf"},
		UI: UIConfig{
			ShowHiddenFiles: true,
			Sort:            SortConfig{SortBy: "size", SortOrder: "desc"},
			ItemSpacing:     8,
			CursorStyle:     CursorStyleConfig{Type: "border", Thickness: 3},
		},
		Favorites: []FavoriteEntry{{ID: "x", Name: "Docs", Path: "/docs", Order: 0}},
	}

	mergeConfigs(defaultConfig, fileConfig)

	if defaultConfig.Window.Width != 1024 {
		t.Errorf("Expected merged window width 1024, got %d", defaultConfig.Window.Width)
	}
	if defaultConfig.Theme.Dark {
		t.Error("Expected merged theme to be light (false)")
	}
	if defaultConfig.UI.Sort.SortBy != "size" {
		t.Errorf("Expected merged sort by 'size', got '%s'", defaultConfig.UI.Sort.SortBy)
	}
	if len(defaultConfig.Favorites) != 1 || defaultConfig.Favorites[0].Name != "Docs" {
		t.Errorf("Expected merged favorites to carry Docs, got %v", defaultConfig.Favorites)
	}
	// An unset field (ItemSpacing defaulted to zero value in a hand-built
	// fileConfig above is nonzero here, so exercise the true unset case too.
	def2 := getDefaultConfig()
	mergeConfigs(def2, &Config{})
	if def2.UI.Sort.SortBy != "name" {
		t.Errorf("Expected unset fileConfig fields to preserve defaults, got %q", def2.UI.Sort.SortBy)
	}
}

func TestConfigSerializationRoundTrip(t *testing.T) {
	config := getDefaultConfig()
	config.AddFavorite("Docs", "/home/user/docs")

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	var unmarshaled Config
	if err := json.Unmarshal(data, &unmarshaled); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if config.Window.Width != unmarshaled.Window.Width {
		t.Errorf("Window width not preserved: expected %d, got %d", config.Window.Width, unmarshaled.Window.Width)
	}
	if len(unmarshaled.Favorites) != 1 || unmarshaled.Favorites[0].Path != "/home/user/docs" {
		t.Errorf("Favorites not preserved across round trip: %v", unmarshaled.Favorites)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := getConfigPath()
	if path == "" {
		t.Error("Config path should not be empty")
	}
	if !strings.HasSuffix(path, "config.json") {
		t.Errorf("Config path should end with 'config.json', got '%s'", path)
	}
}

func TestManagerLoadNonExistentFile(t *testing.T) {
	manager := &Manager{configPath: "/non/existent/path/config.json"}

	config, err := manager.Load()
	if err != nil {
		t.Errorf("Load should not return error for non-existent file, got: %v", err)
	}
	if config == nil {
		t.Fatal("Load should return default config for non-existent file")
	}
	if config.Window.Width != 800 {
		t.Errorf("Should return default config with width 800, got %d", config.Window.Width)
	}
}

func TestManagerLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configPath, []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	manager := &Manager{configPath: configPath}
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("Load should tolerate a malformed file, got error: %v", err)
	}
	if config.Window.Width != 800 {
		t.Errorf("Expected defaults on malformed file, got width %d", config.Window.Width)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.json")

	manager := &Manager{configPath: configPath}

	testConfig := getDefaultConfig()
	testConfig.Window = WindowConfig{Width: 1200, Height: 800}
	testConfig.Theme = ThemeConfig{Dark: false, FontSize: 18}
	testConfig.UI.ShowHiddenFiles = true
	testConfig.AddFavorite("Home", "/home/user")

	if err := manager.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}
	// no stray temp file should survive a successful save
	entries, _ := os.ReadDir(tempDir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".config-") {
			t.Errorf("Expected temp file to be renamed away, found %s", e.Name())
		}
	}

	loadedConfig, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loadedConfig.Window.Width != 1200 {
		t.Errorf("Expected loaded width 1200, got %d", loadedConfig.Window.Width)
	}
	if len(loadedConfig.Favorites) != 1 || loadedConfig.Favorites[0].Path != "/home/user" {
		t.Errorf("Expected loaded favorite /home/user, got %v", loadedConfig.Favorites)
	}
}

func TestFavoritesAddRemoveRename(t *testing.T) {
	c := getDefaultConfig()
	id := c.AddFavorite("Docs", "/docs")
	if len(c.Favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(c.Favorites))
	}

	if err := c.RenameFavorite(id, "Documents"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if c.Favorites[0].Name != "Documents" {
		t.Errorf("expected renamed favorite, got %q", c.Favorites[0].Name)
	}

	c.RemoveFavorite(id)
	if len(c.Favorites) != 0 {
		t.Errorf("expected favorite removed, got %d remaining", len(c.Favorites))
	}

	if err := c.RenameFavorite("missing", "x"); err == nil {
		t.Error("expected error renaming unknown favorite")
	}
}

func TestFavoritesReorderRejectsUnknownOrDuplicate(t *testing.T) {
	c := getDefaultConfig()
	a := c.AddFavorite("A", "/a")
	b := c.AddFavorite("B", "/b")

	if err := c.Reorder([]string{b, a}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	list := c.FavoriteList()
	if list[0].ID != b || list[1].ID != a {
		t.Errorf("expected B before A after reorder, got %v", list)
	}

	if err := c.Reorder([]string{a, a}); err == nil {
		t.Error("expected error on duplicate id in reorder")
	}
	if err := c.Reorder([]string{a, "unknown"}); err == nil {
		t.Error("expected error on unknown id in reorder")
	}
	if err := c.Reorder([]string{a}); err == nil {
		t.Error("expected error on reorder with wrong length")
	}
}

func TestQuickFilterHistoryRejectsInvalidGlob(t *testing.T) {
	c := getDefaultConfig()
	if err := c.RememberQuickFilter("[unterminated"); err == nil {
		t.Error("expected error for invalid glob pattern")
	}

	if err := c.RememberQuickFilter("*.go"); err != nil {
		t.Fatalf("expected valid glob to be accepted: %v", err)
	}
	if err := c.RememberQuickFilter("*.go"); err != nil {
		t.Fatalf("re-remembering an existing pattern should bump, not error: %v", err)
	}

	hist := c.QuickFilterHistory()
	if len(hist) != 1 || hist[0].UseCount != 2 {
		t.Errorf("expected one entry with use count 2, got %v", hist)
	}
}

func TestNavigationHistoryAddAndFilter(t *testing.T) {
	c := getDefaultConfig()
	c.AddToNavigationHistory("/a/b")
	c.AddToNavigationHistory("/a/c")
	c.AddToNavigationHistory("/a/b") // re-add moves to front, no duplicate

	if len(c.UI.NavigationHistory.Entries) != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", len(c.UI.NavigationHistory.Entries))
	}
	if c.UI.NavigationHistory.Entries[0] != "/a/b" {
		t.Errorf("expected most recently visited first, got %q", c.UI.NavigationHistory.Entries[0])
	}

	filtered := c.FilterNavigationHistory("c")
	if len(filtered) != 1 || filtered[0] != "/a/c" {
		t.Errorf("expected filter to match /a/c only, got %v", filtered)
	}
}

//go:build !windows

package fileinfo

import (
	"errors"
	"os/exec"
)

// OpenWithDefaultApp opens the given path with the system default application.
// On Unix-like systems, try xdg-open (with basic fallbacks if unavailable).
func OpenWithDefaultApp(p string) error {
	// Try common openers; xdg-open is the standard on most desktops.
	candidates := [][]string{
		{"xdg-open", p},
		{"gio", "open", p},
		{"gvfs-open", p},
		{"gnome-open", p},
		{"kde-open", p},
	}
	var lastErr error
	for _, args := range candidates {
		// Ensure the binary exists before trying
		if path, lookErr := exec.LookPath(args[0]); lookErr == nil {
			cmd := exec.Command(path, args[1:]...)
			if err := cmd.Start(); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no suitable opener found (xdg-open/gio/gnome-open)")
	}
	return lastErr
}

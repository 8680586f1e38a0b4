// Package fileinfo opens a path with its OS-associated default application:
// ShellExecuteW on Windows, the xdg-open family of openers elsewhere.
package fileinfo

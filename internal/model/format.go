package model

import "github.com/dustin/go-humanize"

// FormatSize renders a byte count in human-readable form, replacing the
// teacher's hand-rolled FormatFileSize with the pack's humanize library.
func FormatSize(size int64) string {
	return humanize.IBytes(uint64(size))
}

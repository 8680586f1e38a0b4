// Package copier implements the single-file copy primitive: byte-for-byte
// content, preserved timestamps/attributes, a cancellable
// progress callback, and guaranteed cleanup of a partial destination on
// cancel.
package copier

import "wfm/internal/apperrors"

// ProgressFunc reports bytes transferred so far against the known total
// (0 if unknown) and returns true to continue or false to cancel.
type ProgressFunc func(bytesTransferred, total int64) bool

// Outcome is the terminal result of one CopyFile call.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)

// CopyFile copies src to dst, invoking onProgress periodically. cancel, if
// non-nil, is polled between chunks; when either cancel fires or
// onProgress returns false, the partially-written destination is removed
// and OutcomeCancelled is returned with a nil error.
//
// Errors map to the closed set apperrors recognizes: SourceVanished,
// AccessDenied, DiskFull, PathTooLong, IoError — each carrying both paths.
func CopyFile(src, dst string, cancel <-chan struct{}, onProgress ProgressFunc) (Outcome, error) {
	return copyFileNative(src, dst, cancel, onProgress)
}

func mapCopyError(src, dst string, err error) error {
	if err == nil {
		return nil
	}
	kind := classifyCopyError(err)
	return apperrors.NewTwoPath(kind, "copy", src, dst, err)
}

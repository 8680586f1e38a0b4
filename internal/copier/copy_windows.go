//go:build windows
// +build windows

package copier

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"wfm/internal/apperrors"
	"wfm/internal/enum"
)

var (
	modKernel32      = syscall.NewLazyDLL("kernel32.dll")
	procCopyFileExW  = modKernel32.NewProc("CopyFileExW")
)

const (
	progressContinue = 0
	progressCancel   = 1
)

// copyFileNative copies via CopyFileExW, whose progress routine is invoked
// by the OS on a worker thread inside the kernel call; it reports
// {bytesTransferred, total} to onProgress and returns PROGRESS_CANCEL to
// abort mid-copy, at which point Windows itself deletes the partial
// destination.
func copyFileNative(src, dst string, cancel <-chan struct{}, onProgress ProgressFunc) (Outcome, error) {
	srcNative := enum.WithExtendedLengthPrefix(src)
	dstNative := enum.WithExtendedLengthPrefix(dst)

	srcPtr, err := windows.UTF16PtrFromString(srcNative)
	if err != nil {
		return OutcomeCancelled, mapCopyError(src, dst, err)
	}
	dstPtr, err := windows.UTF16PtrFromString(dstNative)
	if err != nil {
		return OutcomeCancelled, mapCopyError(src, dst, err)
	}

	cancelled := false
	callback := syscall.NewCallback(func(
		totalFileSize, totalBytesTransferred int64,
		streamSize, streamBytesTransferred int64,
		streamNumber uint32,
		callbackReason uint32,
		srcHandle, dstHandle uintptr,
		data uintptr,
	) uintptr {
		if isCancelled(cancel) {
			cancelled = true
			return progressCancel
		}
		if onProgress != nil && !onProgress(totalBytesTransferred, totalFileSize) {
			cancelled = true
			return progressCancel
		}
		return progressContinue
	})

	var cancelFlag int32
	ret, _, callErr := procCopyFileExW.Call(
		uintptr(unsafe.Pointer(srcPtr)),
		uintptr(unsafe.Pointer(dstPtr)),
		callback,
		0,
		uintptr(unsafe.Pointer(&cancelFlag)),
		0,
	)
	if ret == 0 {
		if cancelled {
			_ = windows.DeleteFile(dstPtr)
			return OutcomeCancelled, nil
		}
		return OutcomeCancelled, mapCopyError(src, dst, callErr)
	}
	return OutcomeCompleted, nil
}

func isCancelled(cancel <-chan struct{}) bool {
	if cancel == nil {
		return false
	}
	select {
	case <-cancel:
		return true
	default:
		return false
	}
}

func classifyCopyError(err error) apperrors.Kind {
	errno, ok := err.(syscall.Errno)
	if !ok {
		return apperrors.IoError
	}
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		return apperrors.SourceVanished
	case windows.ERROR_ACCESS_DENIED:
		return apperrors.AccessDenied
	case windows.ERROR_DISK_FULL:
		return apperrors.DiskFull
	case windows.ERROR_FILENAME_EXCED_RANGE:
		return apperrors.PathTooLong
	default:
		return apperrors.IoError
	}
}

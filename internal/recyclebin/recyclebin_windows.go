//go:build windows

package recyclebin

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// shFileOperationW is loaded via windows.NewLazySystemDLL, which resolves
// from System32 rather than the process's DLL search path; SHFileOperationW
// itself has no pre-built wrapper in golang.org/x/sys/windows.
var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperation = modShell32.NewProc("SHFileOperationW")
)

const (
	foDelete = 0x0003

	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofSilent         = 0x0004
	fofNoErrorUI      = 0x0400
)

type shFileOpStructW struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

// platformDelete sends paths to the recycle bin via SHFileOperationW(FO_DELETE,
// FOF_ALLOWUNDO), the same call the shell itself uses for a "Delete" menu
// action, silenced (no confirmation dialog, no progress UI — this package's
// caller owns user confirmation).
func platformDelete(paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	from, err := doubleNulTerminatedList(paths)
	if err != nil {
		return err
	}

	op := shFileOpStructW{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofSilent | fofNoErrorUI,
	}

	r, _, _ := procSHFileOperation.Call(uintptr(unsafe.Pointer(&op)))
	if r != 0 {
		return fmt.Errorf("recyclebin: SHFileOperationW failed with code 0x%x", r)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("recyclebin: delete operation was aborted")
	}
	return nil
}

// doubleNulTerminatedList encodes paths as the UTF-16, double-NUL
// terminated list SHFileOperationW's pFrom/pTo expect: each path is itself
// NUL-terminated, and the whole list ends with an extra NUL.
func doubleNulTerminatedList(paths []string) ([]uint16, error) {
	var out []uint16
	for _, p := range paths {
		u, err := syscall.UTF16FromString(p)
		if err != nil {
			return nil, err
		}
		out = append(out, u...) // already NUL-terminated per path
	}
	out = append(out, 0)
	return out, nil
}

//go:build windows

package clipboard

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Raw kernel32/user32 calls throughout: neither the clipboard API nor the
// legacy GlobalAlloc/Lock/Unlock/Free memory primitives it hands data
// through are exposed by golang.org/x/sys/windows, so this falls back to
// syscall.NewLazyDLL/NewProc for Win32 calls outside its coverage.
var (
	modKernel32 = syscall.NewLazyDLL("kernel32.dll")
	modUser32   = syscall.NewLazyDLL("user32.dll")

	procGlobalAlloc  = modKernel32.NewProc("GlobalAlloc")
	procGlobalLock   = modKernel32.NewProc("GlobalLock")
	procGlobalUnlock = modKernel32.NewProc("GlobalUnlock")
	procGlobalFree   = modKernel32.NewProc("GlobalFree")

	procOpenClipboard            = modUser32.NewProc("OpenClipboard")
	procCloseClipboard           = modUser32.NewProc("CloseClipboard")
	procEmptyClipboard           = modUser32.NewProc("EmptyClipboard")
	procSetClipboardData         = modUser32.NewProc("SetClipboardData")
	procGetClipboardData         = modUser32.NewProc("GetClipboardData")
	procIsClipboardFormatAvail   = modUser32.NewProc("IsClipboardFormatAvailable")
	procRegisterClipboardFormatW = modUser32.NewProc("RegisterClipboardFormatW")
)

const (
	cfHDROP = 15

	gmemMoveable = 0x0002
	gmemZeroinit = 0x0040

	dropEffectCopy = 1
	dropEffectMove = 2
)

// dropfiles mirrors the Win32 DROPFILES header that precedes a
// double-null-terminated UTF-16 path list in a CF_HDROP global.
type dropfiles struct {
	pFiles uint32
	ptX    int32
	ptY    int32
	fNC    int32
	fWide  int32
}

func globalAlloc(flags uint32, size uintptr) (uintptr, error) {
	h, _, err := procGlobalAlloc.Call(uintptr(flags), size)
	if h == 0 {
		return 0, fmt.Errorf("clipboard: GlobalAlloc: %w", err)
	}
	return h, nil
}

func globalLock(h uintptr) (uintptr, error) {
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		return 0, fmt.Errorf("clipboard: GlobalLock: %w", err)
	}
	return p, nil
}

func globalUnlock(h uintptr) { procGlobalUnlock.Call(h) }
func globalFree(h uintptr)   { procGlobalFree.Call(h) }

func preferredDropEffectFormat() (uintptr, error) {
	name, err := syscall.UTF16PtrFromString("Preferred DropEffect")
	if err != nil {
		return 0, err
	}
	r, _, err := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return 0, fmt.Errorf("clipboard: RegisterClipboardFormatW: %w", err)
	}
	return r, nil
}

func platformWrite(paths []string, effect Effect) error {
	if len(paths) == 0 {
		return fmt.Errorf("clipboard: no paths to write")
	}

	hdrop, err := encodeHDrop(paths)
	if err != nil {
		return err
	}
	dropFmt, err := preferredDropEffectFormat()
	if err != nil {
		globalFree(hdrop)
		return err
	}
	dwEffect := uint32(dropEffectCopy)
	if effect == EffectCut {
		dwEffect = dropEffectMove
	}
	effectVal, err := encodeDWord(dwEffect)
	if err != nil {
		globalFree(hdrop)
		return err
	}

	if r, _, _ := procOpenClipboard.Call(0); r == 0 {
		globalFree(hdrop)
		globalFree(effectVal)
		return fmt.Errorf("clipboard: OpenClipboard failed")
	}
	defer procCloseClipboard.Call()

	procEmptyClipboard.Call()
	if r, _, _ := procSetClipboardData.Call(cfHDROP, hdrop); r == 0 {
		return fmt.Errorf("clipboard: SetClipboardData(CF_HDROP) failed")
	}
	if r, _, _ := procSetClipboardData.Call(dropFmt, effectVal); r == 0 {
		return fmt.Errorf("clipboard: SetClipboardData(Preferred DropEffect) failed")
	}
	return nil
}

func platformRead() (Content, error) {
	if r, _, _ := procIsClipboardFormatAvail.Call(cfHDROP); r == 0 {
		return Content{}, ErrEmpty
	}
	if r, _, _ := procOpenClipboard.Call(0); r == 0 {
		return Content{}, fmt.Errorf("clipboard: OpenClipboard failed")
	}
	defer procCloseClipboard.Call()

	hdrop, _, _ := procGetClipboardData.Call(cfHDROP)
	if hdrop == 0 {
		return Content{}, ErrEmpty
	}
	paths, err := decodeHDrop(hdrop)
	if err != nil {
		return Content{}, err
	}

	effect := EffectCopy
	if dropFmt, err := preferredDropEffectFormat(); err == nil {
		if r, _, _ := procIsClipboardFormatAvail.Call(dropFmt); r != 0 {
			if h, _, _ := procGetClipboardData.Call(dropFmt); h != 0 {
				if dwEffect, err := readDWord(h); err == nil && dwEffect == dropEffectMove {
					effect = EffectCut
				}
			}
		}
	}

	return Content{Paths: paths, Effect: effect}, nil
}

// encodeHDrop allocates a movable global memory block holding a DROPFILES
// header followed by paths as a double-null-terminated UTF-16 list, ready
// to hand to SetClipboardData(CF_HDROP, ...).
func encodeHDrop(paths []string) (uintptr, error) {
	var body []uint16
	for _, p := range paths {
		u, err := syscall.UTF16FromString(p)
		if err != nil {
			return 0, err
		}
		body = append(body, u...) // includes the trailing NUL from UTF16FromString
	}
	body = append(body, 0) // second NUL terminates the whole list

	headerSize := uint32(unsafe.Sizeof(dropfiles{}))
	totalBytes := uintptr(headerSize) + uintptr(len(body))*2

	handle, err := globalAlloc(gmemMoveable|gmemZeroinit, totalBytes)
	if err != nil {
		return 0, err
	}
	ptr, err := globalLock(handle)
	if err != nil {
		globalFree(handle)
		return 0, err
	}
	defer globalUnlock(handle)

	hdr := (*dropfiles)(unsafe.Pointer(ptr))
	hdr.pFiles = headerSize
	hdr.fWide = 1

	dst := unsafe.Slice((*uint16)(unsafe.Pointer(ptr+uintptr(headerSize))), len(body))
	copy(dst, body)

	return handle, nil
}

// decodeHDrop reads a CF_HDROP global back into a path list.
func decodeHDrop(hdrop uintptr) ([]string, error) {
	ptr, err := globalLock(hdrop)
	if err != nil {
		return nil, err
	}
	defer globalUnlock(hdrop)

	hdr := (*dropfiles)(unsafe.Pointer(ptr))
	base := ptr + uintptr(hdr.pFiles)

	var paths []string
	// Walk the double-null-terminated UTF-16 list: each entry is itself
	// NUL-terminated, and an empty entry marks the end.
	for offset := uintptr(0); ; {
		start := base + offset
		length := 0
		for {
			ch := *(*uint16)(unsafe.Pointer(start + uintptr(length)*2))
			if ch == 0 {
				break
			}
			length++
		}
		if length == 0 {
			break
		}
		slice := unsafe.Slice((*uint16)(unsafe.Pointer(start)), length)
		paths = append(paths, syscall.UTF16ToString(slice))
		offset += uintptr(length+1) * 2
	}
	return paths, nil
}

func encodeDWord(v uint32) (uintptr, error) {
	handle, err := globalAlloc(gmemMoveable, unsafe.Sizeof(v))
	if err != nil {
		return 0, err
	}
	ptr, err := globalLock(handle)
	if err != nil {
		globalFree(handle)
		return 0, err
	}
	defer globalUnlock(handle)
	*(*uint32)(unsafe.Pointer(ptr)) = v
	return handle, nil
}

func readDWord(h uintptr) (uint32, error) {
	ptr, err := globalLock(h)
	if err != nil {
		return 0, err
	}
	defer globalUnlock(h)
	return *(*uint32)(unsafe.Pointer(ptr)), nil
}

//go:build windows

package enum

import (
	"os"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"wfm/internal/model"
)

// statChild classifies one directory child using the Win32 attribute bits
// already present on the os.DirEntry's underlying syscall.Win32FileAttributeData,
// falling back to a fresh GetFileAttributesEx when the entry doesn't carry one.
// Reparse points are detected from the attribute bits before any attempt to
// open or follow the link.
func statChild(path string, de os.DirEntry) (model.EntryMeta, bool) {
	info, err := de.Info()
	if err != nil {
		// A child that vanished or became unreadable between ReadDir and
		// Info() is dropped from the listing rather than failing it.
		return model.EntryMeta{}, false
	}

	sys, _ := info.Sys().(*syscall.Win32FileAttributeData)
	var attrs uint32
	if sys != nil {
		attrs = sys.FileAttributes
	} else {
		attrs, _ = getFileAttributes(path)
	}

	kind := classifyKind(attrs, de.IsDir())
	size := info.Size()
	if kind == model.KindDirectory || kind == model.KindJunction {
		size = 0
	}

	meta := model.NewEntryMeta(de.Name(), path, kind, size)
	meta.Attributes = model.Attributes{
		Hidden:   attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0,
		System:   attrs&windows.FILE_ATTRIBUTE_SYSTEM != 0,
		ReadOnly: attrs&windows.FILE_ATTRIBUTE_READONLY != 0,
		Archive:  attrs&windows.FILE_ATTRIBUTE_ARCHIVE != 0,
	}

	mt := info.ModTime()
	meta.Modified = &mt
	if sys != nil {
		if ct := filetimeToTime(sys.CreationTime); !ct.IsZero() {
			meta.Created = &ct
		}
		if at := filetimeToTime(sys.LastAccessTime); !at.IsZero() {
			meta.Accessed = &at
		}
	}

	if kind.IsReparsePoint() {
		target, err := readReparseTarget(path)
		if err != nil {
			meta.IsBrokenLink = true
		} else {
			meta.LinkTarget = target
			if _, statErr := os.Stat(target); statErr != nil {
				meta.IsBrokenLink = true
			}
		}
		if meta.IsBrokenLink {
			meta.Size = 0
		}
	}

	return meta, true
}

func classifyKind(attrs uint32, isDir bool) model.EntryKind {
	if attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		if isDir || attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
			return model.KindJunction
		}
		return model.KindSymlink
	}
	if isDir {
		return model.KindDirectory
	}
	return model.KindFile
}

func getFileAttributes(path string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(WithExtendedLengthPrefix(path))
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(p)
}

func filetimeToTime(ft syscall.Filetime) time.Time {
	if ft.HighDateTime == 0 && ft.LowDateTime == 0 {
		return time.Time{}
	}
	return time.Unix(0, ft.Nanoseconds())
}

// readReparseTarget issues a raw DeviceIoControl(FSCTL_GET_REPARSE_POINT) to
// pull the reparse buffer, since golang.org/x/sys/windows does not expose a
// parsed reparse-point reader. Falls back to syscall.NewLazyDLL/NewProc for
// the Win32 surface area x/sys/windows doesn't cover.
func readReparseTarget(path string) (string, error) {
	native := WithExtendedLengthPrefix(path)
	p, err := windows.UTF16PtrFromString(native)
	if err != nil {
		return "", err
	}

	h, err := windows.CreateFile(p,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	buf := make([]byte, windows.MAXIMUM_REPARSE_DATA_BUFFER_SIZE)
	var bytesReturned uint32
	err = windows.DeviceIoControl(h, windows.FSCTL_GET_REPARSE_POINT, nil, 0,
		&buf[0], uint32(len(buf)), &bytesReturned, nil)
	if err != nil {
		return "", err
	}

	return parseReparseTarget(buf[:bytesReturned])
}

// reparseDataBuffer mirrors the fixed-size header of Win32's
// REPARSE_DATA_BUFFER for the two tag layouts the core cares about
// (symlink and mount point/junction); only the fields needed to extract the
// substitute name are modeled.
type reparseDataBuffer struct {
	ReparseTag           uint32
	ReparseDataLength    uint16
	Reserved             uint16
	SubstituteNameOffset uint16
	SubstituteNameLength uint16
	PrintNameOffset      uint16
	PrintNameLength      uint16
}

const (
	reparseTagMountPoint = 0xA0000003
	reparseTagSymlink    = 0xA000000C
)

func parseReparseTarget(buf []byte) (string, error) {
	if len(buf) < 8 {
		return "", errReparseTooShort
	}
	hdr := (*reparseDataBuffer)(unsafe.Pointer(&buf[0]))

	var pathBufferOffset int
	switch hdr.ReparseTag {
	case reparseTagSymlink:
		pathBufferOffset = 20 // header(8) + Flags(4) + two more uint16 pairs already counted above
	case reparseTagMountPoint:
		pathBufferOffset = 16
	default:
		return "", errUnsupportedReparseTag
	}

	start := pathBufferOffset + int(hdr.SubstituteNameOffset)
	end := start + int(hdr.SubstituteNameLength)
	if end > len(buf) || start < 0 || start > end {
		return "", errReparseTooShort
	}
	u16 := unsafe.Slice((*uint16)(unsafe.Pointer(&buf[start])), int(hdr.SubstituteNameLength)/2)
	name := windows.UTF16ToString(u16)
	// Mount points carry a \??\ NT-namespace prefix; strip it for a path
	// that os.Stat can consume.
	name = trimNTPrefix(name)
	return name, nil
}

func trimNTPrefix(s string) string {
	const ntPrefix = `\??\`
	if len(s) >= len(ntPrefix) && s[:len(ntPrefix)] == ntPrefix {
		return s[len(ntPrefix):]
	}
	return s
}

var (
	errReparseTooShort       = reparseErr("reparse buffer too short")
	errUnsupportedReparseTag = reparseErr("unsupported reparse tag")
)

type reparseErr string

func (e reparseErr) Error() string { return string(e) }

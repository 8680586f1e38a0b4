//go:build windows
// +build windows

package drives

import (
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// ListDrives enumerates the volumes visible to GetLogicalDrives and
// classifies each via GetDriveType, reading label/filesystem/free-space
// only for drives reporting ready.
func ListDrives() ([]Drive, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, err
	}

	var out []Drive
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		letter := string(rune('A' + i))
		root := letter + `:\`
		out = append(out, statDrive(root))
	}
	return out, nil
}

func statDrive(root string) Drive {
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return Drive{Path: root, DriveType: TypeUnknown}
	}

	dt := classifyDriveType(windows.GetDriveType(rootPtr))
	d := Drive{Path: root, DriveType: dt}

	var volNameBuf [windows.MAX_PATH + 1]uint16
	var fsNameBuf [windows.MAX_PATH + 1]uint16
	var serial, maxComponentLen, fsFlags uint32

	err = windows.GetVolumeInformation(
		rootPtr,
		&volNameBuf[0], uint32(len(volNameBuf)),
		&serial, &maxComponentLen, &fsFlags,
		&fsNameBuf[0], uint32(len(fsNameBuf)),
	)
	if err != nil {
		d.IsReady = false
		return d
	}
	d.IsReady = true
	d.Label = syscall.UTF16ToString(volNameBuf[:])
	d.FileSystem = syscall.UTF16ToString(fsNameBuf[:])

	var freeAvail, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(rootPtr, &freeAvail, &total, &totalFree); err == nil {
		d.TotalBytes = &total
		d.FreeBytes = &totalFree
	}
	return d
}

func classifyDriveType(dt uint32) Type {
	switch dt {
	case windows.DRIVE_REMOVABLE:
		return TypeRemovable
	case windows.DRIVE_FIXED:
		return TypeFixed
	case windows.DRIVE_REMOTE:
		return TypeNetwork
	case windows.DRIVE_CDROM:
		return TypeCDROM
	case windows.DRIVE_RAMDISK:
		return TypeRAMDisk
	default:
		return TypeUnknown
	}
}

// VolumeRoot returns the Windows volume identifier ("C:\" or
// "\\server\share\") that holds path, used by the planner to detect
// same-volume moves.
func VolumeRoot(path string) string {
	vol := filepath.VolumeName(path)
	if vol == "" {
		return ""
	}
	if strings.HasSuffix(vol, `\`) {
		return vol
	}
	return vol + `\`
}

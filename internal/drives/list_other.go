//go:build !windows
// +build !windows

package drives

import "syscall"

// ListDrives returns the single root mount "/" with best-effort free space
// from statfs. The real target is Windows-exclusive; this fallback only
// exists so the rest of the core can be built and tested off-Windows.
func ListDrives() ([]Drive, error) {
	d := Drive{Path: "/", DriveType: TypeFixed, IsReady: true}

	var stat syscall.Statfs_t
	if err := syscall.Statfs("/", &stat); err == nil {
		total := uint64(stat.Blocks) * uint64(stat.Bsize)
		free := uint64(stat.Bavail) * uint64(stat.Bsize)
		d.TotalBytes = &total
		d.FreeBytes = &free
	}
	return []Drive{d}, nil
}

// VolumeRoot returns "/" unconditionally: a single-mount fallback has
// exactly one volume.
func VolumeRoot(path string) string {
	return "/"
}

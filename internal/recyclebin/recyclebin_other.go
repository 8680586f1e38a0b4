//go:build !windows

package recyclebin

import "os"

// platformDelete has no shell recycle bin to call on this platform; it
// unlinks directly. The distinction between "recycle" and "permanent"
// delete is a Windows-shell concept this fallback cannot honor, so callers
// outside Windows should treat every delete as permanent.
func platformDelete(paths []string) error {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

//go:build !windows

package enum

import (
	"os"
	"strings"

	"wfm/internal/model"
)

// statChild is the portable fallback used off Windows: no reparse-point or
// Win32-attribute support, but the same shape lets the rest of the core —
// and its test suite — run on any GOOS. Symlinks are detected and resolved
// one hop; there is no junction concept outside Windows, so reparse
// classification never yields KindJunction here.
func statChild(path string, de os.DirEntry) (model.EntryMeta, bool) {
	lst, err := os.Lstat(path)
	if err != nil {
		return model.EntryMeta{}, false
	}

	kind := model.KindFile
	switch {
	case lst.Mode()&os.ModeSymlink != 0:
		kind = model.KindSymlink
	case lst.IsDir():
		kind = model.KindDirectory
	}

	size := lst.Size()
	if kind == model.KindDirectory {
		size = 0
	}

	meta := model.NewEntryMeta(de.Name(), path, kind, size)
	meta.Attributes.Hidden = strings.HasPrefix(de.Name(), ".")
	mt := lst.ModTime()
	meta.Modified = &mt

	if kind == model.KindSymlink {
		target, err := os.Readlink(path)
		if err != nil {
			meta.IsBrokenLink = true
			size = 0
		} else {
			meta.LinkTarget = target
			size = 0
			if _, statErr := os.Stat(path); statErr != nil {
				meta.IsBrokenLink = true
			}
		}
	}
	meta.Size = size

	return meta, true
}

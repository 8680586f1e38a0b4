// Package fsops implements the single-item filesystem commands exposed to
// callers alongside the enumerator and the Transfer Engine: rename, mkdir,
// delete (recycle-bin or permanent), open-with-default-app, and properties
// (immediate metadata, plus an asynchronous folder-size job for
// directories).
package fsops

import (
	"os"
	"path/filepath"

	"wfm/internal/apperrors"
	"wfm/internal/drives"
	"wfm/internal/enum"
	"wfm/internal/fileinfo"
	"wfm/internal/jobs"
	"wfm/internal/model"
	"wfm/internal/recyclebin"
)

// Rename moves from to to within the same parent directory (or across
// parents — the syscall allows it), failing with AlreadyExists if to is
// already occupied so a caller never silently clobbers a sibling.
func Rename(from, to string) error {
	from = filepath.Clean(from)
	to = filepath.Clean(to)

	if _, err := os.Lstat(to); err == nil {
		return apperrors.NewTwoPath(apperrors.AlreadyExists, "rename", from, to, nil)
	}

	if err := os.Rename(from, to); err != nil {
		return mapRenameError(from, to, err)
	}
	return nil
}

func mapRenameError(from, to string, err error) error {
	switch {
	case os.IsNotExist(err):
		return apperrors.NewTwoPath(apperrors.PathNotFound, "rename", from, to, err)
	case os.IsPermission(err):
		return apperrors.NewTwoPath(apperrors.AccessDenied, "rename", from, to, err)
	default:
		return apperrors.NewTwoPath(apperrors.IoError, "rename", from, to, err)
	}
}

// Mkdir creates path along with any missing parent directories. Creating a
// directory that already exists is not an error, matching os.MkdirAll.
func Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		if os.IsPermission(err) {
			return apperrors.New(apperrors.AccessDenied, "mkdir", path, err)
		}
		return apperrors.New(apperrors.IoError, "mkdir", path, err)
	}
	return nil
}

// Delete removes paths. By default they go to the recycle bin; permanent
// bypasses it and removes them outright.
func Delete(paths []string, permanent bool) error {
	if permanent {
		for _, p := range paths {
			if err := os.RemoveAll(p); err != nil {
				return apperrors.New(apperrors.IoError, "delete", p, err)
			}
		}
		return nil
	}
	if err := recyclebin.Delete(paths); err != nil {
		return apperrors.New(apperrors.IoError, "delete", pathsLabel(paths), err)
	}
	return nil
}

func pathsLabel(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	return filepath.Join(paths[0], "...")
}

// Properties is the full metadata returned for a single path: its own
// EntryMeta plus, for a directory, the Job driving an asynchronous
// recursive size computation. FolderStats and FolderStatsJob are both nil
// for a file — its size is already exact in Meta.
type Properties struct {
	Meta           model.EntryMeta
	FolderStatsJob *jobs.Job
	FolderStats    *drives.StatsResult
}

// Stat returns the EntryMeta for exactly one path, the way an enum.List
// entry would describe it from its parent directory's listing.
func Stat(path string) (model.EntryMeta, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.EntryMeta{}, apperrors.New(apperrors.InvalidArgument, "properties", path, err)
	}
	abs = filepath.Clean(abs)

	parent := filepath.Dir(abs)
	listing, err := enum.List(parent, model.SortSpec{}, model.FilterSpec{ShowHidden: true, ShowSystem: true})
	if err != nil {
		return model.EntryMeta{}, err
	}

	name := filepath.Base(abs)
	for _, e := range listing.Entries {
		if e.Name == name {
			return e, nil
		}
	}
	return model.EntryMeta{}, apperrors.New(apperrors.PathNotFound, "properties", abs, nil)
}

// Get computes Properties for path. For a directory it also enqueues a
// folder-stats job on mgr so folder sizes are computed asynchronously
// rather than blocking the caller on a potentially large tree walk.
func Get(mgr *jobs.Manager, path string) (Properties, error) {
	meta, err := Stat(path)
	if err != nil {
		return Properties{}, err
	}

	props := Properties{Meta: meta}
	if meta.Kind == model.KindDirectory {
		job, result := drives.FolderStats(mgr, meta.Path)
		props.FolderStatsJob = job
		props.FolderStats = result
	}
	return props, nil
}

// OpenDefault opens path with the OS-associated application.
func OpenDefault(path string) error {
	if err := fileinfo.OpenWithDefaultApp(path); err != nil {
		return apperrors.New(apperrors.IoError, "open_default", path, err)
	}
	return nil
}

// Package enum implements directory enumeration and per-child metadata
// classification: one stat per child, reparse points detected before being
// followed, long paths prefixed before any native call.
package enum

import (
	"os"
	"path/filepath"

	"wfm/internal/apperrors"
	"wfm/internal/model"
)

// List reads path's children, classifies each into an EntryMeta, and returns
// the FilterSpec-passing subset ordered by SortSpec. A failure to open the
// directory itself fails the whole listing; a failure to stat one child does
// not — that child is simply omitted, the same way a watch loop skips
// entries whose Info() call errors rather than aborting the scan.
func List(path string, sort_ model.SortSpec, filter model.FilterSpec) (model.DirListing, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return model.DirListing{}, err
	}

	native := WithExtendedLengthPrefix(canonical)
	dirEntries, err := os.ReadDir(native)
	if err != nil {
		return model.DirListing{}, mapOpenDirError(canonical, err)
	}

	metas := make([]model.EntryMeta, 0, len(dirEntries))
	for _, de := range dirEntries {
		childPath := filepath.Join(canonical, de.Name())
		meta, ok := statChild(childPath, de)
		if !ok {
			continue
		}
		metas = append(metas, meta)
	}

	ordered := model.ApplySortAndFilter(metas, sort_, filter)
	return model.NewDirListing(canonical, ordered), nil
}

// canonicalize resolves path to its absolute, clean form. It does not
// resolve symlinks in the path itself — the listing it's about to produce is
// what tells the caller which children are links.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.New(apperrors.InvalidArgument, "list", path, err)
	}
	return filepath.Clean(abs), nil
}

func mapOpenDirError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return apperrors.New(apperrors.PathNotFound, "list", path, err)
	case os.IsPermission(err):
		return apperrors.New(apperrors.AccessDenied, "list", path, err)
	default:
		if pe, ok := err.(*os.PathError); ok {
			if pe.Err.Error() == "not a directory" {
				return apperrors.New(apperrors.NotADirectory, "list", path, err)
			}
		}
		return apperrors.New(apperrors.IoError, "list", path, err)
	}
}

// Package planner builds an ordered TransferPlan from a source tree: a
// depth-first walk where every directory precedes every file it contains,
// annotated with same-volume detection so the executor can choose rename
// vs copy+delete per item.
package planner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"wfm/internal/drives"
)

// ErrRecursiveCopy is returned when destination is inside (or equal to) a
// source directory: copying a tree into itself would recurse forever.
var ErrRecursiveCopy = errors.New("planner: destination is inside source")

// Kind distinguishes a directory-creation step from a file transfer step.
type Kind string

const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
)

// Item is one step of a TransferPlan.
type Item struct {
	Kind          Kind
	Source        string
	Dest          string
	Size          int64 // 0 for directories
	CanAtomicMove bool  // same-volume, eligible for rename instead of copy+delete
}

// TransferPlan is the ordered, fully-resolved list of steps an executor
// replays verbatim.
type TransferPlan struct {
	Items       []Item
	TotalBytes  int64 // -1 when Estimate is false
	TotalItems  int   // -1 when Estimate is false
}

// Options controls planning behavior.
type Options struct {
	// Estimate controls whether totals are computed; when false, totals are
	// reported unknown (-1) and the caller should show indeterminate
	// progress rather than pay the cost of a full pre-walk.
	Estimate bool
}

// Build walks sources depth-first and produces a TransferPlan placing each
// source under destDir, preserving each source's base name. Every directory
// item precedes the file items it contains.
func Build(sources []string, destDir string, opts Options) (TransferPlan, error) {
	plan := TransferPlan{TotalBytes: -1, TotalItems: -1}
	if opts.Estimate {
		plan.TotalBytes = 0
		plan.TotalItems = 0
	}

	for _, src := range sources {
		src = filepath.Clean(src)
		dst := filepath.Join(destDir, filepath.Base(src))

		if err := checkNotRecursive(src, dst); err != nil {
			return TransferPlan{}, err
		}

		if err := walk(src, dst, opts, &plan); err != nil {
			return TransferPlan{}, err
		}
	}
	return plan, nil
}

func walk(src, dst string, opts Options, plan *TransferPlan) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	sameVolume := drives.VolumeRoot(src) == drives.VolumeRoot(dst)

	if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		plan.Items = append(plan.Items, Item{Kind: KindDir, Source: src, Dest: dst, CanAtomicMove: sameVolume})
		if opts.Estimate {
			plan.TotalItems++
		}

		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		// os.ReadDir returns entries in name order; reorder so every
		// directory in this parent precedes every file, matching the plan's
		// directories-before-files invariant one level at a time.
		var dirs, files []os.DirEntry
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, e)
			} else {
				files = append(files, e)
			}
		}
		ordered := append(dirs, files...)
		for _, e := range ordered {
			childSrc := filepath.Join(src, e.Name())
			childDst := filepath.Join(dst, e.Name())
			if err := walk(childSrc, childDst, opts, plan); err != nil {
				return err
			}
		}
		return nil
	}

	// Regular files, and symlinks/reparse points: treated as a single file
	// unit, never followed — links are entries, not traversed.
	plan.Items = append(plan.Items, Item{
		Kind:          KindFile,
		Source:        src,
		Dest:          dst,
		Size:          info.Size(),
		CanAtomicMove: sameVolume,
	})
	if opts.Estimate {
		plan.TotalItems++
		plan.TotalBytes += info.Size()
	}
	return nil
}

// checkNotRecursive rejects a plan where dst is src itself or a descendant
// of src, which would otherwise recurse without bound.
func checkNotRecursive(src, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)
	if src == dst {
		return ErrRecursiveCopy
	}
	rel, err := filepath.Rel(src, dst)
	if err != nil {
		return nil
	}
	if rel == "." || (!strings.HasPrefix(rel, "..") && rel != "") {
		return ErrRecursiveCopy
	}
	return nil
}

// Package model holds the platform-agnostic domain kernel: entries, sort and
// filter specs, and the comparators that give directory listings a total,
// deterministic order. No I/O happens here.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// EntryKind classifies a directory child. Symlinks and junctions are both
// reparse points, but traversal semantics differ, so the distinction is
// preserved rather than collapsed.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindSymlink
	KindJunction
)

func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindJunction:
		return "junction"
	default:
		return "file"
	}
}

// IsReparsePoint reports whether the kind is resolved through a reparse
// handler rather than opened directly.
func (k EntryKind) IsReparsePoint() bool {
	return k == KindSymlink || k == KindJunction
}

// Attributes holds the Windows file attribute flags the core cares about.
type Attributes struct {
	Hidden   bool
	System   bool
	ReadOnly bool
	Archive  bool
}

// EntryMeta is an immutable snapshot of one filesystem child, produced fresh
// on every enumeration — nothing here is cached across queries.
type EntryMeta struct {
	Name         string // basename
	Path         string // absolute, canonical form; never carries the extended-length prefix, which is added only to the argument of native calls
	Kind         EntryKind
	Size         int64 // bytes; 0 for directories and broken links
	Created      *time.Time
	Modified     *time.Time
	Accessed     *time.Time
	Attributes   Attributes
	LinkTarget   string // resolved target, present iff Kind is a reparse point
	IsBrokenLink bool
	Extension    string // lowercase, empty when none
}

// extensionOf returns the lowercase extension (without the dot) of name, or
// "" when there is none — dotfiles with no further dot have no extension.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// NewEntryMeta builds an EntryMeta from the basics every provider can supply,
// filling in Extension consistently.
func NewEntryMeta(name, path string, kind EntryKind, size int64) EntryMeta {
	return EntryMeta{
		Name:      name,
		Path:      path,
		Kind:      kind,
		Size:      size,
		Extension: extensionOf(name),
	}
}

// DirListing is the result of applying a FilterSpec-passing subset of a
// directory's children through a SortSpec. Ordering is total and
// deterministic: same input + same SortSpec always yields the same order.
type DirListing struct {
	Path      string
	Entries   []EntryMeta
	FileCount int
	DirCount  int
	TotalSize int64
}

// NewDirListing builds a DirListing from a set of already filtered+sorted
// entries, computing the summary fields.
func NewDirListing(path string, entries []EntryMeta) DirListing {
	l := DirListing{Path: path, Entries: entries}
	for _, e := range entries {
		switch e.Kind {
		case KindDirectory, KindJunction:
			l.DirCount++
		default:
			l.FileCount++
		}
		l.TotalSize += e.Size
	}
	return l
}

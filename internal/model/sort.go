package model

import (
	"time"

	"golang.org/x/text/cases"
)

// SortField selects which attribute a SortSpec orders by before the fixed
// tie-break sequence kicks in.
type SortField int

const (
	SortByName SortField = iota
	SortBySize
	SortByModified
	SortByCreated
	SortByExtension
	SortByKind
)

// SortOrder is ascending or descending for the primary SortField only; the
// tie-break chain (name, then path) is always ascending.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// SortSpec describes a total order over a DirListing. The same input and
// SortSpec always produce a bit-identical ordering.
type SortSpec struct {
	Field            SortField
	Order            SortOrder
	DirectoriesFirst bool
}

// Ordering mirrors the three-way comparison result of Compare().
type Ordering int

const (
	Less Ordering = -1
	Equal Ordering = 0
	Greater Ordering = 1
)

// caseFolder performs invariant-culture-equivalent casefolding for name
// comparisons: a fixed, locale-independent fold rather than OS collation.
var caseFolder = cases.Fold()

func foldName(s string) string {
	return caseFolder.String(s)
}

// directoryBucket returns 0 for entries that should sort before files when
// DirectoriesFirst is set, 1 otherwise. Junctions count as directories.
func directoryBucket(k EntryKind) int {
	if k == KindDirectory || k == KindJunction {
		return 0
	}
	return 1
}

// Compare implements a fixed tie-break sequence: (directories_first bucket)
// -> chosen field -> name ascending (casefolded) -> path (byte order).
func Compare(a, b EntryMeta, spec SortSpec) Ordering {
	if spec.DirectoriesFirst {
		ba, bb := directoryBucket(a.Kind), directoryBucket(b.Kind)
		if ba != bb {
			return orderOf(ba < bb)
		}
	}

	if o := compareField(a, b, spec.Field); o != Equal {
		if spec.Order == Descending {
			return -o
		}
		return o
	}

	if o := compareStrings(foldName(a.Name), foldName(b.Name)); o != Equal {
		return o
	}
	return compareStrings(a.Path, b.Path)
}

func compareField(a, b EntryMeta, field SortField) Ordering {
	switch field {
	case SortBySize:
		return compareInt64(a.Size, b.Size)
	case SortByModified:
		return compareTimePtr(a.Modified, b.Modified)
	case SortByCreated:
		return compareTimePtr(a.Created, b.Created)
	case SortByExtension:
		return compareStrings(a.Extension, b.Extension)
	case SortByKind:
		return compareInt(int(a.Kind), int(b.Kind))
	default: // SortByName
		return compareStrings(foldName(a.Name), foldName(b.Name))
	}
}

// compareTimePtr treats a nil timestamp as earlier than any non-nil one, so
// entries with unavailable timestamps sort first within their bucket rather
// than panicking or comparing against a zero value that could collide with a
// real timestamp.
func compareTimePtr(a, b *time.Time) Ordering {
	switch {
	case a == nil && b == nil:
		return Equal
	case a == nil:
		return Less
	case b == nil:
		return Greater
	case a.Before(*b):
		return Less
	case a.After(*b):
		return Greater
	default:
		return Equal
	}
}

func compareInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareInt(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareStrings(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func orderOf(lessThan bool) Ordering {
	if lessThan {
		return Less
	}
	return Greater
}

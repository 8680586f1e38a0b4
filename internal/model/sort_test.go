package model

import (
	"testing"
	"time"
)

func mkEntry(name string, kind EntryKind, size int64) EntryMeta {
	return NewEntryMeta(name, "/root/"+name, kind, size)
}

func TestCompareDirectoriesFirst(t *testing.T) {
	spec := SortSpec{Field: SortByName, Order: Ascending, DirectoriesFirst: true}
	dir := mkEntry("b_dir", KindDirectory, 0)
	file := mkEntry("a_file", KindFile, 10)

	if got := Compare(dir, file, spec); got != Less {
		t.Errorf("expected directory to sort before file regardless of name, got %v", got)
	}
}

func TestCompareNameCasefold(t *testing.T) {
	spec := SortSpec{Field: SortByName, Order: Ascending}
	lower := mkEntry("alpha.txt", KindFile, 1)
	upper := mkEntry("Alpha.txt", KindFile, 1)

	if got := Compare(lower, upper, spec); got == Equal {
		t.Fatalf("casefold-equal names should still tie-break by path, got Equal")
	}
}

func TestCompareDeterministicTieBreak(t *testing.T) {
	spec := SortSpec{Field: SortBySize, Order: Ascending}
	a := mkEntry("same.txt", KindFile, 5)
	b := mkEntry("same.txt", KindFile, 5)
	b.Path = "/root/other/same.txt"

	if got := Compare(a, b, spec); got != Less {
		t.Errorf("expected deterministic path tie-break, got %v", got)
	}
}

func TestCompareModifiedNilFirst(t *testing.T) {
	spec := SortSpec{Field: SortByModified, Order: Ascending}
	now := time.Now()
	withTime := mkEntry("b.txt", KindFile, 1)
	withTime.Modified = &now
	withoutTime := mkEntry("a.txt", KindFile, 1)

	if got := Compare(withoutTime, withTime, spec); got != Less {
		t.Errorf("expected nil modified time to sort first, got %v", got)
	}
}

func TestApplySortAndFilterOrderingIsTotal(t *testing.T) {
	entries := []EntryMeta{
		mkEntry("zeta.txt", KindFile, 3),
		mkEntry("Alpha", KindDirectory, 0),
		mkEntry("beta.txt", KindFile, 1),
	}
	spec := SortSpec{Field: SortByName, Order: Ascending, DirectoriesFirst: true}
	out := ApplySortAndFilter(entries, spec, FilterSpec{ShowHidden: true, ShowSystem: true})

	if len(out) != 3 {
		t.Fatalf("expected all 3 entries to pass an empty filter, got %d", len(out))
	}
	for i := 0; i+1 < len(out); i++ {
		if Compare(out[i], out[i+1], spec) == Greater {
			t.Errorf("listing not in order at index %d: %q before %q", i, out[i].Name, out[i+1].Name)
		}
	}
	if out[0].Name != "Alpha" {
		t.Errorf("expected directory first, got %q", out[0].Name)
	}
}

package model

import "testing"

func TestPassesExtensionSet(t *testing.T) {
	e := mkEntry("report.PDF", KindFile, 100)
	f := FilterSpec{Extensions: map[string]struct{}{"pdf": {}}, ShowHidden: true, ShowSystem: true}
	if !Passes(e, f) {
		t.Errorf("expected %q to pass pdf extension filter", e.Name)
	}
	f.Extensions = map[string]struct{}{"txt": {}}
	if Passes(e, f) {
		t.Errorf("expected %q to fail txt-only extension filter", e.Name)
	}
}

func TestPassesHiddenSystem(t *testing.T) {
	e := mkEntry(".secrets", KindFile, 0)
	e.Attributes.Hidden = true
	f := FilterSpec{ShowHidden: false, ShowSystem: true}
	if Passes(e, f) {
		t.Errorf("expected hidden entry to be filtered out when ShowHidden is false")
	}
	f.ShowHidden = true
	if !Passes(e, f) {
		t.Errorf("expected hidden entry to pass when ShowHidden is true")
	}
}

func TestPassesSizeBounds(t *testing.T) {
	e := mkEntry("mid.bin", KindFile, 500)
	f := FilterSpec{ShowHidden: true, ShowSystem: true, MinSize: 100, MaxSize: 1000}
	if !Passes(e, f) {
		t.Errorf("expected entry within bounds to pass")
	}
	f.MinSize = 600
	if Passes(e, f) {
		t.Errorf("expected entry below MinSize to fail")
	}
}

func TestPassesPatternCaseInsensitive(t *testing.T) {
	e := mkEntry("MyReport.txt", KindFile, 10)
	f := FilterSpec{ShowHidden: true, ShowSystem: true, Pattern: "report"}
	if !Passes(e, f) {
		t.Errorf("expected case-insensitive substring match to pass")
	}
	f.Pattern = "nomatch"
	if Passes(e, f) {
		t.Errorf("expected non-matching pattern to fail")
	}
}

func TestEmptyDirectoryYieldsZeroCounts(t *testing.T) {
	listing := NewDirListing("/empty", nil)
	if listing.FileCount != 0 || listing.DirCount != 0 || listing.TotalSize != 0 {
		t.Errorf("expected zero counts for empty listing, got %+v", listing)
	}
}

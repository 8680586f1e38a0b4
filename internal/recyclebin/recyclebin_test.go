package recyclebin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteRemovesGivenPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "sub")
	if err := os.WriteFile(a, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(b, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := Delete([]string{a, b}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat err=%v", err)
	}
	if _, err := os.Stat(b); !os.IsNotExist(err) {
		t.Errorf("expected dir removed, stat err=%v", err)
	}
}

func TestDeleteOnEmptyListIsNoop(t *testing.T) {
	if err := Delete(nil); err != nil {
		t.Errorf("expected no error deleting an empty list, got %v", err)
	}
}

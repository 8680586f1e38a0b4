package copier

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFilePreservesContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello, world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(src, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	outcome, err := CopyFile(src, dst, nil, nil)
	if err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	if outcome != OutcomeCompleted {
		t.Fatalf("expected OutcomeCompleted, got %v", outcome)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading dst: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q want %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(modTime) {
		t.Errorf("expected preserved mod time %v, got %v", modTime, info.ModTime())
	}
}

func TestCopyFileCancelRemovesPartialDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	// 5 MiB, several copy chunks' worth, so a cancel that were only checked
	// at the end would leave a partial destination behind.
	content := make([]byte, 5<<20)
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cancel := make(chan struct{})
	close(cancel) // already cancelled before the first chunk is read

	outcome, err := CopyFile(src, dst, cancel, nil)
	if err != nil {
		t.Fatalf("expected no error on cooperative cancel, got %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Fatalf("expected OutcomeCancelled, got %v", outcome)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("expected no destination file after cancel, stat err=%v", err)
	}
}

func TestCopyFileProgressCallbackCanCancelMidCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := make([]byte, 5<<20)
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	outcome, err := CopyFile(src, dst, nil, func(done, total int64) bool {
		calls++
		return calls < 2 // cancel after the first reported chunk
	})
	if err != nil {
		t.Fatalf("expected no error on progress-driven cancel, got %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Fatalf("expected OutcomeCancelled, got %v", outcome)
	}
}

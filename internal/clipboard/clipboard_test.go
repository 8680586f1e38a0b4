package clipboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wfm/internal/conflict"
	"wfm/internal/jobs"
)

func TestWriteThenReadRoundTripsPathsAndEffect(t *testing.T) {
	paths := []string{"C:\\a\\one.txt", "C:\\a\\two.txt"}
	if err := Write(paths, EffectCut); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Effect != EffectCut {
		t.Errorf("expected EffectCut, got %s", got.Effect)
	}
	if len(got.Paths) != len(paths) {
		t.Fatalf("expected %d paths, got %d", len(paths), len(got.Paths))
	}
	for i, p := range paths {
		if got.Paths[i] != p {
			t.Errorf("path %d: got %q want %q", i, got.Paths[i], p)
		}
	}
}

func TestWriteRejectsEmptyPathList(t *testing.T) {
	if err := Write(nil, EffectCopy); err == nil {
		t.Error("expected an error writing an empty path list")
	}
}

func TestPasteBuildsAndRunsACopyJob(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	destDir := filepath.Join(dir, "dest")
	must(t, os.WriteFile(src, []byte("hello"), 0o644))
	must(t, os.Mkdir(destDir, 0o755))

	must(t, Write([]string{src}, EffectCopy))

	mgr := jobs.NewManager()
	defer mgr.Close()

	job, result, err := Paste(mgr, destDir, conflict.PolicyOverwrite)
	must(t, err)
	waitTerminal(t, job)

	if job.State() != jobs.StateCompleted {
		t.Fatalf("expected completed, got %s", job.State())
	}
	if result.Get() == nil {
		t.Fatal("expected a report after completion")
	}
	if _, err := os.Stat(filepath.Join(destDir, "src.txt")); err != nil {
		t.Errorf("expected paste to copy the file: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("expected source to survive a copy-effect paste: %v", err)
	}
}

func TestPasteHonorsCutAsMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	destDir := filepath.Join(dir, "dest")
	must(t, os.WriteFile(src, []byte("hello"), 0o644))
	must(t, os.Mkdir(destDir, 0o755))

	must(t, Write([]string{src}, EffectCut))

	mgr := jobs.NewManager()
	defer mgr.Close()

	job, _, err := Paste(mgr, destDir, conflict.PolicyOverwrite)
	must(t, err)
	waitTerminal(t, job)

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("expected source removed after a cut-effect paste, stat err=%v", err)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func waitTerminal(t *testing.T, job *jobs.Job) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if job.State().Terminal() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state in time")
}

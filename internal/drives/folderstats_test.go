package drives

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wfm/internal/jobs"
)

func TestFolderStatsCountsFilesAndBytes(t *testing.T) {
	dir := t.TempDir()
	must(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	must(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	must(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("world!"), 0o644))

	mgr := jobs.NewManager()
	defer mgr.Close()

	job, result := FolderStats(mgr, dir)
	waitTerminal(t, job)

	stats := result.Get()
	if stats == nil {
		t.Fatal("expected stats to be populated after completion")
	}
	if stats.FileCount != 2 {
		t.Errorf("expected 2 files, got %d", stats.FileCount)
	}
	if stats.TotalBytes != int64(len("hello")+len("world!")) {
		t.Errorf("expected combined byte count, got %d", stats.TotalBytes)
	}
}

func TestFolderStatsCancellation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		must(t, os.WriteFile(filepath.Join(dir, "f"+itoaStats(i)), []byte("x"), 0o644))
	}

	mgr := jobs.NewManager()
	defer mgr.Close()

	job, _ := FolderStats(mgr, dir)
	job.Cancel()
	waitTerminal(t, job)

	if job.State() != jobs.StateCancelled {
		t.Errorf("expected cancelled state, got %s", job.State())
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

func itoaStats(i int) string {
	if i == 0 {
		return "0"
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	return string(b)
}

package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "pulls: 1\n")

	var changed []string
	w := NewFileWatcher([]string{a, b}, time.Second, func(p string) { changed = append(changed, p) })

	w.scanAll(true)
	if len(changed) != 0 {
		t.Fatalf("priming scan reported %v", changed)
	}
	w.scanAll(false)
	if len(changed) != 0 {
		t.Fatalf("unchanged files reported %v", changed)
	}

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(a, later, later); err != nil {
		t.Fatal(err)
	}
	w.scanAll(false)
	if len(changed) != 1 || changed[0] != a {
		t.Fatalf("changed = %v", changed)
	}

	writeFile(t, b, "pulls: 2\n")
	w.scanAll(false)
	if len(changed) != 2 || changed[1] != b {
		t.Fatalf("new file not reported: %v", changed)
	}
}

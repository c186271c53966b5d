package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		n, workers int
		want       int
	}{
		{10, 3, 3},
		{10, 1, 1},
		{10, 0, 1},
		{2, 8, 2},
		{0, 4, 0},
	}

	for _, tt := range tests {
		got := Chunks(tt.n, tt.workers)
		if len(got) != tt.want {
			t.Errorf("Chunks(%d,%d): expected %d ranges, got %v", tt.n, tt.workers, tt.want, got)
			continue
		}
		// Ranges must tile [0, n) in order
		next := 0
		for _, r := range got {
			if r[0] != next || r[1] <= r[0] {
				t.Errorf("Chunks(%d,%d): bad range %v", tt.n, tt.workers, r)
			}
			next = r[1]
		}
		if next != tt.n {
			t.Errorf("Chunks(%d,%d): covered up to %d", tt.n, tt.workers, next)
		}
	}
}

func TestFindLatestScan(t *testing.T) {
	dir := t.TempDir()

	files := []string{"a.pbm", "b.tiff", "c.pbm"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte("P4"), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}
	// Newer, but not a scan
	notes := filepath.Join(dir, "notes.txt")
	os.WriteFile(notes, []byte("x"), 0644)
	later := time.Now().Add(10 * time.Hour)
	os.Chtimes(notes, later, later)

	latest, err := FindLatestScan(dir)
	if err != nil {
		t.Fatalf("FindLatestScan failed: %v", err)
	}
	if latest != filepath.Join(dir, "c.pbm") {
		t.Errorf("Expected c.pbm, got %s", latest)
	}
}

func TestFindLatestScanEmpty(t *testing.T) {
	if _, err := FindLatestScan(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without scans")
	}
}

func TestPixelPool(t *testing.T) {
	pix := GetPixels(16)
	if len(*pix) != 16 {
		t.Fatalf("Expected 16 bytes, got %d", len(*pix))
	}
	(*pix)[3] = 1
	PutPixels(pix)

	again := GetPixels(16)
	for i, v := range *again {
		if v != 0 {
			t.Fatalf("Pooled buffer not cleared at %d", i)
		}
	}

	// A nil buffer and an unknown size are ignored
	PutPixels(nil)
	odd := make([]uint8, 3)
	PutPixels(&odd)
}

func TestPixelPoolPutDoesNotAllocate(t *testing.T) {
	pix := GetPixels(64)
	allocs := testing.AllocsPerRun(100, func() {
		PutPixels(pix)
		pix = GetPixels(64)
	})
	// The race detector makes sync.Pool drop some buffers, so allow a fraction
	if allocs >= 1 {
		t.Errorf("Expected Put/Get not to allocate, got %.2f allocations per cycle", allocs)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// ScanExtensions lists the raster formats a spread can be read from
var ScanExtensions = []string{".pbm", ".tif", ".tiff", ".bmp", ".png"}

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		log.Printf("[!] Не удалось определить число процессоров: %v", err)
		return runtime.NumCPU()
	}
	return n
}

// IsScan reports whether the file name has a supported raster extension
func IsScan(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ScanExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatestScan returns the most recently modified scan in dir
func FindLatestScan(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsScan(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено сканов (%s)", dir, strings.Join(ScanExtensions, ", "))
	}

	return latestFile, nil
}

// Chunks partitions [0, n) into at most workers contiguous ranges
func Chunks(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}
	var out [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

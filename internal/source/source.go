package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/pbm"
	"github.com/ivlev/bookseam/internal/system"
)

// Source provides the scanned spread
type Source interface {
	Name() string
	Load() (*bitmap.Bitmap, error)
}

// Sink stores a finished page
type Sink interface {
	Save(name string, b *bitmap.Bitmap) error
}

// FileSource reads a spread from disk, choosing the codec by extension
type FileSource struct {
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	if _, err := codecFor(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &FileSource{path: path}, nil
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Load() (*bitmap.Bitmap, error) {
	c, err := codecFor(s.path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := c.decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return b, nil
}

// FileSink writes pages into a directory. An empty Dir keeps the path
// given to Save unchanged.
type FileSink struct {
	Dir string
}

// Save writes b to name through a temporary file, so an interrupted run
// never leaves a truncated page behind.
func (s *FileSink) Save(name string, b *bitmap.Bitmap) error {
	path := name
	if s.Dir != "" {
		path = filepath.Join(s.Dir, filepath.Base(name))
	}
	c, err := codecFor(path)
	if err != nil {
		return err
	}

	return system.WriteAtomic(path, func(w io.Writer) error {
		if err := c.encode(w, b); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

// pbmCodec is the codec pair for P4 files
var pbmCodec = codec{decode: pbm.Decode, encode: pbm.Encode}

func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pbm":
		return pbmCodec, nil
	case ".tif", ".tiff":
		return tiffCodec, nil
	case ".bmp":
		return bmpCodec, nil
	case ".png":
		return pngCodec, nil
	}
	return codec{}, fmt.Errorf("неподдерживаемый формат %q: %s", ext, path)
}

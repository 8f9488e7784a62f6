package datasource

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/kokes/colexec/internal/errs"
)

// compressedFile wraps the on-disk file plus whatever decompressing reader
// sits in front of it (if any), grounded on the teacher's writeCompressed
// (database/loader.go), which recognizes the same two codecs on write.
type compressedFile struct {
	file   *os.File
	reader io.Reader
	closer io.Closer // non-nil only when the decompressor itself needs closing
}

func openCompressed(path string) (*compressedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Iof("opening %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errs.Iof("opening gzip stream %s: %w", path, err)
		}
		return &compressedFile{file: f, reader: gr, closer: gr}, nil
	case strings.HasSuffix(path, ".sz") || strings.HasSuffix(path, ".snappy"):
		return &compressedFile{file: f, reader: snappy.NewReader(f)}, nil
	default:
		return &compressedFile{file: f, reader: f}, nil
	}
}

func (c *compressedFile) Read(p []byte) (int, error) { return c.reader.Read(p) }

func (c *compressedFile) Name() string { return c.file.Name() }

func (c *compressedFile) Close() error {
	if c.closer != nil {
		c.closer.Close()
	}
	return c.file.Close()
}

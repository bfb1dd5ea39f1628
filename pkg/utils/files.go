package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/google/brotli/go/cbrotli"
)

// ErrEmptyArchive is returned by LoadFile when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// The compression is determined by the file extension: .gz, .br, .zip
// and .7z are decompressed, and for archives the first file is returned.
// Anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decodes data according to the file extension ext.
func Decompress(ext string, data []byte) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: gzip: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".br":
		out, err := cbrotli.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("utils: brotli: %w", err)
		}
		return out, nil
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: zip: %w", err)
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}
		return readArchived(r.File[0].Open)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: 7z: %w", err)
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}
		return readArchived(r.File[0].Open)
	default:
		return data, nil
	}
}

func readArchived(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

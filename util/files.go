// util/files.go
// Copyright(c) 2022-2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether the file contents b are zstd compressed.
func IsZstd(b []byte) bool {
	return bytes.HasPrefix(b, zstdMagic)
}

// LoadFile returns the contents of the given text file as UTF-8 without a
// byte order mark; if it's zstd compressed, it is decompressed
// transparently. Errors from opening the file are returned unwrapped so
// that callers can check for fs.ErrNotExist.
func LoadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == ".zst" || IsZstd(b) {
		if b, err = DecompressZstd(b); err != nil {
			return nil, err
		}
	}
	return DecodeText(b)
}

// NewTextReader returns a reader that drops a leading UTF-8 byte order
// mark from r and converts UTF-16 text with a byte order mark to UTF-8.
// Text without a byte order mark is passed through unchanged.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// DecodeText is NewTextReader for text already in memory.
func DecodeText(b []byte) ([]byte, error) {
	if !bytes.HasPrefix(b, []byte{0xef, 0xbb, 0xbf}) && !bytes.HasPrefix(b, []byte{0xfe, 0xff}) &&
		!bytes.HasPrefix(b, []byte{0xff, 0xfe}) {
		return b, nil
	}
	return io.ReadAll(NewTextReader(bytes.NewReader(b)))
}

func DecompressZstd(b []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func CompressZstd(b []byte) ([]byte, error) {
	zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	defer zw.Close()

	return zw.EncodeAll(b, nil), nil
}

// OutputFile is a file to be written by WriteFiles.
type OutputFile struct {
	Path     string
	Contents []byte
}

// WriteFiles writes all of the given files or, if any of them can't be
// written, none of them. (If one fails to be renamed into place, existing
// files with the names of those before it are lost.) Each file is first written to a temporary file
// in its destination directory and the temporaries are renamed into place
// only once all have been written successfully. Files with a .zst
// extension are zstd compressed.
func WriteFiles(files []OutputFile) error {
	var temps []string
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t) // ignore errors
		}
	}

	for _, f := range files {
		contents := f.Contents
		if strings.HasSuffix(f.Path, ".zst") {
			var err error
			if contents, err = CompressZstd(contents); err != nil {
				cleanup()
				return err
			}
		}

		tf, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tf.Name())

		_, werr := tf.Write(contents)
		merr := tf.Chmod(0o644)
		cerr := tf.Close()
		if err := errors.Join(werr, merr, cerr); err != nil {
			cleanup()
			return err
		}
	}

	for i, f := range files {
		if err := os.Rename(temps[i], f.Path); err != nil {
			// Files already renamed into place are removed; any previous
			// files they replaced are not restored.
			for _, done := range files[:i] {
				os.Remove(done.Path) // ignore errors
			}
			cleanup()
			return err
		}
		temps[i] = ""
	}
	return nil
}

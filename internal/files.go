package internal

import (
	"compress/gzip"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileOpen is os.Open with panics in place of errors
func FileOpen(name string) *os.File {
	file, err := os.Open(name)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// FileCreate is os.Create with panics in place of errors
func FileCreate(name string) *os.File {
	file, err := os.Create(name)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// MkdirAll is os.MkdirAll with panics in place of errors
func MkdirAll(path string, perm os.FileMode) {
	if err := os.MkdirAll(path, perm); err != nil {
		log.Panic(err)
	}
}

// Close is closer.Close() with panics in place of errors
func Close(closer io.Closer) {
	if err := closer.Close(); err != nil {
		log.Panic(err)
	}
}

type plaintextReader struct {
	gz   *gzip.Reader
	file *os.File
}

func (r *plaintextReader) Read(p []byte) (int, error) {
	if r.gz != nil {
		return r.gz.Read(p)
	}
	return r.file.Read(p)
}

func (r *plaintextReader) Close() error {
	if r.gz != nil {
		if err := r.gz.Close(); err != nil {
			_ = r.file.Close()
			return err
		}
	}
	return r.file.Close()
}

// OpenPlaintext opens a plaintext input file for reading, transparently
// decompressing it when the filename carries a .gz suffix. It panics
// when the file cannot be opened.
func OpenPlaintext(name string) io.ReadCloser {
	file := FileOpen(name)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			log.Panic(err)
		}
		return &plaintextReader{gz: gz, file: file}
	}
	return &plaintextReader{file: file}
}

// FullPathname returns the absolute version of the given filename.
func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}

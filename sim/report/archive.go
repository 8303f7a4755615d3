package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// WriteArchive stores a chronicle as zstd-compressed JSON.
func WriteArchive(path string, c *Chronicle) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating archive dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeArchive(f, c)
}

// EncodeArchive writes a chronicle as zstd-compressed JSON to w.
func EncodeArchive(w io.Writer, c *Chronicle) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)
	if err := json.NewEncoder(bw).Encode(c); err != nil {
		_ = enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadArchive loads a chronicle written by WriteArchive.
func ReadArchive(path string) (*Chronicle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()
	return DecodeArchive(f)
}

// DecodeArchive reads a zstd-compressed JSON chronicle from r.
func DecodeArchive(r io.Reader) (*Chronicle, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var c Chronicle
	if err := json.NewDecoder(bufio.NewReaderSize(dec, 64*1024)).Decode(&c); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return &c, nil
}

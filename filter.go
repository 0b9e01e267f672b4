package objstm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
)

// Compression is the effort tier a compression level maps to.
type Compression uint8

const (
	CompNone Compression = iota
	CompFast
	CompDefault
	CompBest
)

// compressionForLevel maps a 0-9 level onto an effort tier:
// 0 none, 1-3 fast, 4-6 default, 7-9 best.
func compressionForLevel(level int) Compression {
	switch {
	case level <= 0:
		return CompNone
	case level <= 3:
		return CompFast
	case level <= 6:
		return CompDefault
	default:
		return CompBest
	}
}

func compressionName(c Compression) string {
	switch c {
	case CompNone:
		return "none"
	case CompFast:
		return "fast"
	case CompDefault:
		return "default"
	case CompBest:
		return "best"
	default:
		return "unknown"
	}
}

// Function variables for testing injection.
var (
	newZlibWriter = func(w io.Writer, level int) (*zlib.Writer, error) { return zlib.NewWriterLevel(w, level) }
	zlibClose     = func(w *zlib.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
	readAll       = io.ReadAll
)

func supportedFilter(f Name) bool {
	return f == FilterFlate || f == FilterBrotli
}

// encodeFilter compresses in with filter at the given effort.
func encodeFilter(filter Name, comp Compression, in []byte) ([]byte, error) {
	switch filter {
	case FilterFlate:
		return flateCompress(in, comp)
	case FilterBrotli:
		return brotliCompress(in, comp)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, filter)
	}
}

// decodeFilter reverses encodeFilter, refusing to expand beyond maxOut bytes.
func decodeFilter(filter Name, in []byte, maxOut uint64) ([]byte, error) {
	switch filter {
	case FilterFlate:
		return flateDecompress(in, maxOut)
	case FilterBrotli:
		return brotliDecompress(in, maxOut)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, filter)
	}
}

func zlibLevel(comp Compression) int {
	switch comp {
	case CompFast:
		return zlib.BestSpeed
	case CompBest:
		return zlib.BestCompression
	case CompNone:
		return zlib.NoCompression
	default:
		return zlib.DefaultCompression
	}
}

// flateCompress produces a zlib-wrapped deflate stream, the FlateDecode format.
func flateCompress(in []byte, comp Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := flateCompressTo(&buf, in, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flateCompressTo(w io.Writer, in []byte, comp Compression) error {
	zw, err := newZlibWriter(w, zlibLevel(comp))
	if err != nil {
		return err
	}
	if _, err := zw.Write(in); err != nil {
		_ = zlibClose(zw)
		return err
	}
	return zlibClose(zw)
}

// flateDecompress inflates a FlateDecode payload.
// It uses a LimitReader to prevent decompression beyond maxOut bytes.
func flateDecompress(in []byte, maxOut uint64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompression, err)
	}
	defer r.Close()
	b, err := readAll(io.LimitReader(r, int64(maxOut)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompression, err)
	}
	if uint64(len(b)) > maxOut {
		return nil, fmt.Errorf("%w: flate expanded beyond %d bytes", ErrLimitExceeded, maxOut)
	}
	return b, nil
}

func brotliQuality(comp Compression) int {
	switch comp {
	case CompFast:
		return brotli.BestSpeed
	case CompBest:
		return brotli.BestCompression
	default:
		return brotli.DefaultCompression
	}
}

// brotliCompress compresses in for the BrotliDecode filter.
func brotliCompress(in []byte, comp Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliCompressTo(w io.Writer, in []byte, comp Compression) error {
	bw := brotli.NewWriterLevel(w, brotliQuality(comp))
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

// brotliDecompress decompresses a BrotliDecode payload.
// It uses a LimitReader to prevent decompression beyond maxOut bytes.
func brotliDecompress(in []byte, maxOut uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(maxOut)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompression, err)
	}
	if uint64(len(b)) > maxOut {
		return nil, fmt.Errorf("%w: brotli expanded beyond %d bytes", ErrLimitExceeded, maxOut)
	}
	return b, nil
}

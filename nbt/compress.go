package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies the outer framing of a standalone document.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	}
	return fmt.Sprintf("compression(%d)", byte(c))
}

// DetectCompression sniffs the framing from the first two bytes: the gzip
// magic, then a zlib header (deflate method, window size at most 32K, header
// checksum divisible by 31), otherwise none.
func DetectCompression(data []byte) Compression {
	if len(data) < 2 {
		return CompressionNone
	}
	if data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	if data[0]&0x0f == 8 && data[0]>>4 <= 7 && (uint(data[0])<<8|uint(data[1]))%31 == 0 {
		return CompressionZlib
	}
	return CompressionNone
}

// Decompress sniffs the framing of data and strips it, returning the payload
// and what was detected. Input detected as CompressionNone is returned
// unchanged.
func Decompress(data []byte) ([]byte, Compression, error) {
	c := DetectCompression(data)
	out, err := c.Decompress(data)
	return out, c, err
}

// Decompress strips this framing from data unconditionally, for containers
// that state the algorithm instead of relying on sniffing. CompressionNone
// returns the input as is, not a copy.
func (c Compression) Decompress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		if err := zr.Close(); err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		return out, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		if err := zr.Close(); err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("nbt: decompress: unsupported %v", c)
}

// Compress wraps data in this framing. CompressionNone returns the input as
// is, not a copy.
func (c Compression) Compress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionZlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("nbt: compress: unsupported %v", c)
}

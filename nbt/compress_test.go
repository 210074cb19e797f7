package nbt

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectCompression(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Compression
	}{
		{"gzip magic", []byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{"zlib default", []byte{0x78, 0x9c, 0x01}, CompressionZlib},
		{"zlib fastest", []byte{0x78, 0x01}, CompressionZlib},
		{"zlib best", []byte{0x78, 0xda}, CompressionZlib},
		{"bad zlib checksum", []byte{0x78, 0x9d}, CompressionNone},
		{"plain nbt", []byte{0x0a, 0x00, 0x00}, CompressionNone},
		{"garbage", []byte{0xde, 0xad, 0xbe, 0xef}, CompressionNone},
		{"too short", []byte{0x1f}, CompressionNone},
		{"empty", nil, CompressionNone},
	}
	for _, tc := range cases {
		if got := DetectCompression(tc.data); got != tc.want {
			t.Errorf("%s: detected %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCompressRoundTrip(t *testing.T) {
	payload := []byte("chunk data chunk data chunk data")
	for _, c := range []Compression{CompressionGzip, CompressionZlib} {
		packed, err := c.Compress(payload)
		if err != nil {
			t.Fatalf("%v: compress: %v", c, err)
		}
		if got := DetectCompression(packed); got != c {
			t.Fatalf("%v: framing detected as %v", c, got)
		}
		back, detected, err := Decompress(packed)
		if err != nil {
			t.Fatalf("%v: decompress: %v", c, err)
		}
		if detected != c {
			t.Fatalf("%v: detected %v", c, detected)
		}
		if !bytes.Equal(payload, back) {
			t.Fatalf("%v: payload mismatch", c)
		}
	}
}

func TestDecompressNoneIdentity(t *testing.T) {
	data := []byte{0x0a, 0x00, 0x00, 0x00}
	out, c, err := Decompress(data)
	if err != nil || c != CompressionNone {
		t.Fatalf("Decompress = %v, %v", c, err)
	}
	if len(out) != len(data) || &out[0] != &data[0] {
		t.Fatal("identity decompression copied the buffer")
	}
}

func TestDecompressCorrupt(t *testing.T) {
	badGzip := []byte{0x1f, 0x8b, 0xff, 0xff, 0xff}
	if _, err := CompressionGzip.Decompress(badGzip); err == nil || !strings.Contains(err.Error(), "gzip") {
		t.Fatalf("corrupt gzip: %v", err)
	}

	badZlib := []byte{0x78, 0x9c, 0x00}
	if _, err := CompressionZlib.Decompress(badZlib); err == nil || !strings.Contains(err.Error(), "zlib") {
		t.Fatalf("corrupt zlib: %v", err)
	}
}

func TestCompressionString(t *testing.T) {
	if CompressionGzip.String() != "gzip" || CompressionZlib.String() != "zlib" || CompressionNone.String() != "none" {
		t.Fatal("compression names wrong")
	}
	if got := Compression(9).String(); got != "compression(9)" {
		t.Fatalf("unknown compression prints as %q", got)
	}
}

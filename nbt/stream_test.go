package nbt

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderScalars(t *testing.T) {
	data := []byte{
		0x80,
		0x12, 0x34,
		0xff, 0xff, 0xff, 0xfe,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a,
		0x3f, 0x80, 0x00, 0x00,
		0x40, 0x09, 0x21, 0xfb, 0x54, 0x44, 0x2d, 0x18,
	}
	r := NewReader(data)

	if v, err := r.ReadInt8(); err != nil || v != -128 {
		t.Fatalf("ReadInt8 = %d, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != -2 {
		t.Fatalf("ReadInt32 = %d, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != 42 {
		t.Fatalf("ReadInt64 = %d, %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 1.0 {
		t.Fatalf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 3.141592653589793 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after reading everything", r.Len())
	}
	if r.Offset() != len(data) {
		t.Fatalf("Offset = %d, want %d", r.Offset(), len(data))
	}
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadUint32 on 2 bytes: %v", err)
	}
	if r.Offset() != 0 {
		t.Fatalf("failed read moved the cursor to %d", r.Offset())
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0102 {
		t.Fatalf("ReadUint16 after failed read = %#x, %v", v, err)
	}
	if _, err := r.ReadUint8(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("read past end: %v", err)
	}
}

func TestReadBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	got, err := r.ReadBytes(3)
	if err != nil || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("ReadBytes(3) = %v, %v", got, err)
	}
	if _, err := r.ReadBytes(2); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadBytes past end: %v", err)
	}
	if _, err := r.ReadBytes(-1); !errors.Is(err, ErrNegativeLength) {
		t.Fatalf("ReadBytes(-1): %v", err)
	}
	if got, err := r.ReadBytes(0); err != nil || len(got) != 0 {
		t.Fatalf("ReadBytes(0) = %v, %v", got, err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteInt8(-5)
	w.WriteUint16(65535)
	w.WriteInt32(-123456789)
	w.WriteInt64(1 << 40)
	w.WriteFloat32(0.5)
	w.WriteFloat64(-2.25)
	w.WriteBytes([]byte("abc"))

	r := NewReader(w.Bytes())
	if v, err := r.ReadInt8(); err != nil || v != -5 {
		t.Fatalf("int8 = %d, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 65535 {
		t.Fatalf("uint16 = %d, %v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != -123456789 {
		t.Fatalf("int32 = %d, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != 1<<40 {
		t.Fatalf("int64 = %d, %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 0.5 {
		t.Fatalf("float32 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -2.25 {
		t.Fatalf("float64 = %v, %v", v, err)
	}
	if v, err := r.ReadBytes(3); err != nil || string(v) != "abc" {
		t.Fatalf("bytes = %q, %v", v, err)
	}
}

func TestWriterGrowth(t *testing.T) {
	var w Writer
	w.WriteUint8(1)
	w.WriteUint8(2)
	w.WriteUint8(3)
	if c := cap(w.Bytes()); c != 4 {
		t.Fatalf("cap after three single-byte writes = %d, want 4", c)
	}

	var w2 Writer
	w2.WriteBytes(make([]byte, 10))
	w2.WriteBytes(make([]byte, 25))
	if c := cap(w2.Bytes()); c != 35 {
		t.Fatalf("cap after exact-fit growth = %d, want 35", c)
	}
	if w2.Len() != 35 {
		t.Fatalf("Len = %d, want 35", w2.Len())
	}
}

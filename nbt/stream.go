package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader decodes big-endian scalars from a byte buffer. Every read checks the
// remaining length first and fails with io.ErrUnexpectedEOF, leaving the
// cursor where it was, when the requested span runs past the end.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.off }

// Offset returns the cursor position from the start of the buffer.
func (r *Reader) Offset() int { return r.off }

func (r *Reader) require(n int) error {
	if r.Len() < n {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBytes consumes the next n bytes. The returned slice aliases the
// reader's buffer; callers that keep it past the buffer's lifetime must copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: read of %d bytes", ErrNegativeLength, n)
	}
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return v, nil
}

// Writer encodes big-endian scalars into a growable buffer. The zero value is
// ready to use.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

// Bytes returns the written prefix of the buffer. The slice aliases the
// writer's storage and is invalidated by further writes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// grow extends the buffer by n bytes, doubling the capacity or growing to
// exactly fit, whichever is larger, and returns the fresh span.
func (w *Writer) grow(n int) []byte {
	need := len(w.buf) + n
	if need > cap(w.buf) {
		newCap := 2 * cap(w.buf)
		if newCap < need {
			newCap = need
		}
		next := make([]byte, len(w.buf), newCap)
		copy(next, w.buf)
		w.buf = next
	}
	w.buf = w.buf[:need]
	return w.buf[need-n:]
}

func (w *Writer) WriteUint8(v uint8) { w.grow(1)[0] = v }

func (w *Writer) WriteInt8(v int8) { w.WriteUint8(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) { binary.BigEndian.PutUint16(w.grow(2), v) }

func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) { binary.BigEndian.PutUint32(w.grow(4), v) }

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) { binary.BigEndian.PutUint64(w.grow(8), v) }

func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

func (w *Writer) WriteBytes(p []byte) { copy(w.grow(len(p)), p) }

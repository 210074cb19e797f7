package nbt

import (
	"fmt"
	"io"
)

// readNamedTag reads one (type id, name, payload) compound entry. A TagEnd id
// terminates the enclosing compound and is reported as a nil tag.
func readNamedTag(r *Reader) (string, Tag, error) {
	id, err := r.ReadUint8()
	if err != nil {
		return "", nil, err
	}
	typ := TagType(id)
	if typ == TagEnd {
		return "", nil, nil
	}
	if !typ.valid() {
		return "", nil, fmt.Errorf("%w 0x%02x", ErrUnknownTagType, id)
	}
	name, err := readString(r)
	if err != nil {
		return "", nil, err
	}
	tag, err := readPayload(r, typ)
	if err != nil {
		return "", nil, err
	}
	return name, tag, nil
}

func readPayload(r *Reader, typ TagType) (Tag, error) {
	switch typ {
	case TagByte:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		return Byte(v), nil
	case TagShort:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		return Short(v), nil
	case TagInt:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case TagLong:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil
	case TagFloat:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return Float(v), nil
	case TagDouble:
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return Double(v), nil
	case TagByteArray:
		return readByteArray(r)
	case TagString:
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		return String(v), nil
	case TagList:
		return readList(r)
	case TagCompound:
		return readCompound(r)
	case TagIntArray:
		return readIntArray(r)
	case TagLongArray:
		return readLongArray(r)
	}
	return nil, fmt.Errorf("%w 0x%02x", ErrUnknownTagType, byte(typ))
}

func readString(r *Reader) (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	raw, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// readCount reads a 4-byte signed element count, rejecting negatives before
// anything is allocated.
func readCount(r *Reader) (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: element count %d", ErrNegativeLength, n)
	}
	return int(n), nil
}

func readByteArray(r *Reader) (ByteArray, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return append(ByteArray(nil), raw...), nil
}

func readIntArray(r *Reader) (IntArray, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if int64(r.Len()) < 4*int64(n) {
		return nil, io.ErrUnexpectedEOF
	}
	out := make(IntArray, n)
	for i := range out {
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readLongArray(r *Reader) (LongArray, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if int64(r.Len()) < 8*int64(n) {
		return nil, io.ErrUnexpectedEOF
	}
	out := make(LongArray, n)
	for i := range out {
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readList reads the declared element type and count, then that many bare
// payloads. Lists read this way are homogeneous by construction.
func readList(r *Reader) (*List, error) {
	id, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	elem := TagType(id)
	if !elem.valid() {
		return nil, fmt.Errorf("%w 0x%02x as list element", ErrUnknownTagType, id)
	}
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &List{}, nil
	}
	if elem == TagEnd {
		return nil, fmt.Errorf("%w: %d-element list declares %v", ErrUnknownTagType, n, TagEnd)
	}
	// Every payload is at least one byte, so a count beyond the remaining
	// bytes can never complete.
	if n > r.Len() {
		return nil, io.ErrUnexpectedEOF
	}
	items := make([]Tag, 0, n)
	for i := 0; i < n; i++ {
		item, err := readPayload(r, elem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &List{Items: items}, nil
}

func readCompound(r *Reader) (*Compound, error) {
	c := NewCompound()
	for {
		name, tag, err := readNamedTag(r)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return c, nil
		}
		c.Set(name, tag)
	}
}

package nbt

import (
	"fmt"
	"math"
)

// writeNamedTag emits one (type id, name, payload) entry, the framing used
// for compound members and the document root.
func writeNamedTag(w *Writer, name string, t Tag) error {
	if t == nil {
		return fmt.Errorf("nbt: nil tag named %q", name)
	}
	w.WriteUint8(uint8(t.Type()))
	if err := writeString(w, name); err != nil {
		return err
	}
	return writePayload(w, t)
}

func writeString(w *Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w (%d bytes)", ErrStringTooLong, len(s))
	}
	w.WriteUint16(uint16(len(s)))
	w.WriteBytes([]byte(s))
	return nil
}

func writePayload(w *Writer, t Tag) error {
	switch v := t.(type) {
	case Byte:
		w.WriteInt8(int8(v))
	case Short:
		w.WriteInt16(int16(v))
	case Int:
		w.WriteInt32(int32(v))
	case Long:
		w.WriteInt64(int64(v))
	case Float:
		w.WriteFloat32(float32(v))
	case Double:
		w.WriteFloat64(float64(v))
	case ByteArray:
		w.WriteInt32(int32(len(v)))
		w.WriteBytes(v)
	case String:
		return writeString(w, string(v))
	case IntArray:
		w.WriteInt32(int32(len(v)))
		for _, e := range v {
			w.WriteInt32(e)
		}
	case LongArray:
		w.WriteInt32(int32(len(v)))
		for _, e := range v {
			w.WriteInt64(e)
		}
	case *List:
		return writeList(w, v)
	case *Compound:
		return writeCompound(w, v)
	default:
		return fmt.Errorf("%w %v", ErrUnknownTagType, t.Type())
	}
	return nil
}

// writeList emits the element type declared by the first element, the count,
// then the bare element payloads. Elements of a different kind fail the
// encode.
func writeList(w *Writer, l *List) error {
	elem := l.ElementType()
	w.WriteUint8(uint8(elem))
	w.WriteInt32(int32(len(l.Items)))
	for _, item := range l.Items {
		if item == nil {
			return fmt.Errorf("nbt: nil tag in list")
		}
		if item.Type() != elem {
			return fmt.Errorf("%w: found %v in a list of %v", ErrMixedList, item.Type(), elem)
		}
		if err := writePayload(w, item); err != nil {
			return err
		}
	}
	return nil
}

func writeCompound(w *Writer, c *Compound) error {
	for _, name := range c.order {
		if err := writeNamedTag(w, name, c.items[name]); err != nil {
			return err
		}
	}
	w.WriteUint8(uint8(TagEnd))
	return nil
}

package nbt

import (
	"bytes"
	"fmt"
	"math"
	"slices"
)

// TagType identifies one of the thirteen NBT tag kinds by its wire id.
type TagType byte

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagTypeNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

func (t TagType) String() string {
	if int(t) < len(tagTypeNames) {
		return tagTypeNames[t]
	}
	return fmt.Sprintf("TAG_Unknown(0x%02x)", byte(t))
}

func (t TagType) valid() bool { return t <= TagLongArray }

// Tag is one node in an NBT document tree. The implementation set is closed:
// the twelve payload-bearing kinds declared in this package and nothing else.
// A tag is exclusively owned by its parent container; sharing one node
// between two trees is not supported.
type Tag interface {
	Type() TagType
}

type Byte int8
type Short int16
type Int int32
type Long int64
type Float float32
type Double float64
type ByteArray []byte
type String string
type IntArray []int32
type LongArray []int64

func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (ByteArray) Type() TagType { return TagByteArray }
func (String) Type() TagType    { return TagString }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

// List is an ordered sequence of tags that all share one kind. Items may be
// manipulated directly; heterogeneous contents are rejected when encoding.
type List struct {
	Items []Tag
}

func (l *List) Type() TagType { return TagList }

func (l *List) Len() int { return len(l.Items) }

// ElementType reports the kind shared by the list's elements, fixed by the
// first element. An empty list has element kind TagEnd.
func (l *List) ElementType() TagType {
	if len(l.Items) == 0 {
		return TagEnd
	}
	return l.Items[0].Type()
}

// Append adds tags to the list, rejecting any whose kind differs from the
// list's element kind.
func (l *List) Append(tags ...Tag) error {
	for _, t := range tags {
		if et := l.ElementType(); et != TagEnd && t.Type() != et {
			return fmt.Errorf("%w: cannot append %v to a list of %v", ErrMixedList, t.Type(), et)
		}
		l.Items = append(l.Items, t)
	}
	return nil
}

func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.Items) != len(other.Items) {
		return false
	}
	for i := range l.Items {
		if !Equal(l.Items[i], other.Items[i]) {
			return false
		}
	}
	return true
}

// Compound maps names to tags, preserving insertion order. Setting a name
// that already exists replaces its value but keeps the name's original
// position. The zero value is an empty compound ready to use.
type Compound struct {
	order []string
	items map[string]Tag
}

func NewCompound() *Compound {
	return &Compound{items: make(map[string]Tag)}
}

func (c *Compound) Type() TagType { return TagCompound }

func (c *Compound) Len() int { return len(c.items) }

func (c *Compound) Get(name string) (Tag, bool) {
	t, ok := c.items[name]
	return t, ok
}

func (c *Compound) Set(name string, tag Tag) {
	if c.items == nil {
		c.items = make(map[string]Tag)
	}
	if _, exists := c.items[name]; !exists {
		c.order = append(c.order, name)
	}
	c.items[name] = tag
}

// Delete removes the named entry, reporting whether it was present.
func (c *Compound) Delete(name string) bool {
	if _, exists := c.items[name]; !exists {
		return false
	}
	delete(c.items, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the compound's keys in insertion order.
func (c *Compound) Names() []string {
	return append([]string(nil), c.order...)
}

func (c *Compound) Equal(other *Compound) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.order) != len(other.order) {
		return false
	}
	for i, name := range c.order {
		if other.order[i] != name {
			return false
		}
		if !Equal(c.items[name], other.items[name]) {
			return false
		}
	}
	return true
}

// Equal reports whether two tags are structurally identical: same kind, same
// payload, and for containers the same element order and names. Floats are
// compared bitwise so equality matches wire identity, NaN included.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch at := a.(type) {
	case Byte:
		bt, ok := b.(Byte)
		return ok && at == bt
	case Short:
		bt, ok := b.(Short)
		return ok && at == bt
	case Int:
		bt, ok := b.(Int)
		return ok && at == bt
	case Long:
		bt, ok := b.(Long)
		return ok && at == bt
	case Float:
		bt, ok := b.(Float)
		return ok && math.Float32bits(float32(at)) == math.Float32bits(float32(bt))
	case Double:
		bt, ok := b.(Double)
		return ok && math.Float64bits(float64(at)) == math.Float64bits(float64(bt))
	case ByteArray:
		bt, ok := b.(ByteArray)
		return ok && bytes.Equal(at, bt)
	case String:
		bt, ok := b.(String)
		return ok && at == bt
	case IntArray:
		bt, ok := b.(IntArray)
		return ok && slices.Equal(at, bt)
	case LongArray:
		bt, ok := b.(LongArray)
		return ok && slices.Equal(at, bt)
	case *List:
		bt, ok := b.(*List)
		return ok && at.Equal(bt)
	case *Compound:
		bt, ok := b.(*Compound)
		return ok && at.Equal(bt)
	}
	return false
}

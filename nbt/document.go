package nbt

import "fmt"

// Document is a complete NBT document: the root compound plus the root's
// name. Network-encoded documents carry no name on the wire; Name is ""
// for those.
type Document struct {
	Name string
	Root *Compound
}

// DecodeDocument parses an uncompressed file-mode document: the compound type
// id, a length-prefixed root name, then the root compound payload. Bytes past
// the end of the root are ignored.
func DecodeDocument(data []byte) (*Document, error) {
	r := NewReader(data)
	if err := expectCompound(r); err != nil {
		return nil, err
	}
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	root, err := readCompound(r)
	if err != nil {
		return nil, err
	}
	return &Document{Name: name, Root: root}, nil
}

// DecodeNetworkDocument parses an uncompressed network-mode document, which
// has no root name.
func DecodeNetworkDocument(data []byte) (*Document, error) {
	r := NewReader(data)
	if err := expectCompound(r); err != nil {
		return nil, err
	}
	root, err := readCompound(r)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

func expectCompound(r *Reader) error {
	id, err := r.ReadUint8()
	if err != nil {
		return err
	}
	if TagType(id) != TagCompound {
		return fmt.Errorf("%w: found %v", ErrRootNotCompound, TagType(id))
	}
	return nil
}

// EncodeDocument serializes a file-mode document.
func EncodeDocument(doc *Document) ([]byte, error) {
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root", ErrRootNotCompound)
	}
	w := NewWriter()
	w.WriteUint8(uint8(TagCompound))
	if err := writeString(w, doc.Name); err != nil {
		return nil, err
	}
	if err := writeCompound(w, doc.Root); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeNetworkDocument serializes a network-mode document, omitting the
// root name.
func EncodeNetworkDocument(doc *Document) ([]byte, error) {
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root", ErrRootNotCompound)
	}
	w := NewWriter()
	w.WriteUint8(uint8(TagCompound))
	if err := writeCompound(w, doc.Root); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ReadDocument decodes a standalone document that may be gzip- or
// zlib-compressed, sniffing the framing from the leading bytes. The detected
// compression is returned so callers can save the document back in kind.
func ReadDocument(data []byte) (*Document, Compression, error) {
	plain, c, err := Decompress(data)
	if err != nil {
		return nil, c, err
	}
	doc, err := DecodeDocument(plain)
	return doc, c, err
}

// WriteDocument serializes a file-mode document and wraps it in the chosen
// compression framing.
func WriteDocument(doc *Document, c Compression) ([]byte, error) {
	raw, err := EncodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return c.Compress(raw)
}

// Equal reports whether two documents have the same root name and
// structurally identical trees.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Name == other.Name && d.Root.Equal(other.Root)
}

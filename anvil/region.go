// Package anvil reads and writes Anvil region containers: sector-addressed
// files holding up to 1024 independently compressed NBT chunk documents in a
// 32x32 coordinate grid.
package anvil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/astei/nbtedit/nbt"
)

const (
	regionSlots   = 1024
	sectorSize    = 4096
	headerSectors = 2
	headerSize    = headerSectors * sectorSize
)

// Chunk records name their compression in a 1-byte header field, a separate
// scheme from the sniffed framing of standalone documents.
const (
	chunkCompressionGzip byte = 1
	chunkCompressionZlib byte = 2
	chunkCompressionNone byte = 3
)

const (
	maxSectorOffset = 1<<24 - 1
	maxSectorCount  = 0xff
)

var ErrNoChunk = errors.New("anvil: chunk not found")
var ErrTruncated = errors.New("anvil: truncated region file")
var ErrFileTooLarge = errors.New("anvil: sector offset exceeds 24 bits")
var ErrChunkTooLarge = errors.New("anvil: chunk exceeds 255 sectors")

// ChunkCoord addresses one slot in the region's 32x32 chunk grid.
type ChunkCoord struct {
	X int
	Z int
}

// ChunkError reports a chunk whose stored bytes failed to decompress or
// decode. It is local to that slot; every other slot stays readable.
type ChunkError struct {
	X, Z int
	Err  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("anvil: corrupt chunk at (%d,%d): %v", e.X, e.Z, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Region is an in-memory Anvil region container. It is not safe for
// concurrent access; usage should be protected by a mutex if concurrent
// access is desired.
type Region struct {
	data []byte
	now  func() time.Time

	// Logger receives a warning when a slot degrades to absent because of an
	// unknown compression type. Nil means slog.Default().
	Logger *slog.Logger
}

// New creates an empty region holding just the two header sectors.
func New() *Region {
	return &Region{data: make([]byte, headerSize), now: time.Now}
}

// Load wraps an existing region file. Ownership of data is transferred to
// the region; the caller must not mutate it afterwards.
func Load(data []byte) (*Region, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrTruncated, len(data), headerSize)
	}
	return &Region{data: data, now: time.Now}, nil
}

// Data returns the backing buffer, suitable for persisting as a region file.
// The slice aliases the region's storage and is invalidated by the next
// write.
func (r *Region) Data() []byte { return r.data }

func (r *Region) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func slotIndex(x, z int) int { return (x & 31) + (z & 31)*32 }

func (r *Region) location(i int) (offset, count int) {
	entry := binary.BigEndian.Uint32(r.data[4*i:])
	return int(entry >> 8), int(entry & 0xff)
}

func (r *Region) setLocation(i int, entry uint32) {
	binary.BigEndian.PutUint32(r.data[4*i:], entry)
}

// packLocation encodes a location-table entry, failing when the offset or
// count exceeds its field width.
func packLocation(offset, count int) (uint32, error) {
	if offset > maxSectorOffset {
		return 0, fmt.Errorf("%w: sector offset %d", ErrFileTooLarge, offset)
	}
	if count > maxSectorCount {
		return 0, fmt.Errorf("%w: %d sectors", ErrChunkTooLarge, count)
	}
	return uint32(offset)<<8 | uint32(count), nil
}

func (r *Region) setTimestamp(i int, t time.Time) {
	binary.BigEndian.PutUint32(r.data[sectorSize+4*i:], uint32(t.Unix()))
}

// HasChunk reports whether the slot at the given local coordinates holds a
// chunk. Coordinates are reduced modulo 32.
func (r *Region) HasChunk(x, z int) bool {
	off, cnt := r.location(slotIndex(x, z))
	return off != 0 || cnt != 0
}

// Timestamp returns the last-modified time recorded for the slot, or the
// zero time when none is set.
func (r *Region) Timestamp(x, z int) time.Time {
	sec := binary.BigEndian.Uint32(r.data[sectorSize+4*slotIndex(x, z):])
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0)
}

// ReadChunk decodes the chunk document stored at the given local
// coordinates. Empty slots and slots whose table entry cannot describe a
// record inside the file return ErrNoChunk; a present chunk that fails to
// decompress or decode returns a *ChunkError naming the slot.
func (r *Region) ReadChunk(x, z int) (*nbt.Document, error) {
	off, cnt := r.location(slotIndex(x, z))
	if off == 0 && cnt == 0 {
		return nil, ErrNoChunk
	}
	if off < headerSectors {
		return nil, ErrNoChunk
	}
	start := off * sectorSize
	if start+5 > len(r.data) {
		return nil, ErrNoChunk
	}
	length := int(binary.BigEndian.Uint32(r.data[start:]))
	if length < 1 || start+4+length > len(r.data) {
		return nil, ErrNoChunk
	}
	compression := r.data[start+4]
	payload := r.data[start+5 : start+4+length]

	var plain []byte
	var err error
	switch compression {
	case chunkCompressionGzip:
		plain, err = nbt.CompressionGzip.Decompress(payload)
	case chunkCompressionZlib:
		plain, err = nbt.CompressionZlib.Decompress(payload)
	case chunkCompressionNone:
		plain = payload
	default:
		r.logger().Warn("unknown chunk compression, treating chunk as absent",
			"x", x, "z", z, "compression", compression)
		return nil, ErrNoChunk
	}
	if err != nil {
		return nil, &ChunkError{X: x, Z: z, Err: err}
	}
	doc, err := nbt.DecodeDocument(plain)
	if err != nil {
		return nil, &ChunkError{X: x, Z: z, Err: err}
	}
	return doc, nil
}

// WriteChunk encodes a chunk document, compresses it with zlib, and stores
// it at the given local coordinates. The record is rewritten in place when it
// fits the slot's existing sector allocation; otherwise it is appended after
// the end of the file and the old sectors are orphaned. Capacity failures
// leave the region untouched.
func (r *Region) WriteChunk(x, z int, doc *nbt.Document) error {
	raw, err := nbt.EncodeDocument(doc)
	if err != nil {
		return err
	}
	compressed, err := nbt.CompressionZlib.Compress(raw)
	if err != nil {
		return err
	}

	record := 5 + len(compressed)
	needed := (record + sectorSize - 1) / sectorSize

	i := slotIndex(x, z)
	off, cnt := r.location(i)

	// An allocation claiming sectors past the end of the buffer cannot be
	// rewritten in place; relocating writes a fresh, valid entry instead.
	target := off
	if off < headerSectors || needed > cnt || (off+cnt)*sectorSize > len(r.data) {
		end := (len(r.data) + sectorSize - 1) / sectorSize
		entry, err := packLocation(end, needed)
		if err != nil {
			return err
		}
		r.data = append(r.data, make([]byte, (end+needed)*sectorSize-len(r.data))...)
		r.setLocation(i, entry)
		target = end
	}

	pos := target * sectorSize
	binary.BigEndian.PutUint32(r.data[pos:], uint32(1+len(compressed)))
	r.data[pos+4] = chunkCompressionZlib
	copy(r.data[pos+5:], compressed)
	r.setTimestamp(i, r.now())
	return nil
}

// DeleteChunk clears the slot at the given local coordinates, reporting
// whether a chunk was present. The chunk's sectors are orphaned, not
// reclaimed.
func (r *Region) DeleteChunk(x, z int) bool {
	i := slotIndex(x, z)
	off, cnt := r.location(i)
	if off == 0 && cnt == 0 {
		return false
	}
	r.setLocation(i, 0)
	binary.BigEndian.PutUint32(r.data[sectorSize+4*i:], 0)
	return true
}

// PresentChunks lists every populated slot in row-major order, z outer and
// x inner.
func (r *Region) PresentChunks() []ChunkCoord {
	var coords []ChunkCoord
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			if r.HasChunk(x, z) {
				coords = append(coords, ChunkCoord{X: x, Z: z})
			}
		}
	}
	return coords
}

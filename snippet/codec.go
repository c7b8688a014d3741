package snippet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/chazu/verdict/names"
)

// ---------------------------------------------------------------------------
// Blob format
// ---------------------------------------------------------------------------
//
//	magic   [4]byte 'C','R','V','S'
//	version uint32
//	count   uint32
//	count × { childOff uint32, parentOff uint32 }
//	names area: per stored name { length uint16, bytes }
//
// All integers are little endian. Offsets are relative to the start of
// the blob, so the blob can be cached verbatim and decoded at any
// address. Recurring class names are stored once and referenced by the
// same offset; the dedup strategy is chosen by snippet count and is not
// observable in the decoded result.

// Blob magic number
var blobMagic = [4]byte{'C', 'R', 'V', 'S'}

// Blob format version
const blobVersion uint32 = 1

const (
	blobHeaderSize = 12
	snippetSize    = 8
	maxNameLen     = 0xFFFF
	dedupThreshold = 16 // above this, name dedup switches from linear scan to a hash table
)

// Encode serializes the set into a self-contained blob.
func Encode(s *Set) ([]byte, error) {
	count := len(s.order)
	nw := &nameWriter{
		table: s.table,
		base:  uint32(blobHeaderSize + count*snippetSize),
	}

	// Strategy selection is purely a size heuristic; every variant
	// produces decode-identical blobs up to name-area layout.
	var sink nameSink
	switch {
	case count == 1:
		sink = nw
	case count <= dedupThreshold:
		sink = &arraySink{w: nw}
	default:
		sink = &hashSink{w: nw, offsets: make(map[string]uint32, count)}
	}

	refs := make([]uint32, 0, count*2)
	for _, p := range s.order {
		childOff, err := sink.resolve(p.Child)
		if err != nil {
			return nil, err
		}
		parentOff, err := sink.resolve(p.Parent)
		if err != nil {
			return nil, err
		}
		refs = append(refs, childOff, parentOff)
	}

	var buf bytes.Buffer
	buf.Grow(int(nw.base) + nw.buf.Len())
	buf.Write(blobMagic[:])

	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], blobVersion)
	buf.Write(word[:])
	binary.LittleEndian.PutUint32(word[:], uint32(count))
	buf.Write(word[:])

	for _, off := range refs {
		binary.LittleEndian.PutUint32(word[:], off)
		buf.Write(word[:])
	}
	buf.Write(nw.buf.Bytes())

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode and returns the encoded
// (child, parent) name pairs in encoding order.
func Decode(data []byte) ([]NamePair, error) {
	if len(data) < blobHeaderSize {
		return nil, errors.New("snippet: blob too short")
	}
	if !bytes.Equal(data[:4], blobMagic[:]) {
		return nil, errors.New("snippet: invalid blob magic")
	}
	version := binary.LittleEndian.Uint32(data[4:])
	if version != blobVersion {
		return nil, fmt.Errorf("snippet: unsupported blob version: %d", version)
	}
	count := binary.LittleEndian.Uint32(data[8:])

	if uint64(blobHeaderSize)+uint64(count)*snippetSize > uint64(len(data)) {
		return nil, errors.New("snippet: blob snippet area truncated")
	}

	pairs := make([]NamePair, 0, count)
	pos := blobHeaderSize
	for i := uint32(0); i < count; i++ {
		childOff := binary.LittleEndian.Uint32(data[pos:])
		parentOff := binary.LittleEndian.Uint32(data[pos+4:])
		pos += snippetSize

		child, err := readName(data, childOff)
		if err != nil {
			return nil, fmt.Errorf("snippet: blob snippet %d: %w", i, err)
		}
		parent, err := readName(data, parentOff)
		if err != nil {
			return nil, fmt.Errorf("snippet: blob snippet %d: %w", i, err)
		}
		pairs = append(pairs, NamePair{Child: child, Parent: parent})
	}

	return pairs, nil
}

// readName reads a length-prefixed name at a blob-relative offset.
func readName(data []byte, off uint32) (string, error) {
	if uint64(off)+2 > uint64(len(data)) {
		return "", errors.New("name offset out of range")
	}
	n := uint32(binary.LittleEndian.Uint16(data[off:]))
	if uint64(off)+2+uint64(n) > uint64(len(data)) {
		return "", errors.New("name data truncated")
	}
	return string(data[off+2 : off+2+n]), nil
}

// ---------------------------------------------------------------------------
// Name sinks: interchangeable dedup strategies
// ---------------------------------------------------------------------------

// nameSink resolves a name-table index to the blob-relative offset of the
// stored name, writing the name into the names area on first use.
type nameSink interface {
	resolve(idx names.Index) (uint32, error)
}

// nameWriter appends names to the growing names area. Used directly for
// single-snippet blobs, where only two names exist and dedup buys nothing.
type nameWriter struct {
	table *names.Table
	buf   bytes.Buffer
	base  uint32
}

func (w *nameWriter) resolve(idx names.Index) (uint32, error) {
	name := w.table.Name(idx)
	if len(name) > maxNameLen {
		return 0, fmt.Errorf("snippet: class name too long: %d bytes", len(name))
	}
	off := w.base + uint32(w.buf.Len())
	var l [2]byte
	binary.LittleEndian.PutUint16(l[:], uint16(len(name)))
	w.buf.Write(l[:])
	w.buf.WriteString(name)
	return off, nil
}

// arraySink dedups by index with a linear scan. O(n²) worst case, but n
// is at most 2×dedupThreshold.
type arraySink struct {
	w       *nameWriter
	entries []arrayEntry
}

type arrayEntry struct {
	idx names.Index
	off uint32
}

func (s *arraySink) resolve(idx names.Index) (uint32, error) {
	for _, e := range s.entries {
		if e.idx == idx {
			return e.off, nil
		}
	}
	off, err := s.w.resolve(idx)
	if err != nil {
		return 0, err
	}
	s.entries = append(s.entries, arrayEntry{idx: idx, off: off})
	return off, nil
}

// hashSink dedups by name bytes with a hash table, for large sets.
type hashSink struct {
	w       *nameWriter
	offsets map[string]uint32
}

func (s *hashSink) resolve(idx names.Index) (uint32, error) {
	name := s.w.table.Name(idx)
	if off, ok := s.offsets[name]; ok {
		return off, nil
	}
	off, err := s.w.resolve(idx)
	if err != nil {
		return 0, err
	}
	s.offsets[name] = off
	return off, nil
}

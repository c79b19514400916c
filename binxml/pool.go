package binxml

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lukhio/axml/errors"
	"github.com/lukhio/axml/internal/binary"
)

// String pool flags.
const (
	poolSortedFlag uint32 = 1 << 0
	poolUTF8Flag   uint32 = 1 << 8
)

// StringPool holds the document's interned strings in pool order. Every
// string referenced elsewhere in the document (namespace prefixes and URIs,
// element and attribute names, raw attribute values, character data) is an
// index into this pool.
type StringPool struct {
	strings []string
	utf8    bool
}

// Size returns the number of strings in the pool.
func (p *StringPool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.strings)
}

// IsUTF8 reports whether the pool's entries were encoded as UTF-8 rather
// than UTF-16.
func (p *StringPool) IsUTF8() bool {
	return p.utf8
}

// Get returns the string at index i. Indices at or past the pool size fail
// with a string_index_out_of_range error.
func (p *StringPool) Get(i int) (string, error) {
	if p == nil || i < 0 || i >= len(p.strings) {
		return "", errors.StringIndex(errors.PhaseDecode, i, p.Size())
	}
	return p.strings[i], nil
}

// ref resolves a signed pool reference: the -1 sentinel means "absent" and
// yields the empty string.
func (p *StringPool) ref(idx int32) (string, error) {
	if idx == nilIndex {
		return "", nil
	}
	return p.Get(int(idx))
}

// ParsePool decodes a standalone string pool chunk, common header included.
// Resource tables embed pools in the same format as compiled XML documents.
func ParsePool(data []byte) (*StringPool, error) {
	r := binary.NewReader(data, errors.PhaseDecode)
	typ, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if typ != ResStringPoolType {
		return nil, errors.InvalidChunk(errors.PhaseDecode, 0, typ, "not a string pool chunk")
	}
	if _, err := r.ReadU16(); err != nil { // headerSize
		return nil, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(size) > len(data) {
		return nil, errors.Truncated(errors.PhaseDecode, 0, int(size), len(data))
	}
	return parseStringPool(r, 0, size)
}

// parseStringPool decodes a string pool chunk body. The reader is
// positioned just past the common chunk header; chunkStart and size frame
// the whole chunk within the buffer. Style spans are skipped, not decoded.
func parseStringPool(r *binary.Reader, chunkStart int, size uint32) (*StringPool, error) {
	stringCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	styleCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	stringsStart, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	stylesStart, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, stringCount)
	for i := range offsets {
		if offsets[i], err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	// Style offsets are only read to advance past them.
	for i := uint32(0); i < styleCount; i++ {
		if _, err = r.ReadU32(); err != nil {
			return nil, err
		}
	}

	pool := &StringPool{
		strings: make([]string, 0, stringCount),
		utf8:    flags&poolUTF8Flag != 0,
	}

	// String data runs from stringsStart to stylesStart when styles are
	// present, to the end of the chunk otherwise.
	dataStart := chunkStart + int(stringsStart)
	dataEnd := chunkStart + int(size)
	if styleCount > 0 && stylesStart > 0 {
		dataEnd = chunkStart + int(stylesStart)
	}
	if dataStart > dataEnd || dataEnd > r.Len() {
		return nil, errors.InvalidChunk(errors.PhaseDecode, chunkStart, ResStringPoolType,
			"string data region outside chunk")
	}

	for _, off := range offsets {
		if err := r.Seek(dataStart + int(off)); err != nil {
			return nil, err
		}
		var s string
		if pool.utf8 {
			s, err = readUTF8String(r, dataEnd)
		} else {
			s, err = readUTF16String(r, dataEnd)
		}
		if err != nil {
			return nil, err
		}
		pool.strings = append(pool.strings, s)
	}

	return pool, nil
}

// readUTF8String decodes one UTF-8 pool entry: a varint UTF-16 length
// (unused), a varint byte length, then the bytes.
func readUTF8String(r *binary.Reader, dataEnd int) (string, error) {
	if _, err := readLenUTF8(r); err != nil {
		return "", err
	}
	n, err := readLenUTF8(r)
	if err != nil {
		return "", err
	}
	start := r.Position()
	if start+n > dataEnd {
		return "", errors.MalformedString(start, n, dataEnd-start)
	}
	raw, err := r.Slice(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errors.New(errors.PhaseDecode, errors.KindMalformedString).
			Offset(start).
			Detail("invalid UTF-8 in string entry").
			Build()
	}
	return string(raw), nil
}

// readUTF16String decodes one UTF-16 pool entry: a varint code unit count
// then that many little-endian uint16 units. Surrogate pairs are combined
// by utf16.Decode.
func readUTF16String(r *binary.Reader, dataEnd int) (string, error) {
	n, err := readLenUTF16(r)
	if err != nil {
		return "", err
	}
	start := r.Position()
	if start+2*n > dataEnd {
		return "", errors.MalformedString(start, 2*n, dataEnd-start)
	}
	units := make([]uint16, n)
	for i := range units {
		if units[i], err = r.ReadU16(); err != nil {
			return "", err
		}
	}
	return string(utf16.Decode(units)), nil
}

// readLenUTF8 reads the 1-or-2-byte length prefix of a UTF-8 entry: when
// the high bit of the first byte is set, its low 7 bits are the high word
// of a 15-bit length.
func readLenUTF8(r *binary.Reader) (int, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	n := int(b)
	if n&0x80 != 0 {
		b2, err := r.ReadU8()
		if err != nil {
			return 0, err
		}
		n = (n&0x7f)<<8 | int(b2)
	}
	return n, nil
}

// readLenUTF16 reads the 1-or-2-unit length prefix of a UTF-16 entry,
// mirroring readLenUTF8 with 16-bit halves.
func readLenUTF16(r *binary.Reader) (int, error) {
	u, err := r.ReadU16()
	if err != nil {
		return 0, err
	}
	n := int(u)
	if n&0x8000 != 0 {
		u2, err := r.ReadU16()
		if err != nil {
			return 0, err
		}
		n = (n&0x7fff)<<16 | int(u2)
	}
	return n, nil
}

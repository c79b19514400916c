// Package binary provides a bounds-checked little-endian cursor over an
// immutable byte buffer. All chunk decoding in the module goes through a
// Reader; there is no ambient read position anywhere else.
package binary

import (
	"encoding/binary"

	"github.com/lukhio/axml/errors"
)

// Reader tracks an absolute read position over an immutable byte slice.
// Reads advance the position; a read past the end fails with a
// truncated-buffer error carrying the current offset.
type Reader struct {
	data  []byte
	pos   int
	phase errors.Phase
}

// NewReader creates a Reader over data. The phase is stamped onto every
// error the Reader produces.
func NewReader(data []byte, phase errors.Phase) *Reader {
	return &Reader{data: data, phase: phase}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Len returns the total buffer length.
func (r *Reader) Len() int {
	return len(r.data)
}

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return errors.New(r.phase, errors.KindTruncated).
			Offset(r.pos).
			Detail("seek to %d outside buffer of %d bytes", offset, len(r.data)).
			Build()
	}
	r.pos = offset
	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return errors.Truncated(r.phase, r.pos, n, r.Remaining())
	}
	r.pos += n
	return nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, errors.Truncated(r.phase, r.pos, 1, r.Remaining())
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, errors.Truncated(r.phase, r.pos, 2, r.Remaining())
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, errors.Truncated(r.phase, r.pos, 4, r.Remaining())
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// Slice returns a view of the next n bytes without copying and advances the
// cursor past them.
func (r *Reader) Slice(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.Truncated(r.phase, r.pos, n, r.Remaining())
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

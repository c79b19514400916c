package binxml

import (
	"github.com/lukhio/axml/internal/binary"
)

// ResourceMap is the optional table mapping string pool indices of
// attribute names back to Android resource identifiers. Its absence only
// means attribute names cannot be cross-checked against known IDs.
type ResourceMap struct {
	ids []uint32
}

// Len returns the number of mapped resource identifiers.
func (m *ResourceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// Get returns the resource identifier for string pool index i, and whether
// the map covers that index.
func (m *ResourceMap) Get(i int) (uint32, bool) {
	if m == nil || i < 0 || i >= len(m.ids) {
		return 0, false
	}
	return m.ids[i], true
}

// parseResourceMap decodes a resource map chunk body: a flat array of
// uint32 identifiers filling the chunk after its header.
func parseResourceMap(r *binary.Reader, headerSize uint16, size uint32) (*ResourceMap, error) {
	count := (int(size) - int(headerSize)) / 4
	m := &ResourceMap{ids: make([]uint32, 0, count)}
	for i := 0; i < count; i++ {
		id, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		m.ids = append(m.ids, id)
	}
	return m, nil
}

package binxml

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/lukhio/axml/errors"
	"github.com/lukhio/axml/internal/binary"
)

// chunkHeader is the common header at the start of every chunk.
type chunkHeader struct {
	typ        uint16
	headerSize uint16
	size       uint32
}

// decoder holds the per-invocation state of one decode pass: the cursor,
// the immutable string pool and resource map once seen, and the explicit
// namespace and element stacks. A fresh decoder is built for every Decode
// call, so the package is safe for concurrent use on independent inputs.
type decoder struct {
	r    *binary.Reader
	doc  *Document
	nss  []Namespace // open namespace scopes, innermost last
	elms []*Element  // open elements, innermost last

	// Namespaces opened since the last element start; they attach to the
	// next element, which is where their scope begins.
	pending []Namespace
}

// Decode decodes a compiled binary XML document. The buffer must hold a
// complete document chunk; decoding either fully succeeds or returns the
// first error with no partial result. The decode is a single sequential
// pass, with element nesting tracked on an explicit stack.
func Decode(data []byte) (*Document, error) {
	if isPlainText(data) {
		return nil, errors.InvalidData(errors.PhaseDecode,
			"input is plaintext XML, binary form expected")
	}

	d := &decoder{
		r:   binary.NewReader(data, errors.PhaseDecode),
		doc: &Document{},
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.doc, nil
}

// Some packages ship the manifest in plaintext; that is not a truncated
// binary document, so report it distinctly.
func isPlainText(data []byte) bool {
	return bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<manifest"))
}

func (d *decoder) run() error {
	root, rootStart, err := d.readChunkHeader()
	if err != nil {
		return err
	}
	if root.typ != ResXMLType {
		return errors.InvalidChunk(errors.PhaseDecode, rootStart, root.typ,
			"document does not start with an XML chunk")
	}
	if int(root.size) > d.r.Len() {
		return errors.Truncated(errors.PhaseDecode, rootStart, int(root.size), d.r.Len())
	}
	// The document chunk wraps everything that follows; skip any extra
	// header bytes.
	if err := d.r.Seek(rootStart + int(root.headerSize)); err != nil {
		return err
	}

	end := rootStart + int(root.size)
	for d.r.Position() < end {
		if err := d.chunk(); err != nil {
			return err
		}
	}

	return d.finish()
}

// chunk decodes a single body chunk and leaves the cursor at its end.
func (d *decoder) chunk() error {
	h, start, err := d.readChunkHeader()
	if err != nil {
		return err
	}

	Logger().Debug("chunk",
		zap.Uint16("type", h.typ),
		zap.Int("offset", start),
		zap.Uint32("size", h.size))

	switch h.typ {
	case ResNullType:
		// Padding, nothing to decode.
	case ResStringPoolType:
		if d.doc.Pool != nil {
			return errors.InvalidChunk(errors.PhaseDecode, start, h.typ,
				"duplicate string pool")
		}
		pool, err := parseStringPool(d.r, start, h.size)
		if err != nil {
			return err
		}
		d.doc.Pool = pool
	case ResXMLResourceMapType:
		m, err := parseResourceMap(d.r, h.headerSize, h.size)
		if err != nil {
			return err
		}
		d.doc.Resources = m
	case ResXMLStartNamespaceType:
		err = d.startNamespace()
	case ResXMLEndNamespaceType:
		err = d.endNamespace(start)
	case ResXMLStartElementType:
		err = d.startElement(start, h)
	case ResXMLEndElementType:
		err = d.endElement(start)
	case ResXMLCDataType:
		err = d.cdata(start)
	default:
		// Unknown chunk types are skipped by their declared size; only
		// malformed chunks of recognized types are fatal.
		Logger().Debug("skipping unknown chunk", zap.Uint16("type", h.typ))
	}
	if err != nil {
		return err
	}

	return d.r.Seek(start + int(h.size))
}

// readChunkHeader reads a common chunk header and validates that its
// declared sizes are internally consistent and fit the buffer.
func (d *decoder) readChunkHeader() (chunkHeader, int, error) {
	start := d.r.Position()
	typ, err := d.r.ReadU16()
	if err != nil {
		return chunkHeader{}, start, err
	}
	headerSize, err := d.r.ReadU16()
	if err != nil {
		return chunkHeader{}, start, err
	}
	size, err := d.r.ReadU32()
	if err != nil {
		return chunkHeader{}, start, err
	}

	if headerSize < chunkHeaderSize {
		return chunkHeader{}, start, errors.InvalidChunk(errors.PhaseDecode, start, typ,
			"header size smaller than the common header")
	}
	if size < uint32(headerSize) {
		return chunkHeader{}, start, errors.InvalidChunk(errors.PhaseDecode, start, typ,
			"total size smaller than header size")
	}
	if start+int(size) > d.r.Len() {
		return chunkHeader{}, start, errors.Truncated(errors.PhaseDecode, start, int(size), d.r.Len()-start)
	}

	return chunkHeader{typ: typ, headerSize: headerSize, size: size}, start, nil
}

// readNodeHeader reads the line number and comment reference that follow
// the common header on every XML node chunk.
func (d *decoder) readNodeHeader() (line uint32, err error) {
	line, err = d.r.ReadU32()
	if err != nil {
		return 0, err
	}
	_, err = d.r.ReadI32() // comment index, discarded
	return line, err
}

func (d *decoder) pool() (*StringPool, error) {
	if d.doc.Pool == nil {
		return nil, errors.InvalidData(errors.PhaseDecode,
			"XML node chunk before the string pool")
	}
	return d.doc.Pool, nil
}

func (d *decoder) startNamespace() error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	if _, err := d.readNodeHeader(); err != nil {
		return err
	}
	prefixIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	uriIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}

	prefix, err := pool.ref(prefixIdx)
	if err != nil {
		return err
	}
	uri, err := pool.ref(uriIdx)
	if err != nil {
		return err
	}

	ns := Namespace{Prefix: prefix, URI: uri}
	d.nss = append(d.nss, ns)
	d.pending = append(d.pending, ns)
	return nil
}

func (d *decoder) endNamespace(start int) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	if _, err := d.readNodeHeader(); err != nil {
		return err
	}
	prefixIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	uriIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}

	prefix, err := pool.ref(prefixIdx)
	if err != nil {
		return err
	}
	uri, err := pool.ref(uriIdx)
	if err != nil {
		return err
	}

	if len(d.nss) == 0 {
		return errors.UnbalancedNamespace(start, "end of namespace "+prefix+" with none open")
	}
	top := d.nss[len(d.nss)-1]
	if top.Prefix != prefix || top.URI != uri {
		return errors.UnbalancedNamespace(start,
			"end of namespace "+prefix+" does not match open namespace "+top.Prefix)
	}
	d.nss = d.nss[:len(d.nss)-1]

	// A namespace closed before any element consumed it never had a scope.
	if n := len(d.pending); n > 0 && d.pending[n-1] == top {
		d.pending = d.pending[:n-1]
	}
	return nil
}

func (d *decoder) startElement(start int, h chunkHeader) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	line, err := d.readNodeHeader()
	if err != nil {
		return err
	}

	nsIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	nameIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	attrStart, err := d.r.ReadU16()
	if err != nil {
		return err
	}
	attrSize, err := d.r.ReadU16()
	if err != nil {
		return err
	}
	attrCount, err := d.r.ReadU16()
	if err != nil {
		return err
	}
	// id, class and style attribute indices are not needed for rendering.
	for i := 0; i < 3; i++ {
		if _, err := d.r.ReadU16(); err != nil {
			return err
		}
	}

	name, err := pool.Get(int(nameIdx))
	if err != nil {
		return err
	}
	uri, err := pool.ref(nsIdx)
	if err != nil {
		return err
	}

	el := &Element{
		Name:       name,
		URI:        uri,
		Line:       line,
		Namespaces: d.pending,
		nsIndex:    nsIdx,
		nameIndex:  nameIdx,
	}
	d.pending = nil

	// Attribute records start at attrStart past the node header and are
	// attrSize bytes apart; record sizes larger than the fields we read
	// are tolerated for forward compatibility.
	base := start + int(h.headerSize) + int(attrStart)
	for i := 0; i < int(attrCount); i++ {
		if err := d.r.Seek(base + i*int(attrSize)); err != nil {
			return err
		}
		attr, err := d.attribute(pool)
		if err != nil {
			return err
		}
		el.Attrs = append(el.Attrs, attr)
	}

	if len(d.elms) == 0 {
		if d.doc.Root != nil {
			return errors.InvalidData(errors.PhaseDecode,
				"second root element "+name)
		}
		d.doc.Root = el
	} else {
		parent := d.elms[len(d.elms)-1]
		parent.Children = append(parent.Children, el)
	}
	d.elms = append(d.elms, el)
	return nil
}

// attribute reads one attribute record: namespace, name and raw value pool
// references plus the typed value. The raw string is authoritative when
// present, otherwise the typed value is resolved.
func (d *decoder) attribute(pool *StringPool) (Attribute, error) {
	nsIdx, err := d.r.ReadI32()
	if err != nil {
		return Attribute{}, err
	}
	nameIdx, err := d.r.ReadI32()
	if err != nil {
		return Attribute{}, err
	}
	rawIdx, err := d.r.ReadI32()
	if err != nil {
		return Attribute{}, err
	}
	val, err := readValue(d.r)
	if err != nil {
		return Attribute{}, err
	}

	name, err := pool.Get(int(nameIdx))
	if err != nil {
		return Attribute{}, err
	}
	uri, err := pool.ref(nsIdx)
	if err != nil {
		return Attribute{}, err
	}

	var rendered string
	if rawIdx != nilIndex {
		rendered, err = pool.Get(int(rawIdx))
	} else {
		rendered, err = val.Resolve(pool)
	}
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{Name: name, URI: uri, Value: rendered, Raw: val}, nil
}

func (d *decoder) endElement(start int) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	if _, err := d.readNodeHeader(); err != nil {
		return err
	}
	nsIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	nameIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}

	if len(d.elms) == 0 {
		name, _ := pool.ref(nameIdx)
		return errors.UnbalancedElement(start, "end of element "+name+" with none open")
	}
	top := d.elms[len(d.elms)-1]
	if top.nameIndex != nameIdx || top.nsIndex != nsIdx {
		name, _ := pool.ref(nameIdx)
		return errors.UnbalancedElement(start,
			"end of element "+name+" does not match open element "+top.Name)
	}
	d.elms = d.elms[:len(d.elms)-1]
	return nil
}

func (d *decoder) cdata(start int) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	if _, err := d.readNodeHeader(); err != nil {
		return err
	}
	dataIdx, err := d.r.ReadI32()
	if err != nil {
		return err
	}
	if _, err := readValue(d.r); err != nil {
		return err
	}

	if len(d.elms) == 0 {
		return errors.InvalidData(errors.PhaseDecode,
			"character data outside any element")
	}
	text, err := pool.ref(dataIdx)
	if err != nil {
		return err
	}
	d.elms[len(d.elms)-1].Text += text
	return nil
}

// finish validates the terminal state: all namespaces and elements closed
// and a root element present.
func (d *decoder) finish() error {
	if len(d.elms) > 0 {
		return errors.UnbalancedElement(d.r.Position(),
			"element "+d.elms[len(d.elms)-1].Name+" still open at end of input")
	}
	if len(d.nss) > 0 {
		return errors.UnbalancedNamespace(d.r.Position(),
			"namespace "+d.nss[len(d.nss)-1].Prefix+" still open at end of input")
	}
	if d.doc.Root == nil {
		return errors.InvalidData(errors.PhaseDecode, "document has no root element")
	}
	return nil
}

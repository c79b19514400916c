package binxml_test

import (
	"encoding/binary"

	"github.com/lukhio/axml/binxml"
)

// Fixture builders for hand-assembled binary XML documents. All chunks use
// the layouts from frameworks/base ResourceTypes.h with little-endian
// fields; string pools are built UTF-8 with single-byte length prefixes.

const noEntry = int32(-1)

func u16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }
func u32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }
func i32(b []byte, v int32) []byte  { return binary.LittleEndian.AppendUint32(b, uint32(v)) }

// chunk prefixes a body with a common chunk header.
func chunk(typ, headerSize uint16, body []byte) []byte {
	out := u16(nil, typ)
	out = u16(out, headerSize)
	out = u32(out, uint32(chunkHeaderLen+len(body)))
	return append(out, body...)
}

const chunkHeaderLen = 8

func poolFixture(strs ...string) []byte {
	var data []byte
	body := u32(nil, uint32(len(strs)))
	body = u32(body, 0)               // styleCount
	body = u32(body, 1<<8)            // UTF-8 flag
	stringsStart := 28 + 4*len(strs)  // header + offset array
	body = u32(body, uint32(stringsStart))
	body = u32(body, 0) // stylesStart

	for _, s := range strs {
		body = u32(body, uint32(len(data)))
		data = append(data, byte(len(s)), byte(len(s)))
		data = append(data, s...)
		data = append(data, 0)
	}
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	return chunk(binxml.ResStringPoolType, 28, append(body, data...))
}

func resourceMapFixture(ids ...uint32) []byte {
	var body []byte
	for _, id := range ids {
		body = u32(body, id)
	}
	return chunk(binxml.ResXMLResourceMapType, 8, body)
}

// nodeBody starts every XML node chunk: line number and comment reference.
func nodeBody(line uint32) []byte {
	body := u32(nil, line)
	return i32(body, noEntry)
}

func startNamespaceFixture(prefixIdx, uriIdx int32) []byte {
	body := nodeBody(1)
	body = i32(body, prefixIdx)
	body = i32(body, uriIdx)
	return chunk(binxml.ResXMLStartNamespaceType, 16, body)
}

func endNamespaceFixture(prefixIdx, uriIdx int32) []byte {
	body := nodeBody(1)
	body = i32(body, prefixIdx)
	body = i32(body, uriIdx)
	return chunk(binxml.ResXMLEndNamespaceType, 16, body)
}

type attrFixture struct {
	ns, name, raw int32
	typ           uint8
	data          uint32
}

func startElementFixture(nsIdx, nameIdx int32, attrs ...attrFixture) []byte {
	body := nodeBody(1)
	body = i32(body, nsIdx)
	body = i32(body, nameIdx)
	body = u16(body, 20) // attrStart, right after this fixed part
	body = u16(body, 20) // attrSize
	body = u16(body, uint16(len(attrs)))
	body = u16(body, 0) // id index
	body = u16(body, 0) // class index
	body = u16(body, 0) // style index
	for _, a := range attrs {
		body = i32(body, a.ns)
		body = i32(body, a.name)
		body = i32(body, a.raw)
		body = u16(body, 8) // value size
		body = append(body, 0, a.typ)
		body = u32(body, a.data)
	}
	return chunk(binxml.ResXMLStartElementType, 16, body)
}

func endElementFixture(nsIdx, nameIdx int32) []byte {
	body := nodeBody(1)
	body = i32(body, nsIdx)
	body = i32(body, nameIdx)
	return chunk(binxml.ResXMLEndElementType, 16, body)
}

func cdataFixture(dataIdx int32) []byte {
	body := nodeBody(1)
	body = i32(body, dataIdx)
	body = u16(body, 8) // trailing typed value, unused
	body = append(body, 0, binxml.TypeNull)
	body = u32(body, 0)
	return chunk(binxml.ResXMLCDataType, 16, body)
}

// docFixture wraps body chunks in a document chunk.
func docFixture(chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	return chunk(binxml.ResXMLType, 8, body)
}

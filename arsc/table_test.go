package arsc

import (
	"encoding/binary"
	stderrors "errors"
	"testing"
	"unicode/utf16"

	"github.com/lukhio/axml/binxml"
	"github.com/lukhio/axml/errors"
)

func u16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }
func u32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }

func chunkBytes(typ, headerSize uint16, body []byte) []byte {
	out := u16(nil, typ)
	out = u16(out, headerSize)
	out = u32(out, uint32(8+len(body)))
	return append(out, body...)
}

// poolBytes builds a UTF-8 string pool chunk.
func poolBytes(strs ...string) []byte {
	var data []byte
	body := u32(nil, uint32(len(strs)))
	body = u32(body, 0)    // styleCount
	body = u32(body, 1<<8) // UTF-8 flag
	body = u32(body, uint32(28+4*len(strs)))
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
	return chunkBytes(binxml.ResStringPoolType, 28, append(body, data...))
}

// packageBytes builds a package chunk: fixed header, then the type and key
// pools, then any extra chunks.
func packageBytes(id uint32, name string, typePool, keyPool []byte, extra ...[]byte) []byte {
	const headerSize = 284 // common header + id + 128-unit name + 4 offsets

	header := u32(nil, id)
	units := utf16.Encode([]rune(name))
	for i := 0; i < 128; i++ {
		var u uint16
		if i < len(units) {
			u = units[i]
		}
		header = u16(header, u)
	}
	header = u32(header, headerSize)                      // typeStrings offset
	header = u32(header, 0)                               // lastPublicType
	header = u32(header, headerSize+uint32(len(typePool))) // keyStrings offset
	header = u32(header, 0)                               // lastPublicKey

	body := append(header, typePool...)
	body = append(body, keyPool...)
	for _, c := range extra {
		body = append(body, c...)
	}
	return chunkBytes(binxml.ResTablePackageType, headerSize, body)
}

func tableBytes(packageCount uint32, chunks ...[]byte) []byte {
	body := u32(nil, packageCount)
	for _, c := range chunks {
		body = append(body, c...)
	}
	return chunkBytes(binxml.ResTableType, 12, body)
}

func sampleTable() []byte {
	spec := chunkBytes(binxml.ResTableTypeSpecType, 16,
		append([]byte{0x01, 0, 0, 0, 0, 0, 0, 0}, u32(nil, 0)...))
	typ := chunkBytes(binxml.ResTableTypeType, 20,
		[]byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	pkg := packageBytes(0x7f, "com.example",
		poolBytes("attr", "string"),
		poolBytes("app_name", "hello"),
		spec, typ, typ)
	return tableBytes(1, poolBytes("Hello world"), pkg)
}

func TestParseTable(t *testing.T) {
	table, err := Parse(sampleTable())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if table.Strings == nil || table.Strings.Size() != 1 {
		t.Fatalf("global pool: %+v", table.Strings)
	}
	if s, err := table.Strings.Get(0); err != nil || s != "Hello world" {
		t.Errorf("global string: got %q, %v", s, err)
	}

	if len(table.Packages) != 1 {
		t.Fatalf("packages: got %d, want 1", len(table.Packages))
	}
	pkg := table.Packages[0]
	if pkg.ID != 0x7f {
		t.Errorf("package id: got %#x", pkg.ID)
	}
	if pkg.Name != "com.example" {
		t.Errorf("package name: got %q", pkg.Name)
	}
	if s, err := pkg.TypeNames.Get(1); err != nil || s != "string" {
		t.Errorf("type name: got %q, %v", s, err)
	}
	if s, err := pkg.KeyNames.Get(0); err != nil || s != "app_name" {
		t.Errorf("key name: got %q, %v", s, err)
	}
	if pkg.SpecChunks != 1 || pkg.TypeChunks != 2 {
		t.Errorf("chunk counts: got %d specs, %d types", pkg.SpecChunks, pkg.TypeChunks)
	}
}

func TestParsePackageCountMismatch(t *testing.T) {
	data := tableBytes(2, poolBytes("only"))
	_, err := Parse(data)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseTable, Kind: errors.KindInvalidData}) {
		t.Errorf("expected invalid_data, got %v", err)
	}
}

func TestParseNotATable(t *testing.T) {
	_, err := Parse(chunkBytes(binxml.ResXMLType, 8, nil))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseTable, Kind: errors.KindInvalidChunk}) {
		t.Errorf("expected invalid_chunk, got %v", err)
	}
}

func TestParseTruncated(t *testing.T) {
	data := sampleTable()
	_, err := Parse(data[:len(data)/2])
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseTable, Kind: errors.KindTruncated}) {
		t.Errorf("expected truncated_buffer, got %v", err)
	}
}

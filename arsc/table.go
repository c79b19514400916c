package arsc

import (
	"unicode/utf16"

	"github.com/lukhio/axml/binxml"
	"github.com/lukhio/axml/errors"
	"github.com/lukhio/axml/internal/binary"
)

// packageNameUnits is the fixed size of the package name field, in UTF-16
// code units.
const packageNameUnits = 128

// Table is a decoded resource table.
type Table struct {
	// Strings holds the values of every string resource in the table.
	Strings *binxml.StringPool

	Packages []Package
}

// Package is one resource package in the table. Application resources
// normally live in a single package with ID 0x7f.
type Package struct {
	ID   uint32
	Name string

	// TypeNames and KeyNames index the type and entry-name halves of
	// resource identifiers within this package.
	TypeNames *binxml.StringPool
	KeyNames  *binxml.StringPool

	// TypeChunks and SpecChunks count the configuration and spec chunks
	// seen in the package, one type chunk per (type, configuration) pair.
	TypeChunks int
	SpecChunks int
}

// Parse decodes a resource table. The buffer must hold the complete table;
// nested chunk types the decoder does not model are skipped by their
// declared size.
func Parse(data []byte) (*Table, error) {
	r := binary.NewReader(data, errors.PhaseTable)

	root, rootStart, err := readChunkHeader(r)
	if err != nil {
		return nil, err
	}
	if root.typ != binxml.ResTableType {
		return nil, errors.InvalidChunk(errors.PhaseTable, rootStart, root.typ,
			"document does not start with a resource table chunk")
	}
	if int(root.size) > r.Len() {
		return nil, errors.Truncated(errors.PhaseTable, rootStart, int(root.size), r.Len())
	}

	packageCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if err := r.Seek(rootStart + int(root.headerSize)); err != nil {
		return nil, err
	}

	table := &Table{}
	end := rootStart + int(root.size)
	for r.Position() < end {
		h, start, err := readChunkHeader(r)
		if err != nil {
			return nil, err
		}

		switch h.typ {
		case binxml.ResStringPoolType:
			if table.Strings != nil {
				return nil, errors.InvalidChunk(errors.PhaseTable, start, h.typ,
					"duplicate global string pool")
			}
			pool, err := binxml.ParsePool(data[start : start+int(h.size)])
			if err != nil {
				return nil, err
			}
			table.Strings = pool
		case binxml.ResTablePackageType:
			pkg, err := parsePackage(data, r, start, h)
			if err != nil {
				return nil, err
			}
			table.Packages = append(table.Packages, pkg)
		default:
			// Library chunks and future additions are skipped.
		}

		if err := r.Seek(start + int(h.size)); err != nil {
			return nil, err
		}
	}

	if int(packageCount) != len(table.Packages) {
		return nil, errors.InvalidData(errors.PhaseTable,
			"package count does not match the packages present")
	}
	return table, nil
}

// parsePackage decodes one package chunk. The reader sits just past the
// common header; start and h frame the chunk.
func parsePackage(data []byte, r *binary.Reader, start int, h chunkHeader) (Package, error) {
	id, err := r.ReadU32()
	if err != nil {
		return Package{}, err
	}
	name, err := readPackageName(r)
	if err != nil {
		return Package{}, err
	}
	typeStrings, err := r.ReadU32()
	if err != nil {
		return Package{}, err
	}
	if _, err := r.ReadU32(); err != nil { // lastPublicType
		return Package{}, err
	}
	keyStrings, err := r.ReadU32()
	if err != nil {
		return Package{}, err
	}

	pkg := Package{ID: id, Name: name}
	end := start + int(h.size)

	if typeStrings != 0 {
		pool, err := poolAt(data, start, int(typeStrings), end)
		if err != nil {
			return Package{}, err
		}
		pkg.TypeNames = pool
	}
	if keyStrings != 0 {
		pool, err := poolAt(data, start, int(keyStrings), end)
		if err != nil {
			return Package{}, err
		}
		pkg.KeyNames = pool
	}

	// Walk the package body for spec and type chunks, skipping the pools
	// the offsets above already covered.
	if err := r.Seek(start + int(h.headerSize)); err != nil {
		return Package{}, err
	}
	for r.Position() < end {
		ch, chunkStart, err := readChunkHeader(r)
		if err != nil {
			return Package{}, err
		}
		switch ch.typ {
		case binxml.ResTableTypeType:
			pkg.TypeChunks++
		case binxml.ResTableTypeSpecType:
			pkg.SpecChunks++
		}
		if err := r.Seek(chunkStart + int(ch.size)); err != nil {
			return Package{}, err
		}
	}

	return pkg, nil
}

// poolAt decodes a string pool at a package-relative offset.
func poolAt(data []byte, pkgStart, offset, pkgEnd int) (*binxml.StringPool, error) {
	at := pkgStart + offset
	if at < pkgStart || at >= pkgEnd {
		return nil, errors.InvalidData(errors.PhaseTable,
			"string pool offset outside its package chunk")
	}
	return binxml.ParsePool(data[at:pkgEnd])
}

// readPackageName decodes the fixed 128-unit, NUL-terminated UTF-16 package
// name field.
func readPackageName(r *binary.Reader) (string, error) {
	units := make([]uint16, 0, packageNameUnits)
	for i := 0; i < packageNameUnits; i++ {
		u, err := r.ReadU16()
		if err != nil {
			return "", err
		}
		units = append(units, u)
	}
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units)), nil
}

type chunkHeader struct {
	typ        uint16
	headerSize uint16
	size       uint32
}

func readChunkHeader(r *binary.Reader) (chunkHeader, int, error) {
	start := r.Position()
	typ, err := r.ReadU16()
	if err != nil {
		return chunkHeader{}, start, err
	}
	headerSize, err := r.ReadU16()
	if err != nil {
		return chunkHeader{}, start, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return chunkHeader{}, start, err
	}

	if headerSize < 8 {
		return chunkHeader{}, start, errors.InvalidChunk(errors.PhaseTable, start, typ,
			"header size smaller than the common header")
	}
	if size < uint32(headerSize) {
		return chunkHeader{}, start, errors.InvalidChunk(errors.PhaseTable, start, typ,
			"total size smaller than header size")
	}
	if start+int(size) > r.Len() {
		return chunkHeader{}, start, errors.Truncated(errors.PhaseTable, start, int(size), r.Len()-start)
	}
	return chunkHeader{typ: typ, headerSize: headerSize, size: size}, start, nil
}

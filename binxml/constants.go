package binxml

// Chunk type identifiers, from frameworks/base ResourceTypes.h. Only the
// types that can appear in a compiled XML document or a resource table.
const (
	ResNullType       uint16 = 0x0000
	ResStringPoolType uint16 = 0x0001
	ResTableType      uint16 = 0x0002
	ResXMLType        uint16 = 0x0003

	// Chunk types nested inside ResXMLType
	ResXMLFirstChunkType     uint16 = 0x0100
	ResXMLStartNamespaceType uint16 = 0x0100
	ResXMLEndNamespaceType   uint16 = 0x0101
	ResXMLStartElementType   uint16 = 0x0102
	ResXMLEndElementType     uint16 = 0x0103
	ResXMLCDataType          uint16 = 0x0104
	ResXMLLastChunkType      uint16 = 0x017f

	// Maps string pool indices of attribute names back to resource
	// identifiers. Optional.
	ResXMLResourceMapType uint16 = 0x0180

	// Chunk types nested inside ResTableType
	ResTablePackageType  uint16 = 0x0200
	ResTableTypeType     uint16 = 0x0201
	ResTableTypeSpecType uint16 = 0x0202
	ResTableLibraryType  uint16 = 0x0203
)

// chunkHeaderSize is the fixed size of the common chunk header:
// type u16, headerSize u16, size u32.
const chunkHeaderSize = 8

// Typed value tags (Res_value dataType). The data word is interpreted
// according to the tag.
const (
	// TypeNull data is 0 (undefined) or 1 (empty)
	TypeNull uint8 = 0x00
	// TypeReference data is a reference to another resource table entry
	TypeReference uint8 = 0x01
	// TypeAttribute data is an attribute resource identifier
	TypeAttribute uint8 = 0x02
	// TypeString data is an index into the containing string pool
	TypeString uint8 = 0x03
	// TypeFloat data is a single-precision float, bit for bit
	TypeFloat uint8 = 0x04
	// TypeDimension data is a complex number encoding a dimension, e.g. "100in"
	TypeDimension uint8 = 0x05
	// TypeFraction data is a complex number encoding a fraction of a container
	TypeFraction uint8 = 0x06
	// TypeDynamicReference data is a reference that must be resolved first
	TypeDynamicReference uint8 = 0x07
	// TypeDynamicAttribute data is an attribute identifier that must be resolved first
	TypeDynamicAttribute uint8 = 0x08

	TypeFirstInt uint8 = 0x10

	// TypeIntDec data is a raw integer rendered in decimal
	TypeIntDec uint8 = 0x10
	// TypeIntHex data is a raw integer rendered as 0xn..n
	TypeIntHex uint8 = 0x11
	// TypeIntBoolean data is 0 for "false", anything else for "true"
	TypeIntBoolean uint8 = 0x12

	TypeFirstColorInt uint8 = 0x1c

	// TypeIntColorARGB8 data is a #aarrggbb color
	TypeIntColorARGB8 uint8 = 0x1c
	// TypeIntColorRGB8 data is a #rrggbb color
	TypeIntColorRGB8 uint8 = 0x1d
	// TypeIntColorARGB4 data is a #argb color
	TypeIntColorARGB4 uint8 = 0x1e
	// TypeIntColorRGB4 data is a #rgb color
	TypeIntColorRGB4 uint8 = 0x1f

	TypeLastColorInt uint8 = 0x1f
	TypeLastInt      uint8 = 0x1f
)

// Complex value layout used by TypeDimension and TypeFraction: a signed
// 24-bit mantissa in the top bits, a radix selector in bits 4..5 and a unit
// selector in bits 0..3.
const (
	complexMantissaShift = 8
	complexMantissaMask  = 0xffffff
	complexRadixShift    = 4
	complexRadixMask     = 0x3
	complexUnitShift     = 0
	complexUnitMask      = 0xf
)

// nilIndex is the -1 sentinel for "no string" in namespace, name and raw
// value fields.
const nilIndex int32 = -1

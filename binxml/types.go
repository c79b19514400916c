package binxml

// Document is the result of decoding a binary XML buffer: the element tree
// plus the string pool and optional resource map it was decoded against.
// A Document is immutable once Decode returns.
type Document struct {
	Root      *Element
	Pool      *StringPool
	Resources *ResourceMap
}

// Namespace is a prefix-to-URI binding introduced by a start-namespace
// chunk and retired by the matching end-namespace chunk.
type Namespace struct {
	Prefix string
	URI    string
}

// Element is one decoded XML element. Namespace declarations attached here
// are the ones whose scope opened immediately before this element; they are
// emitted on this element when serializing.
type Element struct {
	Name       string
	URI        string // namespace URI, "" when unqualified
	Line       uint32
	Namespaces []Namespace
	Attrs      []Attribute
	Children   []*Element
	Text       string

	// Raw pool indices, kept for balance checking against the end chunk.
	nsIndex   int32
	nameIndex int32
}

// Attribute is one decoded attribute. Value is the rendered textual form:
// the raw string when the record carries one, otherwise the resolved typed
// value. Raw preserves the underlying typed record.
type Attribute struct {
	Name  string
	URI   string // namespace URI, "" when unqualified
	Value string
	Raw   Value
}

// Value is the 8-byte typed value record: a type tag and a 32-bit data word
// whose interpretation depends on the tag.
type Value struct {
	Size uint16
	Type uint8
	Data uint32
}

// Package binxml decodes Android compiled binary XML documents.
//
// The compiled format is a stream of self-describing chunks: a document
// chunk wrapping a string pool, an optional resource map, and the XML body
// as namespace, element and character data chunks. All strings are interned
// in the pool and referenced by index; attribute values are 8-byte typed
// records resolved to the textual form Android tooling produces.
//
// # Decoding
//
// Decode a manifest into a Document and render it:
//
//	doc, err := binxml.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.XML(binxml.SerializeOptions{Indent: "    "}))
//
// Decoding is a single sequential pass over an immutable buffer. Element
// nesting is reconstructed on an explicit stack, so adversarially deep
// documents cannot exhaust the control stack. A decode either fully
// succeeds or fails with a structured error from the errors package; there
// is no partial result.
//
// Chunk types the decoder does not recognize are skipped using their
// declared size. Malformed chunks of recognized types are fatal.
//
// Style span data attached to string pool entries is skipped, not decoded:
// no consumer of manifest text needs bold/italic spans.
package binxml

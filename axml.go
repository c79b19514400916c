package axml

import (
	"github.com/lukhio/axml/apk"
	"github.com/lukhio/axml/binxml"
)

// Decode decodes a compiled binary XML document.
func Decode(data []byte) (*binxml.Document, error) {
	return binxml.Decode(data)
}

// DecodeXML decodes a compiled binary XML document and renders it as
// indented XML text.
func DecodeXML(data []byte) (string, error) {
	doc, err := binxml.Decode(data)
	if err != nil {
		return "", err
	}
	return doc.XML(binxml.SerializeOptions{Indent: "    "}), nil
}

// DecodeAPK extracts the compiled manifest from the APK at path and renders
// it as indented XML text.
func DecodeAPK(path string) (string, error) {
	data, err := apk.Manifest(path)
	if err != nil {
		return "", err
	}
	return DecodeXML(data)
}

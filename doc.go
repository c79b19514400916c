// Package axml decodes Android binary XML, the compiled form of
// AndroidManifest.xml and the other XML resources inside an APK.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	axml/                Root package with convenience entry points
//	├── binxml/          Binary XML chunk decoding and XML serialization
//	├── arsc/            Compiled resource table (resources.arsc) decoding
//	├── apk/             Archive extraction of compiled resources
//	├── errors/          Structured error types for debugging
//	└── cmd/axml/        Command line decoder and interactive browser
//
// # Quick Start
//
// Decode a compiled manifest already in memory:
//
//	doc, err := axml.Decode(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(doc.XML(binxml.SerializeOptions{Indent: "    "}))
//
// Or extract and decode straight from the package:
//
//	xml, err := axml.DecodeAPK("app.apk")
//
// Decoding is a single pass over the buffer and either fully succeeds or
// returns a structured error naming the phase, the failure kind and the
// byte offset where decoding stopped.
package axml

package binxml_test

import (
	"strings"
	"testing"

	"github.com/lukhio/axml/binxml"
)

func TestSerializeEscaping(t *testing.T) {
	doc := &binxml.Document{
		Root: &binxml.Element{
			Name: "data",
			Attrs: []binxml.Attribute{
				{Name: "value", Value: `a<b&"c"`},
			},
			Text: "x < y & z",
		},
	}

	got := doc.XML(binxml.SerializeOptions{})
	want := `<data value="a&lt;b&amp;&quot;c&quot;">x &lt; y &amp; z</data>`
	if got != want {
		t.Errorf("XML:\n got %s\nwant %s", got, want)
	}
}

func TestSerializeSelfClosing(t *testing.T) {
	doc := &binxml.Document{Root: &binxml.Element{Name: "uses-sdk"}}

	if got := doc.XML(binxml.SerializeOptions{}); got != "<uses-sdk/>" {
		t.Errorf("XML: got %s", got)
	}
}

func TestSerializeDefaultNamespace(t *testing.T) {
	doc := &binxml.Document{
		Root: &binxml.Element{
			Name: "manifest",
			Namespaces: []binxml.Namespace{
				{Prefix: "", URI: "urn:example"},
			},
		},
	}

	got := doc.XML(binxml.SerializeOptions{})
	want := `<manifest xmlns="urn:example"/>`
	if got != want {
		t.Errorf("XML:\n got %s\nwant %s", got, want)
	}
}

func TestSerializeUnboundNamespaceDegrades(t *testing.T) {
	// A URI with no prefix binding in scope renders as the bare local name
	// rather than inventing a prefix.
	doc := &binxml.Document{
		Root: &binxml.Element{
			Name: "manifest",
			Attrs: []binxml.Attribute{
				{Name: "versionCode", URI: "urn:unbound", Value: "1"},
			},
		},
	}

	got := doc.XML(binxml.SerializeOptions{})
	want := `<manifest versionCode="1"/>`
	if got != want {
		t.Errorf("XML:\n got %s\nwant %s", got, want)
	}
}

func TestSerializeNestedScopes(t *testing.T) {
	// The inner binding shadows the outer one for the subtree it covers.
	doc := &binxml.Document{
		Root: &binxml.Element{
			Name: "root",
			Namespaces: []binxml.Namespace{
				{Prefix: "a", URI: "urn:one"},
			},
			Children: []*binxml.Element{
				{
					Name: "child",
					URI:  "urn:one",
					Namespaces: []binxml.Namespace{
						{Prefix: "b", URI: "urn:one"},
					},
				},
			},
		},
	}

	got := doc.XML(binxml.SerializeOptions{})
	if !strings.Contains(got, "<b:child") {
		t.Errorf("inner binding not used: %s", got)
	}
}

func TestSerializeIndented(t *testing.T) {
	doc := &binxml.Document{
		Root: &binxml.Element{
			Name: "manifest",
			Children: []*binxml.Element{
				{Name: "uses-sdk"},
				{Name: "application", Text: "inline"},
			},
		},
	}

	got := doc.XML(binxml.SerializeOptions{Indent: "  "})
	want := "<manifest>\n" +
		"  <uses-sdk/>\n" +
		"  <application>inline</application>\n" +
		"</manifest>\n"
	if got != want {
		t.Errorf("XML:\n got %q\nwant %q", got, want)
	}
}

func TestWriteXMLEmptyDocument(t *testing.T) {
	var sb strings.Builder
	doc := &binxml.Document{}
	if err := doc.WriteXML(&sb, binxml.SerializeOptions{}); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if sb.String() != "" {
		t.Errorf("empty document rendered %q", sb.String())
	}
}

package binxml

import (
	"bytes"
	"io"
	"strings"
)

// SerializeOptions controls XML text output. An empty Indent renders the
// whole document on one line; otherwise each nesting level is indented by
// one copy of Indent.
type SerializeOptions struct {
	Indent string
}

// XML renders the document as XML text. The entire document is rendered
// into memory; a Document only exists after a fully successful decode, so
// output is never partial.
func (d *Document) XML(opts SerializeOptions) string {
	var buf bytes.Buffer
	d.WriteXML(&buf, opts) // bytes.Buffer writes cannot fail
	return buf.String()
}

// WriteXML renders the document as XML text to w.
//
// Namespace declarations are emitted on the element that opened their
// scope, which for well-formed Android documents is the element immediately
// following the start-namespace chunk. Attribute values and character data
// are XML-escaped; elements with no children and no text self-close.
func (d *Document) WriteXML(w io.Writer, opts SerializeOptions) error {
	s := serializer{w: w, indent: opts.Indent}
	if d.Root != nil {
		if err := s.element(d.Root); err != nil {
			return err
		}
	}
	if opts.Indent != "" {
		if err := s.write("\n"); err != nil {
			return err
		}
	}
	return nil
}

type serializer struct {
	w      io.Writer
	indent string
	scopes []Namespace // in-scope prefix bindings, innermost last
}

// frame tracks one open element while walking the tree iteratively; next is
// the index of its next unvisited child.
type frame struct {
	el   *Element
	next int
}

// element walks the subtree rooted at el with an explicit stack, matching
// the decoder's tolerance for deep nesting.
func (s *serializer) element(root *Element) error {
	stack := []frame{}

	open := func(el *Element, depth int) (selfClosed bool, err error) {
		if err := s.openTag(el, depth); err != nil {
			return false, err
		}
		if len(el.Children) == 0 && el.Text == "" {
			if err := s.write("/>"); err != nil {
				return false, err
			}
			return true, nil
		}
		if err := s.write(">"); err != nil {
			return false, err
		}
		if el.Text != "" {
			if len(el.Children) > 0 {
				if err := s.newline(depth + 1); err != nil {
					return false, err
				}
			}
			if err := s.write(escapeText(el.Text)); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	closed, err := open(root, 0)
	if err != nil {
		return err
	}
	if closed {
		return nil
	}
	s.pushScope(root)
	stack = append(stack, frame{el: root})

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		depth := len(stack) - 1

		if f.next < len(f.el.Children) {
			child := f.el.Children[f.next]
			f.next++
			if err := s.newline(depth + 1); err != nil {
				return err
			}
			closed, err := open(child, depth+1)
			if err != nil {
				return err
			}
			if !closed {
				s.pushScope(child)
				stack = append(stack, frame{el: child})
			}
			continue
		}

		// All children done; close the element. Inline the close tag when
		// the element held only text.
		if len(f.el.Children) > 0 {
			if err := s.newline(depth); err != nil {
				return err
			}
		}
		if err := s.write("</" + s.qualified(f.el.URI, f.el.Name) + ">"); err != nil {
			return err
		}
		s.popScope(f.el)
		stack = stack[:len(stack)-1]
	}
	return nil
}

// openTag writes the start tag up to, but not including, its closing ">"
// or "/>": name, namespace declarations, then attributes.
func (s *serializer) openTag(el *Element, depth int) error {
	// Declarations must be in scope while qualifying the element's own
	// name and attributes.
	s.pushScope(el)
	defer s.popScope(el)

	if err := s.write("<" + s.qualified(el.URI, el.Name)); err != nil {
		return err
	}
	for _, ns := range el.Namespaces {
		decl := ` xmlns:` + ns.Prefix + `="` + escapeAttr(ns.URI) + `"`
		if ns.Prefix == "" {
			decl = ` xmlns="` + escapeAttr(ns.URI) + `"`
		}
		if err := s.write(decl); err != nil {
			return err
		}
	}
	for _, attr := range el.Attrs {
		a := " " + s.qualified(attr.URI, attr.Name) + `="` + escapeAttr(attr.Value) + `"`
		if err := s.write(a); err != nil {
			return err
		}
	}
	return nil
}

// qualified resolves a namespace URI to its in-scope prefix. A URI with no
// binding degrades to the bare local name.
func (s *serializer) qualified(uri, name string) string {
	if uri == "" {
		return name
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if s.scopes[i].URI == uri && s.scopes[i].Prefix != "" {
			return s.scopes[i].Prefix + ":" + name
		}
	}
	return name
}

func (s *serializer) pushScope(el *Element) {
	s.scopes = append(s.scopes, el.Namespaces...)
}

func (s *serializer) popScope(el *Element) {
	s.scopes = s.scopes[:len(s.scopes)-len(el.Namespaces)]
}

func (s *serializer) newline(depth int) error {
	if s.indent == "" {
		return nil
	}
	return s.write("\n" + strings.Repeat(s.indent, depth))
}

func (s *serializer) write(str string) error {
	_, err := io.WriteString(s.w, str)
	return err
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

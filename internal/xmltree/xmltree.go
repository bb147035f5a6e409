// Package xmltree is a minimal element tree over encoding/xml. It keeps
// attribute and child order, which the segmentation writer relies on for
// schema declaration order.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrCharset reports an XML encoding label that cannot be written or read.
var ErrCharset = errors.New("xmltree: unsupported charset")

// Attr is a name/value pair on an element.
type Attr struct {
	Name  string
	Value string
}

// Node is an element with ordered attributes, child elements and the
// concatenated character data found directly inside it.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// New returns an element with the given name.
func New(name string) *Node { return &Node{Name: name} }

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Add appends a child element and returns it.
func (n *Node) Add(name string) *Node {
	c := New(name)
	n.Children = append(n.Children, c)
	return c
}

// AddText appends a child holding only text.
func (n *Node) AddText(name, text string) *Node {
	c := n.Add(name)
	c.Text = text
	return c
}

// Append attaches existing nodes as children.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// Child returns the first child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name, in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the trimmed text of the first child with the given name.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}
	return strings.TrimSpace(c.Text), true
}

// Parse reads a single document element from r.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		cs, err := LookupCharset(label)
		if err != nil {
			return nil, err
		}
		if cs.enc == nil {
			return input, nil
		}
		return cs.enc.NewDecoder().Reader(input), nil
	}
	var stack []*Node
	var root *Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" || a.Name.Space == "xsi" {
					continue
				}
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xmltree: unbalanced end element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("xmltree: document has no root element")
	}
	if len(stack) != 0 {
		return nil, errors.New("xmltree: unexpected end of document")
	}
	return root, nil
}

// Encode writes the prologue and n, indented by two spaces, in the named
// charset. Characters the charset cannot represent are written as numeric
// character references.
func Encode(w io.Writer, n *Node, version, charset string) error {
	cs, err := LookupCharset(charset)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=%q encoding=%q?>\n", version, charset)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := encodeNode(enc, n); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	buf.WriteByte('\n')
	out, err := cs.transcode(buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Charset is a resolved XML encoding label.
type Charset struct {
	Name  string
	ascii bool
	enc   encoding.Encoding // nil for UTF-8 and US-ASCII
}

// LookupCharset resolves an IANA charset label. Only charsets that leave
// ASCII bytes unchanged are accepted, since the prologue is read before the
// charset is known.
func LookupCharset(label string) (Charset, error) {
	name := strings.TrimSpace(label)
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return Charset{Name: name}, nil
	case "us-ascii", "ascii":
		return Charset{Name: name, ascii: true}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Charset{}, fmt.Errorf("%w %q", ErrCharset, label)
	}
	head, err := enc.NewEncoder().String("<?xml version=")
	if err != nil || head != "<?xml version=" {
		return Charset{}, fmt.Errorf("%w %q: not ASCII compatible", ErrCharset, label)
	}
	return Charset{Name: name, enc: enc}, nil
}

func (c Charset) transcode(b []byte) ([]byte, error) {
	switch {
	case c.ascii:
		return escapeNonASCII(b), nil
	case c.enc == nil:
		return b, nil
	}
	out, err := encoding.HTMLEscapeUnsupported(c.enc.NewEncoder()).Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrCharset, c.Name, err)
	}
	return out, nil
}

func escapeNonASCII(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r < utf8.RuneSelf {
			out.WriteByte(b[0])
		} else {
			fmt.Fprintf(&out, "&#%d;", r)
		}
		b = b[size:]
	}
	return out.Bytes()
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

package sfftkrw

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/emdb-empiar/sfftkrw/codec"
	"github.com/emdb-empiar/sfftkrw/internal/xmltree"
)

// xmlStringItem is the element wrapping each entry of a string list.
const xmlStringItem = "id"

func encodeXML(w io.Writer, s *Segmentation, c *wireCtx, version, encoding string) error {
	root, err := c.xmlEntity(c.schema.RootName(), s)
	if err != nil {
		return err
	}
	root.Attrs = append([]xmltree.Attr{{Name: "schema_version", Value: c.schema.Version}}, root.Attrs...)
	return xmltree.Encode(w, root, version, encoding)
}

func (c *wireCtx) xmlEntity(tag string, e Entity) (*xmltree.Node, error) {
	n := xmltree.New(tag)
	name := e.EntityName()
	for _, f := range e.fields() {
		if c.skip(name, f) {
			continue
		}
		v, ok := c.value(f)
		if !ok {
			continue
		}
		wire := c.schema.WireName(name, f.Name)
		if isScalar(f.Kind) {
			text, err := c.formatScalar(v)
			if err != nil {
				return nil, err
			}
			if c.schema.xmlAttr(name, f.Name) {
				n.SetAttr(wire, text)
			} else {
				n.AddText(wire, text)
			}
			continue
		}
		switch f.Kind {
		case KindBytes:
			text, err := codec.PackText(v.([]byte), f.Compressed)
			if err != nil {
				return nil, wrapCodec(err, wire)
			}
			n.AddText(wire, text)
		case KindStrings:
			list := n.Add(wire)
			for _, s := range v.([]string) {
				list.AddText(xmlStringItem, s)
			}
		case KindUints:
			for _, u := range v.([]uint32) {
				n.AddText(wire, strconv.FormatUint(uint64(u), 10))
			}
		case KindEntity:
			child, err := c.xmlEntity(wire, v.(Entity))
			if err != nil {
				return nil, err
			}
			n.Append(child)
		case KindList:
			l := v.(listEntity)
			list := n.Add(wire)
			for _, item := range l.entities() {
				child, err := c.xmlEntity(c.schema.ItemName(l.EntityName(), item), item)
				if err != nil {
					return nil, err
				}
				list.Append(child)
			}
		}
	}
	return n, nil
}

func decodeXML(root *xmltree.Node, c *wireCtx) (*Segmentation, error) {
	s := &Segmentation{}
	if err := c.xmlFill(root, s); err != nil {
		return nil, err
	}
	if s.Version == "" {
		s.Version = c.schema.Version
	}
	return s, nil
}

// xmlFill reads n into e. Unknown attributes and elements are ignored.
func (c *wireCtx) xmlFill(n *xmltree.Node, e Entity) error {
	name := e.EntityName()
	for _, f := range e.fields() {
		if !c.schema.Supports(name, f.Name) {
			continue
		}
		wire := c.schema.WireName(name, f.Name)
		if isScalar(f.Kind) {
			var text string
			var ok bool
			if c.schema.xmlAttr(name, f.Name) {
				text, ok = n.Attr(wire)
			} else if child := n.Child(wire); child != nil {
				text, ok = child.Text, true
			}
			if !ok {
				continue
			}
			if f.Kind != KindString && strings.TrimSpace(text) == "" {
				continue
			}
			v, err := c.parseScalar(f, text)
			if err != nil {
				return err
			}
			if err := f.set(v); err != nil {
				return err
			}
			continue
		}
		switch f.Kind {
		case KindBytes:
			child := n.Child(wire)
			if child == nil {
				continue
			}
			b, err := codec.UnpackText(child.Text, f.Compressed)
			if err != nil {
				return wrapCodec(err, wire)
			}
			if err := f.set(b); err != nil {
				return err
			}
		case KindStrings:
			child := n.Child(wire)
			if child == nil {
				continue
			}
			items := []string{}
			for _, it := range child.ChildrenNamed(xmlStringItem) {
				items = append(items, it.Text)
			}
			if err := f.set(items); err != nil {
				return err
			}
		case KindUints:
			nodes := n.ChildrenNamed(wire)
			if len(nodes) == 0 {
				continue
			}
			out := make([]uint32, 0, len(nodes))
			for _, it := range nodes {
				u, err := strconv.ParseUint(strings.TrimSpace(it.Text), 10, 32)
				if err != nil {
					return fieldError(f, err)
				}
				out = append(out, uint32(u))
			}
			if err := f.set(out); err != nil {
				return err
			}
		case KindEntity:
			child := n.Child(wire)
			if child == nil {
				continue
			}
			sub, err := newChild(f)
			if err != nil {
				return err
			}
			if err := c.xmlFill(child, sub); err != nil {
				return err
			}
			if err := f.set(sub); err != nil {
				return err
			}
		case KindList:
			child := n.Child(wire)
			if child == nil {
				continue
			}
			ent, err := newChild(f)
			if err != nil {
				return err
			}
			l := ent.(listEntity)
			for _, itNode := range child.Children {
				item, err := c.schema.newItem(f.Entity, itNode.Name)
				if err != nil {
					continue
				}
				if err := c.xmlFill(itNode, item); err != nil {
					return err
				}
				if err := l.appendEntity(item); err != nil {
					return err
				}
			}
			if err := f.set(ent); err != nil {
				return err
			}
		}
	}
	return nil
}

// xmlVersion reads the schema version of an XML document: the root's
// schema_version attribute, else its <version> element.
func xmlVersion(root *xmltree.Node) (string, bool) {
	if v, ok := root.Attr("schema_version"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	if v, ok := root.ChildText("version"); ok && v != "" {
		return v, true
	}
	return "", false
}

func parseXML(b []byte) (*xmltree.Node, error) {
	root, err := xmltree.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, &Error{Kind: ErrEncoding, Message: "malformed XML", Cause: err}
	}
	return root, nil
}

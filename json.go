package sfftkrw

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/emdb-empiar/sfftkrw/codec"
	"github.com/emdb-empiar/sfftkrw/internal/jsondup"
)

// jsonMember is one key of an ordered JSON object.
type jsonMember struct {
	Key   string
	Value any
}

// jsonObject marshals its members in order.
type jsonObject []jsonMember

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(s *Segmentation, c *wireCtx, sortKeys bool, indent int) ([]byte, error) {
	obj, err := c.jsonEntity(s, sortKeys)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, &Error{Kind: ErrEncoding, Message: "cannot marshal JSON", Cause: err}
	}
	if indent <= 0 {
		return append(b, '\n'), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", strings.Repeat(" ", indent)); err != nil {
		return nil, &Error{Kind: ErrEncoding, Message: "cannot indent JSON", Cause: err}
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (c *wireCtx) jsonEntity(e Entity, sortKeys bool) (jsonObject, error) {
	name := e.EntityName()
	obj := jsonObject{}
	if sh, ok := e.(Shape); ok {
		obj = append(obj, jsonMember{Key: hffItemKind, Value: string(sh.Kind())})
	}
	for _, f := range e.fields() {
		if c.skip(name, f) {
			continue
		}
		v, ok := c.value(f)
		if !ok {
			continue
		}
		wire := c.schema.WireName(name, f.Name)
		var out any
		switch f.Kind {
		case KindString, KindUint, KindInt:
			out = v
		case KindFloat:
			x := v.(float64)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, newError(ErrEncoding, "%s.%s is %v, which JSON cannot hold", name, f.Name, x)
			}
			out = x
		case KindEnum:
			text, err := c.formatScalar(v)
			if err != nil {
				return nil, err
			}
			out = text
		case KindBytes:
			text, err := codec.PackText(v.([]byte), f.Compressed)
			if err != nil {
				return nil, wrapCodec(err, wire)
			}
			out = text
		case KindStrings:
			out = slices.Clone(v.([]string))
		case KindUints:
			out = slices.Clone(v.([]uint32))
		case KindEntity:
			sub, err := c.jsonEntity(v.(Entity), sortKeys)
			if err != nil {
				return nil, err
			}
			out = sub
		case KindList:
			items := []any{}
			for _, item := range v.(listEntity).entities() {
				sub, err := c.jsonEntity(item, sortKeys)
				if err != nil {
					return nil, err
				}
				items = append(items, sub)
			}
			out = items
		}
		obj = append(obj, jsonMember{Key: wire, Value: out})
	}
	if sortKeys {
		slices.SortStableFunc(obj, func(a, b jsonMember) int { return strings.Compare(a.Key, b.Key) })
	}
	return obj, nil
}

func parseJSON(b []byte) (map[string]any, error) {
	var dup *jsondup.DuplicateKeyError
	if err := jsondup.Check(b); errors.As(err, &dup) {
		return nil, &Error{Kind: ErrEncoding, Path: dup.Path, Message: "duplicate JSON key", Cause: err}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{Kind: ErrEncoding, Message: "malformed JSON", Cause: err}
	}
	return doc, nil
}

func decodeJSON(doc map[string]any, c *wireCtx) (*Segmentation, error) {
	s := &Segmentation{}
	if err := c.jsonFill(doc, s); err != nil {
		return nil, err
	}
	if s.Version == "" {
		s.Version = c.schema.Version
	}
	return s, nil
}

// jsonFill reads obj into e. Unknown keys are ignored; null reads as
// absent.
func (c *wireCtx) jsonFill(obj map[string]any, e Entity) error {
	name := e.EntityName()
	for _, f := range e.fields() {
		if !c.schema.Supports(name, f.Name) {
			continue
		}
		raw, ok := obj[c.schema.WireName(name, f.Name)]
		if !ok || raw == nil {
			continue
		}
		v, err := c.jsonValue(f, raw)
		if err != nil {
			return err
		}
		if err := f.set(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *wireCtx) jsonValue(f boundField, raw any) (any, error) {
	switch f.Kind {
	case KindString, KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, typeError(f.Name, "string", raw)
		}
		return c.parseScalar(f, s)
	case KindUint, KindInt, KindFloat:
		text, err := jsonNumber(f, raw)
		if err != nil {
			return nil, err
		}
		return c.parseScalar(f, text)
	case KindBytes:
		s, ok := raw.(string)
		if !ok {
			return nil, typeError(f.Name, "base64 string", raw)
		}
		b, err := codec.UnpackText(s, f.Compressed)
		return b, wrapCodec(err, f.Name)
	case KindStrings:
		arr, ok := raw.([]any)
		if !ok {
			return nil, typeError(f.Name, "array", raw)
		}
		out := make([]string, 0, len(arr))
		for _, x := range arr {
			s, ok := x.(string)
			if !ok {
				return nil, typeError(f.Name, "string", x)
			}
			out = append(out, s)
		}
		return out, nil
	case KindUints:
		arr, ok := raw.([]any)
		if !ok {
			return nil, typeError(f.Name, "array", raw)
		}
		out := make([]uint32, 0, len(arr))
		for _, x := range arr {
			text, err := jsonNumber(f, x)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseUint(text, 10, 32)
			if err != nil {
				return nil, fieldError(f, err)
			}
			out = append(out, uint32(n))
		}
		return out, nil
	case KindEntity:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, typeError(f.Name, "object", raw)
		}
		sub, err := newChild(f)
		if err != nil {
			return nil, err
		}
		return sub, c.jsonFill(m, sub)
	case KindList:
		arr, ok := raw.([]any)
		if !ok {
			return nil, typeError(f.Name, "array", raw)
		}
		ent, err := newChild(f)
		if err != nil {
			return nil, err
		}
		l := ent.(listEntity)
		for _, x := range arr {
			m, ok := x.(map[string]any)
			if !ok {
				continue
			}
			tag, _ := m[hffItemKind].(string)
			item, err := c.schema.newItem(f.Entity, tag)
			if err != nil {
				continue
			}
			if err := c.jsonFill(m, item); err != nil {
				return nil, err
			}
			if err := l.appendEntity(item); err != nil {
				return nil, err
			}
		}
		return ent, nil
	}
	return nil, newError(ErrType, "unsupported field kind %s", f.Kind)
}

func jsonNumber(f boundField, raw any) (string, error) {
	switch x := raw.(type) {
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}
	return "", typeError(f.Name, "number", raw)
}

// jsonVersion reads the top-level version key.
func jsonVersion(doc map[string]any) (string, bool) {
	v, ok := doc["version"].(string)
	return v, ok && v != ""
}

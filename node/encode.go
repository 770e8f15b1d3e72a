package node

import (
	"bytes"
	"strings"

	j "github.com/goccy/go-json"
)

// Marshal encodes n as compact JSON, keeping object key order.
func Marshal(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, n, "", "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent encodes n like Marshal but with one element per line.
func MarshalIndent(n *Node, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, n, prefix, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) { return Marshal(n) }

// String renders n as compact JSON; encoding errors render as null.
func (n *Node) String() string {
	b, err := Marshal(n)
	if err != nil {
		return "null"
	}
	return string(b)
}

func encode(buf *bytes.Buffer, n *Node, prefix, indent string, depth int) error {
	pretty := indent != "" || prefix != ""
	newline := func(d int) {
		if !pretty {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(prefix)
		buf.WriteString(strings.Repeat(indent, d))
	}

	switch n.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		if n.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(n.s)
	case String:
		b, err := j.MarshalNoEscape(n.s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		if len(n.elems) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, e := range n.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			if err := encode(buf, e, prefix, indent, depth+1); err != nil {
				return err
			}
		}
		newline(depth)
		buf.WriteByte(']')
	case Object:
		if len(n.keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			kb, err := j.MarshalNoEscape(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			if err := encode(buf, n.vals[k], prefix, indent, depth+1); err != nil {
				return err
			}
		}
		newline(depth)
		buf.WriteByte('}')
	}
	return nil
}

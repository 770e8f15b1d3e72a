package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	dimschema "github.com/reoring/dimschema"
)

// ErrTrailingData reports extra tokens after the top-level value.
var ErrTrailingData = errors.New("node: trailing data after top-level value")

// Parse decodes a single JSON document. Duplicate keys keep the last value.
func Parse(data []byte) (*Node, error) {
	n, _, err := ParseStrict(data, dimschema.Strictness{OnDuplicateKey: dimschema.Ignore})
	return n, err
}

// ParseStrict decodes a single JSON document enforcing strict. Duplicate keys
// are reported as issues; at Error severity the first duplicate aborts the
// decode and the issues are returned as the error.
func ParseStrict(data []byte, strict dimschema.Strictness) (*Node, dimschema.Issues, error) {
	return Decode(bytes.NewReader(data), strict)
}

// Decode reads one JSON document from r.
func Decode(r io.Reader, strict dimschema.Strictness) (*Node, dimschema.Issues, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	d := &decoder{dec: dec, strict: strict}

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("node: empty document: %w", io.ErrUnexpectedEOF)
		}
		return nil, nil, fmt.Errorf("node: %w", err)
	}
	root, err := d.value(tok, dimschema.Root())
	if err != nil {
		return nil, d.issues, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, d.issues, fmt.Errorf("node: %w", err)
		}
		return nil, d.issues, ErrTrailingData
	}
	return root, d.issues, nil
}

// UnmarshalJSON implements json.Unmarshaler so a Node can sit inside typed
// structs.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	*n = *v
	return nil
}

type decoder struct {
	dec    *j.Decoder
	strict dimschema.Strictness
	issues dimschema.Issues
}

func (d *decoder) value(tok j.Token, at dimschema.PathRef) (*Node, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object(at)
		case '[':
			return d.array(at)
		}
		return nil, fmt.Errorf("node: unexpected delimiter %q at %s", rune(v), at.Pointer())
	case string:
		return NewString(v), nil
	case j.Number:
		return &Node{kind: Number, s: string(v)}, nil
	case float64:
		return &Node{kind: Number, s: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return NewBool(v), nil
	case nil:
		return NewNull(), nil
	}
	return nil, fmt.Errorf("node: unexpected token %T at %s", tok, at.Pointer())
}

func (d *decoder) object(at dimschema.PathRef) (*Node, error) {
	obj := NewObject()
	for d.dec.More() {
		kt, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("node: %w", err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("node: expected object key at %s, got %T", at.Pointer(), kt)
		}
		vt, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("node: %w", err)
		}
		child, err := d.value(vt, at.Field(key))
		if err != nil {
			return nil, err
		}
		if obj.Has(key) && d.strict.OnDuplicateKey != dimschema.Ignore {
			it := at.Field(key).Issue(dimschema.CodeDuplicateKey, "key '"+key+"' duplicated", "key", key)
			it.Severity = d.strict.OnDuplicateKey
			d.issues = dimschema.AppendIssues(d.issues, it)
			if d.strict.OnDuplicateKey == dimschema.Error {
				return nil, d.issues
			}
		}
		obj.Set(key, child)
	}
	if _, err := d.dec.Token(); err != nil { // '}'
		return nil, fmt.Errorf("node: %w", err)
	}
	return obj, nil
}

func (d *decoder) array(at dimschema.PathRef) (*Node, error) {
	arr := NewArray()
	for i := 0; d.dec.More(); i++ {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("node: %w", err)
		}
		child, err := d.value(tok, at.Index(i))
		if err != nil {
			return nil, err
		}
		arr.elems = append(arr.elems, child)
	}
	if _, err := d.dec.Token(); err != nil { // ']'
		return nil, fmt.Errorf("node: %w", err)
	}
	return arr, nil
}

package wsman

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies which variant of the document tree a Node holds.
type Kind int

const (
	// KindScalar is a leaf element carrying text.
	KindScalar Kind = iota
	// KindMap is an element with named child elements, kept in document order.
	KindMap
	// KindList is a run of sibling elements sharing one name.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Attr is an element attribute. Name has its prefix stripped; Space keeps
// the resolved namespace URI so the attribute survives a round trip.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Node is one element of a normalized response document.
//
// Nodes produced by ParseDocument are read-only; Set fails on them with
// ErrImmutable. Clone returns a writable deep copy, which is how put payloads
// are built from a previously read resource.
type Node struct {
	kind     Kind
	text     string
	attrs    []Attr
	keys     []string
	children map[string]*Node
	items    []*Node
	frozen   bool
}

// NewMap returns an empty, writable map node.
func NewMap() *Node {
	return &Node{kind: KindMap, children: map[string]*Node{}}
}

// NewScalar returns a writable scalar node.
func NewScalar(text string) *Node {
	return &Node{kind: KindScalar, text: text}
}

// Kind reports the node variant. A nil node reports KindScalar.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindScalar
	}

	return n.kind
}

// Child returns the named child of a map node, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil || n.kind != KindMap {
		return nil
	}

	return n.children[name]
}

// Has reports whether a map node has the named child.
func (n *Node) Has(name string) bool {
	return n.Child(name) != nil
}

// Lookup walks path through nested map nodes.
func (n *Node) Lookup(path ...string) (*Node, error) {
	cur := n

	for i, name := range path {
		next := cur.Child(name)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrElementNotFound, strings.Join(path[:i+1], "/"))
		}

		cur = next
	}

	return cur, nil
}

// Keys returns the child names of a map node in document order.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMap {
		return nil
	}

	keys := make([]string, len(n.keys))
	copy(keys, n.keys)

	return keys
}

// Items returns the elements of a list node. A single element is returned as
// a one-item slice so callers need not care whether a name repeated.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}

	if n.kind == KindList {
		items := make([]*Node, len(n.items))
		copy(items, n.items)

		return items
	}

	return []*Node{n}
}

// Text returns the character data of a scalar node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}

	return n.text
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}

	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Int64 decodes a scalar node as a base 10 integer.
func (n *Node) Int64() (int64, error) {
	if n == nil || n.kind != KindScalar {
		return 0, fmt.Errorf("%w: %s node is not an integer", ErrMalformedResponse, n.Kind())
	}

	v, err := strconv.ParseInt(strings.TrimSpace(n.text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return v, nil
}

// Int decodes a scalar node as an int.
func (n *Node) Int() (int, error) {
	v, err := n.Int64()

	return int(v), err
}

// Bool decodes a scalar node as a boolean.
func (n *Node) Bool() (bool, error) {
	if n == nil || n.kind != KindScalar {
		return false, fmt.Errorf("%w: %s node is not a boolean", ErrMalformedResponse, n.Kind())
	}

	v, err := strconv.ParseBool(strings.TrimSpace(n.text))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return v, nil
}

// Set assigns a scalar child of a writable map node, appending it when new.
func (n *Node) Set(name, value string) error {
	if n == nil || n.kind != KindMap {
		return fmt.Errorf("wsman - Node - Set %s: %s node has no fields", name, n.Kind())
	}

	if n.frozen {
		return fmt.Errorf("%w: set %s", ErrImmutable, name)
	}

	if existing, ok := n.children[name]; ok && existing.kind == KindScalar {
		existing.text = value

		return nil
	}

	if _, ok := n.children[name]; !ok {
		n.keys = append(n.keys, name)
	}

	n.children[name] = NewScalar(value)

	return nil
}

// Clone returns a writable deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{kind: n.kind, text: n.text}

	if len(n.attrs) > 0 {
		c.attrs = append([]Attr(nil), n.attrs...)
	}

	switch n.kind {
	case KindMap:
		c.keys = append([]string(nil), n.keys...)
		c.children = make(map[string]*Node, len(n.children))

		for k, v := range n.children {
			c.children[k] = v.Clone()
		}
	case KindList:
		c.items = make([]*Node, len(n.items))
		for i, item := range n.items {
			c.items[i] = item.Clone()
		}
	case KindScalar:
	}

	return c
}

func (n *Node) addChild(name string, child *Node) {
	existing, ok := n.children[name]
	if !ok {
		n.keys = append(n.keys, name)
		n.children[name] = child

		return
	}

	if existing.kind == KindList {
		existing.items = append(existing.items, child)

		return
	}

	n.children[name] = &Node{kind: KindList, items: []*Node{existing, child}}
}

func (n *Node) freeze() {
	n.frozen = true

	for _, c := range n.children {
		c.freeze()
	}

	for _, item := range n.items {
		item.freeze()
	}
}

// MarshalJSON renders maps as objects in document order, lists as arrays
// and scalars as strings.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")

		return nil
	}

	switch n.kind {
	case KindMap:
		buf.WriteByte('{')

		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(k)
			if err != nil {
				return err
			}

			buf.Write(key)
			buf.WriteByte(':')

			if err := n.children[k].writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindScalar:
		text, err := json.Marshal(n.text)
		if err != nil {
			return err
		}

		buf.Write(text)
	}

	return nil
}

// encodeXML writes the node as an element called local in namespace ns.
// Children inherit the namespace.
func (n *Node) encodeXML(enc *xml.Encoder, ns, local string) error {
	if n.kind == KindList {
		for _, item := range n.items {
			if err := item.encodeXML(enc, ns, local); err != nil {
				return err
			}
		}

		return nil
	}

	start := xml.StartElement{Name: xml.Name{Space: ns, Local: local}, Attr: encodeAttrs(n.attrs)}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch n.kind {
	case KindMap:
		for _, k := range n.keys {
			if err := n.children[k].encodeXML(enc, ns, k); err != nil {
				return err
			}
		}
	case KindScalar:
		if err := enc.EncodeToken(xml.CharData(n.text)); err != nil {
			return err
		}
	case KindList:
	}

	return enc.EncodeToken(start.End())
}

// encodeAttrs writes XML Schema Instance attributes under the xsi prefix AMT
// expects, declaring it once on the element.
func encodeAttrs(attrs []Attr) []xml.Attr {
	var out []xml.Attr

	declared := false

	for _, a := range attrs {
		if a.Space != NsXsi {
			out = append(out, xml.Attr{Name: xml.Name{Space: a.Space, Local: a.Name}, Value: a.Value})

			continue
		}

		if !declared {
			out = append(out, xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: NsXsi})
			declared = true
		}

		out = append(out, xml.Attr{Name: xml.Name{Local: "xsi:" + a.Name}, Value: a.Value})
	}

	return out
}

// Document is a normalized SOAP response.
type Document struct {
	envelope *Node
	raw      []byte
}

// ParseDocument normalizes a raw SOAP response. Namespace prefixes are
// stripped from element and attribute names, and repeated sibling elements
// are collected into list nodes in document order.
func ParseDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no root element", ErrMalformedResponse)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if start.Name.Local != "Envelope" {
			return nil, fmt.Errorf("%w: root element is %s, not a SOAP Envelope", ErrMalformedResponse, start.Name.Local)
		}

		root, err := decodeElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}

		root.freeze()

		raw := make([]byte, len(data))
		copy(raw, data)

		return &Document{envelope: root, raw: raw}, nil
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{kind: KindScalar, children: map[string]*Node{}}

	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}

		space := a.Name.Space
		if space == "xsi" {
			// undeclared prefix
			space = NsXsi
		}

		n.attrs = append(n.attrs, Attr{Space: space, Name: a.Name.Local, Value: a.Value})
	}

	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}

			n.kind = KindMap
			n.addChild(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if n.kind == KindScalar {
				n.text = strings.TrimSpace(text.String())
				n.children = nil
			}

			return n, nil
		}
	}
}

// Envelope returns the root Envelope node.
func (d *Document) Envelope() *Node {
	return d.envelope
}

// Header returns the SOAP Header node, or nil.
func (d *Document) Header() *Node {
	return d.envelope.Child("Header")
}

// Body returns the SOAP Body node, or nil.
func (d *Document) Body() *Node {
	return d.envelope.Child("Body")
}

// Lookup walks path from the Body.
func (d *Document) Lookup(path ...string) (*Node, error) {
	body := d.Body()
	if body == nil {
		return nil, fmt.Errorf("%w: Body", ErrElementNotFound)
	}

	return body.Lookup(path...)
}

// IsFault reports whether the first element of the Body is a SOAP Fault.
func (d *Document) IsFault() bool {
	keys := d.Body().Keys()

	return len(keys) > 0 && keys[0] == "Fault"
}

// Raw returns the response bytes the document was parsed from.
func (d *Document) Raw() []byte {
	return d.raw
}

// Instance is a resource representation sent as a put payload. Fields are
// written in order, each in the resource's namespace.
type Instance struct {
	Name   string
	URI    string
	Fields *Node
}

// Payload serializes the instance.
func (i Instance) Payload() ([]byte, error) {
	fields := i.Fields
	if fields == nil {
		fields = NewMap()
	}

	var buf bytes.Buffer

	enc := xml.NewEncoder(&buf)

	if err := fields.encodeXML(enc, i.URI, i.Name); err != nil {
		return nil, fmt.Errorf("wsman - Instance - Payload %s: %w", i.Name, err)
	}

	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("wsman - Instance - Payload %s: %w", i.Name, err)
	}

	return buf.Bytes(), nil
}

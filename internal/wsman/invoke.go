package wsman

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Arg is one method argument, written in the service namespace.
type Arg struct {
	Name  string
	Value string
}

// Invocation describes a method call on a service whose affected item is a
// reference to another resource.
type Invocation struct {
	// Service is the resource name of the service that owns Method.
	Service string
	// Resource is the resource name the affected item references.
	Resource string
	// AffectedItem is the element wrapping the endpoint reference. Empty
	// for methods that take no reference.
	AffectedItem string
	Method       string
	// Anonymous addresses the reference to the anonymous endpoint.
	Anonymous bool
	// Selector identifies the referenced instance. A non-empty Extra is also
	// sent as a header selector with the same Name.
	Selector   *Selector
	ArgsBefore []Arg
	ArgsAfter  []Arg
}

// Payload builds the <Method>_INPUT body. Without an AffectedItem the body
// carries only the arguments.
func (inv Invocation) Payload() ([]byte, error) {
	serviceURI, err := ResourceURI(inv.Service)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	w := tokenWriter{enc: xml.NewEncoder(&buf)}

	input := xml.StartElement{Name: xml.Name{Space: serviceURI, Local: inv.Method + "_INPUT"}}
	w.start(input)

	for _, a := range inv.ArgsBefore {
		w.text(xml.Name{Space: serviceURI, Local: a.Name}, a.Value, nil)
	}

	if inv.AffectedItem != "" {
		if err := inv.writeReference(&w, serviceURI); err != nil {
			return nil, err
		}
	}

	for _, a := range inv.ArgsAfter {
		w.text(xml.Name{Space: serviceURI, Local: a.Name}, a.Value, nil)
	}

	w.end(input)

	if w.err == nil {
		w.err = w.enc.Flush()
	}

	if w.err != nil {
		return nil, fmt.Errorf("wsman - Invocation - Payload %s: %w", inv.Method, w.err)
	}

	return buf.Bytes(), nil
}

func (inv Invocation) writeReference(w *tokenWriter, serviceURI string) error {
	resourceURI, err := ResourceURI(inv.Resource)
	if err != nil {
		return err
	}

	addressSchema := SchemaAddressing
	if inv.Anonymous {
		addressSchema = SchemaAddressingAnonymous
	}

	address, err := lookupSchema(addressSchema)
	if err != nil {
		return err
	}

	wsmanNs, err := lookupSchema(SchemaWsman)
	if err != nil {
		return err
	}

	addressingNs, err := lookupSchema(SchemaAddressing)
	if err != nil {
		return err
	}

	item := xml.StartElement{Name: xml.Name{Space: serviceURI, Local: inv.AffectedItem}}
	w.start(item)
	w.text(xml.Name{Space: addressingNs, Local: "Address"}, address, nil)

	refs := xml.StartElement{Name: xml.Name{Space: addressingNs, Local: "ReferenceParameters"}}
	w.start(refs)
	w.text(xml.Name{Space: wsmanNs, Local: "ResourceURI"}, resourceURI, nil)

	if inv.Selector != nil {
		set := xml.StartElement{Name: xml.Name{Space: wsmanNs, Local: "SelectorSet"}}
		w.start(set)
		w.text(xml.Name{Space: wsmanNs, Local: "Selector"}, inv.Selector.Value,
			[]xml.Attr{{Name: xml.Name{Local: "Name"}, Value: inv.Selector.Name}})
		w.end(set)
	}

	w.end(refs)
	w.end(item)

	return nil
}

// tokenWriter keeps the first encoding error so building stays linear.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func (w *tokenWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *tokenWriter) start(s xml.StartElement) {
	w.token(s)
}

func (w *tokenWriter) end(s xml.StartElement) {
	w.token(s.End())
}

func (w *tokenWriter) text(name xml.Name, value string, attrs []xml.Attr) {
	s := xml.StartElement{Name: name, Attr: attrs}
	w.start(s)
	w.token(xml.CharData(value))
	w.end(s)
}

// InvokeMethod sends inv and checks <Method>_OUTPUT/ReturnValue. Zero is
// success; anything else fails with a *NonZeroReturnError. opts is not
// modified.
func (c *Client) InvokeMethod(inv Invocation, opts *Options) error {
	payload, err := inv.Payload()
	if err != nil {
		return err
	}

	serviceURI, err := ResourceURI(inv.Service)
	if err != nil {
		return err
	}

	callOpts := opts.Clone()
	if inv.Selector != nil && inv.Selector.Extra != "" {
		callOpts.AddSelector(inv.Selector.Name, inv.Selector.Extra)
	}

	doc, err := c.Invoke(serviceURI, inv.Method, payload, callOpts)
	if err != nil {
		return err
	}

	rv, err := doc.Lookup(inv.Method+"_OUTPUT", "ReturnValue")
	if err != nil {
		return fmt.Errorf("wsman - invoke %s: %w", inv.Method, err)
	}

	code, err := rv.Int64()
	if err != nil {
		return fmt.Errorf("wsman - invoke %s: %w", inv.Method, err)
	}

	if code != 0 {
		return &NonZeroReturnError{Method: inv.Method, ReturnValue: code}
	}

	return nil
}

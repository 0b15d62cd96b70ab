package wsman

import (
	"encoding/xml"
	"strconv"

	"github.com/google/uuid"
)

// DefaultMaxEnvelopeSize is the MaxEnvelopeSize header sent with every request.
const DefaultMaxEnvelopeSize = 153600

// Envelope represents a SOAP 1.2 envelope for WS-Management messages.
type Envelope struct {
	XMLName xml.Name `xml:"s:Envelope"`

	NsSoap  string `xml:"xmlns:s,attr"`
	NsAddr  string `xml:"xmlns:a,attr"`
	NsWsman string `xml:"xmlns:w,attr"`
	NsEnum  string `xml:"xmlns:n,attr"`

	Header *Header `xml:"s:Header"`
	Body   *Body   `xml:"s:Body"`
}

// Header holds the WS-Addressing and WS-Management headers.
type Header struct {
	To               string       `xml:"a:To,omitempty"`
	ResourceURI      string       `xml:"w:ResourceURI,omitempty"`
	ReplyTo          *ReplyTo     `xml:"a:ReplyTo,omitempty"`
	Action           string       `xml:"a:Action,omitempty"`
	MaxEnvelopeSize  int          `xml:"w:MaxEnvelopeSize,omitempty"`
	MessageID        string       `xml:"a:MessageID,omitempty"`
	OperationTimeout string       `xml:"w:OperationTimeout,omitempty"`
	SelectorSet      *SelectorSet `xml:"w:SelectorSet,omitempty"`
}

// ReplyTo represents the WS-Addressing ReplyTo element.
type ReplyTo struct {
	Address string `xml:"a:Address"`
}

// SelectorSet contains selectors for targeting one resource instance.
type SelectorSet struct {
	Selectors []headerSelector `xml:"w:Selector"`
}

type headerSelector struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

// Body represents the SOAP body.
type Body struct {
	Content []byte `xml:",innerxml"`
}

// NewEnvelope creates an envelope with the namespace declarations AMT expects
// and a fresh MessageID.
func NewEnvelope() *Envelope {
	return &Envelope{
		NsSoap:  NsSoap,
		NsAddr:  NsAddressing,
		NsWsman: NsWsman,
		NsEnum:  NsEnumeration,
		Header: &Header{
			ReplyTo:         &ReplyTo{Address: AddressAnonymous},
			MaxEnvelopeSize: DefaultMaxEnvelopeSize,
			MessageID:       "uuid:" + uuid.NewString(),
		},
		Body: &Body{},
	}
}

// WithAction sets the WS-Addressing Action header.
func (e *Envelope) WithAction(action string) *Envelope {
	e.Header.Action = action

	return e
}

// WithTo sets the WS-Addressing To header.
func (e *Envelope) WithTo(to string) *Envelope {
	e.Header.To = to

	return e
}

// WithResourceURI sets the WS-Management ResourceURI header.
func (e *Envelope) WithResourceURI(uri string) *Envelope {
	e.Header.ResourceURI = uri

	return e
}

// WithOperationTimeout sets the OperationTimeout header, e.g. "PT60S".
func (e *Envelope) WithOperationTimeout(timeout string) *Envelope {
	e.Header.OperationTimeout = timeout

	return e
}

// WithSelector adds a selector to the SelectorSet.
func (e *Envelope) WithSelector(name, value string) *Envelope {
	if e.Header.SelectorSet == nil {
		e.Header.SelectorSet = &SelectorSet{}
	}

	e.Header.SelectorSet.Selectors = append(e.Header.SelectorSet.Selectors, headerSelector{Name: name, Value: value})

	return e
}

// WithOptions applies the selectors carried by opts.
func (e *Envelope) WithOptions(opts *Options) *Envelope {
	for _, s := range opts.Selectors() {
		e.WithSelector(s.Name, s.Value)
	}

	return e
}

// WithBody sets the SOAP body content.
func (e *Envelope) WithBody(content []byte) *Envelope {
	e.Body.Content = content

	return e
}

// Marshal serializes the envelope to XML.
func (e *Envelope) Marshal() ([]byte, error) {
	return xml.Marshal(e)
}

// Filter restricts an enumeration to instances matching its selectors.
type Filter struct {
	Selectors []Selector
}

type enumerateBody struct {
	XMLName xml.Name      `xml:"n:Enumerate"`
	Filter  *filterHeader `xml:"w:Filter,omitempty"`
}

type filterHeader struct {
	Dialect     string      `xml:"Dialect,attr"`
	SelectorSet SelectorSet `xml:"w:SelectorSet"`
}

type pullBody struct {
	XMLName            xml.Name `xml:"n:Pull"`
	EnumerationContext string   `xml:"n:EnumerationContext"`
	MaxElements        string   `xml:"n:MaxElements,omitempty"`
}

func enumerateContent(filter *Filter) ([]byte, error) {
	body := enumerateBody{}

	if filter != nil && len(filter.Selectors) > 0 {
		body.Filter = &filterHeader{Dialect: SelectorFilterDialect}
		for _, s := range filter.Selectors {
			body.Filter.SelectorSet.Selectors = append(body.Filter.SelectorSet.Selectors, headerSelector{Name: s.Name, Value: s.Value})
		}
	}

	return xml.Marshal(body)
}

func pullContent(context string, maxElements int) ([]byte, error) {
	body := pullBody{EnumerationContext: context}
	if maxElements > 0 {
		body.MaxElements = strconv.Itoa(maxElements)
	}

	return xml.Marshal(body)
}

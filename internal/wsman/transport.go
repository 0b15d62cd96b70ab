package wsman

import (
	"fmt"

	"github.com/go-xmlfmt/xmlfmt"

	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

// Transport issues the raw WS-Management primitives. A nil document with a
// nil error means no response arrived. Errors wrapping ErrMalformedResponse
// mean a response arrived but could not be parsed; any other error is a
// connection failure.
type Transport interface {
	Get(opts *Options, uri string) (*Document, error)
	Put(opts *Options, uri string, payload []byte) (*Document, error)
	Enumerate(opts *Options, filter *Filter, uri string) (*Document, error)
	Pull(opts *Options, filter *Filter, uri, context string) (*Document, error)
	Invoke(opts *Options, uri, method string, payload []byte) (*Document, error)
}

// Poster sends one serialized SOAP message and returns the raw reply.
// *client.Target from go-wsman-messages satisfies it.
type Poster interface {
	Post(msg string) ([]byte, error)
}

// DefaultOperationTimeout is the OperationTimeout header sent with requests.
const DefaultOperationTimeout = "PT60S"

// HTTPTransport builds envelopes and posts them to one AMT endpoint.
type HTTPTransport struct {
	poster   Poster
	endpoint string
	log      logger.Interface
}

// NewHTTPTransport returns a transport addressing endpoint, e.g.
// "http://host:16992/wsman", through p.
func NewHTTPTransport(p Poster, endpoint string, log logger.Interface) *HTTPTransport {
	return &HTTPTransport{
		poster:   p,
		endpoint: endpoint,
		log:      log,
	}
}

func (t *HTTPTransport) envelope(action, uri string, opts *Options) *Envelope {
	return NewEnvelope().
		WithAction(action).
		WithTo(t.endpoint).
		WithResourceURI(uri).
		WithOperationTimeout(DefaultOperationTimeout).
		WithOptions(opts)
}

// Get issues a WS-Transfer Get.
func (t *HTTPTransport) Get(opts *Options, uri string) (*Document, error) {
	return t.send(opts, t.envelope(ActionGet, uri, opts))
}

// Put issues a WS-Transfer Put with the serialized resource as the body.
func (t *HTTPTransport) Put(opts *Options, uri string, payload []byte) (*Document, error) {
	return t.send(opts, t.envelope(ActionPut, uri, opts).WithBody(payload))
}

// Enumerate opens an enumeration, optionally restricted by a selector filter.
func (t *HTTPTransport) Enumerate(opts *Options, filter *Filter, uri string) (*Document, error) {
	body, err := enumerateContent(filter)
	if err != nil {
		return nil, fmt.Errorf("wsman - HTTPTransport - Enumerate: %w", err)
	}

	return t.send(opts, t.envelope(ActionEnumerate, uri, opts).WithBody(body))
}

// Pull requests the next page of an open enumeration. The filter was fixed
// by Enumerate and is not resent.
func (t *HTTPTransport) Pull(opts *Options, _ *Filter, uri, context string) (*Document, error) {
	body, err := pullContent(context, opts.MaxElements())
	if err != nil {
		return nil, fmt.Errorf("wsman - HTTPTransport - Pull: %w", err)
	}

	return t.send(opts, t.envelope(ActionPull, uri, opts).WithBody(body))
}

// Invoke calls method on the resource; the action is uri/method.
func (t *HTTPTransport) Invoke(opts *Options, uri, method string, payload []byte) (*Document, error) {
	return t.send(opts, t.envelope(uri+"/"+method, uri, opts).WithBody(payload))
}

func (t *HTTPTransport) send(opts *Options, env *Envelope) (*Document, error) {
	msg, err := env.Marshal()
	if err != nil {
		return nil, fmt.Errorf("wsman - HTTPTransport - marshal: %w", err)
	}

	if opts.Dump() {
		t.log.Info("wsman request:\n" + xmlfmt.FormatXML(string(msg), "", "  "))
	}

	raw, postErr := t.poster.Post(string(msg))
	if len(raw) == 0 {
		return nil, postErr
	}

	doc, parseErr := ParseDocument(raw)

	switch {
	case parseErr == nil && postErr != nil:
		// AMT answers faults with HTTP 400/500; keep the body when it is one.
		if doc.IsFault() {
			return doc, nil
		}

		return nil, postErr
	case postErr != nil:
		return nil, postErr
	case parseErr != nil:
		return nil, parseErr
	}

	return doc, nil
}

package wsman

import (
	"errors"
	"fmt"
	"time"

	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

// RetryLimit is the number of transport attempts made per operation before
// giving up with ErrConnectFailure.
const RetryLimit = 3

// Client wraps a Transport with retry and fault validation. It is the single
// transaction boundary for AMT resources and is not safe for concurrent use.
type Client struct {
	transport  Transport
	log        logger.Interface
	retryLimit int
}

// NewClient returns a Client issuing requests through t.
func NewClient(t Transport, log logger.Interface) *Client {
	return &Client{
		transport:  t,
		log:        log,
		retryLimit: RetryLimit,
	}
}

// Get reads one resource instance.
func (c *Client) Get(uri string, opts *Options) (*Document, error) {
	return c.do("get", uri, opts, func() (*Document, error) {
		return c.transport.Get(opts, uri)
	})
}

// Put replaces a resource instance with a serialized representation.
func (c *Client) Put(uri string, payload []byte, opts *Options) (*Document, error) {
	return c.do("put", uri, opts, func() (*Document, error) {
		return c.transport.Put(opts, uri, payload)
	})
}

// Enumerate opens an enumeration; the document carries the context.
func (c *Client) Enumerate(uri string, opts *Options, filter *Filter) (*Document, error) {
	return c.do("enumerate", uri, opts, func() (*Document, error) {
		return c.transport.Enumerate(opts, filter, uri)
	})
}

// Pull fetches the page of an open enumeration addressed by context.
func (c *Client) Pull(uri string, opts *Options, context string) (*Document, error) {
	return c.do("pull", uri, opts, func() (*Document, error) {
		return c.transport.Pull(opts, nil, uri, context)
	})
}

// Invoke calls method with a pre-built method body.
func (c *Client) Invoke(uri, method string, payload []byte, opts *Options) (*Document, error) {
	return c.do("invoke", uri, opts, func() (*Document, error) {
		return c.transport.Invoke(opts, uri, method, payload)
	})
}

func (c *Client) do(op, uri string, opts *Options, call func() (*Document, error)) (*Document, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retryLimit; attempt++ {
		start := time.Now()
		doc, err := call()
		recordRoundTrip(op, time.Since(start))

		if errors.Is(err, ErrMalformedResponse) {
			recordRequest(op, outcomeMalformed)

			return nil, fmt.Errorf("wsman - %s %s: %w", op, uri, err)
		}

		if err == nil && doc != nil {
			return c.validate(op, uri, opts, doc)
		}

		lastErr = err

		if attempt < c.retryLimit {
			recordRetry(op)
			c.log.Warn("wsman - %s %s: attempt %d of %d got no response, retrying: %v", op, uri, attempt, c.retryLimit, err)
		}
	}

	recordRequest(op, outcomeConnect)

	return nil, &ConnectError{Op: op, URI: uri, Attempts: c.retryLimit, Err: lastErr}
}

func (c *Client) validate(op, uri string, opts *Options, doc *Document) (*Document, error) {
	if !doc.IsFault() {
		recordRequest(op, outcomeOK)

		return doc, nil
	}

	if opts.Silent() {
		recordRequest(op, outcomeSilenced)
		c.log.Debug("wsman - %s %s: returning fault document to caller", op, uri)

		return doc, nil
	}

	recordRequest(op, outcomeFault)

	return nil, &FaultError{Op: op, URI: uri, Document: doc}
}

package wsman

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnectFailure means the transport produced no response document.
	ErrConnectFailure = errors.New("wsman connect failure")
	// ErrFault means the endpoint answered with a SOAP fault.
	ErrFault = errors.New("wsman fault")
	// ErrNonZeroReturn means an invoked method reported a non-zero ReturnValue.
	ErrNonZeroReturn = errors.New("non-zero return value")
	// ErrUnsupportedOperation means a resource defines neither get nor enumerate.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrUnknownResource means a resource name has no registered URI.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrUnknownSchema means a schema name has no registered namespace URI.
	ErrUnknownSchema = errors.New("unknown schema")
	// ErrMalformedResponse means a response could not be parsed or decoded.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrElementNotFound means an expected element is missing from a document.
	ErrElementNotFound = errors.New("element not found")
	// ErrImmutable means a parsed document node was modified without Clone.
	ErrImmutable = errors.New("document node is read-only")
)

// ConnectError is returned once the retry budget is spent without a response.
type ConnectError struct {
	Op       string
	URI      string
	Attempts int
	Err      error
}

func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("wsman - %s %s: no response after %d attempts", e.Op, e.URI, e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConnectError) Is(target error) bool {
	return target == ErrConnectFailure
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// FaultError carries the fault document returned by the endpoint.
type FaultError struct {
	Op       string
	URI      string
	Document *Document
}

func (e *FaultError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "wsman - %s %s: fault", e.Op, e.URI)

	if code := e.Code(); code != "" {
		fmt.Fprintf(&b, " [%s", code)

		if sub := e.Subcode(); sub != "" {
			fmt.Fprintf(&b, "/%s", sub)
		}

		b.WriteByte(']')
	}

	if reason := e.Reason(); reason != "" {
		fmt.Fprintf(&b, ": %s", reason)
	}

	return b.String()
}

func (e *FaultError) Is(target error) bool {
	return target == ErrFault
}

func (e *FaultError) fault() *Node {
	if e.Document == nil {
		return nil
	}

	return e.Document.Body().Child("Fault")
}

// Code returns the fault code value, e.g. "s:Sender".
func (e *FaultError) Code() string {
	return e.fault().Child("Code").Child("Value").Text()
}

// Subcode returns the fault subcode value, e.g. "wsa:DestinationUnreachable".
func (e *FaultError) Subcode() string {
	return e.fault().Child("Code").Child("Subcode").Child("Value").Text()
}

// Reason returns the first fault reason text.
func (e *FaultError) Reason() string {
	texts := e.fault().Child("Reason").Child("Text").Items()
	if len(texts) == 0 {
		return ""
	}

	return texts[0].Text()
}

// Detail returns the fault detail text, if any.
func (e *FaultError) Detail() string {
	detail := e.fault().Child("Detail")
	if detail.Kind() == KindScalar {
		return detail.Text()
	}

	for _, k := range detail.Keys() {
		if t := detail.Child(k).Text(); t != "" {
			return t
		}
	}

	return ""
}

// NonZeroReturnError carries the ReturnValue of a failed method invocation.
type NonZeroReturnError struct {
	Method      string
	ReturnValue int64
}

func (e *NonZeroReturnError) Error() string {
	return fmt.Sprintf("wsman - invoke %s: %s %d", e.Method, ErrNonZeroReturn, e.ReturnValue)
}

func (e *NonZeroReturnError) Is(target error) bool {
	return target == ErrNonZeroReturn
}

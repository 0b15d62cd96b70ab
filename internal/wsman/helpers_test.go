package wsman_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/device-management-toolkit/amtctl/internal/mocks"
	"github.com/device-management-toolkit/amtctl/internal/wsman"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

const envelopeOpen = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<a:Envelope xmlns:a="http://www.w3.org/2003/05/soap-envelope"` +
	` xmlns:b="http://schemas.xmlsoap.org/ws/2004/08/addressing"` +
	` xmlns:c="http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"` +
	` xmlns:g="http://schemas.xmlsoap.org/ws/2004/09/enumeration"` +
	` xmlns:h="http://schemas.dmtf.org/wbem/wscim/1/cim-schema/2/CIM_BootSourceSetting"` +
	` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<a:Header><b:Action a:mustUnderstand="true">response</b:Action></a:Header>`

func envelope(body string) string {
	return envelopeOpen + `<a:Body>` + body + `</a:Body></a:Envelope>`
}

func mustDoc(t *testing.T, body string) *wsman.Document {
	t.Helper()

	doc, err := wsman.ParseDocument([]byte(envelope(body)))
	require.NoError(t, err)

	return doc
}

const faultBody = `<a:Fault><a:Code><a:Value>a:Sender</a:Value>` +
	`<a:Subcode><a:Value>b:DestinationUnreachable</a:Value></a:Subcode></a:Code>` +
	`<a:Reason><a:Text xml:lang="en-US">No route can be determined to reach the destination role defined by the WS-Addressing To.</a:Text></a:Reason>` +
	`<a:Detail><c:FaultDetail>http://schemas.dmtf.org/wbem/wsman/1/wsman/faultDetail/InvalidResourceURI</c:FaultDetail></a:Detail></a:Fault>`

func enumerateBody(context string) string {
	return `<g:EnumerateResponse><g:EnumerationContext>` + context + `</g:EnumerationContext></g:EnumerateResponse>`
}

func pullBody(end bool, ids ...string) string {
	body := `<g:PullResponse><g:Items>`
	for _, id := range ids {
		body += `<h:CIM_BootSourceSetting><h:InstanceID>` + id + `</h:InstanceID></h:CIM_BootSourceSetting>`
	}

	body += `</g:Items>`

	if end {
		body += `<g:EndOfSequence></g:EndOfSequence>`
	}

	return body + `</g:PullResponse>`
}

func newClient(t *testing.T) (*wsman.Client, *mocks.MockTransport) {
	t.Helper()

	mockCtl := gomock.NewController(t)
	transport := mocks.NewMockTransport(mockCtl)

	return wsman.NewClient(transport, logger.New("error")), transport
}

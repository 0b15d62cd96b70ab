package amt_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/device-management-toolkit/amtctl/internal/amt"
	"github.com/device-management-toolkit/amtctl/internal/mocks"
	"github.com/device-management-toolkit/amtctl/internal/wsman"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

func newDevice(t *testing.T) (*amt.Device, *mocks.MockTransport) {
	t.Helper()

	mockCtl := gomock.NewController(t)
	transport := mocks.NewMockTransport(mockCtl)

	return amt.NewDevice(wsman.NewClient(transport, logger.New("error")), logger.New("error")), transport
}

func doc(t *testing.T, body string) *wsman.Document {
	t.Helper()

	d, err := wsman.ParseDocument([]byte(`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">` +
		`<s:Header/><s:Body>` + body + `</s:Body></s:Envelope>`))
	require.NoError(t, err)

	return d
}

// instance renders <name> with the given name/value pairs as children.
func instance(name string, pairs ...string) string {
	var b strings.Builder

	b.WriteString("<" + name + ">")

	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString("<" + pairs[i] + ">" + pairs[i+1] + "</" + pairs[i] + ">")
	}

	b.WriteString("</" + name + ">")

	return b.String()
}

func uri(t *testing.T, name string) string {
	t.Helper()

	u, err := wsman.ResourceURI(name)
	require.NoError(t, err)

	return u
}

func expectGet(t *testing.T, transport *mocks.MockTransport, name string, pairs ...string) *gomock.Call {
	t.Helper()

	return transport.EXPECT().Get(gomock.Any(), uri(t, name)).Return(doc(t, instance(name, pairs...)), nil)
}

// expectWalk serves one enumeration of name whose single page holds items.
func expectWalk(t *testing.T, transport *mocks.MockTransport, name string, items ...string) *gomock.Call {
	t.Helper()

	u := uri(t, name)
	body := `<PullResponse><Items>` + strings.Join(items, "") + `</Items><EndOfSequence/></PullResponse>`

	transport.EXPECT().Pull(gomock.Any(), nil, u, "ctx-"+name).Return(doc(t, body), nil).AnyTimes()

	return transport.EXPECT().Enumerate(gomock.Any(), nil, u).
		Return(doc(t, `<EnumerateResponse><EnumerationContext>ctx-`+name+`</EnumerationContext></EnumerateResponse>`), nil)
}

// expectPut asserts that exactly one put of name carries want.
func expectPut(t *testing.T, transport *mocks.MockTransport, name string, want map[string]string) *gomock.Call {
	t.Helper()

	return transport.EXPECT().Put(gomock.Any(), uri(t, name), gomock.Any()).
		DoAndReturn(func(_ *wsman.Options, _ string, payload []byte) (*wsman.Document, error) {
			got := payloadFields(t, payload)
			for k, v := range want {
				assert.Equal(t, v, got[k], "field %s", k)
			}

			return doc(t, instance(name)), nil
		}).
		Times(1)
}

// expectInvoke serves one invocation of method on service and hands the
// call options and decoded payload to check.
func expectInvoke(t *testing.T, transport *mocks.MockTransport, service, method, returnValue string,
	check func(opts *wsman.Options, fields map[string]string),
) *gomock.Call {
	t.Helper()

	return transport.EXPECT().Invoke(gomock.Any(), uri(t, service), method, gomock.Any()).
		DoAndReturn(func(opts *wsman.Options, _, _ string, payload []byte) (*wsman.Document, error) {
			if check != nil {
				check(opts, payloadFields(t, payload))
			}

			return doc(t, instance(method+"_OUTPUT", "ReturnValue", returnValue)), nil
		}).
		Times(1)
}

// payloadFields maps the local name of every text-bearing element to its
// text.
func payloadFields(t *testing.T, payload []byte) map[string]string {
	t.Helper()

	dec := xml.NewDecoder(strings.NewReader(string(payload)))
	fields := map[string]string{}

	var current string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch v := tok.(type) {
		case xml.StartElement:
			current = v.Name.Local
		case xml.CharData:
			if text := strings.TrimSpace(string(v)); text != "" {
				fields[current] = text
			}
		}
	}

	return fields
}

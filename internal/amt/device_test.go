package amt_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

var errDial = errors.New("dial tcp 192.168.1.20:16992: connect: connection refused")

const faultBody = `<Fault><Code><Value>a:Sender</Value><Subcode><Value>w:AccessDenied</Value></Subcode></Code>` +
	`<Reason><Text>The sender was not authorized to access the resource.</Text></Reason></Fault>`

func TestDevice_SetDebugTogglesDumping(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	var dumps []bool

	transport.EXPECT().Get(gomock.Any(), uri(t, "AMT_GeneralSettings")).
		DoAndReturn(func(opts *wsman.Options, _ string) (*wsman.Document, error) {
			dumps = append(dumps, opts.Dump())

			return doc(t, instance("AMT_GeneralSettings", "HostName", "nuc")), nil
		}).
		Times(3)

	_, err := device.GetResource("AMT_GeneralSettings")
	require.NoError(t, err)

	device.SetDebug(true)

	_, err = device.GetResource("AMT_GeneralSettings")
	require.NoError(t, err)

	device.SetDebug(false)

	_, err = device.GetResource("AMT_GeneralSettings")
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true, false}, dumps)
}

func TestDevice_ResourceAccess(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	expectWalk(t, transport, "AMT_EthernetPortSettings",
		instance("AMT_EthernetPortSettings", "InstanceID", "Intel(r) AMT Ethernet Port Settings 0"),
		instance("AMT_EthernetPortSettings", "InstanceID", "Intel(r) AMT Ethernet Port Settings 1"),
	)
	expectPut(t, transport, "AMT_BootSettingData", map[string]string{"UseSOL": "true"})

	ports, err := device.EnumerateResource("AMT_EthernetPortSettings")
	require.NoError(t, err)
	assert.Len(t, ports, 2)

	fields := wsman.NewMap()
	require.NoError(t, fields.Set("UseSOL", "true"))

	_, err = device.PutResource("AMT_BootSettingData", fields)
	require.NoError(t, err)

	_, err = device.GetResource("AMT_Nothing")
	require.ErrorIs(t, err, wsman.ErrUnknownResource)
}

func TestDevice_Dump(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	transport.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *wsman.Options, u string) (*wsman.Document, error) {
			name := path.Base(u)
			if name == "AMT_GeneralSettings" {
				return doc(t, faultBody), nil
			}

			return doc(t, instance(name, "ElementName", name)), nil
		}).
		AnyTimes()

	transport.EXPECT().Enumerate(gomock.Any(), nil, gomock.Any()).
		DoAndReturn(func(_ *wsman.Options, _ *wsman.Filter, u string) (*wsman.Document, error) {
			return doc(t, `<EnumerateResponse><EnumerationContext>`+path.Base(u)+`</EnumerationContext></EnumerateResponse>`), nil
		}).
		AnyTimes()

	transport.EXPECT().Pull(gomock.Any(), nil, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *wsman.Options, _ *wsman.Filter, _, context string) (*wsman.Document, error) {
			if context == "CIM_SoftwareIdentity" {
				return doc(t, `<PullResponse><Items></Items><EndOfSequence/></PullResponse>`), nil
			}

			return doc(t, `<PullResponse><Items>`+instance(context, "InstanceID", "0")+`</Items><EndOfSequence/></PullResponse>`), nil
		}).
		AnyTimes()

	report, err := device.Dump()
	require.NoError(t, err)

	assert.Equal(t, []string{"AMT_GeneralSettings"}, report.Unavailable)
	assert.Len(t, report.Entries, len(wsman.Resources())-1)

	names := make([]string, 0, len(report.Entries))

	for _, e := range report.Entries {
		names = append(names, e.Name)

		r, err := wsman.LookupResource(e.Name)
		require.NoError(t, err)

		if r.Supports(wsman.MethodGet) {
			assert.NotNil(t, e.Instance, e.Name)
			assert.Nil(t, e.Instances, e.Name)
		} else {
			assert.NotNil(t, e.Instances, e.Name)
		}
	}

	assert.IsNonDecreasing(t, names)

	out, err := report.JSON()
	require.NoError(t, err)

	header, body, found := bytes.Cut(out, []byte("\n"))
	require.True(t, found)
	assert.Equal(t, "# Could not dump AMT_GeneralSettings", string(header))

	var decoded map[string]json.RawMessage

	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.JSONEq(t, `[]`, string(decoded["CIM_SoftwareIdentity"]))
	assert.JSONEq(t, `{"ElementName":"AMT_BootCapabilities"}`, string(decoded["AMT_BootCapabilities"]))
	assert.JSONEq(t, `[{"InstanceID":"0"}]`, string(decoded["AMT_TLSSettingData"]))
	assert.NotContains(t, decoded, "AMT_GeneralSettings")
}

func TestDevice_DumpStopsOnConnectFailure(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	transport.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errDial).Times(wsman.RetryLimit)

	_, err := device.Dump()
	require.ErrorIs(t, err, wsman.ErrConnectFailure)
}

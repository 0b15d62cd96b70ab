package amt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/device-management-toolkit/amtctl/internal/amt"
	"github.com/device-management-toolkit/amtctl/internal/mocks"
	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

const (
	bootSource  = "CIM_BootSourceSetting"
	bootConfig  = "CIM_BootConfigSetting"
	bootService = "CIM_BootService"
	configID    = "Intel(r) AMT: Boot Configuration 0"
)

func bootSources(t *testing.T, transport *mocks.MockTransport) *gomock.Call {
	t.Helper()

	return expectWalk(t, transport, bootSource,
		instance(bootSource, "InstanceID", "Intel(r) AMT: Force Hard-drive Boot", "StructuredBootString", "CIM:Hard-Disk:1"),
		instance(bootSource, "InstanceID", "Intel(r) AMT: Force CD/DVD Boot", "StructuredBootString", "CIM:CD/DVD:1"),
		instance(bootSource, "InstanceID", "Intel(r) AMT: Force PXE Boot", "StructuredBootString", "CIM:Network:1"),
	)
}

func TestBoot_SupportedMediaIsCached(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)
	bootSources(t, transport).Times(2)

	for range 2 {
		media, err := device.Boot.SupportedMedia()
		require.NoError(t, err)
		assert.Equal(t, []string{"Hard-Disk", "CD/DVD", "Network"}, media)
	}

	device.Boot.Refresh()

	sources, err := device.Boot.Sources()
	require.NoError(t, err)
	assert.Len(t, sources, 3)
}

func TestBoot_SetMediumUnknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		medium    string
		enumerate bool
	}{
		{name: "not offered by the device", medium: "Floppy", enumerate: true},
		{name: "empty medium", medium: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			device, transport := newDevice(t)
			if tc.enumerate {
				bootSources(t, transport)
			}

			// no Invoke expectation: any invocation fails the test
			err := device.Boot.SetMedium(tc.medium)
			require.ErrorIs(t, err, amt.ErrLookup)
		})
	}
}

func TestBoot_SetMedium(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	bootSources(t, transport)
	expectGet(t, transport, bootConfig, "ElementName", "Intel(r) AMT: Boot Configuration", "InstanceID", configID)
	expectGet(t, transport, bootService, "ElementName", amt.BootServiceName, "Name", "Intel(r) AMT Boot Service")

	gomock.InOrder(
		expectInvoke(t, transport, bootConfig, "ChangeBootOrder", "0", func(opts *wsman.Options, fields map[string]string) {
			assert.Equal(t, "Intel(r) AMT: Force CD/DVD Boot", fields["Selector"])
			assert.Equal(t, uri(t, bootSource), fields["ResourceURI"])
			assert.Equal(t, []wsman.Selector{{Name: "InstanceID", Value: configID}}, opts.Selectors())
		}),
		expectInvoke(t, transport, bootService, "SetBootConfigRole", "0", func(opts *wsman.Options, fields map[string]string) {
			assert.Equal(t, configID, fields["Selector"])
			assert.Equal(t, "1", fields["Role"])
			assert.Empty(t, opts.Selectors())
		}),
	)

	require.NoError(t, device.Boot.SetMedium("CD/DVD"))
}

func TestBoot_SetMediumChangeOrderFails(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)

	bootSources(t, transport)
	expectGet(t, transport, bootConfig, "InstanceID", configID)
	expectInvoke(t, transport, bootConfig, "ChangeBootOrder", "1", nil)

	err := device.Boot.SetMedium("Network")
	require.ErrorIs(t, err, wsman.ErrNonZeroReturn)
}

func TestBoot_SetBootConfigRole(t *testing.T) {
	t.Parallel()

	t.Run("disable", func(t *testing.T) {
		t.Parallel()

		device, transport := newDevice(t)
		expectGet(t, transport, bootService, "ElementName", amt.BootServiceName)
		expectInvoke(t, transport, bootService, "SetBootConfigRole", "0", func(_ *wsman.Options, fields map[string]string) {
			assert.Equal(t, "32768", fields["Role"])
		})

		require.NoError(t, device.Boot.SetBootConfigRole(false))
	})

	t.Run("unexpected service", func(t *testing.T) {
		t.Parallel()

		device, transport := newDevice(t)
		expectGet(t, transport, bootService, "ElementName", "Some Other Boot Service")

		err := device.Boot.SetBootConfigRole(true)
		require.ErrorIs(t, err, amt.ErrUnexpectedService)
	})
}

func TestBoot_Config(t *testing.T) {
	t.Parallel()

	device, transport := newDevice(t)
	expectGet(t, transport, "AMT_BootSettingData", "BIOSPause", "false", "UseSOL", "true")

	config, err := device.Boot.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"BIOSPause", "UseSOL"}, config.Keys())
}

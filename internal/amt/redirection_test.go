package amt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/device-management-toolkit/amtctl/internal/amt"
)

func TestFeatures_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		features []amt.Feature
		code     int
	}{
		{features: []amt.Feature{}, code: amt.RedirectionNone},
		{features: []amt.Feature{amt.FeatureIDER}, code: amt.RedirectionIDEROnly},
		{features: []amt.Feature{amt.FeatureSoL}, code: amt.RedirectionSoLOnly},
		{features: []amt.Feature{amt.FeatureSoL, amt.FeatureIDER}, code: amt.RedirectionBoth},
	}

	for _, tc := range tests {
		code, err := amt.EncodeFeatures(tc.features...)
		require.NoError(t, err)
		assert.Equal(t, tc.code, code)

		set, err := amt.DecodeFeatures(code)
		require.NoError(t, err)
		assert.Equal(t, tc.features, set.Enabled())
	}
}

func TestEncodeFeatures_Order(t *testing.T) {
	t.Parallel()

	code, err := amt.EncodeFeatures(amt.FeatureIDER, amt.FeatureSoL)
	require.NoError(t, err)
	assert.Equal(t, amt.RedirectionBoth, code)

	_, err = amt.EncodeFeatures(amt.FeatureSoL, "KVM")
	require.ErrorIs(t, err, amt.ErrValidation)
}

func TestDecodeFeatures_Unknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    int
		wantErr error
	}{
		{code: 2, wantErr: amt.ErrLookup},
		{code: 6, wantErr: amt.ErrLookup},
		{code: 12, wantErr: amt.ErrUnknownState},
		{code: 32767, wantErr: amt.ErrUnknownState},
		{code: 32772, wantErr: amt.ErrUnknownState},
	}

	for _, tc := range tests {
		_, err := amt.DecodeFeatures(tc.code)
		require.ErrorIs(t, err, tc.wantErr, "code %d", tc.code)
	}
}

func TestRedirection_Features(t *testing.T) {
	t.Parallel()

	t.Run("read", func(t *testing.T) {
		t.Parallel()

		device, transport := newDevice(t)
		expectGet(t, transport, redirection, "EnabledState", "32770", "ListenerEnabled", "true")

		set, err := device.Redirection.EnabledFeatures()
		require.NoError(t, err)
		assert.True(t, set.IsEnabled(amt.FeatureSoL))
		assert.False(t, set.IsEnabled(amt.FeatureIDER))
	})

	t.Run("write merges into the current instance", func(t *testing.T) {
		t.Parallel()

		device, transport := newDevice(t)
		expectGet(t, transport, redirection, "EnabledState", "32768", "ListenerEnabled", "true")
		expectPut(t, transport, redirection, map[string]string{"EnabledState": "32771", "ListenerEnabled": "true"})

		require.NoError(t, device.Redirection.SetEnabledFeatures(amt.FeatureSoL, amt.FeatureIDER))
	})

	t.Run("invalid feature sends nothing", func(t *testing.T) {
		t.Parallel()

		device, _ := newDevice(t)
		require.ErrorIs(t, device.Redirection.SetEnabledFeatures("USBR"), amt.ErrValidation)
	})
}

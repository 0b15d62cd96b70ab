package amt

import (
	"fmt"
	"slices"
	"strconv"
)

// Feature is a redirection feature.
type Feature string

const (
	FeatureSoL  Feature = "SoL"
	FeatureIDER Feature = "IDER"
)

// AMT_RedirectionService EnabledState codes packing the feature set.
const (
	RedirectionNone     = 32768
	RedirectionIDEROnly = 32769
	RedirectionSoLOnly  = 32770
	RedirectionBoth     = 32771
)

var redirectionStateLabels = map[int]string{
	RedirectionNone:     "IDER and SOL are disabled",
	RedirectionIDEROnly: "IDER is enabled and SOL is disabled",
	RedirectionSoLOnly:  "SOL is enabled and IDER is disabled",
	RedirectionBoth:     "IDER and SOL are enabled",
}

// NewFeatureSet returns an empty set over {SoL, IDER}.
func NewFeatureSet() *EnablementMap[Feature] {
	return NewEnablementMap(FeatureSoL, FeatureIDER)
}

// EncodeFeatures maps a feature set to its EnabledState code.
func EncodeFeatures(features ...Feature) (int, error) {
	set := NewFeatureSet()
	if err := set.Validate(features); err != nil {
		return 0, err
	}

	sol := slices.Contains(features, FeatureSoL)
	ider := slices.Contains(features, FeatureIDER)

	switch {
	case sol && ider:
		return RedirectionBoth, nil
	case sol:
		return RedirectionSoLOnly, nil
	case ider:
		return RedirectionIDEROnly, nil
	default:
		return RedirectionNone, nil
	}
}

// DecodeFeatures unpacks an EnabledState code. A standard CIM EnabledState
// below the reserved range fails with ErrLookup; any other unknown code
// fails with ErrUnknownState.
func DecodeFeatures(code int) (*EnablementMap[Feature], error) {
	if _, ok := redirectionStateLabels[code]; !ok {
		if label, known := enabledStateLabels[code]; known {
			return nil, fmt.Errorf("%w: redirection state %d (%s)", ErrLookup, code, label)
		}

		return nil, fmt.Errorf("%w: redirection state %d", ErrUnknownState, code)
	}

	set := NewFeatureSet()

	if code == RedirectionIDEROnly || code == RedirectionBoth {
		_ = set.Set(FeatureIDER, true)
	}

	if code == RedirectionSoLOnly || code == RedirectionBoth {
		_ = set.Set(FeatureSoL, true)
	}

	return set, nil
}

// Redirection controls Serial-over-LAN and IDE redirection.
type Redirection struct {
	capability
}

// EnabledFeatures reads the enabled redirection features.
func (r *Redirection) EnabledFeatures() (*EnablementMap[Feature], error) {
	code, err := r.intSetting(redirection, "EnabledState")
	if err != nil {
		return nil, err
	}

	return DecodeFeatures(code)
}

// SetEnabledFeatures enables exactly features.
func (r *Redirection) SetEnabledFeatures(features ...Feature) error {
	code, err := EncodeFeatures(features...)
	if err != nil {
		return err
	}

	if err := r.put(redirection, true, field{"EnabledState", strconv.Itoa(code)}); err != nil {
		return err
	}

	r.log.Info("amt - redirection set to %s", redirectionStateLabels[code])

	return nil
}

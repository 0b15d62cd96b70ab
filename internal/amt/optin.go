package amt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

// ConsentLevel is the user consent requirement for remote sessions.
type ConsentLevel string

const (
	ConsentNone ConsentLevel = "None"
	ConsentKVM  ConsentLevel = "KVM"
	ConsentAll  ConsentLevel = "All"
)

// OptInRequired codes.
const (
	consentCodeNone int64 = 0
	consentCodeKVM  int64 = 1
	consentCodeAll  int64 = 4294967295
)

var consentLevels = []struct {
	code  int64
	level ConsentLevel
}{
	{code: consentCodeNone, level: ConsentNone},
	{code: consentCodeKVM, level: ConsentKVM},
	{code: consentCodeAll, level: ConsentAll},
}

// Code TTL bounds.
const (
	MinCodeTTL = 60 * time.Second
	MaxCodeTTL = 900 * time.Second
)

var optInStates = map[int]string{
	0: "Not started",
	1: "Requested",
	2: "Displayed",
	3: "Received",
	4: "In Session",
}

const optInService = "IPS_OptInService"

// OptIn manages user consent and opt-in codes.
type OptIn struct {
	capability
}

func newConsentButtons() *RadioButtons[ConsentLevel] {
	return NewRadioButtons(ConsentNone, ConsentKVM, ConsentAll)
}

// Required reads the consent level, selected among all levels.
func (o *OptIn) Required() (*RadioButtons[ConsentLevel], error) {
	v, err := o.setting(optInService, "OptInRequired")
	if err != nil {
		return nil, err
	}

	code, err := v.Int64()
	if err != nil {
		return nil, err
	}

	buttons := newConsentButtons()

	for _, c := range consentLevels {
		if c.code == code {
			_ = buttons.Select(c.level)

			return buttons, nil
		}
	}

	return nil, fmt.Errorf("%w: opt-in requirement %d", ErrUnknownState, code)
}

// SetRequired sets the consent level.
func (o *OptIn) SetRequired(level ConsentLevel) error {
	for _, c := range consentLevels {
		if c.level == level {
			return o.put(optInService, true, field{"OptInRequired", strconv.FormatInt(c.code, 10)})
		}
	}

	return fmt.Errorf("%w: consent level %q is not one of %v", ErrLookup, level, newConsentButtons().Options())
}

// CodeTTL returns how long an opt-in code stays valid.
func (o *OptIn) CodeTTL() (time.Duration, error) {
	seconds, err := o.intSetting(optInService, "OptInCodeTimeout")
	if err != nil {
		return 0, err
	}

	return time.Duration(seconds) * time.Second, nil
}

// SetCodeTTL sets how long an opt-in code stays valid. It must be a whole
// number of seconds between 60 and 900 inclusive.
func (o *OptIn) SetCodeTTL(ttl time.Duration) error {
	if ttl%time.Second != 0 || ttl < MinCodeTTL || ttl > MaxCodeTTL {
		return fmt.Errorf("%w: TTL %s must be a whole number of seconds between %d and %d",
			ErrValidation, ttl, int(MinCodeTTL.Seconds()), int(MaxCodeTTL.Seconds()))
	}

	return o.put(optInService, true, field{"OptInCodeTimeout", strconv.Itoa(int(ttl / time.Second))})
}

// State returns the opt-in session state.
func (o *OptIn) State() (string, error) {
	code, err := o.intSetting(optInService, "OptInState")
	if err != nil {
		return "", err
	}

	state, ok := optInStates[code]
	if !ok {
		return "", fmt.Errorf("%w: opt-in state %d", ErrUnknownState, code)
	}

	return state, nil
}

// StartOptIn asks the firmware to display a consent code to the user.
func (o *OptIn) StartOptIn() error {
	return o.invoke(wsman.Invocation{Service: optInService, Method: "StartOptIn"})
}

// CancelOptIn cancels a pending or active consent session.
func (o *OptIn) CancelOptIn() error {
	return o.invoke(wsman.Invocation{Service: optInService, Method: "CancelOptIn"})
}

// SendOptInCode submits the code the user read from the host display.
func (o *OptIn) SendOptInCode(code int) error {
	if code < 0 || code > 999999 {
		return fmt.Errorf("%w: opt-in code must have at most six digits", ErrValidation)
	}

	return o.invoke(wsman.Invocation{
		Service:    optInService,
		Method:     "SendOptInCode",
		ArgsBefore: []wsman.Arg{{Name: "OptInCode", Value: strconv.Itoa(code)}},
	})
}

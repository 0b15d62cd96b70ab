package amt

import (
	"fmt"
	"strconv"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

// Power state codes sent by the convenience transitions.
const (
	PowerOn    = 2
	PowerReset = 5
	PowerOff   = 8
)

const powerStatusResource = "CIM_AssociatedPowerManagementService"

// Power controls the host power state.
type Power struct {
	capability
}

// State reads and decodes the current power state.
func (p *Power) State() (StateMap, error) {
	code, err := p.intSetting(powerStatusResource, "PowerState")
	if err != nil {
		return StateMap{}, err
	}

	state, ok := PowerState(code)
	if !ok {
		return StateMap{}, fmt.Errorf("%w: power state %d", ErrUnknownState, code)
	}

	return state, nil
}

// RequestPowerStateChange asks the firmware to move to the state with code.
func (p *Power) RequestPowerStateChange(code int) error {
	state, ok := PowerState(code)
	if !ok {
		return fmt.Errorf("%w: power state %d is not defined", ErrValidation, code)
	}

	err := p.invoke(wsman.Invocation{
		Service:      "CIM_PowerManagementService",
		Resource:     "CIM_ComputerSystem",
		AffectedItem: "ManagedElement",
		Method:       "RequestPowerStateChange",
		Anonymous:    true,
		Selector: &wsman.Selector{
			Name:  "Name",
			Value: "ManagedSystem",
			Extra: "Intel(r) AMT Power Management Service",
		},
		ArgsBefore: []wsman.Arg{{Name: "PowerState", Value: strconv.Itoa(code)}},
	})
	if err != nil {
		return err
	}

	p.log.Info("amt - power state change to %s requested", state)

	return nil
}

// TurnOn powers the host on.
func (p *Power) TurnOn() error {
	code, _ := PowerStateCode(StateMap{State: "on"})

	return p.RequestPowerStateChange(code)
}

// TurnOff powers the host off (soft).
func (p *Power) TurnOff() error {
	return p.RequestPowerStateChange(PowerOff)
}

// Reset power cycles the host.
func (p *Power) Reset() error {
	return p.RequestPowerStateChange(PowerReset)
}

// Toggle turns an on host off and an off host on. Any other current state
// is an error and nothing is sent.
func (p *Power) Toggle() error {
	state, err := p.State()
	if err != nil {
		return err
	}

	switch state.State {
	case "on":
		return p.TurnOff()
	case "off":
		return p.TurnOn()
	default:
		return fmt.Errorf("%w: cannot toggle power from state %s", ErrPrecondition, state)
	}
}

package amt

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
)

// KVM listener ports.
const (
	Port5900  = 5900
	Port16994 = 16994
	Port16995 = 16995
)

const (
	kvmSAP      = "CIM_KVMRedirectionSAP"
	kvmSettings = "IPS_KVMRedirectionSettingData"
	redirection = "AMT_RedirectionService"
	tlsSettings = "AMT_TLSSettingData"

	kvmRequestEnable  = 2
	kvmRequestDisable = 3
)

// KVM controls remote keyboard, video and mouse redirection.
type KVM struct {
	capability
}

// Enabled reports whether KVM redirection is enabled. It can be true while
// no port is enabled.
func (k *KVM) Enabled() (bool, error) {
	code, err := k.intSetting(kvmSAP, "EnabledState")
	if err != nil {
		return false, err
	}

	state, ok := kvmEnablementMap[code]
	if !ok {
		return false, fmt.Errorf("%w: KVM enabled state %d", ErrUnknownState, code)
	}

	return state.enabled, nil
}

// SetEnabled enables or disables KVM redirection.
func (k *KVM) SetEnabled(on bool) error {
	requested := kvmRequestDisable
	if on {
		requested = kvmRequestEnable
	}

	return k.invoke(wsman.Invocation{
		Service:    kvmSAP,
		Method:     "RequestStateChange",
		ArgsBefore: []wsman.Arg{{Name: "RequestedState", Value: strconv.Itoa(requested)}},
	})
}

func (k *KVM) tlsEnabled() (bool, error) {
	instances, err := k.walk(tlsSettings, nil)
	if err != nil {
		return false, err
	}

	if len(instances) == 0 {
		return false, fmt.Errorf("amt - %s: %w", tlsSettings, wsman.ErrElementNotFound)
	}

	return instances[0].Child("Enabled").Bool()
}

// EnabledPorts reads which KVM ports are listening. 16995 is enabled when
// 16994 is and TLS is on.
func (k *KVM) EnabledPorts() (*EnablementMap[int], error) {
	ports := NewEnablementMap(Port5900, Port16994, Port16995)

	is5900, err := k.boolSetting(kvmSettings, "Is5900PortEnabled")
	if err != nil {
		return nil, err
	}

	if is5900 {
		_ = ports.Toggle(Port5900)
	}

	listener, err := k.boolSetting(redirection, "ListenerEnabled")
	if err != nil {
		return nil, err
	}

	if listener {
		_ = ports.Toggle(Port16994)

		tls, err := k.tlsEnabled()
		if err != nil {
			return nil, err
		}

		if tls {
			_ = ports.Toggle(Port16995)
		}
	}

	return ports, nil
}

// SetEnabledPorts makes exactly ports enabled. Port 16995 may only be
// enabled together with 16994 and with TLS on. One put is issued per
// changed port; the device is not re-read between puts.
func (k *KVM) SetEnabledPorts(ports ...int) error {
	current, err := k.EnabledPorts()
	if err != nil {
		return err
	}

	if err := current.Validate(ports); err != nil {
		return err
	}

	want16994 := slices.Contains(ports, Port16994)
	want16995 := slices.Contains(ports, Port16995)

	if want16995 && !want16994 {
		return fmt.Errorf("%w: port 16995 cannot be enabled unless port 16994 is enabled also", ErrPrecondition)
	}

	if want16995 && !current.IsEnabled(Port16995) {
		tls, err := k.tlsEnabled()
		if err != nil {
			return err
		}

		if !tls {
			return fmt.Errorf("%w: port 16995 can only be set by enabling both TLS and port 16994", ErrPrecondition)
		}
	}

	if !want16995 && want16994 && current.IsEnabled(Port16995) {
		return fmt.Errorf("%w: port 16995 follows port 16994 while TLS is enabled", ErrPrecondition)
	}

	for _, port := range current.Changes(ports) {
		on := !current.IsEnabled(port)

		switch port {
		case Port5900:
			err = k.put(kvmSettings, true, field{"Is5900PortEnabled", strconv.FormatBool(on)})
		case Port16994:
			err = k.put(redirection, true, field{"ListenerEnabled", strconv.FormatBool(on)})
		}

		if err != nil {
			return err
		}

		_ = current.Toggle(port)
	}

	k.log.Info("amt - KVM ports now %v", current.Enabled())

	return nil
}

// DefaultScreen returns the screen shown when a session starts.
func (k *KVM) DefaultScreen() (int, error) {
	return k.intSetting(kvmSettings, "DefaultScreen")
}

// SetDefaultScreen sets the screen shown when a session starts.
func (k *KVM) SetDefaultScreen(screen int) error {
	return k.put(kvmSettings, true, field{"DefaultScreen", strconv.Itoa(screen)})
}

// OptInTimeout returns the user opt-in timeout in seconds. Zero means
// opt-in is not required.
func (k *KVM) OptInTimeout() (int, error) {
	settings, err := k.get(kvmSettings)
	if err != nil {
		return 0, err
	}

	policy, err := settings.Child("OptInPolicy").Bool()
	if err != nil {
		return 0, err
	}

	if !policy {
		return 0, nil
	}

	return settings.Child("OptInPolicyTimeout").Int()
}

// SetOptInTimeout sets the opt-in timeout; zero disables the opt-in policy.
func (k *KVM) SetOptInTimeout(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: opt-in timeout %d is negative", ErrValidation, seconds)
	}

	if seconds == 0 {
		return k.put(kvmSettings, true, field{"OptInPolicy", "false"})
	}

	return k.put(kvmSettings, true,
		field{"OptInPolicy", "true"},
		field{"OptInPolicyTimeout", strconv.Itoa(seconds)},
	)
}

// SessionTimeout returns the session timeout in minutes.
func (k *KVM) SessionTimeout() (int, error) {
	return k.intSetting(kvmSettings, "SessionTimeout")
}

// SetSessionTimeout sets the session timeout in minutes.
func (k *KVM) SetSessionTimeout(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: session timeout %d is negative", ErrValidation, minutes)
	}

	return k.put(kvmSettings, true, field{"SessionTimeout", strconv.Itoa(minutes)})
}

// SetPassword sets the RFB password used by standard VNC viewers on port
// 5900. The firmware never returns it, so there is no getter.
func (k *KVM) SetPassword(password string) error {
	return k.put(kvmSettings, true, field{"RFBPassword", password})
}

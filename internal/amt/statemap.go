package amt

// StateMap is the decoded form of an integer state code: a primary state
// and an optional qualifying sub-state.
type StateMap struct {
	State    string
	SubState string
}

func (s StateMap) String() string {
	if s.SubState == "" {
		return s.State
	}

	return s.State + " (" + s.SubState + ")"
}

// powerStateMap is indexed by the CIM PowerState code. Code 0 is undefined.
var powerStateMap = [...]StateMap{
	{},
	{State: "other"},
	{State: "on"},
	{State: "sleep", SubState: "Light"},
	{State: "sleep", SubState: "Deep"},
	{State: "cycle", SubState: "(Off - Soft)"},
	{State: "off", SubState: "hard"},
	{State: "hibernate", SubState: "(Off - Soft)"},
	{State: "off", SubState: "soft"},
	{State: "cycle", SubState: "(Off - Hard)"},
	{State: "Master Bus Reset"},
	{State: "Diagnostic Interrupt (NMI)"},
	{State: "off", SubState: "Soft Graceful"},
	{State: "off", SubState: "Hard Graceful"},
	{State: "Master Bus Reset", SubState: "Graceful"},
	{State: "cycle", SubState: "(Off - Soft Graceful)"},
	{State: "cycle", SubState: "(Off - Hard Graceful)"},
	{State: "Diagnostic Interrupt (INIT)"},
}

// PowerState decodes a CIM PowerState code.
func PowerState(code int) (StateMap, bool) {
	if code <= 0 || code >= len(powerStateMap) {
		return StateMap{}, false
	}

	return powerStateMap[code], true
}

// PowerStateCode returns the code of s.
func PowerStateCode(s StateMap) (int, bool) {
	for code, candidate := range powerStateMap {
		if code > 0 && candidate == s {
			return code, true
		}
	}

	return 0, false
}

// kvmEnablementMap decodes CIM_KVMRedirectionSAP EnabledState. Other codes
// are undefined for KVM.
var kvmEnablementMap = map[int]struct {
	enabled bool
	label   string
}{
	2: {enabled: true, label: "Enabled"},
	6: {enabled: true, label: "Enabled But Offline"},
	3: {enabled: false, label: "Disabled"},
}

// enabledStateLabels are the CIM EnabledState values.
var enabledStateLabels = map[int]string{
	0:  "Unknown",
	1:  "Other",
	2:  "Enabled",
	3:  "Disabled",
	4:  "Shutting Down",
	5:  "Not Applicable",
	6:  "Enabled but Offline",
	7:  "In Test",
	8:  "Deferred",
	9:  "Quiesce",
	10: "Starting",
	11: "DMTF Reserved",
}

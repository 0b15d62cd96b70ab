package wsman

import (
	"fmt"
	"sort"
)

// Method is a protocol operation a resource supports.
type Method string

const (
	MethodGet       Method = "get"
	MethodPut       Method = "put"
	MethodEnumerate Method = "enumerate"
	MethodInvoke    Method = "invoke"
)

// Resource is a named AMT resource and the operations it supports.
type Resource struct {
	Name    string
	URI     string
	Methods []Method
}

// Supports reports whether the resource defines m.
func (r Resource) Supports(m Method) bool {
	for _, have := range r.Methods {
		if have == m {
			return true
		}
	}

	return false
}

func cim(name string, methods ...Method) Resource {
	return Resource{Name: name, URI: CIMSchemaBase + name, Methods: methods}
}

func amt(name string, methods ...Method) Resource {
	return Resource{Name: name, URI: AMTSchemaBase + name, Methods: methods}
}

func ips(name string, methods ...Method) Resource {
	return Resource{Name: name, URI: IPSSchemaBase + name, Methods: methods}
}

// resources is the static name to URI and method table. It is never mutated.
var resources = indexResources(
	amt("AMT_BootCapabilities", MethodGet),
	amt("AMT_BootSettingData", MethodGet, MethodPut),
	amt("AMT_EthernetPortSettings", MethodEnumerate),
	amt("AMT_GeneralSettings", MethodGet),
	amt("AMT_RedirectionService", MethodGet, MethodPut, MethodInvoke),
	amt("AMT_SetupAndConfigurationService", MethodGet),
	amt("AMT_TLSSettingData", MethodEnumerate),
	cim("CIM_AssociatedPowerManagementService", MethodGet, MethodEnumerate),
	cim("CIM_BIOSElement", MethodGet),
	cim("CIM_BootConfigSetting", MethodGet, MethodInvoke),
	cim("CIM_BootService", MethodGet, MethodInvoke),
	cim("CIM_BootSourceSetting", MethodEnumerate),
	cim("CIM_Chassis", MethodGet),
	cim("CIM_ComputerSystem", MethodEnumerate),
	cim("CIM_KVMRedirectionSAP", MethodGet, MethodInvoke),
	cim("CIM_PowerManagementService", MethodGet, MethodInvoke),
	cim("CIM_SoftwareIdentity", MethodEnumerate),
	ips("IPS_KVMRedirectionSettingData", MethodGet, MethodPut),
	ips("IPS_OptInService", MethodGet, MethodPut, MethodInvoke),
)

func indexResources(list ...Resource) map[string]Resource {
	m := make(map[string]Resource, len(list))
	for _, r := range list {
		m[r.Name] = r
	}

	return m
}

// LookupResource returns the registered resource called name.
func LookupResource(name string) (Resource, error) {
	r, ok := resources[name]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	r.Methods = append([]Method(nil), r.Methods...)

	return r, nil
}

// ResourceURI returns the wire URI of the resource called name.
func ResourceURI(name string) (string, error) {
	r, ok := resources[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	return r.URI, nil
}

// Resources returns every registered resource sorted by name.
func Resources() []Resource {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]Resource, 0, len(names))

	for _, name := range names {
		r, _ := LookupResource(name)
		out = append(out, r)
	}

	return out
}

// Address schemas used in method invocation endpoint references.
const (
	SchemaAddressing          = "addressing"
	SchemaAddressingAnonymous = "addressing_anonymous"
	SchemaWsman               = "wsman"
)

var schemas = map[string]string{
	SchemaAddressing:          NsAddressing,
	SchemaAddressingAnonymous: AddressAnonymous,
	SchemaWsman:               NsWsman,
}

// SchemaURI returns the namespace URI registered under name.
func SchemaURI(name string) (string, bool) {
	uri, ok := schemas[name]

	return uri, ok
}

func lookupSchema(name string) (string, error) {
	uri, ok := SchemaURI(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	return uri, nil
}

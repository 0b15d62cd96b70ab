package wsman

// XML namespace URIs used by AMT WS-Management messages.
const (
	// NsSoap is the SOAP 1.2 envelope namespace.
	NsSoap = "http://www.w3.org/2003/05/soap-envelope"

	// NsAddressing is the WS-Addressing namespace.
	NsAddressing = "http://schemas.xmlsoap.org/ws/2004/08/addressing"

	// NsWsman is the DMTF WS-Management namespace.
	NsWsman = "http://schemas.dmtf.org/wbem/wsman/1/wsman.xsd"

	// NsTransfer is the WS-Transfer namespace.
	NsTransfer = "http://schemas.xmlsoap.org/ws/2004/09/transfer"

	// NsEnumeration is the WS-Enumeration namespace.
	NsEnumeration = "http://schemas.xmlsoap.org/ws/2004/09/enumeration"

	// NsXsi is the XML Schema Instance namespace.
	NsXsi = "http://www.w3.org/2001/XMLSchema-instance"
)

// WS-Addressing constants.
const (
	// AddressAnonymous is the WS-Addressing anonymous endpoint.
	AddressAnonymous = "http://schemas.xmlsoap.org/ws/2004/08/addressing/role/anonymous"
)

// Resource URI prefixes for the three AMT schema families.
const (
	CIMSchemaBase = "http://schemas.dmtf.org/wbem/wscim/1/cim-schema/2/"
	AMTSchemaBase = "http://intel.com/wbem/wscim/1/amt-schema/1/"
	IPSSchemaBase = "http://intel.com/wbem/wscim/1/ips-schema/1/"
)

// Action URIs.
const (
	ActionGet       = "http://schemas.xmlsoap.org/ws/2004/09/transfer/Get"
	ActionPut       = "http://schemas.xmlsoap.org/ws/2004/09/transfer/Put"
	ActionEnumerate = "http://schemas.xmlsoap.org/ws/2004/09/enumeration/Enumerate"
	ActionPull      = "http://schemas.xmlsoap.org/ws/2004/09/enumeration/Pull"
)

// SelectorFilterDialect is the dialect of a selector-based enumeration filter.
const SelectorFilterDialect = "http://schemas.dmtf.org/wbem/wsman/1/wsman/SelectorFilter"

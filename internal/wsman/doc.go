// Package wsman is the WS-Management transaction layer for Intel AMT.
//
// Responses are normalized into a Document tree with namespace prefixes
// stripped. Client wraps a Transport with bounded retry and fault
// validation, drives enumerations to completion and builds method
// invocations whose <Method>_OUTPUT/ReturnValue decides success.
package wsman

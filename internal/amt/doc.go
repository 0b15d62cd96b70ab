// Package amt models the capabilities of an Intel AMT device as state
// machines over WS-Management resources. Every setter validates its input
// against the current device state before any request is sent.
package amt

package amt

import (
	"fmt"
	"slices"
)

// EnablementMap tracks independently enabled members of a fixed universe.
type EnablementMap[T comparable] struct {
	universe []T
	enabled  map[T]bool
}

// NewEnablementMap returns a map over universe with nothing enabled.
func NewEnablementMap[T comparable](universe ...T) *EnablementMap[T] {
	return &EnablementMap[T]{
		universe: slices.Clone(universe),
		enabled:  make(map[T]bool, len(universe)),
	}
}

// Values returns the universe in declaration order.
func (m *EnablementMap[T]) Values() []T {
	return slices.Clone(m.universe)
}

// Enabled returns the enabled members in universe order.
func (m *EnablementMap[T]) Enabled() []T {
	out := make([]T, 0, len(m.enabled))

	for _, v := range m.universe {
		if m.enabled[v] {
			out = append(out, v)
		}
	}

	return out
}

// IsEnabled reports whether v is enabled.
func (m *EnablementMap[T]) IsEnabled(v T) bool {
	return m.enabled[v]
}

// Contains reports whether v belongs to the universe.
func (m *EnablementMap[T]) Contains(v T) bool {
	return slices.Contains(m.universe, v)
}

// Validate rejects values outside the universe.
func (m *EnablementMap[T]) Validate(values []T) error {
	var invalid []T

	for _, v := range values {
		if !m.Contains(v) {
			invalid = append(invalid, v)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%w: invalid member(s) %v, valid members are %v", ErrValidation, invalid, m.universe)
	}

	return nil
}

// Toggle flips v.
func (m *EnablementMap[T]) Toggle(v T) error {
	return m.Set(v, !m.enabled[v])
}

// Set enables or disables v.
func (m *EnablementMap[T]) Set(v T, on bool) error {
	if !m.Contains(v) {
		return fmt.Errorf("%w: %v is not one of %v", ErrValidation, v, m.universe)
	}

	if on {
		m.enabled[v] = true
	} else {
		delete(m.enabled, v)
	}

	return nil
}

// Changes returns, in universe order, the members whose state differs
// between the map and the target selection.
func (m *EnablementMap[T]) Changes(target []T) []T {
	var out []T

	for _, v := range m.universe {
		if m.enabled[v] != slices.Contains(target, v) {
			out = append(out, v)
		}
	}

	return out
}

// RadioButtons holds one selected option out of a fixed universe.
type RadioButtons[T comparable] struct {
	options  []T
	selected T
	set      bool
}

// NewRadioButtons returns buttons over options with nothing selected.
func NewRadioButtons[T comparable](options ...T) *RadioButtons[T] {
	return &RadioButtons[T]{options: slices.Clone(options)}
}

// Options returns the universe in declaration order.
func (r *RadioButtons[T]) Options() []T {
	return slices.Clone(r.options)
}

// Select makes v the selected option.
func (r *RadioButtons[T]) Select(v T) error {
	if !slices.Contains(r.options, v) {
		return fmt.Errorf("%w: %v is not one of %v", ErrLookup, v, r.options)
	}

	r.selected = v
	r.set = true

	return nil
}

// Selected returns the selected option and whether one is selected.
func (r *RadioButtons[T]) Selected() (T, bool) {
	return r.selected, r.set
}

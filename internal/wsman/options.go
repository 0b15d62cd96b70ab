package wsman

// Selector addresses one instance of a resource. Extra is an optional
// second value under the same Name, for instances only identified by two
// keys; it is only meaningful to method invocations.
type Selector struct {
	Name  string
	Value string
	Extra string
}

// Options are the per-request protocol options. They are a value owned by
// the caller; Clone before modifying options shared with other requests.
type Options struct {
	selectors   []Selector
	dump        bool
	silent      bool
	maxElements int
}

// NewOptions returns empty options.
func NewOptions() *Options {
	return &Options{}
}

// Clone returns an independent copy.
func (o *Options) Clone() *Options {
	if o == nil {
		return NewOptions()
	}

	c := *o
	c.selectors = append([]Selector(nil), o.selectors...)

	return &c
}

// AddSelector appends a selector to the outgoing SelectorSet.
func (o *Options) AddSelector(name, value string) *Options {
	o.selectors = append(o.selectors, Selector{Name: name, Value: value})

	return o
}

// Selectors returns the outgoing selectors in insertion order.
func (o *Options) Selectors() []Selector {
	if o == nil {
		return nil
	}

	return append([]Selector(nil), o.selectors...)
}

// WithDump marks requests for logging before they are sent.
func (o *Options) WithDump(dump bool) *Options {
	o.dump = dump

	return o
}

// Dump reports whether requests are logged before sending.
func (o *Options) Dump() bool {
	return o != nil && o.dump
}

// WithSilent makes fault responses return as documents instead of errors.
func (o *Options) WithSilent(silent bool) *Options {
	o.silent = silent

	return o
}

// Silent reports whether faults are returned instead of raised.
func (o *Options) Silent() bool {
	return o != nil && o.silent
}

// WithMaxElements sets the pull page size; zero leaves it to the endpoint.
func (o *Options) WithMaxElements(n int) *Options {
	o.maxElements = n

	return o
}

// MaxElements returns the pull page size.
func (o *Options) MaxElements() int {
	if o == nil {
		return 0
	}

	return o.maxElements
}

package amt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

// Device is one AMT endpoint. All capabilities share the device's protocol
// options, so SetDebug affects every later request.
type Device struct {
	Power       *Power
	KVM         *KVM
	Redirection *Redirection
	OptIn       *OptIn
	Boot        *Boot

	client *wsman.Client
	opts   *wsman.Options
	log    logger.Interface
}

// NewDevice builds a device on top of client.
func NewDevice(client *wsman.Client, log logger.Interface) *Device {
	c := capability{client: client, opts: wsman.NewOptions(), log: log}

	return &Device{
		Power:       &Power{capability: c},
		KVM:         &KVM{capability: c},
		Redirection: &Redirection{capability: c},
		OptIn:       &OptIn{capability: c},
		Boot:        &Boot{capability: c},
		client:      client,
		opts:        c.opts,
		log:         log,
	}
}

// SetDebug turns request dumping on or off for every later request. The flag
// is write only: there is no getter.
func (d *Device) SetDebug(on bool) {
	d.opts.WithDump(on)
	d.log.Debug("amt - request dumping set to %t", on)
}

// GetResource reads a registered singleton resource.
func (d *Device) GetResource(name string) (*wsman.Node, error) {
	return d.client.GetResource(name, d.opts)
}

// EnumerateResource lists every instance of a registered resource.
func (d *Device) EnumerateResource(name string) ([]*wsman.Node, error) {
	return d.client.EnumerateResource(name, d.opts, nil)
}

// PutResource writes fields to a registered resource, replacing the
// instance.
func (d *Device) PutResource(name string, fields *wsman.Node) (*wsman.Document, error) {
	return d.client.PutResource(wsman.Instance{Name: name, Fields: fields}, d.opts)
}

// DumpEntry is one retrieved resource. Exactly one of Instance and
// Instances is set.
type DumpEntry struct {
	Name      string
	Instance  *wsman.Node
	Instances []*wsman.Node
}

// DumpReport aggregates every retrievable resource of a device.
type DumpReport struct {
	Entries     []DumpEntry
	Unavailable []string
}

// Dump retrieves every registered resource, preferring get to enumerate.
// Resources answering with a WS-Management fault are listed as unavailable.
func (d *Device) Dump() (*DumpReport, error) {
	return d.dump(wsman.Resources())
}

func (d *Device) dump(resources []wsman.Resource) (*DumpReport, error) {
	report := &DumpReport{}

	for _, r := range resources {
		entry := DumpEntry{Name: r.Name}

		var err error

		switch {
		case r.Supports(wsman.MethodGet):
			entry.Instance, err = d.client.GetResource(r.Name, d.opts)
		case r.Supports(wsman.MethodEnumerate):
			entry.Instances, err = d.client.EnumerateResource(r.Name, d.opts, nil)
			if err == nil && entry.Instances == nil {
				entry.Instances = []*wsman.Node{}
			}
		default:
			return nil, fmt.Errorf("%w: %s has neither get nor enumerate", wsman.ErrUnsupportedOperation, r.Name)
		}

		if errors.Is(err, wsman.ErrFault) {
			d.log.Debug("amt - dump skipped %s: %v", r.Name, err)
			report.Unavailable = append(report.Unavailable, r.Name)

			continue
		}

		if err != nil {
			return nil, err
		}

		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

// JSON renders the report: one "# Could not dump" line per unavailable
// resource, then a JSON object keyed by resource name in dump order.
func (r *DumpReport) JSON() ([]byte, error) {
	var buf bytes.Buffer

	for _, name := range r.Unavailable {
		fmt.Fprintf(&buf, "# Could not dump %s\n", name)
	}

	buf.WriteByte('{')

	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}

		var value []byte
		if e.Instances != nil {
			value, err = json.Marshal(e.Instances)
		} else {
			value, err = json.Marshal(e.Instance)
		}

		if err != nil {
			return nil, fmt.Errorf("amt - dump %s: %w", e.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

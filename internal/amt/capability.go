package amt

import (
	"fmt"

	"github.com/device-management-toolkit/amtctl/internal/wsman"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

// field is one ordered name/value pair written by a put.
type field struct {
	name  string
	value string
}

// capability holds what every capability shares: the transaction layer and
// the device's protocol options.
type capability struct {
	client *wsman.Client
	opts   *wsman.Options
	log    logger.Interface
}

// get reads the instance of a singleton resource.
func (c capability) get(resource string) (*wsman.Node, error) {
	return c.client.GetResource(resource, c.opts)
}

// setting reads one field of a singleton resource.
func (c capability) setting(resource, name string) (*wsman.Node, error) {
	node, err := c.get(resource)
	if err != nil {
		return nil, err
	}

	v, err := node.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("amt - %s: %w", resource, err)
	}

	return v, nil
}

func (c capability) intSetting(resource, name string) (int, error) {
	v, err := c.setting(resource, name)
	if err != nil {
		return 0, err
	}

	return v.Int()
}

func (c capability) boolSetting(resource, name string) (bool, error) {
	v, err := c.setting(resource, name)
	if err != nil {
		return false, err
	}

	return v.Bool()
}

// put writes fields to resource. With asUpdate the fields are merged into
// the current instance; otherwise they replace it.
func (c capability) put(resource string, asUpdate bool, fields ...field) error {
	var update *wsman.Node

	if asUpdate {
		current, err := c.get(resource)
		if err != nil {
			return err
		}

		update = current.Clone()
	} else {
		update = wsman.NewMap()
	}

	for _, f := range fields {
		if err := update.Set(f.name, f.value); err != nil {
			return fmt.Errorf("amt - %s: %w", resource, err)
		}
	}

	if _, err := c.client.PutResource(wsman.Instance{Name: resource, Fields: update}, c.opts); err != nil {
		return err
	}

	c.log.Info("amt - updated %s", resource)

	return nil
}

// walk enumerates every instance of resource.
func (c capability) walk(resource string, filter *wsman.Filter) ([]*wsman.Node, error) {
	return c.client.EnumerateResource(resource, c.opts, filter)
}

func (c capability) invoke(inv wsman.Invocation) error {
	return c.client.InvokeMethod(inv, c.opts)
}

package wsman

import (
	"fmt"
)

// EnumerateAll drives enumerate and pull to completion and returns every
// itemName instance in the order the pages delivered them. Pull is never
// called again once a page reports EndOfSequence. On any error the items
// collected so far are discarded.
func (c *Client) EnumerateAll(uri, itemName string, opts *Options, filter *Filter) ([]*Node, error) {
	doc, err := c.Enumerate(uri, opts, filter)
	if err != nil {
		return nil, err
	}

	ctxNode, err := doc.Lookup("EnumerateResponse", "EnumerationContext")
	if err != nil {
		return nil, fmt.Errorf("wsman - enumerate %s: %w", uri, err)
	}

	context := ctxNode.Text()

	var items []*Node

	for {
		page, err := c.Pull(uri, opts, context)
		if err != nil {
			return nil, err
		}

		resp, err := page.Lookup("PullResponse")
		if err != nil {
			return nil, fmt.Errorf("wsman - pull %s: %w", uri, err)
		}

		items = append(items, resp.Child("Items").Child(itemName).Items()...)

		if resp.Has("EndOfSequence") {
			break
		}

		if next := resp.Child("EnumerationContext").Text(); next != "" {
			context = next
		}
	}

	recordEnumeration(itemName, len(items))

	return items, nil
}

// EnumerateResource enumerates a registered resource by name.
func (c *Client) EnumerateResource(name string, opts *Options, filter *Filter) ([]*Node, error) {
	uri, err := ResourceURI(name)
	if err != nil {
		return nil, err
	}

	return c.EnumerateAll(uri, name, opts, filter)
}

// GetResource reads a registered resource by name and returns its instance
// node.
func (c *Client) GetResource(name string, opts *Options) (*Node, error) {
	uri, err := ResourceURI(name)
	if err != nil {
		return nil, err
	}

	doc, err := c.Get(uri, opts)
	if err != nil {
		return nil, err
	}

	if doc.IsFault() {
		return doc.Body(), nil
	}

	node, err := doc.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("wsman - get %s: %w", name, err)
	}

	return node, nil
}

// PutResource writes inst to the URI registered under its name.
func (c *Client) PutResource(inst Instance, opts *Options) (*Document, error) {
	if inst.URI == "" {
		uri, err := ResourceURI(inst.Name)
		if err != nil {
			return nil, err
		}

		inst.URI = uri
	}

	payload, err := inst.Payload()
	if err != nil {
		return nil, err
	}

	return c.Put(inst.URI, payload, opts)
}

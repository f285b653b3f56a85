package sophosxg

import (
	"github.com/beevik/etree"
	"github.com/clbanning/mxj/v2"
)

// Operation selects the request semantics: Get reads, Set creates or updates,
// Remove deletes. The constant values are the element names on the wire.
type Operation string

const (
	Get    Operation = "Get"
	Set    Operation = "Set"
	Remove Operation = "Remove"
)

// Command is a single, self-contained request instance. Each Command owns its
// own document tree, deep-copied from the session's authentication template,
// so concurrent commands never share mutable XML state. A Command is built,
// sent and discarded; it is never reused.
type Command struct {
	Operation Operation
	Entity    string

	root *etree.Element
	body *etree.Element
}

// newCommand stamps a fresh request envelope: a copy of the Login template
// with the operation element and the entity tag appended beneath it. The
// Login block always precedes the operation block so the appliance can
// authenticate before evaluating the operation.
func (x *XG) newCommand(op Operation, entity string) *Command {
	root := x.auth.Copy()
	body := root.CreateElement(string(op)).CreateElement(entity)

	return &Command{
		Operation: op,
		Entity:    entity,
		root:      root,
		body:      body,
	}
}

// build assembles a schema-driven command: every field specification of the
// entity is serialized into the body in its declared order.
func (x *XG) build(op Operation, s *Schema, f Fields) (*Command, error) {
	cmd := x.newCommand(op, s.Name)

	if err := appendFields(cmd.body, s.Name, s.Fields, s.resolve(f)); err != nil {
		return nil, err
	}

	return cmd, nil
}

// Text renders the command to its exact on-wire form: no declaration, no
// added whitespace, child order equal to insertion order.
func (c *Command) Text() (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(c.root)
	return doc.WriteToString()
}

// Query reads the given entity type and returns the decoded response
// envelope unmodified. Any entity tag the appliance understands may be used,
// including ones this package has no schema for.
func (x *XG) Query(entity string) (mxj.Map, error) {
	res, err := x.do(x.newCommand(Get, entity))
	if err != nil {
		return nil, err
	}

	return res.Envelope, nil
}

// Execute runs an operation against an arbitrary entity tag. The build
// function, when non-nil, receives the entity element and shapes the request
// body directly; no field validation is performed. This is the escape hatch
// for appliance features not covered by a named schema.
func (x *XG) Execute(op Operation, entity string, build func(body *etree.Element)) (*Result, error) {
	cmd := x.newCommand(op, entity)

	if build != nil {
		build(cmd.body)
	}

	return x.do(cmd)
}

// set builds and sends a Set command for the given schema.
func (x *XG) set(s *Schema, f Fields) (*Status, error) {
	cmd, err := x.build(Set, s, f)
	if err != nil {
		return nil, err
	}

	res, err := x.do(cmd)
	if err != nil {
		return nil, err
	}

	return res.Status, nil
}

// remove sends a Remove command identifying the object by the schema's key
// element.
func (x *XG) remove(s *Schema, key string) (*Status, error) {
	if key == "" {
		return nil, &MissingFieldError{Entity: s.Name, Field: s.key()}
	}

	cmd := x.newCommand(Remove, s.Name)
	cmd.body.CreateElement(s.key()).SetText(key)

	res, err := x.do(cmd)
	if err != nil {
		return nil, err
	}

	return res.Status, nil
}

package sophosxg

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// FieldKind selects how a field specification is serialized.
type FieldKind int

const (
	// Scalar is a single element carrying text content.
	Scalar FieldKind = iota

	// RepeatedList is a wrapper element holding one item element per value,
	// in caller order. An empty list still emits the wrapper.
	RepeatedList

	// NestedGroup is a wrapper element holding one member element per
	// key/value pair, each pair carrying two named sub-elements. Pair order
	// is preserved as given.
	NestedGroup

	// Group is a block of further field specifications, optionally behind a
	// condition. A Group with a Tag emits a wrapper element; without one its
	// children are appended to the parent directly.
	Group
)

// Condition gates a conditional group. When Equals is set the group is
// emitted only when the named sibling field has exactly that value; when
// Equals is empty, presence of a non-empty value is enough.
type Condition struct {
	Field  string
	Equals string
}

func (c *Condition) holds(f Fields) bool {
	v, _ := f[c.Field].(string)
	if c.Equals == "" {
		return v != ""
	}
	return v == c.Equals
}

// FieldSpec describes one logical field of an entity: its tag, value kind and
// inclusion rule. Specs are declared once per entity type and shared
// read-only across all commands of that type.
type FieldSpec struct {
	Tag  string
	Kind FieldKind

	// Default is serialized when no value is supplied. Required fields with
	// neither a value nor a default fail with MissingFieldError before
	// anything reaches the wire. EmitEmpty forces an empty element where the
	// appliance expects the tag to be present regardless; otherwise an
	// absent optional scalar is omitted entirely, which the appliance treats
	// as "no change".
	Default   string
	Required  bool
	EmitEmpty bool

	// ItemTag names the per-value element of a RepeatedList.
	ItemTag string

	// MemberTag, KeyTag and ValueTag shape a NestedGroup: one MemberTag
	// element per pair, holding KeyTag and ValueTag sub-elements.
	MemberTag string
	KeyTag    string
	ValueTag  string

	// When and Children apply to Group specs.
	When     *Condition
	Children []FieldSpec
}

// Schema is the declarative field catalog for one entity type. Key names the
// element used to identify an object on Remove; it defaults to Name.
type Schema struct {
	Name   string
	Key    string
	Fields []FieldSpec
}

func (s *Schema) key() string {
	if s.Key == "" {
		return "Name"
	}
	return s.Key
}

// resolve copies the supplied values and fills in scalar defaults, so that
// conditions evaluate against the same effective values that end up on the
// wire.
func (s *Schema) resolve(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	applyDefaults(s.Fields, out)
	return out
}

func applyDefaults(specs []FieldSpec, f Fields) {
	for _, spec := range specs {
		switch spec.Kind {
		case Scalar:
			if v, _ := f[spec.Tag].(string); v == "" && spec.Default != "" {
				f[spec.Tag] = spec.Default
			}
		case Group:
			applyDefaults(spec.Children, f)
		}
	}
}

// Fields supplies caller values for an entity body, keyed by field tag.
// Scalars are strings, repeated lists are []string, nested groups are []Pair.
// Output ordering always comes from the schema's declared field order, never
// from map iteration.
type Fields map[string]interface{}

// Pair is one ordered key/value member of a nested group.
type Pair struct {
	Key   string
	Value string
}

func appendFields(parent *etree.Element, entity string, specs []FieldSpec, f Fields) error {
	for _, spec := range specs {
		if err := appendField(parent, entity, spec, f); err != nil {
			return err
		}
	}
	return nil
}

// appendField serializes one field specification under parent according to
// its kind and inclusion rule.
func appendField(parent *etree.Element, entity string, spec FieldSpec, f Fields) error {
	switch spec.Kind {
	case Scalar:
		v, err := scalarValue(f, spec.Tag)
		if err != nil {
			return errors.Wrap(err, entity)
		}
		if v == "" {
			if spec.Default != "" {
				parent.CreateElement(spec.Tag).SetText(spec.Default)
				return nil
			}
			if spec.Required {
				return &MissingFieldError{Entity: entity, Field: spec.Tag}
			}
			if spec.EmitEmpty {
				parent.CreateElement(spec.Tag)
			}
			return nil
		}
		parent.CreateElement(spec.Tag).SetText(v)

	case RepeatedList:
		items, err := listValue(f, spec.Tag)
		if err != nil {
			return errors.Wrap(err, entity)
		}
		wrap := parent.CreateElement(spec.Tag)
		for _, item := range items {
			wrap.CreateElement(spec.ItemTag).SetText(item)
		}

	case NestedGroup:
		pairs, err := pairValue(f, spec.Tag)
		if err != nil {
			return errors.Wrap(err, entity)
		}
		wrap := parent.CreateElement(spec.Tag)
		for _, p := range pairs {
			member := wrap.CreateElement(spec.MemberTag)
			member.CreateElement(spec.KeyTag).SetText(p.Key)
			member.CreateElement(spec.ValueTag).SetText(p.Value)
		}

	case Group:
		if spec.When != nil && !spec.When.holds(f) {
			return nil
		}
		target := parent
		if spec.Tag != "" {
			target = parent.CreateElement(spec.Tag)
		}
		return appendFields(target, entity, spec.Children, f)
	}

	return nil
}

func scalarValue(f Fields, tag string) (string, error) {
	v, ok := f[tag]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("field %s: value must be a string, got %T", tag, v)
	}
	return s, nil
}

func listValue(f Fields, tag string) ([]string, error) {
	v, ok := f[tag]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]string)
	if !ok {
		return nil, errors.Errorf("field %s: value must be a []string, got %T", tag, v)
	}
	return items, nil
}

func pairValue(f Fields, tag string) ([]Pair, error) {
	v, ok := f[tag]
	if !ok || v == nil {
		return nil, nil
	}
	pairs, ok := v.([]Pair)
	if !ok {
		return nil, errors.Errorf("field %s: value must be a []Pair, got %T", tag, v)
	}
	return pairs, nil
}

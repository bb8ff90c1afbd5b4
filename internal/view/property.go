package view

import (
	"fmt"
	"reflect"

	"github.com/danmuck/forgesync/internal/protocol/schema"
	"github.com/danmuck/forgesync/internal/trackable"
)

// Property is a named trackable property with its descriptor erased, so
// objects can be walked without knowing value types.
type Property interface {
	Name() string
	Object() schema.ObjectKind
	// Ordinal is the declaration index within the object kind.
	Ordinal() int
	Default() any
	Encode(s trackable.Serializer, v any) error
	Decode(d trackable.Deserializer, prev any) (any, error)
	Equal(a, b any) bool
}

// Prop binds a property name to a typed descriptor.
type Prop[T any] struct {
	object  schema.ObjectKind
	name    string
	ordinal int
	typ     trackable.Type[T]
	seed    func(prev T) T
}

var declared = map[schema.ObjectKind][]Property{}

func declare[T any](object schema.ObjectKind, name string, typ trackable.Type[T]) *Prop[T] {
	p := &Prop[T]{object: object, name: name, ordinal: len(declared[object]), typ: typ}
	declared[object] = append(declared[object], p)
	return p
}

// declareEmbedded declares a property whose decoder needs a live value to
// fill. seed supplies one when the current value is nil.
func declareEmbedded[T any](object schema.ObjectKind, name string, typ trackable.Type[T], seed func(prev T) T) *Prop[T] {
	p := declare(object, name, typ)
	p.seed = seed
	return p
}

// Properties returns every property declared for kind in declaration order.
func Properties(kind schema.ObjectKind) []Property {
	return append([]Property(nil), declared[kind]...)
}

// Lookup finds a declared property by wire name.
func Lookup(kind schema.ObjectKind, name string) (Property, bool) {
	for _, p := range declared[kind] {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (p *Prop[T]) Name() string              { return p.name }
func (p *Prop[T]) Object() schema.ObjectKind { return p.object }
func (p *Prop[T]) Ordinal() int              { return p.ordinal }
func (p *Prop[T]) Type() trackable.Type[T]   { return p.typ }
func (p *Prop[T]) Default() any              { return p.typ.Default() }

func (p *Prop[T]) String() string {
	return fmt.Sprintf("%s.%s", p.object, p.name)
}

func (p *Prop[T]) cast(v any) (T, error) {
	if v == nil {
		return p.typ.Default(), nil
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("view: %s holds %T, want %T", p, v, zero)
	}
	return t, nil
}

func (p *Prop[T]) Encode(s trackable.Serializer, v any) error {
	t, err := p.cast(v)
	if err != nil {
		return err
	}
	if err := p.typ.Serialize(s, t); err != nil {
		return fmt.Errorf("view: encode %s: %w", p, err)
	}
	return nil
}

func (p *Prop[T]) Decode(d trackable.Deserializer, prev any) (any, error) {
	t, err := p.cast(prev)
	if err != nil {
		return nil, err
	}
	if p.seed != nil {
		t = p.seed(t)
	}
	v, err := p.typ.Deserialize(d, t)
	if err != nil {
		return nil, fmt.Errorf("view: decode %s: %w", p, err)
	}
	return v, nil
}

func (p *Prop[T]) Equal(a, b any) bool {
	ta, errA := p.cast(a)
	tb, errB := p.cast(b)
	if errA != nil || errB != nil {
		return false
	}
	if eq, ok := any(ta).(interface{ Equal(T) bool }); ok {
		return eq.Equal(tb)
	}
	return reflect.DeepEqual(ta, tb)
}

// Get returns the property's value on o, or its default.
func (p *Prop[T]) Get(o *Object) T {
	t, _ := p.cast(o.Value(p))
	return t
}

// Set stores v on o and reports whether the value changed.
func (p *Prop[T]) Set(o *Object, v T) bool {
	return o.Set(p, v)
}

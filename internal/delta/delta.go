// Package delta writes tracked objects to a stream and applies a stream back
// onto a Tracker.
//
// A message is an object count followed, per object, by its kind, id and
// property count, then each property's name and value. Decoding runs in two
// passes: every value is read and staged first, then references are resolved
// against the tracker so forward references inside one message succeed.
package delta

import (
	"errors"
	"fmt"

	"github.com/danmuck/forgesync/internal/observability"
	"github.com/danmuck/forgesync/internal/protocol/schema"
	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/danmuck/forgesync/internal/view"
	"github.com/rs/zerolog/log"
)

var ErrInvalidCount = errors.New("delta: invalid count")

// Limits bound the counts a decoder accepts before allocating.
const (
	MaxObjects    = 1 << 16
	MaxProperties = 256
)

// Encode writes objs. With full set every declared property is written;
// otherwise only changed properties, and objects with none are skipped.
// Changed sets are cleared once the whole message is written.
func Encode(s trackable.Serializer, objs []*view.Object, full bool) error {
	type entry struct {
		obj   *view.Object
		props []view.Property
	}
	entries := make([]entry, 0, len(objs))
	for _, obj := range objs {
		props := obj.Changed()
		if full {
			props = view.Properties(obj.ObjectKind())
		}
		if len(props) == 0 {
			continue
		}
		entries = append(entries, entry{obj: obj, props: props})
	}

	if err := s.WriteInt(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := s.WriteInt(int(e.obj.ObjectKind())); err != nil {
			return err
		}
		if err := s.WriteInt(e.obj.ID()); err != nil {
			return err
		}
		if err := s.WriteInt(len(e.props)); err != nil {
			return err
		}
		for _, p := range e.props {
			if err := s.WriteString(p.Name()); err != nil {
				return err
			}
			if err := p.Encode(s, e.obj.Value(p)); err != nil {
				return fmt.Errorf("delta: %s: %w", e.obj, err)
			}
		}
	}
	for _, e := range entries {
		e.obj.ClearChanged()
	}
	log.Debug().Int("objects", len(entries)).Bool("full", full).Msg("delta: encoded")
	return nil
}

// Result summarizes one applied message.
type Result struct {
	Objects    []*view.Object
	Properties int
	Resolved   int
	Unresolved []trackable.Ref
}

type assignment struct {
	obj   *view.Object
	prop  view.Property
	value any
}

// Decode applies one message onto t. Property values are committed only
// after the whole message was read. Embedded values and collections are
// filled in place while reading, and objects first seen in a failed message
// stay tracked.
//
// References that do not resolve after the message is committed are
// reported in Result and are not errors.
func Decode(d trackable.Deserializer, t *view.Tracker, full bool) (Result, error) {
	var res Result
	count, err := readCount(d, MaxObjects)
	if err != nil {
		return res, err
	}

	var staged []assignment
	var pending []trackable.Ref
	for i := 0; i < count; i++ {
		rawKind, err := d.ReadInt()
		if err != nil {
			return res, err
		}
		kind := schema.ObjectKind(rawKind)
		if err := schema.ValidateKind(kind); err != nil {
			return res, err
		}
		id, err := d.ReadInt()
		if err != nil {
			return res, err
		}
		obj, err := t.Ensure(kind, id)
		if err != nil {
			return res, err
		}
		n, err := readCount(d, MaxProperties)
		if err != nil {
			return res, err
		}
		names := make([]string, 0, n)
		for j := 0; j < n; j++ {
			name, err := d.ReadString()
			if err != nil {
				return res, err
			}
			if err := schema.Validate(kind, name); err != nil {
				return res, err
			}
			prop, ok := view.Lookup(kind, name)
			if !ok {
				return res, schema.ValidationError{Object: kind, Property: name, Reason: "property not bound"}
			}
			v, err := prop.Decode(d, obj.Value(prop))
			if err != nil {
				return res, fmt.Errorf("delta: %s: %w", obj, err)
			}
			staged = append(staged, assignment{obj: obj, prop: prop, value: v})
			pending = appendRefs(pending, v)
			names = append(names, name)
		}
		if full {
			if err := schema.ValidateSnapshot(kind, names); err != nil {
				return res, err
			}
		}
		res.Objects = append(res.Objects, obj)
	}

	for _, a := range staged {
		a.obj.Put(a.prop, a.value)
	}
	res.Properties = len(staged)

	for _, ref := range pending {
		if _, ok := ref.Resolve(t); ok {
			res.Resolved++
			continue
		}
		res.Unresolved = append(res.Unresolved, ref)
		observability.RecordUnresolvedRef(ref.Kind)
		log.Warn().Stringer("ref", ref).Msg("delta: unresolved reference")
	}
	log.Debug().
		Int("objects", len(res.Objects)).
		Int("properties", res.Properties).
		Int("resolved", res.Resolved).
		Int("unresolved", len(res.Unresolved)).
		Msg("delta: decoded")
	return res, nil
}

func readCount(d trackable.Deserializer, limit int) (int, error) {
	n, err := d.ReadInt()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > limit {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return n, nil
}

// refHolder is implemented by embedded values that carry references.
type refHolder interface {
	PendingRefs() []trackable.Ref
}

func appendRefs(refs []trackable.Ref, v any) []trackable.Ref {
	switch x := v.(type) {
	case trackable.Ref:
		if x.Present() {
			refs = append(refs, x)
		}
	case *trackable.Collection:
		refs = append(refs, x.Refs()...)
	case refHolder:
		refs = append(refs, x.PendingRefs()...)
	}
	return refs
}

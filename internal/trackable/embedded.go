package trackable

import "fmt"

// Embedded is implemented by values that have no external index and are
// always written inline. SerializeInto and DeserializeFrom must read and
// write exactly the same field set.
type Embedded interface {
	SerializeInto(s Serializer) error
	DeserializeFrom(d Deserializer) error
}

// embeddedPresent precedes the fields of a non-nil embedded value.
const embeddedPresent = 0

// EmbeddedCodec writes -1 for nil, otherwise a presence marker followed by
// the value's own fields.
type EmbeddedCodec[E any, P interface {
	*E
	Embedded
}] struct{}

// EmbeddedType returns the descriptor for *E.
func EmbeddedType[E any, P interface {
	*E
	Embedded
}]() EmbeddedCodec[E, P] {
	return EmbeddedCodec[E, P]{}
}

func (EmbeddedCodec[E, P]) Default() P { return nil }

func (EmbeddedCodec[E, P]) Serialize(s Serializer, v P) error {
	if v == nil {
		return s.WriteInt(absentID)
	}
	if err := s.WriteInt(embeddedPresent); err != nil {
		return err
	}
	return v.SerializeInto(s)
}

// Deserialize mutates prev in place. A payload arriving without a live
// placeholder is rejected instead of building a fresh instance; callers
// seed placeholders before decoding.
func (EmbeddedCodec[E, P]) Deserialize(d Deserializer, prev P) (P, error) {
	marker, err := d.ReadInt()
	if err != nil {
		return prev, err
	}
	switch marker {
	case absentID:
		return nil, nil
	case embeddedPresent:
	default:
		return prev, fmt.Errorf("trackable: invalid embedded marker %d", marker)
	}
	if prev == nil {
		return nil, ErrMissingPlaceholder
	}
	if err := prev.DeserializeFrom(d); err != nil {
		return prev, err
	}
	return prev, nil
}

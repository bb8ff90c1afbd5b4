package trackable

import "errors"

var (
	ErrKindMismatch       = errors.New("trackable: reference kind mismatch")
	ErrMissingPlaceholder = errors.New("trackable: embedded value has no placeholder")
	ErrMalformedComposite = errors.New("trackable: malformed composite text")
	ErrDelimiterInPayload = errors.New("trackable: payload contains composite delimiter")
	ErrUnknownEnumName    = errors.New("trackable: unknown enum name")
	ErrEmptyMember        = errors.New("trackable: empty composite member")
	ErrNoneKey            = errors.New("trackable: enum map keyed by none")
)

// Type describes how values of T are written to and read from a stream.
// Implementations are stateless and safe for concurrent use.
type Type[T any] interface {
	Default() T
	Serialize(s Serializer, v T) error
	// Deserialize reads one value. prev is the property's last known value;
	// embedded-state types mutate and return it.
	Deserialize(d Deserializer, prev T) (T, error)
}

// Serializer is the stream writer collaborator.
type Serializer interface {
	WriteBool(v bool) error
	WriteInt(v int) error
	WriteString(v string) error
	// WriteCollection writes a nil collection distinctly from an empty one.
	WriteCollection(c *Collection) error
}

// Deserializer is the stream reader collaborator.
type Deserializer interface {
	ReadBool() (bool, error)
	ReadInt() (int, error)
	ReadString() (string, error)
	// ReadCollection reads a collection of kind, reusing prev when non-nil.
	ReadCollection(kind EntityKind, prev *Collection) (*Collection, error)
}

package trackable

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

// Enum is implemented by enumerated types. Values lists every declared
// constant in declaration order; the zero value is the "none" member and is
// not listed.
type Enum[E any] interface {
	comparable
	Name() string
	Values() []E
}

// EnumCodec encodes enum constants by name, never by ordinal.
type EnumCodec[E Enum[E]] struct {
	values   []E
	byName   map[string]E
	ordinals map[E]int
	noneName string
}

func newEnumCodec[E Enum[E]]() *EnumCodec[E] {
	var zero E
	values := zero.Values()
	c := &EnumCodec[E]{
		values:   append([]E(nil), values...),
		byName:   make(map[string]E, len(values)),
		ordinals: make(map[E]int, len(values)),
		noneName: zero.Name(),
	}
	for i, v := range values {
		c.byName[v.Name()] = v
		c.ordinals[v] = i
	}
	return c
}

func (c *EnumCodec[E]) Default() E {
	var zero E
	return zero
}

func (c *EnumCodec[E]) Serialize(s Serializer, v E) error {
	return s.WriteString(v.Name())
}

// Deserialize returns prev when the encoded name is not a constant of E, so
// data written by another version never fails the decode. The zero member's
// name decodes to the zero value.
func (c *EnumCodec[E]) Deserialize(d Deserializer, prev E) (E, error) {
	name, err := d.ReadString()
	if err != nil {
		return prev, err
	}
	if name == c.noneName {
		var zero E
		return zero, nil
	}
	v, ok := c.byName[name]
	if !ok {
		return prev, nil
	}
	return v, nil
}

// Parse resolves a constant by its declared name.
func (c *EnumCodec[E]) Parse(name string) (E, bool) {
	v, ok := c.byName[name]
	return v, ok
}

// Ordinal returns the declaration index of v, or -1 for undeclared values.
func (c *EnumCodec[E]) Ordinal(v E) int {
	if i, ok := c.ordinals[v]; ok {
		return i
	}
	return -1
}

func (c *EnumCodec[E]) Values() []E {
	return append([]E(nil), c.values...)
}

type registryKey struct {
	codec string
	t     reflect.Type
}

// registry memoizes descriptors created on demand. Entries are never evicted.
var registry struct {
	mu    sync.Mutex
	types sync.Map
	sizes map[string]int
}

func memoize[V any](codec string, t reflect.Type, create func() V) V {
	key := registryKey{codec: codec, t: t}
	if v, ok := registry.types.Load(key); ok {
		return v.(V)
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if v, ok := registry.types.Load(key); ok {
		return v.(V)
	}
	v := create()
	registry.types.Store(key, v)
	if registry.sizes == nil {
		registry.sizes = make(map[string]int)
	}
	registry.sizes[codec]++
	log.Debug().Str("codec", codec).Str("type", t.String()).Msg("trackable: descriptor registered")
	return v
}

// EnumType returns the descriptor for E. Every call for the same E returns
// the same pointer.
func EnumType[E Enum[E]]() *EnumCodec[E] {
	return memoize("enum", reflect.TypeOf((*E)(nil)).Elem(), newEnumCodec[E])
}

// CachedEnumTypes reports how many enum descriptors have been created.
func CachedEnumTypes() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.sizes["enum"]
}

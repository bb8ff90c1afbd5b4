package trackable

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Composite values are packed into a single string. Payloads may not contain
// either delimiter; there is no escaping.
const (
	FieldSeparator    = '\x06'
	KeyValueSeparator = '\x07'
)

const delimiters = "\x06\x07"

// StringSet is an unordered set of strings. A nil set means never set.
type StringSet map[string]struct{}

func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s StringSet) Add(item string) { s[item] = struct{}{} }

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// EnumCount is one entry of an enum-keyed integer map.
type EnumCount[E any] struct {
	Key   E
	Count int
}

// EnumCounts is an enum-keyed integer map kept as a slice so iteration order
// is stable. Decoded values are ordered by the enum's declaration order.
type EnumCounts[E comparable] []EnumCount[E]

// Get returns the count for key, or zero.
func (c EnumCounts[E]) Get(key E) int {
	for _, e := range c {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// With returns a copy of c with key set to count.
func (c EnumCounts[E]) With(key E, count int) EnumCounts[E] {
	out := slices.Clone(c)
	for i := range out {
		if out[i].Key == key {
			out[i].Count = count
			return out
		}
	}
	return append(out, EnumCount[E]{Key: key, Count: count})
}

func checkPayload(parts ...string) error {
	for _, p := range parts {
		if strings.ContainsAny(p, delimiters) {
			return fmt.Errorf("%w: %q", ErrDelimiterInPayload, p)
		}
	}
	return nil
}

// splitEntries splits packed text on the field separator, dropping empty
// entries.
func splitEntries(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool { return r == FieldSeparator })
}

func splitEntry(entry string) (string, string, error) {
	key, value, ok := strings.Cut(entry, string(KeyValueSeparator))
	if !ok {
		return "", "", fmt.Errorf("%w: entry %q has no key separator", ErrMalformedComposite, entry)
	}
	return key, value, nil
}

type packedPair struct {
	key   string
	value string
}

func writePairs(s Serializer, pairs []packedPair) error {
	var b strings.Builder
	for i, p := range pairs {
		if err := checkPayload(p.key, p.value); err != nil {
			return err
		}
		if i > 0 {
			b.WriteRune(FieldSeparator)
		}
		b.WriteString(p.key)
		b.WriteRune(KeyValueSeparator)
		b.WriteString(p.value)
	}
	return s.WriteString(b.String())
}

// readPairs returns nil pairs for the empty string.
func readPairs(d Deserializer) ([]packedPair, error) {
	value, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	entries := splitEntries(value)
	pairs := make([]packedPair, 0, len(entries))
	for _, entry := range entries {
		k, v, err := splitEntry(entry)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, packedPair{key: k, value: v})
	}
	return pairs, nil
}

var (
	StringSetType           Type[StringSet]         = stringSetType{}
	StringMapType           Type[map[string]string] = stringMapType{}
	ByteKeyedIntegerMapType Type[map[byte]int]      = byteKeyedIntegerMapType{}
)

type stringSetType struct{}

func (stringSetType) Default() StringSet { return nil }

// Serialize rejects the empty member; it would vanish on decode.
func (stringSetType) Serialize(s Serializer, v StringSet) error {
	if v.Has("") {
		return ErrEmptyMember
	}
	items := v.Sorted()
	if err := checkPayload(items...); err != nil {
		return err
	}
	return s.WriteString(strings.Join(items, string(FieldSeparator)))
}

func (stringSetType) Deserialize(d Deserializer, _ StringSet) (StringSet, error) {
	value, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return NewStringSet(splitEntries(value)...), nil
}

type stringMapType struct{}

func (stringMapType) Default() map[string]string { return nil }

func (stringMapType) Serialize(s Serializer, v map[string]string) error {
	pairs := make([]packedPair, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, packedPair{key: k, value: val})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	return writePairs(s, pairs)
}

func (stringMapType) Deserialize(d Deserializer, _ map[string]string) (map[string]string, error) {
	pairs, err := readPairs(d)
	if err != nil || pairs == nil {
		return nil, err
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.key] = p.value
	}
	return out, nil
}

type byteKeyedIntegerMapType struct{}

func (byteKeyedIntegerMapType) Default() map[byte]int { return nil }

func (byteKeyedIntegerMapType) Serialize(s Serializer, v map[byte]int) error {
	keys := make([]byte, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]packedPair, len(keys))
	for i, k := range keys {
		pairs[i] = packedPair{
			key:   strconv.Itoa(int(int8(k))),
			value: strconv.Itoa(v[k]),
		}
	}
	return writePairs(s, pairs)
}

func (byteKeyedIntegerMapType) Deserialize(d Deserializer, _ map[byte]int) (map[byte]int, error) {
	pairs, err := readPairs(d)
	if err != nil || pairs == nil {
		return nil, err
	}
	out := make(map[byte]int, len(pairs))
	for _, p := range pairs {
		k, err := strconv.ParseInt(p.key, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("trackable: byte key %q: %w", p.key, err)
		}
		n, err := strconv.Atoi(p.value)
		if err != nil {
			return nil, fmt.Errorf("trackable: integer value for key %q: %w", p.key, err)
		}
		out[byte(int8(k))] = n
	}
	return out, nil
}

// EnumKeyedIntegerMapCodec packs an EnumCounts keyed by constant name.
type EnumKeyedIntegerMapCodec[E Enum[E]] struct {
	enum *EnumCodec[E]
}

// EnumKeyedIntegerMapType returns the descriptor for counts keyed by E. Every
// call for the same E returns the same pointer.
func EnumKeyedIntegerMapType[E Enum[E]]() *EnumKeyedIntegerMapCodec[E] {
	enum := EnumType[E]()
	return memoize("enum-map", reflect.TypeOf((*E)(nil)).Elem(), func() *EnumKeyedIntegerMapCodec[E] {
		return &EnumKeyedIntegerMapCodec[E]{enum: enum}
	})
}

func (c *EnumKeyedIntegerMapCodec[E]) Default() EnumCounts[E] { return nil }

func (c *EnumKeyedIntegerMapCodec[E]) Serialize(s Serializer, v EnumCounts[E]) error {
	var none E
	pairs := make([]packedPair, len(v))
	for i, e := range v {
		if e.Key == none {
			return ErrNoneKey
		}
		pairs[i] = packedPair{key: e.Key.Name(), value: strconv.Itoa(e.Count)}
	}
	return writePairs(s, pairs)
}

// Deserialize rejects unknown keys; unlike scalar enums there is no fallback.
func (c *EnumKeyedIntegerMapCodec[E]) Deserialize(d Deserializer, _ EnumCounts[E]) (EnumCounts[E], error) {
	pairs, err := readPairs(d)
	if err != nil || pairs == nil {
		return nil, err
	}
	counts := make(map[E]int, len(pairs))
	for _, p := range pairs {
		key, ok := c.enum.Parse(p.key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnumName, p.key)
		}
		n, err := strconv.Atoi(p.value)
		if err != nil {
			return nil, fmt.Errorf("trackable: integer value for key %q: %w", p.key, err)
		}
		counts[key] = n
	}
	out := make(EnumCounts[E], 0, len(counts))
	for k, n := range counts {
		out = append(out, EnumCount[E]{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return c.enum.Ordinal(out[i].Key) < c.enum.Ordinal(out[j].Key)
	})
	return out, nil
}

package trackable

import (
	"errors"
	"fmt"
)

var errStreamExhausted = errors.New("memstream: exhausted")

// memStream records writes as plain values and replays them on read.
type memStream struct {
	values []any
	pos    int
}

func (m *memStream) WriteBool(v bool) error     { m.values = append(m.values, v); return nil }
func (m *memStream) WriteInt(v int) error       { m.values = append(m.values, v); return nil }
func (m *memStream) WriteString(v string) error { m.values = append(m.values, v); return nil }

func (m *memStream) WriteCollection(c *Collection) error {
	if c == nil {
		m.values = append(m.values, []int(nil))
		return nil
	}
	m.values = append(m.values, append([]int{}, c.IDs()...))
	return nil
}

func (m *memStream) next() (any, error) {
	if m.pos >= len(m.values) {
		return nil, errStreamExhausted
	}
	v := m.values[m.pos]
	m.pos++
	return v, nil
}

func read[T any](m *memStream) (T, error) {
	var zero T
	v, err := m.next()
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("memstream: got %T want %T", v, zero)
	}
	return t, nil
}

func (m *memStream) ReadBool() (bool, error)     { return read[bool](m) }
func (m *memStream) ReadInt() (int, error)       { return read[int](m) }
func (m *memStream) ReadString() (string, error) { return read[string](m) }

func (m *memStream) ReadCollection(kind EntityKind, prev *Collection) (*Collection, error) {
	ids, err := read[[]int](m)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, nil
	}
	return MergeCollection(kind, prev, ids), nil
}

// rewind makes everything written so far readable from the start.
func (m *memStream) rewind() { m.pos = 0 }

func roundTrip[T any](typ Type[T], v T, prev T) (T, error) {
	var m memStream
	if err := typ.Serialize(&m, v); err != nil {
		var zero T
		return zero, err
	}
	m.rewind()
	return typ.Deserialize(&m, prev)
}

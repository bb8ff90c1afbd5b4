package tlv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/danmuck/forgesync/internal/trackable"
)

var (
	ErrIntOverflow     = errors.New("tlv: integer out of i32 range")
	ErrStreamExhausted = errors.New("tlv: stream exhausted")
	ErrOutOfSequence   = errors.New("tlv: field out of sequence")
	ErrTrailingFields  = errors.New("tlv: trailing fields")
	ErrTooManyFields   = errors.New("tlv: too many fields")
)

// Writer implements trackable.Serializer by appending one field per value.
// Field ids are sequence numbers so a reader can detect misalignment.
type Writer struct {
	fields []Field
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) append(typeID uint8, value []byte) error {
	if len(w.fields) >= math.MaxUint16 {
		return ErrTooManyFields
	}
	w.fields = append(w.fields, Field{ID: uint16(len(w.fields) + 1), Type: typeID, Value: value})
	return nil
}

func (w *Writer) WriteBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return w.append(TypeBool, []byte{b})
}

func (w *Writer) WriteInt(v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrIntOverflow, v)
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(int32(v)))
	return w.append(TypeI32, buf)
}

func (w *Writer) WriteString(v string) error {
	return w.append(TypeString, []byte(v))
}

// WriteCollection writes a nil collection as a TypeNil field.
func (w *Writer) WriteCollection(c *trackable.Collection) error {
	if c == nil {
		return w.append(TypeNil, nil)
	}
	ids := c.IDs()
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		if id > math.MaxInt32 {
			return fmt.Errorf("%w: %d", ErrIntOverflow, id)
		}
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], uint32(int32(id)))
	}
	return w.append(TypeI32List, buf)
}

func (w *Writer) Len() int { return len(w.fields) }

// Bytes returns the encoded field sequence.
func (w *Writer) Bytes() ([]byte, error) {
	return EncodeFields(w.fields), nil
}

// Reader implements trackable.Deserializer over a decoded field sequence.
type Reader struct {
	fields []Field
	pos    int
}

func NewReader(payload []byte) (*Reader, error) {
	fields, err := DecodeFields(payload)
	if err != nil {
		return nil, err
	}
	return &Reader{fields: fields}, nil
}

func (r *Reader) next(expected ...uint8) (Field, error) {
	if r.pos >= len(r.fields) {
		return Field{}, ErrStreamExhausted
	}
	f := r.fields[r.pos]
	if int(f.ID) != r.pos+1 {
		return Field{}, fmt.Errorf("%w: got id %d at position %d", ErrOutOfSequence, f.ID, r.pos+1)
	}
	var err error
	for _, typeID := range expected {
		if err = MustType(f, typeID); err == nil {
			break
		}
	}
	if err != nil {
		return Field{}, err
	}
	r.pos++
	return f, nil
}

func (r *Reader) ReadBool() (bool, error) {
	f, err := r.next(TypeBool)
	if err != nil {
		return false, err
	}
	if len(f.Value) != 1 {
		return false, fmt.Errorf("tlv: invalid bool length: %d", len(f.Value))
	}
	switch f.Value[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("tlv: invalid bool value: %d", f.Value[0])
	}
}

func (r *Reader) ReadInt() (int, error) {
	f, err := r.next(TypeI32)
	if err != nil {
		return 0, err
	}
	v, err := I32FromBytes(f.Value)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func (r *Reader) ReadString() (string, error) {
	f, err := r.next(TypeString)
	if err != nil {
		return "", err
	}
	return string(f.Value), nil
}

func (r *Reader) ReadCollection(kind trackable.EntityKind, prev *trackable.Collection) (*trackable.Collection, error) {
	f, err := r.next(TypeI32List, TypeNil)
	if err != nil {
		return nil, err
	}
	if f.Type == TypeNil {
		return nil, nil
	}
	raw, err := I32ListFromBytes(f.Value)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(raw))
	for i, id := range raw {
		ids[i] = int(id)
	}
	return trackable.MergeCollection(kind, prev, ids), nil
}

// Remaining reports how many fields have not been read.
func (r *Reader) Remaining() int { return len(r.fields) - r.pos }

// Close fails when fields were left unread.
func (r *Reader) Close() error {
	if n := r.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d unread", ErrTrailingFields, n)
	}
	return nil
}

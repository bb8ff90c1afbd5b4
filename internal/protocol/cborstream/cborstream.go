// Package cborstream implements the trackable stream contract as a CBOR
// sequence (RFC 8742): every written value is one CBOR data item.
//
// Collections are CBOR arrays of ids; a nil collection is CBOR null so it
// stays distinct from an empty array.
package cborstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/fxamacker/cbor/v2"
)

var ErrTrailingData = errors.New("cborstream: trailing data")

// encMode uses Core Deterministic Encoding so identical writes produce
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborstream: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		// Collections are the only arrays; bound them well below the
		// frame payload limit.
		MaxArrayElements: 1 << 20,
	}.DecMode()
	if err != nil {
		panic("cborstream: CBOR decoder initialization failed: " + err.Error())
	}
}

// Writer implements trackable.Serializer.
type Writer struct {
	buf bytes.Buffer
	enc *cbor.Encoder
}

func NewWriter() *Writer {
	w := &Writer{}
	w.enc = encMode.NewEncoder(&w.buf)
	return w
}

func (w *Writer) WriteBool(v bool) error     { return w.enc.Encode(v) }
func (w *Writer) WriteInt(v int) error       { return w.enc.Encode(int64(v)) }
func (w *Writer) WriteString(v string) error { return w.enc.Encode(v) }

func (w *Writer) WriteCollection(c *trackable.Collection) error {
	if c == nil {
		return w.enc.Encode(nil)
	}
	ids := c.IDs()
	if ids == nil {
		ids = []int{}
	}
	return w.enc.Encode(ids)
}

// Bytes returns the encoded sequence.
func (w *Writer) Bytes() ([]byte, error) {
	return bytes.Clone(w.buf.Bytes()), nil
}

// Reader implements trackable.Deserializer.
type Reader struct {
	size int
	dec  *cbor.Decoder
}

func NewReader(payload []byte) *Reader {
	return &Reader{size: len(payload), dec: decMode.NewDecoder(bytes.NewReader(payload))}
}

func (r *Reader) decode(v any) error {
	if err := r.dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("cborstream: stream exhausted: %w", err)
		}
		return fmt.Errorf("cborstream: %w", err)
	}
	return nil
}

func (r *Reader) ReadBool() (bool, error) {
	var v bool
	err := r.decode(&v)
	return v, err
}

func (r *Reader) ReadInt() (int, error) {
	var v int64
	err := r.decode(&v)
	return int(v), err
}

func (r *Reader) ReadString() (string, error) {
	var v string
	err := r.decode(&v)
	return v, err
}

func (r *Reader) ReadCollection(kind trackable.EntityKind, prev *trackable.Collection) (*trackable.Collection, error) {
	var ids *[]int
	if err := r.decode(&ids); err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, nil
	}
	return trackable.MergeCollection(kind, prev, *ids), nil
}

// Close fails when bytes were left unread.
func (r *Reader) Close() error {
	if n := r.size - r.dec.NumBytesRead(); n > 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, n)
	}
	return nil
}

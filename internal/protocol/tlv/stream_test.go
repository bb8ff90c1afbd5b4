package tlv

import (
	"errors"
	"math"
	"testing"

	"github.com/danmuck/forgesync/internal/trackable"
)

func encode(t *testing.T, write func(w *Writer) error) *Reader {
	t.Helper()
	w := NewWriter()
	if err := write(w); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := w.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	r, err := NewReader(b)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	return r
}

func TestStreamPrimitiveRoundTrip(t *testing.T) {
	r := encode(t, func(w *Writer) error {
		if err := w.WriteBool(true); err != nil {
			return err
		}
		if err := w.WriteInt(-1); err != nil {
			return err
		}
		if err := w.WriteInt(math.MaxInt32); err != nil {
			return err
		}
		return w.WriteString("Serra Angel")
	})

	b, err := r.ReadBool()
	if err != nil || !b {
		t.Fatalf("bool: %v %v", b, err)
	}
	n, err := r.ReadInt()
	if err != nil || n != -1 {
		t.Fatalf("int: %d %v", n, err)
	}
	n, err = r.ReadInt()
	if err != nil || n != math.MaxInt32 {
		t.Fatalf("max int: %d %v", n, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "Serra Angel" {
		t.Fatalf("string: %q %v", s, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStreamCollectionNilAndEmptyAreDistinct(t *testing.T) {
	r := encode(t, func(w *Writer) error {
		if err := w.WriteCollection(nil); err != nil {
			return err
		}
		if err := w.WriteCollection(trackable.NewCollection(trackable.KindCard)); err != nil {
			return err
		}
		return w.WriteCollection(trackable.NewCollection(trackable.KindCard, 4, 2, 9))
	})

	c, err := r.ReadCollection(trackable.KindCard, nil)
	if err != nil || c != nil {
		t.Fatalf("expected nil collection, got %v %v", c, err)
	}
	c, err = r.ReadCollection(trackable.KindCard, nil)
	if err != nil || c == nil || c.Len() != 0 {
		t.Fatalf("expected empty collection, got %v %v", c, err)
	}
	prev := trackable.NewCollection(trackable.KindCard, 1)
	c, err = r.ReadCollection(trackable.KindCard, prev)
	if err != nil {
		t.Fatalf("read collection: %v", err)
	}
	if c != prev {
		t.Fatalf("expected previous collection to be reused")
	}
	if got := c.IDs(); len(got) != 3 || got[0] != 4 || got[1] != 2 || got[2] != 9 {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestStreamTypeMismatch(t *testing.T) {
	r := encode(t, func(w *Writer) error { return w.WriteString("7") })
	if _, err := r.ReadInt(); err == nil {
		t.Fatalf("expected type mismatch")
	}
}

func TestStreamExhaustedAndTrailing(t *testing.T) {
	r := encode(t, func(w *Writer) error { return w.WriteInt(1) })
	if err := r.Close(); !errors.Is(err, ErrTrailingFields) {
		t.Fatalf("expected ErrTrailingFields, got %v", err)
	}
	if _, err := r.ReadInt(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := r.ReadInt(); !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("expected ErrStreamExhausted, got %v", err)
	}
}

func TestStreamOutOfSequence(t *testing.T) {
	payload := EncodeFields([]Field{{ID: 2, Type: TypeBool, Value: []byte{1}}})
	r, err := NewReader(payload)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	if _, err := r.ReadBool(); !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got %v", err)
	}
}

func TestStreamIntOverflow(t *testing.T) {
	w := NewWriter()
	if err := w.WriteInt(math.MaxInt32 + 1); !errors.Is(err, ErrIntOverflow) {
		t.Fatalf("expected ErrIntOverflow, got %v", err)
	}
}

func TestStreamDrivesTrackableCodecs(t *testing.T) {
	w := NewWriter()
	if err := trackable.GameEntityViewRef.Serialize(w, trackable.PlayerRef(3)); err != nil {
		t.Fatalf("serialize ref: %v", err)
	}
	if err := trackable.StringSetType.Serialize(w, trackable.NewStringSet("Flying", "Haste")); err != nil {
		t.Fatalf("serialize set: %v", err)
	}
	b, _ := w.Bytes()
	r, err := NewReader(b)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	ref, err := trackable.GameEntityViewRef.Deserialize(r, trackable.Ref{})
	if err != nil || ref != trackable.PlayerRef(3) {
		t.Fatalf("ref: %v %v", ref, err)
	}
	set, err := trackable.StringSetType.Deserialize(r, nil)
	if err != nil || len(set) != 2 || !set.Has("Haste") {
		t.Fatalf("set: %v %v", set, err)
	}
}

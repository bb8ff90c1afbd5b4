package trackable

import "fmt"

// EntityKind identifies which index a reference resolves against.
type EntityKind int

const (
	KindNone EntityKind = iota
	KindCard
	KindPlayer
)

func (k EntityKind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindPlayer:
		return "player"
	default:
		return "none"
	}
}

// Wire tags for polymorphic entity references.
const (
	tagAbsent = -1
	tagCard   = 0
	tagPlayer = 1
)

// absentID is written in place of an id for an absent reference.
const absentID = -1

// Entity is an object owned by the external index.
type Entity interface {
	TrackableID() int
	Kind() EntityKind
}

// Index maps identifiers back to live objects.
type Index interface {
	CardByID(id int) (Entity, bool)
	PlayerByID(id int) (Entity, bool)
}

// Ref is a pending reference decoded from a stream. The zero value is absent.
type Ref struct {
	Kind EntityKind
	ID   int
}

func CardRef(id int) Ref   { return Ref{Kind: KindCard, ID: id} }
func PlayerRef(id int) Ref { return Ref{Kind: KindPlayer, ID: id} }

// RefOf returns the handle for e, or the absent Ref when e is nil.
func RefOf(e Entity) Ref {
	if e == nil {
		return Ref{}
	}
	return Ref{Kind: e.Kind(), ID: e.TrackableID()}
}

func (r Ref) Present() bool {
	return r.Kind != KindNone && r.ID >= 0
}

func (r Ref) String() string {
	if !r.Present() {
		return "none"
	}
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Resolve looks the reference up in idx. Absent references never resolve.
func (r Ref) Resolve(idx Index) (Entity, bool) {
	if !r.Present() || idx == nil {
		return nil, false
	}
	switch r.Kind {
	case KindCard:
		return idx.CardByID(r.ID)
	case KindPlayer:
		return idx.PlayerByID(r.ID)
	default:
		return nil, false
	}
}

var (
	CardViewRef       Type[Ref] = entityRefType{kind: KindCard}
	PlayerViewRef     Type[Ref] = entityRefType{kind: KindPlayer}
	GameEntityViewRef Type[Ref] = gameEntityRefType{}
)

// entityRefType writes only the id; the kind is implied by the descriptor.
type entityRefType struct {
	kind EntityKind
}

func (t entityRefType) Default() Ref { return Ref{} }

func (t entityRefType) Serialize(s Serializer, v Ref) error {
	if !v.Present() {
		return s.WriteInt(absentID)
	}
	if v.Kind != t.kind {
		return fmt.Errorf("%w: got %s want %s", ErrKindMismatch, v.Kind, t.kind)
	}
	return s.WriteInt(v.ID)
}

func (t entityRefType) Deserialize(d Deserializer, _ Ref) (Ref, error) {
	id, err := d.ReadInt()
	if err != nil {
		return Ref{}, err
	}
	if id < 0 {
		return Ref{}, nil
	}
	return Ref{Kind: t.kind, ID: id}, nil
}

type gameEntityRefType struct{}

func (gameEntityRefType) Default() Ref { return Ref{} }

func (gameEntityRefType) Serialize(s Serializer, v Ref) error {
	var tag int
	switch {
	case !v.Present():
		return s.WriteInt(tagAbsent)
	case v.Kind == KindCard:
		tag = tagCard
	case v.Kind == KindPlayer:
		tag = tagPlayer
	default:
		return s.WriteInt(tagAbsent)
	}
	if err := s.WriteInt(tag); err != nil {
		return err
	}
	return s.WriteInt(v.ID)
}

func (gameEntityRefType) Deserialize(d Deserializer, _ Ref) (Ref, error) {
	tag, err := d.ReadInt()
	if err != nil {
		return Ref{}, err
	}
	var kind EntityKind
	switch tag {
	case tagCard:
		kind = KindCard
	case tagPlayer:
		kind = KindPlayer
	default:
		return Ref{}, nil
	}
	id, err := d.ReadInt()
	if err != nil {
		return Ref{}, err
	}
	if id < 0 {
		return Ref{}, nil
	}
	return Ref{Kind: kind, ID: id}, nil
}

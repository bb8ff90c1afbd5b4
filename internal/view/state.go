package view

import "github.com/danmuck/forgesync/internal/trackable"

// CardStateView is the printed face a card currently shows. It has no
// identity of its own and always travels inside its card.
type CardStateView struct {
	Name      string
	Power     int
	Toughness int
	Types     trackable.StringSet
	Colors    ColorSet
	ManaCost  ManaCost
}

func (s *CardStateView) SerializeInto(w trackable.Serializer) error {
	if err := trackable.StringType.Serialize(w, s.Name); err != nil {
		return err
	}
	if err := trackable.IntegerType.Serialize(w, s.Power); err != nil {
		return err
	}
	if err := trackable.IntegerType.Serialize(w, s.Toughness); err != nil {
		return err
	}
	if err := trackable.StringSetType.Serialize(w, s.Types); err != nil {
		return err
	}
	if err := ColorSetType.Serialize(w, s.Colors); err != nil {
		return err
	}
	return ManaCostType.Serialize(w, s.ManaCost)
}

func (s *CardStateView) DeserializeFrom(r trackable.Deserializer) error {
	var err error
	if s.Name, err = trackable.StringType.Deserialize(r, s.Name); err != nil {
		return err
	}
	if s.Power, err = trackable.IntegerType.Deserialize(r, s.Power); err != nil {
		return err
	}
	if s.Toughness, err = trackable.IntegerType.Deserialize(r, s.Toughness); err != nil {
		return err
	}
	if s.Types, err = trackable.StringSetType.Deserialize(r, s.Types); err != nil {
		return err
	}
	if s.Colors, err = ColorSetType.Deserialize(r, s.Colors); err != nil {
		return err
	}
	s.ManaCost, err = ManaCostType.Deserialize(r, s.ManaCost)
	return err
}

// StackItemView is a spell or ability waiting on the stack.
type StackItemView struct {
	ID        int
	Text      string
	Source    trackable.Ref
	Activator trackable.Ref
	Target    trackable.Ref
	Targets   *trackable.Collection
}

func (s *StackItemView) SerializeInto(w trackable.Serializer) error {
	if err := trackable.IntegerType.Serialize(w, s.ID); err != nil {
		return err
	}
	if err := trackable.StringType.Serialize(w, s.Text); err != nil {
		return err
	}
	if err := trackable.CardViewRef.Serialize(w, s.Source); err != nil {
		return err
	}
	if err := trackable.PlayerViewRef.Serialize(w, s.Activator); err != nil {
		return err
	}
	if err := trackable.GameEntityViewRef.Serialize(w, s.Target); err != nil {
		return err
	}
	return trackable.CardViewCollectionType.Serialize(w, s.Targets)
}

func (s *StackItemView) DeserializeFrom(r trackable.Deserializer) error {
	var err error
	if s.ID, err = trackable.IntegerType.Deserialize(r, s.ID); err != nil {
		return err
	}
	if s.Text, err = trackable.StringType.Deserialize(r, s.Text); err != nil {
		return err
	}
	if s.Source, err = trackable.CardViewRef.Deserialize(r, s.Source); err != nil {
		return err
	}
	if s.Activator, err = trackable.PlayerViewRef.Deserialize(r, s.Activator); err != nil {
		return err
	}
	if s.Target, err = trackable.GameEntityViewRef.Deserialize(r, s.Target); err != nil {
		return err
	}
	s.Targets, err = trackable.CardViewCollectionType.Deserialize(r, s.Targets)
	return err
}

// PendingRefs lists every reference the item holds.
func (s *StackItemView) PendingRefs() []trackable.Ref {
	if s == nil {
		return nil
	}
	var refs []trackable.Ref
	for _, r := range []trackable.Ref{s.Source, s.Activator, s.Target} {
		if r.Present() {
			refs = append(refs, r)
		}
	}
	return append(refs, s.Targets.Refs()...)
}

var (
	CardStateViewType = trackable.EmbeddedType[CardStateView]()
	StackItemViewType = trackable.EmbeddedType[StackItemView]()
)

func seedCardState(prev *CardStateView) *CardStateView {
	if prev == nil {
		return &CardStateView{}
	}
	return prev
}

func seedStackItem(prev *StackItemView) *StackItemView {
	if prev == nil {
		return &StackItemView{}
	}
	return prev
}

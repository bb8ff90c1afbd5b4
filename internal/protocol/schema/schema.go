package schema

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ObjectKind identifies a tracked object type on the wire.
type ObjectKind int

const (
	ObjectCard   ObjectKind = 1
	ObjectPlayer ObjectKind = 2
	ObjectGame   ObjectKind = 3
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectCard:
		return "card"
	case ObjectPlayer:
		return "player"
	case ObjectGame:
		return "game"
	default:
		return fmt.Sprintf("object(%d)", int(k))
	}
}

// Property names shared by every stream encoding.
const (
	PropName = "Name"

	PropZone         = "Zone"
	PropOwner        = "Owner"
	PropController   = "Controller"
	PropTapped       = "Tapped"
	PropColors       = "Colors"
	PropManaCost     = "ManaCost"
	PropCounters     = "Counters"
	PropAttachedTo   = "AttachedTo"
	PropAttachments  = "Attachments"
	PropCurrentState = "CurrentState"
	PropSets         = "Sets"

	PropLife        = "Life"
	PropHand        = "Hand"
	PropLibrary     = "Library"
	PropBattlefield = "Battlefield"
	PropManaPool    = "ManaPool"
	PropOpponents   = "Opponents"
	PropNotes       = "Notes"

	PropTurn       = "Turn"
	PropPhase      = "Phase"
	PropPlayerTurn = "PlayerTurn"
	PropPlayers    = "Players"
	PropTopOfStack = "TopOfStack"
	PropFocus      = "Focus"
)

type Requirement struct {
	Name     string
	Required bool
}

type ValidationError struct {
	Object   ObjectKind
	Property string
	Reason   string
}

func (e ValidationError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("schema: object=%s: %s", e.Object, e.Reason)
	}
	return fmt.Sprintf("schema: object=%s property=%s: %s", e.Object, e.Property, e.Reason)
}

var requirements = map[ObjectKind][]Requirement{
	ObjectCard: {
		{PropName, true},
		{PropZone, true},
		{PropOwner, true},
		{PropController, false},
		{PropTapped, false},
		{PropColors, false},
		{PropManaCost, false},
		{PropCounters, false},
		{PropAttachedTo, false},
		{PropAttachments, false},
		{PropCurrentState, false},
		{PropSets, false},
	},
	ObjectPlayer: {
		{PropName, true},
		{PropLife, true},
		{PropHand, false},
		{PropLibrary, false},
		{PropBattlefield, false},
		{PropManaPool, false},
		{PropOpponents, false},
		{PropNotes, false},
	},
	ObjectGame: {
		{PropTurn, true},
		{PropPhase, true},
		{PropPlayerTurn, false},
		{PropPlayers, false},
		{PropTopOfStack, false},
		{PropFocus, false},
	},
}

// Properties returns the declared properties of kind in wire order.
func Properties(kind ObjectKind) []Requirement {
	return append([]Requirement(nil), requirements[kind]...)
}

func ValidateKind(kind ObjectKind) error {
	if _, ok := requirements[kind]; !ok {
		log.Error().Int("object", int(kind)).Msg("schema.ValidateKind unknown object kind")
		return ValidationError{Object: kind, Reason: "unknown object kind"}
	}
	return nil
}

// Validate rejects property names not declared for kind. A stream cannot
// skip an unknown property because values carry no length prefix.
func Validate(kind ObjectKind, property string) error {
	if err := ValidateKind(kind); err != nil {
		return err
	}
	for _, req := range requirements[kind] {
		if req.Name == property {
			return nil
		}
	}
	log.Error().Stringer("object", kind).Str("property", property).Msg("schema.Validate unknown property")
	return ValidationError{Object: kind, Property: property, Reason: "unknown property"}
}

// ValidateSnapshot enforces required properties for a full snapshot of one
// object.
func ValidateSnapshot(kind ObjectKind, properties []string) error {
	log.Debug().Stringer("object", kind).Int("properties", len(properties)).Msg("schema.ValidateSnapshot")
	if err := ValidateKind(kind); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(properties))
	for _, p := range properties {
		seen[p] = struct{}{}
	}
	for _, req := range requirements[kind] {
		if !req.Required {
			continue
		}
		if _, ok := seen[req.Name]; !ok {
			log.Error().Stringer("object", kind).Str("property", req.Name).Msg("schema.ValidateSnapshot missing property")
			return ValidationError{Object: kind, Property: req.Name, Reason: "missing required property"}
		}
	}
	return nil
}

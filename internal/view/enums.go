package view

import "github.com/danmuck/forgesync/internal/trackable"

type Zone int

const (
	ZoneNone Zone = iota
	ZoneHand
	ZoneLibrary
	ZoneBattlefield
	ZoneGraveyard
	ZoneExile
	ZoneStack
	ZoneCommand
)

var zoneNames = [...]string{"None", "Hand", "Library", "Battlefield", "Graveyard", "Exile", "Stack", "Command"}

func (z Zone) Name() string   { return enumName(zoneNames[:], int(z)) }
func (z Zone) String() string { return z.Name() }

func (Zone) Values() []Zone {
	return []Zone{ZoneHand, ZoneLibrary, ZoneBattlefield, ZoneGraveyard, ZoneExile, ZoneStack, ZoneCommand}
}

type Phase int

const (
	PhaseNone Phase = iota
	PhaseUntap
	PhaseUpkeep
	PhaseDraw
	PhaseMain1
	PhaseCombatBegin
	PhaseCombatDeclareAttackers
	PhaseCombatDeclareBlockers
	PhaseCombatDamage
	PhaseCombatEnd
	PhaseMain2
	PhaseEndOfTurn
	PhaseCleanup
)

var phaseNames = [...]string{
	"None", "Untap", "Upkeep", "Draw", "Main1",
	"CombatBegin", "CombatDeclareAttackers", "CombatDeclareBlockers", "CombatDamage", "CombatEnd",
	"Main2", "EndOfTurn", "Cleanup",
}

func (p Phase) Name() string   { return enumName(phaseNames[:], int(p)) }
func (p Phase) String() string { return p.Name() }

func (Phase) Values() []Phase {
	out := make([]Phase, 0, len(phaseNames)-1)
	for p := PhaseUntap; int(p) < len(phaseNames); p++ {
		out = append(out, p)
	}
	return out
}

type CounterType int

const (
	CounterNone CounterType = iota
	CounterP1P1
	CounterM1M1
	CounterLoyalty
	CounterCharge
	CounterTime
	CounterPoison
)

var counterNames = [...]string{"None", "P1P1", "M1M1", "LOYALTY", "CHARGE", "TIME", "POISON"}

func (c CounterType) Name() string   { return enumName(counterNames[:], int(c)) }
func (c CounterType) String() string { return c.Name() }

func (CounterType) Values() []CounterType {
	return []CounterType{CounterP1P1, CounterM1M1, CounterLoyalty, CounterCharge, CounterTime, CounterPoison}
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

var (
	ZoneType       = trackable.EnumType[Zone]()
	PhaseType      = trackable.EnumType[Phase]()
	CounterMapType = trackable.EnumKeyedIntegerMapType[CounterType]()
)

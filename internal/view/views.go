package view

import (
	"github.com/danmuck/forgesync/internal/protocol/schema"
	"github.com/danmuck/forgesync/internal/trackable"
)

// Card properties.
var (
	CardName         = declare(schema.ObjectCard, schema.PropName, trackable.StringType)
	CardZone         = declare[Zone](schema.ObjectCard, schema.PropZone, ZoneType)
	CardOwner        = declare(schema.ObjectCard, schema.PropOwner, trackable.PlayerViewRef)
	CardController   = declare(schema.ObjectCard, schema.PropController, trackable.PlayerViewRef)
	CardTapped       = declare(schema.ObjectCard, schema.PropTapped, trackable.BooleanType)
	CardColors       = declare(schema.ObjectCard, schema.PropColors, ColorSetType)
	CardManaCost     = declare(schema.ObjectCard, schema.PropManaCost, ManaCostType)
	CardCounters     = declare[trackable.EnumCounts[CounterType]](schema.ObjectCard, schema.PropCounters, CounterMapType)
	CardAttachedTo   = declare(schema.ObjectCard, schema.PropAttachedTo, trackable.CardViewRef)
	CardAttachments  = declare(schema.ObjectCard, schema.PropAttachments, trackable.CardViewCollectionType)
	CardCurrentState = declareEmbedded[*CardStateView](schema.ObjectCard, schema.PropCurrentState, CardStateViewType, seedCardState)
	CardSets         = declare(schema.ObjectCard, schema.PropSets, trackable.StringSetType)
)

// Player properties.
var (
	PlayerName        = declare(schema.ObjectPlayer, schema.PropName, trackable.StringType)
	PlayerLife        = declare(schema.ObjectPlayer, schema.PropLife, trackable.IntegerType)
	PlayerHand        = declare(schema.ObjectPlayer, schema.PropHand, trackable.CardViewCollectionType)
	PlayerLibrary     = declare(schema.ObjectPlayer, schema.PropLibrary, trackable.CardViewCollectionType)
	PlayerBattlefield = declare(schema.ObjectPlayer, schema.PropBattlefield, trackable.CardViewCollectionType)
	PlayerManaPool    = declare(schema.ObjectPlayer, schema.PropManaPool, trackable.ByteKeyedIntegerMapType)
	PlayerOpponents   = declare(schema.ObjectPlayer, schema.PropOpponents, trackable.PlayerViewCollectionType)
	PlayerNotes       = declare(schema.ObjectPlayer, schema.PropNotes, trackable.StringMapType)
)

// Game properties.
var (
	GameTurn       = declare(schema.ObjectGame, schema.PropTurn, trackable.IntegerType)
	GamePhase      = declare[Phase](schema.ObjectGame, schema.PropPhase, PhaseType)
	GamePlayerTurn = declare(schema.ObjectGame, schema.PropPlayerTurn, trackable.PlayerViewRef)
	GamePlayers    = declare(schema.ObjectGame, schema.PropPlayers, trackable.PlayerViewCollectionType)
	GameTopOfStack = declareEmbedded[*StackItemView](schema.ObjectGame, schema.PropTopOfStack, StackItemViewType, seedStackItem)
	GameFocus      = declare(schema.ObjectGame, schema.PropFocus, trackable.GameEntityViewRef)
)

// GameID is the fixed id of the single game object.
const GameID = 0

// CardView is a card known to the tracker.
type CardView struct {
	Object
}

func newCardView(id int) *CardView {
	v := &CardView{}
	v.init(schema.ObjectCard, id)
	return v
}

func (c *CardView) TrackableID() int           { return c.id }
func (c *CardView) Kind() trackable.EntityKind { return trackable.KindCard }
func (c *CardView) Ref() trackable.Ref         { return trackable.CardRef(c.id) }

func (c *CardView) Name() string                                { return CardName.Get(&c.Object) }
func (c *CardView) Zone() Zone                                  { return CardZone.Get(&c.Object) }
func (c *CardView) Owner() trackable.Ref                        { return CardOwner.Get(&c.Object) }
func (c *CardView) Controller() trackable.Ref                   { return CardController.Get(&c.Object) }
func (c *CardView) Tapped() bool                                { return CardTapped.Get(&c.Object) }
func (c *CardView) Colors() ColorSet                            { return CardColors.Get(&c.Object) }
func (c *CardView) ManaCost() ManaCost                          { return CardManaCost.Get(&c.Object) }
func (c *CardView) Counters() trackable.EnumCounts[CounterType] { return CardCounters.Get(&c.Object) }
func (c *CardView) AttachedTo() trackable.Ref                   { return CardAttachedTo.Get(&c.Object) }
func (c *CardView) Attachments() *trackable.Collection          { return CardAttachments.Get(&c.Object) }
func (c *CardView) State() *CardStateView                       { return CardCurrentState.Get(&c.Object) }
func (c *CardView) Sets() trackable.StringSet                   { return CardSets.Get(&c.Object) }

// PlayerView is a player known to the tracker.
type PlayerView struct {
	Object
}

func newPlayerView(id int) *PlayerView {
	v := &PlayerView{}
	v.init(schema.ObjectPlayer, id)
	return v
}

func (p *PlayerView) TrackableID() int           { return p.id }
func (p *PlayerView) Kind() trackable.EntityKind { return trackable.KindPlayer }
func (p *PlayerView) Ref() trackable.Ref         { return trackable.PlayerRef(p.id) }

func (p *PlayerView) Name() string                       { return PlayerName.Get(&p.Object) }
func (p *PlayerView) Life() int                          { return PlayerLife.Get(&p.Object) }
func (p *PlayerView) Hand() *trackable.Collection        { return PlayerHand.Get(&p.Object) }
func (p *PlayerView) Library() *trackable.Collection     { return PlayerLibrary.Get(&p.Object) }
func (p *PlayerView) Battlefield() *trackable.Collection { return PlayerBattlefield.Get(&p.Object) }
func (p *PlayerView) ManaPool() map[byte]int             { return PlayerManaPool.Get(&p.Object) }
func (p *PlayerView) Opponents() *trackable.Collection   { return PlayerOpponents.Get(&p.Object) }
func (p *PlayerView) Notes() map[string]string           { return PlayerNotes.Get(&p.Object) }

// GameView is the single per-match object.
type GameView struct {
	Object
}

func newGameView() *GameView {
	v := &GameView{}
	v.init(schema.ObjectGame, GameID)
	return v
}

func (g *GameView) Turn() int                      { return GameTurn.Get(&g.Object) }
func (g *GameView) Phase() Phase                   { return GamePhase.Get(&g.Object) }
func (g *GameView) PlayerTurn() trackable.Ref      { return GamePlayerTurn.Get(&g.Object) }
func (g *GameView) Players() *trackable.Collection { return GamePlayers.Get(&g.Object) }
func (g *GameView) TopOfStack() *StackItemView     { return GameTopOfStack.Get(&g.Object) }
func (g *GameView) Focus() trackable.Ref           { return GameFocus.Get(&g.Object) }

package view

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danmuck/forgesync/internal/protocol/schema"
	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/rs/zerolog/log"
)

// Tracker owns every card and player of one match plus the game object. It
// is the index references resolve against.
type Tracker struct {
	mu      sync.RWMutex
	game    *GameView
	cards   map[int]*CardView
	players map[int]*PlayerView
}

func NewTracker() *Tracker {
	return &Tracker{
		game:    newGameView(),
		cards:   make(map[int]*CardView),
		players: make(map[int]*PlayerView),
	}
}

func (t *Tracker) Game() *GameView { return t.game }

func (t *Tracker) Card(id int) (*CardView, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.cards[id]
	return c, ok
}

func (t *Tracker) Player(id int) (*PlayerView, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.players[id]
	return p, ok
}

// CardByID implements trackable.Index.
func (t *Tracker) CardByID(id int) (trackable.Entity, bool) {
	c, ok := t.Card(id)
	if !ok {
		return nil, false
	}
	return c, true
}

// PlayerByID implements trackable.Index.
func (t *Tracker) PlayerByID(id int) (trackable.Entity, bool) {
	p, ok := t.Player(id)
	if !ok {
		return nil, false
	}
	return p, true
}

// AddCard returns the card with id, creating it when unknown.
func (t *Tracker) AddCard(id int) *CardView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.cards[id]; ok {
		return c
	}
	c := newCardView(id)
	t.cards[id] = c
	log.Debug().Int("card", id).Msg("view: card tracked")
	return c
}

// AddPlayer returns the player with id, creating it when unknown.
func (t *Tracker) AddPlayer(id int) *PlayerView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.players[id]; ok {
		return p
	}
	p := newPlayerView(id)
	t.players[id] = p
	log.Debug().Int("player", id).Msg("view: player tracked")
	return p
}

// Ensure returns the object for kind and id, creating cards and players on
// demand. The game object only exists under GameID.
func (t *Tracker) Ensure(kind schema.ObjectKind, id int) (*Object, error) {
	if id < 0 {
		return nil, fmt.Errorf("view: negative %s id %d", kind, id)
	}
	switch kind {
	case schema.ObjectCard:
		return &t.AddCard(id).Object, nil
	case schema.ObjectPlayer:
		return &t.AddPlayer(id).Object, nil
	case schema.ObjectGame:
		if id != GameID {
			return nil, fmt.Errorf("view: game id %d, want %d", id, GameID)
		}
		return &t.game.Object, nil
	default:
		return nil, schema.ValidationError{Object: kind, Reason: "unknown object kind"}
	}
}

// CardOf resolves a card reference to its view.
func (t *Tracker) CardOf(r trackable.Ref) (*CardView, bool) {
	if r.Kind != trackable.KindCard || !r.Present() {
		return nil, false
	}
	return t.Card(r.ID)
}

// PlayerOf resolves a player reference to its view.
func (t *Tracker) PlayerOf(r trackable.Ref) (*PlayerView, bool) {
	if r.Kind != trackable.KindPlayer || !r.Present() {
		return nil, false
	}
	return t.Player(r.ID)
}

func (t *Tracker) Cards() []*CardView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*CardView, 0, len(t.cards))
	for _, c := range t.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (t *Tracker) Players() []*PlayerView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*PlayerView, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Objects returns the game, then players, then cards, each by ascending id.
func (t *Tracker) Objects() []*Object {
	players := t.Players()
	cards := t.Cards()
	out := make([]*Object, 0, 1+len(players)+len(cards))
	out = append(out, &t.game.Object)
	for _, p := range players {
		out = append(out, &p.Object)
	}
	for _, c := range cards {
		out = append(out, &c.Object)
	}
	return out
}

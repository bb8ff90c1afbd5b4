package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/danmuck/forgesync/internal/view"
)

// Fixture is a game position described in TOML, used to seed a tracker.
type Fixture struct {
	Game    GameFixture     `toml:"game"`
	Players []PlayerFixture `toml:"players"`
	Cards   []CardFixture   `toml:"cards"`
}

type GameFixture struct {
	Turn         int           `toml:"turn"`
	Phase        string        `toml:"phase"`
	ActivePlayer int           `toml:"active_player"`
	FocusCard    *int          `toml:"focus_card"`
	Stack        *StackFixture `toml:"stack"`
}

type StackFixture struct {
	ID           int    `toml:"id"`
	Text         string `toml:"text"`
	Source       *int   `toml:"source"`
	Activator    *int   `toml:"activator"`
	TargetCard   *int   `toml:"target_card"`
	TargetPlayer *int   `toml:"target_player"`
}

type PlayerFixture struct {
	ID       int               `toml:"id"`
	Name     string            `toml:"name"`
	Life     int               `toml:"life"`
	ManaPool map[string]int    `toml:"mana_pool"`
	Notes    map[string]string `toml:"notes"`
}

type CardFixture struct {
	ID         int            `toml:"id"`
	Name       string         `toml:"name"`
	Zone       string         `toml:"zone"`
	Owner      int            `toml:"owner"`
	Controller *int           `toml:"controller"`
	Tapped     bool           `toml:"tapped"`
	Colors     string         `toml:"colors"`
	ManaCost   string         `toml:"mana_cost"`
	Power      int            `toml:"power"`
	Toughness  int            `toml:"toughness"`
	Types      []string       `toml:"types"`
	Sets       []string       `toml:"sets"`
	Counters   map[string]int `toml:"counters"`
	AttachedTo *int           `toml:"attached_to"`
}

func LoadFixture(path string) (Fixture, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Fixture{}, fmt.Errorf("load fixture: %w", err)
	}
	if err := ValidateFixture(f); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

func ValidateFixture(f Fixture) error {
	players := make(map[int]struct{}, len(f.Players))
	for i, p := range f.Players {
		if p.ID < 0 {
			return fmt.Errorf("players[%d]: negative id", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("players[%d]: name is required", i)
		}
		if _, dup := players[p.ID]; dup {
			return fmt.Errorf("players[%d]: duplicate id %d", i, p.ID)
		}
		players[p.ID] = struct{}{}
	}
	cards := make(map[int]struct{}, len(f.Cards))
	for i, c := range f.Cards {
		if c.ID < 0 {
			return fmt.Errorf("cards[%d]: negative id", i)
		}
		if _, dup := cards[c.ID]; dup {
			return fmt.Errorf("cards[%d]: duplicate id %d", i, c.ID)
		}
		cards[c.ID] = struct{}{}
		if _, ok := players[c.Owner]; !ok {
			return fmt.Errorf("cards[%d]: unknown owner %d", i, c.Owner)
		}
		if _, ok := view.ZoneType.Parse(c.Zone); !ok {
			return fmt.Errorf("cards[%d]: unknown zone %q", i, c.Zone)
		}
	}
	if f.Game.Phase != "" {
		if _, ok := view.PhaseType.Parse(f.Game.Phase); !ok {
			return fmt.Errorf("game: unknown phase %q", f.Game.Phase)
		}
	}
	return nil
}

// Build seeds a tracker from f. Zone membership collections and opponents
// are derived from the cards and players.
func Build(f Fixture) (*view.Tracker, error) {
	if err := ValidateFixture(f); err != nil {
		return nil, err
	}
	t := view.NewTracker()

	playerIDs := make([]int, 0, len(f.Players))
	for _, p := range f.Players {
		playerIDs = append(playerIDs, p.ID)
	}
	sort.Ints(playerIDs)

	zones := make(map[int]map[view.Zone]*trackable.Collection)
	for _, p := range f.Players {
		pv := t.AddPlayer(p.ID)
		view.PlayerName.Set(&pv.Object, p.Name)
		view.PlayerLife.Set(&pv.Object, p.Life)
		opponents := trackable.NewCollection(trackable.KindPlayer)
		for _, id := range playerIDs {
			if id != p.ID {
				opponents.Add(id)
			}
		}
		view.PlayerOpponents.Set(&pv.Object, opponents)
		if len(p.ManaPool) > 0 {
			pool := make(map[byte]int, len(p.ManaPool))
			for letter, n := range p.ManaPool {
				if len(letter) != 1 {
					return nil, fmt.Errorf("player %d: mana pool key %q", p.ID, letter)
				}
				c, err := view.ParseColor(letter[0])
				if err != nil {
					return nil, fmt.Errorf("player %d: %w", p.ID, err)
				}
				pool[byte(c)] = n
			}
			view.PlayerManaPool.Set(&pv.Object, pool)
		}
		if len(p.Notes) > 0 {
			view.PlayerNotes.Set(&pv.Object, p.Notes)
		}
		zones[p.ID] = map[view.Zone]*trackable.Collection{
			view.ZoneHand:        trackable.NewCollection(trackable.KindCard),
			view.ZoneLibrary:     trackable.NewCollection(trackable.KindCard),
			view.ZoneBattlefield: trackable.NewCollection(trackable.KindCard),
		}
	}

	attachments := make(map[int]*trackable.Collection)
	for _, c := range f.Cards {
		card, err := buildCard(t, c)
		if err != nil {
			return nil, err
		}
		holder := c.Owner
		if card.Zone() == view.ZoneBattlefield {
			holder = card.Controller().ID
		}
		if coll, ok := zones[holder][card.Zone()]; ok {
			coll.Add(c.ID)
		}
		if c.AttachedTo != nil {
			host := attachments[*c.AttachedTo]
			if host == nil {
				host = trackable.NewCollection(trackable.KindCard)
				attachments[*c.AttachedTo] = host
			}
			host.Add(c.ID)
		}
	}
	for id, coll := range attachments {
		host, ok := t.Card(id)
		if !ok {
			return nil, fmt.Errorf("card attached to unknown card %d", id)
		}
		view.CardAttachments.Set(&host.Object, coll)
	}
	for _, p := range t.Players() {
		view.PlayerHand.Set(&p.Object, zones[p.ID()][view.ZoneHand])
		view.PlayerLibrary.Set(&p.Object, zones[p.ID()][view.ZoneLibrary])
		view.PlayerBattlefield.Set(&p.Object, zones[p.ID()][view.ZoneBattlefield])
	}

	buildGame(t, f.Game, playerIDs)
	return t, nil
}

func buildCard(t *view.Tracker, c CardFixture) (*view.CardView, error) {
	zone, _ := view.ZoneType.Parse(c.Zone)
	colors, err := view.ParseColorSet(c.Colors)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", c.ID, err)
	}
	cost := view.ManaCost{}
	if c.ManaCost != "" {
		if cost, err = view.ParseManaCost(c.ManaCost); err != nil {
			return nil, fmt.Errorf("card %d: %w", c.ID, err)
		}
	}
	controller := c.Owner
	if c.Controller != nil {
		controller = *c.Controller
	}

	card := t.AddCard(c.ID)
	o := &card.Object
	view.CardName.Set(o, c.Name)
	view.CardZone.Set(o, zone)
	view.CardOwner.Set(o, trackable.PlayerRef(c.Owner))
	view.CardController.Set(o, trackable.PlayerRef(controller))
	view.CardTapped.Set(o, c.Tapped)
	view.CardColors.Set(o, colors)
	view.CardManaCost.Set(o, cost)
	if c.AttachedTo != nil {
		view.CardAttachedTo.Set(o, trackable.CardRef(*c.AttachedTo))
	}
	if len(c.Sets) > 0 {
		view.CardSets.Set(o, trackable.NewStringSet(c.Sets...))
	}
	if len(c.Counters) > 0 {
		counters, err := parseCounters(c.Counters)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", c.ID, err)
		}
		view.CardCounters.Set(o, counters)
	}
	view.CardCurrentState.Set(o, &view.CardStateView{
		Name:      c.Name,
		Power:     c.Power,
		Toughness: c.Toughness,
		Types:     trackable.NewStringSet(c.Types...),
		Colors:    colors,
		ManaCost:  cost,
	})
	return card, nil
}

// parseCounters orders counters by declaration so output is deterministic.
func parseCounters(raw map[string]int) (trackable.EnumCounts[view.CounterType], error) {
	codec := trackable.EnumType[view.CounterType]()
	for name := range raw {
		if _, ok := codec.Parse(name); !ok {
			return nil, fmt.Errorf("%w: counter %q", trackable.ErrUnknownEnumName, name)
		}
	}
	var out trackable.EnumCounts[view.CounterType]
	for _, ct := range codec.Values() {
		if n, ok := raw[ct.Name()]; ok {
			out = out.With(ct, n)
		}
	}
	return out, nil
}

func buildGame(t *view.Tracker, g GameFixture, playerIDs []int) {
	o := &t.Game().Object
	view.GameTurn.Set(o, g.Turn)
	if g.Phase != "" {
		phase, _ := view.PhaseType.Parse(g.Phase)
		view.GamePhase.Set(o, phase)
	}
	view.GamePlayers.Set(o, trackable.NewCollection(trackable.KindPlayer, playerIDs...))
	if _, ok := t.Player(g.ActivePlayer); ok {
		view.GamePlayerTurn.Set(o, trackable.PlayerRef(g.ActivePlayer))
	}
	if g.FocusCard != nil {
		view.GameFocus.Set(o, trackable.CardRef(*g.FocusCard))
	}
	if s := g.Stack; s != nil {
		item := &view.StackItemView{
			ID:      s.ID,
			Text:    s.Text,
			Targets: trackable.NewCollection(trackable.KindCard),
		}
		if s.Source != nil {
			item.Source = trackable.CardRef(*s.Source)
		}
		if s.Activator != nil {
			item.Activator = trackable.PlayerRef(*s.Activator)
		}
		switch {
		case s.TargetCard != nil:
			item.Target = trackable.CardRef(*s.TargetCard)
			item.Targets.Add(*s.TargetCard)
		case s.TargetPlayer != nil:
			item.Target = trackable.PlayerRef(*s.TargetPlayer)
		}
		view.GameTopOfStack.Set(o, item)
	}
}

package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/danmuck/forgesync/internal/view"
)

func TestBuildFixture(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "fixture.toml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	tr, err := Build(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	alice, ok := tr.Player(1)
	if !ok {
		t.Fatalf("missing player 1")
	}
	if got := alice.Battlefield().IDs(); !reflect.DeepEqual(got, []int{10, 11}) {
		t.Fatalf("alice battlefield = %v", got)
	}
	if got := alice.Opponents().IDs(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("alice opponents = %v", got)
	}
	if got := alice.ManaPool(); got[byte(view.Green)] != 2 {
		t.Fatalf("alice mana pool = %v", got)
	}
	bob, _ := tr.Player(2)
	if got := bob.Hand().IDs(); !reflect.DeepEqual(got, []int{13}) {
		t.Fatalf("bob hand = %v", got)
	}
	if bob.Notes()["chosen_type"] != "Elf" {
		t.Fatalf("bob notes = %v", bob.Notes())
	}

	bear, _ := tr.Card(10)
	if got := bear.Attachments().IDs(); !reflect.DeepEqual(got, []int{11}) {
		t.Fatalf("bear attachments = %v", got)
	}
	if bear.Controller() != trackable.PlayerRef(1) {
		t.Fatalf("bear controller = %v", bear.Controller())
	}
	if bear.Counters().Get(view.CounterP1P1) != 1 {
		t.Fatalf("bear counters = %v", bear.Counters())
	}
	if bear.ManaCost().String() != "{1}{G}" {
		t.Fatalf("bear cost = %s", bear.ManaCost())
	}
	if st := bear.State(); st == nil || st.Power != 2 || !st.Types.Has("Bear") {
		t.Fatalf("bear state = %+v", st)
	}
	forest, _ := tr.Card(13)
	if forest.ManaCost().Defined || forest.Colors() != view.Colorless {
		t.Fatalf("forest cost/colors = %s/%s", forest.ManaCost(), forest.Colors())
	}

	game := tr.Game()
	if game.Phase() != view.PhaseMain1 || game.Turn() != 3 {
		t.Fatalf("game phase/turn = %s/%d", game.Phase(), game.Turn())
	}
	if game.Focus() != trackable.CardRef(11) {
		t.Fatalf("game focus = %v", game.Focus())
	}
	item := game.TopOfStack()
	if item == nil || item.Target != trackable.CardRef(10) || item.Activator != trackable.PlayerRef(2) {
		t.Fatalf("top of stack = %+v", item)
	}
}

func TestValidateFixtureErrors(t *testing.T) {
	base := func() Fixture {
		return Fixture{
			Players: []PlayerFixture{{ID: 1, Name: "Alice", Life: 20}},
			Cards:   []CardFixture{{ID: 1, Name: "Island", Zone: "Hand", Owner: 1}},
		}
	}
	cases := map[string]func(*Fixture){
		"unknown owner":    func(f *Fixture) { f.Cards[0].Owner = 9 },
		"unknown zone":     func(f *Fixture) { f.Cards[0].Zone = "Sideboard" },
		"duplicate card":   func(f *Fixture) { f.Cards = append(f.Cards, f.Cards[0]) },
		"duplicate player": func(f *Fixture) { f.Players = append(f.Players, f.Players[0]) },
		"missing name":     func(f *Fixture) { f.Players[0].Name = " " },
		"unknown phase":    func(f *Fixture) { f.Game.Phase = "Beginning" },
	}
	if err := ValidateFixture(base()); err != nil {
		t.Fatalf("base fixture invalid: %v", err)
	}
	for name, mutate := range cases {
		f := base()
		mutate(&f)
		if err := ValidateFixture(f); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildRejectsUnknownCounter(t *testing.T) {
	f := Fixture{
		Players: []PlayerFixture{{ID: 1, Name: "Alice"}},
		Cards:   []CardFixture{{ID: 1, Name: "Bear", Zone: "Battlefield", Owner: 1, Counters: map[string]int{"STUN": 1}}},
	}
	_, err := Build(f)
	if err == nil || !strings.Contains(err.Error(), "STUN") {
		t.Fatalf("expected unknown counter error, got %v", err)
	}
}

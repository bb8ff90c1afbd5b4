package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/forgesync/internal/trackable"
)

var ErrMalformedManaCost = errors.New("view: malformed mana cost")

const noCostText = "no cost"

// ManaCost is a parsed shard string such as "{2}{W}{U}". The zero value is
// "no cost", which differs from the defined cost "{0}".
type ManaCost struct {
	Defined bool
	Generic int
	Shards  []string
}

func ParseManaCost(raw string) (ManaCost, error) {
	s := strings.TrimSpace(raw)
	if s == noCostText {
		return ManaCost{}, nil
	}
	if s == "" {
		return ManaCost{}, fmt.Errorf("%w: empty", ErrMalformedManaCost)
	}
	cost := ManaCost{Defined: true}
	for s != "" {
		end := strings.IndexByte(s, '}')
		if s[0] != '{' || end < 2 {
			return ManaCost{}, fmt.Errorf("%w: %q", ErrMalformedManaCost, raw)
		}
		shard := strings.ToUpper(s[1:end])
		s = s[end+1:]
		if n, err := strconv.Atoi(shard); err == nil {
			if n < 0 {
				return ManaCost{}, fmt.Errorf("%w: %q", ErrMalformedManaCost, raw)
			}
			cost.Generic += n
			continue
		}
		if !validShard(shard) {
			return ManaCost{}, fmt.Errorf("%w: shard %q", ErrMalformedManaCost, shard)
		}
		cost.Shards = append(cost.Shards, shard)
	}
	return cost, nil
}

// validShard accepts single symbols and hybrids such as "W/U" or "2/W".
func validShard(shard string) bool {
	for _, part := range strings.Split(shard, "/") {
		if len(part) != 1 {
			return false
		}
		if !strings.ContainsRune("WUBRGCXSP2", rune(part[0])) {
			return false
		}
	}
	return true
}

func (m ManaCost) String() string {
	if !m.Defined {
		return noCostText
	}
	var b strings.Builder
	if m.Generic > 0 || len(m.Shards) == 0 {
		b.WriteString("{" + strconv.Itoa(m.Generic) + "}")
	}
	for _, shard := range m.Shards {
		b.WriteString("{" + shard + "}")
	}
	return b.String()
}

// ManaValue is the total converted cost; X counts as zero.
func (m ManaCost) ManaValue() int {
	total := m.Generic
	for _, shard := range m.Shards {
		switch {
		case shard == "X":
		case strings.HasPrefix(shard, "2/"):
			total += 2
		default:
			total++
		}
	}
	return total
}

// ManaCostType writes the shard string. An empty string on the wire leaves
// the previous cost in place.
var ManaCostType trackable.Type[ManaCost] = manaCostType{}

type manaCostType struct{}

func (manaCostType) Default() ManaCost { return ManaCost{} }

func (manaCostType) Serialize(s trackable.Serializer, v ManaCost) error {
	return s.WriteString(v.String())
}

func (manaCostType) Deserialize(d trackable.Deserializer, prev ManaCost) (ManaCost, error) {
	raw, err := d.ReadString()
	if err != nil {
		return prev, err
	}
	if raw == "" {
		return prev, nil
	}
	return ParseManaCost(raw)
}

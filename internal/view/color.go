package view

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/danmuck/forgesync/internal/trackable"
)

var ErrInvalidColorMask = errors.New("view: invalid color mask")

// ColorSet is a bit mask of the five colors. The zero value is colorless.
type ColorSet uint8

const (
	White ColorSet = 1 << iota
	Blue
	Black
	Red
	Green

	Colorless ColorSet = 0
	AllColors          = White | Blue | Black | Red | Green
)

var colorLetters = []struct {
	color  ColorSet
	letter byte
}{
	{White, 'W'},
	{Blue, 'U'},
	{Black, 'B'},
	{Red, 'R'},
	{Green, 'G'},
}

// ParseColorSet reads letters such as "WU". "C" and "" are colorless.
func ParseColorSet(raw string) (ColorSet, error) {
	var out ColorSet
	for i := 0; i < len(raw); i++ {
		c, err := ParseColor(raw[i])
		if err != nil {
			return Colorless, err
		}
		out |= c
	}
	return out, nil
}

// ParseColor maps one color letter to its bit.
func ParseColor(letter byte) (ColorSet, error) {
	switch l := letter &^ 0x20; l {
	case 'C':
		return Colorless, nil
	default:
		for _, cl := range colorLetters {
			if cl.letter == l {
				return cl.color, nil
			}
		}
	}
	return Colorless, fmt.Errorf("view: unknown color %q", letter)
}

func (c ColorSet) Has(other ColorSet) bool { return c&other == other }
func (c ColorSet) Count() int              { return bits.OnesCount8(uint8(c & AllColors)) }

func (c ColorSet) String() string {
	if c == Colorless {
		return "C"
	}
	var b strings.Builder
	for _, cl := range colorLetters {
		if c&cl.color != 0 {
			b.WriteByte(cl.letter)
		}
	}
	return b.String()
}

// ColorSetType writes the mask as an integer.
var ColorSetType trackable.Type[ColorSet] = colorSetType{}

type colorSetType struct{}

func (colorSetType) Default() ColorSet { return Colorless }

func (colorSetType) Serialize(s trackable.Serializer, v ColorSet) error {
	return s.WriteInt(int(v))
}

func (colorSetType) Deserialize(d trackable.Deserializer, prev ColorSet) (ColorSet, error) {
	n, err := d.ReadInt()
	if err != nil {
		return prev, err
	}
	if n < 0 || n > int(AllColors) {
		return prev, fmt.Errorf("%w: %d", ErrInvalidColorMask, n)
	}
	return ColorSet(n), nil
}

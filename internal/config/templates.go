package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "config":
		return configTemplate, nil
	case "fixture":
		return fixtureTemplate, nil
	default:
		return "", fmt.Errorf("unknown template kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const configTemplate = `backend = "tlv"
compression = false
checksum = true
max_payload_bytes = 8388608
max_decoded_bytes = 33554432
log_level = "info"
`

const fixtureTemplate = `[game]
turn = 3
phase = "Main1"
active_player = 1
focus_card = 11

[game.stack]
id = 1
text = "Giant Growth targeting Grizzly Bears"
source = 12
activator = 2
target_card = 10

[[players]]
id = 1
name = "Alice"
life = 20
mana_pool = { G = 2 }

[[players]]
id = 2
name = "Bob"
life = 17
notes = { chosen_type = "Elf" }

[[cards]]
id = 10
name = "Grizzly Bears"
zone = "Battlefield"
owner = 1
colors = "G"
mana_cost = "{1}{G}"
power = 2
toughness = 2
types = ["Creature", "Bear"]
sets = ["LEA", "M10"]
counters = { P1P1 = 1 }

[[cards]]
id = 11
name = "Rancor"
zone = "Battlefield"
owner = 1
colors = "G"
mana_cost = "{G}"
types = ["Enchantment", "Aura"]
attached_to = 10

[[cards]]
id = 12
name = "Giant Growth"
zone = "Stack"
owner = 2
colors = "G"
mana_cost = "{G}"
types = ["Instant"]

[[cards]]
id = 13
name = "Forest"
zone = "Hand"
owner = 2
types = ["Land"]
`

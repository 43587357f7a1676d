// Package keymap maps key names to annotation commands.
//
// Key names are the values browsers report in KeyboardEvent.key: "a", "1",
// " " (space), "Escape", "ArrowLeft" and so on. Matching is case-insensitive
// and "space" and "esc" are accepted as aliases in bindings.
package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Command is an action triggered by a key.
type Command int

const (
	CommandNone Command = iota
	CommandPreviousFrame
	CommandNextFrame
	CommandDecreaseJump
	CommandIncreaseJump
	CommandCommit
	CommandGoBack
	CommandQuit
)

var commandNames = map[Command]string{
	CommandNone:          "none",
	CommandPreviousFrame: "previous_frame",
	CommandNextFrame:     "next_frame",
	CommandDecreaseJump:  "decrease_jump",
	CommandIncreaseJump:  "increase_jump",
	CommandCommit:        "commit",
	CommandGoBack:        "go_back",
	CommandQuit:          "quit",
}

// String returns the configuration name of the command.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand parses a configuration name.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if c != CommandNone && n == name {
			return c, nil
		}
	}
	return CommandNone, fmt.Errorf("keymap: unknown command %q", name)
}

// Bindings maps a command name to the keys that trigger it.
type Bindings map[string][]string

// DefaultBindings returns the classic layout: a/d step, 1/2 adjust the jump,
// s or space commit, w go back, Escape quit.
func DefaultBindings() Bindings {
	return Bindings{
		"previous_frame": {"a"},
		"next_frame":     {"d"},
		"decrease_jump":  {"1"},
		"increase_jump":  {"2"},
		"commit":         {"s", " "},
		"go_back":        {"w"},
		"quit":           {"Escape"},
	}
}

// Keymap resolves key names to commands.
type Keymap struct {
	keys map[string]Command
}

// New builds a Keymap. Commands missing from bindings keep their default keys.
// Binding one key to two commands is an error.
func New(bindings Bindings) (*Keymap, error) {
	merged := DefaultBindings()
	for name, keys := range bindings {
		merged[name] = keys
	}

	// Iterate in a fixed order so conflict errors are deterministic.
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	km := &Keymap{keys: make(map[string]Command)}
	for _, name := range names {
		cmd, err := ParseCommand(name)
		if err != nil {
			return nil, err
		}
		for _, key := range merged[name] {
			k := normalize(key)
			if k == "" {
				return nil, fmt.Errorf("keymap: empty key for %s", name)
			}
			if prev, ok := km.keys[k]; ok && prev != cmd {
				return nil, fmt.Errorf("keymap: key %q bound to both %s and %s", key, prev, cmd)
			}
			km.keys[k] = cmd
		}
	}
	return km, nil
}

// Default returns the Keymap for DefaultBindings.
func Default() *Keymap {
	km, err := New(nil)
	if err != nil {
		panic(err)
	}
	return km
}

// Resolve returns the command bound to key, or CommandNone.
func (k *Keymap) Resolve(key string) Command {
	return k.keys[normalize(key)]
}

// Keys returns the keys bound to cmd, sorted.
func (k *Keymap) Keys(cmd Command) []string {
	var keys []string
	for key, c := range k.keys {
		if c == cmd {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func normalize(key string) string {
	k := strings.ToLower(key)
	switch k {
	case "space", "spacebar":
		return " "
	case "esc":
		return "escape"
	}
	return k
}

package protocol

import (
	"strconv"
	"strings"
)

// #region tables
// DefaultKeyAliases maps literal inputs to the two dispatchable protocol keys.
func DefaultKeyAliases() map[string]Key {
	return map[string]Key{
		"[18·1]":            KeyMenu,
		"RA":                KeyMenu,
		"[15·13·18·5·18·1]": KeyChild,
		"OM_RE_RA":          KeyChild,
		"OM RE RA":          KeyChild,
	}
}

// DefaultCommandAliases maps the two-digit code, the mnemonic and, for 1-9,
// the bare digit of every catalog command.
func DefaultCommandAliases() map[string]Command {
	aliases := make(map[string]Command, len(Catalog)*3)
	for _, s := range Catalog {
		aliases[s.Code] = s.Command
		aliases[s.Name] = s.Command
		if s.Number < 10 {
			aliases[strconv.Itoa(s.Number)] = s.Command
		}
	}
	return aliases
}
// #endregion tables

// #region resolver
// Resolver maps normalized input to a token by exact lookup.
type Resolver struct {
	keys     map[string]Key
	commands map[string]Command
}

// NewResolver builds a resolver over the given tables. Keys are normalized
// the same way input is.
func NewResolver(keys map[string]Key, commands map[string]Command) *Resolver {
	r := &Resolver{
		keys:     make(map[string]Key, len(keys)),
		commands: make(map[string]Command, len(commands)),
	}
	for alias, k := range keys {
		r.keys[Normalize(alias)] = k
	}
	for alias, c := range commands {
		r.commands[Normalize(alias)] = c
	}
	return r
}

// DefaultResolver returns a resolver over the built-in alias tables.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultKeyAliases(), DefaultCommandAliases())
}

// Resolve returns the token for input. Protocol keys win over commands.
func (r *Resolver) Resolve(input string) (Token, bool) {
	clean := Normalize(input)
	if k, ok := r.keys[clean]; ok {
		return Token{Key: k}, true
	}
	if c, ok := r.commands[clean]; ok {
		return Token{Command: c}, true
	}
	return Token{}, false
}

// Normalize trims surrounding whitespace and upper-cases the input.
func Normalize(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
// #endregion resolver

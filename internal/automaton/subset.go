package automaton

import (
	"sort"
	"strings"
)

// MacroStateConfig holds the tunable constants the subset construction
// is parameterized with: the separator joining member names into a
// macro-state name, the padding character appended to resolve a naming
// collision, and the base name for the dead state before any padding.
// Zero-valued fields fall back to DefaultMacroStateConfig's values.
type MacroStateConfig struct {
	Separator    byte
	Padding      byte
	DeadBaseName string
}

// DefaultMacroStateConfig is the separator/padding/dead-state-name triple
// used when a caller doesn't override it.
var DefaultMacroStateConfig = MacroStateConfig{
	Separator:    '_',
	Padding:      '+',
	DeadBaseName: "DEAD",
}

func (c MacroStateConfig) orDefaults() MacroStateConfig {
	out := c
	if out.Separator == 0 {
		out.Separator = DefaultMacroStateConfig.Separator
	}
	if out.Padding == 0 {
		out.Padding = DefaultMacroStateConfig.Padding
	}
	if out.DeadBaseName == "" {
		out.DeadBaseName = DefaultMacroStateConfig.DeadBaseName
	}
	return out
}

// moveFunc computes the set of member states reached from a macro-state
// (given as its members, in discovery order) by consuming a single real
// (non-epsilon) symbol. It must already apply whatever closure the
// automaton variant requires.
type moveFunc func(members []string, sym byte) []string

// subsetConstruct is the shared engine behind NFA.ToDFA and ENFA.ToDFA:
// starting from an initial macro-state, explore reachable macro-states
// depth-first, naming each one as its members are discovered and
// introducing a single, lazily-created dead state for any macro-state
// that has no successors on some symbol. This mirrors the source's
// recursive "add transition S-a->T, then recurse into T" shape, which
// matters because naming-collision resolution depends on what states
// already exist in the output at the moment a name is assigned.
func subsetConstruct(src *Automaton, initialMembers []string, move moveFunc, cfg MacroStateConfig) *Automaton {
	cfg = cfg.orDefaults()
	out := New(DFA)
	for _, sym := range src.RealAlphabet() {
		out.AddSymbol(sym)
	}

	nameOf := map[string]string{}
	var deadName string
	haveDead := false

	canon := func(members []string) string {
		cp := append([]string(nil), members...)
		sort.Strings(cp)
		return strings.Join(cp, "\x00")
	}

	nameForMembers := func(members []string) string {
		base := strings.Join(members, string(cfg.Separator))
		name := base
		for out.states.Has(name) {
			name += string(cfg.Padding)
		}
		return name
	}

	ensureDeadState := func() string {
		if haveDead {
			return deadName
		}
		name := cfg.DeadBaseName
		for out.states.Has(name) {
			name += string(cfg.Padding)
		}
		deadName = name
		out.AddState(deadName)
		for _, sym := range src.RealAlphabet() {
			out.AddTransition(deadName, sym, deadName)
		}
		haveDead = true
		return deadName
	}

	var process func(members []string) string
	process = func(members []string) string {
		key := canon(members)
		if name, ok := nameOf[key]; ok {
			return name
		}

		name := nameForMembers(members)
		nameOf[key] = name
		out.AddState(name)

		for _, m := range members {
			if src.IsAccepting(m) {
				out.AddAcceptState(name)
				break
			}
		}

		for _, sym := range src.RealAlphabet() {
			next := move(members, sym)
			var targetName string
			if len(next) == 0 {
				targetName = ensureDeadState()
			} else {
				targetName = process(next)
			}
			out.AddTransition(name, sym, targetName)
		}

		return name
	}

	startName := process(initialMembers)
	out.SetStartState(startName)

	return out
}

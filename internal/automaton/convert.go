package automaton

// ToDFA converts an NFA or ENFA to an equivalent, total DFA.
//
// For an NFA this is the subset (powerset) construction (§4.2): starting
// from the singleton macro-state {q0}, reachable macro-states are
// explored, and a macro-state is accepting iff it contains an accept
// state of the source.
//
// For an ENFA this is epsilon-closure followed by subset construction
// (§4.3): the start macro-state is E(q0), and every step closes its raw
// successors before they become the next macro-state's members.
//
// Either way an empty successor set routes to a single, lazily-created
// dead state rather than being left absent, which is what makes the
// output total (§4.4). Both variants resolve their start macro-state's
// name through the same naming rule (nameForMembers in subset.go): unlike
// the source, which special-cased the plain-NFA start to the raw NFA
// start state name (only correct when that macro-state happens to be a
// singleton), there is exactly one notion here of "the name of the
// starting macro-state."
//
// ToDFA requires a.Variant() to be NFA or ENFA; calling it on a DFA is a
// diagnosed no-op. Macro-states are named using DefaultMacroStateConfig;
// use ToDFAWithConfig to override the separator, padding character, or
// dead-state base name.
func (a *Automaton) ToDFA() (*Automaton, *Diagnostic) {
	return a.ToDFAWithConfig(DefaultMacroStateConfig)
}

// ToDFAWithConfig is ToDFA with caller-supplied macro-state naming rules.
func (a *Automaton) ToDFAWithConfig(cfg MacroStateConfig) (*Automaton, *Diagnostic) {
	start, ok := a.StartState()
	if !ok {
		return nil, newDiagnostic(UnknownState, "cannot convert: no start state set")
	}

	switch a.variant {
	case NFA:
		move := func(members []string, sym byte) []string {
			return a.DeltaSet(members, sym)
		}
		return subsetConstruct(a, []string{start}, move, cfg), nil

	case ENFA:
		move := func(members []string, sym byte) []string {
			closed := a.EpsilonClosureOfSet(members)
			var raw []string
			for _, p := range closed.Elements() {
				raw = append(raw, a.trans[transKey{p, sym}]...)
			}
			return a.EpsilonClosureOfSet(raw).Elements()
		}
		initial := a.EpsilonClosure(start).Elements()
		return subsetConstruct(a, initial, move, cfg), nil

	default:
		return nil, newDiagnostic(UnknownAutomatonType, "ToDFA requires an NFA or ENFA, got %s", a.variant)
	}
}

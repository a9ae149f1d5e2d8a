package automaton

// EpsilonClosure computes E(s), the least set containing s and closed
// under direct epsilon-transitions. Only meaningful for an ENFA; callers
// on a DFA/NFA will simply get back {s} since there are no epsilon
// transitions to follow.
//
// Traversal is stack-based and checks "already in closure" before
// pushing a state, which is what makes this terminate even when the
// epsilon graph has cycles.
func (a *Automaton) EpsilonClosure(s string) *OrderedSet[string] {
	closure := NewOrderedSet[string]()
	if !a.states.Has(s) {
		return closure
	}

	closure.Add(s)
	stack := []string{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range a.trans[transKey{cur, Epsilon}] {
			if !closure.Has(next) {
				closure.Add(next)
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// EpsilonClosureOfSet unions EpsilonClosure over every state in states,
// preserving discovery order: states are visited in the order given, and
// for each, the members of its closure are visited in the order that
// closure computation found them.
func (a *Automaton) EpsilonClosureOfSet(states []string) *OrderedSet[string] {
	result := NewOrderedSet[string]()
	for _, s := range states {
		for _, c := range a.EpsilonClosure(s).Elements() {
			result.Add(c)
		}
	}
	return result
}

// ENFADelta computes the closed delta of an ENFA for a single real
// symbol (sym must not be Epsilon):
//
//	delta_eps(s, a) = union over p in E(s) of union over q in delta_raw(p, a) of E(q)
//
// This is the ENFA-specific redefinition of delta that closes both
// before and after consuming the symbol.
func (a *Automaton) ENFADelta(s string, sym byte) ([]string, *Diagnostic) {
	if a.variant != ENFA {
		return nil, newDiagnostic(UnknownSymbol, "ENFADelta is only defined for an ENFA")
	}
	if !a.states.Has(s) {
		return nil, newDiagnostic(UnknownState, "%q is not in Q", s)
	}
	if sym == Epsilon {
		return nil, newDiagnostic(UnknownSymbol, "ENFADelta is defined only for non-epsilon symbols")
	}
	if !a.alphabet.Has(sym) {
		return nil, newDiagnostic(UnknownSymbol, "%q is not in Sigma", string(sym))
	}

	closureS := a.EpsilonClosure(s)
	var raw []string
	for _, p := range closureS.Elements() {
		raw = append(raw, a.trans[transKey{p, sym}]...)
	}
	return a.EpsilonClosureOfSet(raw).Elements(), nil
}

// RealAlphabet returns Sigma with the reserved epsilon byte excluded,
// regardless of variant. Subset construction and regex synthesis iterate
// over this rather than the raw alphabet: epsilon is handled separately
// wherever it matters. DOT rendering and DescribeTransitions do include
// epsilon for an ENFA.
func (a *Automaton) RealAlphabet() []byte {
	out := make([]byte, 0, a.alphabet.Len())
	for _, sym := range a.alphabet.Elements() {
		if sym != Epsilon {
			out = append(out, sym)
		}
	}
	return out
}

// Package automaton implements the data model and conversion algorithms
// shared by deterministic, nondeterministic, and epsilon-nondeterministic
// finite automata: subset construction, epsilon-closure, DFA-to-regex
// synthesis by state elimination, and a Graphviz DOT renderer.
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// Epsilon is the reserved symbol byte denoting the empty string. It may
// only appear in the alphabet of an ENFA.
const Epsilon byte = 'E'

// Variant identifies which of the three automaton kinds a given Automaton
// value is behaving as. The three kinds share one struct and one set of
// fields; Variant governs which of the variant-dispatched rules in
// AddSymbol, AddTransition, and Delta apply. This is the sum-type
// replacement for the virtual-dispatch class hierarchy the source used,
// and incidentally removes the object-slicing bug that came from
// returning a base-class value by copy.
type Variant int

const (
	DFA Variant = iota
	NFA
	ENFA
)

func (v Variant) String() string {
	switch v {
	case DFA:
		return "dfa"
	case NFA:
		return "nfa"
	case ENFA:
		return "enfa"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant parses one of "dfa", "nfa", "enfa" (case-insensitive). It
// returns an UnknownAutomatonType diagnostic for anything else.
func ParseVariant(s string) (Variant, *Diagnostic) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfa":
		return DFA, nil
	case "nfa":
		return NFA, nil
	case "enfa":
		return ENFA, nil
	default:
		return DFA, newDiagnostic(UnknownAutomatonType, "unrecognized automaton type %q", s)
	}
}

type transKey struct {
	state  string
	symbol byte
}

// Automaton is a finite automaton of one of the three Variant kinds. The
// zero value is not usable; construct with New.
type Automaton struct {
	variant Variant

	alphabet *OrderedSet[byte]
	states   *OrderedSet[string]
	accept   *OrderedSet[string]
	start    string
	hasStart bool

	// trans maps (state, symbol) to the ordered list of successor state
	// names. Order of the slice is insertion order, mirroring the
	// source's std::multimap<pair<string,char>, string>.
	trans map[transKey][]string
}

// New creates an empty automaton of the given variant.
func New(v Variant) *Automaton {
	return &Automaton{
		variant:  v,
		alphabet: NewOrderedSet[byte](),
		states:   NewOrderedSet[string](),
		accept:   NewOrderedSet[string](),
		trans:    map[transKey][]string{},
	}
}

// Variant returns which kind of automaton this is.
func (a *Automaton) Variant() Variant { return a.variant }

// Alphabet returns the symbols of Sigma in insertion order.
func (a *Automaton) Alphabet() []byte { return a.alphabet.Elements() }

// States returns the state names of Q in insertion order.
func (a *Automaton) States() []string { return a.states.Elements() }

// AcceptStates returns the accept set F in insertion order.
func (a *Automaton) AcceptStates() []string { return a.accept.Elements() }

// StartState returns the start state and whether one has been set.
func (a *Automaton) StartState() (string, bool) { return a.start, a.hasStart }

// HasState reports whether s is in Q.
func (a *Automaton) HasState(s string) bool { return a.states.Has(s) }

// HasSymbol reports whether sym is in Sigma (or is the epsilon byte for
// an ENFA).
func (a *Automaton) HasSymbol(sym byte) bool {
	if a.variant == ENFA && sym == Epsilon {
		return true
	}
	return a.alphabet.Has(sym)
}

// IsAccepting reports whether s is in F.
func (a *Automaton) IsAccepting(s string) bool { return a.accept.Has(s) }

// AddState appends s to Q if absent. I3.
func (a *Automaton) AddState(s string) *Diagnostic {
	if s == "" {
		return newDiagnostic(MalformedInput, "state name must not be empty")
	}
	if a.states.Has(s) {
		return newDiagnostic(DuplicateState, "state %q already exists", s)
	}
	a.states.Add(s)
	return nil
}

// AddSymbol appends sym to Sigma. A non-ENFA rejects the reserved epsilon
// byte with EpsilonDisallowed; an ENFA accepts it (I2).
func (a *Automaton) AddSymbol(sym byte) *Diagnostic {
	if sym == Epsilon && a.variant != ENFA {
		return newDiagnostic(EpsilonDisallowed, "epsilon is only permitted in an ENFA alphabet")
	}
	if a.alphabet.Has(sym) {
		return newDiagnostic(DuplicateSymbol, "symbol %q already exists", string(sym))
	}
	a.alphabet.Add(sym)
	return nil
}

// SetStartState assigns q0. Requires s to already be in Q (I1).
func (a *Automaton) SetStartState(s string) *Diagnostic {
	if !a.states.Has(s) {
		return newDiagnostic(UnknownState, "cannot set start state: %q is not in Q", s)
	}
	a.start = s
	a.hasStart = true
	return nil
}

// AddAcceptState appends s to F. Requires s in Q (I1); rejects duplicates
// (I3).
func (a *Automaton) AddAcceptState(s string) *Diagnostic {
	if !a.states.Has(s) {
		return newDiagnostic(UnknownState, "cannot mark accepting: %q is not in Q", s)
	}
	if a.accept.Has(s) {
		return newDiagnostic(DuplicateAcceptState, "state %q is already accepting", s)
	}
	a.accept.Add(s)
	return nil
}

// AddTransition adds the triple (from, sym, to) to delta. Requires from
// and to to be in Q and sym to be in Sigma-plus-epsilon as appropriate
// (I1, I2). Rejects an exact duplicate triple (I3). A DFA additionally
// rejects any second target for an existing (from, sym) pair (I4),
// regardless of whether the new target equals the first.
func (a *Automaton) AddTransition(from string, sym byte, to string) *Diagnostic {
	if !a.states.Has(from) {
		return newDiagnostic(UnknownState, "transition source %q is not in Q", from)
	}
	if !a.states.Has(to) {
		return newDiagnostic(UnknownState, "transition target %q is not in Q", to)
	}
	if !a.HasSymbol(sym) {
		return newDiagnostic(UnknownSymbol, "symbol %q is not in Sigma", string(sym))
	}

	key := transKey{from, sym}
	existing := a.trans[key]

	if a.variant == DFA && len(existing) >= 1 {
		return newDiagnostic(SecondTargetRejected, "DFA state %q already has a transition on %q", from, string(sym))
	}

	for _, t := range existing {
		if t == to {
			return newDiagnostic(DuplicateTransition, "transition (%q, %q, %q) already exists", from, string(sym), to)
		}
	}

	a.trans[key] = append(existing, to)
	return nil
}

// Delta returns the set of direct successors of (state, sym), in the
// order they were inserted. Returns UnknownState/UnknownSymbol if either
// input is not registered; on success, err is nil (the slice may be
// empty, which is not an error - it means delta(state, sym) = ∅).
func (a *Automaton) Delta(state string, sym byte) ([]string, *Diagnostic) {
	if !a.states.Has(state) {
		return nil, newDiagnostic(UnknownState, "%q is not in Q", state)
	}
	if !a.HasSymbol(sym) {
		return nil, newDiagnostic(UnknownSymbol, "%q is not in Sigma", string(sym))
	}
	return append([]string(nil), a.trans[transKey{state, sym}]...), nil
}

// DeltaSet lifts Delta pointwise over a set of states, deduplicating the
// result. Order of the result is order of discovery: states are visited
// in the order given in `from`, and for each, its successors are visited
// in delta order.
func (a *Automaton) DeltaSet(from []string, sym byte) []string {
	seen := NewOrderedSet[string]()
	for _, s := range from {
		if !a.states.Has(s) || !a.HasSymbol(sym) {
			continue
		}
		for _, t := range a.trans[transKey{s, sym}] {
			seen.Add(t)
		}
	}
	return seen.Elements()
}

// DeltaWord computes delta(state, word) by iterated application of Delta
// across each symbol in word, starting from the singleton {state}. This
// resolves the source's Automaton::delta(state, string) being marked
// INCOMPLETE: the per-symbol accumulator is threaded through the whole
// word instead of being discarded after the first symbol. Returns
// UnknownState if state is not in Q, or UnknownSymbol at the first symbol
// in word that is not in Sigma; on success the returned set may be empty
// (the word leads nowhere) without that being an error.
func (a *Automaton) DeltaWord(state string, word []byte) ([]string, *Diagnostic) {
	if !a.states.Has(state) {
		return nil, newDiagnostic(UnknownState, "%q is not in Q", state)
	}
	current := []string{state}
	for _, sym := range word {
		if !a.HasSymbol(sym) {
			return nil, newDiagnostic(UnknownSymbol, "%q is not in Sigma", string(sym))
		}
		current = a.DeltaSet(current, sym)
	}
	return current, nil
}

// AllTransitionsTo returns every (state, symbol) pair that has to as one
// of its successors.
func (a *Automaton) AllTransitionsTo(to string) []struct {
	State  string
	Symbol byte
} {
	var out []struct {
		State  string
		Symbol byte
	}
	for _, s := range a.states.Elements() {
		for _, sym := range a.alphabetPlusEpsilon() {
			for _, t := range a.trans[transKey{s, sym}] {
				if t == to {
					out = append(out, struct {
						State  string
						Symbol byte
					}{s, sym})
				}
			}
		}
	}
	return out
}

func (a *Automaton) alphabetPlusEpsilon() []byte {
	syms := a.alphabet.Elements()
	if a.variant == ENFA && !a.alphabet.Has(Epsilon) {
		syms = append(append([]byte(nil), syms...), Epsilon)
	}
	return syms
}

// Validate checks I1-I4 over the whole automaton and returns every
// violation found; a nil/empty return means the automaton is internally
// consistent. This supplements the per-mutation invariant checks with an
// on-demand, whole-automaton pass, useful right after bulk loading.
func (a *Automaton) Validate() []*Diagnostic {
	var diags []*Diagnostic

	if !a.hasStart {
		diags = append(diags, newDiagnostic(UnknownState, "no start state has been set"))
	} else if !a.states.Has(a.start) {
		diags = append(diags, newDiagnostic(UnknownState, "start state %q is not in Q", a.start))
	}

	for _, f := range a.accept.Elements() {
		if !a.states.Has(f) {
			diags = append(diags, newDiagnostic(UnknownState, "accept state %q is not in Q", f))
		}
	}

	seenPerSymbol := map[transKey]int{}
	for key, targets := range a.trans {
		if !a.states.Has(key.state) {
			diags = append(diags, newDiagnostic(UnknownState, "transition source %q is not in Q", key.state))
		}
		if key.symbol != Epsilon || a.variant != ENFA {
			if !a.alphabet.Has(key.symbol) {
				diags = append(diags, newDiagnostic(UnknownSymbol, "transition symbol %q is not in Sigma", string(key.symbol)))
			}
		}
		for _, t := range targets {
			if !a.states.Has(t) {
				diags = append(diags, newDiagnostic(UnknownState, "transition target %q is not in Q", t))
			}
		}
		seenPerSymbol[key] = len(targets)
	}

	if a.variant == DFA {
		for key, n := range seenPerSymbol {
			if n > 1 {
				diags = append(diags, newDiagnostic(SecondTargetRejected, "DFA state %q has %d targets on %q", key.state, n, string(key.symbol)))
			}
		}
	}

	return diags
}

// String renders a deterministic, human-readable multi-line description
// of the automaton: states, symbols, start, accept set, and transitions.
func (a *Automaton) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s {\n", strings.ToUpper(a.variant.String()))
	fmt.Fprintf(&sb, "  states:  %s\n", StringOrderedSet(a.states))
	fmt.Fprintf(&sb, "  symbols: %s\n", stringSymbolSet(a.alphabet))
	if a.hasStart {
		fmt.Fprintf(&sb, "  start:   %s\n", a.start)
	} else {
		fmt.Fprintf(&sb, "  start:   <unset>\n")
	}
	fmt.Fprintf(&sb, "  accept:  %s\n", StringOrderedSet(a.accept))
	fmt.Fprintf(&sb, "  delta:\n")

	keys := make([]transKey, 0, len(a.trans))
	for k := range a.trans {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].symbol < keys[j].symbol
	})
	for _, k := range keys {
		fmt.Fprintf(&sb, "    (%s, %s) -> %s\n", k.state, string(k.symbol), strings.Join(a.trans[k], ", "))
	}
	sb.WriteString("}")
	return sb.String()
}

func stringSymbolSet(s *OrderedSet[byte]) string {
	elems := s.Elements()
	strs := make([]string, len(elems))
	for i, e := range elems {
		strs[i] = string(e)
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}

// Copy returns a deep copy of the automaton. Conversions build fresh
// output automata and never mutate their input; Copy is what a caller
// reaches for when it wants its own mutable working version of an
// existing automaton. (State elimination in regex.go does not use it: it
// copies its own lifted regexGraph instead.)
func (a *Automaton) Copy() *Automaton {
	cp := New(a.variant)
	for _, s := range a.states.Elements() {
		cp.AddState(s)
	}
	for _, sym := range a.alphabet.Elements() {
		cp.AddSymbol(sym)
	}
	if a.hasStart {
		cp.SetStartState(a.start)
	}
	for _, f := range a.accept.Elements() {
		cp.AddAcceptState(f)
	}
	for key, targets := range a.trans {
		for _, t := range targets {
			cp.AddTransition(key.state, key.symbol, t)
		}
	}
	return cp
}

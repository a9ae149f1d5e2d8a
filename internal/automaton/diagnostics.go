package automaton

import "fmt"

// Kind identifies the category of a Diagnostic. See the error taxonomy:
// every mutator that would have been a no-op-plus-stderr-write in the
// original returns one of these instead.
type Kind int

const (
	// DuplicateState indicates a state name already present in Q.
	DuplicateState Kind = iota
	// DuplicateSymbol indicates a symbol already present in Sigma.
	DuplicateSymbol
	// DuplicateTransition indicates the exact triple (p, a, q) already
	// exists in delta.
	DuplicateTransition
	// DuplicateAcceptState indicates a state already present in F.
	DuplicateAcceptState
	// UnknownState indicates a reference to a state not in Q.
	UnknownState
	// UnknownSymbol indicates a reference to a symbol not in Sigma (nor
	// the reserved epsilon byte for an ENFA).
	UnknownSymbol
	// EpsilonDisallowed indicates an attempt to add epsilon to the
	// alphabet of a non-ENFA.
	EpsilonDisallowed
	// MalformedInput indicates a parser-level problem; the parser skips
	// the offending fragment and continues.
	MalformedInput
	// UnknownAutomatonType indicates a <TYPE> tag the loader does not
	// recognize; the loader produces an empty automaton.
	UnknownAutomatonType
	// SecondTargetRejected indicates a DFA transition insertion that
	// would have given (p, a) a second target.
	SecondTargetRejected
)

func (k Kind) String() string {
	switch k {
	case DuplicateState:
		return "DuplicateState"
	case DuplicateSymbol:
		return "DuplicateSymbol"
	case DuplicateTransition:
		return "DuplicateTransition"
	case DuplicateAcceptState:
		return "DuplicateAcceptState"
	case UnknownState:
		return "UnknownState"
	case UnknownSymbol:
		return "UnknownSymbol"
	case EpsilonDisallowed:
		return "EpsilonDisallowed"
	case MalformedInput:
		return "MalformedInput"
	case UnknownAutomatonType:
		return "UnknownAutomatonType"
	case SecondTargetRejected:
		return "SecondTargetRejected"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Recoverable reports whether the condition the Diagnostic describes left
// the automaton in a valid, unmutated state. Every Kind defined here is
// recoverable; there are no fatal diagnostics in the core, matching the
// source's "everything is locally recovered" behavior.
func (k Kind) Recoverable() bool { return true }

// Diagnostic is the returned-value replacement for the source's
// stderr-and-continue error handling. A Diagnostic is always non-fatal:
// the operation that produced it left the automaton exactly as it was
// before the call.
type Diagnostic struct {
	Kind    Kind
	Message string
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil diagnostic>"
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

func newDiagnostic(k Kind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: k, Message: fmt.Sprintf(format, args...)}
}

package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders the automaton as a Graphviz digraph (§4.8): rankdir=LR,
// accept states drawn as doublecircle, an invisible emptystartnode with a
// labeled arrow into the start state, and one edge per (source, target)
// pair whose label lists every symbol that transition consumes, joined
// by ", " in Sigma's insertion order. Dead states introduced by
// conversion render like any other state; an empty accept set renders an
// empty doublecircle list rather than omitting the line.
func (a *Automaton) DOT() string {
	var sb strings.Builder

	sb.WriteString("digraph finite_state_automaton {\n")
	sb.WriteString("\trankdir=LR;\n")

	accept := a.accept.Elements()
	sortedAccept := append([]string(nil), accept...)
	sort.Strings(sortedAccept)
	sb.WriteString("\tnode [shape = doublecircle];")
	for _, s := range sortedAccept {
		fmt.Fprintf(&sb, " %s;", quoteDOTID(s))
	}
	sb.WriteString("\n")

	sb.WriteString("\tnode [shape = circle];\n")

	sb.WriteString("\temptystartnode [shape = point];\n")
	if start, ok := a.StartState(); ok {
		fmt.Fprintf(&sb, "\temptystartnode -> %s [label = \"start\"];\n", quoteDOTID(start))
	}

	// group outgoing transitions by (source, target), collecting the
	// symbols that make the jump, in Sigma's insertion order.
	type edgeKey struct{ from, to string }
	grouped := map[edgeKey][]byte{}
	var order []edgeKey

	for _, s := range a.states.Elements() {
		for _, sym := range a.alphabetPlusEpsilon() {
			for _, t := range a.trans[transKey{s, sym}] {
				k := edgeKey{s, t}
				if _, ok := grouped[k]; !ok {
					order = append(order, k)
				}
				grouped[k] = append(grouped[k], sym)
			}
		}
	}

	for _, k := range order {
		syms := grouped[k]
		labels := make([]string, len(syms))
		for i, sym := range syms {
			labels[i] = dotSymbolLabel(sym)
		}
		fmt.Fprintf(&sb, "\t%s -> %s [label = \"%s\"];\n", quoteDOTID(k.from), quoteDOTID(k.to), strings.Join(labels, ", "))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotSymbolLabel(sym byte) string {
	if sym == Epsilon {
		return "ε"
	}
	return string(sym)
}

func quoteDOTID(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

package automaton

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// DescribeTransitions renders delta as an aligned table: one row per
// state, one column per symbol (epsilon included for an ENFA), each
// cell listing that state's successors on that symbol. Grounded on the
// parser package's LR-table rendering, which builds a [][]string grid
// and hands it to rosed's InsertTableOpts.
func (a *Automaton) DescribeTransitions() string {
	syms := a.alphabetPlusEpsilon()

	headers := make([]string, 0, len(syms)+1)
	headers = append(headers, "state")
	for _, sym := range syms {
		headers = append(headers, dotSymbolLabel(sym))
	}

	data := [][]string{headers}

	for _, s := range a.states.Elements() {
		row := make([]string, 0, len(syms)+1)
		marker := s
		if a.hasStart && s == a.start {
			marker = "-> " + marker
		}
		if a.IsAccepting(s) {
			marker = "* " + marker
		}
		row = append(row, marker)

		for _, sym := range syms {
			targets := a.trans[transKey{s, sym}]
			cell := ""
			for i, t := range targets {
				if i > 0 {
					cell += ", "
				}
				cell += t
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// DescribeSummary renders a single line: variant, state count, symbol
// count, and whether a start state has been set, used for compact
// logging contexts where the full transition table would be too wide.
func (a *Automaton) DescribeSummary() string {
	start := "<unset>"
	if a.hasStart {
		start = a.start
	}
	return fmt.Sprintf("%s: %d states, %d symbols, start=%s, %d accepting",
		a.variant, a.states.Len(), a.alphabet.Len(), start, a.accept.Len())
}

// Package loader reads the bespoke pseudo-XML automaton description
// format (§6): <TYPE>, <STATES>, <SYMBOLS>, <TRANSITIONFUNCTION> with
// nested <T> entries, <STARTSTATE>, <ACCEPTSTATES>. Tags may appear in
// any order; the loader tolerates missing or malformed sections by
// emitting a diagnostic and skipping the offending fragment rather than
// aborting, matching AutomataParser's "skip and continue" behavior.
package loader

import (
	"fmt"
	"strings"

	"github.com/rstenholt/finautom/internal/automaton"
)

// Load parses src and builds an *automaton.Automaton of whichever
// variant <TYPE> names. Every problem encountered (an unknown type, a
// malformed <T> entry, a state referenced before being declared, ...) is
// collected into the returned diagnostic slice rather than stopping the
// parse; the automaton returned is always non-nil, though it may be
// empty if <TYPE> was missing or unrecognized.
func Load(src string) (*automaton.Automaton, []*automaton.Diagnostic) {
	var diags []*automaton.Diagnostic
	report := func(d *automaton.Diagnostic) {
		if d != nil {
			diags = append(diags, d)
		}
	}

	typeStr, ok := findTag(src, "TYPE")
	if !ok {
		diags = append(diags, unknownType("no <TYPE> tag found"))
		return automaton.New(automaton.DFA), diags
	}

	variant, verr := automaton.ParseVariant(strings.TrimSpace(typeStr))
	if verr != nil {
		diags = append(diags, verr)
		return automaton.New(automaton.DFA), diags
	}

	a := automaton.New(variant)

	if statesStr, ok := findTag(src, "STATES"); ok {
		for _, s := range splitCSV(statesStr) {
			report(a.AddState(s))
		}
	}

	if symbolsStr, ok := findTag(src, "SYMBOLS"); ok {
		for _, sym := range parseSymbols(symbolsStr) {
			report(a.AddSymbol(sym))
		}
	}

	if startStr, ok := findTag(src, "STARTSTATE"); ok {
		startStr = strings.TrimSpace(startStr)
		if startStr != "" {
			report(a.SetStartState(startStr))
		}
	}

	if acceptStr, ok := findTag(src, "ACCEPTSTATES"); ok {
		for _, s := range splitCSV(acceptStr) {
			report(a.AddAcceptState(s))
		}
	}

	if body, ok := findTag(src, "TRANSITIONFUNCTION"); ok {
		for _, entry := range findAllTags(body, "T") {
			parts := strings.SplitN(entry, ",", 3)
			if len(parts) != 3 {
				diags = append(diags, malformed("transition entry %q does not have exactly 3 comma-separated fields", entry))
				continue
			}
			from := strings.TrimSpace(parts[0])
			symField := strings.TrimSpace(parts[1])
			to := strings.TrimSpace(parts[2])

			sym, serr := symbolFromField(symField)
			if serr != "" {
				diags = append(diags, malformed("%s in transition %q", serr, entry))
				continue
			}
			report(a.AddTransition(from, sym, to))
		}
	}

	return a, diags
}

func unknownType(format string, args ...interface{}) *automaton.Diagnostic {
	return &automaton.Diagnostic{Kind: automaton.UnknownAutomatonType, Message: fmt.Sprintf(format, args...)}
}

func malformed(format string, args ...interface{}) *automaton.Diagnostic {
	return &automaton.Diagnostic{Kind: automaton.MalformedInput, Message: fmt.Sprintf(format, args...)}
}

// symbolFromField decodes a single transition's symbol field: it must be
// exactly one byte, except the literal escape "\0" which maps to the
// reserved epsilon byte (matching the source's use of "\0" in <SYMBOLS>
// to denote epsilon, extended here to transition symbol fields for
// consistency). Returns a non-empty reason string on failure.
func symbolFromField(field string) (byte, string) {
	if field == `\0` {
		return automaton.Epsilon, ""
	}
	if len(field) != 1 {
		return 0, "symbol field must be exactly one character"
	}
	return field[0], ""
}

// parseSymbols decodes a <SYMBOLS> list body: comma-separated, with "\0"
// promoted to the epsilon byte and "\\"/"\<" escaping their literal
// characters.
func parseSymbols(body string) []byte {
	var out []byte
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case ',':
			continue
		case '\\':
			if i+1 < len(runes) {
				i++
				next := runes[i]
				switch next {
				case '\\', '<':
					out = append(out, byte(next))
				case '0':
					out = append(out, automaton.Epsilon)
				default:
					out = append(out, '\\', byte(next))
				}
			}
		default:
			out = append(out, byte(c))
		}
	}
	return out
}

func splitCSV(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// findTag returns the text between the first <NAME> and its matching
// </NAME>, case-sensitively, or false if the opening tag is absent or
// unterminated.
func findTag(src, name string) (string, bool) {
	open := "<" + name + ">"
	close := "</" + name + ">"

	start := strings.Index(src, open)
	if start < 0 {
		return "", false
	}
	start += len(open)

	end := strings.Index(src[start:], close)
	if end < 0 {
		return "", false
	}
	return src[start : start+end], true
}

// findAllTags returns the bodies of every top-level <NAME>...</NAME>
// occurrence in src, in document order.
func findAllTags(src, name string) []string {
	var out []string
	open := "<" + name + ">"
	close := "</" + name + ">"

	pos := 0
	for {
		start := strings.Index(src[pos:], open)
		if start < 0 {
			break
		}
		start += pos + len(open)

		end := strings.Index(src[start:], close)
		if end < 0 {
			break
		}
		out = append(out, src[start:start+end])
		pos = start + end + len(close)
	}
	return out
}

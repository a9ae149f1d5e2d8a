package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNFA(t *testing.T, states []string, alphabet []byte, trans [][3]string, start string, accept []string) *Automaton {
	require := require.New(t)
	a := New(NFA)
	for _, s := range states {
		require.Nil(a.AddState(s))
	}
	for _, sym := range alphabet {
		require.Nil(a.AddSymbol(sym))
	}
	for _, tr := range trans {
		require.Nil(a.AddTransition(tr[0], tr[1][0], tr[2]))
	}
	require.Nil(a.SetStartState(start))
	for _, f := range accept {
		require.Nil(a.AddAcceptState(f))
	}
	return a
}

func Test_ToDFA_NFA_ProducesDeterministicEquivalent(t *testing.T) {
	// classic: NFA over {a,b} accepting strings ending in "ab".
	assert := assert.New(t)
	require := require.New(t)

	nfa := buildNFA(t,
		[]string{"q0", "q1", "q2"},
		[]byte{'a', 'b'},
		[][3]string{
			{"q0", "a", "q0"},
			{"q0", "b", "q0"},
			{"q0", "a", "q1"},
			{"q1", "b", "q2"},
		},
		"q0",
		[]string{"q2"},
	)

	dfa, err := nfa.ToDFA()
	require.Nil(err)
	assert.Equal(DFA, dfa.Variant())

	for _, word := range []string{"ab", "aab", "bbab", "aabbab"} {
		result, derr := dfa.DeltaWord(mustDFAStart(t, dfa), []byte(word))
		require.Nil(derr)
		require.Len(result, 1)
		assert.True(dfa.IsAccepting(result[0]), "expected %q to be accepted", word)
	}
	for _, word := range []string{"", "a", "b", "ba", "abb"} {
		result, derr := dfa.DeltaWord(mustDFAStart(t, dfa), []byte(word))
		require.Nil(derr)
		if len(result) == 1 {
			assert.False(dfa.IsAccepting(result[0]), "expected %q to be rejected", word)
		}
	}
}

func Test_ToDFA_IntroducesExactlyOneDeadState(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	nfa := buildNFA(t,
		[]string{"q0", "q1"},
		[]byte{'a'},
		[][3]string{{"q0", "a", "q1"}},
		"q0",
		[]string{"q1"},
	)

	dfa, err := nfa.ToDFA()
	require.Nil(err)

	// q1 has no outgoing 'a' transition in the source NFA, so it must
	// route to a single shared dead state, and that dead state must
	// self-loop.
	targets, derr := dfa.Delta("q1", 'a')
	require.Nil(derr)
	require.Len(targets, 1)
	dead := targets[0]

	selfLoop, derr := dfa.Delta(dead, 'a')
	require.Nil(derr)
	assert.Equal([]string{dead}, selfLoop)
	assert.False(dfa.IsAccepting(dead))
	assert.Equal([]string{"q0", "q1", dead}, dfa.States())
}

func Test_ToDFA_ENFA_ClosesOverEpsilonFirst(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	enfa := buildENFA(t, [][3]string{
		{"q0", "E", "q1"},
		{"q1", "a", "q2"},
	}, "q0", []string{"q2"})

	dfa, err := enfa.ToDFA()
	require.Nil(err)

	start := mustDFAStart(t, dfa)
	result, derr := dfa.DeltaWord(start, []byte("a"))
	require.Nil(derr)
	require.Len(result, 1)
	assert.True(dfa.IsAccepting(result[0]))
}

func Test_ToDFA_RejectsAlreadyDeterministicInput(t *testing.T) {
	a := New(DFA)
	require.New(t).Nil(a.AddState("q0"))
	require.New(t).Nil(a.SetStartState("q0"))

	_, err := a.ToDFA()
	assert.New(t).NotNil(err)
}

func mustDFAStart(t *testing.T, a *Automaton) string {
	t.Helper()
	start, ok := a.StartState()
	require.New(t).True(ok)
	return start
}

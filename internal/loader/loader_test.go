package loader

import (
	"testing"

	"github.com/rstenholt/finautom/internal/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedDFA = `
<TYPE>dfa</TYPE>
<STATES>q0,q1</STATES>
<SYMBOLS>a,b</SYMBOLS>
<TRANSITIONFUNCTION>
<T>q0,a,q1</T>
<T>q1,b,q0</T>
</TRANSITIONFUNCTION>
<STARTSTATE>q0</STARTSTATE>
<ACCEPTSTATES>q1</ACCEPTSTATES>
`

func Test_Load_WellFormedDFA(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a, diags := Load(wellFormedDFA)
	require.Empty(diags)
	require.Equal(automaton.DFA, a.Variant())

	assert.ElementsMatch([]string{"q0", "q1"}, a.States())
	assert.ElementsMatch([]byte{'a', 'b'}, a.Alphabet())

	start, ok := a.StartState()
	assert.True(ok)
	assert.Equal("q0", start)
	assert.Equal([]string{"q1"}, a.AcceptStates())

	targets, err := a.Delta("q0", 'a')
	require.Nil(err)
	assert.Equal([]string{"q1"}, targets)
}

func Test_Load_UnknownType_ProducesEmptyAutomatonAndDiagnostic(t *testing.T) {
	assert := assert.New(t)

	a, diags := Load("<TYPE>quantum</TYPE>")
	require.New(t).NotEmpty(diags)
	assert.Equal(automaton.UnknownAutomatonType, diags[0].Kind)
	assert.Empty(a.States())
}

func Test_Load_MissingTypeTag(t *testing.T) {
	assert := assert.New(t)

	_, diags := Load("<STATES>q0</STATES>")
	assert.NotEmpty(diags)
	assert.Equal(automaton.UnknownAutomatonType, diags[0].Kind)
}

func Test_Load_MalformedTransitionEntryIsSkippedNotFatal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := `
<TYPE>dfa</TYPE>
<STATES>q0,q1</STATES>
<SYMBOLS>a</SYMBOLS>
<TRANSITIONFUNCTION>
<T>q0,a</T>
<T>q0,a,q1</T>
</TRANSITIONFUNCTION>
<STARTSTATE>q0</STARTSTATE>
<ACCEPTSTATES>q1</ACCEPTSTATES>
`
	a, diags := Load(src)
	require.NotEmpty(diags)

	found := false
	for _, d := range diags {
		if d.Kind == automaton.MalformedInput {
			found = true
		}
	}
	assert.True(found)

	targets, err := a.Delta("q0", 'a')
	require.Nil(err)
	assert.Equal([]string{"q1"}, targets)
}

func Test_Load_EpsilonEscapeInSymbols(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := `
<TYPE>enfa</TYPE>
<STATES>q0,q1</STATES>
<SYMBOLS>a,\0</SYMBOLS>
<TRANSITIONFUNCTION>
<T>q0,\0,q1</T>
</TRANSITIONFUNCTION>
<STARTSTATE>q0</STARTSTATE>
<ACCEPTSTATES>q1</ACCEPTSTATES>
`
	a, diags := Load(src)
	require.Empty(diags)
	assert.True(a.HasSymbol(automaton.Epsilon))

	targets, err := a.Delta("q0", automaton.Epsilon)
	require.Nil(err)
	assert.Equal([]string{"q1"}, targets)
}

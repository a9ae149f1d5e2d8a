package automaton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DOT_EmitsDoublecircleLineEvenWhenAcceptSetEmpty(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(DFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.SetStartState("q0"))

	out := a.DOT()
	assert.Contains(out, "node [shape = doublecircle];\n")
	assert.NotContains(out, "doublecircle];  \n")
}

func Test_DOT_RendersStartArrowAndAcceptStates(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(DFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.AddState("q1"))
	require.Nil(a.AddSymbol('a'))
	require.Nil(a.AddTransition("q0", 'a', "q1"))
	require.Nil(a.SetStartState("q0"))
	require.Nil(a.AddAcceptState("q1"))

	out := a.DOT()
	assert.Contains(out, `emptystartnode -> "q0" [label = "start"];`)
	assert.Contains(out, `node [shape = doublecircle]; "q1";`)
	assert.Contains(out, `"q0" -> "q1" [label = "a"];`)
}

func Test_DOT_GroupsParallelSymbolsOnSameEdge(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(NFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.AddState("q1"))
	require.Nil(a.AddSymbol('a'))
	require.Nil(a.AddSymbol('b'))
	require.Nil(a.AddTransition("q0", 'a', "q1"))
	require.Nil(a.AddTransition("q0", 'b', "q1"))
	require.Nil(a.SetStartState("q0"))

	out := a.DOT()
	assert.Equal(1, strings.Count(out, `"q0" -> "q1"`))
	assert.Contains(out, `[label = "a, b"];`)
}

func Test_DOT_RendersEpsilonLabel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(ENFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.AddState("q1"))
	require.Nil(a.AddSymbol(Epsilon))
	require.Nil(a.AddTransition("q0", Epsilon, "q1"))
	require.Nil(a.SetStartState("q0"))

	out := a.DOT()
	assert.Contains(out, `[label = "ε"];`)
}

package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DescribeTransitions_IncludesStatesAndSymbols(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(DFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.AddState("q1"))
	require.Nil(a.AddSymbol('a'))
	require.Nil(a.AddTransition("q0", 'a', "q1"))
	require.Nil(a.SetStartState("q0"))
	require.Nil(a.AddAcceptState("q1"))

	out := a.DescribeTransitions()
	assert.Contains(out, "q0")
	assert.Contains(out, "q1")
	assert.Contains(out, "a")
}

func Test_DescribeSummary_ReportsCounts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := New(NFA)
	require.Nil(a.AddState("q0"))
	require.Nil(a.AddSymbol('a'))
	require.Nil(a.SetStartState("q0"))

	out := a.DescribeSummary()
	assert.Contains(out, "nfa")
	assert.Contains(out, "1 states")
	assert.Contains(out, "1 symbols")
}

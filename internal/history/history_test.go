package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.db"))
	require.New(t).Nil(err)
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_Record_AssignsIDAndTimestamp(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := openTestStore(t)
	rec, err := s.Record(context.Background(), "nfa", 3)
	require.Nil(err)

	assert.NotEqual("", rec.ID.String())
	assert.Equal("nfa", rec.InputKind)
	assert.Equal(3, rec.StateCount)
	assert.False(rec.SubmittedAt.IsZero())
}

func Test_SetOutputs_ThenGet_RoundTrips(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := openTestStore(t)
	rec, err := s.Record(context.Background(), "dfa", 1)
	require.Nil(err)

	require.Nil(s.SetOutputs(context.Background(), rec.ID, "digraph{}", "(a)*"))

	got, err := s.Get(context.Background(), rec.ID)
	require.Nil(err)
	assert.Equal("digraph{}", got.DOT)
	assert.Equal("(a)*", got.Regex)
}

func Test_Get_UnknownID(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Record(context.Background(), "dfa", 1)
	require.New(t).Nil(err)

	unknown, err := uuid.NewRandom()
	require.New(t).Nil(err)

	_, err = s.Get(context.Background(), unknown)
	assert.New(t).ErrorIs(err, ErrNotFound)
}

func Test_List_OrdersMostRecentFirst(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s := openTestStore(t)
	first, err := s.Record(context.Background(), "dfa", 1)
	require.Nil(err)
	second, err := s.Record(context.Background(), "nfa", 2)
	require.Nil(err)

	all, err := s.List(context.Background())
	require.Nil(err)
	require.Len(all, 2)

	assert.Equal(second.ID.String(), all[0].ID.String())
	assert.Equal(first.ID.String(), all[1].ID.String())
}

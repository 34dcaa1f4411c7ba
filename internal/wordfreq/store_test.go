package wordfreq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosekit-labs/prosecheck/internal/wordfreq"
)

func openStore(t *testing.T) *wordfreq.Store {
	t.Helper()
	s, err := wordfreq.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndCount(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Record("clearly", 2))
	require.NoError(t, s.Record("clearly", 3))
	require.NoError(t, s.Record("maybe", 1))

	n, err := s.Count("clearly")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = s.Count("absent")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordAll(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.RecordAll(map[string]int{"alpha": 3, "beta": 1, "skip": 0}))
	require.NoError(t, s.RecordAll(map[string]int{"beta": 4}))

	top, err := s.Top(10)
	require.NoError(t, err)
	require.Len(t, top, 2, "zero counts are not stored")
	assert.Equal(t, wordfreq.WordCount{Word: "beta", Count: 5}, top[0])
	assert.Equal(t, wordfreq.WordCount{Word: "alpha", Count: 3}, top[1])
}

func TestTop_DeterministicTies(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.RecordAll(map[string]int{"b": 2, "a": 2, "c": 1}))

	top, err := s.Top(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Word)
	assert.Equal(t, "b", top[1].Word)
}

func TestSessionsAreIsolated(t *testing.T) {
	s1 := openStore(t)
	s2 := openStore(t)
	require.NotEqual(t, s1.SessionID(), s2.SessionID())

	require.NoError(t, s1.Record("word", 7))
	n, err := s2.Count("word")
	require.NoError(t, err)
	assert.Zero(t, n)
}

package linearize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/value"
)

type stubModel struct {
	hash string
}

func (s *stubModel) Step(invoke, outcome Op) (Model, error) { return s, nil }
func (s *stubModel) Equal(other Model) bool {
	o, ok := other.(*stubModel)
	return ok && o.hash == s.hash
}
func (s *stubModel) Hash() (string, error) {
	return value.HashWithDomain("test/stub", []byte(s.hash)), nil
}

func TestSeenReportsUnseenThenSeen(t *testing.T) {
	s := NewSeen(1024)
	w := &World{
		model:   &stubModel{hash: "a"},
		pending: pendingSet{{process: "p1"}},
		index:   2,
	}

	first, err := s.SeenBefore(w)
	require.NoError(t, err)
	assert.False(t, first)

	second, err := s.SeenBefore(w)
	require.NoError(t, err)
	assert.True(t, second)
}

func TestSeenNeverCachesEmptyPending(t *testing.T) {
	s := NewSeen(1024)
	w := &World{model: &stubModel{hash: "a"}, index: 2}

	first, err := s.SeenBefore(w)
	require.NoError(t, err)
	assert.False(t, first)

	second, err := s.SeenBefore(w)
	require.NoError(t, err)
	assert.False(t, second, "worlds with no pending operations are never cached")
}

func TestSeenDistinguishesDifferentWorlds(t *testing.T) {
	s := NewSeen(1024)
	a := &World{model: &stubModel{hash: "a"}, pending: pendingSet{{process: "p1"}}, index: 1}
	b := &World{model: &stubModel{hash: "b"}, pending: pendingSet{{process: "p1"}}, index: 1}

	seenA, err := s.SeenBefore(a)
	require.NoError(t, err)
	assert.False(t, seenA)

	seenB, err := s.SeenBefore(b)
	require.NoError(t, err)
	assert.False(t, seenB)
}

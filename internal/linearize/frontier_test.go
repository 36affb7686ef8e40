package linearize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierPrefersFewerPending(t *testing.T) {
	f := NewFrontier()

	wide := &World{pending: pendingSet{{process: "p1"}, {process: "p2"}}, index: 5}
	narrow := &World{pending: pendingSet{{process: "p1"}}, index: 1}

	f.Put(wide)
	f.Put(narrow)

	first, ok := f.Poll(time.Second)
	require.True(t, ok)
	assert.Same(t, narrow, first)
}

func TestFrontierTiesPreferDeeperIndex(t *testing.T) {
	f := NewFrontier()

	shallow := &World{index: 1}
	deep := &World{index: 9}

	f.Put(shallow)
	f.Put(deep)

	first, ok := f.Poll(time.Second)
	require.True(t, ok)
	assert.Same(t, deep, first)
}

func TestFrontierPollTimesOutWhenEmpty(t *testing.T) {
	f := NewFrontier()
	_, ok := f.Poll(10 * time.Millisecond)
	assert.False(t, ok)
}

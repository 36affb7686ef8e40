package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
)

func TestMutexLockUnlockCycle(t *testing.T) {
	m := NewMutex()

	locked, err := m.Step(linearize.Op{Function: "lock", Process: "p1"}, linearize.Op{Type: linearize.Ok})
	require.NoError(t, err)

	_, err = locked.Step(linearize.Op{Function: "lock", Process: "p2"}, linearize.Op{Type: linearize.Ok})
	require.Error(t, err)

	unlocked, err := locked.Step(linearize.Op{Function: "unlock", Process: "p1"}, linearize.Op{Type: linearize.Ok})
	require.NoError(t, err)

	_, err = unlocked.Step(linearize.Op{Function: "unlock", Process: "p1"}, linearize.Op{Type: linearize.Ok})
	assert.Error(t, err)
}

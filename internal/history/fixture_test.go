package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
)

const registerFixture = `
model: register
initial: 0
events:
  - {process: p1, type: invoke, function: write, value: 1}
  - {process: p1, type: ok, function: write, value: 1}
  - {process: p2, type: invoke, function: read, value: null}
  - {process: p2, type: ok, function: read, value: 1}
`

func TestParseFixtureLoadsRegisterScenario(t *testing.T) {
	f, err := ParseFixture([]byte(registerFixture))
	require.NoError(t, err)
	require.NotNil(t, f.Model)
	assert.Len(t, f.History, 4)
	assert.Equal(t, linearize.Invoke, f.History[0].Type)
}

func TestParseFixtureRejectsUnknownModel(t *testing.T) {
	const doc = `
model: nonexistent
events:
  - {process: p1, type: invoke, function: write, value: 1}
`
	_, err := ParseFixture([]byte(doc))
	assert.Error(t, err)
}

func TestParseFixtureRejectsMalformedHistory(t *testing.T) {
	const doc = `
model: register
events:
  - {process: p1, type: ok, function: write, value: 1}
`
	_, err := ParseFixture([]byte(doc))
	assert.Error(t, err)
}

func TestParseFixtureRejectsUnknownFields(t *testing.T) {
	const doc = `
model: register
typo_field: oops
events:
  - {process: p1, type: invoke, function: write, value: 1}
`
	_, err := ParseFixture([]byte(doc))
	assert.Error(t, err)
}

func TestParseFixtureCompletesOutstandingInvoke(t *testing.T) {
	const doc = `
model: register
initial: 0
events:
  - {process: p1, type: invoke, function: write, value: 1}
`
	f, err := ParseFixture([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, f.History, 2)
	assert.Equal(t, linearize.Info, f.History[1].Type)
}

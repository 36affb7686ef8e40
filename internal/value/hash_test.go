package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashValueDeterministic(t *testing.T) {
	obj := Object{
		"process": Int(1),
		"value":   String("x"),
	}

	h1, err := HashValue("test/v1", obj)
	require.NoError(t, err)
	h2, err := HashValue("test/v1", obj)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestHashValueChangesWithPayload(t *testing.T) {
	a := Object{"value": Int(1)}
	b := Object{"value": Int(2)}

	ha, err := HashValue("test/v1", a)
	require.NoError(t, err)
	hb, err := HashValue("test/v1", b)
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestHashValueChangesWithDomain(t *testing.T) {
	obj := Object{"value": Int(1)}

	h1, err := HashValue("domain/a", obj)
	require.NoError(t, err)
	h2, err := HashValue("domain/b", obj)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashValueKeyOrderIndependent(t *testing.T) {
	a := Object{"a": Int(1), "b": Int(2)}
	b := Object{"b": Int(2), "a": Int(1)}

	ha, err := HashValue("test/v1", a)
	require.NoError(t, err)
	hb, err := HashValue("test/v1", b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb, "map iteration order must not affect the hash")
}

func TestHashValueAcceptsNull(t *testing.T) {
	h, err := HashValue("test/v1", Null{})
	require.NoError(t, err)
	assert.Len(t, h, 64)
}

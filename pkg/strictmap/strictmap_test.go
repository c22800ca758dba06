package strictmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "boxoffice/pkg/domain-errors"
)

func TestGetIsStrict(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)

	v, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = m.Get("missing")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("c", 3).Set("a", 1).Set("b", 2)
	m.Set("a", 10) // update keeps original position

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())

	entries := m.ToArray()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry[string, int]{Key: "a", Value: 10}, entries[1])
}

func TestMustGetPanicsOnMissingKey(t *testing.T) {
	m := New[string, int]()
	assert.Panics(t, func() { m.MustGet("nope") })
}

package debuglog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrdersNewestFirst(t *testing.T) {
	s := New(true)
	s.Add("products", map[string]any{"page": 1}, KindServer)
	s.Add("cart", map[string]any{"count": 2}, KindClient)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "cart", entries[0].Source)
	assert.Equal(t, "products", entries[1].Source)
}

func TestEvictionKeepsFifty(t *testing.T) {
	s := New(true)
	for i := 0; i < 51; i++ {
		s.Add("fetch", map[string]any{"seq": i}, KindServer)
	}
	require.Equal(t, 50, s.Len())

	entries := s.Entries()
	assert.Equal(t, map[string]any{"seq": 50}, entries[0].Payload)
	for _, e := range entries {
		assert.NotEqual(t, map[string]any{"seq": 0}, e.Payload, "oldest entry should be evicted")
	}
}

func TestAdjacentDuplicateDropped(t *testing.T) {
	s := New(true)
	for i := 0; i < 51; i++ {
		s.Add("fetch", map[string]any{"seq": i}, KindServer)
	}
	// Identical source+payload to the newest entry must not change the count.
	s.Add("fetch", map[string]any{"seq": 50}, KindServer)
	assert.Equal(t, 50, s.Len())

	// Same payload but different source is a distinct entry.
	s.Add("other", map[string]any{"seq": 50}, KindServer)
	assert.Equal(t, 50, s.Len())
	assert.Equal(t, "other", s.Entries()[0].Source)
}

func TestDuplicateOnlyComparedToNewest(t *testing.T) {
	s := New(true)
	s.Add("fetch", "a", KindServer)
	s.Add("fetch", "b", KindServer)
	s.Add("fetch", "a", KindServer) // not adjacent to the first "a"
	assert.Equal(t, 3, s.Len())
}

func TestClearAndVisibility(t *testing.T) {
	s := New(true)
	s.Add("fetch", "x", KindAuth)
	s.SetVisible(true)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Visible(), "visibility is independent of buffer contents")
}

func TestDisabledSinkIsInert(t *testing.T) {
	s := New(false)
	for i := 0; i < 5; i++ {
		s.Add("fetch", fmt.Sprintf("p%d", i), KindServer)
	}
	s.SetVisible(true)

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Entries())
	assert.False(t, s.Visible())
	assert.False(t, s.Enabled())
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewTTLMap[string](time.Minute)
	m.now = func() time.Time { return now }

	m.Set("a", "one")
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len(), "expired entries are evicted on read")
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := NewTTLMap[int](time.Hour)
	m.Set("a", 1)
	m.Set("b", 2)

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

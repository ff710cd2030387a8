package store

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampGenerator(t *testing.T) {
	ts := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	g := &TimestampGenerator{Now: func() time.Time { return ts }}

	first := g.NewID()
	assert.Equal(t, strconv.FormatInt(ts.UnixMilli(), 10), first)

	// same millisecond, ids keep growing
	second, third := g.NewID(), g.NewID()
	assert.Equal(t, strconv.FormatInt(ts.UnixMilli()+1, 10), second)
	assert.Equal(t, strconv.FormatInt(ts.UnixMilli()+2, 10), third)

	// clock moved back, still unique
	ts = ts.Add(-time.Hour)
	assert.Equal(t, strconv.FormatInt(ts.Add(time.Hour).UnixMilli()+3, 10), g.NewID())
}

func TestTimestampGenerator_DefaultClock(t *testing.T) {
	g := &TimestampGenerator{}
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := UUIDGenerator{}
	id1, id2 := g.NewID(), g.NewID()
	assert.NotEqual(t, id1, id2)
	_, err := uuid.Parse(id1)
	assert.NoError(t, err)
}

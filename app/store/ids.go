package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator makes record identifiers
type IDGenerator interface {
	NewID() string
}

// TimestampGenerator makes ids from unix milliseconds. Two calls in the same
// millisecond get consecutive values, so ids never repeat within a process.
type TimestampGenerator struct {
	Now func() time.Time // defaults to time.Now

	mu   sync.Mutex
	last int64
}

// NewID returns the current millisecond timestamp as a string, bumped past the last issued one
func (g *TimestampGenerator) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDGenerator makes random v4 uuids
type UUIDGenerator struct{}

// NewID returns a new random uuid
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

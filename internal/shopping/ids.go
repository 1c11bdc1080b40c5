package shopping

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out item ids. Implementations must never return "".
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs. This is the default.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// ClockGenerator issues decimal Unix-millisecond readings, the format older
// lists were written with. A reading that does not advance past the previous
// one is bumped by one, so ids stay unique within a process.
type ClockGenerator struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

func (g *ClockGenerator) NewID() string {
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

// SequenceGenerator issues Prefix1, Prefix2, ... Deterministic; meant for tests.
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.Prefix + strconv.Itoa(g.n)
}

// GeneratorFor maps a config scheme name to a generator; unknown names get UUIDs.
func GeneratorFor(scheme string) IDGenerator {
	switch scheme {
	case "clock":
		return &ClockGenerator{}
	default:
		return UUIDGenerator{}
	}
}

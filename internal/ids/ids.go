// Package ids generates collision-resistant document identifiers.
//
// The production scheme is prefix_millis_random: a type prefix, the current
// unix milliseconds, and nine base36 characters. IDs sort roughly by
// creation time and collide only under simultaneous clock and random
// collision, which the store treats as negligible. Nothing enforces
// uniqueness downstream; callers must not rely on more than this
// probabilistic guarantee.
package ids

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Generator produces document identifiers.
// Implemented by PrefixGenerator (production) and
// testutil.SequentialGenerator (tests).
type Generator interface {
	NewID(prefix string) string
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomTailLen is the number of base36 characters after the timestamp.
const randomTailLen = 9

// PrefixGenerator generates prefix_millis_base36 identifiers.
//
// Thread-safety: safe for concurrent use; the random source is guarded by a
// mutex.
type PrefixGenerator struct {
	mu  sync.Mutex
	now func() time.Time
	rnd *rand.Rand
}

// NewPrefixGenerator creates a generator backed by the system clock and a
// time-seeded random source.
func NewPrefixGenerator() *PrefixGenerator {
	return &PrefixGenerator{
		now: time.Now,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
}

// NewID returns prefix + "_" + unix-millis + "_" + nine base36 characters.
func (g *PrefixGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var tail strings.Builder
	tail.Grow(randomTailLen)
	for i := 0; i < randomTailLen; i++ {
		tail.WriteByte(base36[g.rnd.IntN(len(base36))])
	}
	return fmt.Sprintf("%s_%d_%s", prefix, g.now().UnixMilli(), tail.String())
}

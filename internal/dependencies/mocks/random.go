package mocks

import (
	"fmt"

	"github.com/mcoot/brainplay/internal/dependencies/random"
)

// MockRandom replays queued values. Intn falls back to 0 and UUID to a
// numbered placeholder once its queue is drained.
type MockRandom struct {
	ints   []int
	uuids  []string
	minted int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return ((v % n) + n) % n
}

// UUID pops the next queued id
func (r *MockRandom) UUID() string {
	if len(r.uuids) == 0 {
		r.minted++
		return fmt.Sprintf("session-%d", r.minted)
	}
	id := r.uuids[0]
	r.uuids = r.uuids[1:]
	return id
}

// QueueIntn adds values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.ints = append(r.ints, values...)
}

// QueueUUID adds values to the UUID queue
func (r *MockRandom) QueueUUID(ids ...string) {
	r.uuids = append(r.uuids, ids...)
}

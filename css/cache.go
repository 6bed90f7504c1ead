package css

import (
	"sync"
	"sync/atomic"
)

// maxInterned limits number of distinct states kept in the cache. Deeply
// nested brackets produce new resume chains, past this limit states are
// simply allocated.
const maxInterned = 4096

var (
	interned      sync.Map // state -> *state
	internedCount atomic.Int64
)

// intern returns shared instance of the state. Lookups may race with each
// other, LoadOrStore makes sure all callers end up with the same pointer.
func intern(s state) *state {
	if v, ok := interned.Load(s); ok {
		return v.(*state)
	}
	if internedCount.Load() >= maxInterned {
		return &s
	}
	v, loaded := interned.LoadOrStore(s, &s)
	if !loaded {
		internedCount.Add(1)
	}
	return v.(*state)
}

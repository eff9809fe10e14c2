package geocode

import "sync/atomic"

// Budget caps the number of external geocoding calls in one planning run.
// One unit is consumed per network call actually made, not per station:
// every tier of the resolution cascade that goes to the wire costs a unit,
// and a timed-out call still counts (the attempt was made).
//
// The counter is atomic so candidate resolution inside a marker can fan
// out without over-spending.
type Budget struct {
	remaining atomic.Int64
}

func NewBudget(n int) *Budget {
	b := &Budget{}
	b.remaining.Store(int64(n))
	return b
}

// Spend consumes one unit. It reports false, without going negative in
// effect, once the budget is exhausted.
func (b *Budget) Spend() bool {
	return b.remaining.Add(-1) >= 0
}

// Exhausted reports whether no units remain.
func (b *Budget) Exhausted() bool { return b.remaining.Load() <= 0 }

// Remaining returns the units left, floored at zero.
func (b *Budget) Remaining() int {
	n := b.remaining.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

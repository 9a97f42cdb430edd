package metrics

import "sync/atomic"

// Counter is a lock-free monotonic counter.
type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Payment-flow counters, exposed on the admin metrics endpoint.
var (
	CheckoutsInitiated Counter
	OrdersFinalized    Counter
	VerifiesReplayed   Counter
	PaymentsFailed     Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"checkouts_initiated": CheckoutsInitiated.Load(),
		"orders_finalized":    OrdersFinalized.Load(),
		"verifies_replayed":   VerifiesReplayed.Load(),
		"payments_failed":     PaymentsFailed.Load(),
	}
}

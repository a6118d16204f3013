package wait

// Counter is a monitored int64. It extends Value with arithmetic helpers
// and is the usual gate for "wait until N pieces of work happened" style
// conditions.
type Counter struct {
	*Value[int64]
}

// NewCounter creates a counter starting at initial
func NewCounter(initial int64) *Counter {
	return &Counter{Value: NewValue(initial)}
}

// Add adds delta to the counter, wakes waiters and returns the new value
func (c *Counter) Add(delta int64) int64 {
	return c.Update(func(v int64) int64 { return v + delta })
}

// Inc increments the counter by one
func (c *Counter) Inc() int64 {
	return c.Add(1)
}

// Dec decrements the counter by one
func (c *Counter) Dec() int64 {
	return c.Add(-1)
}

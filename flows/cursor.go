package flows

import "sync"

// cursor is the bookkeeping shared by both controllers. All methods expect
// mu to be held.
type cursor struct {
	mu sync.Mutex

	err      string
	loading  bool
	disposed bool
	fired    bool

	// gen changes whenever an in-flight result must be discarded.
	gen uint64
}

func (c *cursor) idle() bool {
	return !c.disposed && !c.loading
}

func (c *cursor) begin() uint64 {
	c.err = ""
	c.loading = true
	return c.gen
}

// current reports whether the result of ticket will be applied.
func (c *cursor) current(ticket uint64) bool {
	return !c.disposed && ticket == c.gen
}

// finish applies the result of the operation started with ticket. It
// reports whether the caller may advance.
func (c *cursor) finish(ticket uint64, failureMessage string) bool {
	if !c.current(ticket) {
		return false
	}
	c.loading = false
	if failureMessage != "" {
		c.err = failureMessage
		return false
	}
	return true
}

func (c *cursor) retreat() {
	c.gen++
	c.loading = false
	c.err = ""
}

func (c *cursor) dispose() {
	c.disposed = true
	c.gen++
	c.loading = false
}

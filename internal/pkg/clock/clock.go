package clock

import "time"

// Clocker abstracts time so token expiry math can be pinned in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{At: t}
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	return f.At
}

// Advance moves the frozen instant forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}

// UnixSeconds floors the clock reading to whole seconds since the epoch,
// which is the resolution of the iat and exp claims.
func UnixSeconds(c Clocker) int64 {
	return c.Now().Unix()
}

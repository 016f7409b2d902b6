package realtime

import "time"

// Interval is a fixed-period task driven by an external clock. It behaves like a
// browser interval timer: the first firing happens one Period after Start, and a
// late caller gets a single firing instead of a burst of missed ones.
type Interval struct {
	Period time.Duration
	Next   time.Time
}

// Start schedules the first firing at now+Period.
func (iv *Interval) Start(now time.Time) {
	iv.Next = now.Add(iv.Period)
}

// Stop clears the schedule. Fire never reports true on a stopped interval.
func (iv *Interval) Stop() {
	iv.Next = time.Time{}
}

// Active reports whether the interval has a pending firing.
func (iv *Interval) Active() bool {
	return !iv.Next.IsZero() && iv.Period > 0
}

// Fire reports whether the interval is due at now and, if so, schedules the next firing.
func (iv *Interval) Fire(now time.Time) bool {
	if !iv.Active() || now.Before(iv.Next) {
		return false
	}
	iv.Next = iv.Next.Add(iv.Period)
	if !iv.Next.After(now) {
		iv.Next = now.Add(iv.Period)
	}
	return true
}

// Earliest returns the soonest pending firing among the given intervals, and false
// when none is active.
func Earliest(intervals ...*Interval) (time.Time, bool) {
	var next time.Time
	for _, iv := range intervals {
		if iv == nil || !iv.Active() {
			continue
		}
		if next.IsZero() || iv.Next.Before(next) {
			next = iv.Next
		}
	}
	return next, !next.IsZero()
}

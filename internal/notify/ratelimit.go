package notify

import (
	"golang.org/x/time/rate"

	"tempo/internal/core"
)

// RateLimited drops notifications that exceed a rate cap instead of
// queueing them. A late countdown notification is worthless; dropping
// keeps the scheduler from ever blocking on a sink.
type RateLimited struct {
	next    core.Notifier
	limiter *rate.Limiter
}

// NewRateLimited caps delivery at perMinute notifications per minute with
// a burst of the same size. perMinute <= 0 means no cap.
func NewRateLimited(next core.Notifier, perMinute int) *RateLimited {
	var limiter *rate.Limiter
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	}
	return &RateLimited{next: next, limiter: limiter}
}

func (r *RateLimited) Notify(n core.Notification) error {
	if r.limiter != nil && !r.limiter.Allow() {
		return nil
	}
	return r.next.Notify(n)
}

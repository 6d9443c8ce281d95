package domain

import "time"

// deliveredBase is the floor of the delivered counter.
const deliveredBase int64 = 1_000_000_000

// DeliveredCount derives the gifts-delivered figure from the wall clock:
// base + (unix millis mod 1e7) * 15. It is not a running total and restarts
// its climb every 10,000 seconds.
func DeliveredCount(now time.Time) int64 {
	return deliveredBase + (now.UnixMilli()%10_000_000)*15
}

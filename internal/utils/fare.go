package utils

import (
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// StayNights returns the stay length in days rounded up. A check-out on or
// before check-in yields zero or a negative count; callers decide what to do with it.
// time.Duration saturates near 292 years, so the span is taken from Unix seconds.
func StayNights(checkIn, checkOut time.Time) int {
	secs := float64(checkOut.Unix()-checkIn.Unix()) +
		float64(checkOut.Nanosecond()-checkIn.Nanosecond())/1e9
	days := secs / secondsPerDay
	n := int(math.Ceil(days))
	if n == 0 {
		return 0 // normalizes -0
	}
	return n
}

// ComputeStayPrice returns nights and nights × nightly.
func ComputeStayPrice(checkIn, checkOut time.Time, nightly float64) (int, float64) {
	nights := StayNights(checkIn, checkOut)
	return nights, float64(nights) * nightly
}

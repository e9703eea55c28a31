package buildstamp

import "time"

// MockTimeNow replaces the time.Now() wrapper and returns a function that
// can be called to restore the original.
func MockTimeNow(mock func() time.Time) (restore func()) {
	original := timeNow
	timeNow = mock
	return func() {
		timeNow = original
	}
}

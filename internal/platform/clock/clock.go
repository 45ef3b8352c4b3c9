package clock

import "time"

// Clock abstracts wall-clock time so services can be driven by scripted
// instants in tests. All timestamps in the log are UTC.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

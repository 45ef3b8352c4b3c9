package timefmt

import (
	"fmt"
	"time"
)

// ZeroElapsed is the live-clock display when no activity is running.
const ZeroElapsed = "00:00.000"

// Elapsed renders a duration as MM:SS.mmm for the live clock. Minutes are
// zero-padded to two digits and grow wider past 99 minutes.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	seconds := int64((d % time.Minute) / time.Second)
	millis := int64((d % time.Second) / time.Millisecond)
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// Stopwatch renders a duration as m:ss.mmm for export rows. Minutes are
// unpadded, seconds zero-padded to two digits, milliseconds to three.
func Stopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	seconds := int64((d % time.Minute) / time.Second)
	millis := int64((d % time.Second) / time.Millisecond)
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}

// WallClock renders an instant as a 12-hour clock with AM/PM, e.g. "2:05:31 PM".
// The layout is locale-independent so exports are identical across machines.
func WallClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// ParseStopwatch parses the m:ss.mmm form produced by Stopwatch.
func ParseStopwatch(s string) (time.Duration, error) {
	var minutes, seconds, millis int64
	if _, err := fmt.Sscanf(s, "%d:%d.%d", &minutes, &seconds, &millis); err != nil {
		return 0, fmt.Errorf("parse stopwatch %q: %w", s, err)
	}
	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

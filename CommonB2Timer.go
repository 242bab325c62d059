package b2contact

import "time"

/// Timer for profiling. Not thread safe.
type B2Timer struct {
	start time.Time
}

func MakeB2Timer() B2Timer {
	return B2Timer{start: time.Now()}
}

/// Reset the timer.
func (timer *B2Timer) Reset() {
	timer.start = time.Now()
}

/// Get the time since construction or the last reset.
func (timer B2Timer) GetMilliseconds() float64 {
	return float64(time.Since(timer.start)) / float64(time.Millisecond)
}

package sim

import "time"

// ScaledSleeper sleeps for a fraction of every requested delay.
// Speed 2 runs twice as fast; Speed 0 or less does not sleep at all.
type ScaledSleeper struct {
	Speed float64
}

func (s ScaledSleeper) Sleep(d time.Duration) {
	if s.Speed <= 0 {
		return
	}
	time.Sleep(time.Duration(float64(d) / s.Speed))
}

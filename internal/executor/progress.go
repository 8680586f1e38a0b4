package executor

import "time"

// speedEMA tracks an exponential moving average of transfer speed over a
// short window, grounded on the simpler elapsed-time average pattern in
// the pack's BackUP reference but smoothed so a brief stall doesn't make
// the reported speed collapse to zero.
type speedEMA struct {
	alpha     float64
	bps       float64
	lastBytes int64
	lastTime  time.Time
	started   bool
}

// newSpeedEMA creates a tracker with alpha 0.3: a sample's weight halves
// after about two further samples (0.7² ≈ 0.49), roughly 0.4 s at the
// executor's default 200ms progress interval (alpha chosen so recent samples
// dominate quickly without being noisy from single-chunk jitter).
func newSpeedEMA() *speedEMA {
	return &speedEMA{alpha: 0.3}
}

// Sample records bytesDone at now and returns the current smoothed speed in
// bytes/sec.
func (s *speedEMA) Sample(bytesDone int64, now time.Time) float64 {
	if !s.started {
		s.started = true
		s.lastBytes = bytesDone
		s.lastTime = now
		return 0
	}

	elapsed := now.Sub(s.lastTime).Seconds()
	if elapsed <= 0 {
		return s.bps
	}
	instant := float64(bytesDone-s.lastBytes) / elapsed
	if instant < 0 {
		instant = 0
	}
	s.bps = s.alpha*instant + (1-s.alpha)*s.bps

	s.lastBytes = bytesDone
	s.lastTime = now
	return s.bps
}

// etaSeconds returns the estimated remaining time given bps and the bytes
// still to transfer, or -1 if bps is not yet meaningful.
func etaSeconds(bytesRemaining int64, bps float64) float64 {
	if bps <= 1 {
		return -1
	}
	return float64(bytesRemaining) / bps
}

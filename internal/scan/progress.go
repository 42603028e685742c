package scan

import (
	"fmt"
	"io"
	"time"
)

const (
	// DefaultBatchSize is how many files must pass between count-triggered updates.
	DefaultBatchSize = 100
	// DefaultInterval is the longest a progress line is allowed to go stale.
	DefaultInterval = 500 * time.Millisecond
)

// Reporter emits a periodic, human-readable progress line while a scan runs.
// It observes a monotonically increasing file count and writes an update when
// the count crosses a multiple of the batch size or when the interval has
// elapsed since the last update, whichever comes first.
//
// A nil Reporter is valid and reports nothing, so progress can be disabled
// without touching the pipeline.
type Reporter struct {
	out      io.Writer
	batch    int
	interval time.Duration
	now      func() time.Time

	start    time.Time
	lastEmit time.Time
	lastSeen int
}

// NewReporter returns a Reporter writing to out. Non-positive batch or
// interval values fall back to the defaults.
func NewReporter(out io.Writer, batch int, interval time.Duration) *Reporter {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	started := time.Now()
	return &Reporter{
		out:      out,
		batch:    batch,
		interval: interval,
		now:      time.Now,
		start:    started,
		lastEmit: started,
	}
}

// Observe records that count files have been seen so far, emitting a status
// line if either trigger fires. It never blocks beyond the write itself and
// has no effect on scan control flow.
func (r *Reporter) Observe(count int) {
	if r == nil || count == r.lastSeen {
		return
	}
	r.lastSeen = count

	now := r.now()
	if count%r.batch != 0 && now.Sub(r.lastEmit) < r.interval {
		return
	}
	r.lastEmit = now

	elapsed := now.Sub(r.start).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(count) / elapsed
	}
	// \r keeps the line in place on a terminal; diagnostics go through the
	// logger on their own lines.
	fmt.Fprintf(r.out, "\rscanned %d files (%.0f files/s)", count, rate)
}

// Done emits the final summary line with the total count and elapsed time.
func (r *Reporter) Done(count int) {
	if r == nil {
		return
	}
	elapsed := r.now().Sub(r.start).Round(time.Millisecond)
	fmt.Fprintf(r.out, "\rscanned %d files in %s\n", count, elapsed)
}

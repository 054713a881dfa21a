package monitoring

import (
	"time"

	"github.com/rs/xid"
	"go.uber.org/atomic"
)

// A ProgressBar counts the finished lookups of a run.
type ProgressBar struct {
	id        string
	name      string
	startTime time.Time
	total     uint64
	finished  atomic.Uint64
}

// ProgressStatus is the state of a ProgressBar as served by the monitor.
type ProgressStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Percent   float64   `json:"percent"`
}

func newProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		id:        xid.New().String(),
		name:      name,
		startTime: time.Now(),
		total:     total,
	}
}

// IncrementFinished marks amount more lookups as finished.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.finished.Add(amount)
}

// Status returns the current state of the bar.
func (b *ProgressBar) Status() ProgressStatus {
	finished := b.finished.Load()

	s := ProgressStatus{
		ID:        b.id,
		Name:      b.name,
		StartTime: b.startTime,
		Total:     b.total,
		Finished:  finished,
	}

	if b.total > 0 {
		s.Percent = float64(finished) / float64(b.total) * 100
	}

	return s
}

package dtr

import (
	"context"
	"fmt"
	"log"

	"ojt/internal/metrics"
	"ojt/internal/queue"
	"ojt/internal/timecalc"
	"ojt/internal/trainee"
)

// Crediter adds submitted DTR hours to the trainee's rendered hours.
type Crediter struct {
	dir     *trainee.Directory
	metrics *metrics.Collectors
}

// NewCrediter credits hours through dir.
func NewCrediter(dir *trainee.Directory, m *metrics.Collectors) *Crediter {
	if m == nil {
		m = metrics.Nop()
	}
	return &Crediter{dir: dir, metrics: m}
}

// Handle processes one message. Messages of other types are ignored.
// Non-positive totals are skipped.
func (c *Crediter) Handle(ctx context.Context, msg queue.Message) error {
	if msg.Type != EventSubmitted {
		return nil
	}
	var evt Submitted
	if err := msg.Decode(&evt); err != nil {
		return err
	}
	if evt.Minutes <= 0 {
		log.Printf("submission %s for %s has %d minutes, not credited", evt.SubmissionID, evt.TraineeID, evt.Minutes)
		return nil
	}
	hours := timecalc.Hours(evt.Minutes)
	_, err := c.dir.Update(ctx, evt.TraineeID, func(t trainee.Trainee) (trainee.Trainee, error) {
		t.HoursRendered += hours
		return t, nil
	})
	if err != nil {
		return fmt.Errorf("credit %s: %w", evt.SubmissionID, err)
	}
	c.metrics.HoursCredited.Add(hours)
	log.Printf("credited %.2fh to %s (submission %s)", hours, evt.TraineeID, evt.SubmissionID)
	return nil
}

// Run handles messages until the channel closes.
func (c *Crediter) Run(ctx context.Context, msgs <-chan queue.Message) {
	for msg := range msgs {
		if err := c.Handle(ctx, msg); err != nil {
			log.Printf("dtr credit failed: %v", err)
		}
	}
}

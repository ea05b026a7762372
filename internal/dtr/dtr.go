// Package dtr computes and submits daily time records and credits submitted
// hours to trainees.
package dtr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ojt/internal/metrics"
	"ojt/internal/queue"
	"ojt/internal/timecalc"
	"ojt/internal/trainee"
	"ojt/internal/validate"
)

// EventSubmitted is the queue message type published on submission.
const EventSubmitted = "dtr.submitted"

const dateLayout = "2006-01-02"

// Record is one day's morning and afternoon in/out times.
type Record struct {
	TraineeID    string    `json:"trainee_id"`
	Date         string    `json:"date"`
	MorningIn    string    `json:"morning_in"`
	MorningOut   string    `json:"morning_out"`
	AfternoonIn  string    `json:"afternoon_in"`
	AfternoonOut string    `json:"afternoon_out"`
	TotalMinutes int       `json:"total_minutes"`
	TotalHours   string    `json:"total_hours"`
	Submitted    bool      `json:"is_submitted"`
	SubmissionID string    `json:"submission_id,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at,omitempty"`
}

// Compute fills TotalMinutes and TotalHours. Each malformed time is reported
// against its own field.
func (r *Record) Compute() error {
	var errs validate.Errors
	for _, f := range []struct{ field, value string }{
		{"morning_in", r.MorningIn},
		{"morning_out", r.MorningOut},
		{"afternoon_in", r.AfternoonIn},
		{"afternoon_out", r.AfternoonOut},
	} {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, err := timecalc.ParseClock(f.value); err != nil {
			errs.Add(f.field, "Time must be HH:MM")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}
	total, err := timecalc.TotalMinutes(
		timecalc.Shift{In: r.MorningIn, Out: r.MorningOut},
		timecalc.Shift{In: r.AfternoonIn, Out: r.AfternoonOut},
	)
	if err != nil {
		return err
	}
	r.TotalMinutes = total
	r.TotalHours = timecalc.Format(total)
	return nil
}

// Submitted is the body of an EventSubmitted message.
type Submitted struct {
	SubmissionID string `json:"submission_id"`
	TraineeID    string `json:"trainee_id"`
	Date         string `json:"date"`
	Minutes      int    `json:"minutes"`
}

// Submitter marks records submitted and publishes them.
type Submitter struct {
	q       queue.Queue
	dir     *trainee.Directory
	metrics *metrics.Collectors
	now     func() time.Time
}

// NewSubmitter publishes submissions on q for trainees known to dir.
func NewSubmitter(q queue.Queue, dir *trainee.Directory, m *metrics.Collectors) *Submitter {
	if m == nil {
		m = metrics.Nop()
	}
	return &Submitter{q: q, dir: dir, metrics: m, now: time.Now}
}

// Submit validates and computes r, marks it submitted and publishes it. The
// record itself is not stored.
func (s *Submitter) Submit(ctx context.Context, r Record) (Record, error) {
	var errs validate.Errors
	if strings.TrimSpace(r.TraineeID) == "" {
		errs.Add("trainee_id", "Trainee is required")
	} else if _, err := s.dir.Get(ctx, r.TraineeID); errors.Is(err, trainee.ErrNotFound) {
		errs.Add("trainee_id", "Trainee not found")
	} else if err != nil {
		return Record{}, err
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs.Add("date", "Date must be YYYY-MM-DD")
	}
	if err := errs.Err(); err != nil {
		return Record{}, err
	}
	if err := r.Compute(); err != nil {
		return Record{}, err
	}
	r.Submitted = true
	r.SubmissionID = uuid.NewString()
	r.SubmittedAt = s.now().UTC()

	msg, err := queue.NewMessage(EventSubmitted, Submitted{
		SubmissionID: r.SubmissionID,
		TraineeID:    r.TraineeID,
		Date:         r.Date,
		Minutes:      r.TotalMinutes,
	})
	if err != nil {
		return Record{}, err
	}
	if err := s.q.Publish(ctx, msg); err != nil {
		return Record{}, fmt.Errorf("publish submission: %w", err)
	}
	s.metrics.DTRSubmitted.Inc()
	return r, nil
}

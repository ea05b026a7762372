package dtr

import (
	"context"
	"errors"
	"testing"
	"time"

	"ojt/internal/queue"
	"ojt/internal/store"
	"ojt/internal/timecalc"
	"ojt/internal/trainee"
	"ojt/internal/validate"
)

func fullDay() Record {
	return Record{
		TraineeID:    "A23-00502",
		Date:         "2026-03-02",
		MorningIn:    "07:00",
		MorningOut:   "12:00",
		AfternoonIn:  "13:00",
		AfternoonOut: "17:00",
	}
}

func TestCompute(t *testing.T) {
	r := fullDay()
	if err := r.Compute(); err != nil {
		t.Fatalf("compute: %v", err)
	}
	if r.TotalMinutes != 540 || r.TotalHours != "9h 0m" {
		t.Fatalf("unexpected totals %d %q", r.TotalMinutes, r.TotalHours)
	}

	empty := Record{}
	if err := empty.Compute(); err != nil {
		t.Fatalf("compute empty: %v", err)
	}
	if empty.TotalHours != timecalc.NotSet {
		t.Fatalf("expected Not set, got %q", empty.TotalHours)
	}
}

func TestComputeFieldErrors(t *testing.T) {
	r := fullDay()
	r.AfternoonOut = "5pm"
	err := r.Compute()
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := errs.Field("afternoon_out"); !ok || len(errs) != 1 {
		t.Fatalf("expected a single afternoon_out error, got %v", errs)
	}
}

func TestSubmitPublishes(t *testing.T) {
	ctx := context.Background()
	q := queue.NewInMemory(1)
	s := NewSubmitter(q, trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil), nil)

	got, err := s.Submit(ctx, fullDay())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !got.Submitted || got.SubmissionID == "" || got.TotalHours != "9h 0m" {
		t.Fatalf("unexpected submitted record %+v", got)
	}

	msgs, _ := q.Consume(ctx)
	select {
	case msg := <-msgs:
		var evt Submitted
		if err := msg.Decode(&evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Type != EventSubmitted || evt.Minutes != 540 || evt.SubmissionID != got.SubmissionID {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatalf("no message published")
	}
}

func TestSubmitValidation(t *testing.T) {
	s := NewSubmitter(queue.NewInMemory(1), trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil), nil)
	r := fullDay()
	r.TraineeID = ""
	r.Date = "03/02/2026"
	_, err := s.Submit(context.Background(), r)
	var errs validate.Errors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("expected trainee and date errors, got %v", err)
	}
}

func TestComputeFieldErrorOrder(t *testing.T) {
	r := Record{MorningIn: "x", MorningOut: "y", AfternoonIn: "z", AfternoonOut: "w"}
	for i := 0; i < 20; i++ {
		err := r.Compute()
		var errs validate.Errors
		if !errors.As(err, &errs) || len(errs) != 4 {
			t.Fatalf("expected four field errors, got %v", err)
		}
		for j, field := range []string{"morning_in", "morning_out", "afternoon_in", "afternoon_out"} {
			if errs[j].Field != field {
				t.Fatalf("expected %s at %d, got %v", field, j, errs)
			}
		}
	}
}

func TestSubmitUnknownTrainee(t *testing.T) {
	q := queue.NewInMemory(1)
	s := NewSubmitter(q, trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil), nil)
	r := fullDay()
	r.TraineeID = "Z99-00000"
	_, err := s.Submit(context.Background(), r)
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if msg, ok := errs.Field("trainee_id"); !ok || msg != "Trainee not found" {
		t.Fatalf("expected trainee_id not found, got %v", errs)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	msgs, _ := q.Consume(ctx)
	if msg, ok := <-msgs; ok {
		t.Fatalf("nothing should be published for an unknown trainee, got %+v", msg)
	}
}

func TestCreditDuringEditIsKept(t *testing.T) {
	ctx := context.Background()
	dir := trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil)
	ed, err := trainee.NewEditor(ctx, dir, "A23-00502", trainee.Options{})
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	if _, err := ed.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := ed.Change(func(tr *trainee.Trainee) { tr.Office = "Library" }); err != nil {
		t.Fatalf("change: %v", err)
	}

	msg, _ := queue.NewMessage(EventSubmitted, Submitted{SubmissionID: "s1", TraineeID: "A23-00502", Minutes: 540})
	if err := NewCrediter(dir, nil).Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	saved, err := ed.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := dir.Get(ctx, "A23-00502")
	if got.HoursRendered != 129 || saved.HoursRendered != 129 {
		t.Fatalf("expected credited 129h to survive the save, got stored %v returned %v", got.HoursRendered, saved.HoursRendered)
	}
	if got.Office != "Library" {
		t.Fatalf("expected edited office, got %q", got.Office)
	}
}

func TestEditedHoursWinOverCredit(t *testing.T) {
	ctx := context.Background()
	dir := trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil)
	ed, _ := trainee.NewEditor(ctx, dir, "A23-00502", trainee.Options{})
	if _, err := ed.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	ed.Change(func(tr *trainee.Trainee) { tr.HoursRendered = 200 })

	msg, _ := queue.NewMessage(EventSubmitted, Submitted{SubmissionID: "s1", TraineeID: "A23-00502", Minutes: 60})
	if err := NewCrediter(dir, nil).Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, err := ed.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := dir.Get(ctx, "A23-00502")
	if got.HoursRendered != 200 {
		t.Fatalf("expected the edited value 200, got %v", got.HoursRendered)
	}
}

func TestCrediter(t *testing.T) {
	ctx := context.Background()
	dir := trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil)
	c := NewCrediter(dir, nil)

	before, _ := dir.Get(ctx, "A23-00502")
	msg, _ := queue.NewMessage(EventSubmitted, Submitted{SubmissionID: "s1", TraineeID: "A23-00502", Minutes: 90})
	if err := c.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	after, _ := dir.Get(ctx, "A23-00502")
	if after.HoursRendered != before.HoursRendered+1.5 {
		t.Fatalf("expected +1.5h, got %v -> %v", before.HoursRendered, after.HoursRendered)
	}

	neg, _ := queue.NewMessage(EventSubmitted, Submitted{SubmissionID: "s2", TraineeID: "A23-00502", Minutes: -60})
	if err := c.Handle(ctx, neg); err != nil {
		t.Fatalf("handle negative: %v", err)
	}
	unchanged, _ := dir.Get(ctx, "A23-00502")
	if unchanged.HoursRendered != after.HoursRendered {
		t.Fatalf("negative total must not be credited")
	}

	unknown, _ := queue.NewMessage(EventSubmitted, Submitted{SubmissionID: "s3", TraineeID: "Z99", Minutes: 60})
	if err := c.Handle(ctx, unknown); !errors.Is(err, trainee.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.Handle(ctx, queue.Message{Type: "other"}); err != nil {
		t.Fatalf("other message types should be ignored: %v", err)
	}
}

func TestSubmitThenCreditEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := queue.NewInMemory(4)
	dir := trainee.NewDirectory(store.NewMemory(), trainee.Seed, nil)
	msgs, _ := q.Consume(ctx)
	done := make(chan struct{})
	go func() {
		NewCrediter(dir, nil).Run(ctx, msgs)
		close(done)
	}()

	if _, err := NewSubmitter(q, dir, nil).Submit(ctx, fullDay()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		tr, _ := dir.Get(ctx, "A23-00502")
		if tr.HoursRendered == 129 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("hours not credited, got %v", tr.HoursRendered)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done
}

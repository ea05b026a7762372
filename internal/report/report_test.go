package report

import (
	"testing"

	"ojt/internal/workflow"
)

func TestReviewTransitions(t *testing.T) {
	var log []workflow.Change[Status]
	b := NewBoard(AdminSeed(), func(c workflow.Change[Status]) { log = append(log, c) })

	steps := []struct {
		action workflow.Action
		want   Status
	}{
		{ActionApprove, Approved},
		{ActionApprove, Approved},
		{ActionDecline, Declined},
		{ActionApprove, Approved},
		{ActionReset, Pending},
	}
	for _, step := range steps {
		got, err := b.Apply("rep-001", step.action)
		if err != nil {
			t.Fatalf("%s: %v", step.action, err)
		}
		if got.Status != step.want {
			t.Fatalf("%s: expected %s, got %s", step.action, step.want, got.Status)
		}
	}
	if len(log) != len(steps) {
		t.Fatalf("expected %d changes, got %d", len(steps), len(log))
	}
	if other, _ := b.Get("rep-002"); other.Status != Approved {
		t.Fatalf("unrelated record changed: %+v", other)
	}
}

func TestDeclineNeedsNoReason(t *testing.T) {
	b := NewBoard(AdminSeed(), nil)
	got, err := b.Apply("rep-002", ActionDecline)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if got.Status != Declined || got.Description == "" {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestFilter(t *testing.T) {
	pending := Filter(AdminSeed(), Pending)
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending reports, got %d", len(pending))
	}
	if all := Filter(AdminSeed(), ""); len(all) != 4 {
		t.Fatalf("expected all reports, got %d", len(all))
	}
}

func TestTable(t *testing.T) {
	tbl := Table(AdminSeed())
	if len(tbl.Rows) != 4 || len(tbl.Header) != 8 {
		t.Fatalf("unexpected table shape %d x %d", len(tbl.Rows), len(tbl.Header))
	}
	if tbl.Rows[2][7] != "payroll-notes.pdf" {
		t.Fatalf("unexpected attachment cell %q", tbl.Rows[2][7])
	}
}

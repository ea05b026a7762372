package workflow

import (
	"errors"
	"testing"
)

type state string

const (
	pending  state = "pending"
	approved state = "approved"
	declined state = "declined"
)

type item struct {
	id     string
	status state
	note   string
}

func (i item) RecordID() string        { return i.id }
func (i item) CurrentStatus() state    { return i.status }
func (i item) WithStatus(s state) item { i.status = s; return i }

func newTestMachine() *Machine[state] {
	return NewMachine("test", FullyConnected(pending, approved, declined), map[Action]state{
		"approve": approved,
		"decline": declined,
		"reset":   pending,
	})
}

func TestEveryPairReachableInOneAction(t *testing.T) {
	m := newTestMachine()
	actions := []Action{"approve", "decline", "reset"}
	for _, from := range []state{pending, approved, declined} {
		for _, to := range []state{pending, approved, declined} {
			found := false
			for _, a := range actions {
				got, err := m.Next(from, a)
				if err == nil && got == to {
					found = true
				}
			}
			if !found {
				t.Fatalf("no single action moves %s to %s", from, to)
			}
		}
	}
}

func TestApplyTouchesOnlyMatchingRecord(t *testing.T) {
	m := newTestMachine()
	in := []item{
		{id: "1", status: pending, note: "a"},
		{id: "2", status: pending, note: "b"},
	}
	out, change, err := Apply(m, in, "2", "approve")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out[1].status != approved || out[1].note != "b" {
		t.Fatalf("unexpected updated record %+v", out[1])
	}
	if out[0] != in[0] {
		t.Fatalf("other record changed: %+v", out[0])
	}
	if in[1].status != pending {
		t.Fatalf("input list was mutated")
	}
	if change.From != pending || change.To != approved || change.ID != "2" {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestApproveTwiceIsLegal(t *testing.T) {
	m := newTestMachine()
	in := []item{{id: "1", status: approved, note: "keep"}}
	out, _, err := Apply(m, in, "1", "approve")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out[0] != in[0] {
		t.Fatalf("expected identical record, got %+v", out[0])
	}
}

func TestApplyErrors(t *testing.T) {
	m := newTestMachine()
	in := []item{{id: "1", status: pending}}
	if _, _, err := Apply(m, in, "9", "approve"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, _, err := Apply(m, in, "1", "archive"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestRestrictedTable(t *testing.T) {
	table := Table[state]{
		pending:  {approved: {}, declined: {}},
		approved: {},
		declined: {},
	}
	m := NewMachine("strict", table, map[Action]state{"approve": approved, "decline": declined})
	if _, err := m.Next(approved, "decline"); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
	if _, err := m.Next(pending, "decline"); err != nil {
		t.Fatalf("expected pending -> declined to be allowed: %v", err)
	}
}

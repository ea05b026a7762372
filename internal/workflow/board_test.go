package workflow

import (
	"errors"
	"testing"
)

func TestBoardApplyAndReload(t *testing.T) {
	var changes []Change[state]
	seed := []item{{id: "1", status: pending}, {id: "2", status: declined}}
	b := NewBoard(newTestMachine(), seed, func(c Change[state]) { changes = append(changes, c) })

	before := b.Records()
	got, err := b.Apply("2", "approve")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.status != approved {
		t.Fatalf("expected approved, got %s", got.status)
	}
	if before[1].status != declined {
		t.Fatalf("earlier snapshot was mutated")
	}
	if len(changes) != 1 || changes[0].From != declined || changes[0].To != approved {
		t.Fatalf("unexpected change log %+v", changes)
	}

	b.Reload()
	if r, _ := b.Get("2"); r.status != declined {
		t.Fatalf("expected seed status after reload, got %s", r.status)
	}
	if seed[1].status != declined {
		t.Fatalf("seed slice was mutated")
	}
}

func TestBoardUpdate(t *testing.T) {
	b := NewBoard(newTestMachine(), []item{{id: "1", status: pending}}, nil)
	got, err := b.Update("1", func(i item) item { i.note = "attached"; return i })
	if err != nil || got.note != "attached" {
		t.Fatalf("update: %+v %v", got, err)
	}
	if _, err := b.Update("1", func(i item) item { i.status = approved; return i }); err == nil {
		t.Fatalf("expected status change through Update to be rejected")
	}
	if _, err := b.Update("9", func(i item) item { return i }); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := b.Apply("9", "approve"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound from Apply, got %v", err)
	}
}

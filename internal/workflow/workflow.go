// Package workflow holds the review state machines shared by report review and
// attendance verification. Transitions are looked up in an explicit table so
// tightening the workflow later only touches the table.
package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when no record in the list has the id.
	ErrRecordNotFound = errors.New("workflow: record not found")
	// ErrTransitionNotAllowed is returned when the table forbids a move.
	ErrTransitionNotAllowed = errors.New("workflow: transition not allowed")
	// ErrUnknownAction is returned for an action the machine does not define.
	ErrUnknownAction = errors.New("workflow: unknown action")
)

// Action names a user-triggered transition (a button).
type Action string

// Table maps a current state to the states it may move to.
type Table[S comparable] map[S]map[S]struct{}

// FullyConnected allows every state to move to every state, itself included.
func FullyConnected[S comparable](states ...S) Table[S] {
	t := make(Table[S], len(states))
	for _, from := range states {
		next := make(map[S]struct{}, len(states))
		for _, to := range states {
			next[to] = struct{}{}
		}
		t[from] = next
	}
	return t
}

// Allows reports whether from may move to to.
func (t Table[S]) Allows(from, to S) bool {
	next, ok := t[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Machine binds actions to target states over a transition table.
type Machine[S comparable] struct {
	name    string
	table   Table[S]
	actions map[Action]S
}

// NewMachine builds a machine. Every action target must be a state of the table.
func NewMachine[S comparable](name string, table Table[S], actions map[Action]S) *Machine[S] {
	for a, to := range actions {
		if _, ok := table[to]; !ok {
			panic(fmt.Sprintf("workflow: %s action %q targets unknown state %v", name, a, to))
		}
	}
	return &Machine[S]{name: name, table: table, actions: actions}
}

// Name identifies the machine in logs and metrics.
func (m *Machine[S]) Name() string { return m.name }

// Valid reports whether s is a known state.
func (m *Machine[S]) Valid(s S) bool {
	_, ok := m.table[s]
	return ok
}

// Target returns the state an action moves to.
func (m *Machine[S]) Target(a Action) (S, bool) {
	to, ok := m.actions[a]
	return to, ok
}

// Next resolves action a from state from.
func (m *Machine[S]) Next(from S, a Action) (S, error) {
	to, ok := m.actions[a]
	if !ok {
		var zero S
		return zero, fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	if !m.table.Allows(from, to) {
		var zero S
		return zero, fmt.Errorf("%w: %v -> %v", ErrTransitionNotAllowed, from, to)
	}
	return to, nil
}

// Record is a list element carrying a status.
type Record[T any, S comparable] interface {
	RecordID() string
	CurrentStatus() S
	WithStatus(S) T
}

// Change describes one applied transition.
type Change[S comparable] struct {
	ID   string
	From S
	To   S
}

// Apply moves the record with the given id and returns a new list. The input
// list and every other record are left untouched.
func Apply[T Record[T, S], S comparable](m *Machine[S], records []T, id string, a Action) ([]T, Change[S], error) {
	idx := -1
	for i, r := range records {
		if r.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return records, Change[S]{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	from := records[idx].CurrentStatus()
	to, err := m.Next(from, a)
	if err != nil {
		return records, Change[S]{}, err
	}
	out := make([]T, len(records))
	copy(out, records)
	out[idx] = records[idx].WithStatus(to)
	return out, Change[S]{ID: id, From: from, To: to}, nil
}

// Package attendance holds the per-view attendance boards and their
// verification workflow.
package attendance

import (
	"ojt/internal/export"
	"ojt/internal/workflow"
)

// Presence is what the record says about the day.
type Presence string

const (
	Present Presence = "present"
	Late    Presence = "late"
	Absent  Presence = "absent"
)

// Verification is the reviewer's decision on a record.
type Verification string

const (
	Pending     Verification = "Pending"
	Approved    Verification = "Approved"
	Disapproved Verification = "Disapproved"
)

// Actions.
const (
	ActionApprove    workflow.Action = "approve"
	ActionDisapprove workflow.Action = "disapprove"
	ActionReset      workflow.Action = "reset"
)

// Machine is the verification workflow. Every state reaches every state.
var Machine = workflow.NewMachine("attendance",
	workflow.FullyConnected(Pending, Approved, Disapproved),
	map[workflow.Action]Verification{
		ActionApprove:    Approved,
		ActionDisapprove: Disapproved,
		ActionReset:      Pending,
	})

// Record is one trainee's attendance for one day.
type Record struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Status       Presence     `json:"status"`
	TimeIn       string       `json:"time_in"`
	TimeOut      string       `json:"time_out"`
	Date         string       `json:"date"`
	Verification Verification `json:"verification"`
}

func (r Record) RecordID() string                 { return r.ID }
func (r Record) CurrentStatus() Verification      { return r.Verification }
func (r Record) WithStatus(v Verification) Record { r.Verification = v; return r }

// Board is one view's attendance list.
type Board = workflow.Board[Record, Verification]

// NewBoard starts a board from seed.
func NewBoard(seed []Record, onChange func(workflow.Change[Verification])) *Board {
	return workflow.NewBoard(Machine, seed, onChange)
}

// Table renders records for export.
func Table(records []Record) export.Table {
	t := export.Table{Header: []string{"Name", "Status", "Time In", "Time Out", "Date", "Verification"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{r.Name, string(r.Status), r.TimeIn, r.TimeOut, r.Date, string(r.Verification)})
	}
	return t
}

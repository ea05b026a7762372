// Package report holds the per-view activity report boards and the
// approve/decline review workflow.
package report

import (
	"ojt/internal/export"
	"ojt/internal/workflow"
)

// Status is a report's review state.
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Declined Status = "declined"
)

// Actions.
const (
	ActionApprove workflow.Action = "approve"
	ActionDecline workflow.Action = "decline"
	ActionReset   workflow.Action = "reset"
)

// Machine is the review workflow. A decision can always be reversed; there is
// no terminal state.
var Machine = workflow.NewMachine("report",
	workflow.FullyConnected(Pending, Approved, Declined),
	map[workflow.Action]Status{
		ActionApprove: Approved,
		ActionDecline: Declined,
		ActionReset:   Pending,
	})

// Record is one submitted activity report.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Course      string `json:"course"`
	Date        string `json:"date"`
	TimeIn      string `json:"time_in"`
	TimeOut     string `json:"time_out"`
	Status      Status `json:"status"`
	Description string `json:"description"`
	Attachment  string `json:"attachment"`
}

func (r Record) RecordID() string           { return r.ID }
func (r Record) CurrentStatus() Status      { return r.Status }
func (r Record) WithStatus(s Status) Record { r.Status = s; return r }

// Board is one view's report list.
type Board = workflow.Board[Record, Status]

// NewBoard starts a board from seed.
func NewBoard(seed []Record, onChange func(workflow.Change[Status])) *Board {
	return workflow.NewBoard(Machine, seed, onChange)
}

// Filter returns the records with the given status. An empty status keeps all.
func Filter(records []Record, status Status) []Record {
	if status == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Table renders records for export.
func Table(records []Record) export.Table {
	t := export.Table{Header: []string{"Name", "Course", "Date", "Time In", "Time Out", "Status", "Description", "Attachment"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{r.Name, r.Course, r.Date, r.TimeIn, r.TimeOut, string(r.Status), r.Description, r.Attachment})
	}
	return t
}

// Package trainee resolves trainee records (stored override first, then the
// seed catalogue) and runs the draft/save/cancel/delete edit lifecycle.
package trainee

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ojt/internal/metrics"
	"ojt/internal/store"
	"ojt/internal/validate"
)

// Trainee statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	// ErrNotFound is returned for an id with neither an override nor a seed entry.
	ErrNotFound = errors.New("trainee: not found")
	// ErrNotEditing is returned when a draft operation runs outside edit mode.
	ErrNotEditing = errors.New("trainee: not editing")
)

// Trainee is the admin detail view of one OJT trainee.
type Trainee struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Course        string  `json:"course"`
	Office        string  `json:"office"`
	Supervisor    string  `json:"supervisor"`
	HoursRequired float64 `json:"hours_required"`
	HoursRendered float64 `json:"hours_rendered"`
	Status        string  `json:"status"`
}

// HoursRemaining is never negative.
func (t Trainee) HoursRemaining() float64 {
	if r := t.HoursRequired - t.HoursRendered; r > 0 {
		return r
	}
	return 0
}

// Validate checks the fields an edit can break.
func (t Trainee) Validate() error {
	var errs validate.Errors
	if t.FullName == "" {
		errs.Add("full_name", "Full name is required")
	}
	if t.Email != "" && !validate.IsValidEmail(t.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if t.Status != StatusActive && t.Status != StatusInactive {
		errs.Add("status", "Status must be active or inactive")
	}
	if t.HoursRequired < 0 {
		errs.Add("hours_required", "Hours required cannot be negative")
	}
	if t.HoursRendered < 0 {
		errs.Add("hours_rendered", "Hours rendered cannot be negative")
	}
	return errs.Err()
}

// Directory looks trainees up by id. Writes through one directory are
// serialised.
type Directory struct {
	mu      sync.Mutex
	repo    *store.Repository[Trainee]
	seed    map[string]Trainee
	order   []string
	metrics *metrics.Collectors
}

// NewDirectory builds a directory over kv with the given seed catalogue.
func NewDirectory(kv store.KV, seed []Trainee, m *metrics.Collectors) *Directory {
	if m == nil {
		m = metrics.Nop()
	}
	d := &Directory{
		repo:    store.NewRepository[Trainee](kv),
		seed:    make(map[string]Trainee, len(seed)),
		metrics: m,
	}
	for _, t := range seed {
		d.seed[t.ID] = t
		d.order = append(d.order, t.ID)
	}
	return d
}

// Get returns the stored override for id, falling back to the seed entry.
func (d *Directory) Get(ctx context.Context, id string) (Trainee, error) {
	t, ok, err := d.repo.Get(ctx, store.TraineeKey(id))
	if err != nil {
		return Trainee{}, fmt.Errorf("load trainee %s: %w", id, err)
	}
	if ok {
		return t, nil
	}
	if t, ok := d.seed[id]; ok {
		return t, nil
	}
	return Trainee{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns the seed catalogue with overrides applied, in seed order.
func (d *Directory) List(ctx context.Context) ([]Trainee, error) {
	out := make([]Trainee, 0, len(d.order))
	for _, id := range d.order {
		t, err := d.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Put writes t as the override for its id.
func (d *Directory) Put(ctx context.Context, t Trainee) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.put(ctx, t)
}

// Update applies fn to the current record for id and stores the result. The
// read and the write happen under the directory's write lock.
func (d *Directory) Update(ctx context.Context, id string, fn func(Trainee) (Trainee, error)) (Trainee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, err := d.Get(ctx, id)
	if err != nil {
		return Trainee{}, err
	}
	next, err := fn(cur)
	if err != nil {
		return Trainee{}, err
	}
	next.ID = id
	if err := d.put(ctx, next); err != nil {
		return Trainee{}, err
	}
	return next, nil
}

func (d *Directory) put(ctx context.Context, t Trainee) error {
	if err := d.repo.Set(ctx, store.TraineeKey(t.ID), t); err != nil {
		return fmt.Errorf("save trainee %s: %w", t.ID, err)
	}
	d.metrics.TraineeWrites.WithLabelValues("save").Inc()
	return nil
}

// Remove deletes the override for id. Other stores are not touched.
func (d *Directory) Remove(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.repo.Remove(ctx, store.TraineeKey(id)); err != nil {
		return fmt.Errorf("delete trainee %s: %w", id, err)
	}
	d.metrics.TraineeWrites.WithLabelValues("delete").Inc()
	return nil
}

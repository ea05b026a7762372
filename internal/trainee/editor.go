package trainee

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Options tune the editor's simulated latency and saved indicator.
type Options struct {
	// Latency delays Save and Delete before they touch the store.
	Latency time.Duration
	// FlashTTL is how long the saved indicator stays on after a save.
	FlashTTL time.Duration
}

// Editor holds one committed record and at most one draft of it.
type Editor struct {
	mu        sync.Mutex
	dir       *Directory
	opts      Options
	now       func() time.Time
	id        string
	committed Trainee
	draft     *Trainee
	savedAt   time.Time
}

// NewEditor loads id and returns an editor in view mode.
func NewEditor(ctx context.Context, dir *Directory, id string, opts Options) (*Editor, error) {
	t, err := dir.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Editor{dir: dir, opts: opts, now: time.Now, id: id, committed: t}, nil
}

// Committed returns the last committed record.
func (e *Editor) Committed() Trainee {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed
}

// Draft returns the draft while editing.
func (e *Editor) Draft() (Trainee, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return Trainee{}, false
	}
	return *e.draft, true
}

// Editing reports whether a draft exists.
func (e *Editor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft != nil
}

// Begin reloads the committed record and snapshots it into a fresh draft.
func (e *Editor) Begin(ctx context.Context) (Trainee, error) {
	t, err := e.dir.Get(ctx, e.id)
	if err != nil {
		return Trainee{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = t
	d := t
	e.draft = &d
	return d, nil
}

// Change applies fn to the draft only.
func (e *Editor) Change(fn func(*Trainee)) (Trainee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return Trainee{}, ErrNotEditing
	}
	d := *e.draft
	fn(&d)
	d.ID = e.id
	e.draft = &d
	return d, nil
}

// Merge decodes a partial JSON object over the draft.
func (e *Editor) Merge(patch []byte) (Trainee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return Trainee{}, ErrNotEditing
	}
	d := *e.draft
	if err := json.Unmarshal(patch, &d); err != nil {
		return Trainee{}, fmt.Errorf("decode draft patch: %w", err)
	}
	d.ID = e.id
	e.draft = &d
	return d, nil
}

// Save waits out the configured latency, then commits the draft to the store
// and leaves edit mode. Rendered hours credited after Begin are kept unless the
// draft changed them. If ctx ends first nothing is written and the draft is
// kept.
func (e *Editor) Save(ctx context.Context) (Trainee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return Trainee{}, ErrNotEditing
	}
	if err := e.draft.Validate(); err != nil {
		return Trainee{}, err
	}
	if err := wait(ctx, e.opts.Latency); err != nil {
		return Trainee{}, err
	}
	base, draft := e.committed, *e.draft
	saved, err := e.dir.Update(ctx, e.id, func(cur Trainee) (Trainee, error) {
		if draft.HoursRendered == base.HoursRendered {
			draft.HoursRendered = cur.HoursRendered
		}
		return draft, nil
	})
	if err != nil {
		return Trainee{}, err
	}
	e.committed = saved
	e.draft = nil
	e.savedAt = e.now()
	return e.committed, nil
}

// Cancel discards the draft and returns the committed record. No store write
// happens.
func (e *Editor) Cancel() Trainee {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = nil
	return e.committed
}

// Delete waits out the configured latency, then removes the stored override.
func (e *Editor) Delete(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := wait(ctx, e.opts.Latency); err != nil {
		return err
	}
	if err := e.dir.Remove(ctx, e.id); err != nil {
		return err
	}
	e.draft = nil
	return nil
}

// ShowSaved reports whether the saved indicator is still on.
func (e *Editor) ShowSaved() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.savedAt.IsZero() {
		return false
	}
	return e.now().Before(e.savedAt.Add(e.opts.FlashTTL))
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sessions keeps one editor per (owner, trainee id).
type Sessions struct {
	mu      sync.Mutex
	dir     *Directory
	opts    Options
	editors map[string]*Editor
}

// NewSessions creates an empty registry.
func NewSessions(dir *Directory, opts Options) *Sessions {
	return &Sessions{dir: dir, opts: opts, editors: make(map[string]*Editor)}
}

func sessionKey(owner, id string) string { return owner + "\x00" + id }

// Editor returns the owner's editor for id, opening one if needed.
func (s *Sessions) Editor(ctx context.Context, owner, id string) (*Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.editors[sessionKey(owner, id)]; ok {
		return e, nil
	}
	e, err := NewEditor(ctx, s.dir, id, s.opts)
	if err != nil {
		return nil, err
	}
	s.editors[sessionKey(owner, id)] = e
	return e, nil
}

// Lookup returns the owner's editor for id without opening one.
func (s *Sessions) Lookup(owner, id string) (*Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.editors[sessionKey(owner, id)]
	return e, ok
}

// Drop forgets the owner's editor for id.
func (s *Sessions) Drop(owner, id string) {
	s.mu.Lock()
	delete(s.editors, sessionKey(owner, id))
	s.mu.Unlock()
}

// Package profile stores the supervisor's own profile under supervisorProfile.
package profile

import (
	"context"
	"strings"

	"ojt/internal/store"
	"ojt/internal/validate"
)

// Supervisor is the editable supervisor profile.
type Supervisor struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Office     string `json:"office"`
}

// Default is returned while nothing is stored.
var Default = Supervisor{
	Name:       "Maria Santos",
	Email:      "maria.santos@school.edu.ph",
	Phone:      "09170000001",
	Position:   "OJT Supervisor",
	Department: "College of Informatics",
	Office:     "IT Services Office",
}

// Store reads and writes the supervisor profile.
type Store struct {
	repo *store.Repository[Supervisor]
}

// NewStore wraps kv.
func NewStore(kv store.KV) *Store {
	return &Store{repo: store.NewRepository[Supervisor](kv)}
}

// Get returns the stored profile or Default.
func (s *Store) Get(ctx context.Context) (Supervisor, error) {
	p, ok, err := s.repo.Get(ctx, store.KeySupervisorProfile)
	if err != nil {
		return Supervisor{}, err
	}
	if !ok {
		return Default, nil
	}
	return p, nil
}

// Save validates and stores p.
func (s *Store) Save(ctx context.Context, p Supervisor) (Supervisor, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	var errs validate.Errors
	if p.Name == "" {
		errs.Add("name", "Name is required")
	}
	if !validate.IsValidEmail(p.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if err := errs.Err(); err != nil {
		return Supervisor{}, err
	}
	if err := s.repo.Set(ctx, store.KeySupervisorProfile, p); err != nil {
		return Supervisor{}, err
	}
	return p, nil
}

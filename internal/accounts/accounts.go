// Package accounts keeps the user roster under the "users" key and handles
// registration, sign-in and password reset.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ojt/internal/store"
	"ojt/internal/validate"
)

// Roles a user can hold.
const (
	RoleStudent    = "student"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// ErrInvalidCredentials is returned when a username/password pair does not match.
var ErrInvalidCredentials = errors.New("accounts: invalid credentials")

// Account is a stored user.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Program      string    `json:"program,omitempty"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is an account without its password.
type Profile struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Program    string `json:"program,omitempty"`
	Department string `json:"department,omitempty"`
}

// Profile strips the password hash.
func (a Account) Profile() Profile {
	return Profile{
		Username:   a.Username,
		Role:       a.Role,
		Name:       a.Name,
		Email:      a.Email,
		Program:    a.Program,
		Department: a.Department,
	}
}

// CurrentUser is the value written to the currentUser key on sign-in.
type CurrentUser struct {
	Profile
	SignedInAt time.Time `json:"signed_in_at"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,ojt_username"`
	Password        string `json:"password" validate:"required,ojt_password"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=student supervisor admin"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,ojt_email"`
	Program         string `json:"program"`
	Department      string `json:"department"`
}

// ResetInput is the forgot-password form.
type ResetInput struct {
	Username        string `json:"username" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,ojt_password"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

// Service manages the roster. The whole roster is one stored value, so writes
// are serialised.
type Service struct {
	mu      sync.Mutex
	users   *store.Repository[[]Account]
	current *store.Repository[CurrentUser]
	cost    int
	now     func() time.Time
}

// NewService creates a service over kv.
func NewService(kv store.KV) *Service {
	return &Service{
		users:   store.NewRepository[[]Account](kv),
		current: store.NewRepository[CurrentUser](kv),
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

var formValidator = validate.New()

func (s *Service) load(ctx context.Context) ([]Account, error) {
	users, _, err := s.users.Get(ctx, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func find(users []Account, username string) int {
	for i, u := range users {
		if strings.EqualFold(u.Username, username) {
			return i
		}
	}
	return -1
}

// Lookup returns the account for username.
func (s *Service) Lookup(ctx context.Context, username string) (Account, bool, error) {
	users, err := s.load(ctx)
	if err != nil {
		return Account{}, false, err
	}
	if i := find(users, username); i >= 0 {
		return users[i], true, nil
	}
	return Account{}, false, nil
}

// List returns every account profile, optionally filtered by role.
func (s *Service) List(ctx context.Context, role string) ([]Profile, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		if role == "" || u.Role == role {
			out = append(out, u.Profile())
		}
	}
	return out, nil
}

// Register validates the form and appends a new account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if errs := validate.FromValidator(formValidator.Struct(in)); len(errs) > 0 {
		return Account{}, errs
	}
	if in.Role == "" {
		in.Role = RoleStudent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load(ctx)
	if err != nil {
		return Account{}, err
	}
	if find(users, in.Username) >= 0 {
		return Account{}, validate.Errors{{Field: "username", Message: "Username already exists"}}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	acct := Account{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Name:         in.Name,
		Email:        in.Email,
		Program:      in.Program,
		Department:   in.Department,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Set(ctx, store.KeyUsers, append(users, acct)); err != nil {
		return Account{}, fmt.Errorf("save users: %w", err)
	}
	return acct, nil
}

// Login checks credentials and records the currentUser marker.
func (s *Service) Login(ctx context.Context, username, password string) (Account, error) {
	var errs validate.Errors
	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	if len(errs) > 0 {
		return Account{}, errs
	}
	acct, ok, err := s.Lookup(ctx, strings.TrimSpace(username))
	if err != nil {
		return Account{}, err
	}
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	cur := CurrentUser{Profile: acct.Profile(), SignedInAt: s.now().UTC()}
	if err := s.current.Set(ctx, store.KeyCurrentUser, cur); err != nil {
		return Account{}, fmt.Errorf("save current user: %w", err)
	}
	return acct, nil
}

// Logout clears the currentUser marker.
func (s *Service) Logout(ctx context.Context) error {
	return s.current.Remove(ctx, store.KeyCurrentUser)
}

// Current returns the last signed-in user, if any.
func (s *Service) Current(ctx context.Context) (CurrentUser, bool, error) {
	return s.current.Get(ctx, store.KeyCurrentUser)
}

// ResetPassword replaces the password of an existing username.
func (s *Service) ResetPassword(ctx context.Context, in ResetInput) error {
	in.Username = strings.TrimSpace(in.Username)
	if errs := validate.FromValidator(formValidator.Struct(in)); len(errs) > 0 {
		return errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := find(users, in.Username)
	if i < 0 {
		return validate.Errors{{Field: "username", Message: "Username not found"}}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	users[i].PasswordHash = string(hash)
	if err := s.users.Set(ctx, store.KeyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// EnsureAdmin creates an admin account when the roster has none with that name.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if _, ok, err := s.Lookup(ctx, username); err != nil || ok {
		return false, err
	}
	_, err := s.Register(ctx, RegisterInput{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
		Role:            RoleAdmin,
		Name:            "Administrator",
		Email:           username + "@ojt.local",
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

package accounts

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"ojt/internal/store"
	"ojt/internal/validate"
)

func newTestService() (*Service, store.KV) {
	kv := store.NewMemory()
	s := NewService(kv)
	s.cost = bcrypt.MinCost
	return s, kv
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:        "juan_d",
		Password:        "abc123!",
		ConfirmPassword: "abc123!",
		Name:            "Juan Dela Cruz",
		Email:           "juan@school.edu.ph",
		Program:         "BSIT",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()

	acct, err := s.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.Role != RoleStudent {
		t.Fatalf("expected default student role, got %q", acct.Role)
	}
	if acct.PasswordHash == "abc123!" {
		t.Fatalf("password stored in plaintext")
	}

	got, err := s.Login(ctx, "juan_d", "abc123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Username != "juan_d" {
		t.Fatalf("unexpected account %+v", got)
	}
	cur, ok, err := s.Current(ctx)
	if err != nil || !ok || cur.Username != "juan_d" {
		t.Fatalf("expected currentUser marker, got %+v ok=%v err=%v", cur, ok, err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := s.Current(ctx); ok {
		t.Fatalf("expected currentUser removed on logout")
	}
}

func TestLoginMismatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()
	if _, err := s.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.Login(ctx, "juan_d", "wrong1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "abc123!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	var errs validate.Errors
	if _, err := s.Login(ctx, "", ""); !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("expected two field errors, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestService()

	in := validInput()
	in.Username = "ju"
	in.Password = "abcdef"
	in.ConfirmPassword = "abcdeg"
	in.Email = "juan"
	_, err := s.Register(ctx, in)
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"username", "password", "confirm_password", "email"} {
		if _, ok := errs.Field(field); !ok {
			t.Fatalf("expected %s error in %v", field, errs)
		}
	}
	if _, err := kv.Get(ctx, store.KeyUsers); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("rejected registration must not write the roster")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()
	if _, err := s.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := s.Register(ctx, validInput())
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg, _ := errs.Field("username"); msg != "Username already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()
	if _, err := s.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := s.ResetPassword(ctx, ResetInput{Username: "ghost", NewPassword: "new123!", ConfirmPassword: "new123!"})
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation error for unknown user, got %v", err)
	}
	if msg, _ := errs.Field("username"); msg != "Username not found" {
		t.Fatalf("unexpected message %q", msg)
	}

	if err := s.ResetPassword(ctx, ResetInput{Username: "juan_d", NewPassword: "new123!", ConfirmPassword: "new123!"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := s.Login(ctx, "juan_d", "abc123!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work")
	}
	if _, err := s.Login(ctx, "juan_d", "new123!"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestEnsureAdminAndList(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()
	created, err := s.EnsureAdmin(ctx, "admin", "admin123!")
	if err != nil || !created {
		t.Fatalf("ensure admin: created=%v err=%v", created, err)
	}
	created, err = s.EnsureAdmin(ctx, "admin", "admin123!")
	if err != nil || created {
		t.Fatalf("second ensure should be a no-op: created=%v err=%v", created, err)
	}
	if _, err := s.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	admins, err := s.List(ctx, RoleAdmin)
	if err != nil || len(admins) != 1 || admins[0].Username != "admin" {
		t.Fatalf("unexpected admin list %+v err=%v", admins, err)
	}
	all, _ := s.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(all))
	}
}

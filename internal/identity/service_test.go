package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func seededService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	repo.Seed(User{
		ID:       1,
		Phone:    "553196812719",
		Password: "abc123",
		Email:    "maria@example.com",
		Name:     "Maria",
	})
	return NewService(repo), repo
}

func TestAuthenticate(t *testing.T) {
	svc, _ := seededService()
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "553196812719", "abc123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user 1, got %d", user.ID)
	}
}

func TestAuthenticateInvalidFormat(t *testing.T) {
	svc, _ := seededService()
	ctx := context.Background()

	cases := []string{
		"",
		"31968127190",      // missing country code
		"5531968127190",    // eleven digits after 55 (mobile 9 not stripped)
		"55319681271",      // nine digits
		"55319681271a",     // non-digit
		"+553196812719",    // plus prefix
		"56 3196812719",    // wrong country code
	}
	for _, phone := range cases {
		if _, err := svc.Authenticate(ctx, phone, "abc123"); !errors.Is(err, ErrInvalidPhoneFormat) {
			t.Fatalf("phone %q: expected ErrInvalidPhoneFormat, got %v", phone, err)
		}
	}
}

func TestAuthenticateUnknownPhone(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.Authenticate(context.Background(), "551199999999", "abc123")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.Authenticate(context.Background(), "553196812719", "wrong")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestAuthenticateBcryptStoredCredential(t *testing.T) {
	repo := NewMemoryRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.Seed(User{ID: 2, Phone: "553188887777", Password: string(hash)})
	svc := NewService(repo)

	if _, err := svc.Authenticate(context.Background(), "553188887777", "abc123"); err != nil {
		t.Fatalf("authenticate against hashed credential: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "553188887777", "nope"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestUpdateProfileEmail(t *testing.T) {
	svc, repo := seededService()
	ctx := context.Background()

	if err := svc.UpdateProfile(ctx, 1, UpdateInput{Email: "novo@example.com"}); err != nil {
		t.Fatalf("update email: %v", err)
	}
	user, _ := repo.FindByID(ctx, 1)
	if user.Email != "novo@example.com" {
		t.Fatalf("email not persisted, got %q", user.Email)
	}
}

func TestUpdateProfilePasswordRequiresCurrent(t *testing.T) {
	svc, repo := seededService()
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, 1, UpdateInput{NewPassword: "nova", CurrentPassword: "wrong"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.UpdateProfile(ctx, 1, UpdateInput{NewPassword: "nova", CurrentPassword: "abc123"}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	user, _ := repo.FindByID(ctx, 1)
	if user.Password != "nova" {
		t.Fatalf("password not persisted")
	}
}

func TestUpdateProfileNothingToUpdate(t *testing.T) {
	svc, _ := seededService()
	ctx := context.Background()

	if err := svc.UpdateProfile(ctx, 1, UpdateInput{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
	// A name on its own does not count as an updatable change.
	if err := svc.UpdateProfile(ctx, 1, UpdateInput{Name: "Outro Nome"}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate for name-only update, got %v", err)
	}
}

func TestUpdateProfileNameRidesAlong(t *testing.T) {
	svc, repo := seededService()
	ctx := context.Background()

	if err := svc.UpdateProfile(ctx, 1, UpdateInput{Email: "m@example.com", Name: "Maria Silva"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	user, _ := repo.FindByID(ctx, 1)
	if user.Name != "Maria Silva" {
		t.Fatalf("name not persisted, got %q", user.Name)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := seededService()

	err := svc.UpdateProfile(context.Background(), 99, UpdateInput{Email: "x@example.com"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

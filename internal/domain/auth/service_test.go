package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegisterAndLogin(t *testing.T) {
	service := NewService(NewMemoryStore(), "test-secret")
	ctx := context.Background()

	user, err := service.Register(ctx, "Admin", "admin@coop.rw", "s3cret", RoleAdmin)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}

	loggedIn, token, err := service.Login(ctx, "admin@coop.rw", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("unexpected user: %+v", loggedIn)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "admin@coop.rw" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewService(NewMemoryStore(), "test-secret")
	ctx := context.Background()

	if _, err := service.Register(ctx, "Staff", "staff@coop.rw", "pw", RoleStaff); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := service.Login(ctx, "staff@coop.rw", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@coop.rw", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewService(NewMemoryStore(), "test-secret")
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "same@coop.rw", "pw", RoleStaff); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(ctx, "B", "same@coop.rw", "pw", RoleStaff); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterDemotesUnknownRoles(t *testing.T) {
	service := NewService(NewMemoryStore(), "test-secret")
	user, err := service.Register(context.Background(), "X", "x@coop.rw", "pw", "superuser")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != RoleStaff {
		t.Fatalf("expected staff fallback, got %q", user.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
}

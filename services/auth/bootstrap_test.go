package auth

import (
	"context"
	"errors"
	"testing"

	"safarexpress/models"
)

func TestEnsureAdminPromotesExistingUser(t *testing.T) {
	svc, users, _ := newTestAuth()
	register(t, svc, "asha@example.test")

	user, err := svc.EnsureAdmin(context.Background(), "  ASHA@example.test ", "", "")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q", user.Role)
	}
	if len(users.users) != 1 {
		t.Errorf("promotion created a user: %d users", len(users.users))
	}

	session, err := svc.Login(context.Background(), models.LoginInput{Email: "asha@example.test", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.Role != models.RoleAdmin {
		t.Errorf("session role = %q", session.User.Role)
	}
	claims, err := svc.Signer.VerifyAccessToken(session.AccessToken)
	if err != nil || claims.Role != models.RoleAdmin {
		t.Errorf("access token role = %v (%v)", claims, err)
	}
}

func TestEnsureAdminCreatesWithPassword(t *testing.T) {
	svc, _, _ := newTestAuth()

	user, err := svc.EnsureAdmin(context.Background(), "ops@example.test", "admin-pass-123", "Platform Admin")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if user.Role != models.RoleAdmin || user.Name != "Platform Admin" {
		t.Errorf("unexpected user %+v", user)
	}
	if _, err := svc.Login(context.Background(), models.LoginInput{Email: "ops@example.test", Password: "admin-pass-123"}); err != nil {
		t.Errorf("created admin cannot log in: %v", err)
	}

	// A second run finds the account and leaves it as is.
	again, err := svc.EnsureAdmin(context.Background(), "ops@example.test", "admin-pass-123", "Platform Admin")
	if err != nil || again.ID != user.ID {
		t.Errorf("second run: %+v, %v", again, err)
	}
}

func TestEnsureAdminErrors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "  ", "admin-pass-123", ErrAdminEmailMissing},
		{"unknown user without password", "nobody@example.test", "", ErrAdminNotFound},
		{"short password", "nobody@example.test", "short", ErrAdminPasswordWeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestAuth()
			_, err := svc.EnsureAdmin(context.Background(), tt.email, tt.password, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if len(users.users) != 0 {
				t.Errorf("user created on error")
			}
		})
	}
}

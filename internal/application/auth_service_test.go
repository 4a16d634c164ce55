package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

func fixedTokens(tokens ...string) func() string {
	return func() string {
		if len(tokens) == 0 {
			return "fallback"
		}
		token := tokens[0]
		tokens = tokens[1:]
		return token
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		svc := NewAuthService(seededStore(), state, nil, fixedTokens("token-1"), nil)

		session, err := svc.Login(context.Background(), "patient@medical.com", "patient123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if session.User.ID != 3 || session.User.Role != records.RolePatient {
			t.Fatalf("unexpected user %#v", session.User)
		}
		if session.User.Password != "" {
			t.Fatal("expected the credential to be blanked")
		}
		if session.Token != "token-1" {
			t.Fatalf("expected issued token, got %q", session.Token)
		}
	})

	t.Run("persists the session under the user and token keys", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		svc := NewAuthService(seededStore(), state, nil, fixedTokens("token-1"), nil)
		ctx := context.Background()

		if _, err := svc.Login(ctx, "doctor@medical.com", "doctor123"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		var persisted records.User
		ok, err := storage.GetJSON(ctx, state, storage.KeyUser, &persisted)
		if err != nil || !ok {
			t.Fatalf("expected persisted user: ok=%v err=%v", ok, err)
		}
		if persisted.ID != 2 || persisted.Password != "" {
			t.Fatalf("unexpected persisted user %#v", persisted)
		}
		var token string
		ok, err = storage.GetJSON(ctx, state, storage.KeyToken, &token)
		if err != nil || !ok || token != "token-1" {
			t.Fatalf("expected persisted token: ok=%v err=%v token=%q", ok, err, token)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededStore(), storage.NewMemoryStore(), nil, nil, nil)
		_, err := svc.Login(context.Background(), "patient@medical.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededStore(), storage.NewMemoryStore(), nil, nil, nil)
		_, err := svc.Login(context.Background(), "nobody@medical.com", "patient123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededStore(), storage.NewMemoryStore(), nil, nil, nil)
		if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("first matching account wins when emails collide", func(t *testing.T) {
		t.Parallel()

		store := seededStore()
		store.AddUser(records.User{Email: "patient@medical.com", Password: "patient123", Role: records.RoleAdmin, Name: "Impostor"})
		svc := NewAuthService(store, storage.NewMemoryStore(), nil, nil, nil)

		session, err := svc.Login(context.Background(), "patient@medical.com", "patient123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if session.User.ID != 3 {
			t.Fatalf("expected the earlier account to win, got %#v", session.User)
		}
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	validInput := func() RegisterInput {
		return RegisterInput{
			Email:    "new.patient@medical.com",
			Password: "secret123",
			Name:     "Anna Maria Lopez",
			Role:     records.RolePatient,
			Age:      41,
		}
	}

	t.Run("appends a user with a derived avatar and signs them in", func(t *testing.T) {
		t.Parallel()

		store := seededStore()
		svc := NewAuthService(store, storage.NewMemoryStore(), nil, fixedTokens("token-9"), nil)

		session, err := svc.Register(context.Background(), validInput())
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if session.User.ID != 5 {
			t.Fatalf("expected id 5, got %d", session.User.ID)
		}
		if session.User.Avatar != "AML" {
			t.Fatalf("expected initials avatar AML, got %q", session.User.Avatar)
		}
		if session.Token != "token-9" {
			t.Fatalf("expected issued token, got %q", session.Token)
		}
		if len(store.Users()) != 5 {
			t.Fatalf("expected 5 users in the store, got %d", len(store.Users()))
		}
	})

	t.Run("persists the account under registeredUsers with its credential", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		svc := NewAuthService(seededStore(), state, nil, nil, nil)
		ctx := context.Background()

		if _, err := svc.Register(ctx, validInput()); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		var persisted []records.User
		ok, err := storage.GetJSON(ctx, state, storage.KeyRegisteredUsers, &persisted)
		if err != nil || !ok {
			t.Fatalf("expected persisted registeredUsers: ok=%v err=%v", ok, err)
		}
		if len(persisted) != 1 || persisted[0].Email != "new.patient@medical.com" {
			t.Fatalf("unexpected persisted accounts %#v", persisted)
		}
		if persisted[0].Password != "secret123" {
			t.Fatal("expected the stored account to keep its credential for later logins")
		}
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededStore(), storage.NewMemoryStore(), nil, nil, nil)
		input := validInput()
		input.Email = "admin@medical.com"

		_, err := svc.Register(context.Background(), input)
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("validates registration input", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(seededStore(), storage.NewMemoryStore(), nil, nil, nil)
		input := validInput()
		input.Email = "not-an-email"
		input.Password = "shrt"
		input.Role = records.Role("nurse")

		_, err := svc.Register(context.Background(), input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"email", "password", "role"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s error, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestAuthService_SessionState(t *testing.T) {
	t.Parallel()

	t.Run("current session round trips through storage", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		svc := NewAuthService(seededStore(), state, nil, fixedTokens("token-3"), nil)
		ctx := context.Background()

		issued, err := svc.Login(ctx, "admin@medical.com", "admin123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		current, ok, err := svc.CurrentSession(ctx)
		if err != nil || !ok {
			t.Fatalf("CurrentSession failed: ok=%v err=%v", ok, err)
		}
		if current.Token != issued.Token || current.User.ID != issued.User.ID {
			t.Fatalf("session mismatch: %#v != %#v", current, issued)
		}
	})

	t.Run("logout clears the persisted state", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		svc := NewAuthService(seededStore(), state, nil, nil, nil)
		ctx := context.Background()

		if _, err := svc.Login(ctx, "admin@medical.com", "admin123"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if err := svc.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if _, ok, err := svc.CurrentSession(ctx); err != nil || ok {
			t.Fatalf("expected no session after logout: ok=%v err=%v", ok, err)
		}
	})
}

func TestAuthService_LoadRegisteredUsers(t *testing.T) {
	t.Parallel()

	t.Run("restores persisted accounts into the store", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		ctx := context.Background()
		persisted := []records.User{
			{ID: 5, Email: "returning@medical.com", Password: "secret123", Role: records.RolePatient, Name: "Returning User", Avatar: "RU"},
		}
		if err := storage.SetJSON(ctx, state, storage.KeyRegisteredUsers, persisted); err != nil {
			t.Fatalf("SetJSON failed: %v", err)
		}

		store := seededStore()
		svc := NewAuthService(store, state, nil, nil, nil)
		if err := svc.LoadRegisteredUsers(ctx); err != nil {
			t.Fatalf("LoadRegisteredUsers failed: %v", err)
		}
		if len(store.Users()) != 5 {
			t.Fatalf("expected 5 users after restore, got %d", len(store.Users()))
		}

		if _, err := svc.Login(ctx, "returning@medical.com", "secret123"); err != nil {
			t.Fatalf("expected restored account to log in: %v", err)
		}
	})

	t.Run("skips accounts whose email is already present", func(t *testing.T) {
		t.Parallel()

		state := storage.NewMemoryStore()
		ctx := context.Background()
		persisted := []records.User{
			{ID: 9, Email: "admin@medical.com", Password: "stale", Role: records.RoleAdmin, Name: "Stale Copy"},
		}
		if err := storage.SetJSON(ctx, state, storage.KeyRegisteredUsers, persisted); err != nil {
			t.Fatalf("SetJSON failed: %v", err)
		}

		store := seededStore()
		svc := NewAuthService(store, state, nil, nil, nil)
		if err := svc.LoadRegisteredUsers(ctx); err != nil {
			t.Fatalf("LoadRegisteredUsers failed: %v", err)
		}
		if len(store.Users()) != 4 {
			t.Fatalf("expected duplicates to be skipped, got %d users", len(store.Users()))
		}
	})

	t.Run("is a no-op without persisted state", func(t *testing.T) {
		t.Parallel()

		store := seededStore()
		svc := NewAuthService(store, storage.NewMemoryStore(), nil, nil, nil)
		if err := svc.LoadRegisteredUsers(context.Background()); err != nil {
			t.Fatalf("LoadRegisteredUsers failed: %v", err)
		}
		if len(store.Users()) != 4 {
			t.Fatalf("expected untouched store, got %d users", len(store.Users()))
		}
	})
}

func TestInitials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"John Doe", "JD"},
		{"Emily Chen", "EC"},
		{"Admin User", "AU"},
		{"Cher", "C"},
		{"", ""},
		{"  spaced   out  ", "so"},
	}
	for _, tc := range cases {
		if got := Initials(tc.name); got != tc.want {
			t.Fatalf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

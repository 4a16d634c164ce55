package application

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

// PasswordVerifier compares a stored credential with a candidate password.
// The default compares plaintext in constant time, matching the legacy
// credential layout this core inherits; a hashing scheme can be layered in
// by supplying a different verifier.
type PasswordVerifier func(stored, candidate string) error

// VerifyPlaintext is the default PasswordVerifier.
func VerifyPlaintext(stored, candidate string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}

// AuthService validates credentials against the record store and maintains
// the persisted session state (the user and token blobs).
type AuthService struct {
	store          *records.Store
	state          storage.Store
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	logger         *slog.Logger
}

// NewAuthService wires dependencies for the auth service. verify and
// tokenGenerator may be nil; they default to plaintext comparison and uuid
// tokens.
func NewAuthService(store *records.Store, state storage.Store, verify PasswordVerifier, tokenGenerator func() string, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPlaintext
	}
	if tokenGenerator == nil {
		tokenGenerator = uuid.NewString
	}
	return &AuthService{
		store:          store,
		state:          state,
		verifyPassword: verify,
		tokenGenerator: tokenGenerator,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// LoadRegisteredUsers folds accounts persisted under the registeredUsers key
// back into the record store so earlier registrations survive a restart.
// Emails already present in the store win over persisted duplicates.
func (s *AuthService) LoadRegisteredUsers(ctx context.Context) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("auth store not configured")
	}
	if s.state == nil {
		return nil
	}

	var persisted []records.User
	ok, err := storage.GetJSON(ctx, s.state, storage.KeyRegisteredUsers, &persisted)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	existing := make(map[string]struct{})
	for _, u := range s.store.Users() {
		existing[u.Email] = struct{}{}
	}

	restored := 0
	for _, u := range persisted {
		if _, taken := existing[u.Email]; taken {
			continue
		}
		existing[u.Email] = struct{}{}
		s.store.AddUser(u)
		restored++
	}
	s.loggerWith(ctx, "LoadRegisteredUsers").InfoContext(ctx, "registered users restored", "count", restored)
	return nil
}

// Login validates the credential pair against the stored users; the first
// exact email match with a passing verifier wins. On success the session is
// persisted under the user and token keys.
func (s *AuthService) Login(ctx context.Context, email, password string) (result Session, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("auth store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Login", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "login succeeded", "user_id", result.User.ID, "role", result.User.Role)
	}()

	if email == "" || password == "" {
		err = ErrInvalidCredentials
		return
	}

	for _, u := range s.store.Users() {
		if u.Email != email {
			continue
		}
		if s.verifyPassword(u.Password, password) != nil {
			continue
		}
		session := Session{User: u.WithoutPassword(), Token: s.tokenGenerator()}
		if err = s.persistSession(ctx, session); err != nil {
			return
		}
		result = session
		return
	}

	err = ErrInvalidCredentials
	return
}

// Register appends a new user with a derived avatar and signs them in. The
// email must not already be taken; the new account is also persisted under
// the registeredUsers key.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (result Session, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("auth store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Register", "email", input.Email, "role", input.Role)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "registration succeeded", "user_id", result.User.ID)
	}()

	if vErr := validateInput(input); vErr.HasErrors() {
		err = vErr
		return
	}

	for _, u := range s.store.Users() {
		if u.Email == input.Email {
			err = ErrDuplicateEmail
			return
		}
	}

	created := s.store.AddUser(records.User{
		Email:          input.Email,
		Password:       input.Password,
		Role:           input.Role,
		Name:           input.Name,
		Specialization: input.Specialization,
		Age:            input.Age,
		PharmacyName:   input.PharmacyName,
		Avatar:         Initials(input.Name),
	})

	if s.state != nil {
		var persisted []records.User
		if _, err = storage.GetJSON(ctx, s.state, storage.KeyRegisteredUsers, &persisted); err != nil {
			return
		}
		persisted = append(persisted, created)
		if err = storage.SetJSON(ctx, s.state, storage.KeyRegisteredUsers, persisted); err != nil {
			return
		}
	}

	session := Session{User: created.WithoutPassword(), Token: s.tokenGenerator()}
	if err = s.persistSession(ctx, session); err != nil {
		return
	}
	result = session
	return
}

// Logout clears the persisted session state.
func (s *AuthService) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.state == nil {
		return nil
	}
	if err := s.state.Delete(ctx, storage.KeyUser); err != nil {
		return err
	}
	if err := s.state.Delete(ctx, storage.KeyToken); err != nil {
		return err
	}
	s.loggerWith(ctx, "Logout").InfoContext(ctx, "session cleared")
	return nil
}

// CurrentSession reads the persisted session state back. The second result
// is false when no session is stored.
func (s *AuthService) CurrentSession(ctx context.Context) (Session, bool, error) {
	if s == nil || s.state == nil {
		return Session{}, false, nil
	}

	var session Session
	userOK, err := storage.GetJSON(ctx, s.state, storage.KeyUser, &session.User)
	if err != nil {
		return Session{}, false, err
	}
	tokenOK, err := storage.GetJSON(ctx, s.state, storage.KeyToken, &session.Token)
	if err != nil {
		return Session{}, false, err
	}
	if !userOK || !tokenOK {
		return Session{}, false, nil
	}
	return session, true, nil
}

func (s *AuthService) persistSession(ctx context.Context, session Session) error {
	if s.state == nil {
		return nil
	}
	if err := storage.SetJSON(ctx, s.state, storage.KeyUser, session.User); err != nil {
		return err
	}
	return storage.SetJSON(ctx, s.state, storage.KeyToken, session.Token)
}

// Initials derives the avatar string from a display name: the first rune of
// each whitespace-separated word, in order.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

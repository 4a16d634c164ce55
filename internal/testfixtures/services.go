package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/clinic-portal/internal/application"
	"github.com/example/clinic-portal/internal/facade"
	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

// Environment bundles a seeded store, blob storage and the full service set
// so tests can exercise any layer without repeating wiring.
type Environment struct {
	Clock  *Clock
	Tokens *TokenGenerator
	Store  *records.Store
	State  storage.Store

	Auth          *application.AuthService
	Directory     *application.DirectoryService
	Appointments  *application.AppointmentService
	Prescriptions *application.PrescriptionService
	Pharmacy      *application.PharmacyService
	Stats         *application.StatsService
	Preferences   *application.PreferenceService
	Snapshots     *application.SnapshotService
}

// EnvironmentOption configures an Environment under construction.
type EnvironmentOption func(*Environment)

// WithClock overrides the clock the environment seeds and computes with.
func WithClock(clock *Clock) EnvironmentOption {
	return func(env *Environment) {
		env.Clock = clock
	}
}

// WithState overrides the blob storage backing sessions and snapshots.
func WithState(state storage.Store) EnvironmentOption {
	return func(env *Environment) {
		env.State = state
	}
}

// WithTokens overrides the session token generator.
func WithTokens(tokens *TokenGenerator) EnvironmentOption {
	return func(env *Environment) {
		env.Tokens = tokens
	}
}

// NewEnvironment builds a fully wired environment over the seeded demo data.
// Defaults: reference-time clock, in-memory storage, deterministic tokens.
func NewEnvironment(opts ...EnvironmentOption) *Environment {
	env := &Environment{}
	for _, opt := range opts {
		opt(env)
	}
	if env.Clock == nil {
		env.Clock = NewClock(time.Time{})
	}
	if env.Tokens == nil {
		env.Tokens = NewTokenGenerator("")
	}
	if env.State == nil {
		env.State = storage.NewMemoryStore()
	}

	now := env.Clock.NowFunc()
	env.Store = records.NewSeededStore(now)
	logger := slog.Default()

	env.Auth = application.NewAuthService(env.Store, env.State, nil, env.Tokens.NextFunc(), logger)
	env.Directory = application.NewDirectoryService(env.Store, logger)
	env.Appointments = application.NewAppointmentService(env.Store, nil, logger)
	env.Prescriptions = application.NewPrescriptionService(env.Store, nil, logger)
	env.Pharmacy = application.NewPharmacyService(env.Store, nil, logger)
	env.Stats = application.NewStatsService(env.Store, now, logger)
	env.Preferences = application.NewPreferenceService(env.State, logger)
	env.Snapshots = application.NewSnapshotService(env.Store, env.State, logger)
	return env
}

// Facade wraps the environment's services in the envelope boundary with no
// simulated latency.
func (env *Environment) Facade() *facade.Facade {
	return facade.New(facade.Services{
		Auth:          env.Auth,
		Directory:     env.Directory,
		Appointments:  env.Appointments,
		Prescriptions: env.Prescriptions,
		Pharmacy:      env.Pharmacy,
		Stats:         env.Stats,
		Preferences:   env.Preferences,
	}, 0, slog.Default())
}

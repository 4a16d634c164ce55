// Package clinicportal assembles the medical office portal core: the record
// store, the persisted key/value state, the application services and the
// envelope facade, configured from the environment.
package clinicportal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/example/clinic-portal/internal/application"
	"github.com/example/clinic-portal/internal/config"
	"github.com/example/clinic-portal/internal/facade"
	"github.com/example/clinic-portal/internal/logging"
	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

// Portal is a fully wired portal core. API is the envelope boundary UI
// shells call; the remaining fields are exposed for embedders that need a
// specific layer.
type Portal struct {
	Logger *slog.Logger
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

	API *facade.Facade
}

// Open builds a portal from the supplied configuration. A non-empty
// StorageDSN selects SQLite-backed state, otherwise state lives in memory.
// Previously registered accounts and snapshotted collections are folded back
// in before the portal is returned.
func Open(ctx context.Context, cfg config.Config) (*Portal, error) {
	return open(ctx, cfg, time.Now, os.Stderr)
}

func open(ctx context.Context, cfg config.Config, now func() time.Time, logOutput io.Writer) (*Portal, error) {
	logger := logging.New(logOutput, logLevel(cfg.LogLevel))

	var state storage.Store
	if cfg.StorageDSN != "" {
		sqliteState, err := storage.OpenSQLite(cfg.StorageDSN, now)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		state = sqliteState
	} else {
		state = storage.NewMemoryStore()
	}

	var store *records.Store
	if cfg.SeedDemoData {
		store = records.NewSeededStore(now)
	} else {
		store = records.NewStore()
	}

	p := &Portal{
		Logger:        logger,
		Store:         store,
		State:         state,
		Auth:          application.NewAuthService(store, state, nil, nil, logger),
		Directory:     application.NewDirectoryService(store, logger),
		Appointments:  application.NewAppointmentService(store, nil, logger),
		Prescriptions: application.NewPrescriptionService(store, nil, logger),
		Pharmacy:      application.NewPharmacyService(store, nil, logger),
		Stats:         application.NewStatsService(store, now, logger),
		Preferences:   application.NewPreferenceService(state, logger),
		Snapshots:     application.NewSnapshotService(store, state, logger),
	}

	if err := p.Auth.LoadRegisteredUsers(ctx); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("restore registered users: %w", err)
	}
	if err := p.Snapshots.Restore(ctx); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("restore collections: %w", err)
	}

	p.API = facade.New(facade.Services{
		Auth:          p.Auth,
		Directory:     p.Directory,
		Appointments:  p.Appointments,
		Prescriptions: p.Prescriptions,
		Pharmacy:      p.Pharmacy,
		Stats:         p.Stats,
		Preferences:   p.Preferences,
	}, cfg.SimulatedLatency, logger)

	logger.InfoContext(ctx, "portal opened",
		"storage", storageKind(cfg.StorageDSN),
		"seeded", cfg.SeedDemoData,
		"simulated_latency", cfg.SimulatedLatency)
	return p, nil
}

// Close snapshots the mutable collections and releases the storage backend.
func (p *Portal) Close(ctx context.Context) error {
	if p == nil || p.State == nil {
		return nil
	}
	if err := p.Snapshots.Save(ctx); err != nil {
		_ = p.State.Close()
		return fmt.Errorf("save collections: %w", err)
	}
	return p.State.Close()
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func storageKind(dsn string) string {
	if dsn == "" {
		return "memory"
	}
	return "sqlite"
}

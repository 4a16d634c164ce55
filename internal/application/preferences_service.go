package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/storage"
)

// PreferenceService reads and writes the UI preferences persisted alongside
// the session state. Dark mode is the only preference today.
type PreferenceService struct {
	state  storage.Store
	logger *slog.Logger
}

// NewPreferenceService wires dependencies for the preference service.
func NewPreferenceService(state storage.Store, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{state: state, logger: defaultLogger(logger)}
}

// DarkMode reports the persisted dark-mode flag; absent means false.
func (s *PreferenceService) DarkMode(ctx context.Context) (bool, error) {
	if s == nil || s.state == nil {
		return false, fmt.Errorf("preference storage not configured")
	}
	var enabled bool
	if _, err := storage.GetJSON(ctx, s.state, storage.KeyDarkMode, &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// SetDarkMode replaces the persisted dark-mode flag.
func (s *PreferenceService) SetDarkMode(ctx context.Context, enabled bool) error {
	if s == nil || s.state == nil {
		return fmt.Errorf("preference storage not configured")
	}
	if err := storage.SetJSON(ctx, s.state, storage.KeyDarkMode, enabled); err != nil {
		return err
	}
	serviceLogger(ctx, s.logger, "PreferenceService", "SetDarkMode").
		DebugContext(ctx, "dark mode updated", "enabled", enabled)
	return nil
}

// ToggleDarkMode flips the persisted flag and returns the new value.
func (s *PreferenceService) ToggleDarkMode(ctx context.Context) (bool, error) {
	current, err := s.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	if err := s.SetDarkMode(ctx, !current); err != nil {
		return false, err
	}
	return !current, nil
}

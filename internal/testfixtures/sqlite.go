package testfixtures

import (
	"path/filepath"
	"testing"

	"github.com/example/clinic-portal/internal/storage"
)

// NewSQLiteState opens a SQLite-backed blob store in a temporary file for
// integration-style persistence tests. The store is closed automatically via
// tb.Cleanup; the returned path can be reopened to simulate a restart.
func NewSQLiteState(tb testing.TB, clock *Clock) (storage.Store, string) {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "portal.db")
	state, err := storage.OpenSQLite(path, clock.NowFunc())
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	tb.Cleanup(func() {
		_ = state.Close()
	})
	return state, path
}

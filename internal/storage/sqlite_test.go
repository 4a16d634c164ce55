package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "portal.db")
	store, err := OpenSQLite(dsn, func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	t.Run("set then get round trips", func(t *testing.T) {
		t.Parallel()

		store := openTestSQLite(t)
		ctx := context.Background()
		if err := store.Set(ctx, KeyRegisteredUsers, []byte(`[{"id":5}]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := store.Get(ctx, KeyRegisteredUsers)
		if err != nil || !ok {
			t.Fatalf("Get failed: ok=%v err=%v", ok, err)
		}
		if string(value) != `[{"id":5}]` {
			t.Fatalf("unexpected value %q", value)
		}
	})

	t.Run("upsert replaces the existing value", func(t *testing.T) {
		t.Parallel()

		store := openTestSQLite(t)
		ctx := context.Background()
		if err := store.Set(ctx, KeyToken, []byte(`"first"`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Set(ctx, KeyToken, []byte(`"second"`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, err := store.Get(ctx, KeyToken)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(value) != `"second"` {
			t.Fatalf("expected replacement, got %q", value)
		}
	})

	t.Run("missing keys report absence", func(t *testing.T) {
		t.Parallel()

		store := openTestSQLite(t)
		_, ok, err := store.Get(context.Background(), KeyDarkMode)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Fatal("expected absence")
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		t.Parallel()

		store := openTestSQLite(t)
		ctx := context.Background()
		if err := store.Set(ctx, KeyUser, []byte(`{}`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Delete(ctx, KeyUser); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := store.Get(ctx, KeyUser); ok {
			t.Fatal("expected key to be gone")
		}
	})

	t.Run("state survives reopening the same file", func(t *testing.T) {
		t.Parallel()

		dsn := "file:" + filepath.Join(t.TempDir(), "portal.db")
		first, err := OpenSQLite(dsn, nil)
		if err != nil {
			t.Fatalf("OpenSQLite failed: %v", err)
		}
		ctx := context.Background()
		if err := first.Set(ctx, KeyAppointments, []byte(`[1,2,3]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := first.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		second, err := OpenSQLite(dsn, nil)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer second.Close()
		value, ok, err := second.Get(ctx, KeyAppointments)
		if err != nil || !ok {
			t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
		}
		if string(value) != `[1,2,3]` {
			t.Fatalf("unexpected value %q", value)
		}
	})
}

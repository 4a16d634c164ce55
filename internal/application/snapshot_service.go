package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

// SnapshotService persists the mutable collections (appointments and
// prescriptions) as whole-value JSON blobs and restores them at startup.
// Reference data (doctors, patients) is never snapshotted.
type SnapshotService struct {
	store  *records.Store
	state  storage.Store
	logger *slog.Logger
}

// NewSnapshotService wires dependencies for the snapshot service.
func NewSnapshotService(store *records.Store, state storage.Store, logger *slog.Logger) *SnapshotService {
	return &SnapshotService{store: store, state: state, logger: defaultLogger(logger)}
}

// Save replaces the persisted appointment and prescription blobs with the
// current collections.
func (s *SnapshotService) Save(ctx context.Context) error {
	if s == nil || s.store == nil || s.state == nil {
		return fmt.Errorf("snapshot dependencies not configured")
	}
	if err := storage.SetJSON(ctx, s.state, storage.KeyAppointments, s.store.Appointments()); err != nil {
		return err
	}
	if err := storage.SetJSON(ctx, s.state, storage.KeyPrescriptions, s.store.Prescriptions()); err != nil {
		return err
	}
	serviceLogger(ctx, s.logger, "SnapshotService", "Save").DebugContext(ctx, "collections persisted")
	return nil
}

// Restore loads persisted collections back into the store. Absent keys leave
// the corresponding collection untouched, so a fresh deployment keeps its
// seed data.
func (s *SnapshotService) Restore(ctx context.Context) error {
	if s == nil || s.store == nil || s.state == nil {
		return fmt.Errorf("snapshot dependencies not configured")
	}

	var appointments []records.Appointment
	ok, err := storage.GetJSON(ctx, s.state, storage.KeyAppointments, &appointments)
	if err != nil {
		return err
	}
	if ok {
		s.store.SetAppointments(appointments)
	}

	var prescriptions []records.Prescription
	ok, err = storage.GetJSON(ctx, s.state, storage.KeyPrescriptions, &prescriptions)
	if err != nil {
		return err
	}
	if ok {
		s.store.SetPrescriptions(prescriptions)
	}

	serviceLogger(ctx, s.logger, "SnapshotService", "Restore").InfoContext(ctx, "collections restored",
		"appointments", len(appointments), "prescriptions", len(prescriptions))
	return nil
}

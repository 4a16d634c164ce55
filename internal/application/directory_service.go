package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/records"
)

// DirectoryService serves the read-only reference collections: the doctor
// catalog and the patient registry.
type DirectoryService struct {
	store  *records.Store
	logger *slog.Logger
}

// NewDirectoryService wires dependencies for the directory service.
func NewDirectoryService(store *records.Store, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{store: store, logger: defaultLogger(logger)}
}

func (s *DirectoryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "DirectoryService", operation, attrs...)
}

// ListDoctors returns the full doctor catalog.
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]records.Doctor, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("directory store not configured")
	}
	doctors := s.store.Doctors()
	s.loggerWith(ctx, "ListDoctors").DebugContext(ctx, "doctors listed", "count", len(doctors))
	return doctors, nil
}

// GetDoctor returns the doctor with the given id.
func (s *DirectoryService) GetDoctor(ctx context.Context, id int) (records.Doctor, error) {
	if s == nil || s.store == nil {
		return records.Doctor{}, fmt.Errorf("directory store not configured")
	}
	doctor, err := s.store.DoctorByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.Doctor{}, ErrNotFound
		}
		return records.Doctor{}, err
	}
	return doctor, nil
}

// ListPatients returns the full patient registry.
func (s *DirectoryService) ListPatients(ctx context.Context) ([]records.Patient, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("directory store not configured")
	}
	patients := s.store.Patients()
	s.loggerWith(ctx, "ListPatients").DebugContext(ctx, "patients listed", "count", len(patients))
	return patients, nil
}

// GetPatient returns the patient with the given id.
func (s *DirectoryService) GetPatient(ctx context.Context, id int) (records.Patient, error) {
	if s == nil || s.store == nil {
		return records.Patient{}, fmt.Errorf("directory store not configured")
	}
	patient, err := s.store.PatientByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.Patient{}, ErrNotFound
		}
		return records.Patient{}, err
	}
	return patient, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/records"
)

// PrescriptionTransitionValidator vets a status change before it is applied.
// Nil keeps the permissive default.
type PrescriptionTransitionValidator func(from, to records.PrescriptionStatus) error

// PrescriptionService mediates all access to the prescription collection.
type PrescriptionService struct {
	store              *records.Store
	validateTransition PrescriptionTransitionValidator
	logger             *slog.Logger
}

// NewPrescriptionService wires dependencies for the prescription service.
// The transition validator may be nil.
func NewPrescriptionService(store *records.Store, transition PrescriptionTransitionValidator, logger *slog.Logger) *PrescriptionService {
	return &PrescriptionService{store: store, validateTransition: transition, logger: defaultLogger(logger)}
}

func (s *PrescriptionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PrescriptionService", operation, attrs...)
}

// List returns the prescriptions visible to the actor, scoped by role.
func (s *PrescriptionService) List(ctx context.Context, actor Actor) ([]records.Prescription, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("prescription store not configured")
	}
	scoped := ScopePrescriptions(s.store.Prescriptions(), actor)
	s.loggerWith(ctx, "List", "actor_id", actor.ID, "role", actor.Role).
		DebugContext(ctx, "prescriptions listed", "count", len(scoped))
	return scoped, nil
}

// Get returns the prescription with the given id. It never mutates the store.
func (s *PrescriptionService) Get(ctx context.Context, id int) (records.Prescription, error) {
	if s == nil || s.store == nil {
		return records.Prescription{}, fmt.Errorf("prescription store not configured")
	}
	prescription, err := s.store.PrescriptionByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.Prescription{}, ErrNotFound
		}
		return records.Prescription{}, err
	}
	return prescription, nil
}

// Create validates the input, assigns the next id and appends a pending
// prescription.
func (s *PrescriptionService) Create(ctx context.Context, input PrescriptionInput) (result records.Prescription, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("prescription store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create", "patient_id", input.PatientID, "doctor_id", input.DoctorID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "prescription creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "prescription created", "prescription_id", result.ID)
	}()

	if vErr := validateInput(input); vErr.HasErrors() {
		err = vErr
		return
	}

	result = s.store.AddPrescription(records.Prescription{
		PatientID:   input.PatientID,
		PatientName: input.PatientName,
		DoctorID:    input.DoctorID,
		DoctorName:  input.DoctorName,
		Date:        input.Date,
		Medications: append([]records.Medication(nil), input.Medications...),
		Status:      records.PrescriptionPending,
		Notes:       input.Notes,
	})
	return
}

// Update shallow-merges the patch into the stored prescription. Absent patch
// fields are preserved; an unknown id fails with ErrNotFound and leaves the
// collection untouched.
func (s *PrescriptionService) Update(ctx context.Context, id int, patch PrescriptionPatch) (result records.Prescription, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("prescription store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "prescription_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "prescription update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "prescription updated", "status", result.Status)
	}()

	existing, err := s.store.PrescriptionByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			vErr := &ValidationError{}
			vErr.add("status", "status must be one of: pending completed cancelled")
			err = vErr
			return
		}
		if s.validateTransition != nil {
			if tErr := s.validateTransition(existing.Status, *patch.Status); tErr != nil {
				err = tErr
				return
			}
		}
	}

	merged := existing
	if patch.PatientID != nil {
		merged.PatientID = *patch.PatientID
	}
	if patch.PatientName != nil {
		merged.PatientName = *patch.PatientName
	}
	if patch.DoctorID != nil {
		merged.DoctorID = *patch.DoctorID
	}
	if patch.DoctorName != nil {
		merged.DoctorName = *patch.DoctorName
	}
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.Medications != nil {
		merged.Medications = append([]records.Medication(nil), patch.Medications...)
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}

	if err = s.store.ReplacePrescription(merged); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	result = merged
	return
}

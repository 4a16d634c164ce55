package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/records"
)

// AppointmentTransitionValidator vets a status change before it is applied.
// A nil validator keeps the historical permissive behavior where any status
// may replace any other.
type AppointmentTransitionValidator func(from, to records.AppointmentStatus) error

// AppointmentService mediates all access to the appointment collection.
type AppointmentService struct {
	store              *records.Store
	validateTransition AppointmentTransitionValidator
	logger             *slog.Logger
}

// NewAppointmentService wires dependencies for the appointment service. The
// transition validator may be nil.
func NewAppointmentService(store *records.Store, transition AppointmentTransitionValidator, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{store: store, validateTransition: transition, logger: defaultLogger(logger)}
}

func (s *AppointmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AppointmentService", operation, attrs...)
}

// List returns the appointments visible to the actor, scoped by role.
func (s *AppointmentService) List(ctx context.Context, actor Actor) ([]records.Appointment, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("appointment store not configured")
	}
	scoped := ScopeAppointments(s.store.Appointments(), actor)
	s.loggerWith(ctx, "List", "actor_id", actor.ID, "role", actor.Role).
		DebugContext(ctx, "appointments listed", "count", len(scoped))
	return scoped, nil
}

// Get returns the appointment with the given id. It never mutates the store.
func (s *AppointmentService) Get(ctx context.Context, id int) (records.Appointment, error) {
	if s == nil || s.store == nil {
		return records.Appointment{}, fmt.Errorf("appointment store not configured")
	}
	appointment, err := s.store.AppointmentByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.Appointment{}, ErrNotFound
		}
		return records.Appointment{}, err
	}
	return appointment, nil
}

// Create validates the input, assigns the next id and appends a pending
// appointment.
func (s *AppointmentService) Create(ctx context.Context, input AppointmentInput) (result records.Appointment, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("appointment store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create", "patient_id", input.PatientID, "doctor_id", input.DoctorID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment created", "appointment_id", result.ID)
	}()

	if vErr := validateInput(input); vErr.HasErrors() {
		err = vErr
		return
	}

	result = s.store.AddAppointment(records.Appointment{
		PatientID:   input.PatientID,
		PatientName: input.PatientName,
		DoctorID:    input.DoctorID,
		DoctorName:  input.DoctorName,
		Date:        input.Date,
		Time:        input.Time,
		Status:      records.AppointmentPending,
		Type:        input.Type,
		Notes:       input.Notes,
	})
	return
}

// Update shallow-merges the patch into the stored appointment. Absent patch
// fields are preserved; an unknown id fails with ErrNotFound and leaves the
// collection untouched.
func (s *AppointmentService) Update(ctx context.Context, id int, patch AppointmentPatch) (result records.Appointment, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("appointment store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment updated", "status", result.Status)
	}()

	existing, err := s.store.AppointmentByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			vErr := &ValidationError{}
			vErr.add("status", "status must be one of: pending confirmed cancelled completed")
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
	if patch.Time != nil {
		merged.Time = *patch.Time
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Type != nil {
		merged.Type = *patch.Type
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}

	if err = s.store.ReplaceAppointment(merged); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	result = merged
	return
}

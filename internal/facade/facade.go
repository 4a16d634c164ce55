package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/clinic-portal/internal/application"
	"github.com/example/clinic-portal/internal/logging"
	"github.com/example/clinic-portal/internal/records"
)

// messages surfaced to users. Sentinel errors are mapped per operation so the
// envelope text names the missing entity.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgDuplicateEmail     = "Email already registered"
	msgInvalidRole        = "Invalid role"
	msgInvalidUserID      = "Invalid user id"
	msgTransientFailure   = "Something went wrong. Please try again."
)

// Identity is the caller as UI shells know it: the id is text because session
// payloads round-trip through JSON and may arrive stringified.
type Identity struct {
	ID   string
	Role string
}

// Services bundles the application services the facade fronts.
type Services struct {
	Auth          *application.AuthService
	Directory     *application.DirectoryService
	Appointments  *application.AppointmentService
	Prescriptions *application.PrescriptionService
	Pharmacy      *application.PharmacyService
	Stats         *application.StatsService
	Preferences   *application.PreferenceService
}

// Facade is the envelope boundary consumed by UI shells. Every operation
// returns a Result; errors never escape as Go errors and panics inside an
// operation are converted to a transient failure envelope.
type Facade struct {
	services Services
	latency  time.Duration
	sleep    func(time.Duration)
	logger   *slog.Logger
}

// New wires the facade. latency, when positive, is slept before every
// operation to mimic a remote backend; the sleep is never cancelled early.
func New(services Services, latency time.Duration, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{
		services: services,
		latency:  latency,
		sleep:    time.Sleep,
		logger:   logger,
	}
}

func (f *Facade) pause() {
	if f.latency > 0 {
		f.sleep(f.latency)
	}
}

func (f *Facade) actor(identity Identity) (application.Actor, error) {
	id, err := application.ParseActorID(identity.ID)
	if err != nil {
		return application.Actor{}, err
	}
	return application.Actor{ID: id, Role: records.Role(identity.Role)}, nil
}

// invoke runs one operation behind the envelope contract: simulated latency
// first, then the call, then error-to-message mapping. A panic in fn is
// logged and surfaced as the transient failure message.
func invoke[T any](ctx context.Context, f *Facade, operation, notFound string, fn func(context.Context) (T, error)) (result Result[T]) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = f.logger
	}
	logger = logger.With("component", "facade", "operation", operation)
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "operation panicked", "panic", fmt.Sprint(r))
			result = fail[T](msgTransientFailure)
		}
	}()

	f.pause()
	data, err := fn(ctx)
	if err != nil {
		return fail[T](errorMessage(err, notFound))
	}
	return succeed(data)
}

func errorMessage(err error, notFound string) string {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return notFound
	case errors.Is(err, application.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, application.ErrDuplicateEmail):
		return msgDuplicateEmail
	case errors.Is(err, application.ErrInvalidRole):
		return msgInvalidRole
	case errors.Is(err, application.ErrInvalidActorID):
		return msgInvalidUserID
	}
	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		return validationMessage(vErr)
	}
	return msgTransientFailure
}

// validationMessage flattens field errors into one deterministic line.
func validationMessage(vErr *application.ValidationError) string {
	fields := make([]string, 0, len(vErr.FieldErrors))
	for field := range vErr.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+vErr.FieldErrors[field])
	}
	return strings.Join(parts, "; ")
}

// Login validates a credential pair and opens a session.
func (f *Facade) Login(ctx context.Context, email, password string) Result[application.Session] {
	return invoke(ctx, f, "Login", msgInvalidCredentials, func(ctx context.Context) (application.Session, error) {
		return f.services.Auth.Login(ctx, email, password)
	})
}

// Register creates an account and signs it in.
func (f *Facade) Register(ctx context.Context, input application.RegisterInput) Result[application.Session] {
	return invoke(ctx, f, "Register", msgTransientFailure, func(ctx context.Context) (application.Session, error) {
		return f.services.Auth.Register(ctx, input)
	})
}

// Logout clears the persisted session.
func (f *Facade) Logout(ctx context.Context) Result[bool] {
	return invoke(ctx, f, "Logout", msgTransientFailure, func(ctx context.Context) (bool, error) {
		if err := f.services.Auth.Logout(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
}

// CurrentSession reads the persisted session back, failing when none exists.
func (f *Facade) CurrentSession(ctx context.Context) Result[application.Session] {
	return invoke(ctx, f, "CurrentSession", msgTransientFailure, func(ctx context.Context) (application.Session, error) {
		session, ok, err := f.services.Auth.CurrentSession(ctx)
		if err != nil {
			return application.Session{}, err
		}
		if !ok {
			return application.Session{}, fmt.Errorf("no session: %w", application.ErrInvalidCredentials)
		}
		return session, nil
	})
}

// Appointments lists appointments scoped to the caller's role.
func (f *Facade) Appointments(ctx context.Context, identity Identity) Result[[]records.Appointment] {
	return invoke(ctx, f, "Appointments", "Appointment not found", func(ctx context.Context) ([]records.Appointment, error) {
		actor, err := f.actor(identity)
		if err != nil {
			return nil, err
		}
		return f.services.Appointments.List(ctx, actor)
	})
}

// Appointment fetches one appointment by id.
func (f *Facade) Appointment(ctx context.Context, id int) Result[records.Appointment] {
	return invoke(ctx, f, "Appointment", "Appointment not found", func(ctx context.Context) (records.Appointment, error) {
		return f.services.Appointments.Get(ctx, id)
	})
}

// CreateAppointment books a new appointment in pending state.
func (f *Facade) CreateAppointment(ctx context.Context, input application.AppointmentInput) Result[records.Appointment] {
	return invoke(ctx, f, "CreateAppointment", "Appointment not found", func(ctx context.Context) (records.Appointment, error) {
		return f.services.Appointments.Create(ctx, input)
	})
}

// UpdateAppointment applies a partial patch to an existing appointment.
func (f *Facade) UpdateAppointment(ctx context.Context, id int, patch application.AppointmentPatch) Result[records.Appointment] {
	return invoke(ctx, f, "UpdateAppointment", "Appointment not found", func(ctx context.Context) (records.Appointment, error) {
		return f.services.Appointments.Update(ctx, id, patch)
	})
}

// Prescriptions lists prescriptions scoped to the caller's role.
func (f *Facade) Prescriptions(ctx context.Context, identity Identity) Result[[]records.Prescription] {
	return invoke(ctx, f, "Prescriptions", "Prescription not found", func(ctx context.Context) ([]records.Prescription, error) {
		actor, err := f.actor(identity)
		if err != nil {
			return nil, err
		}
		return f.services.Prescriptions.List(ctx, actor)
	})
}

// Prescription fetches one prescription by id.
func (f *Facade) Prescription(ctx context.Context, id int) Result[records.Prescription] {
	return invoke(ctx, f, "Prescription", "Prescription not found", func(ctx context.Context) (records.Prescription, error) {
		return f.services.Prescriptions.Get(ctx, id)
	})
}

// CreatePrescription issues a new prescription in pending state.
func (f *Facade) CreatePrescription(ctx context.Context, input application.PrescriptionInput) Result[records.Prescription] {
	return invoke(ctx, f, "CreatePrescription", "Prescription not found", func(ctx context.Context) (records.Prescription, error) {
		return f.services.Prescriptions.Create(ctx, input)
	})
}

// UpdatePrescription applies a partial patch to an existing prescription.
func (f *Facade) UpdatePrescription(ctx context.Context, id int, patch application.PrescriptionPatch) Result[records.Prescription] {
	return invoke(ctx, f, "UpdatePrescription", "Prescription not found", func(ctx context.Context) (records.Prescription, error) {
		return f.services.Prescriptions.Update(ctx, id, patch)
	})
}

// Doctors lists the doctor directory.
func (f *Facade) Doctors(ctx context.Context) Result[[]records.Doctor] {
	return invoke(ctx, f, "Doctors", "Doctor not found", func(ctx context.Context) ([]records.Doctor, error) {
		return f.services.Directory.ListDoctors(ctx)
	})
}

// Doctor fetches one doctor by id.
func (f *Facade) Doctor(ctx context.Context, id int) Result[records.Doctor] {
	return invoke(ctx, f, "Doctor", "Doctor not found", func(ctx context.Context) (records.Doctor, error) {
		return f.services.Directory.GetDoctor(ctx, id)
	})
}

// Patients lists the patient directory.
func (f *Facade) Patients(ctx context.Context) Result[[]records.Patient] {
	return invoke(ctx, f, "Patients", "Patient not found", func(ctx context.Context) ([]records.Patient, error) {
		return f.services.Directory.ListPatients(ctx)
	})
}

// Patient fetches one patient by id.
func (f *Facade) Patient(ctx context.Context, id int) Result[records.Patient] {
	return invoke(ctx, f, "Patient", "Patient not found", func(ctx context.Context) (records.Patient, error) {
		return f.services.Directory.GetPatient(ctx, id)
	})
}

// PharmacyOrders lists every pharmacy order.
func (f *Facade) PharmacyOrders(ctx context.Context) Result[[]records.PharmacyOrder] {
	return invoke(ctx, f, "PharmacyOrders", "Order not found", func(ctx context.Context) ([]records.PharmacyOrder, error) {
		return f.services.Pharmacy.ListOrders(ctx)
	})
}

// PharmacyOrder fetches one order by id.
func (f *Facade) PharmacyOrder(ctx context.Context, id int) Result[records.PharmacyOrder] {
	return invoke(ctx, f, "PharmacyOrder", "Order not found", func(ctx context.Context) (records.PharmacyOrder, error) {
		return f.services.Pharmacy.GetOrder(ctx, id)
	})
}

// UpdateOrderStatus transitions an order's status.
func (f *Facade) UpdateOrderStatus(ctx context.Context, id int, status records.OrderStatus) Result[records.PharmacyOrder] {
	return invoke(ctx, f, "UpdateOrderStatus", "Order not found", func(ctx context.Context) (records.PharmacyOrder, error) {
		return f.services.Pharmacy.UpdateOrderStatus(ctx, id, status)
	})
}

// DashboardStats computes the caller's dashboard numbers.
func (f *Facade) DashboardStats(ctx context.Context, identity Identity) Result[application.Stats] {
	return invoke(ctx, f, "DashboardStats", msgInvalidRole, func(ctx context.Context) (application.Stats, error) {
		actor, err := f.actor(identity)
		if err != nil {
			return nil, err
		}
		return f.services.Stats.DashboardStats(ctx, actor)
	})
}

// DarkMode reads the persisted dark-mode preference.
func (f *Facade) DarkMode(ctx context.Context) Result[bool] {
	return invoke(ctx, f, "DarkMode", msgTransientFailure, func(ctx context.Context) (bool, error) {
		return f.services.Preferences.DarkMode(ctx)
	})
}

// SetDarkMode persists the dark-mode preference.
func (f *Facade) SetDarkMode(ctx context.Context, enabled bool) Result[bool] {
	return invoke(ctx, f, "SetDarkMode", msgTransientFailure, func(ctx context.Context) (bool, error) {
		if err := f.services.Preferences.SetDarkMode(ctx, enabled); err != nil {
			return false, err
		}
		return enabled, nil
	})
}

// ToggleDarkMode flips the persisted dark-mode preference.
func (f *Facade) ToggleDarkMode(ctx context.Context) Result[bool] {
	return invoke(ctx, f, "ToggleDarkMode", msgTransientFailure, func(ctx context.Context) (bool, error) {
		return f.services.Preferences.ToggleDarkMode(ctx)
	})
}

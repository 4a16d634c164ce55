package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/clinic-portal/internal/application"
	"github.com/example/clinic-portal/internal/records"
)

var (
	appointmentCounter  uint64
	prescriptionCounter uint64
	registerCounter     uint64
)

var referenceTime = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// Seeded stores built from it place "today" on 2024-03-15.
func ReferenceTime() time.Time {
	return referenceTime
}

// ------------------------- Appointment fixtures --------------------------

// AppointmentFixture represents a deterministic appointment that can be
// materialised as a stored record or as creation input.
type AppointmentFixture struct {
	ID          int
	PatientID   int
	PatientName string
	DoctorID    int
	DoctorName  string
	Date        string
	Time        string
	Status      records.AppointmentStatus
	Type        string
	Notes       string
}

// AppointmentOption configures the generated appointment fixture.
type AppointmentOption func(*AppointmentFixture)

// NewAppointmentFixture returns a deterministic appointment fixture with
// optional overrides. Generated ids start above the seed range so fixtures
// never collide with seeded records.
func NewAppointmentFixture(opts ...AppointmentOption) AppointmentFixture {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	fixture := AppointmentFixture{
		ID:          int(100 + idx),
		PatientID:   3,
		PatientName: "John Doe",
		DoctorID:    1,
		DoctorName:  "Dr. Sarah Johnson",
		Date:        referenceTime.AddDate(0, 0, int(idx)).Format(records.DateLayout),
		Time:        "10:00",
		Status:      records.AppointmentPending,
		Type:        "consultation",
		Notes:       fmt.Sprintf("Fixture appointment %d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAppointmentID overrides the generated id.
func WithAppointmentID(id int) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ID = id
	}
}

// WithAppointmentPatient sets the patient id and denormalized name.
func WithAppointmentPatient(id int, name string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.PatientID = id
		f.PatientName = name
	}
}

// WithAppointmentDoctor sets the doctor id and denormalized name.
func WithAppointmentDoctor(id int, name string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.DoctorID = id
		f.DoctorName = name
	}
}

// WithAppointmentDate sets the calendar date.
func WithAppointmentDate(date string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Date = date
	}
}

// WithAppointmentTime sets the slot time.
func WithAppointmentTime(slot string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Time = slot
	}
}

// WithAppointmentStatus sets the status.
func WithAppointmentStatus(status records.AppointmentStatus) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Status = status
	}
}

// WithAppointmentNotes sets the free-form notes.
func WithAppointmentNotes(notes string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Notes = notes
	}
}

// Record returns the fixture as a records.Appointment value.
func (f AppointmentFixture) Record() records.Appointment {
	return records.Appointment{
		ID:          f.ID,
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		DoctorID:    f.DoctorID,
		DoctorName:  f.DoctorName,
		Date:        f.Date,
		Time:        f.Time,
		Status:      f.Status,
		Type:        f.Type,
		Notes:       f.Notes,
	}
}

// Input returns the fixture as an application.AppointmentInput. The id and
// status are dropped; creation assigns both.
func (f AppointmentFixture) Input() application.AppointmentInput {
	return application.AppointmentInput{
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		DoctorID:    f.DoctorID,
		DoctorName:  f.DoctorName,
		Date:        f.Date,
		Time:        f.Time,
		Type:        f.Type,
		Notes:       f.Notes,
	}
}

// ------------------------ Prescription fixtures --------------------------

// PrescriptionFixture represents a deterministic prescription.
type PrescriptionFixture struct {
	ID          int
	PatientID   int
	PatientName string
	DoctorID    int
	DoctorName  string
	Date        string
	Medications []records.Medication
	Status      records.PrescriptionStatus
	Notes       string
}

// PrescriptionOption configures the generated prescription fixture.
type PrescriptionOption func(*PrescriptionFixture)

// NewPrescriptionFixture returns a deterministic prescription fixture with
// optional overrides.
func NewPrescriptionFixture(opts ...PrescriptionOption) PrescriptionFixture {
	idx := atomic.AddUint64(&prescriptionCounter, 1)
	fixture := PrescriptionFixture{
		ID:          int(100 + idx),
		PatientID:   3,
		PatientName: "John Doe",
		DoctorID:    1,
		DoctorName:  "Dr. Sarah Johnson",
		Date:        referenceTime.Format(records.DateLayout),
		Medications: []records.Medication{
			{Name: "Paracetamol", Dosage: "500mg", Frequency: "Twice daily", Duration: "5 days"},
		},
		Status: records.PrescriptionPending,
		Notes:  fmt.Sprintf("Fixture prescription %d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithPrescriptionID overrides the generated id.
func WithPrescriptionID(id int) PrescriptionOption {
	return func(f *PrescriptionFixture) {
		f.ID = id
	}
}

// WithPrescriptionPatient sets the patient id and denormalized name.
func WithPrescriptionPatient(id int, name string) PrescriptionOption {
	return func(f *PrescriptionFixture) {
		f.PatientID = id
		f.PatientName = name
	}
}

// WithPrescriptionDoctor sets the doctor id and denormalized name.
func WithPrescriptionDoctor(id int, name string) PrescriptionOption {
	return func(f *PrescriptionFixture) {
		f.DoctorID = id
		f.DoctorName = name
	}
}

// WithPrescriptionMedications replaces the medication list.
func WithPrescriptionMedications(medications ...records.Medication) PrescriptionOption {
	return func(f *PrescriptionFixture) {
		f.Medications = append([]records.Medication(nil), medications...)
	}
}

// WithPrescriptionStatus sets the status.
func WithPrescriptionStatus(status records.PrescriptionStatus) PrescriptionOption {
	return func(f *PrescriptionFixture) {
		f.Status = status
	}
}

// Record returns the fixture as a records.Prescription value.
func (f PrescriptionFixture) Record() records.Prescription {
	return records.Prescription{
		ID:          f.ID,
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		DoctorID:    f.DoctorID,
		DoctorName:  f.DoctorName,
		Date:        f.Date,
		Medications: append([]records.Medication(nil), f.Medications...),
		Status:      f.Status,
		Notes:       f.Notes,
	}
}

// Input returns the fixture as an application.PrescriptionInput.
func (f PrescriptionFixture) Input() application.PrescriptionInput {
	return application.PrescriptionInput{
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		DoctorID:    f.DoctorID,
		DoctorName:  f.DoctorName,
		Date:        f.Date,
		Medications: append([]records.Medication(nil), f.Medications...),
		Notes:       f.Notes,
	}
}

// ------------------------- Registration fixtures -------------------------

// NewRegisterInput returns a deterministic registration input whose email is
// unique within the process.
func NewRegisterInput(role records.Role) application.RegisterInput {
	idx := atomic.AddUint64(&registerCounter, 1)
	input := application.RegisterInput{
		Email:    fmt.Sprintf("fixture-%d@medical.com", idx),
		Password: "secret123",
		Name:     fmt.Sprintf("Fixture User %d", idx),
		Role:     role,
	}
	switch role {
	case records.RoleDoctor:
		input.Specialization = "General Medicine"
	case records.RolePatient:
		input.Age = 30
	case records.RolePharmacist:
		input.PharmacyName = "Fixture Pharmacy"
	}
	return input
}

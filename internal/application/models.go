package application

import "github.com/example/clinic-portal/internal/records"

// Actor identifies the authenticated caller of a scoped operation. The id is
// already numerically normalized; see ParseActorID for text coercion.
type Actor struct {
	ID   int
	Role records.Role
}

// Session is the authenticated identity handed back by the auth gate: the
// user with the credential blanked plus an opaque token.
type Session struct {
	User  records.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterInput captures caller provided registration attributes. Role
// specific fields are optional and kept only for the matching role.
type RegisterInput struct {
	Email          string       `json:"email" validate:"required,email"`
	Password       string       `json:"password" validate:"required,min=6"`
	Name           string       `json:"name" validate:"required"`
	Role           records.Role `json:"role" validate:"required,oneof=admin doctor patient pharmacist"`
	Specialization string       `json:"specialization"`
	Age            int          `json:"age" validate:"gte=0"`
	PharmacyName   string       `json:"pharmacyName"`
}

// AppointmentInput captures caller provided appointment fields. The patient
// and doctor names are denormalized copies fixed at creation; status is not
// accepted here, every new appointment starts pending.
type AppointmentInput struct {
	PatientID   int    `json:"patientId" validate:"required,gt=0"`
	PatientName string `json:"patientName" validate:"required"`
	DoctorID    int    `json:"doctorId" validate:"required,gt=0"`
	DoctorName  string `json:"doctorName" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
	Type        string `json:"type"`
	Notes       string `json:"notes"`
}

// AppointmentPatch holds the fields an update may replace. Nil fields are
// preserved on the stored record (shallow merge).
type AppointmentPatch struct {
	PatientID   *int                       `json:"patientId"`
	PatientName *string                    `json:"patientName"`
	DoctorID    *int                       `json:"doctorId"`
	DoctorName  *string                    `json:"doctorName"`
	Date        *string                    `json:"date"`
	Time        *string                    `json:"time"`
	Status      *records.AppointmentStatus `json:"status"`
	Type        *string                    `json:"type"`
	Notes       *string                    `json:"notes"`
}

// PrescriptionInput captures caller provided prescription fields.
type PrescriptionInput struct {
	PatientID   int                  `json:"patientId" validate:"required,gt=0"`
	PatientName string               `json:"patientName" validate:"required"`
	DoctorID    int                  `json:"doctorId" validate:"required,gt=0"`
	DoctorName  string               `json:"doctorName" validate:"required"`
	Date        string               `json:"date" validate:"required,datetime=2006-01-02"`
	Medications []records.Medication `json:"medications" validate:"required,min=1,dive"`
	Notes       string               `json:"notes"`
}

// PrescriptionPatch holds the fields an update may replace. Nil fields are
// preserved on the stored record.
type PrescriptionPatch struct {
	PatientID   *int                        `json:"patientId"`
	PatientName *string                     `json:"patientName"`
	DoctorID    *int                        `json:"doctorId"`
	DoctorName  *string                     `json:"doctorName"`
	Date        *string                     `json:"date"`
	Medications []records.Medication        `json:"medications"`
	Status      *records.PrescriptionStatus `json:"status"`
	Notes       *string                     `json:"notes"`
}

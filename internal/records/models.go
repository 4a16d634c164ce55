package records

// DateLayout is the calendar-date format used by every dated field. Dates are
// stored as plain strings so the persisted JSON layout round-trips verbatim.
const DateLayout = "2006-01-02"

// Role identifies which dashboard and data slice a user is entitled to.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
)

// Valid reports whether the role belongs to the closed set of known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient, RolePharmacist:
		return true
	}
	return false
}

// AppointmentStatus enumerates the appointment lifecycle states.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// PrescriptionStatus enumerates the prescription lifecycle states.
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionCompleted PrescriptionStatus = "completed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s PrescriptionStatus) Valid() bool {
	switch s {
	case PrescriptionPending, PrescriptionCompleted, PrescriptionCancelled:
		return true
	}
	return false
}

// OrderStatus enumerates the pharmacy order lifecycle states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderCompleted
}

// User is an account that can sign in to the portal. Role-specific fields
// (Specialization, Age, PharmacyName) are populated only for the matching
// role and omitted from JSON otherwise.
type User struct {
	ID             int    `json:"id"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Role           Role   `json:"role"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Age            int    `json:"age,omitempty"`
	PharmacyName   string `json:"pharmacyName,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// WithoutPassword returns a copy of the user with the credential blanked,
// suitable for handing to callers and for the persisted session state.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// Doctor is read-only reference data describing a bookable practitioner.
type Doctor struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	AvailableSlots []string `json:"availableSlots"`
}

// Appointment links a patient to a doctor at a date and slot. PatientName and
// DoctorName are denormalized copies fixed at creation time and are not
// re-synced if the source record changes.
type Appointment struct {
	ID          int               `json:"id"`
	PatientID   int               `json:"patientId"`
	PatientName string            `json:"patientName"`
	DoctorID    int               `json:"doctorId"`
	DoctorName  string            `json:"doctorName"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	Type        string            `json:"type"`
	Notes       string            `json:"notes"`
}

// Medication is a single prescribed line item.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Prescription is an issued set of medications. Name fields are denormalized
// the same way as on Appointment.
type Prescription struct {
	ID          int                `json:"id"`
	PatientID   int                `json:"patientId"`
	PatientName string             `json:"patientName"`
	DoctorID    int                `json:"doctorId"`
	DoctorName  string             `json:"doctorName"`
	Date        string             `json:"date"`
	Medications []Medication       `json:"medications"`
	Status      PrescriptionStatus `json:"status"`
	Notes       string             `json:"notes"`
}

// Patient is read-only reference data about a registered patient.
type Patient struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	MedicalHistory []string `json:"medicalHistory"`
	LastVisit      string   `json:"lastVisit"`
}

// OrderItem is a dispensed medication line on a pharmacy order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PharmacyOrder is a fulfillment request derived from a prescription. The
// PrescriptionID is a weak reference: a dangling id is tolerated, not an
// error.
type PharmacyOrder struct {
	ID             int         `json:"id"`
	PrescriptionID int         `json:"prescriptionId"`
	PatientName    string      `json:"patientName"`
	Medications    []OrderItem `json:"medications"`
	Status         OrderStatus `json:"status"`
	OrderDate      string      `json:"orderDate"`
	TotalAmount    float64     `json:"totalAmount"`
}

// Clone returns a deep copy of the doctor.
func (d Doctor) Clone() Doctor {
	d.AvailableSlots = append([]string(nil), d.AvailableSlots...)
	return d
}

// Clone returns a deep copy of the prescription.
func (p Prescription) Clone() Prescription {
	p.Medications = append([]Medication(nil), p.Medications...)
	return p
}

// Clone returns a deep copy of the patient.
func (p Patient) Clone() Patient {
	p.MedicalHistory = append([]string(nil), p.MedicalHistory...)
	return p
}

// Clone returns a deep copy of the order.
func (o PharmacyOrder) Clone() PharmacyOrder {
	o.Medications = append([]OrderItem(nil), o.Medications...)
	return o
}

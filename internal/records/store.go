package records

import "sync"

// Store holds one in-memory collection per entity type together with an
// explicit monotonically increasing id counter per collection. Ids are never
// derived from collection length, so removing or reloading records can never
// cause id reuse.
//
// The store is the only sanctioned owner of this state; callers receive
// copies and mutate exclusively through Add/Replace operations, each of which
// is all-or-nothing.
type Store struct {
	mu sync.Mutex

	users         []User
	doctors       []Doctor
	appointments  []Appointment
	prescriptions []Prescription
	patients      []Patient
	orders        []PharmacyOrder

	lastUserID         int
	lastAppointmentID  int
	lastPrescriptionID int
	lastOrderID        int
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Users returns a copy of the user collection.
func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.users...)
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// AddUser appends a user. A zero id is replaced with the next counter value;
// a caller-supplied id (records restored from persisted state keep theirs)
// advances the counter past it.
func (s *Store) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		s.lastUserID++
		u.ID = s.lastUserID
	} else if u.ID > s.lastUserID {
		s.lastUserID = u.ID
	}
	s.users = append(s.users, u)
	return u
}

// Doctors returns a copy of the doctor collection.
func (s *Store) Doctors() []Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d.Clone())
	}
	return out
}

// DoctorByID returns the doctor with the given id.
func (s *Store) DoctorByID(id int) (Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.doctors {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return Doctor{}, ErrNotFound
}

// SetDoctors replaces the doctor reference data.
func (s *Store) SetDoctors(doctors []Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors = make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		s.doctors = append(s.doctors, d.Clone())
	}
}

// Appointments returns a copy of the appointment collection in insertion
// order.
func (s *Store) Appointments() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Appointment(nil), s.appointments...)
}

// AppointmentByID returns the appointment with the given id.
func (s *Store) AppointmentByID(id int) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

// AddAppointment appends an appointment, assigning the next counter id when
// the record carries none.
func (s *Store) AddAppointment(a Appointment) Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		s.lastAppointmentID++
		a.ID = s.lastAppointmentID
	} else if a.ID > s.lastAppointmentID {
		s.lastAppointmentID = a.ID
	}
	s.appointments = append(s.appointments, a)
	return a
}

// ReplaceAppointment swaps the stored record with the same id for the given
// one. The collection is untouched when the id is unknown.
func (s *Store) ReplaceAppointment(a Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = a
			return nil
		}
	}
	return ErrNotFound
}

// SetAppointments replaces the appointment collection, resetting the counter
// to the highest id present.
func (s *Store) SetAppointments(appointments []Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append([]Appointment(nil), appointments...)
	s.lastAppointmentID = 0
	for _, a := range s.appointments {
		if a.ID > s.lastAppointmentID {
			s.lastAppointmentID = a.ID
		}
	}
}

// Prescriptions returns a copy of the prescription collection in insertion
// order.
func (s *Store) Prescriptions() []Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Prescription, 0, len(s.prescriptions))
	for _, p := range s.prescriptions {
		out = append(out, p.Clone())
	}
	return out
}

// PrescriptionByID returns the prescription with the given id.
func (s *Store) PrescriptionByID(id int) (Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prescriptions {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Prescription{}, ErrNotFound
}

// AddPrescription appends a prescription, assigning the next counter id when
// the record carries none.
func (s *Store) AddPrescription(p Prescription) Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.lastPrescriptionID++
		p.ID = s.lastPrescriptionID
	} else if p.ID > s.lastPrescriptionID {
		s.lastPrescriptionID = p.ID
	}
	s.prescriptions = append(s.prescriptions, p.Clone())
	return p
}

// ReplacePrescription swaps the stored record with the same id for the given
// one. The collection is untouched when the id is unknown.
func (s *Store) ReplacePrescription(p Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.prescriptions {
		if s.prescriptions[i].ID == p.ID {
			s.prescriptions[i] = p.Clone()
			return nil
		}
	}
	return ErrNotFound
}

// SetPrescriptions replaces the prescription collection, resetting the
// counter to the highest id present.
func (s *Store) SetPrescriptions(prescriptions []Prescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prescriptions = make([]Prescription, 0, len(prescriptions))
	s.lastPrescriptionID = 0
	for _, p := range prescriptions {
		s.prescriptions = append(s.prescriptions, p.Clone())
		if p.ID > s.lastPrescriptionID {
			s.lastPrescriptionID = p.ID
		}
	}
}

// Patients returns a copy of the patient collection.
func (s *Store) Patients() []Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p.Clone())
	}
	return out
}

// PatientByID returns the patient with the given id.
func (s *Store) PatientByID(id int) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Patient{}, ErrNotFound
}

// SetPatients replaces the patient reference data.
func (s *Store) SetPatients(patients []Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = make([]Patient, 0, len(patients))
	for _, p := range patients {
		s.patients = append(s.patients, p.Clone())
	}
}

// PharmacyOrders returns a copy of the order collection in insertion order.
func (s *Store) PharmacyOrders() []PharmacyOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PharmacyOrder, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// PharmacyOrderByID returns the order with the given id.
func (s *Store) PharmacyOrderByID(id int) (PharmacyOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return PharmacyOrder{}, ErrNotFound
}

// AddPharmacyOrder appends an order, assigning the next counter id when the
// record carries none.
func (s *Store) AddPharmacyOrder(o PharmacyOrder) PharmacyOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		s.lastOrderID++
		o.ID = s.lastOrderID
	} else if o.ID > s.lastOrderID {
		s.lastOrderID = o.ID
	}
	s.orders = append(s.orders, o.Clone())
	return o
}

// ReplacePharmacyOrder swaps the stored record with the same id for the given
// one. The collection is untouched when the id is unknown.
func (s *Store) ReplacePharmacyOrder(o PharmacyOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o.Clone()
			return nil
		}
	}
	return ErrNotFound
}

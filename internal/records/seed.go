package records

import "time"

// NewSeededStore constructs a store pre-populated with the fixed demo data
// set. Dated records are laid out around the supplied clock so "today",
// "tomorrow" and "yesterday" stay meaningful regardless of when the process
// starts. A nil now falls back to time.Now.
func NewSeededStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	today := now().Format(DateLayout)
	tomorrow := now().AddDate(0, 0, 1).Format(DateLayout)
	yesterday := now().AddDate(0, 0, -1).Format(DateLayout)

	s := NewStore()

	for _, u := range []User{
		{ID: 1, Email: "admin@medical.com", Password: "admin123", Role: RoleAdmin, Name: "Admin User", Avatar: "A"},
		{ID: 2, Email: "doctor@medical.com", Password: "doctor123", Role: RoleDoctor, Name: "Dr. Sarah Johnson", Specialization: "Cardiologist", Avatar: "SJ"},
		{ID: 3, Email: "patient@medical.com", Password: "patient123", Role: RolePatient, Name: "John Doe", Age: 35, Avatar: "JD"},
		{ID: 4, Email: "pharmacist@medical.com", Password: "pharmacist123", Role: RolePharmacist, Name: "Emily Chen", PharmacyName: "City Pharmacy", Avatar: "EC"},
	} {
		s.AddUser(u)
	}

	s.SetDoctors([]Doctor{
		{ID: 1, Name: "Dr. Sarah Johnson", Specialization: "Cardiologist", Experience: 10, Rating: 4.8, AvailableSlots: []string{"09:00", "10:00", "11:00", "14:00", "15:00"}},
		{ID: 2, Name: "Dr. Michael Brown", Specialization: "Dermatologist", Experience: 8, Rating: 4.6, AvailableSlots: []string{"09:00", "10:00", "14:00", "15:00", "16:00"}},
		{ID: 3, Name: "Dr. Lisa Anderson", Specialization: "Pediatrician", Experience: 12, Rating: 4.9, AvailableSlots: []string{"09:00", "10:00", "11:00", "12:00", "14:00"}},
		{ID: 4, Name: "Dr. Robert Wilson", Specialization: "Neurologist", Experience: 15, Rating: 4.7, AvailableSlots: []string{"10:00", "11:00", "14:00", "15:00", "16:00"}},
	})

	s.SetAppointments([]Appointment{
		{ID: 1, PatientID: 3, PatientName: "John Doe", DoctorID: 1, DoctorName: "Dr. Sarah Johnson", Date: today, Time: "10:00", Status: AppointmentConfirmed, Type: "consultation", Notes: "Regular checkup"},
		{ID: 2, PatientID: 3, PatientName: "John Doe", DoctorID: 2, DoctorName: "Dr. Michael Brown", Date: tomorrow, Time: "14:00", Status: AppointmentPending, Type: "consultation"},
		{ID: 3, PatientID: 5, PatientName: "Jane Smith", DoctorID: 1, DoctorName: "Dr. Sarah Johnson", Date: today, Time: "11:00", Status: AppointmentConfirmed, Type: "consultation", Notes: "Follow-up appointment"},
		{ID: 4, PatientID: 3, PatientName: "John Doe", DoctorID: 1, DoctorName: "Dr. Sarah Johnson", Date: yesterday, Time: "15:00", Status: AppointmentCompleted, Type: "consultation", Notes: "Previous visit"},
	})

	s.SetPrescriptions([]Prescription{
		{
			ID: 1, PatientID: 3, PatientName: "John Doe", DoctorID: 1, DoctorName: "Dr. Sarah Johnson", Date: yesterday,
			Medications: []Medication{
				{Name: "Aspirin", Dosage: "100mg", Frequency: "Once daily", Duration: "7 days"},
				{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily", Duration: "30 days"},
			},
			Status: PrescriptionPending, Notes: "Take with food",
		},
		{
			ID: 2, PatientID: 3, PatientName: "John Doe", DoctorID: 2, DoctorName: "Dr. Michael Brown", Date: yesterday,
			Medications: []Medication{
				{Name: "Cetirizine", Dosage: "10mg", Frequency: "Once daily", Duration: "5 days"},
			},
			Status: PrescriptionCompleted, Notes: "For allergy relief",
		},
		{
			ID: 3, PatientID: 5, PatientName: "Jane Smith", DoctorID: 1, DoctorName: "Dr. Sarah Johnson", Date: yesterday,
			Medications: []Medication{
				{Name: "Ibuprofen", Dosage: "200mg", Frequency: "Twice daily", Duration: "5 days"},
			},
			Status: PrescriptionPending, Notes: "Take after meals",
		},
	})

	s.SetPatients([]Patient{
		{ID: 3, Name: "John Doe", Age: 35, Gender: "Male", Email: "patient@medical.com", Phone: "+1234567890", MedicalHistory: []string{"Hypertension", "Type 2 Diabetes"}, LastVisit: yesterday},
		{ID: 5, Name: "Jane Smith", Age: 28, Gender: "Female", Email: "jane@example.com", Phone: "+1234567891", MedicalHistory: []string{"Asthma"}, LastVisit: yesterday},
	})

	for _, o := range []PharmacyOrder{
		{ID: 1, PrescriptionID: 1, PatientName: "John Doe", Medications: []OrderItem{{Name: "Aspirin", Quantity: 7}, {Name: "Metformin", Quantity: 60}}, Status: OrderPending, OrderDate: yesterday, TotalAmount: 45.99},
		{ID: 2, PrescriptionID: 2, PatientName: "John Doe", Medications: []OrderItem{{Name: "Cetirizine", Quantity: 5}}, Status: OrderCompleted, OrderDate: yesterday, TotalAmount: 12.50},
		{ID: 3, PrescriptionID: 3, PatientName: "Jane Smith", Medications: []OrderItem{{Name: "Ibuprofen", Quantity: 10}}, Status: OrderPending, OrderDate: today, TotalAmount: 8.99},
	} {
		s.AddPharmacyOrder(o)
	}

	return s
}

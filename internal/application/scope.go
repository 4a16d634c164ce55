package application

import (
	"strconv"
	"strings"

	"github.com/example/clinic-portal/internal/records"
)

// ParseActorID coerces a textual actor id to its numeric form so "3" and 3
// identify the same actor.
func ParseActorID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, ErrInvalidActorID
	}
	return id, nil
}

// ScopeAppointments narrows a collection to the records the actor may see:
// doctors see their own appointments, patients theirs. Any other role sees
// the full collection. The input is never mutated and relative order is
// preserved.
func ScopeAppointments(appointments []records.Appointment, actor Actor) []records.Appointment {
	switch actor.Role {
	case records.RoleDoctor:
		out := make([]records.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.DoctorID == actor.ID {
				out = append(out, a)
			}
		}
		return out
	case records.RolePatient:
		out := make([]records.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.PatientID == actor.ID {
				out = append(out, a)
			}
		}
		return out
	}
	return append([]records.Appointment(nil), appointments...)
}

// ScopePrescriptions narrows a collection the same way ScopeAppointments
// does, matching on the prescription's doctor or patient id.
func ScopePrescriptions(prescriptions []records.Prescription, actor Actor) []records.Prescription {
	switch actor.Role {
	case records.RoleDoctor:
		out := make([]records.Prescription, 0, len(prescriptions))
		for _, p := range prescriptions {
			if p.DoctorID == actor.ID {
				out = append(out, p)
			}
		}
		return out
	case records.RolePatient:
		out := make([]records.Prescription, 0, len(prescriptions))
		for _, p := range prescriptions {
			if p.PatientID == actor.ID {
				out = append(out, p)
			}
		}
		return out
	}
	return append([]records.Prescription(nil), prescriptions...)
}

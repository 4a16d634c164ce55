package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/clinic-portal/internal/records"
)

// Stats is the closed variant of role-specific dashboard figures. Exactly
// one concrete type exists per role, so consumers can switch exhaustively
// instead of duck-typing on field names.
type Stats interface {
	StatsRole() records.Role
}

// AdminStats carries global counts over every collection.
type AdminStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalAppointments  int `json:"totalAppointments"`
	TotalPrescriptions int `json:"totalPrescriptions"`
	PendingOrders      int `json:"pendingOrders"`
}

// StatsRole implements Stats.
func (AdminStats) StatsRole() records.Role { return records.RoleAdmin }

// DoctorStats carries counts scoped to a single doctor.
type DoctorStats struct {
	TotalAppointments     int `json:"totalAppointments"`
	TodayAppointments     int `json:"todayAppointments"`
	TotalPrescriptions    int `json:"totalPrescriptions"`
	ConfirmedAppointments int `json:"confirmedAppointments"`
}

// StatsRole implements Stats.
func (DoctorStats) StatsRole() records.Role { return records.RoleDoctor }

// PatientStats carries counts scoped to a single patient. Upcoming counts
// both confirmed and pending appointments.
type PatientStats struct {
	TotalAppointments     int `json:"totalAppointments"`
	UpcomingAppointments  int `json:"upcomingAppointments"`
	TotalPrescriptions    int `json:"totalPrescriptions"`
	CompletedAppointments int `json:"completedAppointments"`
}

// StatsRole implements Stats.
func (PatientStats) StatsRole() records.Role { return records.RolePatient }

// PharmacistStats carries global order counts; revenue sums the totalAmount
// of completed orders only.
type PharmacistStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// StatsRole implements Stats.
func (PharmacistStats) StatsRole() records.Role { return records.RolePharmacist }

// StatsService recomputes dashboard statistics from the live store on every
// call. It keeps no state of its own, which makes the figures trivially
// consistent with the collections at call time.
type StatsService struct {
	store  *records.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewStatsService wires dependencies for the stats service. A nil now falls
// back to time.Now.
func NewStatsService(store *records.Store, now func() time.Time, logger *slog.Logger) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{store: store, now: now, logger: defaultLogger(logger)}
}

// DashboardStats computes the stats variant for the actor's role.
func (s *StatsService) DashboardStats(ctx context.Context, actor Actor) (result Stats, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("stats store not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "StatsService", "DashboardStats", "actor_id", actor.ID, "role", actor.Role)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "stats computation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "stats computed")
	}()

	switch actor.Role {
	case records.RoleAdmin:
		result = s.adminStats()
	case records.RoleDoctor:
		result = s.doctorStats(actor.ID)
	case records.RolePatient:
		result = s.patientStats(actor.ID)
	case records.RolePharmacist:
		result = s.pharmacistStats()
	default:
		err = ErrInvalidRole
	}
	return
}

func (s *StatsService) adminStats() AdminStats {
	pending := 0
	for _, o := range s.store.PharmacyOrders() {
		if o.Status == records.OrderPending {
			pending++
		}
	}
	return AdminStats{
		TotalUsers:         len(s.store.Users()),
		TotalAppointments:  len(s.store.Appointments()),
		TotalPrescriptions: len(s.store.Prescriptions()),
		PendingOrders:      pending,
	}
}

func (s *StatsService) doctorStats(doctorID int) DoctorStats {
	actor := Actor{ID: doctorID, Role: records.RoleDoctor}
	appointments := ScopeAppointments(s.store.Appointments(), actor)
	prescriptions := ScopePrescriptions(s.store.Prescriptions(), actor)

	today := s.now().Format(records.DateLayout)
	stats := DoctorStats{
		TotalAppointments:  len(appointments),
		TotalPrescriptions: len(prescriptions),
	}
	for _, a := range appointments {
		if a.Date == today {
			stats.TodayAppointments++
		}
		if a.Status == records.AppointmentConfirmed {
			stats.ConfirmedAppointments++
		}
	}
	return stats
}

func (s *StatsService) patientStats(patientID int) PatientStats {
	actor := Actor{ID: patientID, Role: records.RolePatient}
	appointments := ScopeAppointments(s.store.Appointments(), actor)
	prescriptions := ScopePrescriptions(s.store.Prescriptions(), actor)

	stats := PatientStats{
		TotalAppointments:  len(appointments),
		TotalPrescriptions: len(prescriptions),
	}
	for _, a := range appointments {
		switch a.Status {
		case records.AppointmentConfirmed, records.AppointmentPending:
			stats.UpcomingAppointments++
		case records.AppointmentCompleted:
			stats.CompletedAppointments++
		}
	}
	return stats
}

func (s *StatsService) pharmacistStats() PharmacistStats {
	stats := PharmacistStats{}
	for _, o := range s.store.PharmacyOrders() {
		stats.TotalOrders++
		switch o.Status {
		case records.OrderPending:
			stats.PendingOrders++
		case records.OrderCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats
}

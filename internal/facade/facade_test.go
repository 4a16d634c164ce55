package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/example/clinic-portal/internal/application"
	"github.com/example/clinic-portal/internal/records"
	"github.com/example/clinic-portal/internal/storage"
)

func testNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

type fixture struct {
	facade *Facade
	store  *records.Store
	state  *storage.MemoryStore
}

func newFixture(transition application.AppointmentTransitionValidator) fixture {
	store := records.NewSeededStore(testNow)
	state := storage.NewMemoryStore()
	services := Services{
		Auth:          application.NewAuthService(store, state, nil, func() string { return "token-1" }, nil),
		Directory:     application.NewDirectoryService(store, nil),
		Appointments:  application.NewAppointmentService(store, transition, nil),
		Prescriptions: application.NewPrescriptionService(store, nil, nil),
		Pharmacy:      application.NewPharmacyService(store, nil, nil),
		Stats:         application.NewStatsService(store, testNow, nil),
		Preferences:   application.NewPreferenceService(state, nil),
	}
	return fixture{facade: New(services, 0, nil), store: store, state: state}
}

func TestFacade_EnvelopeContract(t *testing.T) {
	t.Parallel()

	t.Run("success carries data and no error", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.Login(context.Background(), "patient@medical.com", "patient123")
		if !res.Success || res.Error != "" {
			t.Fatalf("unexpected envelope %+v", res)
		}
		if res.Data.Token != "token-1" || res.Data.User.ID != 3 {
			t.Fatalf("unexpected payload %+v", res.Data)
		}
	})

	t.Run("failure carries a message and no data", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.Login(context.Background(), "patient@medical.com", "wrong")
		if res.Success {
			t.Fatal("expected failure envelope")
		}
		if res.Error != "Invalid credentials" {
			t.Fatalf("unexpected message %q", res.Error)
		}
		if res.Data.Token != "" || res.Data.User.ID != 0 {
			t.Fatalf("expected zero payload, got %+v", res.Data)
		}
	})

	t.Run("failed list envelopes omit the data key", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.Appointments(context.Background(), Identity{ID: "abc", Role: "patient"})
		raw, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if _, present := decoded["data"]; present {
			t.Fatalf("expected data to be absent, got %s", raw)
		}
		if decoded["success"] != false || decoded["error"] != "Invalid user id" {
			t.Fatalf("unexpected envelope %s", raw)
		}
	})
}

func TestFacade_ActorCoercion(t *testing.T) {
	t.Parallel()

	t.Run("text actor ids match numeric record ids", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.Appointments(context.Background(), Identity{ID: "3", Role: "patient"})
		if !res.Success {
			t.Fatalf("expected success, got %q", res.Error)
		}
		ids := make([]int, 0, len(res.Data))
		for _, a := range res.Data {
			ids = append(ids, a.ID)
		}
		want := []int{1, 2, 4}
		if len(ids) != len(want) {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected ids %v, got %v", want, ids)
			}
		}
	})

	t.Run("uncoercible actor ids fail validation", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.Prescriptions(context.Background(), Identity{ID: "", Role: "doctor"})
		if res.Success || res.Error != "Invalid user id" {
			t.Fatalf("unexpected envelope %+v", res)
		}
	})
}

func TestFacade_Appointments(t *testing.T) {
	t.Parallel()

	t.Run("create assigns the next id and pending status", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.CreateAppointment(context.Background(), application.AppointmentInput{
			PatientID: 3, PatientName: "John Doe", DoctorID: 2, DoctorName: "Dr. Michael Brown",
			Date: "2024-03-20", Time: "09:00", Type: "consultation",
		})
		if !res.Success {
			t.Fatalf("expected success, got %q", res.Error)
		}
		if res.Data.ID != 5 || res.Data.Status != records.AppointmentPending {
			t.Fatalf("unexpected appointment %+v", res.Data)
		}
	})

	t.Run("validation failures list the offending fields", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.CreateAppointment(context.Background(), application.AppointmentInput{})
		if res.Success {
			t.Fatal("expected failure envelope")
		}
		for _, field := range []string{"patientId", "doctorId", "date"} {
			if !strings.Contains(res.Error, field) {
				t.Fatalf("expected %q in message %q", field, res.Error)
			}
		}
	})

	t.Run("unknown ids surface the entity message", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		if res := fx.facade.Appointment(context.Background(), 99); res.Success || res.Error != "Appointment not found" {
			t.Fatalf("unexpected envelope %+v", res)
		}
		if res := fx.facade.PharmacyOrder(context.Background(), 99); res.Success || res.Error != "Order not found" {
			t.Fatalf("unexpected envelope %+v", res)
		}
		notes := "updated"
		if res := fx.facade.UpdatePrescription(context.Background(), 99, application.PrescriptionPatch{Notes: &notes}); res.Success || res.Error != "Prescription not found" {
			t.Fatalf("unexpected envelope %+v", res)
		}
	})
}

func TestFacade_PanicRecovery(t *testing.T) {
	t.Parallel()

	fx := newFixture(func(from, to records.AppointmentStatus) error {
		panic(fmt.Sprintf("validator exploded on %s -> %s", from, to))
	})

	status := records.AppointmentConfirmed
	res := fx.facade.UpdateAppointment(context.Background(), 2, application.AppointmentPatch{Status: &status})
	if res.Success {
		t.Fatal("expected failure envelope after panic")
	}
	if res.Error != msgTransientFailure {
		t.Fatalf("unexpected message %q", res.Error)
	}

	if got := fx.facade.Appointment(context.Background(), 2); !got.Success || got.Data.Status != records.AppointmentPending {
		t.Fatalf("expected the record untouched after panic, got %+v", got)
	}
}

func TestFacade_SimulatedLatency(t *testing.T) {
	t.Parallel()

	fx := newFixture(nil)
	fx.facade.latency = 150 * time.Millisecond
	var slept []time.Duration
	fx.facade.sleep = func(d time.Duration) { slept = append(slept, d) }

	if res := fx.facade.Doctors(context.Background()); !res.Success {
		t.Fatalf("Doctors failed: %q", res.Error)
	}
	if len(slept) != 1 || slept[0] != 150*time.Millisecond {
		t.Fatalf("expected one 150ms pause, got %v", slept)
	}
}

func TestFacade_DashboardStats(t *testing.T) {
	t.Parallel()

	t.Run("pharmacist totals", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.DashboardStats(context.Background(), Identity{ID: "4", Role: "pharmacist"})
		if !res.Success {
			t.Fatalf("expected success, got %q", res.Error)
		}
		stats, ok := res.Data.(application.PharmacistStats)
		if !ok {
			t.Fatalf("expected PharmacistStats, got %T", res.Data)
		}
		if stats.TotalOrders != 3 || stats.PendingOrders != 2 || stats.CompletedOrders != 1 || stats.TotalRevenue != 12.50 {
			t.Fatalf("unexpected stats %+v", stats)
		}
	})

	t.Run("unknown roles are rejected", func(t *testing.T) {
		t.Parallel()

		fx := newFixture(nil)
		res := fx.facade.DashboardStats(context.Background(), Identity{ID: "1", Role: "nurse"})
		if res.Success || res.Error != "Invalid role" {
			t.Fatalf("unexpected envelope %+v", res)
		}
	})
}

func TestFacade_Sessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newFixture(nil)

	if res := fx.facade.CurrentSession(ctx); res.Success {
		t.Fatal("expected no session before login")
	}

	if res := fx.facade.Login(ctx, "doctor@medical.com", "doctor123"); !res.Success {
		t.Fatalf("Login failed: %q", res.Error)
	}
	if res := fx.facade.CurrentSession(ctx); !res.Success || res.Data.User.ID != 2 {
		t.Fatalf("unexpected session envelope %+v", res)
	}

	if res := fx.facade.Logout(ctx); !res.Success || !res.Data {
		t.Fatalf("Logout failed: %+v", res)
	}
	if res := fx.facade.CurrentSession(ctx); res.Success {
		t.Fatal("expected no session after logout")
	}
}

func TestFacade_DarkMode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newFixture(nil)

	if res := fx.facade.DarkMode(ctx); !res.Success || res.Data {
		t.Fatalf("expected dark mode off, got %+v", res)
	}
	if res := fx.facade.ToggleDarkMode(ctx); !res.Success || !res.Data {
		t.Fatalf("expected toggle on, got %+v", res)
	}
	if res := fx.facade.SetDarkMode(ctx, false); !res.Success || res.Data {
		t.Fatalf("expected set off, got %+v", res)
	}
	if res := fx.facade.DarkMode(ctx); !res.Success || res.Data {
		t.Fatalf("expected dark mode off again, got %+v", res)
	}
}

func TestFacade_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newFixture(nil)

	res := fx.facade.Register(ctx, application.RegisterInput{
		Email: "new@medical.com", Password: "secret123", Name: "New Person", Role: records.RolePatient, Age: 30,
	})
	if !res.Success || res.Data.User.ID != 5 {
		t.Fatalf("unexpected envelope %+v", res)
	}

	dup := fx.facade.Register(ctx, application.RegisterInput{
		Email: "new@medical.com", Password: "secret123", Name: "Other Person", Role: records.RolePatient,
	})
	if dup.Success || dup.Error != "Email already registered" {
		t.Fatalf("unexpected envelope %+v", dup)
	}
}

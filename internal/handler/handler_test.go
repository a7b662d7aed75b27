package handler_test

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"vehicle-service-scheduler/internal/auth"
	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/handler"
	"vehicle-service-scheduler/internal/kv"
	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/middleware"
	"vehicle-service-scheduler/internal/rpc"
	"vehicle-service-scheduler/internal/schedule"
	"vehicle-service-scheduler/internal/session"
	"vehicle-service-scheduler/internal/store"
	"vehicle-service-scheduler/internal/views"
)

const secret = "handler-test-secret"

var now = time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

type env struct {
	client   *rpc.Client
	sessions *session.Store
	appts    *store.Appointments
}

// failingKV rejects writes.
type failingKV struct{ kv.Store }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func setup(t *testing.T, backend kv.Store) *env {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemory()
	}
	logger := logging.NewWithWriter(io.Discard, "debug")

	creds, err := auth.NewCredentials(catalog.Credentials())
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	sessions := session.New(creds, session.NewPersister(backend), logger, nil)
	sessions.Restore(context.Background())

	garage := store.NewGarage(catalog.StarterVehicles())
	appts := store.NewAppointments()
	sessions.OnLogout(appts.Reset)

	clock := func() time.Time { return now }
	h := handler.New(handler.Deps{
		Sessions: sessions,
		Garage:   garage,
		Appts:    appts,
		Schedule: schedule.NewService(garage, appts, schedule.Options{Location: time.UTC, Now: clock, Logger: logger}),
		Detail:   views.NewDetail(appts, logger, nil),
		Location: time.UTC,
		Now:      clock,
		Secret:   secret,
		Logger:   logger,
	})

	rl := middleware.NewRateLimiter(1000, 1000)
	srv := handler.NewServer(h, rl)
	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
		rl.Stop()
	})
	return &env{client: rpc.NewClient(conn), sessions: sessions, appts: appts}
}

func login(t *testing.T, e *env, email, password string) context.Context {
	t.Helper()
	resp, err := e.client.Login(context.Background(), &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+resp.Token)
}

func expectCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

func book(t *testing.T, e *env, ctx context.Context, day int, hour string) *rpc.Appointment {
	t.Helper()
	resp, err := e.client.BookAppointment(ctx, &rpc.BookAppointmentRequest{VehicleID: "1", ServiceID: "ext", Day: day, Hour: hour})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return resp.Appointment
}

// ----- session -----

func TestLoginAndGating(t *testing.T) {
	e := setup(t, nil)
	bg := context.Background()

	_, err := e.client.ListVehicles(bg, &rpc.Empty{})
	expectCode(t, err, codes.Unauthenticated)
	if !strings.Contains(status.Convert(err).Message(), "/login") {
		t.Errorf("expected redirect to /login, got %q", status.Convert(err).Message())
	}

	_, err = e.client.Login(bg, &rpc.LoginRequest{Email: "admin@gmail.com", Password: "nope"})
	expectCode(t, err, codes.Unauthenticated)
	_, err = e.client.Login(bg, &rpc.LoginRequest{Email: "admin@gmail.com"})
	expectCode(t, err, codes.Unauthenticated)
	_, err = e.client.Login(bg, &rpc.LoginRequest{Password: "12345"})
	expectCode(t, err, codes.Unauthenticated)

	resp, err := e.client.Login(bg, &rpc.LoginRequest{Email: " ADMIN@gmail.com", Password: "12345"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != "admin" || resp.Email != "admin@gmail.com" || resp.Route != "/" || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	_, err = e.client.Login(bg, &rpc.LoginRequest{Email: "cliente@gmail.com", Password: "67890"})
	expectCode(t, err, codes.PermissionDenied)

	ctx := metadata.AppendToOutgoingContext(bg, "authorization", "Bearer "+resp.Token)
	prof, err := e.client.Profile(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.Email != "admin@gmail.com" || prof.Role != "admin" {
		t.Errorf("unexpected profile: %+v", prof)
	}

	_, err = e.client.Profile(bg, &rpc.Empty{})
	expectCode(t, err, codes.Unauthenticated)

	route, err := e.client.Logout(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if route.Path != "/login" {
		t.Errorf("logout route: %q", route.Path)
	}
	_, err = e.client.Profile(ctx, &rpc.Empty{})
	expectCode(t, err, codes.Unauthenticated)
}

func TestRegister(t *testing.T) {
	e := setup(t, nil)
	bg := context.Background()

	route, err := e.client.Register(bg, &rpc.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Phone: "5512345678", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if route.Path != "/login" {
		t.Errorf("expected /login, got %q", route.Path)
	}

	tests := []struct {
		name string
		req  *rpc.RegisterRequest
	}{
		{"short name", &rpc.RegisterRequest{Name: "A", Email: "ana@mail.com", Password: "secret1"}},
		{"bad email", &rpc.RegisterRequest{Name: "Ana", Email: "ana@", Password: "secret1"}},
		{"bad phone", &rpc.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Phone: "12", Password: "secret1"}},
		{"short password", &rpc.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.client.Register(bg, tt.req)
			expectCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestLoginStorageFailure(t *testing.T) {
	e := setup(t, failingKV{kv.NewMemory()})

	_, err := e.client.Login(context.Background(), &rpc.LoginRequest{Email: "admin@gmail.com", Password: "12345"})
	expectCode(t, err, codes.Unavailable)
	if _, ok := e.sessions.Current(); ok {
		t.Fatal("session must stay anonymous")
	}
}

func TestRestoredSession(t *testing.T) {
	backend := kv.NewMemory()
	if err := backend.Set(context.Background(), session.Key, []byte(`{"email":"cliente@gmail.com","role":"client"}`)); err != nil {
		t.Fatal(err)
	}
	e := setup(t, backend)
	bg := context.Background()

	// the restored session has no token yet
	_, err := e.client.Profile(bg, &rpc.Empty{})
	expectCode(t, err, codes.Unauthenticated)

	_, err = e.client.Login(bg, &rpc.LoginRequest{Email: "admin@gmail.com", Password: "12345"})
	expectCode(t, err, codes.PermissionDenied)
	_, err = e.client.Login(bg, &rpc.LoginRequest{Email: "cliente@gmail.com", Password: "wrong"})
	expectCode(t, err, codes.PermissionDenied)

	ctx := login(t, e, "cliente@gmail.com", "67890")
	prof, err := e.client.Profile(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.Role != "client" || prof.Email != "cliente@gmail.com" {
		t.Errorf("unexpected profile: %+v", prof)
	}

	if _, err := e.client.Logout(ctx, &rpc.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := e.sessions.Current(); ok {
		t.Fatal("expected anonymous after logout")
	}
	if raw, _ := backend.Get(bg, session.Key); raw != nil {
		t.Errorf("flag still stored: %s", raw)
	}
	login(t, e, "admin@gmail.com", "12345")
}

func TestLoginRenewsToken(t *testing.T) {
	e := setup(t, nil)
	first := login(t, e, "cliente@gmail.com", "67890")
	book(t, e, first, 15, "14:00")

	// a client that lost its token signs in again and keeps its data
	second := login(t, e, "cliente@gmail.com", "67890")
	list, err := e.client.ListAppointments(second, &rpc.ListAppointmentsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Groups) != 1 {
		t.Errorf("renewal must not reset appointments: %+v", list.Groups)
	}
}

// ----- vehicles -----

func TestVehicles(t *testing.T) {
	e := setup(t, nil)
	ctx := login(t, e, "cliente@gmail.com", "67890")

	list, err := e.client.ListVehicles(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Vehicles) != 2 {
		t.Fatalf("expected 2 starter vehicles, got %d", len(list.Vehicles))
	}

	list, err = e.client.SelectVehicle(ctx, &rpc.IDRequest{ID: "2"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for _, v := range list.Vehicles {
		if v.Selected != (v.ID == "2") {
			t.Errorf("vehicle %s selected=%v", v.ID, v.Selected)
		}
	}

	_, err = e.client.AddVehicle(ctx, &rpc.AddVehicleRequest{Name: "ab", Year: "2019", Plate: "XYZ1"})
	expectCode(t, err, codes.InvalidArgument)
	_, err = e.client.AddVehicle(ctx, &rpc.AddVehicleRequest{Name: "Civic", Year: "19", Plate: "XYZ1"})
	expectCode(t, err, codes.InvalidArgument)

	list, err = e.client.AddVehicle(ctx, &rpc.AddVehicleRequest{Name: "  civic ", Year: "2019", Plate: "abc-1234"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(list.Vehicles) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(list.Vehicles))
	}
	first := list.Vehicles[0]
	if first.Name != "CIVIC" || first.Plate != "1234" || first.Year != "2019" {
		t.Errorf("unexpected new vehicle: %+v", first)
	}
	for _, v := range list.Vehicles {
		if v.Selected {
			t.Errorf("adding must clear selection, %s still selected", v.ID)
		}
	}

	_, err = e.client.SelectVehicle(ctx, &rpc.IDRequest{ID: "missing"})
	expectCode(t, err, codes.NotFound)

	list, err = e.client.DeleteVehicle(ctx, &rpc.IDRequest{ID: first.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(list.Vehicles) != 2 {
		t.Errorf("expected 2 vehicles after delete, got %d", len(list.Vehicles))
	}
	_, err = e.client.DeleteVehicle(ctx, &rpc.IDRequest{ID: first.ID})
	expectCode(t, err, codes.NotFound)
}

// ----- scheduling -----

func TestCatalogAndCalendar(t *testing.T) {
	e := setup(t, nil)
	ctx := login(t, e, "cliente@gmail.com", "67890")

	svcs, err := e.client.ListServices(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	if len(svcs.Services) != 3 || svcs.Services[2].ID != "full" || svcs.Services[2].Price != 200 || svcs.Services[2].TimeMin != 70 {
		t.Fatalf("unexpected catalog: %+v", svcs.Services)
	}

	cal, err := e.client.Calendar(ctx, &rpc.CalendarRequest{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.Year != 2026 || cal.Month != 1 || cal.Label != "enero 2026" {
		t.Errorf("unexpected month: %d-%d %q", cal.Year, cal.Month, cal.Label)
	}
	if len(cal.Cells) != 35 || cal.Cells[3] != 1 {
		t.Errorf("unexpected grid: %v", cal.Cells)
	}
	if len(cal.Slots) != 6 || cal.Slots[0] != "13:00" || cal.Slots[5] != "18:00" {
		t.Errorf("unexpected slots: %v", cal.Slots)
	}

	_, err = e.client.Calendar(ctx, &rpc.CalendarRequest{Year: 2026, Month: 13})
	expectCode(t, err, codes.InvalidArgument)
}

func TestBookAndList(t *testing.T) {
	e := setup(t, nil)
	ctx := login(t, e, "cliente@gmail.com", "67890")

	resp, err := e.client.BookAppointment(ctx, &rpc.BookAppointmentRequest{VehicleID: "1", ServiceID: "ext", Day: 15, Hour: "14:00"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	a := resp.Appointment
	if a.Datetime != "2026-01-15T14:00:00Z" || a.Status != "pending" || a.StatusLabel != "Pendiente" {
		t.Fatalf("unexpected appointment: %+v", a)
	}
	if a.CarName != "NISSAN VERSA" || a.Plate != "ABCD12" || a.Service != "Exterior" {
		t.Errorf("unexpected vehicle/service: %+v", a)
	}
	if resp.Route != "/citas" {
		t.Errorf("route: %q", resp.Route)
	}

	_, err = e.client.BookAppointment(ctx, &rpc.BookAppointmentRequest{VehicleID: "1", ServiceID: "ext", Day: 15})
	expectCode(t, err, codes.InvalidArgument)
	_, err = e.client.BookAppointment(ctx, &rpc.BookAppointmentRequest{VehicleID: "9", ServiceID: "ext", Day: 15, Hour: "14:00"})
	expectCode(t, err, codes.NotFound)
	_, err = e.client.BookAppointment(ctx, &rpc.BookAppointmentRequest{VehicleID: "1", ServiceID: "ext", Month: 3, Day: 15, Hour: "14:00"})
	expectCode(t, err, codes.InvalidArgument)

	list, err := e.client.ListAppointments(ctx, &rpc.ListAppointmentsRequest{Tab: "upcoming"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Groups) != 1 || list.Groups[0].Label != "15 ene 2026" || list.Groups[0].Appointments[0].ID != a.ID {
		t.Fatalf("unexpected groups: %+v", list.Groups)
	}

	toggled, err := e.client.ToggleAppointment(ctx, &rpc.IDRequest{ID: a.ID})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Appointment.Status != "completed" {
		t.Errorf("expected completed, got %s", toggled.Appointment.Status)
	}

	list, _ = e.client.ListAppointments(ctx, &rpc.ListAppointmentsRequest{Tab: "upcoming"})
	if len(list.Groups) != 0 {
		t.Errorf("completed appointment still upcoming")
	}
	list, _ = e.client.ListAppointments(ctx, &rpc.ListAppointmentsRequest{Tab: "history"})
	if len(list.Groups) != 1 {
		t.Errorf("completed appointment missing from history")
	}
	_, err = e.client.ListAppointments(ctx, &rpc.ListAppointmentsRequest{Tab: "later"})
	expectCode(t, err, codes.InvalidArgument)

	_, err = e.client.AdminDashboard(ctx, &rpc.Empty{})
	expectCode(t, err, codes.PermissionDenied)

	if _, err := e.client.DeleteAppointment(ctx, &rpc.IDRequest{ID: a.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.appts.Len() != 0 {
		t.Errorf("expected empty store, got %d", e.appts.Len())
	}
}

// ----- admin -----

func TestAdminDashboardAndDetail(t *testing.T) {
	e := setup(t, nil)
	ctx := login(t, e, "admin@gmail.com", "12345")

	late := book(t, e, ctx, 20, "17:00")
	early := book(t, e, ctx, 12, "13:00")

	d, err := e.client.AdminDashboard(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Total != 2 || d.Pending != 2 || d.Completed != 0 {
		t.Errorf("counts: %+v", d)
	}
	if d.Next == nil || d.Next.ID != early.ID {
		t.Fatalf("next should be the earliest future appointment: %+v", d.Next)
	}
	if len(d.Queue) != 2 || d.Queue[0].ID != early.ID || d.Queue[1].ID != late.ID {
		t.Errorf("queue order: %+v", d.Queue)
	}

	done, err := e.client.CompleteAppointment(ctx, &rpc.IDRequest{ID: early.ID})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Appointment.Status != "completed" || done.Appointment.StatusLabel != "Completado" {
		t.Errorf("complete: %+v", done.Appointment)
	}

	_, err = e.client.CancelAppointment(ctx, &rpc.CancelAppointmentRequest{ID: late.ID})
	expectCode(t, err, codes.FailedPrecondition)
	if e.appts.Len() != 2 {
		t.Fatal("unconfirmed cancel must not remove")
	}

	if _, err := e.client.CancelAppointment(ctx, &rpc.CancelAppointmentRequest{ID: late.ID, Confirmed: true}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err = e.client.CancelAppointment(ctx, &rpc.CancelAppointmentRequest{ID: late.ID, Confirmed: true})
	expectCode(t, err, codes.NotFound)

	d, _ = e.client.AdminDashboard(ctx, &rpc.Empty{})
	if d.Total != 1 || d.Completed != 1 || d.Next != nil {
		t.Errorf("after cancel: %+v", d)
	}
}

func TestLogoutResetsAppointments(t *testing.T) {
	e := setup(t, nil)
	ctx := login(t, e, "cliente@gmail.com", "67890")
	book(t, e, ctx, 15, "14:00")

	if _, err := e.client.Logout(ctx, &rpc.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ctx = login(t, e, "cliente@gmail.com", "67890")
	list, err := e.client.ListAppointments(ctx, &rpc.ListAppointmentsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Groups) != 0 {
		t.Errorf("appointments survived logout: %+v", list.Groups)
	}
}

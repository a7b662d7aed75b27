package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/rpc"
	"vehicle-service-scheduler/internal/schedule"
	"vehicle-service-scheduler/internal/views"
)

func (h *Handler) ListServices(ctx context.Context, _ *rpc.Empty) (*rpc.ServiceList, error) {
	svcs := catalog.Services()
	out := &rpc.ServiceList{Services: make([]*rpc.Service, len(svcs))}
	for i, s := range svcs {
		out.Services[i] = &rpc.Service{ID: s.ID, Label: s.Label, Price: s.Price, TimeMin: s.TimeMin}
	}
	return out, nil
}

// Calendar returns the picker grid for a month, the current one when the
// request leaves it unset.
func (h *Handler) Calendar(ctx context.Context, req *rpc.CalendarRequest) (*rpc.CalendarResponse, error) {
	m := schedule.MonthOf(h.Now().In(h.Location))
	if req.Year != 0 || req.Month != 0 {
		if req.Month < 1 || req.Month > 12 || req.Year < 1 {
			return nil, status.Error(codes.InvalidArgument, "month out of range")
		}
		m = schedule.Month{Year: req.Year, Month: time.Month(req.Month)}
	}

	resp := &rpc.CalendarResponse{
		Year:  m.Year,
		Month: int(m.Month),
		Label: views.MonthLabel(m.Year, m.Month),
		Cells: m.Grid(),
	}
	for _, s := range h.Schedule.Slots() {
		resp.Slots = append(resp.Slots, s.String())
	}
	return resp, nil
}

func (h *Handler) BookAppointment(ctx context.Context, req *rpc.BookAppointmentRequest) (*rpc.AppointmentResponse, error) {
	a, err := h.Schedule.Book(ctx, schedule.BookRequest{
		VehicleID: req.VehicleID,
		ServiceID: req.ServiceID,
		Year:      req.Year,
		Month:     time.Month(req.Month),
		Day:       req.Day,
		Hour:      req.Hour,
	})
	if err != nil {
		return nil, h.toStatus("book", err)
	}
	return &rpc.AppointmentResponse{Appointment: h.toAppointment(a), Route: nav.Appointments.Path()}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *rpc.ListAppointmentsRequest) (*rpc.ListAppointmentsResponse, error) {
	tab, err := views.ParseTab(req.Tab)
	if err != nil {
		return nil, h.toStatus("list appointments", err)
	}

	groups := views.Client(h.Appts.List(), tab, h.Now(), h.Location)
	out := &rpc.ListAppointmentsResponse{Groups: make([]*rpc.DayGroup, len(groups))}
	for i, g := range groups {
		dg := &rpc.DayGroup{Label: g.Label}
		for _, r := range g.Rows {
			dg.Appointments = append(dg.Appointments, h.toAppointment(r.Appointment))
		}
		out.Groups[i] = dg
	}
	return out, nil
}

func (h *Handler) AdminDashboard(ctx context.Context, _ *rpc.Empty) (*rpc.DashboardResponse, error) {
	d := views.Admin(h.Appts.List(), h.Now())
	out := &rpc.DashboardResponse{Total: d.Total, Completed: d.Completed, Pending: d.Pending}
	if d.Next != nil {
		out.Next = h.toAppointment(*d.Next)
	}
	for _, a := range d.PendingSorted {
		out.Queue = append(out.Queue, h.toAppointment(a))
	}
	return out, nil
}

// ToggleAppointment is the client list's done / reopen switch.
func (h *Handler) ToggleAppointment(ctx context.Context, req *rpc.IDRequest) (*rpc.AppointmentResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	a, err := h.Detail.Toggle(req.ID)
	if err != nil {
		return nil, h.toStatus("toggle", err)
	}
	return &rpc.AppointmentResponse{Appointment: h.toAppointment(a)}, nil
}

func (h *Handler) CompleteAppointment(ctx context.Context, req *rpc.IDRequest) (*rpc.AppointmentResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	a, err := h.Detail.Complete(req.ID)
	if err != nil {
		return nil, h.toStatus("complete", err)
	}
	return &rpc.AppointmentResponse{Appointment: h.toAppointment(a)}, nil
}

// CancelAppointment needs Confirmed set; the client asks first.
func (h *Handler) CancelAppointment(ctx context.Context, req *rpc.CancelAppointmentRequest) (*rpc.Empty, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if err := h.Detail.Cancel(req.ID, req.Confirmed); err != nil {
		return nil, h.toStatus("cancel", err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *rpc.IDRequest) (*rpc.Empty, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if err := h.Detail.Delete(req.ID); err != nil {
		return nil, h.toStatus("delete", err)
	}
	return &rpc.Empty{}, nil
}

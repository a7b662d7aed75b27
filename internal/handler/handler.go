package handler

import (
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/rpc"
	"vehicle-service-scheduler/internal/schedule"
	"vehicle-service-scheduler/internal/session"
	"vehicle-service-scheduler/internal/store"
	"vehicle-service-scheduler/internal/views"
)

var _ rpc.ScheduleServer = (*Handler)(nil)

type Deps struct {
	Sessions *session.Store
	Garage   *store.Garage
	Appts    *store.Appointments
	Schedule *schedule.Service
	Detail   *views.Detail
	Location *time.Location
	Now      func() time.Time
	Secret   string
	Logger   *logging.Logger
}

// Handler serves ScheduleService over the shared stores.
type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = logging.Default()
	}
	return &Handler{Deps: d}
}

// toStatus maps domain errors onto gRPC codes. Anything unexpected is
// logged and hidden behind "internal error".
func (h *Handler) toStatus(op string, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, model.ErrAlreadySignedIn):
		return status.Error(codes.PermissionDenied, "already signed in: redirect "+nav.Home.Path())
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotConfirmed):
		return status.Error(codes.FailedPrecondition, "confirmation required")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrStorage):
		return status.Error(codes.Unavailable, "session storage unavailable")
	}
	h.Logger.Error("request failed", "op", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toVehicles(vs []model.Vehicle) *rpc.VehicleList {
	out := &rpc.VehicleList{Vehicles: make([]*rpc.Vehicle, len(vs))}
	for i, v := range vs {
		out.Vehicles[i] = &rpc.Vehicle{ID: v.ID, Name: v.Name, Year: v.Year, Plate: v.Plate, Selected: v.Selected}
	}
	return out
}

func (h *Handler) toAppointment(a model.Appointment) *rpc.Appointment {
	return &rpc.Appointment{
		ID:          a.ID,
		CarName:     a.CarName,
		Year:        a.Year,
		Plate:       a.Plate,
		Service:     a.Service,
		Datetime:    a.Datetime.UTC().Format(time.RFC3339),
		Status:      string(a.Status),
		StatusLabel: views.StatusLabel(a.Status),
		Display:     views.FormatLong(a.Datetime.In(h.Location)),
	}
}

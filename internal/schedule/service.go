// Package schedule implements the booking wizard: vehicle, service,
// date and hour, confirmation, commit.
package schedule

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/metrics"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/store"
)

type Options struct {
	Slots    []Slot
	Location *time.Location
	Now      func() time.Time
	Logger   *logging.Logger
	Metrics  *metrics.Metrics
	Tracer   trace.Tracer
}

// Service starts flows over the shared garage and appointment store.
type Service struct {
	garage  *store.Garage
	appts   *store.Appointments
	slots   []Slot
	loc     *time.Location
	now     func() time.Time
	logger  *logging.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(garage *store.Garage, appts *store.Appointments, opts Options) *Service {
	s := &Service{
		garage:  garage,
		appts:   appts,
		slots:   opts.Slots,
		loc:     opts.Location,
		now:     opts.Now,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
	}
	if len(s.slots) == 0 {
		s.slots, _ = ParseSlots(DefaultSlots)
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("scheduler/schedule")
	}
	return s
}

func (s *Service) NewFlow() *Flow {
	return &Flow{svc: s, step: StepVehicle}
}

func (s *Service) Slots() []Slot {
	return s.NewFlow().Slots()
}

// BookRequest is every wizard choice at once. Year and Month default to
// the current month.
type BookRequest struct {
	VehicleID string
	ServiceID string
	Year      int
	Month     time.Month
	Day       int
	Hour      string
}

// Book runs a fresh flow through every step.
func (s *Service) Book(ctx context.Context, req BookRequest) (model.Appointment, error) {
	ctx, span := s.tracer.Start(ctx, "schedule.book", trace.WithAttributes(
		attribute.String("scheduler.vehicle.id", req.VehicleID),
		attribute.String("scheduler.service.id", req.ServiceID),
	))
	defer span.End()

	f := s.NewFlow()
	steps := []func() error{
		func() error { return f.ChooseVehicle(req.VehicleID) },
		f.ToService,
		func() error { return f.ChooseService(req.ServiceID) },
		f.ToDateTime,
		func() error {
			if req.Year == 0 && req.Month == 0 {
				return nil
			}
			return f.ShowMonth(Month{Year: req.Year, Month: req.Month})
		},
		func() error { return f.PickDay(req.Day) },
		func() error { return f.PickHour(req.Hour) },
		func() error { _, err := f.Review(); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			span.RecordError(err)
			return model.Appointment{}, err
		}
	}
	a, _, err := f.Confirm(ctx)
	return a, err
}

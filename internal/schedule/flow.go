package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/views"
)

// ErrWrongStep is returned when an action does not belong to the current step.
var ErrWrongStep = fmt.Errorf("%w: action not allowed at this step", model.ErrValidation)

type Step int

const (
	StepVehicle Step = iota
	StepService
	StepDateTime
	StepConfirm
	StepCommitted
)

func (s Step) String() string {
	switch s {
	case StepVehicle:
		return "select_vehicle"
	case StepService:
		return "select_service"
	case StepDateTime:
		return "select_datetime"
	case StepConfirm:
		return "confirm"
	case StepCommitted:
		return "committed"
	}
	return "unknown"
}

// Draft carries the choices made so far. Nothing is stored until Confirm.
type Draft struct {
	Vehicle model.Vehicle
	Service model.Service
	Month   Month
	Day     int    // 0 until picked
	Hour    string // "" until picked
}

// Summary is what the confirmation dialog shows.
type Summary struct {
	Vehicle   model.Vehicle
	Service   model.Service
	DateLabel string
	Hour      string
}

// Flow walks one booking from vehicle choice to commit. A Flow is not
// safe for concurrent use.
type Flow struct {
	svc   *Service
	step  Step
	draft Draft
}

func (f *Flow) Step() Step   { return f.step }
func (f *Flow) Draft() Draft { return f.draft }

func (f *Flow) expect(s Step) error {
	if f.step != s {
		return fmt.Errorf("%w: at %s", ErrWrongStep, f.step)
	}
	return nil
}

// ChooseVehicle makes id the only selected vehicle in the garage.
func (f *Flow) ChooseVehicle(id string) error {
	if err := f.expect(StepVehicle); err != nil {
		return err
	}
	v, ok := f.svc.garage.Select(id)
	if !ok {
		f.draft.Vehicle = model.Vehicle{}
		return fmt.Errorf("%w: vehicle %s", model.ErrNotFound, id)
	}
	f.draft.Vehicle = v
	return nil
}

func (f *Flow) ToService() error {
	if err := f.expect(StepVehicle); err != nil {
		return err
	}
	// a vehicle chosen in this flow wins over the shared selection, which
	// other flows may have moved since
	if f.draft.Vehicle.ID == "" {
		v, ok := f.svc.garage.Selected()
		if !ok {
			return fmt.Errorf("%w: no vehicle selected", model.ErrIncompleteSelection)
		}
		f.draft.Vehicle = v
	}
	f.step = StepService
	return nil
}

func (f *Flow) ChooseService(id string) error {
	if err := f.expect(StepService); err != nil {
		return err
	}
	s, ok := catalog.ServiceByID(id)
	if !ok {
		return fmt.Errorf("%w: service %s", model.ErrNotFound, id)
	}
	f.draft.Service = s
	return nil
}

// ToDateTime opens the picker on the current month.
func (f *Flow) ToDateTime() error {
	if err := f.expect(StepService); err != nil {
		return err
	}
	if f.draft.Service.ID == "" {
		return fmt.Errorf("%w: no service selected", model.ErrIncompleteSelection)
	}
	f.draft.Month = MonthOf(f.svc.now().In(f.svc.loc))
	f.step = StepDateTime
	return nil
}

// Grid is the calendar of the displayed month.
func (f *Flow) Grid() []int { return f.draft.Month.Grid() }

func (f *Flow) Slots() []Slot {
	out := make([]Slot, len(f.svc.slots))
	copy(out, f.svc.slots)
	return out
}

func (f *Flow) NextMonth() error { return f.ShowMonth(f.draft.Month.Next()) }
func (f *Flow) PrevMonth() error { return f.ShowMonth(f.draft.Month.Prev()) }

// ShowMonth switches the displayed month. A picked day the new month does
// not have is dropped.
func (f *Flow) ShowMonth(m Month) error {
	if err := f.expect(StepDateTime); err != nil {
		return err
	}
	if m.Month < time.January || m.Month > time.December {
		return model.Invalid("month", "out of range")
	}
	if m.Year < 1 || m.Year > 9999 {
		return model.Invalid("year", "out of range")
	}
	f.draft.Month = m
	if f.draft.Day > m.Days() {
		f.draft.Day = 0
	}
	return nil
}

func (f *Flow) PickDay(day int) error {
	if err := f.expect(StepDateTime); err != nil {
		return err
	}
	if day < 1 || day > f.draft.Month.Days() {
		return model.Invalid("day", "not a day of the displayed month")
	}
	f.draft.Day = day
	return nil
}

func (f *Flow) PickHour(hour string) error {
	if err := f.expect(StepDateTime); err != nil {
		return err
	}
	s, ok := findSlot(f.svc.slots, hour)
	if !ok {
		return model.Invalid("hour", "not an offered slot")
	}
	f.draft.Hour = s.String()
	return nil
}

// Review moves to confirmation once both day and hour are picked.
func (f *Flow) Review() (Summary, error) {
	if err := f.expect(StepDateTime); err != nil {
		return Summary{}, err
	}
	if f.draft.Day == 0 || f.draft.Hour == "" {
		return Summary{}, fmt.Errorf("%w: pick a day and an hour", model.ErrIncompleteSelection)
	}
	f.step = StepConfirm
	return f.summary(), nil
}

func (f *Flow) summary() Summary {
	d := time.Date(f.draft.Month.Year, f.draft.Month.Month, f.draft.Day, 0, 0, 0, 0, f.svc.loc)
	return Summary{
		Vehicle:   f.draft.Vehicle,
		Service:   f.draft.Service,
		DateLabel: views.DateLabel(d),
		Hour:      f.draft.Hour,
	}
}

// Back returns to the previous step, keeping the choices made there.
func (f *Flow) Back() error {
	switch f.step {
	case StepService:
		// the garage selection still holds the vehicle
		f.draft.Vehicle = model.Vehicle{}
		f.step = StepVehicle
	case StepDateTime:
		f.step = StepService
	case StepConfirm:
		f.step = StepDateTime
	default:
		return fmt.Errorf("%w: cannot go back from %s", ErrWrongStep, f.step)
	}
	return nil
}

// Confirm stores the appointment and points the client at the list.
func (f *Flow) Confirm(ctx context.Context) (model.Appointment, nav.Route, error) {
	_, span := f.svc.tracer.Start(ctx, "schedule.confirm")
	defer span.End()

	if err := f.expect(StepConfirm); err != nil {
		span.RecordError(err)
		return model.Appointment{}, nav.Route{}, err
	}
	slot, err := ParseSlot(f.draft.Hour)
	if err != nil {
		span.RecordError(err)
		return model.Appointment{}, nav.Route{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		span.RecordError(err)
		return model.Appointment{}, nav.Route{}, fmt.Errorf("schedule: new id: %w", err)
	}

	d := f.draft
	a := model.Appointment{
		ID:       id.String(),
		CarName:  d.Vehicle.Name,
		Year:     d.Vehicle.Year,
		Plate:    d.Vehicle.Plate,
		Service:  d.Service.Label,
		Datetime: time.Date(d.Month.Year, d.Month.Month, d.Day, slot.Hour, slot.Minute, 0, 0, f.svc.loc),
		Status:   model.StatusPending,
	}
	f.svc.appts.Add(a)
	f.step = StepCommitted
	f.draft = Draft{}

	span.SetAttributes(
		attribute.String("scheduler.appointment.id", a.ID),
		attribute.String("scheduler.appointment.service", d.Service.ID),
	)
	f.svc.metrics.ObserveBooked(d.Service.ID)
	f.svc.logger.Info("appointment booked",
		"id", a.ID, "plate", a.Plate, "service", d.Service.ID, "datetime", a.Datetime.Format(time.RFC3339))
	return a, nav.To(nav.Appointments), nil
}

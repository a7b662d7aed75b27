package views

import (
	"fmt"

	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/metrics"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/store"
)

// Detail applies the actions offered on an appointment.
type Detail struct {
	appts   *store.Appointments
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func NewDetail(appts *store.Appointments, logger *logging.Logger, m *metrics.Metrics) *Detail {
	if logger == nil {
		logger = logging.Default()
	}
	return &Detail{appts: appts, logger: logger, metrics: m}
}

// Complete marks a pending appointment done. Completing an already
// completed appointment changes nothing.
func (d *Detail) Complete(id string) (model.Appointment, error) {
	a, ok := d.appts.Get(id)
	if !ok {
		return model.Appointment{}, notFound(id)
	}
	if a.Status == model.StatusCompleted {
		return a, nil
	}
	return d.Toggle(id)
}

// Toggle flips between pending and completed.
func (d *Detail) Toggle(id string) (model.Appointment, error) {
	a, ok := d.appts.ToggleDone(id)
	if !ok {
		return model.Appointment{}, notFound(id)
	}
	d.metrics.ObserveStatusChange(string(a.Status))
	d.logger.Info("appointment status changed", "id", id, "status", a.Status)
	return a, nil
}

// Cancel removes the appointment once the user has confirmed.
func (d *Detail) Cancel(id string, confirmed bool) error {
	if !confirmed {
		return model.ErrNotConfirmed
	}
	return d.Delete(id)
}

func (d *Detail) Delete(id string) error {
	if !d.appts.Remove(id) {
		return notFound(id)
	}
	d.metrics.ObserveCancelled()
	d.logger.Info("appointment removed", "id", id)
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: appointment %s", model.ErrNotFound, id)
}

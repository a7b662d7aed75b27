package views

import (
	"sort"
	"time"

	"vehicle-service-scheduler/internal/model"
)

// Dashboard is the admin home screen.
type Dashboard struct {
	Total         int
	Completed     int
	Pending       int
	Next          *model.Appointment
	PendingSorted []model.Appointment
}

func Admin(appts []model.Appointment, now time.Time) Dashboard {
	d := Dashboard{Total: len(appts)}
	for _, a := range appts {
		if a.Status == model.StatusCompleted {
			d.Completed++
			continue
		}
		d.PendingSorted = append(d.PendingSorted, a)
	}
	d.Pending = d.Total - d.Completed

	sort.SliceStable(d.PendingSorted, func(i, j int) bool {
		return d.PendingSorted[i].Datetime.Before(d.PendingSorted[j].Datetime)
	})
	for i := range d.PendingSorted {
		if !d.PendingSorted[i].Datetime.Before(now) {
			next := d.PendingSorted[i]
			d.Next = &next
			break
		}
	}
	return d
}

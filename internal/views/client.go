// Package views derives what the client and admin screens show from the
// appointment list. Projections are pure; only Detail mutates the store.
package views

import (
	"fmt"
	"sort"
	"time"

	"vehicle-service-scheduler/internal/model"
)

type Tab string

const (
	TabUpcoming Tab = "upcoming"
	TabHistory  Tab = "history"
)

func ParseTab(v string) (Tab, error) {
	switch Tab(v) {
	case TabUpcoming, "":
		return TabUpcoming, nil
	case TabHistory:
		return TabHistory, nil
	}
	return "", model.Invalid("tab", fmt.Sprintf("unknown tab %q", v))
}

// Row is one appointment as listed, with its time of day.
type Row struct {
	Appointment model.Appointment
	Time        string
	Done        bool
}

// DayGroup is one "HOY" / "02 ene 2026" section of the client list.
type DayGroup struct {
	Label string
	Rows  []Row
}

func (t Tab) includes(a model.Appointment, now time.Time) bool {
	if t == TabHistory {
		return a.Datetime.Before(now) || a.Status == model.StatusCompleted
	}
	return !a.Datetime.Before(now) && a.Status == model.StatusPending
}

// Client filters appts by tab, newest first, and groups them by day label.
// Groups keep the order of their first member.
func Client(appts []model.Appointment, tab Tab, now time.Time, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	var picked []model.Appointment
	for _, a := range appts {
		if tab.includes(a, now) {
			picked = append(picked, a)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Datetime.After(picked[j].Datetime)
	})

	var groups []DayGroup
	index := make(map[string]int)
	for _, a := range picked {
		label := DayLabel(a.Datetime, now, loc)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Rows = append(groups[i].Rows, Row{
			Appointment: a,
			Time:        clock(a.Datetime.In(loc)),
			Done:        a.Status == model.StatusCompleted,
		})
	}
	return groups
}

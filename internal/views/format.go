package views

import (
	"fmt"
	"time"

	"vehicle-service-scheduler/internal/model"
)

// TodayLabel replaces the date for appointments falling on the current day.
const TodayLabel = "HOY"

var (
	shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
	longMonths  = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	weekdays    = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
)

// DateLabel renders "02 ene 2026".
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// MonthLabel renders "enero 2026" for the calendar header.
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", longMonths[month-1], year)
}

// DayLabel is "HOY" when t falls on now's calendar date in loc.
func DayLabel(t, now time.Time, loc *time.Location) string {
	t, now = t.In(loc), now.In(loc)
	if sameDay(t, now) {
		return TodayLabel
	}
	return DateLabel(t)
}

// FormatLong renders "viernes, 02 ene · 14:00".
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s, %02d %s · %s", weekdays[t.Weekday()], t.Day(), shortMonths[t.Month()-1], clock(t))
}

// FormatRow renders "02 ene · 14:00".
func FormatRow(t time.Time) string {
	return fmt.Sprintf("%02d %s · %s", t.Day(), shortMonths[t.Month()-1], clock(t))
}

func StatusLabel(s model.Status) string {
	if s == model.StatusCompleted {
		return "Completado"
	}
	return "Pendiente"
}

func clock(t time.Time) string { return t.Format("15:04") }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

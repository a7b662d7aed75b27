package schedule

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/nav"
	"vehicle-service-scheduler/internal/store"
)

var fixedNow = time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *store.Garage, *store.Appointments) {
	t.Helper()
	g := store.NewGarage(catalog.StarterVehicles())
	a := store.NewAppointments()
	svc := NewService(g, a, Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
		Logger:   logging.NewWithWriter(io.Discard, "info"),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
	})
	return svc, g, a
}

func toDateTime(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.ChooseVehicle("1"))
	require.NoError(t, f.ToService())
	require.NoError(t, f.ChooseService("ext"))
	require.NoError(t, f.ToDateTime())
}

func TestGridProperties(t *testing.T) {
	for y := 2000; y <= 2030; y++ {
		for m := time.January; m <= time.December; m++ {
			month := Month{Year: y, Month: m}
			grid := month.Grid()
			require.Zero(t, len(grid)%7, "%s", month)

			first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
			offset := (int(first.Weekday()) + 6) % 7
			for i := 0; i < offset; i++ {
				require.Zero(t, grid[i], "%s leading cell %d", month, i)
			}

			filled := 0
			for _, c := range grid {
				if c != 0 {
					filled++
					require.Equal(t, filled, c, "%s days must be consecutive", month)
				}
			}
			require.Equal(t, month.Days(), filled, "%s", month)
			require.Less(t, len(grid)-offset-filled, 7, "%s trailing pad", month)
		}
	}
}

func TestGridKnownMonths(t *testing.T) {
	jan := Month{Year: 2026, Month: time.January}.Grid()
	assert.Len(t, jan, 35)
	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, jan[:7]) // Thursday start

	feb := Month{Year: 2026, Month: time.February}.Grid()
	assert.Len(t, feb, 35)
	assert.Equal(t, 1, feb[6]) // Sunday start

	// February 2027 starts on Monday and fills exactly four rows
	assert.Len(t, Month{Year: 2027, Month: time.February}.Grid(), 28)
	assert.Equal(t, 29, Month{Year: 2024, Month: time.February}.Days())
}

func TestMonthNavigation(t *testing.T) {
	m := Month{Year: 2026, Month: time.January}
	assert.Equal(t, Month{Year: 2025, Month: time.December}, m.Prev())
	assert.Equal(t, Month{Year: 2026, Month: time.February}, m.Next())
	assert.Equal(t, Month{Year: 2027, Month: time.January}, Month{Year: 2026, Month: time.December}.Next())
}

func TestParseSlots(t *testing.T) {
	slots, err := ParseSlots(DefaultSlots)
	require.NoError(t, err)
	var got []string
	for _, s := range slots {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{"13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, got)

	slots, err = ParseSlots("09:30, 10:00,09:30")
	require.NoError(t, err)
	assert.Equal(t, []Slot{{9, 30}, {10, 0}}, slots)

	for _, bad := range []string{"", "18:00-13:00", "25:00", "13:7", "ab:cd", "13"} {
		_, err := ParseSlots(bad)
		assert.Error(t, err, bad)
	}
}

func TestFlowCommitsAppointment(t *testing.T) {
	svc, _, appts := newService(t)
	f := svc.NewFlow()
	toDateTime(t, f)

	assert.Equal(t, Month{Year: 2026, Month: time.January}, f.Draft().Month)
	require.NoError(t, f.PickDay(15))
	require.NoError(t, f.PickHour("14:00"))

	sum, err := f.Review()
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, f.Step())
	assert.Equal(t, "15 ene 2026", sum.DateLabel)
	assert.Equal(t, "14:00", sum.Hour)
	assert.Equal(t, "NISSAN VERSA", sum.Vehicle.Name)
	assert.Equal(t, "Exterior", sum.Service.Label)

	a, route, err := f.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nav.Appointments, route.Dest)
	assert.Equal(t, StepCommitted, f.Step())
	assert.Equal(t, Draft{}, f.Draft())

	assert.Equal(t, "2026-01-15T14:00:00Z", a.Datetime.UTC().Format(time.RFC3339))
	assert.Equal(t, model.StatusPending, a.Status)
	assert.Equal(t, "ABCD12", a.Plate)
	assert.Equal(t, "Exterior", a.Service)
	assert.NotEmpty(t, a.ID)

	list := appts.List()
	require.Len(t, list, 1)
	assert.Equal(t, a, list[0])
}

func TestFlowUsesLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	g := store.NewGarage(catalog.StarterVehicles())
	svc := NewService(g, store.NewAppointments(), Options{
		Location: loc,
		Now:      func() time.Time { return fixedNow },
		Logger:   logging.NewWithWriter(io.Discard, "info"),
	})
	a, err := svc.Book(context.Background(), BookRequest{VehicleID: "2", ServiceID: "full", Day: 15, Hour: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15T20:00:00Z", a.Datetime.UTC().Format(time.RFC3339))
}

func TestIncompleteSelection(t *testing.T) {
	svc, g, _ := newService(t)
	f := svc.NewFlow()

	g.SelectOnly("")
	require.ErrorIs(t, f.ToService(), model.ErrIncompleteSelection)
	assert.Equal(t, StepVehicle, f.Step())

	require.NoError(t, f.ChooseVehicle("2"))
	require.NoError(t, f.ToService())
	require.ErrorIs(t, f.ToDateTime(), model.ErrIncompleteSelection)
	assert.Equal(t, StepService, f.Step())

	require.NoError(t, f.ChooseService("int"))
	require.NoError(t, f.ToDateTime())

	_, err := f.Review()
	require.ErrorIs(t, err, model.ErrIncompleteSelection)
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, StepDateTime, f.Step())

	require.NoError(t, f.PickDay(3))
	_, err = f.Review()
	require.ErrorIs(t, err, model.ErrIncompleteSelection)
}

func TestUnknownChoices(t *testing.T) {
	svc, g, _ := newService(t)
	f := svc.NewFlow()

	require.ErrorIs(t, f.ChooseVehicle("nope"), model.ErrNotFound)
	_, ok := g.Selected()
	assert.False(t, ok)

	require.NoError(t, f.ChooseVehicle("1"))
	require.NoError(t, f.ToService())
	require.ErrorIs(t, f.ChooseService("wax"), model.ErrNotFound)
	require.NoError(t, f.ChooseService("full"))
	require.NoError(t, f.ToDateTime())

	require.ErrorIs(t, f.PickDay(0), model.ErrValidation)
	require.ErrorIs(t, f.PickDay(32), model.ErrValidation)
	require.ErrorIs(t, f.PickHour("12:00"), model.ErrValidation)
	require.ErrorIs(t, f.PickHour("2pm"), model.ErrValidation)
}

func TestWrongStep(t *testing.T) {
	svc, _, _ := newService(t)
	f := svc.NewFlow()

	require.ErrorIs(t, f.PickDay(1), ErrWrongStep)
	require.ErrorIs(t, f.ChooseService("ext"), ErrWrongStep)
	_, _, err := f.Confirm(context.Background())
	require.ErrorIs(t, err, ErrWrongStep)
	require.ErrorIs(t, f.Back(), ErrWrongStep)
}

func TestMonthChangeDropsMissingDay(t *testing.T) {
	svc, _, _ := newService(t)
	f := svc.NewFlow()
	toDateTime(t, f)

	require.NoError(t, f.PickDay(31))
	require.NoError(t, f.NextMonth())
	assert.Equal(t, time.February, f.Draft().Month.Month)
	assert.Zero(t, f.Draft().Day)

	require.NoError(t, f.PickDay(28))
	require.NoError(t, f.PrevMonth())
	assert.Equal(t, 28, f.Draft().Day)
	assert.Len(t, f.Grid(), 35)
}

func TestBackKeepsSelections(t *testing.T) {
	svc, _, appts := newService(t)
	f := svc.NewFlow()
	toDateTime(t, f)
	require.NoError(t, f.PickDay(20))
	require.NoError(t, f.PickHour("16:00"))
	_, err := f.Review()
	require.NoError(t, err)

	require.NoError(t, f.Back())
	assert.Equal(t, StepDateTime, f.Step())
	assert.Equal(t, 20, f.Draft().Day)
	assert.Equal(t, "16:00", f.Draft().Hour)
	assert.Zero(t, appts.Len())

	_, err = f.Review()
	require.NoError(t, err)
	_, _, err = f.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, appts.Len())
}

func TestBook(t *testing.T) {
	svc, _, appts := newService(t)
	ctx := context.Background()

	a, err := svc.Book(ctx, BookRequest{
		VehicleID: "2", ServiceID: "int",
		Year: 2026, Month: time.March, Day: 2, Hour: "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC), a.Datetime)
	assert.Equal(t, "Interior", a.Service)

	b, err := svc.Book(ctx, BookRequest{VehicleID: "1", ServiceID: "ext", Day: 11, Hour: "18:00"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, b.ID, appts.List()[0].ID)

	_, err = svc.Book(ctx, BookRequest{VehicleID: "1", ServiceID: "ext", Day: 11})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, 2, appts.Len())
}

func TestShowMonthRejectsYearOutOfRange(t *testing.T) {
	svc, _, appts := newService(t)
	f := svc.NewFlow()
	toDateTime(t, f)

	require.ErrorIs(t, f.ShowMonth(Month{Year: 0, Month: time.March}), model.ErrValidation)
	require.ErrorIs(t, f.ShowMonth(Month{Year: 10000, Month: time.March}), model.ErrValidation)
	assert.Equal(t, Month{Year: 2026, Month: time.January}, f.Draft().Month)

	_, err := svc.Book(context.Background(), BookRequest{VehicleID: "1", ServiceID: "ext", Month: time.March, Day: 15, Hour: "14:00"})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Zero(t, appts.Len())
}

func TestFlowKeepsItsOwnVehicle(t *testing.T) {
	svc, garage, _ := newService(t)
	f := svc.NewFlow()
	require.NoError(t, f.ChooseVehicle("1"))

	// another client moves the shared selection
	garage.SelectOnly("2")
	require.NoError(t, f.ToService())
	assert.Equal(t, "1", f.Draft().Vehicle.ID)

	// going back hands the choice to the garage again
	require.NoError(t, f.Back())
	require.NoError(t, f.ToService())
	assert.Equal(t, "2", f.Draft().Vehicle.ID)

	g := svc.NewFlow()
	require.ErrorIs(t, g.ChooseVehicle("missing"), model.ErrNotFound)
	require.ErrorIs(t, g.ToService(), model.ErrIncompleteSelection)
}

func TestConcurrentBookKeepsVehicles(t *testing.T) {
	svc, _, appts := newService(t)
	plates := map[string]string{"1": "ABCD12", "2": "ZXT012"}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		id := fmt.Sprint(i%2 + 1)
		wg.Add(1)
		go func(id string, day int) {
			defer wg.Done()
			a, err := svc.Book(context.Background(), BookRequest{VehicleID: id, ServiceID: "ext", Day: day, Hour: "14:00"})
			if assert.NoError(t, err) {
				assert.Equal(t, plates[id], a.Plate, "vehicle %s", id)
			}
		}(id, i%28+1)
	}
	wg.Wait()
	assert.Equal(t, 40, appts.Len())
}

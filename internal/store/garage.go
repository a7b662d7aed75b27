package store

import (
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vehicle-service-scheduler/internal/model"
)

var (
	yearRe  = regexp.MustCompile(`^\d{4}$`)
	plateRe = regexp.MustCompile(`^[A-Z0-9]{4}$`)
)

// VehicleInput is the raw add-vehicle form.
type VehicleInput struct {
	Name  string
	Year  string
	Plate string
}

// Garage holds the user's vehicles. At most one is selected at a time.
type Garage struct {
	mu       sync.RWMutex
	vehicles []model.Vehicle
}

func NewGarage(seed []model.Vehicle) *Garage {
	g := &Garage{vehicles: make([]model.Vehicle, len(seed))}
	copy(g.vehicles, seed)
	return g
}

// SelectOnly marks the vehicle with id as selected and clears every other.
// An unknown id leaves nothing selected.
func (g *Garage) SelectOnly(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.vehicles {
		g.vehicles[i].Selected = g.vehicles[i].ID == id
	}
}

// Select is SelectOnly that also returns the chosen vehicle, read under
// the same lock.
func (g *Garage) Select(id string) (model.Vehicle, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var (
		chosen model.Vehicle
		found  bool
	)
	for i := range g.vehicles {
		g.vehicles[i].Selected = g.vehicles[i].ID == id
		if g.vehicles[i].Selected {
			chosen, found = g.vehicles[i], true
		}
	}
	return chosen, found
}

// Add validates the form, prepends the new vehicle and clears the selection.
func (g *Garage) Add(in VehicleInput) (model.Vehicle, error) {
	v, err := NormalizeVehicle(in)
	if err != nil {
		return model.Vehicle{}, err
	}
	v.ID = uuid.NewString()

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.vehicles {
		g.vehicles[i].Selected = false
	}
	g.vehicles = append([]model.Vehicle{v}, g.vehicles...)
	return v, nil
}

func (g *Garage) Delete(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.vehicles {
		if g.vehicles[i].ID == id {
			g.vehicles = append(g.vehicles[:i:i], g.vehicles[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Garage) Get(id string) (model.Vehicle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, v := range g.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return model.Vehicle{}, false
}

func (g *Garage) Selected() (model.Vehicle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, v := range g.vehicles {
		if v.Selected {
			return v, true
		}
	}
	return model.Vehicle{}, false
}

func (g *Garage) List() []model.Vehicle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.Vehicle, len(g.vehicles))
	copy(out, g.vehicles)
	return out
}

// NormalizeVehicle applies the add-vehicle form rules. The plate keeps
// only the last four letters/digits of whatever the user typed.
func NormalizeVehicle(in VehicleInput) (model.Vehicle, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 3 {
		return model.Vehicle{}, model.Invalid("name", "at least 3 characters")
	}
	year := strings.TrimSpace(in.Year)
	if !yearRe.MatchString(year) {
		return model.Vehicle{}, model.Invalid("year", "must be 4 digits")
	}
	plate := PlateSuffix(in.Plate)
	if !plateRe.MatchString(plate) {
		return model.Vehicle{}, model.Invalid("plate", "must be 4 letters or digits")
	}
	return model.Vehicle{
		Name:  strings.ToUpper(name),
		Year:  year,
		Plate: plate,
	}, nil
}

// PlateSuffix upper-cases raw, drops everything but letters and digits
// and returns at most the last four characters.
func PlateSuffix(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > 4 {
		s = s[len(s)-4:]
	}
	return s
}

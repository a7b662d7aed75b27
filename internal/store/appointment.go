package store

import (
	"sync"

	"vehicle-service-scheduler/internal/model"
)

// Appointments is the single in-memory appointment list for the process.
// Order is most-recent-first: Add prepends.
type Appointments struct {
	mu    sync.RWMutex
	items []model.Appointment
}

func NewAppointments() *Appointments {
	return &Appointments{}
}

// Add inserts a at the head of the list. Callers generate unique ids.
func (s *Appointments) Add(a model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.Appointment{a}, s.items...)
}

// ToggleDone flips the status of the matching appointment.
// Reports false and changes nothing if id is unknown.
func (s *Appointments) ToggleDone(id string) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = s.items[i].Status.Toggled()
			return s.items[i], true
		}
	}
	return model.Appointment{}, false
}

// Remove deletes the matching appointment. Reports false if id is unknown.
func (s *Appointments) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Appointments) Get(id string) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// List returns a snapshot; callers may reorder it freely.
func (s *Appointments) List() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Appointments) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Reset drops every appointment (logout).
func (s *Appointments) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

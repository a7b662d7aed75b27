// Package catalog holds the fixed data the app ships with: the service
// catalog, the demo credential table and the starter vehicles.
package catalog

import "vehicle-service-scheduler/internal/model"

var services = []model.Service{
	{ID: "ext", Label: "Exterior", Price: 120, TimeMin: 30},
	{ID: "int", Label: "Interior", Price: 130, TimeMin: 40},
	{ID: "full", Label: "Completo", Price: 200, TimeMin: 70},
}

// Services returns a copy of the catalog in display order.
func Services() []model.Service {
	out := make([]model.Service, len(services))
	copy(out, services)
	return out
}

func ServiceByID(id string) (model.Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return model.Service{}, false
}

type Account struct {
	Password string
	Role     model.Role
}

// Credentials returns the demo account table keyed by normalized email.
func Credentials() map[string]Account {
	return map[string]Account{
		"admin@gmail.com":   {Password: "12345", Role: model.RoleAdmin},
		"cliente@gmail.com": {Password: "67890", Role: model.RoleClient},
	}
}

// StarterVehicles are shown in the garage before the user adds any.
func StarterVehicles() []model.Vehicle {
	return []model.Vehicle{
		{ID: "1", Name: "NISSAN VERSA", Year: "2020", Plate: "ABCD12"},
		{ID: "2", Name: "NISSAN VERSA", Year: "2022", Plate: "ZXT012"},
	}
}

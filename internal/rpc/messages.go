package rpc

// Field numbers follow schedule/v1/schedule.proto.

type Empty struct{}

func (*Empty) MarshalWire() []byte          { return nil }
func (*Empty) UnmarshalWire(b []byte) error { return parse(b, func(field) error { return nil }) }

// Route tells the client which screen to show next.
type Route struct {
	Path string
}

func (m *Route) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Path)
	return e.b
}

func (m *Route) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num == 1 {
			m.Path = f.str()
		}
		return nil
	})
}

type IDRequest struct {
	ID string
}

func (m *IDRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	return e.b
}

func (m *IDRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num == 1 {
			m.ID = f.str()
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Email)
	e.str(2, m.Password)
	return e.b
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		}
		return nil
	})
}

type LoginResponse struct {
	Token string
	Email string
	Role  string
	Route string
}

func (m *LoginResponse) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Token)
	e.str(2, m.Email)
	e.str(3, m.Role)
	e.str(4, m.Route)
	return e.b
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Token = f.str()
		case 2:
			m.Email = f.str()
		case 3:
			m.Role = f.str()
		case 4:
			m.Route = f.str()
		}
		return nil
	})
}

type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func (m *RegisterRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Name)
	e.str(2, m.Email)
	e.str(3, m.Phone)
	e.str(4, m.Password)
	return e.b
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Name = f.str()
		case 2:
			m.Email = f.str()
		case 3:
			m.Phone = f.str()
		case 4:
			m.Password = f.str()
		}
		return nil
	})
}

type ProfileResponse struct {
	Email string
	Role  string
}

func (m *ProfileResponse) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Email)
	e.str(2, m.Role)
	return e.b
}

func (m *ProfileResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Role = f.str()
		}
		return nil
	})
}

type Vehicle struct {
	ID       string
	Name     string
	Year     string
	Plate    string
	Selected bool
}

func (m *Vehicle) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.Name)
	e.str(3, m.Year)
	e.str(4, m.Plate)
	e.flag(5, m.Selected)
	return e.b
}

func (m *Vehicle) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Year = f.str()
		case 4:
			m.Plate = f.str()
		case 5:
			m.Selected = f.flag()
		}
		return nil
	})
}

type VehicleList struct {
	Vehicles []*Vehicle
}

func (m *VehicleList) MarshalWire() []byte {
	var e encoder
	for _, v := range m.Vehicles {
		e.msg(1, v)
	}
	return e.b
}

func (m *VehicleList) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		v := &Vehicle{}
		if err := f.msg(v); err != nil {
			return err
		}
		m.Vehicles = append(m.Vehicles, v)
		return nil
	})
}

type AddVehicleRequest struct {
	Name  string
	Year  string
	Plate string
}

func (m *AddVehicleRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Name)
	e.str(2, m.Year)
	e.str(3, m.Plate)
	return e.b
}

func (m *AddVehicleRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Name = f.str()
		case 2:
			m.Year = f.str()
		case 3:
			m.Plate = f.str()
		}
		return nil
	})
}

type Service struct {
	ID      string
	Label   string
	Price   int
	TimeMin int
}

func (m *Service) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.Label)
	e.integer(3, m.Price)
	e.integer(4, m.TimeMin)
	return e.b
}

func (m *Service) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Label = f.str()
		case 3:
			m.Price = f.integer()
		case 4:
			m.TimeMin = f.integer()
		}
		return nil
	})
}

type ServiceList struct {
	Services []*Service
}

func (m *ServiceList) MarshalWire() []byte {
	var e encoder
	for _, s := range m.Services {
		e.msg(1, s)
	}
	return e.b
}

func (m *ServiceList) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		s := &Service{}
		if err := f.msg(s); err != nil {
			return err
		}
		m.Services = append(m.Services, s)
		return nil
	})
}

type CalendarRequest struct {
	Year  int
	Month int
}

func (m *CalendarRequest) MarshalWire() []byte {
	var e encoder
	e.integer(1, m.Year)
	e.integer(2, m.Month)
	return e.b
}

func (m *CalendarRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Year = f.integer()
		case 2:
			m.Month = f.integer()
		}
		return nil
	})
}

// CalendarResponse is one month of the date picker. Cells are 0 outside
// the month.
type CalendarResponse struct {
	Year  int
	Month int
	Label string
	Cells []int
	Slots []string
}

func (m *CalendarResponse) MarshalWire() []byte {
	var e encoder
	e.integer(1, m.Year)
	e.integer(2, m.Month)
	e.str(3, m.Label)
	e.packed(4, m.Cells)
	for _, s := range m.Slots {
		e.str(5, s)
	}
	return e.b
}

func (m *CalendarResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Year = f.integer()
		case 2:
			m.Month = f.integer()
		case 3:
			m.Label = f.str()
		case 4:
			cells, err := f.packed()
			if err != nil {
				return err
			}
			m.Cells = append(m.Cells, cells...)
		case 5:
			m.Slots = append(m.Slots, f.str())
		}
		return nil
	})
}

type BookAppointmentRequest struct {
	VehicleID string
	ServiceID string
	Year      int
	Month     int
	Day       int
	Hour      string
}

func (m *BookAppointmentRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.VehicleID)
	e.str(2, m.ServiceID)
	e.integer(3, m.Year)
	e.integer(4, m.Month)
	e.integer(5, m.Day)
	e.str(6, m.Hour)
	return e.b
}

func (m *BookAppointmentRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.VehicleID = f.str()
		case 2:
			m.ServiceID = f.str()
		case 3:
			m.Year = f.integer()
		case 4:
			m.Month = f.integer()
		case 5:
			m.Day = f.integer()
		case 6:
			m.Hour = f.str()
		}
		return nil
	})
}

// Appointment carries Datetime as an RFC 3339 UTC string.
type Appointment struct {
	ID          string
	CarName     string
	Year        string
	Plate       string
	Service     string
	Datetime    string
	Status      string
	StatusLabel string
	Display     string
}

func (m *Appointment) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.CarName)
	e.str(3, m.Year)
	e.str(4, m.Plate)
	e.str(5, m.Service)
	e.str(6, m.Datetime)
	e.str(7, m.Status)
	e.str(8, m.StatusLabel)
	e.str(9, m.Display)
	return e.b
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.CarName = f.str()
		case 3:
			m.Year = f.str()
		case 4:
			m.Plate = f.str()
		case 5:
			m.Service = f.str()
		case 6:
			m.Datetime = f.str()
		case 7:
			m.Status = f.str()
		case 8:
			m.StatusLabel = f.str()
		case 9:
			m.Display = f.str()
		}
		return nil
	})
}

type AppointmentResponse struct {
	Appointment *Appointment
	Route       string
}

func (m *AppointmentResponse) MarshalWire() []byte {
	var e encoder
	if m.Appointment != nil {
		e.msg(1, m.Appointment)
	}
	e.str(2, m.Route)
	return e.b
}

func (m *AppointmentResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Appointment = &Appointment{}
			return f.msg(m.Appointment)
		case 2:
			m.Route = f.str()
		}
		return nil
	})
}

type ListAppointmentsRequest struct {
	Tab string
}

func (m *ListAppointmentsRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Tab)
	return e.b
}

func (m *ListAppointmentsRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num == 1 {
			m.Tab = f.str()
		}
		return nil
	})
}

type DayGroup struct {
	Label        string
	Appointments []*Appointment
}

func (m *DayGroup) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Label)
	for _, a := range m.Appointments {
		e.msg(2, a)
	}
	return e.b
}

func (m *DayGroup) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Label = f.str()
		case 2:
			a := &Appointment{}
			if err := f.msg(a); err != nil {
				return err
			}
			m.Appointments = append(m.Appointments, a)
		}
		return nil
	})
}

type ListAppointmentsResponse struct {
	Groups []*DayGroup
}

func (m *ListAppointmentsResponse) MarshalWire() []byte {
	var e encoder
	for _, g := range m.Groups {
		e.msg(1, g)
	}
	return e.b
}

func (m *ListAppointmentsResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		g := &DayGroup{}
		if err := f.msg(g); err != nil {
			return err
		}
		m.Groups = append(m.Groups, g)
		return nil
	})
}

type DashboardResponse struct {
	Total     int
	Completed int
	Pending   int
	Next      *Appointment
	Queue     []*Appointment
}

func (m *DashboardResponse) MarshalWire() []byte {
	var e encoder
	e.integer(1, m.Total)
	e.integer(2, m.Completed)
	e.integer(3, m.Pending)
	if m.Next != nil {
		e.msg(4, m.Next)
	}
	for _, a := range m.Queue {
		e.msg(5, a)
	}
	return e.b
}

func (m *DashboardResponse) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.Total = f.integer()
		case 2:
			m.Completed = f.integer()
		case 3:
			m.Pending = f.integer()
		case 4:
			m.Next = &Appointment{}
			return f.msg(m.Next)
		case 5:
			a := &Appointment{}
			if err := f.msg(a); err != nil {
				return err
			}
			m.Queue = append(m.Queue, a)
		}
		return nil
	})
}

type CancelAppointmentRequest struct {
	ID        string
	Confirmed bool
}

func (m *CancelAppointmentRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.flag(2, m.Confirmed)
	return e.b
}

func (m *CancelAppointmentRequest) UnmarshalWire(b []byte) error {
	return parse(b, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Confirmed = f.flag()
		}
		return nil
	})
}

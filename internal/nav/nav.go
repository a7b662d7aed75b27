// Package nav names the logical destinations the core can ask the client
// to navigate to. Rendering and stack handling belong to the client.
package nav

type Dest string

const (
	Login        Dest = "login"
	Register     Dest = "register"
	Home         Dest = "home"
	Schedule     Dest = "schedule"
	DateTime     Dest = "datetime"
	Appointments Dest = "appointments"
	Profile      Dest = "profile"
)

// Area groups destinations for session gating.
type Area string

const (
	AreaAuth Area = "auth"
	AreaMain Area = "main"
)

func (d Dest) Area() Area {
	switch d {
	case Login, Register:
		return AreaAuth
	default:
		return AreaMain
	}
}

// Path is the client route for d.
func (d Dest) Path() string {
	switch d {
	case Login:
		return "/login"
	case Register:
		return "/register"
	case Home:
		return "/"
	case DateTime:
		return "/fecha-hora"
	case Schedule:
		return "/agendar"
	case Appointments:
		return "/citas"
	case Profile:
		return "/perfil"
	}
	return "/"
}

type Route struct {
	Dest   Dest
	Params map[string]string
}

func To(d Dest) Route { return Route{Dest: d} }

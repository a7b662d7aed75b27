// Package rpc defines the schedule.v1.ScheduleService gRPC contract: the
// messages, their protobuf wire encoding, the service descriptor and a
// typed client.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "schedule.v1.ScheduleService"

// FullMethod returns "/schedule.v1.ScheduleService/<name>".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type ScheduleServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*Route, error)
	Logout(context.Context, *Empty) (*Route, error)
	Profile(context.Context, *Empty) (*ProfileResponse, error)

	ListVehicles(context.Context, *Empty) (*VehicleList, error)
	AddVehicle(context.Context, *AddVehicleRequest) (*VehicleList, error)
	SelectVehicle(context.Context, *IDRequest) (*VehicleList, error)
	DeleteVehicle(context.Context, *IDRequest) (*VehicleList, error)

	ListServices(context.Context, *Empty) (*ServiceList, error)
	Calendar(context.Context, *CalendarRequest) (*CalendarResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error)

	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	AdminDashboard(context.Context, *Empty) (*DashboardResponse, error)
	ToggleAppointment(context.Context, *IDRequest) (*AppointmentResponse, error)
	CompleteAppointment(context.Context, *IDRequest) (*AppointmentResponse, error)
	CancelAppointment(context.Context, *CancelAppointmentRequest) (*Empty, error)
	DeleteAppointment(context.Context, *IDRequest) (*Empty, error)
}

// unary builds a MethodDesc that decodes Req and calls into the server.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp Message](name string, call func(ScheduleServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ScheduleServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ScheduleServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[LoginRequest]("Login", ScheduleServer.Login),
		unary[RegisterRequest]("Register", ScheduleServer.Register),
		unary[Empty]("Logout", ScheduleServer.Logout),
		unary[Empty]("Profile", ScheduleServer.Profile),
		unary[Empty]("ListVehicles", ScheduleServer.ListVehicles),
		unary[AddVehicleRequest]("AddVehicle", ScheduleServer.AddVehicle),
		unary[IDRequest]("SelectVehicle", ScheduleServer.SelectVehicle),
		unary[IDRequest]("DeleteVehicle", ScheduleServer.DeleteVehicle),
		unary[Empty]("ListServices", ScheduleServer.ListServices),
		unary[CalendarRequest]("Calendar", ScheduleServer.Calendar),
		unary[BookAppointmentRequest]("BookAppointment", ScheduleServer.BookAppointment),
		unary[ListAppointmentsRequest]("ListAppointments", ScheduleServer.ListAppointments),
		unary[Empty]("AdminDashboard", ScheduleServer.AdminDashboard),
		unary[IDRequest]("ToggleAppointment", ScheduleServer.ToggleAppointment),
		unary[IDRequest]("CompleteAppointment", ScheduleServer.CompleteAppointment),
		unary[CancelAppointmentRequest]("CancelAppointment", ScheduleServer.CancelAppointment),
		unary[IDRequest]("DeleteAppointment", ScheduleServer.DeleteAppointment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "schedule/v1/schedule.proto",
}

func RegisterScheduleServer(s grpc.ServiceRegistrar, srv ScheduleServer) {
	s.RegisterService(&ServiceDesc, srv)
}

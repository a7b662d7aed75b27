package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls ScheduleService over cc using the wire codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		var zero PResp
		return zero, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*Route, error) {
	return invoke[Route](ctx, c.cc, "Register", in, opts)
}

func (c *Client) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Route, error) {
	return invoke[Route](ctx, c.cc, "Logout", in, opts)
}

func (c *Client) Profile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, "Profile", in, opts)
}

func (c *Client) ListVehicles(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*VehicleList, error) {
	return invoke[VehicleList](ctx, c.cc, "ListVehicles", in, opts)
}

func (c *Client) AddVehicle(ctx context.Context, in *AddVehicleRequest, opts ...grpc.CallOption) (*VehicleList, error) {
	return invoke[VehicleList](ctx, c.cc, "AddVehicle", in, opts)
}

func (c *Client) SelectVehicle(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*VehicleList, error) {
	return invoke[VehicleList](ctx, c.cc, "SelectVehicle", in, opts)
}

func (c *Client) DeleteVehicle(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*VehicleList, error) {
	return invoke[VehicleList](ctx, c.cc, "DeleteVehicle", in, opts)
}

func (c *Client) ListServices(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ServiceList, error) {
	return invoke[ServiceList](ctx, c.cc, "ListServices", in, opts)
}

func (c *Client) Calendar(ctx context.Context, in *CalendarRequest, opts ...grpc.CallOption) (*CalendarResponse, error) {
	return invoke[CalendarResponse](ctx, c.cc, "Calendar", in, opts)
}

func (c *Client) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, "BookAppointment", in, opts)
}

func (c *Client) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, "ListAppointments", in, opts)
}

func (c *Client) AdminDashboard(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*DashboardResponse, error) {
	return invoke[DashboardResponse](ctx, c.cc, "AdminDashboard", in, opts)
}

func (c *Client) ToggleAppointment(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, "ToggleAppointment", in, opts)
}

func (c *Client) CompleteAppointment(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, "CompleteAppointment", in, opts)
}

func (c *Client) CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "CancelAppointment", in, opts)
}

func (c *Client) DeleteAppointment(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAppointment", in, opts)
}

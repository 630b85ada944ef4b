package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "scheduling.v1.ScheduleService"

// FullMethod returns the gRPC path of a ScheduleService method.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type ScheduleServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetAvailability(context.Context, *GetAvailabilityRequest) (*GetAvailabilityResponse, error)
	GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error)
	SetSchedule(context.Context, *SetScheduleRequest) (*SetScheduleResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	UpdateAppointmentStatus(context.Context, *UpdateAppointmentStatusRequest) (*UpdateAppointmentStatusResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
}

// unary builds a method descriptor decoding into a fresh R and running the
// interceptor chain around call.
func unary[R Message](name string, newReq func() R, call func(ScheduleServiceServer, context.Context, R) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, ic grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(ScheduleServiceServer)
			if ic == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return ic(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(R))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", func() *RegisterRequest { return &RegisterRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *RegisterRequest) (any, error) { return s.Register(ctx, r) }),
		unary("Login", func() *LoginRequest { return &LoginRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *LoginRequest) (any, error) { return s.Login(ctx, r) }),
		unary("GetAvailability", func() *GetAvailabilityRequest { return &GetAvailabilityRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *GetAvailabilityRequest) (any, error) {
				return s.GetAvailability(ctx, r)
			}),
		unary("GetSchedule", func() *GetScheduleRequest { return &GetScheduleRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *GetScheduleRequest) (any, error) {
				return s.GetSchedule(ctx, r)
			}),
		unary("SetSchedule", func() *SetScheduleRequest { return &SetScheduleRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *SetScheduleRequest) (any, error) {
				return s.SetSchedule(ctx, r)
			}),
		unary("CreateAppointment", func() *CreateAppointmentRequest { return &CreateAppointmentRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *CreateAppointmentRequest) (any, error) {
				return s.CreateAppointment(ctx, r)
			}),
		unary("ListAppointments", func() *ListAppointmentsRequest { return &ListAppointmentsRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *ListAppointmentsRequest) (any, error) {
				return s.ListAppointments(ctx, r)
			}),
		unary("UpdateAppointmentStatus", func() *UpdateAppointmentStatusRequest { return &UpdateAppointmentStatusRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *UpdateAppointmentStatusRequest) (any, error) {
				return s.UpdateAppointmentStatus(ctx, r)
			}),
		unary("DeleteAppointment", func() *DeleteAppointmentRequest { return &DeleteAppointmentRequest{} },
			func(s ScheduleServiceServer, ctx context.Context, r *DeleteAppointmentRequest) (any, error) {
				return s.DeleteAppointment(ctx, r)
			}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "scheduling/v1/schedule.proto",
}

func RegisterScheduleServiceServer(s grpc.ServiceRegistrar, srv ScheduleServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls ScheduleService over any connection, forcing Codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) invoke(ctx context.Context, method string, in, out Message, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, FullMethod(method), in, out, opts...)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := &RegisterResponse{}
	return out, c.invoke(ctx, "Register", in, out, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := &LoginResponse{}
	return out, c.invoke(ctx, "Login", in, out, opts...)
}

func (c *Client) GetAvailability(ctx context.Context, in *GetAvailabilityRequest, opts ...grpc.CallOption) (*GetAvailabilityResponse, error) {
	out := &GetAvailabilityResponse{}
	return out, c.invoke(ctx, "GetAvailability", in, out, opts...)
}

func (c *Client) GetSchedule(ctx context.Context, in *GetScheduleRequest, opts ...grpc.CallOption) (*GetScheduleResponse, error) {
	out := &GetScheduleResponse{}
	return out, c.invoke(ctx, "GetSchedule", in, out, opts...)
}

func (c *Client) SetSchedule(ctx context.Context, in *SetScheduleRequest, opts ...grpc.CallOption) (*SetScheduleResponse, error) {
	out := &SetScheduleResponse{}
	return out, c.invoke(ctx, "SetSchedule", in, out, opts...)
}

func (c *Client) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	out := &CreateAppointmentResponse{}
	return out, c.invoke(ctx, "CreateAppointment", in, out, opts...)
}

func (c *Client) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	out := &ListAppointmentsResponse{}
	return out, c.invoke(ctx, "ListAppointments", in, out, opts...)
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, in *UpdateAppointmentStatusRequest, opts ...grpc.CallOption) (*UpdateAppointmentStatusResponse, error) {
	out := &UpdateAppointmentStatusResponse{}
	return out, c.invoke(ctx, "UpdateAppointmentStatus", in, out, opts...)
}

func (c *Client) DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error) {
	out := &DeleteAppointmentResponse{}
	return out, c.invoke(ctx, "DeleteAppointment", in, out, opts...)
}

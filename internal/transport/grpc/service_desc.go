package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "salonbook.v1.Salonbook"

// SalonbookServer is the server API of salonbook.v1.Salonbook.
type SalonbookServer interface {
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*AppointmentResponse, error)
	RescheduleAppointment(context.Context, *RescheduleAppointmentRequest) (*AppointmentResponse, error)
	CancelAppointment(context.Context, *CancelAppointmentRequest) (*CancelAppointmentResponse, error)
	GetBusinessHours(context.Context, *GetBusinessHoursRequest) (*BusinessHoursResponse, error)
	SetBusinessHours(context.Context, *SetBusinessHoursRequest) (*BusinessHoursResponse, error)
	DayView(context.Context, *DayViewRequest) (*DayViewResponse, error)
	WeekView(context.Context, *WeekViewRequest) (*WeekViewResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SalonbookServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAppointment", Handler: unaryHandler("CreateAppointment", SalonbookServer.CreateAppointment)},
		{MethodName: "RescheduleAppointment", Handler: unaryHandler("RescheduleAppointment", SalonbookServer.RescheduleAppointment)},
		{MethodName: "CancelAppointment", Handler: unaryHandler("CancelAppointment", SalonbookServer.CancelAppointment)},
		{MethodName: "GetBusinessHours", Handler: unaryHandler("GetBusinessHours", SalonbookServer.GetBusinessHours)},
		{MethodName: "SetBusinessHours", Handler: unaryHandler("SetBusinessHours", SalonbookServer.SetBusinessHours)},
		{MethodName: "DayView", Handler: unaryHandler("DayView", SalonbookServer.DayView)},
		{MethodName: "WeekView", Handler: unaryHandler("WeekView", SalonbookServer.WeekView)},
		{MethodName: "ListServices", Handler: unaryHandler("ListServices", SalonbookServer.ListServices)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salonbook/v1/salonbook",
}

func RegisterSalonbookServer(s grpc.ServiceRegistrar, srv SalonbookServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](method string, call func(SalonbookServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SalonbookServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SalonbookServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls salonbook.v1.Salonbook with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, "CreateAppointment", in, opts)
}

func (c *Client) RescheduleAppointment(ctx context.Context, in *RescheduleAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, "RescheduleAppointment", in, opts)
}

func (c *Client) CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*CancelAppointmentResponse, error) {
	return invoke[CancelAppointmentResponse](ctx, c.cc, "CancelAppointment", in, opts)
}

func (c *Client) GetBusinessHours(ctx context.Context, in *GetBusinessHoursRequest, opts ...grpc.CallOption) (*BusinessHoursResponse, error) {
	return invoke[BusinessHoursResponse](ctx, c.cc, "GetBusinessHours", in, opts)
}

func (c *Client) SetBusinessHours(ctx context.Context, in *SetBusinessHoursRequest, opts ...grpc.CallOption) (*BusinessHoursResponse, error) {
	return invoke[BusinessHoursResponse](ctx, c.cc, "SetBusinessHours", in, opts)
}

func (c *Client) DayView(ctx context.Context, in *DayViewRequest, opts ...grpc.CallOption) (*DayViewResponse, error) {
	return invoke[DayViewResponse](ctx, c.cc, "DayView", in, opts)
}

func (c *Client) WeekView(ctx context.Context, in *WeekViewRequest, opts ...grpc.CallOption) (*WeekViewResponse, error) {
	return invoke[WeekViewResponse](ctx, c.cc, "WeekView", in, opts)
}

func (c *Client) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesResponse](ctx, c.cc, "ListServices", in, opts)
}

package grpc

import (
	"context"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"google.golang.org/grpc"
)

const serviceName = "reservations.ReservationsService"

type ReservationsServiceServer interface {
	AdminLogin(context.Context, *LoginRequest) (*Empty, error)
	AdminLogout(context.Context, *Empty) (*Empty, error)
	AdminAddRoom(context.Context, *RoomRequest) (*Empty, error)
	AdminRemoveRoom(context.Context, *RoomRequest) (*Empty, error)
	AdminUpdateRoom(context.Context, *UpdateRoomRequest) (*reservations.Room, error)
	ListRooms(context.Context, *Empty) (*RoomsResponse, error)
	Reserve(context.Context, *ReserveRequest) (*ReservationsResponse, error)
	CancelReservation(context.Context, *ReservationIDRequest) (*Empty, error)
	ListReservations(context.Context, *Empty) (*ReservationsResponse, error)
	ReservationsByDay(context.Context, *DayRequest) (*reservations.DayReport, error)
}

type reservationsService struct {
	interactor *reservations.Interactor
}

func NewReservationsService(interactor *reservations.Interactor) ReservationsServiceServer {
	return &reservationsService{interactor: interactor}
}

func (s *reservationsService) AdminLogin(ctx context.Context, req *LoginRequest) (*Empty, error) {
	return &Empty{}, toStatus(s.interactor.AdminLogin(ctx, req.ID, req.Password))
}

func (s *reservationsService) AdminLogout(ctx context.Context, _ *Empty) (*Empty, error) {
	s.interactor.AdminLogout(ctx)
	return &Empty{}, nil
}

func (s *reservationsService) AdminAddRoom(ctx context.Context, req *RoomRequest) (*Empty, error) {
	return &Empty{}, toStatus(s.interactor.AdminAddRoom(ctx, req.Name))
}

func (s *reservationsService) AdminRemoveRoom(ctx context.Context, req *RoomRequest) (*Empty, error) {
	return &Empty{}, toStatus(s.interactor.AdminRemoveRoom(ctx, req.Name))
}

func (s *reservationsService) AdminUpdateRoom(ctx context.Context, req *UpdateRoomRequest) (*reservations.Room, error) {
	room, err := s.interactor.AdminUpdateRoom(ctx, req.Name, req.Update)
	if err != nil {
		return nil, toStatus(err)
	}

	return &room, nil
}

func (s *reservationsService) ListRooms(ctx context.Context, _ *Empty) (*RoomsResponse, error) {
	rooms, err := s.interactor.GetRooms(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &RoomsResponse{Rooms: rooms}, nil
}

func (s *reservationsService) Reserve(ctx context.Context, req *ReserveRequest) (*ReservationsResponse, error) {
	repeat, err := reservations.ParseRepeat(req.Repeat)
	if err != nil {
		return nil, toStatus(err)
	}

	count := req.Count
	if count == 0 {
		count = 1
	}

	created, err := s.interactor.ReserveRepeating(ctx, req.ReservationRequest, repeat, count)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ReservationsResponse{Reservations: created}, nil
}

func (s *reservationsService) CancelReservation(ctx context.Context, req *ReservationIDRequest) (*Empty, error) {
	return &Empty{}, toStatus(s.interactor.CancelReservation(ctx, req.ID))
}

func (s *reservationsService) ListReservations(ctx context.Context, _ *Empty) (*ReservationsResponse, error) {
	list, err := s.interactor.GetReservations(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ReservationsResponse{Reservations: list}, nil
}

func (s *reservationsService) ReservationsByDay(ctx context.Context, req *DayRequest) (*reservations.DayReport, error) {
	report, err := s.interactor.ReservationsByDay(ctx, req.Date)
	if err != nil {
		return nil, toStatus(err)
	}

	return &report, nil
}

func RegisterReservationsServiceServer(s grpc.ServiceRegistrar, srv ReservationsServiceServer) {
	s.RegisterService(&reservationsServiceDesc, srv)
}

var reservationsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ReservationsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("AdminLogin", ReservationsServiceServer.AdminLogin),
		unary("AdminLogout", ReservationsServiceServer.AdminLogout),
		unary("AdminAddRoom", ReservationsServiceServer.AdminAddRoom),
		unary("AdminRemoveRoom", ReservationsServiceServer.AdminRemoveRoom),
		unary("AdminUpdateRoom", ReservationsServiceServer.AdminUpdateRoom),
		unary("ListRooms", ReservationsServiceServer.ListRooms),
		unary("Reserve", ReservationsServiceServer.Reserve),
		unary("CancelReservation", ReservationsServiceServer.CancelReservation),
		unary("ListReservations", ReservationsServiceServer.ListReservations),
		unary("ReservationsByDay", ReservationsServiceServer.ReservationsByDay),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reservations.proto",
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unary builds the method descriptor protoc-gen-go-grpc would generate for a
// unary call.
func unary[Req, Resp any](name string, call func(ReservationsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(ReservationsServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ReservationsServiceServer), ctx, req.(*Req))
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

package grpc

import (
	"context"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls ReservationsService and turns status errors back into the
// domain's sentinel errors, so callers can use errors.Is on either side of
// the wire.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial opens an insecure connection to addr.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	return grpc.NewClient(addr, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	err := c.conn.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(codecName))
	if err != nil {
		return fromStatus(err)
	}

	return nil
}

func (c *Client) AdminLogin(ctx context.Context, id, password string) error {
	return c.invoke(ctx, "AdminLogin", &LoginRequest{ID: id, Password: password}, &Empty{})
}

func (c *Client) AdminLogout(ctx context.Context) error {
	return c.invoke(ctx, "AdminLogout", &Empty{}, &Empty{})
}

func (c *Client) AdminAddRoom(ctx context.Context, name string) error {
	return c.invoke(ctx, "AdminAddRoom", &RoomRequest{Name: name}, &Empty{})
}

func (c *Client) AdminRemoveRoom(ctx context.Context, name string) error {
	return c.invoke(ctx, "AdminRemoveRoom", &RoomRequest{Name: name}, &Empty{})
}

func (c *Client) AdminUpdateRoom(ctx context.Context, name string, update reservations.RoomUpdate) (reservations.Room, error) {
	out := reservations.Room{}
	if err := c.invoke(ctx, "AdminUpdateRoom", &UpdateRoomRequest{Name: name, Update: update}, &out); err != nil {
		return reservations.Room{}, err
	}

	return out, nil
}

func (c *Client) GetRooms(ctx context.Context) ([]reservations.Room, error) {
	out := &RoomsResponse{}
	if err := c.invoke(ctx, "ListRooms", &Empty{}, out); err != nil {
		return nil, err
	}

	return out.Rooms, nil
}

func (c *Client) ReserveRepeating(ctx context.Context, req reservations.ReservationRequest, repeat reservations.Repeat, count int) ([]reservations.Reservation, error) {
	out := &ReservationsResponse{}
	in := &ReserveRequest{ReservationRequest: req, Repeat: string(repeat), Count: count}
	if err := c.invoke(ctx, "Reserve", in, out); err != nil {
		return nil, err
	}

	return out.Reservations, nil
}

func (c *Client) CancelReservation(ctx context.Context, id string) error {
	return c.invoke(ctx, "CancelReservation", &ReservationIDRequest{ID: id}, &Empty{})
}

func (c *Client) GetReservations(ctx context.Context) ([]reservations.Reservation, error) {
	out := &ReservationsResponse{}
	if err := c.invoke(ctx, "ListReservations", &Empty{}, out); err != nil {
		return nil, err
	}

	return out.Reservations, nil
}

func (c *Client) ReservationsByDay(ctx context.Context, date string) (reservations.DayReport, error) {
	out := reservations.DayReport{}
	if err := c.invoke(ctx, "ReservationsByDay", &DayRequest{Date: date}, &out); err != nil {
		return reservations.DayReport{}, err
	}

	return out, nil
}

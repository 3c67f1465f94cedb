package grpc

import (
	"errors"
	"strings"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{reservations.ErrAuthFailed, codes.Unauthenticated},
	{reservations.ErrPermissionDenied, codes.PermissionDenied},
	{reservations.ErrRoomNotFound, codes.NotFound},
	{reservations.ErrReservationNotFound, codes.NotFound},
	{reservations.ErrRoomExists, codes.AlreadyExists},
	{reservations.ErrSlotTaken, codes.AlreadyExists},
	{reservations.ErrInvalidArgument, codes.InvalidArgument},
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}

	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, err.Error())
		}
	}

	return status.Error(codes.Internal, err.Error())
}

// fromStatus restores the domain error a status was built from. The message
// of a status produced by toStatus starts with the sentinel's text.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	for _, ec := range errorCodes {
		if st.Code() == ec.code && strings.HasPrefix(st.Message(), ec.err.Error()) {
			return &remoteError{sentinel: ec.err, message: st.Message()}
		}
	}

	return err
}

type remoteError struct {
	sentinel error
	message  string
}

func (e *remoteError) Error() string { return e.message }

func (e *remoteError) Unwrap() error { return e.sentinel }

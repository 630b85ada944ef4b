// Package handler implements the ScheduleService gRPC server on top of the
// account and scheduling services.
package handler

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"scheduling-api/internal/account"
	"scheduling-api/internal/apperr"
	"scheduling-api/internal/middleware"
	"scheduling-api/internal/rpc"
	"scheduling-api/internal/scheduling"
)

var _ rpc.ScheduleServiceServer = (*Handler)(nil)

type Handler struct {
	accounts *account.Service
	sched    *scheduling.Service
	log      *zap.Logger
}

func New(accounts *account.Service, sched *scheduling.Service, log *zap.Logger) *Handler {
	return &Handler{accounts: accounts, sched: sched, log: log}
}

// caller is set by the auth interceptor for every non-open method.
func caller(ctx context.Context) (string, error) {
	uid, ok := middleware.UserID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "no token")
	}
	return uid, nil
}

var codeOf = map[apperr.Kind]codes.Code{
	apperr.KindInvalidArgument:     codes.InvalidArgument,
	apperr.KindNotFound:            codes.NotFound,
	apperr.KindNoSchedule:          codes.NotFound,
	apperr.KindInvalidAvailability: codes.FailedPrecondition,
	apperr.KindConflict:            codes.AlreadyExists,
	apperr.KindUnauthenticated:     codes.Unauthenticated,
}

// toStatus maps a service error onto a gRPC status; internal errors are
// logged and hidden from the client.
func (h *Handler) toStatus(method string, err error) error {
	k := apperr.KindOf(err)
	code, ok := codeOf[k]
	if !ok {
		h.log.Error("request failed", zap.String("method", method), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, apperr.Message(err))
}

// NewServer builds the gRPC server with the codec and interceptor chain:
// logging, then rate limiting, then authentication.
func NewServer(h *Handler, a middleware.Authenticator, rl *middleware.RateLimiter, log *zap.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log),
			middleware.RateLimit(rl),
			middleware.Auth(a),
		),
	)
	rpc.RegisterScheduleServiceServer(srv, h)
	return srv
}

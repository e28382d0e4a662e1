package wire

import (
	"context"
	"errors"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
)

// #region server
// Server implements ProtocolServer on top of an engine queue.
type Server struct {
	queue  *engine.Queue
	logger *zap.Logger
}

// NewServer returns a server feeding q. logger may be nil.
func NewServer(q *engine.Queue, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{queue: q, logger: logger}
}

// Execute runs one input line.
func (s *Server) Execute(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	resp, err := s.queue.Submit(ctx, in.GetValue())
	if err != nil {
		return nil, rpcError(err)
	}
	out, err := toStruct(resp)
	if err != nil {
		s.logger.Error("encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Status returns the session summary.
func (s *Server) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := s.queue.Snapshot(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	out, err := toStruct(st.Summary())
	if err != nil {
		s.logger.Error("encode status", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func rpcError(err error) error {
	if errors.Is(err, engine.ErrQueueClosed) {
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.FromContextError(err).Err()
}
// #endregion server

// #region serve
// Serve registers srv on a new grpc.Server and serves lis until ctx ends.
func Serve(ctx context.Context, lis net.Listener, srv *Server) error {
	gs := grpc.NewServer()
	RegisterProtocolServer(gs, srv)

	go func() {
		<-ctx.Done()
		gs.GracefulStop()
	}()

	srv.logger.Info("grpc listening", zap.String("addr", lis.Addr().String()))
	if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
// #endregion serve

// Package grpc exposes the gRPC session endpoint of the development API
// server: the standard health service, where the session service name only
// answers callers presenting an accepted access token.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Authenticator verifies an access token.
type Authenticator interface {
	Authenticate(token string) (*models.PublicUser, error)
}

type GRPCServer struct {
	address string
	auth    Authenticator
	health  *health.Server
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, auth Authenticator) *GRPCServer {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(common.SessionHealthService, healthpb.HealthCheckResponse_SERVING)

	return &GRPCServer{
		address: address,
		auth:    auth,
		health:  h,
		logger:  l.With("module", "grpc_server"),
	}
}

// sessionHealth refuses Watch on the session service; streams bypass the
// unary token check.
type sessionHealth struct {
	*health.Server
}

func (h sessionHealth) Watch(req *healthpb.HealthCheckRequest, stream healthpb.Health_WatchServer) error {
	if req.GetService() == common.SessionHealthService {
		return status.Error(codes.Unimplemented, "watch is not available for the session service")
	}
	return h.Server.Watch(req, stream)
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	healthpb.RegisterHealthServer(srv, sessionHealth{Server: s.health})
	return srv
}

// Serve accepts connections on lis until ctx is cancelled or the listener
// fails. It returns once the server has fully stopped.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	serveDone := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			s.health.Shutdown()
			srv.GracefulStop()
		case <-serveDone:
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(serveDone)
	<-stopped
	return err
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

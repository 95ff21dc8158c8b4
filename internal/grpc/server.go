// Package grpc fronts the Command Actor and Query Actor with a gRPC
// service. It is a thin adapter: every RPC dispatches into
// actor.CommandActor.Submit or query.Run by a kind string and marshals
// the command/query's own Go struct to and from JSON, rather than
// hand-mapping every field onto a dedicated protobuf message. The
// business logic stays entirely in internal/netcmd and internal/query.
package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/chomba/rackd/api/proto/rackdpb"
	"github.com/chomba/rackd/internal/actor"
	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/logging"
	"github.com/chomba/rackd/internal/query"
)

// Server implements rackdpb.RackdServiceServer over a Command Actor and
// a read-only database handle for queries.
type Server struct {
	rackdpb.UnimplementedRackdServiceServer

	commands *actor.CommandActor
	queries  db.Database

	grpcServer *grpc.Server
	listener   net.Listener

	events chan *rackdpb.LinkEvent
}

// NewServer creates a gRPC server fronting the given Command Actor and
// query database handle (typically the Query Actor's read pool).
func NewServer(commands *actor.CommandActor, queries db.Database) *Server {
	return &Server{
		commands: commands,
		queries:  queries,
		events:   make(chan *rackdpb.LinkEvent, 64),
	}
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = lis

	s.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			errorHandlingInterceptor,
		),
	)
	rackdpb.RegisterRackdServiceServer(s.grpcServer, s)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s.grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(s.grpcServer)

	logging.Op().Info("gRPC server started", "addr", addr)

	go func() {
		if err := s.grpcServer.Serve(lis); err != nil {
			logging.Op().Error("gRPC server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

// PublishLinkEvent relays a tracker observation to StreamLinkEvents
// subscribers. Non-blocking: a subscriber that falls behind misses
// events rather than stalling the tracker.
func (s *Server) PublishLinkEvent(e *rackdpb.LinkEvent) {
	select {
	case s.events <- e:
	default:
	}
}

// SubmitCommand dispatches a JSON-encoded command by kind to the
// Command Actor and returns its JSON-encoded result.
func (s *Server) SubmitCommand(ctx context.Context, req *rackdpb.CommandRequest) (*rackdpb.CommandResponse, error) {
	cmd, err := decodeCommand(req.Kind, req.Payload)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	value, err := s.commands.Submit(ctx, cmd)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "submit command: %v", err)
	}

	result, err := json.Marshal(value)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}

	return &rackdpb.CommandResponse{Result: result}, nil
}

// Query dispatches a JSON-encoded query by kind against the read pool.
func (s *Server) Query(ctx context.Context, req *rackdpb.QueryRequest) (*rackdpb.QueryResponse, error) {
	result, err := runQuery(ctx, s.queries, req.Kind, req.Params)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "run query: %v", err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}

	return &rackdpb.QueryResponse{Result: encoded}, nil
}

// HealthCheck reports daemon health.
func (s *Server) HealthCheck(ctx context.Context, req *rackdpb.HealthCheckRequest) (*rackdpb.HealthCheckResponse, error) {
	components := make(map[string]string)
	serviceStatus := "ok"

	if err := s.queries.Ping(ctx); err != nil {
		components["postgres"] = "unhealthy: " + err.Error()
		serviceStatus = "degraded"
	} else {
		components["postgres"] = "healthy"
	}
	components["grpc"] = "healthy"

	return &rackdpb.HealthCheckResponse{
		Status:     serviceStatus,
		Components: components,
	}, nil
}

// StreamLinkEvents relays tracker observations to the caller until the
// stream's context is cancelled. It filters by link id when one is given.
func (s *Server) StreamLinkEvents(req *rackdpb.StreamLinkEventsRequest, stream rackdpb.RackdService_StreamLinkEventsServer) error {
	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-s.events:
			if req.LinkId != "" && e.LinkId != req.LinkId {
				continue
			}
			if err := stream.Send(e); err != nil {
				return err
			}
		}
	}
}

package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/service"
	pkglog "github.com/weiawesome/uidgen/pkg/log"
	pb "github.com/weiawesome/uidgen/proto/id"
)

type idServer struct {
	pb.UnimplementedIDServiceServer
	svc service.IDService
}

// NewServer builds a gRPC server with IDService and the logging interceptor
// registered. It does not listen.
func NewServer(svc service.IDService, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
	)
	pb.RegisterIDServiceServer(s, &idServer{svc: svc})
	return s
}

func parseKind(s string) (kind.Kind, error) {
	k, err := kind.Parse(s)
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return k, nil
}

// toStatus maps service errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, kind.ErrUnknown),
		errors.Is(err, dispatch.ErrInvalidCount),
		errors.Is(err, dispatch.ErrInvalidNamespace),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, export.ErrUnknownFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, dispatch.ErrCountTooLarge):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, service.ErrUnsupported):
		return status.Error(codes.Unimplemented, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *idServer) GenerateBatch(ctx context.Context, req *pb.GenerateBatchRequest) (*pb.GenerateBatchResponse, error) {
	k, err := parseKind(req.GetKind())
	if err != nil {
		return nil, err
	}

	res, err := s.svc.Generate(ctx, dispatch.Request{
		Kind:      k,
		Namespace: req.Namespace,
		Name:      req.Name,
		Prefix:    req.Prefix,
		Count:     int(req.GetCount()),
	})
	if err != nil {
		l := pkglog.Ctx(ctx)
		l.Warn().Err(err).Str(pkglog.FieldKind, k.String()).Msg("failed to generate batch")
		return nil, toStatus(err)
	}

	return &pb.GenerateBatchResponse{
		Kind:                 res.Kind.String(),
		Ids:                  res.IDs,
		NamespaceSubstituted: res.NamespaceSubstituted,
	}, nil
}

func (s *idServer) ListKinds(ctx context.Context, _ *pb.ListKindsRequest) (*pb.ListKindsResponse, error) {
	infos := s.svc.Kinds(ctx)
	out := make([]*pb.KindInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, &pb.KindInfo{
			Kind:  info.Kind.String(),
			Name:  info.Name,
			Class: info.Class,
		})
	}
	return &pb.ListKindsResponse{Kinds: out, MaxCount: int32(s.svc.MaxCount())}, nil
}

func (s *idServer) ValidateID(ctx context.Context, req *pb.ValidateIDRequest) (*pb.ValidateIDResponse, error) {
	k, err := parseKind(req.GetKind())
	if err != nil {
		return nil, err
	}

	v, err := s.svc.Validate(ctx, k, req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ValidateIDResponse{
		Valid:  v.Valid,
		Reason: v.Reason,
	}, nil
}

func (s *idServer) ParseID(ctx context.Context, req *pb.ParseIDRequest) (*pb.ParseIDResponse, error) {
	k, err := parseKind(req.GetKind())
	if err != nil {
		return nil, err
	}

	result, err := s.svc.Parse(ctx, k, req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			return &pb.ParseIDResponse{
				Valid:        false,
				ErrorMessage: err.Error(),
			}, nil
		}
		return nil, toStatus(err)
	}

	return &pb.ParseIDResponse{
		Valid:         true,
		TimestampMs:   result.TimestampMs,
		MachineId:     result.MachineID,
		Sequence:      result.Sequence,
		UuidVersion:   result.UUIDVersion,
		UuidVariant:   result.UUIDVariant,
		RandomPayload: result.RandomPayload,
		IdLength:      result.IDLength,
		Alphabet:      result.Alphabet,
	}, nil
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(addr string, svc service.IDService, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(svc, logger)

	go func() {
		logger.Info().Str("addr", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}

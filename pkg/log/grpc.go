package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataKeyRequestID = "x-request-id"

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// creates a child logger with request metadata and injects it into context.
func UnaryServerInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		reqID := requestIDFromMD(ctx)
		child := logger.With().
			Str(FieldRequestID, reqID).
			Str(FieldGRPCMethod, info.FullMethod).
			Logger()

		ctx = WithLogger(ctx, child)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		child.Info().
			Str(FieldGRPCCode, code.String()).
			Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
			Err(err).
			Msg("unary call completed")

		return resp, err
	}
}

func requestIDFromMD(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		vals := md.Get(metadataKeyRequestID)
		if len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return uuid.New().String()
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that
// forwards a request ID in outgoing metadata and logs each call at debug.
func UnaryClientInterceptor(logger zerolog.Logger) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		start := time.Now()

		reqID := uuid.New().String()
		if md, ok := metadata.FromOutgoingContext(ctx); ok {
			if vals := md.Get(metadataKeyRequestID); len(vals) > 0 && vals[0] != "" {
				reqID = vals[0]
			}
		}
		ctx = metadata.AppendToOutgoingContext(ctx, metadataKeyRequestID, reqID)

		err := invoker(ctx, method, req, reply, cc, opts...)

		logger.Debug().
			Str(FieldRequestID, reqID).
			Str(FieldGRPCMethod, method).
			Str(FieldGRPCCode, status.Code(err).String()).
			Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
			Err(err).
			Msg("unary call sent")

		return err
	}
}

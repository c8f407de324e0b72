package client

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/weiawesome/uidgen/internal/dispatch"
	pkglog "github.com/weiawesome/uidgen/pkg/log"
	pb "github.com/weiawesome/uidgen/proto/id"
)

// IDClient talks to a remote uidgen gRPC server.
type IDClient struct {
	conn   *grpc.ClientConn
	client pb.IDServiceClient
}

// NewIDClient connects lazily to address. Extra dial options are appended,
// which tests use to inject an in-memory dialer.
func NewIDClient(address string, logger zerolog.Logger, opts ...grpc.DialOption) (*IDClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(pkglog.UnaryClientInterceptor(logger)),
	}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to id service: %w", err)
	}

	return &IDClient{
		conn:   conn,
		client: pb.NewIDServiceClient(conn),
	}, nil
}

// GenerateBatch asks the server for one batch. Counts the wire cannot carry
// are rejected locally.
func (c *IDClient) GenerateBatch(ctx context.Context, req dispatch.Request) ([]string, error) {
	if req.Count < 0 {
		return nil, fmt.Errorf("%w: %d", dispatch.ErrInvalidCount, req.Count)
	}
	if req.Count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", dispatch.ErrCountTooLarge, req.Count)
	}

	resp, err := c.client.GenerateBatch(ctx, &pb.GenerateBatchRequest{
		Kind:      req.Kind.String(),
		Namespace: req.Namespace,
		Name:      req.Name,
		Prefix:    req.Prefix,
		Count:     int32(req.Count),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate IDs: %w", err)
	}
	ids := resp.GetIds()
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ListKinds returns the kinds the server knows.
func (c *IDClient) ListKinds(ctx context.Context) ([]*pb.KindInfo, error) {
	resp, err := c.client.ListKinds(ctx, &pb.ListKindsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list kinds: %w", err)
	}
	return resp.GetKinds(), nil
}

func (c *IDClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

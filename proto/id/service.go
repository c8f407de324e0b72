package idpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "uidgen.v1.IDService"

const (
	IDService_GenerateBatch_FullMethodName = "/" + ServiceName + "/GenerateBatch"
	IDService_ListKinds_FullMethodName     = "/" + ServiceName + "/ListKinds"
	IDService_ValidateID_FullMethodName    = "/" + ServiceName + "/ValidateID"
	IDService_ParseID_FullMethodName       = "/" + ServiceName + "/ParseID"
)

// IDServiceClient is the client API for IDService.
type IDServiceClient interface {
	GenerateBatch(ctx context.Context, in *GenerateBatchRequest, opts ...grpc.CallOption) (*GenerateBatchResponse, error)
	ListKinds(ctx context.Context, in *ListKindsRequest, opts ...grpc.CallOption) (*ListKindsResponse, error)
	ValidateID(ctx context.Context, in *ValidateIDRequest, opts ...grpc.CallOption) (*ValidateIDResponse, error)
	ParseID(ctx context.Context, in *ParseIDRequest, opts ...grpc.CallOption) (*ParseIDResponse, error)
}

type idServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewIDServiceClient wraps cc. Calls carry the msgpack content-subtype.
func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &idServiceClient{cc}
}

func (c *idServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *idServiceClient) GenerateBatch(ctx context.Context, in *GenerateBatchRequest, opts ...grpc.CallOption) (*GenerateBatchResponse, error) {
	out := new(GenerateBatchResponse)
	if err := c.invoke(ctx, IDService_GenerateBatch_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) ListKinds(ctx context.Context, in *ListKindsRequest, opts ...grpc.CallOption) (*ListKindsResponse, error) {
	out := new(ListKindsResponse)
	if err := c.invoke(ctx, IDService_ListKinds_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) ValidateID(ctx context.Context, in *ValidateIDRequest, opts ...grpc.CallOption) (*ValidateIDResponse, error) {
	out := new(ValidateIDResponse)
	if err := c.invoke(ctx, IDService_ValidateID_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) ParseID(ctx context.Context, in *ParseIDRequest, opts ...grpc.CallOption) (*ParseIDResponse, error) {
	out := new(ParseIDResponse)
	if err := c.invoke(ctx, IDService_ParseID_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// IDServiceServer is the server API for IDService.
type IDServiceServer interface {
	GenerateBatch(context.Context, *GenerateBatchRequest) (*GenerateBatchResponse, error)
	ListKinds(context.Context, *ListKindsRequest) (*ListKindsResponse, error)
	ValidateID(context.Context, *ValidateIDRequest) (*ValidateIDResponse, error)
	ParseID(context.Context, *ParseIDRequest) (*ParseIDResponse, error)
}

// UnimplementedIDServiceServer can be embedded to have forward compatible implementations.
type UnimplementedIDServiceServer struct{}

func (UnimplementedIDServiceServer) GenerateBatch(context.Context, *GenerateBatchRequest) (*GenerateBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateBatch not implemented")
}

func (UnimplementedIDServiceServer) ListKinds(context.Context, *ListKindsRequest) (*ListKindsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListKinds not implemented")
}

func (UnimplementedIDServiceServer) ValidateID(context.Context, *ValidateIDRequest) (*ValidateIDResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateID not implemented")
}

func (UnimplementedIDServiceServer) ParseID(context.Context, *ParseIDRequest) (*ParseIDResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ParseID not implemented")
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(IDServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IDServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IDServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IDService_ServiceDesc is the grpc.ServiceDesc for IDService.
var IDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateBatch",
			Handler:    unaryHandler(IDService_GenerateBatch_FullMethodName, IDServiceServer.GenerateBatch),
		},
		{
			MethodName: "ListKinds",
			Handler:    unaryHandler(IDService_ListKinds_FullMethodName, IDServiceServer.ListKinds),
		},
		{
			MethodName: "ValidateID",
			Handler:    unaryHandler(IDService_ValidateID_FullMethodName, IDServiceServer.ValidateID),
		},
		{
			MethodName: "ParseID",
			Handler:    unaryHandler(IDService_ParseID_FullMethodName, IDServiceServer.ParseID),
		},
	},
	Streams: []grpc.StreamDesc{},
}

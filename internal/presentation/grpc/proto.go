package grpc

// proto.go hand-writes the service descriptor and client for
// autojudge.difficulty.v1.DifficultyService. Messages are plain structs
// carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DifficultyServiceName is the fully qualified gRPC service name.
	DifficultyServiceName = "autojudge.difficulty.v1.DifficultyService"

	predictDifficultyMethod = "/" + DifficultyServiceName + "/PredictDifficulty"
)

// DifficultyServiceServer is the server API for DifficultyService.
type DifficultyServiceServer interface {
	PredictDifficulty(context.Context, *PredictDifficultyRequest) (*PredictDifficultyResponse, error)
	mustEmbedUnimplementedDifficultyServiceServer()
}

// UnimplementedDifficultyServiceServer provides forward-compatible default implementations.
type UnimplementedDifficultyServiceServer struct{}

func (UnimplementedDifficultyServiceServer) PredictDifficulty(context.Context, *PredictDifficultyRequest) (*PredictDifficultyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PredictDifficulty not implemented")
}
func (UnimplementedDifficultyServiceServer) mustEmbedUnimplementedDifficultyServiceServer() {}

// RegisterDifficultyServiceServer registers the DifficultyServiceServer with the gRPC server.
func RegisterDifficultyServiceServer(s grpclib.ServiceRegistrar, srv DifficultyServiceServer) {
	s.RegisterService(&_DifficultyService_serviceDesc, srv)
}

var _DifficultyService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: DifficultyServiceName,
	HandlerType: (*DifficultyServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PredictDifficulty", Handler: _DifficultyService_PredictDifficulty_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "autojudge/difficulty/v1/difficulty.proto",
}

func _DifficultyService_PredictDifficulty_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(PredictDifficultyRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DifficultyServiceServer).PredictDifficulty(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: predictDifficultyMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DifficultyServiceServer).PredictDifficulty(ctx, req.(*PredictDifficultyRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// DifficultyServiceClient is the client API for DifficultyService.
type DifficultyServiceClient interface {
	PredictDifficulty(ctx context.Context, in *PredictDifficultyRequest, opts ...grpclib.CallOption) (*PredictDifficultyResponse, error)
}

type difficultyServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewDifficultyServiceClient creates a client that sends JSON-encoded messages.
func NewDifficultyServiceClient(cc grpclib.ClientConnInterface) DifficultyServiceClient {
	return &difficultyServiceClient{cc: cc}
}

func (c *difficultyServiceClient) PredictDifficulty(ctx context.Context, in *PredictDifficultyRequest, opts ...grpclib.CallOption) (*PredictDifficultyResponse, error) {
	out := new(PredictDifficultyResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(JSONCodecName)}, opts...)
	if err := c.cc.Invoke(ctx, predictDifficultyMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName                 = "pixcode.v1.BRCode"
	GenerateStaticPayloadMethod = "/" + ServiceName + "/GenerateStaticPayload"
)

// BRCodeServer takes a google.protobuf.Struct with key, name, city, amount and
// txid members and answers with the payload as a google.protobuf.StringValue.
type BRCodeServer interface {
	GenerateStaticPayload(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BRCodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateStaticPayload",
			Handler:    generateStaticPayloadHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pixcode/v1/brcode.proto",
}

func RegisterBRCodeServer(s grpc.ServiceRegistrar, srv BRCodeServer) {
	s.RegisterService(&serviceDesc, srv)
}

func generateStaticPayloadHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BRCodeServer).GenerateStaticPayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GenerateStaticPayloadMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BRCodeServer).GenerateStaticPayload(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

package grpc

// proto.go defines the gRPC server interface derived from
// terraprime/financing/v1/financing.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/anthonidev/terra-prime-financing/api/gen/go/terraprime/financing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FinancingServiceServer is the server API for FinancingService.
// It mirrors the proto-generated interface from terraprime.financing.v1.FinancingService.
type FinancingServiceServer interface {
	GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error)
	ConfirmSchedule(context.Context, *ConfirmScheduleRequest) (*ConfirmScheduleResponse, error)
	GetInstallments(context.Context, *GetInstallmentsRequest) (*GetInstallmentsResponse, error)
	ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error)
	AdjustLateFee(context.Context, *AdjustLateFeeRequest) (*AdjustLateFeeResponse, error)
	mustEmbedUnimplementedFinancingServiceServer()
}

// UnimplementedFinancingServiceServer provides forward-compatible default implementations.
type UnimplementedFinancingServiceServer struct{}

func (UnimplementedFinancingServiceServer) GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedFinancingServiceServer) ConfirmSchedule(context.Context, *ConfirmScheduleRequest) (*ConfirmScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ConfirmSchedule not implemented")
}
func (UnimplementedFinancingServiceServer) GetInstallments(context.Context, *GetInstallmentsRequest) (*GetInstallmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetInstallments not implemented")
}
func (UnimplementedFinancingServiceServer) ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedFinancingServiceServer) AdjustLateFee(context.Context, *AdjustLateFeeRequest) (*AdjustLateFeeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AdjustLateFee not implemented")
}
func (UnimplementedFinancingServiceServer) mustEmbedUnimplementedFinancingServiceServer() {}

// RegisterFinancingServiceServer registers the FinancingServiceServer with the gRPC server.
func RegisterFinancingServiceServer(s *grpclib.Server, srv FinancingServiceServer) {
	s.RegisterService(&_FinancingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _FinancingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "terraprime.financing.v1.FinancingService",
	HandlerType: (*FinancingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GenerateSchedule", Handler: _FinancingService_GenerateSchedule_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ConfirmSchedule", Handler: _FinancingService_ConfirmSchedule_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetInstallments", Handler: _FinancingService_GetInstallments_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ApplyPayment", Handler: _FinancingService_ApplyPayment_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "AdjustLateFee", Handler: _FinancingService_AdjustLateFee_Handler},       //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GenerateSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GenerateScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terraprime.financing.v1.FinancingService/GenerateSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GenerateSchedule(ctx, req.(*GenerateScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ConfirmSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ConfirmScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ConfirmSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terraprime.financing.v1.FinancingService/ConfirmSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ConfirmSchedule(ctx, req.(*ConfirmScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GetInstallments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetInstallmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GetInstallments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terraprime.financing.v1.FinancingService/GetInstallments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GetInstallments(ctx, req.(*GetInstallmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ApplyPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ApplyPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terraprime.financing.v1.FinancingService/ApplyPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ApplyPayment(ctx, req.(*ApplyPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_AdjustLateFee_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AdjustLateFeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).AdjustLateFee(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terraprime.financing.v1.FinancingService/AdjustLateFee",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).AdjustLateFee(ctx, req.(*AdjustLateFeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

package gateway

import (
	"context"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withAuthorization(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationMetadataKey)
	if token != "" {
		md.Set(common.AuthorizationMetadataKey, common.BearerValue(token))
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryClientInterceptor applies the gateway policy to gRPC calls: the
// credential travels in the authorization metadata and codes.Unauthenticated
// is handled like an HTTP 401.
func (g *Gateway) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		start := g.now()
		err := g.invoke(ctx, method, req, reply, cc, invoker, opts...)
		g.observer.ObserveRequest(method, KindOf(err).String(), g.now().Sub(start))
		return err
	}
}

func (g *Gateway) invoke(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token := g.creds.Token()
	if token != "" && g.expiredLocally(token) {
		g.expire(ctx, "credential expired before sending")
		return &Failure{Kind: KindUnauthorized, Err: common.ErrTokenExpired}
	}

	err := invoker(withAuthorization(ctx, token), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if ok && st.Code() == codes.Unauthenticated {
		g.expire(ctx, "server rejected credential")
		return &Failure{Kind: KindUnauthorized, Err: err}
	}
	return &Failure{Kind: KindRequestFailed, Err: err}
}

package grpc

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", common.ErrInvalidToken
}

func newTestServer() *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), fakeVerifier{"good": "u1"})
}

func withAuth(value string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", value))
}

func TestAccessTokenInterceptor(t *testing.T) {
	s := newTestServer()
	protected := &grpc.UnaryServerInfo{FullMethod: "/lifelog.Records/List"}

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no header", metadata.NewIncomingContext(context.Background(), metadata.MD{})},
		{"wrong scheme", withAuth("Basic good")},
		{"empty token", withAuth("Bearer ")},
		{"bad token", withAuth("Bearer bad")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.accessTokenInterceptor(tt.ctx, nil, protected, func(context.Context, any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			})
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, errUnauthenticated, err)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		resp, err := s.accessTokenInterceptor(withAuth("Bearer good"), nil, protected, func(ctx context.Context, _ any) (any, error) {
			id, ok := auth.IdentityFrom(ctx)
			require.True(t, ok)
			return id.UserID, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", resp)
	})

	t.Run("public method", func(t *testing.T) {
		info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
		resp, err := s.accessTokenInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}

type fakeStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f fakeStream) Context() context.Context { return f.ctx }

func TestAccessTokenStreamInterceptor(t *testing.T) {
	s := newTestServer()
	info := &grpc.StreamServerInfo{FullMethod: "/lifelog.Records/Watch"}

	err := s.accessTokenStreamInterceptor(nil, fakeStream{ctx: context.Background()}, info, func(any, grpc.ServerStream) error {
		t.Fatal("handler must not run")
		return nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	err = s.accessTokenStreamInterceptor(nil, fakeStream{ctx: withAuth("Bearer good")}, info, func(_ any, ss grpc.ServerStream) error {
		id, ok := auth.IdentityFrom(ss.Context())
		require.True(t, ok)
		assert.Equal(t, "u1", id.UserID)
		return nil
	})
	assert.NoError(t, err)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer()
	wantErr := status.Error(codes.NotFound, "nope")

	_, err := s.loggingInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(context.Context, any) (any, error) { return nil, wantErr })
	assert.Equal(t, wantErr, err)
}

func TestPublicMethods_OnlyHealth(t *testing.T) {
	for m := range publicMethods {
		assert.True(t, strings.HasPrefix(m, "/grpc.health.v1.Health/"), m)
	}
}

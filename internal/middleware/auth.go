package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/rpc"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (string, error)
}

type ctxKey string

const UserIDKey ctxKey = "uid"

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserIDKey, uid)
}

// UserID returns the authenticated caller, if any.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}

// skip auth for these
var open = map[string]bool{
	rpc.FullMethod("Register"): true,
	rpc.FullMethod("Login"):    true,
}

func Auth(a Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = vals[0]
		}

		uid, err := a.Authenticate(ctx, raw)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindUnauthenticated {
				return nil, status.Error(codes.Unauthenticated, apperr.Message(err))
			}
			return nil, status.Error(codes.Internal, "internal error")
		}
		return next(WithUserID(ctx, uid), req)
	}
}

// RequireUser rejects requests without a valid bearer token.
func RequireUser(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := authenticate(c, a)
		if err != nil {
			code := http.StatusUnauthorized
			if apperr.KindOf(err) != apperr.KindUnauthenticated {
				code = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(code, gin.H{"error": apperr.Message(err)})
			return
		}
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}

// OptionalUser attaches the caller when a valid token is presented and
// lets anonymous requests through.
func OptionalUser(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, err := authenticate(c, a); err == nil {
			c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), uid))
		}
		c.Next()
	}
}

// authenticate reads the Authorization header, falling back to the
// access_token cookie set by the login endpoint.
func authenticate(c *gin.Context, a Authenticator) (string, error) {
	raw := c.GetHeader("Authorization")
	if raw == "" {
		if ck, err := c.Cookie("access_token"); err == nil {
			raw = ck
		}
	}
	return a.Authenticate(c.Request.Context(), raw)
}

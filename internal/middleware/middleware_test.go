package middleware_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/middleware"
	"scheduling-api/internal/rpc"
)

type tokens map[string]string

func (t tokens) Authenticate(_ context.Context, bearer string) (string, error) {
	if uid, ok := t[bearer]; ok {
		return uid, nil
	}
	return "", apperr.ErrUnauthenticated
}

var known = tokens{"Bearer good": "user-1"}

func echoUser(ctx context.Context, _ any) (any, error) {
	uid, _ := middleware.UserID(ctx)
	return uid, nil
}

func TestAuthInterceptor(t *testing.T) {
	ic := middleware.Auth(known)

	tests := []struct {
		name   string
		method string
		token  string
		want   codes.Code
		uid    string
	}{
		{"open method", rpc.FullMethod("Login"), "", codes.OK, ""},
		{"valid token", rpc.FullMethod("ListAppointments"), "Bearer good", codes.OK, "user-1"},
		{"bad token", rpc.FullMethod("ListAppointments"), "Bearer bad", codes.Unauthenticated, ""},
		{"no token", rpc.FullMethod("GetAvailability"), "", codes.Unauthenticated, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := metadata.MD{}
			if tt.token != "" {
				md.Set("authorization", tt.token)
			}
			ctx := metadata.NewIncomingContext(context.Background(), md)
			resp, err := ic(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, echoUser)
			if got := status.Code(err); got != tt.want {
				t.Fatalf("code = %v, want %v", got, tt.want)
			}
			if err == nil && resp.(string) != tt.uid {
				t.Errorf("uid = %v, want %q", resp, tt.uid)
			}
		})
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	rl := middleware.NewRateLimiter(0.001, 2)
	defer rl.Close()
	ic := middleware.RateLimit(rl)

	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 1}})
	login := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod("Login")}
	for i := 0; i < 2; i++ {
		if _, err := ic(ctx, nil, login, echoUser); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if _, err := ic(ctx, nil, login, echoUser); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}

	other := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod("ListAppointments")}
	if _, err := ic(ctx, nil, other, echoUser); err != nil {
		t.Fatalf("unlimited method was limited: %v", err)
	}
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.RequireUser(known), func(c *gin.Context) {
		uid, _ := middleware.UserID(c.Request.Context())
		c.String(http.StatusOK, uid)
	})

	tests := []struct {
		name   string
		header string
		cookie string
		code   int
		body   string
	}{
		{"header", "Bearer good", "", http.StatusOK, "user-1"},
		{"cookie", "", "Bearer good", http.StatusOK, "user-1"},
		{"missing", "", "", http.StatusUnauthorized, ""},
		{"bad", "Bearer nope", "", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Fatalf("code = %d, want %d", rec.Code, tt.code)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestGinRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := middleware.NewRateLimiter(0.001, 1)
	defer rl.Close()
	r := gin.New()
	r.POST("/auth/login", middleware.GinRateLimit(rl), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	var got []int
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		got = append(got, rec.Code)
	}
	if got[0] != http.StatusNoContent || got[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", got)
	}
}

func TestRateLimitKeysOnClientHost(t *testing.T) {
	login := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod("Login")}
	from := func(ip net.IP, port int, fwd string) context.Context {
		ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: ip, Port: port}})
		if fwd != "" {
			ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(middleware.ForwardedFor, fwd))
		}
		return ctx
	}
	remote := net.IPv4(203, 0, 113, 9)
	loopback := net.IPv4(127, 0, 0, 1)

	tests := []struct {
		name         string
		first, again context.Context
		limited      bool
	}{
		{"reconnect from new port", from(remote, 40000, ""), from(remote, 40001, ""), true},
		{"spoofed forward from remote peer", from(remote, 40000, "198.51.100.1"), from(remote, 40000, "198.51.100.2"), true},
		{"bridge forwards same browser", from(loopback, 5000, "198.51.100.7"), from(loopback, 5000, "198.51.100.7"), true},
		{"bridge forwards distinct browsers", from(loopback, 5000, "198.51.100.7"), from(loopback, 5000, "198.51.100.8"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := middleware.NewRateLimiter(0.001, 1)
			defer rl.Close()
			ic := middleware.RateLimit(rl)

			if _, err := ic(tt.first, nil, login, echoUser); err != nil {
				t.Fatalf("first call: %v", err)
			}
			_, err := ic(tt.again, nil, login, echoUser)
			if got := status.Code(err) == codes.ResourceExhausted; got != tt.limited {
				t.Errorf("limited = %v, want %v (err %v)", got, tt.limited, err)
			}
		})
	}
}

func TestGinRateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := middleware.NewRateLimiter(0.001, 1)
	defer rl.Close()
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		t.Fatal(err)
	}
	r.POST("/auth/login", middleware.GinRateLimit(rl), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req.Header.Set("X-Forwarded-For", net.IPv4(198, 51, 100, byte(i)).String())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusNoContent {
			allowed++
		}
	}
	if allowed != 1 {
		t.Fatalf("allowed %d requests, want 1", allowed)
	}
}

package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func Logging(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)

		lvl := zapcore.InfoLevel
		if code == codes.Internal || code == codes.Unknown {
			lvl = zapcore.ErrorLevel
		}
		log.Log(lvl, "grpc",
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("took", time.Since(start)),
		)
		return resp, err
	}
}

func GinLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		st := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", st),
			zap.String("ip", c.ClientIP()),
			zap.Duration("took", time.Since(start)),
		}
		if st >= 500 {
			log.Error("http", fields...)
			return
		}
		log.Info("http", fields...)
	}
}

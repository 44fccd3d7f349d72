package middleware

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// RequestIDFromMetadata returns the caller's request id, if it sent one.
func RequestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if val := md.Get(requestIDHeader); len(val) > 0 {
		return val[0]
	}
	return ""
}

// UnaryLogger logs every unary call with its status code.
func UnaryLogger(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if id := RequestIDFromMetadata(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if err != nil {
			log.Warn("grpc call failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Debug("grpc call", fields...)
		return resp, nil
	}
}

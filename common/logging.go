package common

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns an interceptor that logs request dispatch and completion.
func Logging(logger *slog.Logger) Interceptor {
	return func(ctx context.Context, req *Request, next Handler) (*APIResponse, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("request failed",
				slog.String("method", req.Method),
				slog.String("path", req.Path),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("request completed",
				slog.String("method", req.Method),
				slog.String("path", req.Path),
				slog.Int("status", resp.StatusCode),
				slog.Duration("elapsed", elapsed),
			)
		}

		return resp, err
	}
}

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

type loggerKey struct{}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps debug, info, warn and error (any case) to a level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored on ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// ForInvocation derives a logger for one Lambda invocation from base, tagged
// with the request id and X-Ray trace id when they are available, and stores
// it on the returned context.
func ForInvocation(ctx context.Context, base *slog.Logger) context.Context {
	logger := base
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		logger = logger.With("request_id", lc.AwsRequestID)
	}
	if lambdacontext.FunctionName != "" {
		logger = logger.With("function_name", lambdacontext.FunctionName)
	}
	if traceID := traceRoot(os.Getenv("_X_AMZN_TRACE_ID")); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}
	return WithLogger(ctx, logger)
}

// traceRoot extracts the Root segment of an X-Ray trace header such as
// "Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1".
func traceRoot(header string) string {
	for _, part := range strings.Split(header, ";") {
		if root, ok := strings.CutPrefix(strings.TrimSpace(part), "Root="); ok {
			return root
		}
	}
	return ""
}

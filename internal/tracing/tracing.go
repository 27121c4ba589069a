// Package tracing records one span per round when tracing is enabled.
// Spans open on the buzz and close on the verdict, so a session trace
// shows how long each judgment took.
package tracing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/quizhost/buzzkit"

// Init installs a trace provider writing spans to the given file. An
// empty path leaves the default no-op provider in place. The returned
// shutdown flushes pending spans.
func Init(path string) (shutdown func(context.Context) error, err error) {
	if path == "" {
		return func(context.Context) error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(f),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) error {
		err := provider.Shutdown(ctx)
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	}, nil
}

// StartRound opens the span for one round, beginning at the buzz.
func StartRound(player int) trace.Span {
	_, span := otel.Tracer(tracerName).Start(context.Background(), "round",
		trace.WithAttributes(attribute.Int("buzz.player", player)))
	return span
}

// EndJudged closes a round span with the verdict.
func EndJudged(span trace.Span, verdict string, scoreAfter int) {
	span.SetAttributes(
		attribute.String("verdict", verdict),
		attribute.Int("score.after", scoreAfter),
	)
	span.End()
}

// EndAborted closes a round span that a reset cancelled.
func EndAborted(span trace.Span) {
	span.SetAttributes(attribute.Bool("aborted", true))
	span.End()
}

package apm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/fd1az/usdt-bridge/internal/logger"
)

type Provider string

const (
	ZipkinProvider   Provider = "zipkin"
	OTLPHTTPProvider Provider = "otlp-http"
	OTLPGRPCProvider Provider = "otlp-grpc"
	ConsoleProvider  Provider = "console"
	EmptyProvider    Provider = "empty"
)

type TraceProvider interface {
	Stop() error
}

// TraceConfig selects and configures the span exporter.
type TraceConfig struct {
	Provider    Provider
	ServiceName string
	Endpoint    string
	Headers     string // comma separated key=value pairs
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

type emptyTraceProvider struct{}

func (emptyTraceProvider) Stop() error { return nil }

// NewTraceProvider installs a global tracer provider for cfg. Unknown
// providers and exporter failures fall back to the empty provider so tracing
// never blocks startup.
func NewTraceProvider(log logger.LoggerInterface, cfg TraceConfig) TraceProvider {
	ctx := context.Background()

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		log.Warn(ctx, "tracing disabled", "provider", string(cfg.Provider), "error", err)
		return emptyTraceProvider{}
	}
	if exp == nil {
		return emptyTraceProvider{}
	}

	rsrc, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
			attribute.String("otel.provider", string(cfg.Provider)),
		))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(rsrc),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	log.Info(ctx, "tracing initialized", "provider", string(cfg.Provider), "endpoint", cfg.Endpoint)

	return &traceProvider{tp}
}

func newExporter(ctx context.Context, cfg TraceConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Provider {
	case ZipkinProvider:
		return zipkin.New(cfg.Endpoint)
	case OTLPHTTPProvider:
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpointURL(cfg.Endpoint),
			otlptracehttp.WithHeaders(parseHeaders(cfg.Headers)),
		)
	case OTLPGRPCProvider:
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpointURL(cfg.Endpoint),
			otlptracegrpc.WithHeaders(parseHeaders(cfg.Headers)),
		)
	case ConsoleProvider:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case EmptyProvider, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown trace provider %q", cfg.Provider)
	}
}

func parseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && k != "" {
			headers[k] = v
		}
	}
	return headers
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return o.tp.Shutdown(ctx)
}

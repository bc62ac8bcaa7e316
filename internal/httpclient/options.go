// Package httpclient provides an instrumented JSON HTTP client with OTEL
// tracing and metrics.
package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ClientOptions holds configuration for the instrumented HTTP client.
type ClientOptions struct {
	client         *http.Client
	meterProvider  metric.MeterProvider
	providerName   string
	roundTripper   http.RoundTripper
	requestTimeout time.Duration
	headers        map[string]string
	tracer         trace.Tracer
}

// ClientOption configures ClientOptions.
type ClientOption func(*ClientOptions)

func newClientOptions(opts ...ClientOption) *ClientOptions {
	options := &ClientOptions{requestTimeout: defaultRequestTimeout}
	for _, o := range opts {
		o(options)
	}
	return options
}

// WithHTTPClient uses an existing http.Client. Its transport is wrapped.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.client = c
	}
}

// WithMeterProvider sets the OTEL meter provider.
func WithMeterProvider(mp metric.MeterProvider) ClientOption {
	return func(o *ClientOptions) {
		o.meterProvider = mp
	}
}

// WithProviderName sets the provider name for metrics and traces.
func WithProviderName(name string) ClientOption {
	return func(o *ClientOptions) {
		o.providerName = name
	}
}

// WithRoundTripper sets a custom HTTP transport.
func WithRoundTripper(rt http.RoundTripper) ClientOption {
	return func(o *ClientOptions) {
		o.roundTripper = rt
	}
}

// WithRequestTimeout bounds every request. Swaps and issues wait for
// confirmations server side, so callers of those endpoints raise it.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(o *ClientOptions) {
		o.requestTimeout = d
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(o *ClientOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithTracer sets a custom tracer.
func WithTracer(t trace.Tracer) ClientOption {
	return func(o *ClientOptions) {
		o.tracer = t
	}
}

/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"k8s.io/klog/v2"
)

const (
	// DefaultServiceName is reported as service.name on every span.
	DefaultServiceName = "rsmt"
	// InstrumentationName names the tracer used by the solver.
	InstrumentationName = "github.com/mihai-snyk/rsmt"
)

var provider trace.TracerProvider = noop.NewTracerProvider()

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(context.Context) error

// Config selects where spans are exported. An empty endpoint disables tracing.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
	// SampleRatio is the fraction of root spans kept. Values <= 0 keep everything.
	SampleRatio float64
}

// NewTracerProvider installs the global tracer provider. With no endpoint a
// noop provider is kept and the returned shutdown does nothing.
func NewTracerProvider(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	logger := klog.FromContext(ctx)
	if cfg.Endpoint == "" {
		logger.V(2).Info("Tracing disabled, no collector endpoint configured")
		provider = noop.NewTracerProvider()
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	Install(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logger.Info("Tracing enabled", "endpoint", cfg.Endpoint, "service", serviceName)

	return tp.Shutdown, nil
}

// Install makes tp the provider behind Tracer and the otel global.
func Install(tp trace.TracerProvider) {
	provider = tp
	otel.SetTracerProvider(tp)
}

// Tracer returns the solver tracer from the installed provider.
func Tracer() trace.Tracer {
	return provider.Tracer(InstrumentationName)
}

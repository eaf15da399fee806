// Package tracing configures OpenTelemetry tracing for optimizer runs.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"
)

const (
	// DefaultServiceName is the service name reported by the pareto command.
	DefaultServiceName = "pareto"

	instrumentationName = "sigs.k8s.io/pareto"
)

// Attribute keys attached to optimizer spans.
const (
	ProblemKey      = attribute.Key("pareto.problem")
	AlgorithmKey    = attribute.Key("pareto.algorithm")
	FrontierSizeKey = attribute.Key("pareto.frontier_size")
	IGDKey          = attribute.Key("pareto.igd")
)

// NewTracerProvider creates a tracer provider for the given service and installs
// it as the global provider. Spans are exported through OTLP over gRPC when an
// endpoint is given; otherwise they are recorded but dropped.
// The caller is responsible for shutting the provider down.
func NewTracerProvider(ctx context.Context, endpoint, serviceName string) (*sdktrace.TracerProvider, error) {
	logger := klog.FromContext(ctx)
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	resource, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewSchemaless(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracing resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	}
	if endpoint != "" {
		exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logger.V(2).Info("Exporting traces", "endpoint", endpoint, "service", serviceName)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// Tracer returns the tracer used for optimizer spans from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

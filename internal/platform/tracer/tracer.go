package tracer

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Provider is the installed tracer provider together with the collector connection it exports over.
type Provider struct {
	*sdktrace.TracerProvider
	conn *grpc.ClientConn
}

// Shutdown flushes pending spans, then closes the collector connection.
func (p *Provider) Shutdown(ctx context.Context) error {
	err := p.TracerProvider.Shutdown(ctx)
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close OTLP gRPC connection: %w", cerr)
		}
	}
	return err
}

// Init installs a global tracer provider exporting to otlpEndpoint over gRPC.
// An empty endpoint yields a provider without exporters.
func Init(ctx context.Context, serviceName, otlpEndpoint string, log logger.Logger) (*Provider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if otlpEndpoint == "" {
		log.Info("tracing export disabled: OTEL_EXPORTER_OTLP_ENDPOINT is not set")
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return &Provider{TracerProvider: tp}, nil
	}

	conn, err := grpc.NewClient(otlpEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP gRPC connection to %s: %w", otlpEndpoint, err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to build OpenTelemetry resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Infof("tracing initialised for %s, exporting to %s", serviceName, otlpEndpoint)
	return &Provider{TracerProvider: tp, conn: conn}, nil
}

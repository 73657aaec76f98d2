package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider owns the metrics pipeline for a single run. When disabled it
// hands out a no-op meter so callers never need nil checks.
type Provider struct {
	mp *sdkmetric.MeterProvider
}

// NewProvider sets up a meter provider. When enabled, accumulated metrics
// are written to stdout once, at Shutdown; a one-shot process has no use
// for periodic export.
func NewProvider(enabled bool) (*Provider, error) {
	if !enabled {
		return &Provider{}, nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter,
		// Effectively never; Shutdown performs the only export.
		sdkmetric.WithInterval(time.Hour),
	)

	return &Provider{
		mp: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	}, nil
}

// Meter returns the meter to register instruments on.
func (p *Provider) Meter() metric.Meter {
	if p.mp == nil {
		return noop.NewMeterProvider().Meter("mailstash")
	}
	return p.mp.Meter("mailstash")
}

// Shutdown flushes accumulated metrics and tears the pipeline down.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	return p.mp.Shutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/shell/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/shell/promadapters"
)

const (
	metricsNamespace    = "library"
	instrumentationName = "github.com/AntonStoeckl/library-circulation-go/cmd/librarysim"
)

// observability bundles what the handlers and the journal report to.
// gatherer backs the /metrics endpoint in both modes.
type observability struct {
	metrics  shell.MetricsCollector
	tracing  shell.TracingCollector
	gatherer prometheus.Gatherer
	shutdown func(context.Context) error
}

func newObservability(cfg config.Config) (observability, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.Metrics != config.MetricsOTel {
		return observability{
			metrics:  promadapters.NewMetricsCollector(registry, promadapters.WithNamespace(metricsNamespace)),
			gatherer: registry,
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithNamespace(metricsNamespace))
	if err != nil {
		return observability{}, err
	}

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))

	return observability{
		metrics:  oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName)),
		tracing:  oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName)),
		gatherer: registry,
		shutdown: func(ctx context.Context) error {
			return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
		},
	}, nil
}

// handlerLogging returns the logger for the observable wrappers. Every step logs start and
// completion at info, so below debug only failures reach the console.
func handlerLogging(cfg config.Config) (shell.ContextualLogger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	handlerLevel := max(level, slog.LevelWarn)
	if level <= slog.LevelDebug {
		handlerLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      handlerLevel,
		TimeFormat: "15:04:05",
	})

	if cfg.Metrics == config.MetricsOTel {
		return oteladapters.NewSlogBridgeLoggerWithHandler(handler), nil
	}

	return slog.New(handler).With("component", "handler"), nil
}

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter is the global meter for prdflight metrics
var meter = otel.Meter("prdflight")

// Counter instruments
var (
	analysesCounter         metric.Int64Counter
	validationErrorsCounter metric.Int64Counter
	cyclesDetectedCounter   metric.Int64Counter
	reportsSavedCounter     metric.Int64Counter
)

// Histogram instruments
var (
	analysisDurationHistogram metric.Float64Histogram
	qualityScoreHistogram     metric.Int64Histogram
)

// initMetrics initializes all metric instruments
// Must be called after Init() has set up the global meter provider
func initMetrics() error {
	var err error

	if analysesCounter, err = meter.Int64Counter(
		"prdflight_analyses_total",
		metric.WithDescription("Total number of PRD analyses run"),
		metric.WithUnit("{analysis}"),
	); err != nil {
		return err
	}

	if validationErrorsCounter, err = meter.Int64Counter(
		"prdflight_validation_errors_total",
		metric.WithDescription("Total number of validation errors found, by code"),
		metric.WithUnit("{error}"),
	); err != nil {
		return err
	}

	if cyclesDetectedCounter, err = meter.Int64Counter(
		"prdflight_cycles_detected_total",
		metric.WithDescription("Total number of analyses that found a dependency cycle"),
		metric.WithUnit("{analysis}"),
	); err != nil {
		return err
	}

	if reportsSavedCounter, err = meter.Int64Counter(
		"prdflight_reports_saved_total",
		metric.WithDescription("Total number of analysis reports persisted"),
		metric.WithUnit("{report}"),
	); err != nil {
		return err
	}

	if analysisDurationHistogram, err = meter.Float64Histogram(
		"prdflight_analysis_duration_seconds",
		metric.WithDescription("End-to-end duration of one analysis"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}

	if qualityScoreHistogram, err = meter.Int64Histogram(
		"prdflight_quality_score",
		metric.WithDescription("Distribution of PRD quality scores"),
		metric.WithUnit("{point}"),
	); err != nil {
		return err
	}

	return nil
}

// RecordAnalysis records one completed analysis.
func RecordAnalysis(ctx context.Context, valid bool, grade string, score int, duration time.Duration) {
	if analysesCounter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.Bool("prd.valid", valid),
		attribute.String("prd.grade", grade),
	)
	analysesCounter.Add(ctx, 1, attrs)
	analysisDurationHistogram.Record(ctx, duration.Seconds(), attrs)
	qualityScoreHistogram.Record(ctx, int64(score))
}

// RecordValidationError records one validation error by taxonomy code.
func RecordValidationError(ctx context.Context, code string) {
	if validationErrorsCounter == nil {
		return
	}
	validationErrorsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("prd.error_code", code),
	))
}

// RecordCycleDetected records an analysis that found a dependency cycle.
func RecordCycleDetected(ctx context.Context) {
	if cyclesDetectedCounter == nil {
		return
	}
	cyclesDetectedCounter.Add(ctx, 1)
}

// RecordReportSaved records one persisted report.
func RecordReportSaved(ctx context.Context) {
	if reportsSavedCounter == nil {
		return
	}
	reportsSavedCounter.Add(ctx, 1)
}

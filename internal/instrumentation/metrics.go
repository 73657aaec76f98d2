package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrReason = "reason"
	attrResult = "result"
)

// Skip reasons recorded on attachments_skipped_total.
const (
	SkipReasonExtension = "extension"
	SkipReasonDuplicate = "duplicate"
)

// Metrics provides methods for recording pipeline counters.
type Metrics struct {
	messagesScanned  metric.Int64Counter
	attachmentsFound metric.Int64Counter
	uploads          metric.Int64Counter
	skipped          metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.messagesScanned, err = meter.Int64Counter(
		"messages_scanned_total",
		metric.WithDescription("Total number of mail messages scanned"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_scanned_total counter: %w", err)
	}

	m.attachmentsFound, err = meter.Int64Counter(
		"attachments_found_total",
		metric.WithDescription("Total number of attachments discovered in scanned messages"),
		metric.WithUnit("{attachment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachments_found_total counter: %w", err)
	}

	m.uploads, err = meter.Int64Counter(
		"attachment_uploads_total",
		metric.WithDescription("Total number of attachment upload attempts by result"),
		metric.WithUnit("{upload}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment_uploads_total counter: %w", err)
	}

	m.skipped, err = meter.Int64Counter(
		"attachments_skipped_total",
		metric.WithDescription("Total number of attachments skipped by reason"),
		metric.WithUnit("{attachment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachments_skipped_total counter: %w", err)
	}

	return m, nil
}

// RecordMessageScanned increments the scanned-message counter.
func (m *Metrics) RecordMessageScanned(ctx context.Context) {
	m.messagesScanned.Add(ctx, 1)
}

// RecordAttachmentFound increments the discovered-attachment counter.
func (m *Metrics) RecordAttachmentFound(ctx context.Context) {
	m.attachmentsFound.Add(ctx, 1)
}

// RecordUpload records an upload attempt with its result ("success" or
// "error").
func (m *Metrics) RecordUpload(ctx context.Context, result string) {
	m.uploads.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordSkip records a skipped attachment with its reason.
func (m *Metrics) RecordSkip(ctx context.Context, reason string) {
	m.skipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReason, reason),
	))
}

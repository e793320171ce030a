package service

import (
	"context"

	log "github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type logSpanExporter struct {
	logger log.FieldLogger
}

// NewLogSpanExporter returns a span exporter that writes each finished span
// as one logrus entry. Span attributes are logged under an "attr." prefix.
func NewLogSpanExporter(logger log.FieldLogger) sdktrace.SpanExporter {
	return &logSpanExporter{logger: logger}
}

func (e *logSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := log.Fields{
			"span":        s.Name(),
			"trace_id":    s.SpanContext().TraceID().String(),
			"span_id":     s.SpanContext().SpanID().String(),
			"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
			"status":      s.Status().Code.String(),
		}
		for _, kv := range s.Attributes() {
			fields["attr."+string(kv.Key)] = kv.Value.Emit()
		}
		entry := e.logger.WithFields(fields)
		if desc := s.Status().Description; desc != "" {
			entry = entry.WithField("status_description", desc)
		}
		entry.Info("span")
	}
	return nil
}

func (e *logSpanExporter) Shutdown(context.Context) error { return nil }

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kanban/internal/domain"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/alexanderramin/kanban/internal/service"

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger log.FieldLogger
}

// NewLogUseCaseObserver writes service use-case events to the provided logger.
func NewLogUseCaseObserver(logger log.FieldLogger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	fields := log.Fields{
		"use_case":    event.Name,
		"duration_ms": event.Duration.Milliseconds(),
		"success":     event.Success,
	}
	for k, v := range event.Fields {
		fields[k] = v
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		fields["trace_id"] = sc.TraceID().String()
	}
	entry := o.logger.WithFields(fields)
	if event.Err != nil {
		entry.WithField("error_kind", domain.Kind(event.Err)).WithError(event.Err).Error("service_use_case")
		return
	}
	entry.Info("service_use_case")
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// useCase tracks one running use case: a span plus the observer event
// emitted when it finishes.
type useCase struct {
	name     string
	started  time.Time
	fields   map[string]any
	span     trace.Span
	ctx      context.Context
	observer UseCaseObserver
}

func beginUseCase(ctx context.Context, observer UseCaseObserver, name string, fields map[string]any) (context.Context, *useCase) {
	if fields == nil {
		fields = map[string]any{}
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "kanban."+name)
	return ctx, &useCase{
		name:     name,
		started:  time.Now().UTC(),
		fields:   fields,
		span:     span,
		ctx:      ctx,
		observer: observer,
	}
}

// set adds a field reported with the finishing event.
func (u *useCase) set(key string, value any) {
	u.fields[key] = value
}

// finish classifies err, closes the span and notifies the observer. It
// returns the classified error so callers can write
// defer func() { err = uc.finish(err) }().
func (u *useCase) finish(err error) error {
	err = domain.Classify(err)

	attrs := make([]attribute.KeyValue, 0, len(u.fields))
	for k, v := range u.fields {
		attrs = append(attrs, attribute.String(k, fmt.Sprint(v)))
	}
	u.span.SetAttributes(attrs...)
	if err != nil {
		u.span.RecordError(err)
		u.span.SetStatus(codes.Error, domain.Kind(err))
	}
	u.span.End()

	u.observer.ObserveUseCase(u.ctx, UseCaseEvent{
		Name:      u.name,
		StartedAt: u.started,
		Duration:  time.Since(u.started),
		Success:   err == nil,
		Err:       err,
		Fields:    u.fields,
	})
	return err
}

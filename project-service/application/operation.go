package application

import (
	"context"
	"strconv"
	"time"

	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/saga"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// operation tracks one use case execution for tracing and metrics.
type operation struct {
	name   string
	start  time.Time
	span   trace.Span
	status string
}

func startOperation(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	ctx, span := telemetry.StartSpan(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &operation{
		name:   name,
		start:  time.Now(),
		span:   span,
		status: "error",
	}
}

// end must be deferred with a pointer to the named error result.
func (op *operation) end(ctx context.Context, errp *error) {
	if errp != nil && *errp != nil {
		op.span.RecordError(*errp)
		op.span.SetStatus(codes.Error, (*errp).Error())
		op.status = statusOf(*errp)
	} else {
		op.status = "success"
	}
	op.span.End()

	telemetry.RecordCounter(ctx, "project_operations_total", "Total project service operations", 1,
		attribute.String("operation", op.name),
		attribute.String("status", op.status),
	)
	telemetry.RecordHistogram(ctx, "project_operation_duration_seconds", "Project service operation duration", time.Since(op.start).Seconds(),
		attribute.String("operation", op.name),
		attribute.String("status", op.status),
	)
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, saga.ErrCompensationFailed):
		return "compensation_failed"
	case errors.Is(err, saga.ErrAborted):
		return "aborted"
	default:
		return "error"
	}
}

// publish sends integration events after the local state is final. The
// state change already happened, so a publish failure is only logged.
func publish(ctx context.Context, publisher events.Publisher, evts ...*events.Event) {
	if publisher == nil || len(evts) == 0 {
		return
	}

	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn("failed to publish integration events",
			zap.String("event_type", evts[0].EventType),
			zap.Int("count", len(evts)),
			zap.Error(err),
		)
	}
}

func projectAggregateID(projectID int64) string {
	return "project-" + strconv.FormatInt(projectID, 10)
}

func projectLink(projectID int64) string {
	return "/projects/" + strconv.FormatInt(projectID, 10)
}

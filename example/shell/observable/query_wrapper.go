package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

const (
	logMsgQueryCompleted = "query handler completed"
	logMsgQueryFailed    = "query handler failed"
)

// QueryWrapper records metrics and logs around a query handler.
type QueryWrapper[Q shell.Query, R any] struct {
	coreHandler      shell.QueryHandler[Q, R]
	queryType        string
	metricsCollector shell.MetricsCollector
	logger           shell.Logger
}

// QueryOption defines a functional option for configuring QueryWrapper.
type QueryOption[Q shell.Query, R any] func(*QueryWrapper[Q, R]) error

// WithQueryMetrics sets the metrics collector for the QueryWrapper.
func WithQueryMetrics[Q shell.Query, R any](collector shell.MetricsCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithQueryLogging sets the logger for the QueryWrapper.
func WithQueryLogging[Q shell.Query, R any](logger shell.Logger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.logger = logger
		return nil
	}
}

// NewQueryWrapper creates a QueryWrapper around coreHandler.
func NewQueryWrapper[Q shell.Query, R any](
	coreHandler shell.QueryHandler[Q, R],
	opts ...QueryOption[Q, R],
) (*QueryWrapper[Q, R], error) {

	var zeroQuery Q

	wrapper := &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zeroQuery.QueryType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the wrapped handler and records the outcome.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	start := time.Now()

	result, err := w.coreHandler.Handle(ctx, query)

	duration := time.Since(start)
	status := shell.StatusFrom(err)
	shell.RecordQueryMetrics(w.metricsCollector, w.queryType, status, duration)

	if w.logger == nil {
		return result, err
	}

	if err != nil {
		w.logger.Error(logMsgQueryFailed, shell.LogAttrQueryType, w.queryType, shell.LogAttrStatus, status, shell.LogAttrError, err.Error())
		return result, err
	}

	w.logger.Debug(logMsgQueryCompleted, shell.LogAttrQueryType, w.queryType, shell.LogAttrDurationMS, shell.ToMilliseconds(duration))

	return result, nil
}

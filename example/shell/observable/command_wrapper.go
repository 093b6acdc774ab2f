package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

const (
	logMsgCommandStarted   = "command handler started"
	logMsgCommandCompleted = "command handler completed"
	logMsgCommandFailed    = "command handler failed"
)

// CommandWrapper records metrics and logs around a command handler.
type CommandWrapper[C shell.Command, R any] struct {
	coreHandler      shell.CommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	logger           shell.Logger
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R any] func(*CommandWrapper[C, R]) error

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R any](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandLogging sets the logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R any](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

// NewCommandWrapper creates a CommandWrapper around coreHandler.
func NewCommandWrapper[C shell.Command, R any](
	coreHandler shell.CommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the wrapped handler and records the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	start := time.Now()
	w.log(logMsgCommandStarted)

	result, err := w.coreHandler.Handle(ctx, command)

	duration := time.Since(start)
	status := shell.StatusFrom(err)
	shell.RecordCommandMetrics(w.metricsCollector, w.commandType, status, duration)

	if err != nil {
		if w.logger != nil {
			w.logger.Error(
				logMsgCommandFailed,
				shell.LogAttrCommandType, w.commandType,
				shell.LogAttrStatus, status,
				shell.LogAttrError, err.Error(),
			)
		}

		return result, err
	}

	w.log(logMsgCommandCompleted, shell.LogAttrStatus, status, shell.LogAttrDurationMS, shell.ToMilliseconds(duration))

	return result, nil
}

func (w *CommandWrapper[C, R]) log(msg string, args ...any) {
	if w.logger == nil {
		return
	}

	w.logger.Info(msg, append([]any{shell.LogAttrCommandType, w.commandType}, args...)...)
}

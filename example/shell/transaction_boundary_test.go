package shell_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper"
)

type publishedEvents struct {
	events domainevents.DomainEvents
}

func (p *publishedEvents) Handle(_ context.Context, event domainevents.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

func setupBoundary(
	t *testing.T,
	beginner *helper.FakeTransactionBeginner,
) (shell.TransactionBoundary, *shell.Publisher, *publishedEvents, *helper.LogHandlerSpy, *helper.MetricsCollectorSpy) {

	t.Helper()

	logger, logSpy := helper.NewSpyLogger()
	metricsSpy := helper.NewMetricsCollectorSpy()

	publisher, err := shell.NewPublisher()
	require.NoError(t, err)

	recorder := &publishedEvents{}
	publisher.SubscribeAll(recorder)

	boundary, err := shell.NewTransactionBoundary(
		beginner,
		publisher,
		shell.WithLogger(logger),
		shell.WithMetrics(metricsSpy),
	)
	require.NoError(t, err)

	return boundary, publisher, recorder, logSpy, metricsSpy
}

func givenUser(t *testing.T) *core.User {
	t.Helper()

	user, err := core.CreateUser(time.Unix(0, 0))
	require.NoError(t, err)

	return user
}

func Test_TransactionBoundary_Run_PublishesEventsCommitsAndClears(t *testing.T) {
	// arrange
	beginner := helper.NewFakeTransactionBeginner()
	boundary, _, recorder, logSpy, metricsSpy := setupBoundary(t, beginner)
	user := givenUser(t)

	// act
	err := boundary.Run(context.Background(), func(_ context.Context, unitOfWork *shell.UnitOfWork) error {
		unitOfWork.Track(user)
		return user.AddAuthentication(core.NewAuthentication("jdoe"))
	})

	// assert
	require.NoError(t, err)
	require.Len(t, recorder.events, 2)
	assert.Equal(t, core.UserEntityCreatedEventType, recorder.events[0].IsEventType())
	assert.Equal(t, core.UserEntityChangedEventType, recorder.events[1].IsEventType())
	assert.True(t, beginner.LastTransaction().Committed())
	assert.False(t, beginner.LastTransaction().RolledBack())
	assert.Empty(t, user.CollectEvents(), "events must be cleared after a successful dispatch")
	assert.True(t, logSpy.HasLogWithAttr(slog.LevelDebug, "transaction committed", shell.LogAttrEventCount))
	assert.True(t, metricsSpy.HasCounter(shell.TransactionsMetric, shell.LogAttrStatus, shell.StatusSuccess))
	valueRecords := metricsSpy.GetValueRecords()
	require.Len(t, valueRecords, 1)
	assert.Equal(t, shell.DispatchedEventsMetric, valueRecords[0].Metric)
	assert.Equal(t, 2.0, valueRecords[0].Value)
}

func Test_TransactionBoundary_Run_WorkFails_RollsBackAndKeepsEvents(t *testing.T) {
	// arrange
	beginner := helper.NewFakeTransactionBeginner()
	boundary, _, recorder, logSpy, _ := setupBoundary(t, beginner)
	user := givenUser(t)
	workErr := errors.New("work failed")

	// act
	err := boundary.Run(context.Background(), func(_ context.Context, unitOfWork *shell.UnitOfWork) error {
		unitOfWork.Track(user)
		return workErr
	})

	// assert
	assert.ErrorIs(t, err, workErr)
	assert.Empty(t, recorder.events)
	assert.True(t, beginner.LastTransaction().RolledBack())
	assert.False(t, beginner.LastTransaction().Committed())
	assert.Len(t, user.CollectEvents(), 1)
	assert.True(t, logSpy.HasLog(slog.LevelWarn, "unit of work failed, rolling back"))
}

func Test_TransactionBoundary_Run_DispatchFails_RollsBackAndKeepsEvents(t *testing.T) {
	// arrange
	beginner := helper.NewFakeTransactionBeginner()
	boundary, publisher, _, _, metricsSpy := setupBoundary(t, beginner)
	handlerErr := errors.New("handler failed")
	publisher.Subscribe(core.UserEntityCreatedEventType, shell.EventHandlerFunc(
		func(context.Context, domainevents.DomainEvent) error { return handlerErr },
	))
	user := givenUser(t)

	// act
	err := boundary.Run(context.Background(), func(_ context.Context, unitOfWork *shell.UnitOfWork) error {
		unitOfWork.Track(user)
		return nil
	})

	// assert
	assert.ErrorIs(t, err, shell.ErrDispatchingEventFailed)
	assert.ErrorIs(t, err, handlerErr)
	assert.True(t, beginner.LastTransaction().RolledBack())
	assert.Len(t, user.CollectEvents(), 1, "events must stay on the entity when dispatch fails")
	assert.True(t, metricsSpy.HasCounter(shell.TransactionsMetric, shell.LogAttrStatus, shell.StatusError))
}

func Test_TransactionBoundary_Run_CommitFails_RollsBackAndKeepsEvents(t *testing.T) {
	// arrange
	commitErr := errors.New("connection lost")
	beginner := helper.NewFakeTransactionBeginner(helper.FailingCommit(commitErr))
	boundary, _, _, _, _ := setupBoundary(t, beginner)
	user := givenUser(t)

	// act
	err := boundary.Run(context.Background(), func(_ context.Context, unitOfWork *shell.UnitOfWork) error {
		unitOfWork.Track(user)
		return nil
	})

	// assert
	assert.ErrorIs(t, err, shell.ErrCommitTransactionFailed)
	assert.ErrorIs(t, err, commitErr)
	assert.True(t, beginner.LastTransaction().RolledBack())
	assert.Len(t, user.CollectEvents(), 1)
}

func Test_TransactionBoundary_Run_RollbackFails_ReturnsBothErrors(t *testing.T) {
	// arrange
	rollbackErr := errors.New("rollback failed")
	beginner := helper.NewFakeTransactionBeginner(helper.FailingRollback(rollbackErr))
	boundary, _, _, logSpy, _ := setupBoundary(t, beginner)
	workErr := errors.New("work failed")

	// act
	err := boundary.Run(context.Background(), func(context.Context, *shell.UnitOfWork) error {
		return workErr
	})

	// assert
	assert.ErrorIs(t, err, workErr)
	assert.ErrorIs(t, err, shell.ErrRollbackTransactionFailed)
	assert.ErrorIs(t, err, rollbackErr)
	assert.True(t, logSpy.HasLog(slog.LevelError, "failed to roll back transaction"))
}

func Test_TransactionBoundary_Run_BeginFails(t *testing.T) {
	// arrange
	beginErr := errors.New("no connection")
	beginner := helper.NewFakeTransactionBeginner(helper.FailingBegin(beginErr))
	boundary, _, _, _, _ := setupBoundary(t, beginner)
	workCalled := false

	// act
	err := boundary.Run(context.Background(), func(context.Context, *shell.UnitOfWork) error {
		workCalled = true
		return nil
	})

	// assert
	assert.ErrorIs(t, err, shell.ErrBeginTransactionFailed)
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, workCalled)
}

func Test_TransactionBoundary_Run_NestedRun_JoinsOuterTransaction(t *testing.T) {
	// arrange
	beginner := helper.NewFakeTransactionBeginner()
	boundary, _, recorder, _, _ := setupBoundary(t, beginner)
	user := givenUser(t)

	// act
	err := boundary.Run(context.Background(), func(ctx context.Context, outer *shell.UnitOfWork) error {
		return boundary.Run(ctx, func(_ context.Context, inner *shell.UnitOfWork) error {
			assert.Same(t, outer, inner)
			inner.Track(user)

			return nil
		})
	})

	// assert
	require.NoError(t, err)
	assert.Len(t, beginner.Transactions(), 1)
	assert.Len(t, recorder.events, 1)
}

func Test_TransactionBoundary_Run_CanceledContext_RollsBack(t *testing.T) {
	// arrange
	beginner := helper.NewFakeTransactionBeginner()
	boundary, _, recorder, _, metricsSpy := setupBoundary(t, beginner)
	user := givenUser(t)
	ctx, cancel := context.WithCancel(context.Background())

	// act
	err := boundary.Run(ctx, func(_ context.Context, unitOfWork *shell.UnitOfWork) error {
		unitOfWork.Track(user)
		cancel()

		return nil
	})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recorder.events)
	assert.True(t, beginner.LastTransaction().RolledBack())
	assert.Len(t, user.CollectEvents(), 1)
	assert.True(t, metricsSpy.HasCounter(shell.TransactionsMetric, shell.LogAttrStatus, shell.StatusCanceled))
}

func Test_NewTransactionBoundary_RejectsMissingDependencies(t *testing.T) {
	publisher, err := shell.NewPublisher()
	require.NoError(t, err)

	_, err = shell.NewTransactionBoundary(nil, publisher)
	assert.ErrorIs(t, err, shell.ErrNilTransactionBeginner)

	_, err = shell.NewTransactionBoundary(helper.NewFakeTransactionBeginner(), nil)
	assert.ErrorIs(t, err, shell.ErrNilEventPublisher)
}

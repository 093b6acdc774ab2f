package getauditlogs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/query/getauditlogs"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	auditLogs := helper.NewInMemoryAuditLogRepository()
	_, err := auditLogs.Append(context.Background(), core.BuildAuditLog("first", time.Now()))
	require.NoError(t, err)
	_, err = auditLogs.Append(context.Background(), core.BuildAuditLog("second", time.Now()))
	require.NoError(t, err)

	handler := getauditlogs.NewQueryHandler(auditLogs)

	// act
	result, err := handler.Handle(context.Background(), getauditlogs.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, result.Logs)
}

func Test_QueryHandler_Handle_Empty(t *testing.T) {
	handler := getauditlogs.NewQueryHandler(helper.NewInMemoryAuditLogRepository())

	result, err := handler.Handle(context.Background(), getauditlogs.BuildQuery())

	require.NoError(t, err)
	assert.NotNil(t, result.Logs)
	assert.Empty(t, result.Logs)
}

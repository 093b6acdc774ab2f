package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/postgres"
)

func Test_ApplicationRepository_GetRandom(t *testing.T) {
	// arrange
	db := newFakeDB([][]any{{int64(7), "CRM"}})
	repository, err := postgres.NewApplicationRepository(db)
	require.NoError(t, err)

	// act
	application, err := repository.GetRandom(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), application.ID())
	assert.Equal(t, "CRM", application.Code())
	assert.Contains(t, db.statements[0], `RANDOM()`)
	assert.Contains(t, db.statements[0], `LIMIT 1`)
}

func Test_ApplicationRepository_GetRandom_NoApplications(t *testing.T) {
	repository, err := postgres.NewApplicationRepository(newFakeDB())
	require.NoError(t, err)

	_, err = repository.GetRandom(context.Background())

	assert.ErrorIs(t, err, postgres.ErrNoApplicationFound)
}

func Test_ApplicationRepository_Add(t *testing.T) {
	// arrange
	db := newFakeDB([][]any{{int64(9)}})
	repository, err := postgres.NewApplicationRepository(db)
	require.NoError(t, err)
	application := core.NewApplication("ERP")

	// act
	err = repository.Add(context.Background(), application)
	require.NoError(t, err)
	err = repository.Add(context.Background(), application)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(9), application.ID())
	assert.Len(t, db.statements, 1, "persisted applications are not inserted again")
}

func Test_ApplicationRepository_List(t *testing.T) {
	db := newFakeDB([][]any{{int64(1), "CRM"}, {int64(2), "ERP"}})
	repository, err := postgres.NewApplicationRepository(db)
	require.NoError(t, err)

	applications, err := repository.List(context.Background())

	require.NoError(t, err)
	require.Len(t, applications, 2)
	assert.Equal(t, "ERP", applications[1].Code())
}

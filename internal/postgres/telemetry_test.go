package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smdydx/bidua-crm/entity"
)

func TestQueryTelemetryHookObservesOperations(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	type event struct {
		op   string
		name string
		rows int
	}
	var events []event
	RegisterQueryTelemetry(func(_ context.Context, op, entityName string, _ time.Duration, rows int) {
		events = append(events, event{op, entityName, rows})
	})
	defer RegisterQueryTelemetry(nil)

	dept := entity.Department{ID: 3, Name: "Engineering", IsActive: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(exactQuery(buildGetStatement(entity.DepartmentSchema))).
		WithArgs(int64(3)).
		WillReturnRows(entityRows(entity.DepartmentSchema, dept))

	_, err := repo.Get(ctx, 3)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, event{op: "get", name: entity.NameDepartment, rows: 1}, events[0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterQueryTelemetryNilRestoresNoop(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	called := false
	RegisterQueryTelemetry(func(context.Context, string, string, time.Duration, int) {
		called = true
	})
	RegisterQueryTelemetry(nil)

	mock.ExpectQuery(exactQuery(buildGetStatement(entity.DepartmentSchema))).
		WithArgs(int64(404)).
		WillReturnRows(entityRows[entity.Department](entity.DepartmentSchema))

	_, err := repo.Get(ctx, 404)
	require.NoError(t, err)
	assert.False(t, called)

	require.NoError(t, mock.ExpectationsWereMet())
}

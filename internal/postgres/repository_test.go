package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
)

func newDepartmentRepo(t *testing.T) (*Repository[entity.Department], pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.MatchExpectationsInOrder(true)
	return NewRepository[entity.Department](mock, entity.NameDepartment, entity.DepartmentSchema), mock
}

func newUserRepo(t *testing.T) (*Repository[entity.User], pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.MatchExpectationsInOrder(true)
	return NewRepository[entity.User](mock, entity.NameUser, entity.UserSchema), mock
}

func newLeadRepo(t *testing.T) (*Repository[entity.Lead], pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.MatchExpectationsInOrder(true)
	return NewRepository[entity.Lead](mock, entity.NameLead, entity.LeadSchema), mock
}

func exactQuery(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

func TestGetReturnsRow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	dept := entity.Department{
		ID:        3,
		Name:      "Engineering",
		ManagerID: ptr(int64(7)),
		IsActive:  true,
		CreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	mock.ExpectQuery(exactQuery(buildGetStatement(entity.DepartmentSchema))).
		WithArgs(int64(3)).
		WillReturnRows(entityRows(entity.DepartmentSchema, dept))

	got, err := repo.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, dept, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingRowIsNil(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	mock.ExpectQuery(exactQuery(buildGetStatement(entity.DepartmentSchema))).
		WithArgs(int64(404)).
		WillReturnRows(entityRows[entity.Department](entity.DepartmentSchema))

	got, err := repo.Get(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListClampsPageWindow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	q := crm.ListQuery{Skip: -5, Limit: 250}
	wantQuery, wantArgs := buildSelectStatement(entity.DepartmentSchema, q.Normalize())
	assert.Equal(t, []any{100, 0}, wantArgs)

	d1 := entity.Department{ID: 1, Name: "Sales", IsActive: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	d2 := entity.Department{ID: 2, Name: "Support", IsActive: true, CreatedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.DepartmentSchema, d1, d2))

	records, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []entity.Department{d1, d2}, records)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFiltersAndSearch(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	q := crm.ListQuery{
		Limit:   10,
		Filters: crm.Filters{"is_active": true},
		Search:  "eng",
		OrderBy: "name",
	}
	wantQuery, wantArgs := buildSelectStatement(entity.DepartmentSchema, q.Normalize())

	dept := entity.Department{ID: 3, Name: "Engineering", IsActive: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.DepartmentSchema, dept))

	records, err := repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, dept, records[0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyResultIsEmptySlice(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	wantQuery, wantArgs := buildSelectStatement(entity.DepartmentSchema, crm.ListQuery{}.Normalize())
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows[entity.Department](entity.DepartmentSchema))

	records, err := repo.List(ctx, crm.ListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountSharesWhereClauseWithList(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	q := crm.ListQuery{Filters: crm.Filters{"is_active": true}, Search: "sup"}
	wantQuery, wantArgs := buildCountStatement(entity.DepartmentSchema, q)

	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	total, err := repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneReturnsFirstMatch(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	filters := crm.Filters{"name": "Sales"}
	wantQuery, wantArgs := buildSelectStatement(entity.DepartmentSchema, crm.ListQuery{Filters: filters, Limit: 1}.Normalize())

	dept := entity.Department{ID: 1, Name: "Sales", IsActive: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.DepartmentSchema, dept))

	got, err := repo.FindOne(ctx, filters)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, dept, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneMissingIsNil(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	filters := crm.Filters{"name": "Nobody"}
	wantQuery, wantArgs := buildSelectStatement(entity.DepartmentSchema, crm.ListQuery{Filters: filters, Limit: 1}.Normalize())

	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows[entity.Department](entity.DepartmentSchema))

	got, err := repo.FindOne(ctx, filters)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsStoredRow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	fields := map[string]any{"name": "Sales", "description": "Closing things"}
	wantQuery, wantArgs, err := buildInsertStatement(entity.DepartmentSchema, fields)
	require.NoError(t, err)

	stored := entity.Department{
		ID:          11,
		Name:        "Sales",
		Description: ptr("Closing things"),
		IsActive:    true,
		CreatedAt:   time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.DepartmentSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	got, err := repo.Create(ctx, fields, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInjectsOwner(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	fields := map[string]any{"title": "Big lead", "status": "new"}
	withOwner := map[string]any{"title": "Big lead", "status": "new", "created_by_id": int64(9)}
	wantQuery, wantArgs, err := buildInsertStatement(entity.LeadSchema, withOwner)
	require.NoError(t, err)

	stored := entity.Lead{
		ID:          21,
		Title:       "Big lead",
		Status:      entity.LeadNew,
		CreatedByID: ptr(int64(9)),
		CreatedAt:   time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.LeadSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	owner := int64(9)
	got, err := repo.Create(ctx, fields, &owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored, *got)
	assert.NotContains(t, fields, "created_by_id", "caller's map must stay untouched")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeepsExplicitOwner(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	fields := map[string]any{"title": "Handed over", "status": "new", "created_by_id": int64(2)}
	wantQuery, wantArgs, err := buildInsertStatement(entity.LeadSchema, fields)
	require.NoError(t, err)

	stored := entity.Lead{
		ID:          22,
		Title:       "Handed over",
		Status:      entity.LeadNew,
		CreatedByID: ptr(int64(2)),
		CreatedAt:   time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.LeadSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	owner := int64(9)
	got, err := repo.Create(ctx, fields, &owner)
	require.NoError(t, err)
	assert.Equal(t, ptr(int64(2)), got.CreatedByID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSkipsOwnerWithoutColumn(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	fields := map[string]any{"name": "Ops"}
	wantQuery, wantArgs, err := buildInsertStatement(entity.DepartmentSchema, fields)
	require.NoError(t, err)

	stored := entity.Department{ID: 12, Name: "Ops", IsActive: true, CreatedAt: time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC)}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.DepartmentSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	owner := int64(9)
	got, err := repo.Create(ctx, fields, &owner)
	require.NoError(t, err)
	assert.Equal(t, stored, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUniqueViolationIsIntegrityError(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	fields := map[string]any{"name": "Sales"}
	wantQuery, wantArgs, err := buildInsertStatement(entity.DepartmentSchema, fields)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	got, err := repo.Create(ctx, fields, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsIntegrityError(err))

	var dbErr *crm.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, crm.ErrCodeUniqueViolation, dbErr.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsUnknownField(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	got, err := repo.Create(ctx, map[string]any{"bogus": 1}, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsValidationError(err))

	var dbErr *crm.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, crm.ErrCodeUnknownField, dbErr.Code)
	assert.Equal(t, "bogus", dbErr.Field)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	repo, mock := newDepartmentRepo(t)

	got, err := repo.Create(ctx, map[string]any{}, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsValidationError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	created := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	current := &entity.User{
		ID:        7,
		Username:  "ada",
		Email:     "ada@example.com",
		FirstName: "Adah",
		LastName:  "Lovelace",
		Role:      entity.RoleEmployee,
		IsActive:  true,
		CreatedAt: created,
	}

	// id, created_at, and unknown keys must be dropped before SQL is built
	changes := map[string]any{
		"first_name": "Ada",
		"phone":      "555-0101",
		"id":         int64(99),
		"created_at": time.Now(),
		"quirk":      true,
	}
	effective := map[string]any{"first_name": "Ada", "phone": "555-0101"}
	wantQuery, wantArgs, err := buildUpdateStatement(entity.UserSchema, 7, effective)
	require.NoError(t, err)

	updated := *current
	updated.FirstName = "Ada"
	updated.Phone = ptr("555-0101")
	updated.UpdatedAt = ptr(time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows(entity.UserSchema, updated))
	mock.ExpectCommit()
	mock.ExpectRollback()

	got, err := repo.Update(ctx, current, changes)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, updated, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmptyChangesSkipsSQL(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	current := &entity.User{ID: 7, Username: "ada"}
	got, err := repo.Update(ctx, current, map[string]any{"id": int64(99), "bogus": "x"})
	require.NoError(t, err)
	assert.Same(t, current, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	current := &entity.User{ID: 7, Username: "ada"}
	effective := map[string]any{"first_name": "Ada"}
	wantQuery, wantArgs, err := buildUpdateStatement(entity.UserSchema, 7, effective)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(wantQuery)).
		WithArgs(wantArgs...).
		WillReturnRows(entityRows[entity.User](entity.UserSchema))
	mock.ExpectRollback()

	got, err := repo.Update(ctx, current, effective)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNilCurrentIsValidationError(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	got, err := repo.Update(ctx, nil, map[string]any{"first_name": "Ada"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsValidationError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveReturnsRemovedRow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	stored := entity.Lead{
		ID:        5,
		Title:     "Cold lead",
		Status:    entity.LeadClosedLost,
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildDeleteStatement(entity.LeadSchema))).
		WithArgs(int64(5)).
		WillReturnRows(entityRows(entity.LeadSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	got, err := repo.Remove(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildDeleteStatement(entity.LeadSchema))).
		WithArgs(int64(404)).
		WillReturnRows(entityRows[entity.Lead](entity.LeadSchema))
	mock.ExpectRollback()

	got, err := repo.Remove(ctx, 404)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveForeignKeyViolationIsIntegrityError(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildDeleteStatement(entity.LeadSchema))).
		WithArgs(int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	got, err := repo.Remove(ctx, 5)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, crm.IsIntegrityError(err))

	var dbErr *crm.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, crm.ErrCodeForeignKeyViolation, dbErr.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteDeactivatesRow(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	stored := entity.User{
		ID:        7,
		Username:  "ada",
		Email:     "ada@example.com",
		Role:      entity.RoleEmployee,
		IsActive:  false,
		CreatedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: ptr(time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildSoftDeleteStatement(entity.UserSchema))).
		WithArgs(int64(7)).
		WillReturnRows(entityRows(entity.UserSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	got, err := repo.SoftDelete(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteFallsBackToHardDelete(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLeadRepo(t)

	stored := entity.Lead{
		ID:        5,
		Title:     "Cold lead",
		Status:    entity.LeadClosedLost,
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	// leads carry no is_active column, so soft delete degrades to DELETE
	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildDeleteStatement(entity.LeadSchema))).
		WithArgs(int64(5)).
		WillReturnRows(entityRows(entity.LeadSchema, stored))
	mock.ExpectCommit()
	mock.ExpectRollback()

	got, err := repo.SoftDelete(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored, *got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteMissingRowIsNil(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(exactQuery(buildSoftDeleteStatement(entity.UserSchema))).
		WithArgs(int64(404)).
		WillReturnRows(entityRows[entity.User](entity.UserSchema))
	mock.ExpectRollback()

	got, err := repo.SoftDelete(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	crm "github.com/smdydx/bidua-crm"
)

// Repository implements the generic operations for one entity type: lookup,
// listing with filters/search/pagination, create, partial update, remove,
// and soft delete. Entity-specific stores embed it and add their own
// narrowly-scoped queries.
type Repository[E crm.Entity] struct {
	db     DB
	entity string
	schema *crm.Schema
}

// NewRepository binds a repository to one entity schema.
func NewRepository[E crm.Entity](db DB, entity string, schema *crm.Schema) *Repository[E] {
	return &Repository[E]{db: db, entity: entity, schema: schema}
}

// Schema exposes the descriptor table, mainly for stores composing SQL.
func (r *Repository[E]) Schema() *crm.Schema {
	return r.schema
}

// Get fetches one row by id. Absence is (nil, nil), never an error.
func (r *Repository[E]) Get(ctx context.Context, id int64) (*E, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, buildGetStatement(r.schema), id)
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "select row", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, crm.NewStorageError(r.entity, "scan row", err)
	}
	emitQuery(ctx, "get", r.entity, time.Since(start), 1)
	return record, nil
}

// List returns one page of rows. The query window is clamped before any SQL
// is built, so no caller receives more than crm.MaxListLimit rows.
func (r *Repository[E]) List(ctx context.Context, q crm.ListQuery) ([]E, error) {
	q = q.Normalize()
	query, args := buildSelectStatement(r.schema, q)
	zap.S().Debugw("list rows", "entity", r.entity, "query", query, "args", args)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "select rows", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[E])
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "scan rows", err)
	}
	emitQuery(ctx, "list", r.entity, time.Since(start), len(records))
	return records, nil
}

// Count returns the number of rows matching the query's filters and search
// term. It shares the WHERE clause with List, so a count and a full listing
// built from the same query always agree.
func (r *Repository[E]) Count(ctx context.Context, q crm.ListQuery) (int64, error) {
	query, args := buildCountStatement(r.schema, q)

	start := time.Now()
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, crm.NewStorageError(r.entity, "count rows", err)
	}
	emitQuery(ctx, "count", r.entity, time.Since(start), 1)
	return total, nil
}

// FindOne returns the first row matching the filters, or nil.
func (r *Repository[E]) FindOne(ctx context.Context, filters crm.Filters) (*E, error) {
	records, err := r.List(ctx, crm.ListQuery{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Create inserts a row from raw field values and returns it as stored,
// defaults included. When the schema records a creator and ownerID is
// supplied, created_by_id is filled in unless the payload already set it;
// entities without the column skip the assignment silently.
func (r *Repository[E]) Create(ctx context.Context, fields map[string]any, ownerID *int64) (*E, error) {
	if len(fields) == 0 {
		return nil, crm.NewValidationError(r.entity, "", "no fields to insert")
	}
	if err := r.schema.ValidateInput(fields); err != nil {
		return nil, err
	}

	insert := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		insert[key] = value
	}
	if ownerID != nil && r.schema.HasOwner() {
		if _, set := insert["created_by_id"]; !set {
			insert["created_by_id"] = *ownerID
		}
	}

	query, args, err := buildInsertStatement(r.schema, insert)
	if err != nil {
		return nil, crm.NewValidationError(r.entity, "", err.Error())
	}
	zap.S().Debugw("create row", "entity", r.entity, "columns", len(insert))

	start := time.Now()
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "begin transaction", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(r.entity, "insert row", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dbError(r.entity, "insert row", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, crm.NewStorageError(r.entity, "commit transaction", err)
	}
	emitQuery(ctx, "create", r.entity, time.Since(start), 1)
	return record, nil
}

// Update applies a partial change set to an already-loaded row and returns
// the stored result. Keys the schema does not declare are dropped, as are
// id and created_at; an effectively empty change set returns the row
// untouched without issuing SQL.
func (r *Repository[E]) Update(ctx context.Context, current *E, changes map[string]any) (*E, error) {
	if current == nil {
		return nil, crm.NewValidationError(r.entity, "", "entity required")
	}

	effective := make(map[string]any, len(changes))
	for key, value := range changes {
		if key == "id" || key == "created_at" || !r.schema.HasField(key) {
			continue
		}
		effective[key] = value
	}
	if len(effective) == 0 {
		return current, nil
	}

	id := (*current).EntityID()
	query, args, err := buildUpdateStatement(r.schema, id, effective)
	if err != nil {
		return nil, crm.NewValidationError(r.entity, "", err.Error())
	}
	zap.S().Debugw("update row", "entity", r.entity, "id", id, "columns", len(effective))

	start := time.Now()
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "begin transaction", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(r.entity, "update row", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, crm.NewNotFoundError(r.entity, id)
		}
		return nil, dbError(r.entity, "update row", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, crm.NewStorageError(r.entity, "commit transaction", err)
	}
	emitQuery(ctx, "update", r.entity, time.Since(start), 1)
	return record, nil
}

// Remove hard-deletes by id and returns the removed row. Removal is the one
// operation whose contract requires the row to exist, so absence is a
// not-found error rather than a nil result.
func (r *Repository[E]) Remove(ctx context.Context, id int64) (*E, error) {
	start := time.Now()
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "begin transaction", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	rows, err := tx.Query(ctx, buildDeleteStatement(r.schema), id)
	if err != nil {
		return nil, dbError(r.entity, "delete row", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, crm.NewNotFoundError(r.entity, id)
		}
		return nil, dbError(r.entity, "delete row", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, crm.NewStorageError(r.entity, "commit transaction", err)
	}
	emitQuery(ctx, "remove", r.entity, time.Since(start), 1)
	return record, nil
}

// SoftDelete deactivates the row when the schema has is_active and degrades
// to a hard delete otherwise. Absence is (nil, nil); deactivating an
// already-inactive row is harmless, so the operation is idempotent.
func (r *Repository[E]) SoftDelete(ctx context.Context, id int64) (*E, error) {
	query := buildDeleteStatement(r.schema)
	if r.schema.HasSoftDelete() {
		query = buildSoftDeleteStatement(r.schema)
	}

	start := time.Now()
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, crm.NewStorageError(r.entity, "begin transaction", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	rows, err := tx.Query(ctx, query, id)
	if err != nil {
		return nil, dbError(r.entity, "soft delete row", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(r.entity, "soft delete row", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, crm.NewStorageError(r.entity, "commit transaction", err)
	}
	emitQuery(ctx, "soft_delete", r.entity, time.Since(start), 1)
	return record, nil
}

// queryRows runs a store-specific statement that selects full entity rows.
func (r *Repository[E]) queryRows(ctx context.Context, op, query string, args ...any) ([]E, error) {
	zap.S().Debugw(op, "entity", r.entity, "query", query, "args", args)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, crm.NewStorageError(r.entity, op, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[E])
	if err != nil {
		return nil, crm.NewStorageError(r.entity, op, err)
	}
	emitQuery(ctx, op, r.entity, time.Since(start), len(records))
	return records, nil
}

package postgres

import (
	"fmt"
	"sort"
	"strings"

	crm "github.com/smdydx/bidua-crm"
)

// Statement builders. Identifiers come straight from registered schemas,
// which validate them at construction, so the generated SQL interpolates
// only known-safe names; every value travels as a placeholder argument.

func sortedColumnKeys(source map[string]any, s *crm.Schema) ([]string, error) {
	if len(source) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(source))
	for key := range source {
		if !s.HasField(key) {
			return nil, fmt.Errorf("unsupported column %q", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// isListValue reports whether a filter value should match as a set.
func isListValue(v any) bool {
	switch v.(type) {
	case []any, []string, []int, []int32, []int64, []float64, []bool:
		return true
	}
	return false
}

func isWildcard(v any) bool {
	str, ok := v.(string)
	return ok && strings.Contains(str, "%")
}

// buildFilterConditions converts filters into WHERE conditions starting at
// placeholder argIndex. Fields the schema does not declare are silently
// skipped. Keys are walked in sorted order so the SQL is deterministic.
func buildFilterConditions(s *crm.Schema, filters crm.Filters, argIndex int) ([]string, []any) {
	if len(filters) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(filters))
	for key := range filters {
		if !s.HasField(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		value := filters[key]
		kind, _ := s.Kind(key)

		var condition string
		switch {
		case isListValue(value):
			condition = fmt.Sprintf("(%s = ANY($%d))", key, argIndex)
		case kind == crm.FieldText && isWildcard(value):
			condition = fmt.Sprintf("(%s ILIKE $%d)", key, argIndex)
		default:
			condition = fmt.Sprintf("(%s = $%d)", key, argIndex)
		}
		conditions = append(conditions, condition)
		args = append(args, value)
		argIndex++
	}
	return conditions, args
}

// buildSearchCondition OR-matches term across the schema's search columns,
// reusing a single placeholder. Schemas without searchable fields make the
// search a no-op.
func buildSearchCondition(s *crm.Schema, term string, argIndex int) (string, []any) {
	if term == "" {
		return "", nil
	}
	cols := s.SearchColumns()
	if len(cols) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", col, argIndex))
	}
	return "(" + strings.Join(parts, " OR ") + ")", []any{term}
}

// buildOrderByClause resolves an order spec; a leading '-' flips direction.
// Empty or unknown fields fall back to newest-first.
func buildOrderByClause(s *crm.Schema, orderBy string) string {
	const fallback = "ORDER BY id DESC"
	if orderBy == "" {
		return fallback
	}
	field, direction := orderBy, "ASC"
	if strings.HasPrefix(orderBy, "-") {
		field, direction = orderBy[1:], "DESC"
	}
	if !s.HasField(field) {
		return fallback
	}
	return fmt.Sprintf("ORDER BY %s %s", field, direction)
}

func buildWhereClause(s *crm.Schema, q crm.ListQuery) (string, []any) {
	conditions, args := buildFilterConditions(s, q.Filters, 1)
	if search, sargs := buildSearchCondition(s, q.Search, len(args)+1); search != "" {
		conditions = append(conditions, search)
		args = append(args, sargs...)
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func buildSelectStatement(s *crm.Schema, q crm.ListQuery) (string, []any) {
	where, args := buildWhereClause(s, q)
	query := fmt.Sprintf(
		"SELECT %s FROM %s%s %s LIMIT $%d OFFSET $%d",
		strings.Join(s.Columns(), ", "),
		s.Table(),
		where,
		buildOrderByClause(s, q.OrderBy),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, q.Limit, q.Skip)
	return query, args
}

func buildCountStatement(s *crm.Schema, q crm.ListQuery) (string, []any) {
	where, args := buildWhereClause(s, q)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.Table(), where), args
}

func buildGetStatement(s *crm.Schema) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1",
		strings.Join(s.Columns(), ", "),
		s.Table(),
	)
}

func buildInsertStatement(s *crm.Schema, fields map[string]any) (string, []any, error) {
	keys, err := sortedColumnKeys(fields, s)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("no columns to insert")
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, key := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[key]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.Table(),
		strings.Join(keys, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(s.Columns(), ", "),
	)
	return query, args, nil
}

func buildUpdateStatement(s *crm.Schema, id int64, changes map[string]any) (string, []any, error) {
	keys, err := sortedColumnKeys(changes, s)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("no columns to update")
	}

	assignments := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, key := range keys {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", key, len(args)+1))
		args = append(args, changes[key])
	}
	if s.HasField("updated_at") {
		assignments = append(assignments, "updated_at = now()")
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		s.Table(),
		strings.Join(assignments, ", "),
		len(args),
		strings.Join(s.Columns(), ", "),
	)
	return query, args, nil
}

func buildDeleteStatement(s *crm.Schema) string {
	return fmt.Sprintf(
		"DELETE FROM %s WHERE id = $1 RETURNING %s",
		s.Table(),
		strings.Join(s.Columns(), ", "),
	)
}

func buildSoftDeleteStatement(s *crm.Schema) string {
	assignments := "is_active = false"
	if s.HasField("updated_at") {
		assignments += ", updated_at = now()"
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		s.Table(),
		assignments,
		strings.Join(s.Columns(), ", "),
	)
}

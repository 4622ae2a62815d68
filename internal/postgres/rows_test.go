package postgres

import (
	"reflect"

	"github.com/pashagolub/pgxmock/v4"

	crm "github.com/smdydx/bidua-crm"
)

// entityRows builds a mock result set with the schema's column order,
// pulling values out of the structs by db tag so the rows line up with what
// the row mapper scans.
func entityRows[E any](s *crm.Schema, items ...E) *pgxmock.Rows {
	cols := s.Columns()
	rows := pgxmock.NewRows(cols)
	for _, item := range items {
		v := reflect.ValueOf(item)
		byTag := make(map[string]any, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			if tag := v.Type().Field(i).Tag.Get("db"); tag != "" {
				byTag[tag] = v.Field(i).Interface()
			}
		}
		values := make([]any, len(cols))
		for i, col := range cols {
			values[i] = byTag[col]
		}
		rows.AddRow(values...)
	}
	return rows
}

func ptr[T any](v T) *T {
	return &v
}

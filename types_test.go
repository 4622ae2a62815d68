package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListQuery
		wantSkip  int
		wantLimit int
	}{
		{"zero value gets defaults", ListQuery{}, 0, DefaultListLimit},
		{"negative skip clamps to zero", ListQuery{Skip: -5, Limit: 10}, 0, 10},
		{"limit above cap clamps to cap", ListQuery{Limit: 150}, 0, MaxListLimit},
		{"limit at cap stays", ListQuery{Limit: 100}, 0, 100},
		{"negative limit gets default", ListQuery{Limit: -1}, 0, DefaultListLimit},
		{"valid window untouched", ListQuery{Skip: 40, Limit: 20}, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantSkip, got.Skip)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestListQueryNormalizeKeepsPredicates(t *testing.T) {
	q := ListQuery{
		Limit:   500,
		Filters: Filters{"status": "new"},
		Search:  "acme",
		OrderBy: "-created_at",
	}
	got := q.Normalize()
	assert.Equal(t, MaxListLimit, got.Limit)
	assert.Equal(t, Filters{"status": "new"}, got.Filters)
	assert.Equal(t, "acme", got.Search)
	assert.Equal(t, "-created_at", got.OrderBy)
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"zero value", PageRequest{}, 1, DefaultPageSize},
		{"page below one", PageRequest{Page: 0, Size: 10}, 1, 10},
		{"negative page", PageRequest{Page: -3, Size: 10}, 1, 10},
		{"size above cap", PageRequest{Page: 2, Size: 150}, 2, MaxListLimit},
		{"normal", PageRequest{Page: 3, Size: 25}, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.Size)
		})
	}
}

func TestPageRequestWindow(t *testing.T) {
	p := PageRequest{Page: 3, Size: 20}
	assert.Equal(t, 40, p.Skip())
	assert.Equal(t, 20, p.Limit())

	first := PageRequest{}
	assert.Equal(t, 0, first.Skip())
	assert.Equal(t, DefaultPageSize, first.Limit())

	oversized := PageRequest{Page: 2, Size: 500}
	assert.Equal(t, MaxListLimit, oversized.Skip())
	assert.Equal(t, MaxListLimit, oversized.Limit())
}

func TestNewPagedResult(t *testing.T) {
	items := []string{"a", "b", "c"}

	res := NewPagedResult(items, 23, PageRequest{Page: 1, Size: 10})
	assert.Equal(t, int64(23), res.TotalRecords)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Size)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrevious)

	last := NewPagedResult(items, 23, PageRequest{Page: 3, Size: 10})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)

	exact := NewPagedResult(items, 20, PageRequest{Page: 2, Size: 10})
	assert.Equal(t, 2, exact.TotalPages)
	assert.False(t, exact.HasNext)
}

func TestNewPagedResultEmpty(t *testing.T) {
	res := NewPagedResult[string](nil, 0, PageRequest{})
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrevious)
}

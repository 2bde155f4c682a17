package utils

import (
	"reflect"
	"testing"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		totalCount int64
		expected   Pagination
	}{
		{
			name: "no results",
			page: 1, pageSize: 10, totalCount: 0,
			expected: Pagination{Page: 1, PageSize: 10, TotalPages: 0, TotalCount: 0, HasNextPage: false, HasPreviousPage: false},
		},
		{
			name: "exact multiple of page size",
			page: 1, pageSize: 10, totalCount: 20,
			expected: Pagination{Page: 1, PageSize: 10, TotalPages: 2, TotalCount: 20, HasNextPage: true, HasPreviousPage: false},
		},
		{
			name: "last partial page",
			page: 3, pageSize: 10, totalCount: 25,
			expected: Pagination{Page: 3, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNextPage: false, HasPreviousPage: true},
		},
		{
			name: "middle page has both neighbors",
			page: 2, pageSize: 10, totalCount: 25,
			expected: Pagination{Page: 2, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNextPage: true, HasPreviousPage: true},
		},
		{
			name: "page beyond total pages",
			page: 9, pageSize: 10, totalCount: 25,
			expected: Pagination{Page: 9, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNextPage: false, HasPreviousPage: true},
		},
		{
			name: "single item",
			page: 1, pageSize: 10, totalCount: 1,
			expected: Pagination{Page: 1, PageSize: 10, TotalPages: 1, TotalCount: 1, HasNextPage: false, HasPreviousPage: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.pageSize, tt.totalCount)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NewPagination(%d, %d, %d) = %+v, want %+v",
					tt.page, tt.pageSize, tt.totalCount, got, tt.expected)
			}
		})
	}
}

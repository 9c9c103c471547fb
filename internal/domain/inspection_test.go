package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		critical int
		want     InspectionStatus
	}{
		{"no critical issues", 0, InspectionStatusCompleted},
		{"one critical issue", 1, InspectionStatusActionRequired},
		{"many critical issues", 12, InspectionStatusActionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFor(tt.critical)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestInspectionStatus_IsValid(t *testing.T) {
	assert.True(t, InspectionStatusCompleted.IsValid())
	assert.True(t, InspectionStatusActionRequired.IsValid())
	assert.False(t, InspectionStatus("completed").IsValid())
	assert.False(t, InspectionStatus("").IsValid())
}

func TestListInspectionsResult_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		result      ListInspectionsResult
		hasMore     bool
		hasPrevious bool
		page        int
		totalPages  int
	}{
		{
			name:       "first of several pages",
			result:     ListInspectionsResult{Total: 45, Limit: 20, Offset: 0},
			hasMore:    true,
			page:       1,
			totalPages: 3,
		},
		{
			name:        "last partial page",
			result:      ListInspectionsResult{Total: 45, Limit: 20, Offset: 40},
			hasPrevious: true,
			page:        3,
			totalPages:  3,
		},
		{
			name:       "empty result",
			result:     ListInspectionsResult{Total: 0, Limit: 20},
			page:       1,
			totalPages: 0,
		},
		{
			name:       "zero limit",
			result:     ListInspectionsResult{Total: 5},
			hasMore:    true,
			page:       1,
			totalPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasMore, tt.result.HasMore())
			assert.Equal(t, tt.hasPrevious, tt.result.HasPrevious())
			assert.Equal(t, tt.page, tt.result.CurrentPage())
			assert.Equal(t, tt.totalPages, tt.result.TotalPages())
		})
	}
}

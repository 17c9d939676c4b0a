package pagination_test

import (
	"testing"

	"portfolio-backend/internal/common/pagination"
)

func TestLoadMoreStrategyBuildMetadata(t *testing.T) {
	s := pagination.LoadMoreStrategy{Step: 6}

	tests := []struct {
		name  string
		shown int
		total int
		want  pagination.Metadata
	}{
		{
			name:  "more available",
			shown: 6,
			total: 20,
			want:  pagination.Metadata{Total: 20, Shown: 6, HasMore: true, NextShown: 12},
		},
		{
			name:  "exhausted",
			shown: 20,
			total: 20,
			want:  pagination.Metadata{Total: 20, Shown: 20, HasMore: false, NextShown: 20},
		},
		{
			name:  "shown over total clamps",
			shown: 50,
			total: 8,
			want:  pagination.Metadata{Total: 8, Shown: 8, HasMore: false, NextShown: 8},
		},
		{
			name:  "empty set",
			shown: 6,
			total: 0,
			want:  pagination.Metadata{Total: 0, Shown: 0, HasMore: false, NextShown: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.BuildMetadata(pagination.Params{Shown: tt.shown}, tt.total)
			if got != tt.want {
				t.Errorf("BuildMetadata() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

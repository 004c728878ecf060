package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	var nilInt *int
	page := 2
	empty := ""

	tests := []struct {
		name     string
		params   []Param
		expected string
	}{
		{
			name:     "Drops nil and empty values in order",
			params:   []Param{P("a", 1), P("b", ""), P("c", nil), P("d", "x")},
			expected: "?a=1&d=x",
		},
		{
			name:     "Nothing left",
			params:   []Param{P("a", nil), P("b", "")},
			expected: "",
		},
		{
			name:     "No params",
			expected: "",
		},
		{
			name:     "Pointers are dereferenced",
			params:   []Param{P("page", &page), P("size", nilInt), P("search", &empty)},
			expected: "?page=2",
		},
		{
			name:     "Zero and false survive",
			params:   []Param{P("page", 0), P("locked", false)},
			expected: "?page=0&locked=false",
		},
		{
			name:     "Values are escaped",
			params:   []Param{P("search", "a b&c"), P("channelId", "UC_x-1")},
			expected: "?search=a+b%26c&channelId=UC_x-1",
		},
		{
			name:     "Dates render as ISO dates",
			params:   []Param{P("startDate", time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)), P("endDate", time.Time{})},
			expected: "?startDate=2024-03-09",
		},
		{
			name:     "Floats keep their shortest form",
			params:   []Param{P("ratio", 0.25)},
			expected: "?ratio=0.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildQuery(tt.params...))
		})
	}
}

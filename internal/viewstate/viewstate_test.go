package viewstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice_LatestTicketWins(t *testing.T) {
	var s Slice[string]

	first := s.Begin()
	second := s.Begin()

	assert.True(t, s.Apply(second, "fresh", nil))
	assert.False(t, s.Apply(first, "stale", nil), "superseded response must not overwrite newer state")

	v := s.View()
	assert.Equal(t, "fresh", v.Data)
	assert.False(t, v.Loading)
	assert.True(t, v.Loaded)
}

func TestSlice_ErrorKeepsPreviousData(t *testing.T) {
	var s Slice[int]
	s.Apply(s.Begin(), 7, nil)

	ticket := s.Begin()
	assert.True(t, s.View().Loading)
	s.Apply(ticket, 0, errors.New("boom"))

	v := s.View()
	assert.Equal(t, 7, v.Data)
	assert.EqualError(t, v.Err, "boom")
}

func TestSlice_ResetInvalidatesOutstanding(t *testing.T) {
	var s Slice[int]
	ticket := s.Begin()
	s.Reset()
	assert.False(t, s.Apply(ticket, 1, nil))
	assert.False(t, s.View().Loaded)
}

func TestPager(t *testing.T) {
	p := NewPager(10)
	assert.False(t, p.HasPrev())
	assert.Equal(t, 0, p.Prev(), "previous is a no-op at page 0")

	p.Update(3)
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Next())
	assert.Equal(t, 2, p.Next())
	assert.False(t, p.HasNext())
	assert.Equal(t, 2, p.Next(), "next is a no-op at the last page")

	assert.Equal(t, 2, p.Go(10))
	assert.Equal(t, 0, p.Go(-4))

	p.Go(2)
	p.Update(1)
	assert.Equal(t, 0, p.Page, "shrinking totals re-clamps the page")

	p.Update(0)
	assert.Equal(t, 5, p.Clamp(5), "unknown totals only clamp below")
}

func TestPercentages(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[string]int64
		expected map[string]int
	}{
		{
			name:     "Exact split",
			counts:   map[string]int64{"positive": 50, "negative": 25, "neutral": 25},
			expected: map[string]int{"positive": 50, "negative": 25, "neutral": 25},
		},
		{
			name:     "Thirds sum to 100",
			counts:   map[string]int64{"a": 1, "b": 1, "c": 1},
			expected: map[string]int{"a": 34, "b": 33, "c": 33},
		},
		{
			name:     "Zero total",
			counts:   map[string]int64{"a": 0, "b": 0},
			expected: map[string]int{"a": 0, "b": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]int{}
			for _, s := range Percentages(tt.counts) {
				got[s.Label] = s.Percent
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompactNumber(t *testing.T) {
	tests := map[int64]string{
		0:             "0",
		999:           "999",
		1000:          "1K",
		1250:          "1.2K",
		3_456_789:     "3.4M",
		1_100_000_000: "1.1B",
		-2500:         "-2.5K",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, CompactNumber(in), "CompactNumber(%d)", in)
	}
}

func TestPolyline(t *testing.T) {
	assert.Equal(t, "", Polyline(nil, 100, 50))
	assert.Equal(t, "50,25", Polyline([]int64{7}, 100, 50))
	assert.Equal(t, "0,50 50,0 100,25", Polyline([]int64{0, 10, 5}, 100, 50))
	assert.Equal(t, "0,25 100,25", Polyline([]int64{3, 3}, 100, 50))
}

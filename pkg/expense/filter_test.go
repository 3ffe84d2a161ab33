package expense

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name     string
		query    string
		expected Filter
	}{
		{"defaults", "", Filter{Limit: 50}},
		{"all parameters", "startDate=2024-01-01&endDate=2024-01-31&categoryId=3&limit=10&offset=20",
			Filter{StartDate: "2024-01-01", EndDate: "2024-01-31", CategoryId: intPtr(3), Limit: 10, Offset: 20}},
		{"limit above cap", "limit=9999", Filter{Limit: 200}},
		{"zero limit", "limit=0", Filter{Limit: 1}},
		{"negative limit", "limit=-5", Filter{Limit: 1}},
		{"non-numeric limit", "limit=abc", Filter{Limit: 50}},
		{"negative offset", "offset=-3", Filter{Limit: 50}},
		{"non-numeric offset", "offset=NaN", Filter{Limit: 50}},
		{"non-numeric categoryId", "categoryId=food", Filter{Limit: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			assert.Equal(t, tt.expected, ParseFilter(query))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	for _, valid := range []string{"2024-03-15", "2024-03-15T10:20:30Z", "2024-03-15T10:20:30.123Z", "2024-03-15T10:20:30+02:00", "2024-03-15T10:20:30"} {
		assert.True(t, IsValidDate(valid), valid)
	}
	for _, invalid := range []string{"", "yesterday", "15/03/2024", "2024-13-01"} {
		assert.False(t, IsValidDate(invalid), invalid)
	}
}

package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-03", "Mar 2021"},
		{"1999-12", "Dec 1999"},
		{" 2020-01 ", "Jan 2020"},
		{"", ""},
		{"2021-13", ""},
		{"March 2021", ""},
		{"2021-03-15", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		current bool
		want    string
	}{
		{"closed range", "2019-01", "2021-06", false, "Jan 2019 - Jun 2021"},
		{"current ignores end", "2021-03", "2022-01", true, "Mar 2021 - Present"},
		{"current without end", "2021-03", "", true, "Mar 2021 - Present"},
		{"no end", "2021-03", "", false, "Mar 2021"},
		{"malformed end", "2021-03", "soon", false, "Mar 2021"},
		{"no start", "", "2021-06", false, ""},
		{"malformed start", "last year", "", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateRange(tt.start, tt.end, tt.current))
		})
	}
}

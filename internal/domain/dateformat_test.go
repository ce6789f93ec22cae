package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormat_Parse(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
		wantErr bool
	}{
		{pattern: "YYYY-MM-DD", input: "2024-01-05", want: "2024-01-05"},
		{pattern: "YYYY-MM-DD", input: "2024-1-5", wantErr: true},
		{pattern: "YYYY-MM-DD", input: "2024-01-05 notes", wantErr: true},
		{pattern: "YYYY-MM-DD", input: "2024-02-30", wantErr: true},
		{pattern: "DD.MM.YYYY", input: "05.01.2024", want: "2024-01-05"},
		{pattern: "YYYYMMDD", input: "20240105", want: "2024-01-05"},
		{pattern: "YY-M-D", input: "24-1-5", want: "2024-01-05"},
		{pattern: "YY-MM-DD", input: "99-12-31", want: "1999-12-31"},
		{pattern: "dddd, MMMM D YYYY", input: "Friday, January 5 2024", want: "2024-01-05"},
		{pattern: "dddd, MMMM D YYYY", input: "Monday, January 5 2024", wantErr: true},
		{pattern: "ddd MMM Do YYYY", input: "Fri Jan 5th 2024", want: "2024-01-05"},
		{pattern: "[Day] YYYY-MM-DD", input: "Day 2024-01-05", want: "2024-01-05"},
		{pattern: "[W]YYYY-MM-DD", input: "W2024-01-05", want: "2024-01-05"},
		{pattern: "YYYY-DDDD", input: "2024-060", want: "2024-02-29"},
		{pattern: "YYYY-DDDD", input: "2023-366", wantErr: true},
		{pattern: "YYYY-MM", input: "2024-03", want: "2024-03-01"},
		{pattern: "YYYY/MM/DD", input: "2024/01/05", want: "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.input, func(t *testing.T) {
			f, err := CompileDateFormat(tt.pattern)
			require.NoError(t, err)

			got, err := f.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCompileDateFormat_Errors(t *testing.T) {
	for _, pattern := range []string{"", "   ", "MM-DD", "gggg-ww", "YYYY-[W", "YYYY-[W]ww"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := CompileDateFormat(pattern)
			assert.ErrorIs(t, err, ErrInvalidDateFormat)
		})
	}
}

func TestDateFormat_Pattern(t *testing.T) {
	f, err := CompileDateFormat(DefaultDailyNoteFormat)
	require.NoError(t, err)
	assert.Equal(t, "YYYY-MM-DD", f.Pattern())
}

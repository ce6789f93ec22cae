package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso", input: "2024-01-05", want: NewDate(2024, time.January, 5)},
		{name: "surrounding space", input: " 2024-01-05 ", want: NewDate(2024, time.January, 5)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "no leap day", input: "2023-02-29", wantErr: true},
		{name: "day out of range", input: "2024-02-30", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseAnnotationDate(t *testing.T) {
	want := NewDate(2024, time.March, 9)
	for _, in := range []string{"2024-03-09", "2024-03-09T10:30", "2024-03-09 10:30:15", "2024-03-09T10:30:00Z"} {
		got, err := ParseAnnotationDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	_, err := ParseAnnotationDate("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2024, 1, 5, 23, 30, 0, 0, zone))
	assert.Equal(t, "2024-01-05", d.String())
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.January, 5)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(NewDate(2024, time.January, 5)))
	assert.Equal(t, "2024-01-04", a.AddDays(-1).String())
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due,omitempty"`
	}

	data, err := json.Marshal(wrapper{Due: DatePtr(NewDate(2024, time.January, 5))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-01-05"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-02-01"}`), &w))
	require.NotNil(t, w.Due)
	assert.Equal(t, "2024-02-01", w.Due.String())

	assert.Error(t, json.Unmarshal([]byte(`{"due":"2024-02-31"}`), &w))
}

func TestDate_ZeroValue(t *testing.T) {
	var d Date
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

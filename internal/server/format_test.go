package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		ms   *int64
		want string
	}{
		{name: "absent", ms: nil, want: "N/A"},
		{name: "zero", ms: int64Ptr(0), want: "0ms"},
		{name: "under a second", ms: int64Ptr(500), want: "500ms"},
		{name: "just under a second", ms: int64Ptr(999), want: "999ms"},
		{name: "seconds", ms: int64Ptr(1500), want: "1.50s"},
		{name: "just under a minute", ms: int64Ptr(59999), want: "60.00s"},
		{name: "minutes", ms: int64Ptr(90000), want: "1.50min"},
		{name: "long run", ms: int64Ptr(3600000), want: "60.00min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.ms))
		})
	}
}

func TestFormatDatetime(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: "N/A"},
		{name: "utc zulu", value: "2024-03-05T09:30:00Z", want: "2024-03-05 09:30"},
		{name: "explicit offset", value: "2024-03-05T09:30:00+05:00", want: "2024-03-05 09:30"},
		{name: "no offset", value: "2024-03-05T09:30:45", want: "2024-03-05 09:30"},
		{name: "fractional seconds", value: "2024-03-05T09:30:45.123456", want: "2024-03-05 09:30"},
		{name: "date only", value: "2024-03-05", want: "2024-03-05 00:00"},
		{name: "space separator", value: "2024-03-05 09:30:45", want: "2024-03-05 09:30"},
		{name: "unparseable passes through", value: "not-a-timestamp", want: "not-a-timestamp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDatetime(tc.value))
		})
	}
}

package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2025-12-08")
	require.NoError(t, err)
	require.Equal(t, "2025-12-08", d.String())
	require.Equal(t, time.Monday, d.Weekday())

	for _, bad := range []string{"", "2025-13-01", "08/12/2025", "2025-12-08T00:00:00Z"} {
		_, err := domain.ParseDate(bad)
		require.ErrorIs(t, err, domain.ErrInvalidDate, bad)
	}
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-08", "2025-12-08"}, // Monday
		{"2025-12-10", "2025-12-08"},
		{"2025-12-13", "2025-12-08"}, // Saturday
		{"2025-12-14", "2025-12-08"}, // Sunday
		{"2025-12-15", "2025-12-15"},
		{"2026-01-01", "2025-12-29"}, // across a year boundary
	}
	for _, tt := range tests {
		in, err := time.Parse("2006-01-02", tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, domain.WeekStartOf(in.Add(15*time.Hour)).String(), tt.in)
	}
}

func TestWeekEnd(t *testing.T) {
	require.Equal(t, "2025-12-14", domain.WeekEnd(domain.MustParseDate("2025-12-08")).String())
	require.Equal(t, "2025-03-02", domain.WeekEnd(domain.MustParseDate("2025-02-24")).String())
}

func TestDateBetweenAndCompare(t *testing.T) {
	from := domain.MustParseDate("2025-12-08")
	to := domain.MustParseDate("2025-12-14")

	require.True(t, from.Between(from, to))
	require.True(t, to.Between(from, to))
	require.False(t, from.AddDays(-1).Between(from, to))
	require.False(t, to.AddDays(1).Between(from, to))

	require.Equal(t, -1, from.Compare(to))
	require.Equal(t, 0, from.Compare(domain.NewDate(2025, time.December, 8)))
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due domain.Date `json:"due"`
	}

	out, err := json.Marshal(wrapper{Due: domain.MustParseDate("2025-01-02")})
	require.NoError(t, err)
	require.JSONEq(t, `{"due":"2025-01-02"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-02-03"}`), &w))
	require.Equal(t, "2025-02-03", w.Due.String())

	require.NoError(t, json.Unmarshal([]byte(`{"due":""}`), &w))
	require.True(t, w.Due.IsZero())

	require.Error(t, json.Unmarshal([]byte(`{"due":"tomorrow"}`), &w))
}

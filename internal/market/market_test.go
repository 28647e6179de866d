package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ist(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, IST)
}

func TestSession_IsOpen(t *testing.T) {
	s := NSE()
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before open", ist(2025, 1, 6, 9, 14), false},
		{"at open", ist(2025, 1, 6, 9, 15), true},
		{"midday", ist(2025, 1, 8, 12, 0), true},
		{"at close", ist(2025, 1, 10, 15, 30), true},
		{"after close", ist(2025, 1, 10, 15, 31), false},
		{"saturday", ist(2025, 1, 11, 11, 0), false},
		{"sunday", ist(2025, 1, 12, 11, 0), false},
		// 06:00 UTC is 11:30 IST
		{"utc input", time.Date(2025, 1, 7, 6, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.IsOpen(tc.at))
		})
	}
}

func TestSession_NextOpenSkipsWeekend(t *testing.T) {
	s := NSE()

	// Friday after close -> Monday
	next := s.NextOpen(ist(2025, 1, 10, 16, 0))
	assert.True(t, next.Equal(ist(2025, 1, 13, 9, 15)), "got %v", next)
	assert.Equal(t, time.Monday, next.Weekday())

	// Saturday -> Monday
	next = s.NextOpen(ist(2025, 1, 11, 10, 0))
	assert.True(t, next.Equal(ist(2025, 1, 13, 9, 15)))

	// weekday before open -> same day
	next = s.NextOpen(ist(2025, 1, 7, 8, 0))
	assert.True(t, next.Equal(ist(2025, 1, 7, 9, 15)))

	// during the session -> tomorrow
	next = s.NextOpen(ist(2025, 1, 7, 10, 0))
	assert.True(t, next.Equal(ist(2025, 1, 8, 9, 15)))
}

func TestSession_Status(t *testing.T) {
	st := NSE().Status(time.Date(2025, 1, 11, 4, 30, 0, 0, time.UTC))

	assert.Equal(t, "NSE", st.Exchange)
	assert.False(t, st.IsOpen)
	assert.False(t, st.IsWeekday)
	assert.Equal(t, "10:00:00", st.CurrentTime)
	assert.Equal(t, "2025-01-11", st.CurrentDate)
	assert.Equal(t, "09:15", st.MarketOpen)
	assert.Equal(t, "15:30", st.MarketClose)
	assert.Equal(t, "IST (UTC+5:30)", st.Timezone)
	assert.True(t, st.NextOpen.Equal(ist(2025, 1, 13, 9, 15)))
	assert.True(t, st.NextClose.Equal(ist(2025, 1, 13, 15, 30)))
}

func TestNewSession_BadTimes(t *testing.T) {
	_, err := NewSession("X", time.UTC, "UTC", 25, 0, 26, 0)
	require.Error(t, err)
}

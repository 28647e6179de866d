package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDemo() *DemoFetcher {
	d := NewDemoFetcher(7)
	d.Now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	return d
}

func TestDemoFetcher_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := fixedDemo().FetchHistory(ctx, "TCS.NS", 90)
	require.NoError(t, err)
	b, err := fixedDemo().FetchHistory(ctx, "tcs.ns", 90)
	require.NoError(t, err)

	assert.Equal(t, a.Bars, b.Bars)

	other, err := fixedDemo().FetchHistory(ctx, "INFY.NS", 90)
	require.NoError(t, err)
	assert.NotEqual(t, a.Bars[len(a.Bars)-1].Close, other.Bars[len(other.Bars)-1].Close)
}

func TestDemoFetcher_BarShape(t *testing.T) {
	series, err := fixedDemo().FetchHistory(context.Background(), "NSE:RELIANCE", 28)
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE.NS", series.ProviderSymbol)
	assert.Equal(t, "demo", series.Source)
	// four full weeks
	require.Len(t, series.Bars, 20)
	for i, b := range series.Bars {
		assert.NotEqual(t, time.Saturday, b.Time.Weekday())
		assert.NotEqual(t, time.Sunday, b.Time.Weekday())
		assert.GreaterOrEqual(t, b.High, b.Close)
		assert.GreaterOrEqual(t, b.High, b.Open)
		assert.LessOrEqual(t, b.Low, b.Close)
		assert.LessOrEqual(t, b.Low, b.Open)
		assert.Positive(t, b.Volume)
		if i > 0 {
			assert.True(t, b.Time.After(series.Bars[i-1].Time))
		}
	}
	assert.Equal(t, 14, series.Bars[len(series.Bars)-1].Time.Day())
}

func TestDemoFetcher_EmptyWindow(t *testing.T) {
	d := fixedDemo()
	d.Now = func() time.Time { return time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC) } // Sunday

	_, err := d.FetchHistory(context.Background(), "TCS", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemoFetcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixedDemo().FetchHistory(ctx, "TCS", 30)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

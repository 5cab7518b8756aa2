package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/usecase"
)

func TestPriceSeriesProvider_Lengths(t *testing.T) {
	p := usecase.NewPriceSeriesProvider()

	assert.Len(t, p.Series(domain.Period24h), 24)
	assert.Len(t, p.Series(domain.Period7d), 7)
	assert.Len(t, p.Series(domain.Period30d), 30)

	for _, period := range domain.Periods {
		assert.Equal(t, len(p.Series(period)), len(p.Labels(period)), "period %s", period)
	}
}

func TestPriceSeriesProvider_UnknownPeriodDefaultsTo7d(t *testing.T) {
	p := usecase.NewPriceSeriesProvider()

	assert.Equal(t, p.Series(domain.Period7d), p.Series(domain.Period("1y")))
	assert.Equal(t, p.Labels(domain.Period7d), p.Labels(domain.Period("")))
	assert.Equal(t, domain.Period7d, p.Dataset(domain.Period("bogus")).Period)
}

func TestPriceSeriesProvider_Labels(t *testing.T) {
	p := usecase.NewPriceSeriesProvider()

	hourly := p.Labels(domain.Period24h)
	want := make([]string, 24)
	for i := range want {
		want[i] = fmt.Sprintf("%d:00", i)
	}
	assert.Equal(t, want, hourly)

	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3", "Day 4", "Day 5", "Day 6", "Day 7"}, p.Labels(domain.Period7d))

	monthly := p.Labels(domain.Period30d)
	assert.Equal(t, "1", monthly[0])
	assert.Equal(t, "30", monthly[29])
}

func TestPriceSeriesProvider_SeriesIsCopy(t *testing.T) {
	p := usecase.NewPriceSeriesProvider()
	s := p.Series(domain.Period7d)
	s[0] = 0

	assert.Equal(t, 84500.0, p.Series(domain.Period7d)[0])
}

func TestPriceSeriesProvider_Dataset(t *testing.T) {
	ds := usecase.NewPriceSeriesProvider().Dataset(domain.Period30d)

	assert.Equal(t, domain.Period30d, ds.Period)
	assert.True(t, ds.Demo)
	assert.Equal(t, 86455.0, ds.Prices[len(ds.Prices)-1])
}

func TestDatasetFromQuotes(t *testing.T) {
	base := time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC) // Monday
	points := []domain.PricePoint{
		{Time: base, Price: 100},
		{Time: base.Add(24 * time.Hour), Price: 101},
	}

	weekly := usecase.DatasetFromQuotes(domain.Period7d, points)
	require.Len(t, weekly.Labels, 2)
	assert.Equal(t, []string{"Mon", "Tue"}, weekly.Labels)
	assert.Equal(t, []float64{100, 101}, weekly.Prices)
	assert.False(t, weekly.Demo)

	assert.Equal(t, []string{"15:00", "15:00"}, usecase.DatasetFromQuotes(domain.Period24h, points).Labels)
	assert.Equal(t, []string{"12", "13"}, usecase.DatasetFromQuotes(domain.Period30d, points).Labels)
}

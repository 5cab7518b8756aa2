package usecase

import (
	"fmt"
	"strconv"

	"github.com/vitos/coin_wallet/internal/domain"
)

// Demo BTC/USD history, one point per hour (24h) or per day (7d, 30d).
var fixtureSeries = map[domain.Period][]float64{
	domain.Period24h: {
		86200, 86350, 86400, 86500, 86650, 86580, 86420, 86300, 86250, 86380, 86455, 86520,
		86600, 86550, 86480, 86400, 86320, 86280, 86350, 86430, 86480, 86510, 86470, 86455,
	},
	domain.Period7d: {
		84500, 85000, 85500, 86000, 86200, 86300, 86455,
	},
	domain.Period30d: {
		82000, 82500, 83000, 83500, 84000, 84500, 85000, 85500, 86000, 86200,
		86300, 86400, 86500, 86600, 86500, 86400, 86300, 86200, 86100, 86000,
		85900, 85800, 85900, 86000, 86100, 86200, 86300, 86400, 86450, 86455,
	},
}

// PriceSeriesProvider serves the fixed price series and their labels.
type PriceSeriesProvider struct {
	series map[domain.Period][]float64
}

func NewPriceSeriesProvider() *PriceSeriesProvider {
	return &PriceSeriesProvider{series: fixtureSeries}
}

func (p *PriceSeriesProvider) resolve(period domain.Period) domain.Period {
	if _, ok := p.series[period]; ok {
		return period
	}
	return domain.DefaultPeriod
}

// Series returns a copy of the series for period, or the 7d series when the
// period is unknown.
func (p *PriceSeriesProvider) Series(period domain.Period) []float64 {
	src := p.series[p.resolve(period)]
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Labels returns one display label per point of Series(period).
func (p *PriceSeriesProvider) Labels(period domain.Period) []string {
	period = p.resolve(period)
	n := len(p.series[period])

	labels := make([]string, n)
	for i := range labels {
		labels[i] = indexLabel(period, i)
	}
	return labels
}

// Dataset bundles series and labels for a chart.
func (p *PriceSeriesProvider) Dataset(period domain.Period) domain.Dataset {
	period = p.resolve(period)
	return domain.Dataset{
		Period: period,
		Labels: p.Labels(period),
		Prices: p.Series(period),
		Demo:   true,
	}
}

func indexLabel(period domain.Period, i int) string {
	switch period {
	case domain.Period24h:
		return fmt.Sprintf("%d:00", i)
	case domain.Period30d:
		return strconv.Itoa(i + 1)
	default:
		return fmt.Sprintf("Day %d", i+1)
	}
}

// DatasetFromQuotes labels remote price points by their timestamps.
func DatasetFromQuotes(period domain.Period, points []domain.PricePoint) domain.Dataset {
	ds := domain.Dataset{
		Period: period,
		Labels: make([]string, len(points)),
		Prices: make([]float64, len(points)),
	}
	for i, pt := range points {
		ts := pt.Time.UTC()
		switch period {
		case domain.Period24h:
			ds.Labels[i] = ts.Format("15:04")
		case domain.Period30d:
			ds.Labels[i] = strconv.Itoa(ts.Day())
		default:
			ds.Labels[i] = ts.Format("Mon")
		}
		ds.Prices[i] = pt.Price
	}
	return ds
}

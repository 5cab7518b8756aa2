package domain

import (
	"strings"
	"time"
)

// Period selects which price series and label format a chart uses.
type Period string

const (
	Period24h Period = "24h"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// DefaultPeriod is used whenever a period is missing or unknown.
const DefaultPeriod = Period7d

// Periods lists the supported periods in display order.
var Periods = []Period{Period24h, Period7d, Period30d}

// ParsePeriod maps a period token to a Period. Unknown tokens fall back to 7d.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Period24h:
		return Period24h
	case Period30d:
		return Period30d
	default:
		return DefaultPeriod
	}
}

// Days is the history window in days requested from the quote source.
func (p Period) Days() int {
	switch p {
	case Period24h:
		return 1
	case Period30d:
		return 30
	default:
		return 7
	}
}

func (p Period) String() string {
	return string(p)
}

// PricePoint is a single (timestamp, price) pair from the quote source.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Dataset is what a chart is drawn from: parallel labels and prices.
type Dataset struct {
	Period Period    `json:"period"`
	Labels []string  `json:"labels"`
	Prices []float64 `json:"prices"`
	Demo   bool      `json:"demo"`
}

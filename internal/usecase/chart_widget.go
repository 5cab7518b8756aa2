package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vitos/coin_wallet/internal/domain"
	"go.uber.org/zap"
)

type WidgetState string

const (
	StateUnmounted WidgetState = "unmounted"
	StateLoading   WidgetState = "loading"
	StateReady     WidgetState = "ready"
	StateRendering WidgetState = "rendering"
	StateRendered  WidgetState = "rendered"
	StateFailed    WidgetState = "failed"
)

const (
	DefaultSurfaceRetryDelay = 100 * time.Millisecond

	SurfaceNotReadyMessage = "chart could not be initialised: drawing surface not ready"
	DemoDataWarning        = "live prices unavailable, showing demo data"
)

// SurfaceLocator reports the host view's drawing surface once it is laid out.
type SurfaceLocator func() (domain.Surface, bool)

// ChartWidget drives one price chart through load, layout sync, render and
// teardown. At most one chart instance is live at any time.
type ChartWidget struct {
	mu         sync.Mutex
	provider   *PriceSeriesProvider
	quotes     domain.QuoteSource
	factory    domain.ChartFactory
	locate     SurfaceLocator
	logger     *zap.Logger
	retryDelay time.Duration

	state      WidgetState
	mounted    bool
	generation uint64
	dataset    *domain.Dataset
	chart      domain.Chart
	warning    string
	errMsg     string
}

// NewChartWidget builds an unmounted widget. quotes may be nil, in which case
// the fixture series is always used.
func NewChartWidget(
	provider *PriceSeriesProvider,
	quotes domain.QuoteSource,
	factory domain.ChartFactory,
	locate SurfaceLocator,
	logger *zap.Logger,
) *ChartWidget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartWidget{
		provider:   provider,
		quotes:     quotes,
		factory:    factory,
		locate:     locate,
		logger:     logger,
		retryDelay: DefaultSurfaceRetryDelay,
		state:      StateUnmounted,
	}
}

func (w *ChartWidget) SetSurfaceRetryDelay(d time.Duration) {
	w.mu.Lock()
	w.retryDelay = d
	w.mu.Unlock()
}

// Mount loads the dataset for period and renders it once the surface exists.
// Failures end in StateFailed with a message; Mount itself never fails.
func (w *ChartWidget) Mount(ctx context.Context, period domain.Period) {
	w.mu.Lock()
	w.mounted = true
	w.generation++
	gen := w.generation
	w.mu.Unlock()

	w.load(ctx, gen, period)
}

// SetPeriod reloads the data for a new period and replaces the chart.
func (w *ChartWidget) SetPeriod(ctx context.Context, period domain.Period) {
	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		w.logger.Debug("Ignoring period switch on unmounted chart widget", zap.String("period", period.String()))
		return
	}
	w.generation++
	gen := w.generation
	w.mu.Unlock()

	w.load(ctx, gen, period)
}

// Relayout redraws the current dataset, e.g. after the surface was replaced.
func (w *ChartWidget) Relayout(ctx context.Context) {
	w.mu.Lock()
	if !w.mounted || w.dataset == nil {
		w.mu.Unlock()
		return
	}
	gen := w.generation
	w.mu.Unlock()

	w.syncAndRender(ctx, gen)
}

// Unmount disposes the live chart, if any. Calling it again is a no-op.
func (w *ChartWidget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.disposeLocked()
	w.mounted = false
	w.generation++
	w.state = StateUnmounted
}

func (w *ChartWidget) load(ctx context.Context, gen uint64, period domain.Period) {
	w.mu.Lock()
	if gen != w.generation {
		w.mu.Unlock()
		return
	}
	w.state = StateLoading
	w.warning = ""
	w.errMsg = ""
	w.mu.Unlock()

	ds, warning := w.resolveDataset(ctx, period)

	w.mu.Lock()
	if !w.mounted || gen != w.generation {
		w.mu.Unlock()
		w.logger.Debug("Discarding dataset for stale chart widget", zap.String("period", ds.Period.String()))
		return
	}
	w.dataset = &ds
	w.warning = warning
	w.state = StateReady
	w.mu.Unlock()

	w.syncAndRender(ctx, gen)
}

func (w *ChartWidget) resolveDataset(ctx context.Context, period domain.Period) (domain.Dataset, string) {
	fixture := w.provider.Dataset(period)
	if w.quotes == nil {
		return fixture, ""
	}

	points, err := w.quotes.PriceHistory(ctx, fixture.Period)
	switch {
	case errors.Is(err, domain.ErrQuotesDisabled):
		w.logger.Debug("Quote source disabled, using demo data")
		return fixture, ""
	case err != nil:
		w.logger.Warn("Failed to load price history, using demo data", zap.Error(err))
		return fixture, DemoDataWarning
	case len(points) == 0:
		w.logger.Warn("Empty price history, using demo data", zap.String("period", fixture.Period.String()))
		return fixture, DemoDataWarning
	}
	return DatasetFromQuotes(fixture.Period, points), ""
}

func (w *ChartWidget) syncAndRender(ctx context.Context, gen uint64) {
	surface, ok := w.awaitSurface(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.mounted || gen != w.generation {
		return
	}
	if !ok {
		w.disposeLocked()
		w.state = StateFailed
		w.errMsg = SurfaceNotReadyMessage
		w.logger.Error("Drawing surface not available after retry", zap.Error(domain.ErrSurfaceNotReady))
		return
	}
	w.renderLocked(surface)
}

// awaitSurface asks for the surface, waits the retry delay once, and asks again.
func (w *ChartWidget) awaitSurface(ctx context.Context) (domain.Surface, bool) {
	if s, ok := w.locate(); ok {
		return s, true
	}

	w.mu.Lock()
	delay := w.retryDelay
	w.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, false
	case <-timer.C:
	}
	return w.locate()
}

func (w *ChartWidget) renderLocked(surface domain.Surface) {
	w.state = StateRendering

	// The previous instance must release its drawing context first.
	w.disposeLocked()

	cfg := domain.NewLineChartConfig(*w.dataset)
	if err := cfg.Validate(); err != nil {
		w.fail("chart could not be created", err)
		return
	}

	chart, err := w.factory.NewChart(surface, cfg)
	if err != nil {
		w.fail("chart could not be created", err)
		return
	}

	w.chart = chart
	w.state = StateRendered
	w.errMsg = ""
	w.logger.Debug("Chart created",
		zap.String("chart_id", chart.ID()),
		zap.String("surface_id", surface.ID()),
		zap.String("period", w.dataset.Period.String()))
}

func (w *ChartWidget) fail(msg string, err error) {
	w.state = StateFailed
	w.errMsg = msg + ": " + err.Error()
	w.logger.Error("Chart render failed", zap.Error(err))
}

func (w *ChartWidget) disposeLocked() {
	if w.chart == nil {
		return
	}
	id := w.chart.ID()
	w.chart.Destroy()
	w.chart = nil
	w.logger.Debug("Chart destroyed", zap.String("chart_id", id))
}

func (w *ChartWidget) State() WidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Warning is the soft notice shown when demo data replaced live prices.
func (w *ChartWidget) Warning() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.warning
}

// Error is the user-visible message of StateFailed.
func (w *ChartWidget) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

func (w *ChartWidget) Dataset() (domain.Dataset, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dataset == nil {
		return domain.Dataset{}, false
	}
	return *w.dataset, true
}

// ChartID returns the id of the live chart, or "" when there is none.
func (w *ChartWidget) ChartID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.chart == nil {
		return ""
	}
	return w.chart.ID()
}

// Tooltip resolves the hover readout at pixel column x of the live chart.
func (w *ChartWidget) Tooltip(x int) (domain.Tooltip, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.chart == nil {
		return domain.Tooltip{}, false
	}
	return w.chart.TooltipAt(x)
}

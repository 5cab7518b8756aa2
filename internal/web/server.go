package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/usecase"
	"go.uber.org/zap"
)

// ChartSettings sizes new drawing surfaces and the layout retry.
type ChartSettings struct {
	Width             int
	Height            int
	SurfaceRetryDelay time.Duration
}

type Server struct {
	router   *http.ServeMux
	server   *http.Server
	catalog  []domain.CoinRecord
	series   *usecase.PriceSeriesProvider
	quotes   domain.QuoteSource
	renderer domain.ChartFactory
	chart    ChartSettings
	logger   *zap.Logger
}

// NewServer wires the route table. quotes may be nil.
func NewServer(
	port int,
	catalog []domain.CoinRecord,
	series *usecase.PriceSeriesProvider,
	quotes domain.QuoteSource,
	renderer domain.ChartFactory,
	chart ChartSettings,
	logger *zap.Logger,
) *Server {
	if chart.Width <= 0 {
		chart.Width = 640
	}
	if chart.Height <= 0 {
		chart.Height = 320
	}
	if chart.SurfaceRetryDelay <= 0 {
		chart.SurfaceRetryDelay = usecase.DefaultSurfaceRetryDelay
	}

	s := &Server{
		router:   http.NewServeMux(),
		catalog:  catalog,
		series:   series,
		quotes:   quotes,
		renderer: renderer,
		chart:    chart,
		logger:   logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

func (s *Server) routes() {
	// Views
	for _, rt := range shellRoutes {
		s.router.HandleFunc("GET "+rt.Pattern, s.viewHandler(rt))
	}

	// JSON API
	s.router.HandleFunc("GET /api/coins", s.handleSearchCoins)
	s.router.HandleFunc("GET /api/coins/{id}", s.handleGetCoin)
	s.router.HandleFunc("GET /api/series", s.handleSeries)
	s.router.HandleFunc("GET /api/chart.png", s.handleChartImage)

	// View sessions
	s.router.HandleFunc("GET /ws/session", s.handleSession)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)
}

// Handler is the full HTTP handler including request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.logger, s.router)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// newWidget builds a chart widget for one view, bound to the given locator.
func (s *Server) newWidget(locate usecase.SurfaceLocator) *usecase.ChartWidget {
	w := usecase.NewChartWidget(s.series, s.quotes, s.renderer, locate, s.logger)
	w.SetSurfaceRetryDelay(s.chart.SurfaceRetryDelay)
	return w
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("<div>System OK</div>"))
}

package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/canvas"
	"github.com/vitos/coin_wallet/internal/usecase"
	"go.uber.org/zap"
)

const (
	minChartSide = 100
	maxChartSide = 2000
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// handleSearchCoins lists the catalog, or filters it when q is present.
func (s *Server) handleSearchCoins(w http.ResponseWriter, r *http.Request) {
	store := usecase.NewSearchStore(s.catalog)

	q := r.URL.Query()
	if !q.Has("q") {
		s.writeJSON(w, http.StatusOK, store.All())
		return
	}
	s.writeJSON(w, http.StatusOK, store.Search(q.Get("q")))
}

func (s *Server) handleGetCoin(w http.ResponseWriter, r *http.Request) {
	store := usecase.NewSearchStore(s.catalog)
	coin, ok := store.FindByID(r.PathValue("id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": domain.ErrCoinNotFound.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, coin)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	period := domain.ParsePeriod(r.URL.Query().Get("period"))
	s.writeJSON(w, http.StatusOK, s.series.Dataset(period))
}

// handleChartImage mounts a widget on a fresh canvas, renders once and
// unmounts when the image is written.
func (s *Server) handleChartImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := clampSide(q.Get("width"), s.chart.Width)
	height := clampSide(q.Get("height"), s.chart.Height)

	surface := canvas.New(width, height)
	widget := s.newWidget(func() (domain.Surface, bool) { return surface, true })
	defer widget.Unmount()

	widget.Mount(r.Context(), domain.ParsePeriod(q.Get("period")))
	if widget.State() != usecase.StateRendered {
		s.logger.Error("Chart image not rendered", zap.String("state", string(widget.State())), zap.String("error", widget.Error()))
		http.Error(w, widget.Error(), http.StatusServiceUnavailable)
		return
	}

	if warning := widget.Warning(); warning != "" {
		w.Header().Set("X-Chart-Warning", warning)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Chart-Id", widget.ChartID())
	if err := surface.WritePNG(w); err != nil {
		s.logger.Error("Failed to encode chart", zap.Error(err))
	}
}

func clampSide(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		v = fallback
	}
	return min(max(v, minChartSide), maxChartSide)
}

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/canvas"
	"github.com/vitos/coin_wallet/internal/usecase"
	"go.uber.org/zap"
)

const (
	sessionReadLimit    = 4096
	sessionWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// sessionMessage is one client action on a view session.
type sessionMessage struct {
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
	Period string `json:"period,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	X      int    `json:"x,omitempty"`
}

// viewSession holds the per-view state of one connected page: the search and
// overlay stores of the home view and the chart widget of the trade view.
type viewSession struct {
	id      string
	view    ViewName
	conn    *websocket.Conn
	search  *usecase.SearchStore
	overlay *usecase.OverlayStore
	widget  *usecase.ChartWidget
	logger  *zap.Logger

	mu      sync.Mutex
	surface *canvas.Canvas
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view := ViewName(r.URL.Query().Get("view"))
	if view == "" {
		view = ViewHome
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Session upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := s.newSession(conn, view)
	sess.logger.Info("View session opened")
	defer sess.logger.Info("View session closed")
	if sess.widget != nil {
		defer sess.widget.Unmount()
	}

	sess.run(r.Context())
}

func (s *Server) newSession(conn *websocket.Conn, view ViewName) *viewSession {
	sess := &viewSession{
		id:      conn.RemoteAddr().String(),
		view:    view,
		conn:    conn,
		search:  usecase.NewSearchStore(s.catalog),
		overlay: usecase.NewOverlayStore(),
	}
	sess.logger = s.logger.With(zap.String("session", sess.id), zap.String("view", string(view)))
	if view == ViewTrade {
		sess.widget = s.newWidget(sess.locateSurface)
	}
	return sess
}

func (v *viewSession) currentSurface() *canvas.Canvas {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.surface
}

// locateSurface reports the canvas laid out by the last layout action.
func (v *viewSession) locateSurface() (domain.Surface, bool) {
	surface := v.currentSurface()
	if surface == nil {
		return nil, false
	}
	return surface, true
}

func (v *viewSession) setSurface(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width <= 0 || height <= 0 {
		v.surface = nil
		return
	}
	v.surface = canvas.New(min(width, maxChartSide), min(height, maxChartSide))
}

// run reads actions until the client goes away. Actions are handled one at a
// time so drawing and encoding never overlap on the session canvas.
func (v *viewSession) run(ctx context.Context) {
	v.conn.SetReadLimit(sessionReadLimit)

	for {
		_, data, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.logger.Warn("Session read error", zap.Error(err))
			}
			return
		}

		var msg sessionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			v.sendError("malformed message")
			continue
		}
		if err := v.handle(ctx, msg); err != nil {
			if errors.Is(err, errUnknownAction) || errors.Is(err, errNoChart) {
				v.sendError(err.Error() + ": " + msg.Action)
				continue
			}
			v.logger.Warn("Session write failed", zap.Error(err))
			return
		}
	}
}

var (
	errUnknownAction = errors.New("unknown action")
	errNoChart       = errors.New("view has no chart")
)

func (v *viewSession) handle(ctx context.Context, msg sessionMessage) error {
	switch msg.Action {
	case "layout", "mount", "period", "hover", "unmount":
		if v.widget == nil {
			return errNoChart
		}
	}

	switch msg.Action {
	case "search":
		v.search.Search(msg.Query)
		return v.sendSearch()
	case "reset":
		v.search.Reset()
		return v.sendSearch()
	case "overlay_open":
		v.overlay.Open()
		return v.sendOverlay()
	case "overlay_close":
		v.overlay.Close()
		return v.sendOverlay()
	case "layout":
		v.setSurface(msg.Width, msg.Height)
		v.widget.Relayout(ctx)
		return v.sendChart()
	case "mount":
		v.widget.Mount(ctx, domain.ParsePeriod(msg.Period))
		return v.sendChart()
	case "period":
		v.widget.SetPeriod(ctx, domain.ParsePeriod(msg.Period))
		return v.sendChart()
	case "hover":
		tip, ok := v.widget.Tooltip(msg.X)
		frame := map[string]any{"type": "tooltip", "ok": ok}
		if ok {
			frame["tooltip"] = tip
		}
		return v.writeJSON(frame)
	case "unmount":
		v.widget.Unmount()
		return v.sendChart()
	default:
		return errUnknownAction
	}
}

func (v *viewSession) sendSearch() error {
	return v.writeJSON(map[string]any{
		"type":    "search",
		"results": v.search.Results(),
	})
}

func (v *viewSession) sendOverlay() error {
	return v.writeJSON(map[string]any{
		"type": "overlay",
		"open": v.overlay.IsOpen(),
	})
}

// sendChart reports the widget state and, once rendered, the canvas as a
// binary PNG frame.
func (v *viewSession) sendChart() error {
	state := v.widget.State()
	frame := map[string]any{
		"type":    "chart",
		"state":   string(state),
		"chartId": v.widget.ChartID(),
	}
	if warning := v.widget.Warning(); warning != "" {
		frame["warning"] = warning
	}
	if msg := v.widget.Error(); msg != "" {
		frame["error"] = msg
	}
	if ds, ok := v.widget.Dataset(); ok {
		frame["period"] = string(ds.Period)
		frame["labels"] = ds.Labels
	}
	if err := v.writeJSON(frame); err != nil {
		return err
	}
	if state != usecase.StateRendered {
		return nil
	}

	surface := v.currentSurface()
	if surface == nil {
		return nil
	}
	img, err := surface.PNG()
	if err != nil {
		v.logger.Error("Failed to encode chart frame", zap.Error(err))
		return nil
	}
	return v.write(websocket.BinaryMessage, img)
}

func (v *viewSession) sendError(msg string) {
	if err := v.writeJSON(map[string]any{"type": "error", "error": msg}); err != nil {
		v.logger.Debug("Failed to send error frame", zap.Error(err))
	}
}

func (v *viewSession) writeJSON(frame map[string]any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return v.write(websocket.TextMessage, data)
}

func (v *viewSession) write(messageType int, data []byte) error {
	v.conn.SetWriteDeadline(time.Now().Add(sessionWriteTimeout))
	return v.conn.WriteMessage(messageType, data)
}

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/usecase"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"price": domain.FormatTooltip,
		"tick":  domain.FormatTick,
		"amount": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%+.2f%%", v)
		},
	}).ParseFS(templateFS, "templates/*.html"),
)

func (s *Server) render(w http.ResponseWriter, status int, view View) {
	var buf bytes.Buffer
	data := map[string]any{
		"Title": view.Title,
		"View":  string(view.Name),
		"Data":  view.Data,
	}
	if err := templates.ExecuteTemplate(&buf, view.Template, data); err != nil {
		s.logger.Error("Template error", zap.String("template", view.Template), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) totalBalance() float64 {
	total := 0.0
	for _, c := range s.catalog {
		total += c.BalanceValue()
	}
	return total
}

// homeView is the balance list with search and the overlay modal.
func (s *Server) homeView(r *http.Request, p RouteParams) (View, error) {
	search := usecase.NewSearchStore(s.catalog)
	overlay := usecase.NewOverlayStore()

	q := r.URL.Query()
	query := q.Get("q")
	search.Search(query)
	if q.Get("overlay") == "open" {
		overlay.Open()
	}

	return View{
		Template: "home.html",
		Title:    "Wallet",
		Data: map[string]any{
			"Coins":        search.All(),
			"Query":        query,
			"Searched":     q.Has("q"),
			"Results":      search.Results(),
			"OverlayOpen":  overlay.IsOpen(),
			"TotalBalance": s.totalBalance(),
		},
	}, nil
}

func (s *Server) operationListView(r *http.Request, p RouteParams) (View, error) {
	search := usecase.NewSearchStore(s.catalog)
	return View{
		Template: "operation.html",
		Title:    operationTitle(p.Operation),
		Data: map[string]any{
			"Operation": string(p.Operation),
			"Coins":     search.All(),
		},
	}, nil
}

func (s *Server) operationCoinView(r *http.Request, p RouteParams) (View, error) {
	search := usecase.NewSearchStore(s.catalog)
	coin, ok := search.FindByID(p.ID)
	if !ok {
		return View{}, fmt.Errorf("coin %q: %w", p.ID, domain.ErrCoinNotFound)
	}
	return View{
		Template: "coin.html",
		Title:    operationTitle(p.Operation) + " " + coin.Symbol,
		Data: map[string]any{
			"Operation": string(p.Operation),
			"Coin":      coin,
		},
	}, nil
}

func (s *Server) tradeView(r *http.Request, p RouteParams) (View, error) {
	period := domain.ParsePeriod(r.URL.Query().Get("period"))
	return View{
		Template: "trade.html",
		Title:    "Trade",
		Data: map[string]any{
			"Period":  string(period),
			"Periods": domain.Periods,
			"Dataset": s.series.Dataset(period),
			"Width":   s.chart.Width,
			"Height":  s.chart.Height,
		},
	}, nil
}

// ExchangeQuote is the indicative conversion shown on the exchange view.
type ExchangeQuote struct {
	From   domain.CoinRecord
	To     domain.CoinRecord
	Amount float64
	Result float64
	Rate   float64
}

func (s *Server) exchangeView(r *http.Request, p RouteParams) (View, error) {
	search := usecase.NewSearchStore(s.catalog)
	q := r.URL.Query()

	data := map[string]any{"Coins": search.All()}

	from, okFrom := search.FindByID(q.Get("from"))
	to, okTo := search.FindByID(q.Get("to"))
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if okFrom && okTo && err == nil && amount > 0 && to.Price > 0 {
		rate := from.Price / to.Price
		data["Quote"] = ExchangeQuote{
			From:   from,
			To:     to,
			Amount: amount,
			Rate:   rate,
			Result: amount * rate,
		}
	}

	return View{Template: "exchange.html", Title: "Exchange", Data: data}, nil
}

func operationTitle(op OperationType) string {
	switch op {
	case OperationWithdraw:
		return "Withdraw"
	default:
		return "Deposit"
	}
}

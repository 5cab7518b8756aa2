package web

import (
	"errors"
	"net/http"

	"github.com/vitos/coin_wallet/internal/domain"
	"go.uber.org/zap"
)

type ViewName string

const (
	ViewHome     ViewName = "home"
	ViewDeposit  ViewName = "deposit"
	ViewWithdraw ViewName = "withdraw"
	ViewTrade    ViewName = "trade"
	ViewExchange ViewName = "exchange"
)

type OperationType string

const (
	OperationDeposit  OperationType = "deposit"
	OperationWithdraw OperationType = "withdraw"
)

// RouteParams is what a route passes into its view factory.
type RouteParams struct {
	ID        string
	Operation OperationType
}

// View is a resolved page: the template to execute and its data.
type View struct {
	Name     ViewName
	Template string
	Title    string
	Data     any
}

type viewFactory func(s *Server, r *http.Request, p RouteParams) (View, error)

// Route maps a path pattern to a view factory. Operation is fixed per route;
// ID comes from the {id} segment when the pattern has one.
type Route struct {
	Pattern   string
	Name      ViewName
	Operation OperationType
	Factory   viewFactory
}

var shellRoutes = []Route{
	{Pattern: "/{$}", Name: ViewHome, Factory: (*Server).homeView},
	{Pattern: "/deposit", Name: ViewDeposit, Operation: OperationDeposit, Factory: (*Server).operationListView},
	{Pattern: "/deposit/{id}", Name: ViewDeposit, Operation: OperationDeposit, Factory: (*Server).operationCoinView},
	{Pattern: "/withdraw", Name: ViewWithdraw, Operation: OperationWithdraw, Factory: (*Server).operationListView},
	{Pattern: "/withdraw/{id}", Name: ViewWithdraw, Operation: OperationWithdraw, Factory: (*Server).operationCoinView},
	{Pattern: "/trade", Name: ViewTrade, Factory: (*Server).tradeView},
	{Pattern: "/exchange", Name: ViewExchange, Factory: (*Server).exchangeView},
}

func (s *Server) viewHandler(rt Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := RouteParams{
			ID:        r.PathValue("id"),
			Operation: rt.Operation,
		}

		view, err := rt.Factory(s, r, params)
		if errors.Is(err, domain.ErrCoinNotFound) {
			s.render(w, http.StatusNotFound, View{Template: "not_found.html", Title: "Not found", Data: params})
			return
		}
		if err != nil {
			s.logger.Error("View error", zap.String("view", string(rt.Name)), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.Name = rt.Name
		s.render(w, http.StatusOK, view)
	}
}

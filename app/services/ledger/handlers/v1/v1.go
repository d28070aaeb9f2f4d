// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/fraudledger/app/services/ledger/handlers/v1/public"
	"github.com/ardanlabs/fraudledger/foundation/events"
	"github.com/ardanlabs/fraudledger/foundation/ledger/analytics"
	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
	"github.com/ardanlabs/fraudledger/foundation/nameservice"
	"github.com/ardanlabs/fraudledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *zap.SugaredLogger
	State     *state.State
	Analytics *analytics.Analytics
	NS        *nameservice.NameService
	Predict   public.Predictor
	Strict    bool
	Evts      *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:       cfg.Log,
		State:     cfg.State,
		Analytics: cfg.Analytics,
		NS:        cfg.NS,
		Predict:   cfg.Predict,
		Strict:    cfg.Strict,
		Evts:      cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/stats", pbl.Stats)
	app.Handle(http.MethodGet, version, "/transactions", pbl.Transactions)
	app.Handle(http.MethodPost, version, "/transactions", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/transactions/:id", pbl.Transaction)
	app.Handle(http.MethodGet, version, "/actors", pbl.Actors)
	app.Handle(http.MethodGet, version, "/actors/:address", pbl.Actor)
	app.Handle(http.MethodPut, version, "/actors/:address", pbl.UpsertActor)
	app.Handle(http.MethodPatch, version, "/actors/:address", pbl.PatchActor)
	app.Handle(http.MethodGet, version, "/actors/:address/transactions", pbl.ActorTransactions)
	app.Handle(http.MethodGet, version, "/actors/:address/history", pbl.TrustHistory)
	app.Handle(http.MethodGet, version, "/trust-score", pbl.TrustScore)
	app.Handle(http.MethodGet, version, "/blocks", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/latest", pbl.LatestBlock)
	app.Handle(http.MethodGet, version, "/analytics/fraud-stats", pbl.FraudStats)
	app.Handle(http.MethodGet, version, "/analytics/trust-trend", pbl.TrustTrend)
}

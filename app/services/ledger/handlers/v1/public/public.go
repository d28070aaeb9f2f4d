// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/fraudledger/business/core/predict"
	"github.com/ardanlabs/fraudledger/business/web/errs"
	"github.com/ardanlabs/fraudledger/foundation/events"
	"github.com/ardanlabs/fraudledger/foundation/ledger/analytics"
	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
	"github.com/ardanlabs/fraudledger/foundation/nameservice"
	"github.com/ardanlabs/fraudledger/foundation/validate"
	"github.com/ardanlabs/fraudledger/foundation/web"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// recentBlocks is the number of blocks returned by the block listing.
const recentBlocks = 10

// Predictor represents the fraud prediction service.
type Predictor interface {
	Predict(ctx context.Context, amount decimal.Decimal) (predict.Verdict, error)
}

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	State     *state.State
	Analytics *analytics.Analytics
	NS        *nameservice.NameService
	Predict   Predictor
	Strict    bool
	WS        websocket.Upgrader
	Evts      *events.Events
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	h.Log.Infow("events", "traceid", v.TraceID, "status", "subscribed", "subscribers", h.Evts.Subscribers())

	defer func() {
		h.Evts.Release(v.TraceID)
		h.Log.Infow("events", "traceid", v.TraceID, "status", "released", "subscribers", h.Evts.Subscribers())
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Stats returns the dashboard statistics.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Analytics.DashboardStats(), http.StatusOK)
}

// SubmitTransaction scores and records a new transaction.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nt newTransaction
	if err := decode(r, &nt); err != nil {
		return err
	}

	sub, err := nt.toSubmitTx(h.Strict)
	if err != nil {
		return err
	}

	if h.Predict != nil {
		verdict, err := h.Predict.Predict(ctx, sub.Amount)
		switch {
		case err != nil:
			h.Log.Infow("predict", "traceid", v.TraceID, "status", "prediction unavailable", "ERROR", err)
		default:
			sub = verdict.Fold(sub)
		}
	}

	tx := h.State.SubmitTransaction(sub)

	h.Log.Infow("submit tran", "traceid", v.TraceID, "id", tx.ID, "score", tx.FraudScore.StringFixed(2), "status", tx.Status)

	return web.Respond(ctx, w, database.NewTransactionData(tx), http.StatusCreated)
}

// Transactions returns every transaction, newest first, optionally filtered
// by status.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var status database.Status

	if qs := r.URL.Query().Get("status"); qs != "" && qs != "all" {
		s, err := database.ParseStatus(qs)
		if err != nil {
			return errs.BadRequest(err)
		}
		status = s
	}

	return web.Respond(ctx, w, toTransactionData(h.State.QueryTransactions(status)), http.StatusOK)
}

// Transaction returns the transaction for the id.
func (h Handlers) Transaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	tx, err := h.State.QueryTransaction(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errs.NotFound("transaction %q not found", id)
		}
		return fmt.Errorf("query transaction[%s]: %w", id, err)
	}

	return web.Respond(ctx, w, database.NewTransactionData(tx), http.StatusOK)
}

// Actors returns every actor in creation order.
func (h Handlers) Actors(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	actors := h.State.RetrieveActors()

	data := make([]database.ActorData, len(actors))
	for i, actor := range actors {
		data[i] = h.actorData(actor)
	}

	return web.Respond(ctx, w, data, http.StatusOK)
}

// Actor returns the actor for the address.
func (h Handlers) Actor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	actor, err := h.State.QueryActor(address)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errs.NotFound("actor %q not found", address)
		}
		return fmt.Errorf("query actor[%s]: %w", address, err)
	}

	return web.Respond(ctx, w, h.actorData(actor), http.StatusOK)
}

// UpsertActor creates or updates the actor for the address.
func (h Handlers) UpsertActor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	var au actorUpdate
	if err := decode(r, &au); err != nil {
		return err
	}

	patch, err := au.toActorPatch()
	if err != nil {
		return err
	}

	actor := h.State.UpsertActor(address, patch)

	return web.Respond(ctx, w, h.actorData(actor), http.StatusOK)
}

// PatchActor updates an existing actor for the address.
func (h Handlers) PatchActor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	var au actorUpdate
	if err := decode(r, &au); err != nil {
		return err
	}

	patch, err := au.toActorPatch()
	if err != nil {
		return err
	}

	actor, err := h.State.PatchActor(address, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errs.NotFound("actor %q not found", address)
		}
		return fmt.Errorf("patch actor[%s]: %w", address, err)
	}

	return web.Respond(ctx, w, h.actorData(actor), http.StatusOK)
}

// ActorTransactions returns the transactions originated by the actor.
func (h Handlers) ActorTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	return web.Respond(ctx, w, toTransactionData(h.State.QueryTransactionsByActor(address)), http.StatusOK)
}

// TrustHistory returns the most recent trust history entries for the actor.
func (h Handlers) TrustHistory(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	limit, err := intQuery(r, "limit", database.HistoryLimit)
	if err != nil {
		return err
	}

	history := h.State.QueryTrustHistory(address, limit)

	data := make([]database.TrustEntryData, len(history))
	for i, e := range history {
		data[i] = database.NewTrustEntryData(e)
	}

	return web.Respond(ctx, w, data, http.StatusOK)
}

// TrustScore returns the actor for the address query value. When it is not
// given or not known the first actor is returned, and when there are no
// actors a default record is returned.
func (h Handlers) TrustScore(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	actor, ok := h.resolveActor(r.URL.Query().Get("address"))
	if !ok {
		return web.Respond(ctx, w, unknownActor, http.StatusOK)
	}

	return web.Respond(ctx, w, h.actorData(actor), http.StatusOK)
}

// Blocks returns the most recent blocks in ascending number order.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveBlocks()
	if len(blocks) > recentBlocks {
		blocks = blocks[len(blocks)-recentBlocks:]
	}

	data := make([]database.BlockData, len(blocks))
	for i, blk := range blocks {
		data[i] = database.NewBlockData(blk)
	}

	return web.Respond(ctx, w, data, http.StatusOK)
}

// LatestBlock returns the block with the highest number.
func (h Handlers) LatestBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, database.NewBlockData(h.State.RetrieveLatestBlock()), http.StatusOK)
}

// FraudStats returns the per day status counts.
func (h Handlers) FraudStats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	days, err := intQuery(r, "days", analytics.MaxDays)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, h.Analytics.FraudStatsByDay(days), http.StatusOK)
}

// TrustTrend returns the trust score series for the actor, resolved the
// same way as the trust score lookup.
func (h Handlers) TrustTrend(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	points, err := intQuery(r, "points", analytics.MaxTrendPoints)
	if err != nil {
		return err
	}

	actor, ok := h.resolveActor(r.URL.Query().Get("address"))
	if !ok {
		return web.Respond(ctx, w, []analytics.TrendPoint{}, http.StatusOK)
	}

	trend, err := h.Analytics.TrustTrend(actor.Address, points)
	if err != nil {
		return fmt.Errorf("trust trend[%s]: %w", actor.Address, err)
	}

	return web.Respond(ctx, w, trend, http.StatusOK)
}

// =============================================================================

func (h Handlers) actorData(actor database.Actor) database.ActorData {
	data := database.NewActorData(actor)
	if h.NS != nil {
		data.Name = h.NS.Lookup(actor.Address)
	}
	return data
}

func (h Handlers) resolveActor(address string) (database.Actor, bool) {
	if address != "" {
		if actor, err := h.State.QueryActor(address); err == nil {
			return actor, true
		}
	}

	actors := h.State.RetrieveActors()
	if len(actors) == 0 {
		return database.Actor{}, false
	}

	return actors[0], true
}

func toTransactionData(txs []database.Transaction) []database.TransactionData {
	data := make([]database.TransactionData, len(txs))
	for i, tx := range txs {
		data[i] = database.NewTransactionData(tx)
	}
	return data
}

// decode reads the request document. Malformed documents are reported to
// the client as bad requests.
func decode(r *http.Request, val any) error {
	if err := web.Decode(r, val); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
	}
	return nil
}

// intQuery returns the integer query value in [0, upper], or zero when the
// value is not present.
func intQuery(r *http.Request, key string, upper int) (int, error) {
	qs := r.URL.Query().Get(key)
	if qs == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(qs)
	if err != nil || n < 0 || n > upper {
		return 0, errs.BadRequest(fmt.Errorf("%s must be an integer between 0 and %d", key, upper))
	}

	return n, nil
}

package predict_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ardanlabs/fraudledger/business/core/predict"
	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": err.Error()})
			return
		}

		if req.Amount < 0 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "negative amount"})
			return
		}

		resp := map[string]any{
			"success":        true,
			"isFraudulent":   req.Amount > 1000,
			"predictionHash": "abc",
			"timestamp":      "1700000000",
		}

		switch req.Amount {
		case 7:
			resp["score"] = "-50"
		case 8:
			resp["score"] = "150"
		case 9:
			resp["score"] = "42.5"
		}

		json.NewEncoder(w).Encode(resp)
	}

	srv := httptest.NewServer(http.HandlerFunc(h))
	t.Cleanup(srv.Close)

	return srv
}

func TestPredict(t *testing.T) {
	srv := newServer(t)
	client := predict.New(srv.URL, time.Second)

	v, err := client.Predict(context.Background(), decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.True(t, v.Fraudulent)
	assert.Equal(t, "abc", v.Hash)

	v, err = client.Predict(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.False(t, v.Fraudulent)

	_, err = client.Predict(context.Background(), decimal.NewFromInt(-1))
	require.ErrorContains(t, err, "negative amount")
}

func TestPredictScoreHint(t *testing.T) {
	srv := newServer(t)
	client := predict.New(srv.URL, time.Second)

	v, err := client.Predict(context.Background(), decimal.NewFromInt(9))
	require.NoError(t, err)
	require.NotNil(t, v.ScoreHint)
	assert.Equal(t, "42.5", v.ScoreHint.String())

	for _, amount := range []int64{7, 8} {
		v, err := client.Predict(context.Background(), decimal.NewFromInt(amount))
		require.NoError(t, err)
		assert.Nil(t, v.ScoreHint, "amount %d", amount)

		sub := v.Fold(database.SubmitTx{Amount: decimal.NewFromInt(amount)})
		assert.Nil(t, sub.AssertedScore, "amount %d", amount)
	}
}

func TestPredictUnavailable(t *testing.T) {
	client := predict.New("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := client.Predict(context.Background(), decimal.NewFromInt(10))
	require.Error(t, err)
}

func TestFold(t *testing.T) {
	hint := decimal.NewFromInt(40)
	sub := database.SubmitTx{Originator: "0xA", Recipient: "0xB", Amount: decimal.NewFromInt(10)}

	got := predict.Verdict{Fraudulent: true, ScoreHint: &hint}.Fold(sub)
	assert.True(t, got.AssertedFraud)
	require.NotNil(t, got.AssertedScore)
	assert.True(t, got.AssertedScore.Equal(hint))
	assert.Nil(t, sub.AssertedScore)

	caller := decimal.NewFromInt(5)
	sub.AssertedScore = &caller
	sub.AssertedFraud = true
	got = predict.Verdict{Fraudulent: false, ScoreHint: &hint}.Fold(sub)
	assert.True(t, got.AssertedFraud)
	assert.True(t, got.AssertedScore.Equal(caller))
}

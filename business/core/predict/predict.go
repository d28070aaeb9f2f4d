// Package predict is a client for the external fraud prediction service.
// The ledger scores transactions on rules alone; a verdict from this service
// is folded into the caller assertions when it is available.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/shopspring/decimal"
)

// Verdict is the prediction for a single transaction.
type Verdict struct {
	Success    bool             `json:"success"`
	Fraudulent bool             `json:"isFraudulent"`
	ScoreHint  *decimal.Decimal `json:"score,omitempty"`
	Hash       string           `json:"predictionHash"`
	Error      string           `json:"error,omitempty"`
}

// Fold merges the verdict into the submission. The verdict can only add a
// fraud assertion, and its score hint is used when the caller gave none.
func (v Verdict) Fold(sub database.SubmitTx) database.SubmitTx {
	if v.Fraudulent {
		sub.AssertedFraud = true
	}

	if sub.AssertedScore == nil && v.ScoreHint != nil {
		hint := *v.ScoreHint
		sub.AssertedScore = &hint
	}

	return sub
}

// =============================================================================

// Client calls the prediction service.
type Client struct {
	url    string
	client *http.Client
}

// New constructs a client for the service at the url.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Predict asks the service for a verdict on the amount.
func (c *Client) Predict(ctx context.Context, amount decimal.Decimal) (Verdict, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{
		Amount: amount.InexactFloat64(),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Verdict{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/predict", bytes.NewReader(data))
	if err != nil {
		return Verdict{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var v Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return Verdict{}, fmt.Errorf("decode response: status[%d]: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !v.Success {
		msg := v.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Verdict{}, errors.New("prediction failed: " + msg)
	}

	// A score hint outside the score range is not trusted.
	if v.ScoreHint != nil && (v.ScoreHint.LessThan(scoring.MinScore) || v.ScoreHint.GreaterThan(scoring.MaxScore)) {
		v.ScoreHint = nil
	}

	return v, nil
}

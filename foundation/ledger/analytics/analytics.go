// Package analytics derives dashboard aggregates and time bucketed series
// from a snapshot of the ledger. It holds no state of its own.
package analytics

import (
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/shopspring/decimal"
)

// Defaults used by the series queries.
const (
	ActiveAlertWindow  = time.Hour
	DefaultDays        = 7
	DefaultTrendPoints = 20
)

// Upper bounds for the series queries. Larger requests are cut down to these.
const (
	MaxDays        = 366
	MaxTrendPoints = 366
)

// Labels used for the series.
const (
	dayLabel  = "Jan 02"
	timeLabel = "15:04"
)

// Ledger represents the read behavior required from the ledger store.
type Ledger interface {
	Snapshot() database.Snapshot
	QueryActor(address string) (database.Actor, error)
	QueryTrustHistory(address string, limit int) []database.TrustEntry
}

// Config represents the configuration for the analytics reader.
type Config struct {
	Ledger   Ledger
	Now      func() time.Time
	Location *time.Location
}

// Analytics answers aggregate queries against the ledger.
type Analytics struct {
	ledger Ledger
	now    func() time.Time
	loc    *time.Location
}

// New constructs an analytics reader for the ledger.
func New(cfg Config) *Analytics {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Analytics{
		ledger: cfg.Ledger,
		now:    now,
		loc:    loc,
	}
}

// =============================================================================

// DashboardStats represents the headline numbers for the dashboard.
type DashboardStats struct {
	TotalTransactions int     `json:"totalTransactions"`
	FlaggedCases      int     `json:"flaggedCases"`
	AverageTrustScore float64 `json:"averageTrustScore"`
	ActiveAlerts      int     `json:"activeAlerts"`
}

// DashboardStats computes the stats from one snapshot of the ledger. Active
// alerts are flagged transactions accepted within the last hour.
func (a *Analytics) DashboardStats() DashboardStats {
	snap := a.ledger.Snapshot()
	now := a.now()

	var stats DashboardStats
	stats.TotalTransactions = len(snap.Transactions)

	for _, tx := range snap.Transactions {
		if tx.Status != database.StatusFlagged {
			continue
		}
		stats.FlaggedCases++

		if now.Sub(tx.TimeStamp) < ActiveAlertWindow {
			stats.ActiveAlerts++
		}
	}

	avg := database.DefaultTrust
	if n := len(snap.Actors); n > 0 {
		sum := decimal.Zero
		for _, actor := range snap.Actors {
			sum = sum.Add(actor.TrustScore)
		}
		avg = sum.Div(decimal.NewFromInt(int64(n)))
	}
	stats.AverageTrustScore = avg.Round(2).InexactFloat64()

	return stats
}

// DayStats counts the transactions per status for one calendar day.
type DayStats struct {
	Date     string `json:"date"`
	Verified int    `json:"verified"`
	Flagged  int    `json:"flagged"`
	Pending  int    `json:"pending"`
}

// FraudStatsByDay buckets transactions by status for each of the last days
// ending today, oldest day first. Days without transactions are included.
func (a *Analytics) FraudStatsByDay(days int) []DayStats {
	switch {
	case days <= 0:
		days = DefaultDays
	case days > MaxDays:
		days = MaxDays
	}

	today := a.now().In(a.loc)

	stats := make([]DayStats, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-(days-1))
		stats[i].Date = day.Format(dayLabel)
		index[day.Format(time.DateOnly)] = i
	}

	for _, tx := range a.ledger.Snapshot().Transactions {
		i, exists := index[tx.TimeStamp.In(a.loc).Format(time.DateOnly)]
		if !exists {
			continue
		}

		switch tx.Status {
		case database.StatusVerified:
			stats[i].Verified++
		case database.StatusFlagged:
			stats[i].Flagged++
		case database.StatusPending:
			stats[i].Pending++
		}
	}

	return stats
}

// TrendPoint is one point of an actor's trust score series.
type TrendPoint struct {
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
}

// TrustTrend returns the most recent trust history of the actor. An actor
// without history gets a flat series at the current score, one point per
// day ending today, so the dashboard has something to draw.
func (a *Analytics) TrustTrend(address string, points int) ([]TrendPoint, error) {
	switch {
	case points <= 0:
		points = DefaultTrendPoints
	case points > MaxTrendPoints:
		points = MaxTrendPoints
	}

	actor, err := a.ledger.QueryActor(address)
	if err != nil {
		return nil, err
	}

	history := a.ledger.QueryTrustHistory(address, points)
	if len(history) > 0 {
		trend := make([]TrendPoint, len(history))
		for i, e := range history {
			trend[i] = TrendPoint{
				Timestamp: e.TimeStamp.In(a.loc).Format(timeLabel),
				Score:     e.Score.InexactFloat64(),
			}
		}
		return trend, nil
	}

	today := a.now().In(a.loc)
	score := actor.TrustScore.InexactFloat64()

	trend := make([]TrendPoint, points)
	for i := 0; i < points; i++ {
		trend[i] = TrendPoint{
			Timestamp: today.AddDate(0, 0, i-(points-1)).Format(dayLabel),
			Score:     score,
		}
	}

	return trend, nil
}

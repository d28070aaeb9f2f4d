package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ardanlabs/fraudledger/foundation/ledger/analytics"
	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	statusFilter string
	address      string
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List transactions, newest first",
	RunE:  transactionsRun,
}

var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "List actors and their trust scores",
	RunE:  actorsRun,
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List the most recent blocks",
	RunE:  blocksRun,
}

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Show the trust score for an actor",
	RunE:  trustRun,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard statistics",
	RunE:  statsRun,
}

func init() {
	rootCmd.AddCommand(transactionsCmd, actorsCmd, blocksCmd, trustCmd, statsCmd)
	transactionsCmd.Flags().StringVarP(&statusFilter, "status", "s", "all", "Filter by status: all, pending, verified, flagged.")
	trustCmd.Flags().StringVar(&address, "address", "", "Address of the actor, defaults to the key's actor.")
}

func transactionsRun(cmd *cobra.Command, args []string) error {
	var txs []database.TransactionData
	if err := get("/v1/transactions?status="+url.QueryEscape(statusFilter), &txs); err != nil {
		return err
	}

	data := pterm.TableData{{"ID", "Originator", "Recipient", "Amount", "Score", "Status", "Time"}}
	for _, tx := range txs {
		data = append(data, []string{tx.ID, tx.Originator, tx.Recipient, tx.Amount, tx.FraudScore, string(tx.Status), tx.TimeStamp.Format("2006-01-02 15:04:05")})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func actorsRun(cmd *cobra.Command, args []string) error {
	var actors []database.ActorData
	if err := get("/v1/actors", &actors); err != nil {
		return err
	}

	data := pterm.TableData{{"Address", "Name", "Trust", "Transactions", "Flagged"}}
	for _, a := range actors {
		data = append(data, []string{a.Address, a.Name, a.TrustScore, strconv.Itoa(a.TransactionCount), strconv.Itoa(a.FlaggedCount)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func blocksRun(cmd *cobra.Command, args []string) error {
	var blocks []database.BlockData
	if err := get("/v1/blocks", &blocks); err != nil {
		return err
	}

	data := pterm.TableData{{"Number", "Hash", "Previous", "Transactions", "Time"}}
	for _, b := range blocks {
		data = append(data, []string{strconv.FormatUint(b.Number, 10), b.Hash, b.PrevBlockHash, strconv.Itoa(b.TransactionCount), b.TimeStamp.Format("2006-01-02 15:04:05")})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func trustRun(cmd *cobra.Command, args []string) error {
	addr := address
	if addr == "" {
		a, err := loadAddress()
		if err != nil {
			return err
		}
		addr = a
	}

	var actor database.ActorData
	if err := get("/v1/trust-score?address="+url.QueryEscape(addr), &actor); err != nil {
		return err
	}

	if actor.Address != addr {
		pterm.Warning.Printfln("%s is not known, showing %s", addr, actor.Address)
	}

	pterm.Info.Printfln("%s trust %s (%d transactions, %d flagged)", actor.Address, actor.TrustScore, actor.TransactionCount, actor.FlaggedCount)
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	var stats analytics.DashboardStats
	if err := get("/v1/stats", &stats); err != nil {
		return err
	}

	data := pterm.TableData{
		{"Total", "Flagged", "Average Trust", "Active Alerts"},
		{strconv.Itoa(stats.TotalTransactions), strconv.Itoa(stats.FlaggedCases), fmt.Sprintf("%.2f", stats.AverageTrustScore), strconv.Itoa(stats.ActiveAlerts)},
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

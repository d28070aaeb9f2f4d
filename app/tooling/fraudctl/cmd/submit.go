package cmd

import (
	"net/http"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	to          string
	amount      string
	description string
	score       string
	fraudulent  bool
	status      string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a transaction from the key's actor",
	RunE:  submitRun,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the recipient.")
	submitCmd.Flags().StringVarP(&amount, "amount", "v", "", "Amount to send.")
	submitCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the transaction.")
	submitCmd.Flags().StringVar(&score, "score", "", "Asserted fraud score.")
	submitCmd.Flags().BoolVar(&fraudulent, "fraud", false, "Assert the transaction is fraudulent.")
	submitCmd.Flags().StringVar(&status, "status", "", "Requested status when not flagged.")
	submitCmd.MarkFlagRequired("to")
	submitCmd.MarkFlagRequired("amount")
}

func submitRun(cmd *cobra.Command, args []string) error {
	from, err := loadAddress()
	if err != nil {
		return err
	}

	doc := struct {
		Originator   string  `json:"originator"`
		Recipient    string  `json:"recipient"`
		Amount       string  `json:"amount"`
		FraudScore   *string `json:"fraudScore,omitempty"`
		IsFraudulent bool    `json:"isFraudulent"`
		Status       string  `json:"status,omitempty"`
		Description  string  `json:"description,omitempty"`
	}{
		Originator:   from,
		Recipient:    to,
		Amount:       amount,
		IsFraudulent: fraudulent,
		Status:       status,
		Description:  description,
	}
	if score != "" {
		doc.FraudScore = &score
	}

	var tx database.TransactionData
	if err := send(http.MethodPost, "/v1/transactions", doc, &tx); err != nil {
		return err
	}

	printer := pterm.Success
	if tx.Fraudulent {
		printer = pterm.Warning
	}
	printer.Printfln("%s: score %s status %s hash %s", tx.ID, tx.FraudScore, tx.Status, tx.Hash)

	return nil
}

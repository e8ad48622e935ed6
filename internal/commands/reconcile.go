package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/normalize"
	"github.com/bankfeed-dev/bankfeed/internal/recon"
)

func newReconcileCommand() *cobra.Command {
	var accountID string
	var ids []string
	var statementBalance string
	var statementDate string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Mark ledger transactions as reconciled against a statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			req := recon.Request{
				TransactionIDs: ids,
				AccountID:      accountID,
			}

			if statementBalance != "" {
				bal, err := decimal.NewFromString(statementBalance)
				if err != nil {
					return fmt.Errorf("parsing statement balance %q: %w", statementBalance, err)
				}
				req.StatementBalance = decimal.NewNullDecimal(bal)
			}
			if statementDate != "" {
				d, err := normalize.ParseDate(statementDate)
				if err != nil {
					return fmt.Errorf("parsing statement date: %w", err)
				}
				req.StatementDate = d
			}

			svc := recon.NewService(ws.store, ws.accounts)
			result, err := svc.Reconcile(req)
			if err != nil {
				return err
			}

			log.Info("reconciliation committed",
				"account", accountID,
				"reconciled", result.Reconciled,
				"selected_total", result.SelectedTotal.StringFixed(2))

			if result.Difference.Valid {
				if result.Balanced {
					fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d transactions; statement balances (difference %s)\n",
						result.Reconciled, result.Difference.Decimal.StringFixed(2))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d transactions; statement does NOT balance (difference %s)\n",
						result.Reconciled, result.Difference.Decimal.StringFixed(2))
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d transactions\n", result.Reconciled)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "bank account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "ledger transaction IDs to reconcile (required)")
	_ = cmd.MarkFlagRequired("ids")
	cmd.Flags().StringVar(&statementBalance, "statement-balance", "", "reported statement balance for the advisory check")
	cmd.Flags().StringVar(&statementDate, "statement-date", "", "statement date")

	return cmd
}

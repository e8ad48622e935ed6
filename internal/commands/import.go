package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/importer"
)

func newImportCommand() *cobra.Command {
	var accountID string
	var bankName string
	var categoryID string
	var skipDuplicates bool

	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Import a bank statement CSV into an account ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading statement: %w", err)
			}

			if !cmd.Flags().Changed("skip-duplicates") {
				skipDuplicates = ws.cfg.Import.SkipDuplicates
			}
			if categoryID == "" {
				categoryID = ws.cfg.Import.CategoryID
			}

			svc := importer.NewService(ws.store, ws.accounts)
			summary, err := svc.Import(importer.Request{
				Content:        string(data),
				AccountID:      accountID,
				BankName:       bankName,
				CategoryID:     categoryID,
				SkipDuplicates: skipDuplicates,
			})
			if err != nil {
				return err
			}

			log.Info("import complete",
				"bank", summary.Parse.BankName,
				"imported", summary.Imported,
				"duplicates", summary.Duplicates)
			for _, rowErr := range summary.Parse.Errors {
				log.Warn("skipped row", "error", rowErr)
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "target bank account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&bankName, "bank", "", "bank format override, skipping detection")
	cmd.Flags().StringVar(&categoryID, "category", "", "default category for all imported rows")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", true, "suppress rows already in the ledger")

	return cmd
}

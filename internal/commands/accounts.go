package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List configured bank accounts and their current balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBANK\tCURRENCY\tBALANCE")
			for _, acct := range ws.accounts.All() {
				balance, err := ws.accounts.CurrentBalance(acct.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Bank, acct.Currency, balance.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}

package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/caretrail/docnotary/config"
	"github.com/caretrail/docnotary/notary"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the notarizing account's address and balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, rt, err := setup(cmd.Context(), "balance-"+uuid.New().String())
		if err != nil {
			return err
		}
		defer rt.close()

		state, err := rt.service.AccountState(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("address: %s\n", state.Address)
		fmt.Printf("balance: %d\n", state.Balance)
		fmt.Printf("explorer: %s\n", rt.service.Explorer().AddressURL(state.Address))
		if state.Balance == 0 {
			fmt.Println("note: account is unfunded; notarization submissions will be rejected until it can cover the fee")
		}
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent notarization records",
	RunE: func(cmd *cobra.Command, args []string) error {
		// History reads only the local record store; no node connection
		// and no key material needed.
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		store, err := notary.NewStore(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.ListRecent(historyLimit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("no notarizations recorded yet")
			return nil
		}

		for _, rec := range recs {
			created := time.Unix(rec.CreatedAtUnix, 0).UTC().Format(time.RFC3339)
			fmt.Printf("%s  %-10s  round %-8d  %s  %s\n",
				created, rec.Status, rec.ConfirmedRound, rec.DocumentID, rec.TxID)
			if rec.LastError != "" {
				fmt.Printf("    error: %s\n", rec.LastError)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum records to list")

	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(historyCmd)
}

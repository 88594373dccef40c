package main

import (
	"github.com/spf13/cobra"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing operations",
}

var billingRunCycleCmd = &cobra.Command{
	Use:   "run-cycle",
	Short: "Close every subscription period that has ended",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		summary, err := rt.services.Admin().RunBillingCycle(cmd.Context(), nil)
		if err != nil {
			return err
		}
		cmd.Printf("processed=%d activated=%d renewed=%d canceled=%d invoices=%d failed=%d\n",
			summary.Processed, summary.Activated, summary.Renewed,
			summary.Canceled, summary.Invoices, summary.Failed)
		return nil
	},
}

func init() {
	billingCmd.AddCommand(billingRunCycleCmd)
	rootCmd.AddCommand(billingCmd)
}

package cli

import (
	"context"
	"fmt"

	"github.com/hfletcher/jobsite/pkg/client"
	"github.com/spf13/cobra"
)

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Subscription and entitlement commands",
	}

	cmd.AddCommand(newBillingInfoCmd())
	cmd.AddCommand(newBillingEntitlementCmd())

	return cmd
}

func newBillingInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the billing summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := apiClient.Billing().Info(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get billing info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(info)
			}

			fmt.Printf("Plan:         %s\n", info.PlanType)
			fmt.Printf("Subscription: %s\n", activeLabel(info.SubscriptionActive))
			fmt.Printf("Setup paid:   %v\n", info.SetupPaid)
			printEntitlement(info.Entitlement)
			return nil
		},
	}
}

func newBillingEntitlementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entitlement",
		Short: "Show the derived access state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ent, err := apiClient.Billing().Entitlement(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get entitlement: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(ent)
			}

			printEntitlement(*ent)
			return nil
		},
	}
}

func printEntitlement(ent client.Entitlement) {
	fmt.Printf("Access:       %s\n", activeLabel(ent.CanAccessApp))
	if ent.TrialActive {
		fmt.Printf("Trial:        active, %d day(s) remaining\n", ent.TrialDaysRemaining)
	} else {
		fmt.Printf("Trial:        ended\n")
	}
	fmt.Printf("Pro features: %v\n", ent.IsPro)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hfletcher/jobsite/pkg/client"
	"github.com/spf13/cobra"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(newClientListCmd())
	cmd.AddCommand(newClientGetCmd())

	return cmd
}

func newClientListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			res, err := apiClient.Clients().List(ctx, &client.ListOptions{
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}

			t := NewTable("ID", "NAME", "EMAIL", "PHONE")
			for _, c := range res.Data {
				t.AddRow(strconv.FormatInt(c.ID, 10), truncate(c.Name, 30), c.Email, c.Phone)
			}
			t.Render()
			fmt.Printf("\nPage %d of %d (%d clients)\n", res.Page, res.TotalPages, res.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func newClientGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid client id: %s", args[0])
			}

			c, err := apiClient.Clients().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(c)
			}

			fmt.Printf("ID:      %d\n", c.ID)
			fmt.Printf("Name:    %s\n", c.Name)
			if c.Email != "" {
				fmt.Printf("Email:   %s\n", c.Email)
			}
			if c.Phone != "" {
				fmt.Printf("Phone:   %s\n", c.Phone)
			}
			if c.Address != "" {
				fmt.Printf("Address: %s\n", c.Address)
			}
			if c.Notes != "" {
				fmt.Printf("Notes:   %s\n", c.Notes)
			}
			return nil
		},
	}
}

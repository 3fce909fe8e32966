package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hfletcher/jobsite/pkg/client"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectGetCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var page, pageSize int
	var clientID int64
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.ProjectListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
			}
			if clientID > 0 {
				opts.ClientID = &clientID
			}
			if status != "" {
				opts.Status = &status
			}

			res, err := apiClient.Projects().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}

			t := NewTable("ID", "NAME", "STATUS", "CLIENT", "ADDRESS")
			for _, p := range res.Data {
				t.AddRow(
					strconv.FormatInt(p.ID, 10),
					truncate(p.Name, 30),
					p.Status,
					strconv.FormatInt(p.ClientID, 10),
					truncate(p.Address, 30),
				)
			}
			t.Render()
			fmt.Printf("\nPage %d of %d (%d projects)\n", res.Page, res.TotalPages, res.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")
	cmd.Flags().Int64Var(&clientID, "client", 0, "filter by client id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (planning, active, on_hold, done)")

	return cmd
}

func newProjectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id: %s", args[0])
			}

			p, err := apiClient.Projects().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(p)
			}

			fmt.Printf("ID:          %d\n", p.ID)
			fmt.Printf("Name:        %s\n", p.Name)
			fmt.Printf("Status:      %s\n", p.Status)
			fmt.Printf("Client:      %d\n", p.ClientID)
			if p.Address != "" {
				fmt.Printf("Address:     %s\n", p.Address)
			}
			if p.Description != "" {
				fmt.Printf("Description: %s\n", p.Description)
			}
			if p.StartDate != nil {
				fmt.Printf("Start:       %s\n", p.StartDate.Format("2006-01-02"))
			}
			if p.EndDate != nil {
				fmt.Printf("End:         %s\n", p.EndDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

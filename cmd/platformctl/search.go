package main

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"switchyard.app/platform/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Manage the contact search index",
}

var reindexConcurrency int

var searchReindexCmd = &cobra.Command{
	Use:   "reindex [org-id]",
	Short: "Push contacts to the search index, for one organization or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var orgIDs []int64
		if len(args) == 1 {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}
			orgIDs = []int64{orgID}
		}

		ctx := cmd.Context()
		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		if rt.cfg.Typesense.URL == "" {
			return errors.New("TYPESENSE_URL is not configured")
		}

		if orgIDs == nil {
			orgIDs, err = allOrganizationIDs(cmd, rt.services.Admin())
			if err != nil {
				return err
			}
		}

		contacts := rt.services.Contacts()
		var total atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(reindexConcurrency, 1))
		for _, orgID := range orgIDs {
			g.Go(func() error {
				n, err := contacts.Reindex(gctx, orgID)
				if err != nil {
					return err
				}
				total.Add(int64(n))
				slog.InfoContext(gctx, "organization reindexed", "organization_id", orgID, "contacts", n)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		cmd.Printf("reindexed %d contacts across %d organizations\n", total.Load(), len(orgIDs))
		return nil
	},
}

func init() {
	searchReindexCmd.Flags().IntVar(&reindexConcurrency, "concurrency", 4, "organizations indexed in parallel")
	searchCmd.AddCommand(searchReindexCmd)
	rootCmd.AddCommand(searchCmd)
}

func allOrganizationIDs(cmd *cobra.Command, admin service.AdminService) ([]int64, error) {
	const pageSize = 200

	var ids []int64
	for offset := 0; ; offset += pageSize {
		page, err := admin.ListOrganizations(cmd.Context(), service.OrganizationQuery{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, org := range page.Items {
			ids = append(ids, org.ID)
		}
		if !page.HasMore {
			return ids, nil
		}
	}
}

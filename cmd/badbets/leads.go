package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/database"
	"github.com/yourusername/bad-bets/internal/models"
	"github.com/yourusername/bad-bets/internal/repository"
	"github.com/yourusername/bad-bets/internal/service"
)

var (
	leadsLimit int
	leadsEmail string
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored alert subscriptions",
	Long: `Lists alert subscriptions, newest first, or looks one up by email.
Subscriptions only outlive the server with the postgres lead store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Leads.Store != config.LeadStorePostgres {
			return fmt.Errorf("lead store is %q: subscriptions are only kept with the %q store", cfg.Leads.Store, config.LeadStorePostgres)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repos, err := repository.NewRepositories(cfg.Leads.Store, db)
		if err != nil {
			return err
		}
		leads := service.NewLeadService(repos.Lead, nil)

		var found []*models.Lead
		if leadsEmail != "" {
			lead, err := leads.Lookup(ctx, leadsEmail)
			if err != nil {
				return fmt.Errorf("lead %s: %w", leadsEmail, err)
			}
			found = []*models.Lead{lead}
		} else if found, err = leads.Recent(ctx, leadsLimit); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), found)
		}
		return printLeads(cmd.OutOrStdout(), found)
	},
}

func printLeads(w io.Writer, leads []*models.Lead) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tEMAIL\tSOURCE\tSPORT")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.CreatedAt.Format(time.RFC3339), l.Email, l.Source, l.Sport)
	}
	return tw.Flush()
}

func init() {
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 20, "Show at most this many subscriptions (0 for all)")
	leadsCmd.Flags().StringVar(&leadsEmail, "email", "", "Look up a single subscription")
}

package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kalefullycode/roots-tech-news-sub000/cmd/feedctl/internal/output"
	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

func newFeedsCommand(a *app) *cobra.Command {
	var (
		jsonOutput bool
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:     "feeds",
		Aliases: []string{"ls"},
		Short:   "List registered feeds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			feeds, err := a.container.FeedRegistry.ListFeeds(cmd.Context())
			if err != nil {
				return err
			}
			if activeOnly {
				feeds = domain.ActiveFeeds(feeds)
			}

			if jsonOutput {
				enc := json.NewEncoder(a.printer.Out())
				enc.SetIndent("", "  ")
				return enc.Encode(feeds)
			}
			return printFeeds(a.printer, feeds)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active feeds")
	return cmd
}

func printFeeds(p *output.Printer, feeds []domain.FeedDescriptor) error {
	p.Header(fmt.Sprintf("Feeds (%d)", len(feeds)))

	table := output.NewTable(p.Out(), []string{"ID", "NAME", "CATEGORY", "PRIORITY", "EVERY", "STATUS", "URL"})
	for _, f := range feeds {
		table.AddRow([]string{
			f.ID,
			p.Bold(f.Name),
			string(f.Category),
			string(f.Priority),
			strconv.Itoa(f.UpdateFrequencyMinutes) + "m",
			p.Badge(f.Active),
			f.URL,
		})
	}
	return table.Render()
}

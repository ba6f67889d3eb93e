package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
)

func newCheckCommand(a *app) *cobra.Command {
	var show int

	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Fetch and parse a single feed",
		Long: `Check a feed URL the way the aggregator would: allowlist, fetch, parse.
Exits non-zero when any step fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.container.Allowlist.Check(args[0])
			if err != nil {
				a.printer.Error("rejected: %v", err)
				return err
			}
			a.printer.Success("allowed host %s", u.Hostname())

			fetched, err := a.container.FeedFetcher.FetchFeed(cmd.Context(), u.String())
			if err != nil {
				if f, ok := domain.AsFetchFailure(err); ok {
					a.printer.Error("fetch failed: %s", f.Label())
				}
				return err
			}
			a.printer.Success("fetched %d bytes (%s)", len(fetched.Body), fetched.ContentType)

			source := domain.FeedDescriptor{
				ID:       "check",
				Name:     u.Hostname(),
				URL:      u.String(),
				Category: domain.CategoryTech,
				Active:   true,
			}
			articles, err := a.container.FeedParser.Parse(fetched.Body, source)
			if err != nil {
				a.printer.Error("parse failed: %v", err)
				return err
			}
			a.printer.Success("parsed %d items", len(articles))

			n := min(max(show, 0), len(articles))
			for _, art := range articles[:n] {
				a.printer.Info("  %s  %s", art.PublishedAt.UTC().Format("2006-01-02"), truncate(art.Title, titleWidth))
			}
			if len(articles) == 0 {
				return fmt.Errorf("feed %s has no items", u.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&show, "show", 5, "number of items to print")
	return cmd
}

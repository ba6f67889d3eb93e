package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kalefullycode/roots-tech-news-sub000/cmd/feedctl/internal/output"
	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
)

const titleWidth = 72

func newAggregateCommand(a *app) *cobra.Command {
	var (
		category   string
		limit      int
		sortBy     string
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Run one aggregation and print the articles",
		Long: `Run the aggregation pipeline once. The result is written through the
configured caches, so this also warms them.

Examples:
  feedctl aggregate
  feedctl aggregate --category security --limit 10
  feedctl aggregate --refresh --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := domain.AggregateOptions{Limit: limit, ByRelevance: sortBy == "relevance"}
			if sortBy != "date" && sortBy != "relevance" {
				return fmt.Errorf("invalid --sort %q: must be date or relevance", sortBy)
			}
			if category != "" {
				c, ok := domain.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				opts.Category = c
			}

			var (
				res *domain.AggregateResult
				err error
			)
			if refresh {
				res, err = a.container.AggregateFeedsUsecase.Refresh(cmd.Context())
				if err == nil && (opts.Category != "" || opts.Limit > 0 || opts.ByRelevance) {
					res, err = a.container.AggregateFeedsUsecase.Execute(cmd.Context(), opts)
				}
			} else {
				res, err = a.container.AggregateFeedsUsecase.Execute(cmd.Context(), opts)
			}

			if err != nil {
				if errors.IsAllSourcesFailed(err) && res != nil {
					for _, e := range res.Errors {
						a.printer.Error("%s", e)
					}
				}
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(a.printer.Out())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printAggregate(a.printer, res)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category view (ai, tech, security, startups, research, products)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of articles")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "ordering: date or relevance")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the caches and rebuild")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func printAggregate(p *output.Printer, res *domain.AggregateResult) error {
	p.Header(fmt.Sprintf("Articles (%d)", res.Count))

	table := output.NewTable(p.Out(), []string{"PUBLISHED", "SOURCE", "CATEGORY", "TITLE"})
	for _, art := range res.Articles {
		table.AddRow([]string{
			art.PublishedAt.UTC().Format(time.DateTime),
			art.Source.Name,
			string(art.Category),
			truncate(art.Title, titleWidth),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, e := range res.Errors {
		p.Warning("%s", e)
	}

	cache := "miss"
	if res.Cached {
		cache = "hit"
	}
	p.Success("%d/%d sources ok, strategy %s, cache %s", res.SuccessfulSources, res.Sources, res.Strategy, cache)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

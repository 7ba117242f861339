package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"nyt_movies/internal/app"
	"nyt_movies/internal/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func listCmd() *cobra.Command {
	var (
		category string
		reviewer string
		pages    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print pages of reviews or critics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				t   *table.Table
				err error
			)
			switch category {
			case "reviews":
				t, err = reviewsTable(ctx, reviewer, pages)
			case "critics":
				t, err = criticsTable(ctx, pages)
			default:
				return fmt.Errorf("unknown category %q (want reviews or critics)", category)
			}
			if t != nil {
				fmt.Fprintln(cmd.OutOrStdout(), t.String())
			}
			if err != nil {
				return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "reviews", "reviews or critics")
	cmd.Flags().StringVar(&reviewer, "reviewer", "", "only reviews by this critic's display name")
	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to fetch")
	return cmd
}

// progress logs each reload as it lands.
var progress = app.RenderFunc(func(r app.Reload) {
	log.Info().Stringer("kind", r.Kind).Stringer("category", r.Category).Int("added", r.Added).Int("count", r.Count).Msg("page")
})

func reviewsTable(ctx context.Context, reviewer string, pages int) (*table.Table, error) {
	p := app.NewPager[domain.Review](app.CategoryReviews, func(ctx context.Context, q string, offset int) (domain.ReviewsPage, error) {
		return api.FetchReviews(ctx, domain.ReviewQuery{Query: q, Reviewer: reviewer, Offset: offset})
	})
	items, err := app.Collect(ctx, p, query, pages, progress)
	rows := make([][]string, 0, len(items))
	for i, r := range items {
		pick := ""
		if r.IsCriticsPick() {
			pick = "★"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), r.DisplayTitle, r.MPAARating, r.PublicationDate, r.Byline, pick})
	}
	return newTable([]string{"#", "Title", "Rating", "Published", "Critic", "Pick"}, rows), err
}

func criticsTable(ctx context.Context, pages int) (*table.Table, error) {
	p := app.NewPager[domain.Critic](app.CategoryCritics, func(ctx context.Context, q string, offset int) (domain.CriticsPage, error) {
		return api.FetchCritics(ctx, domain.CriticQuery{Query: q, Offset: offset})
	})
	items, err := app.Collect(ctx, p, query, pages, progress)
	rows := make([][]string, 0, len(items))
	for i, c := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.DisplayName, string(c.Status), c.SEOName})
	}
	return newTable([]string{"#", "Name", "Status", "SEO name"}, rows), err
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

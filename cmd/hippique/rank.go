package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/service"
)

func newRankCmd(a *app) *cobra.Command {
	var (
		date       string
		hippodrome string
		course     string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the runners of a race day by predictive score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
			}
			rankings, err := a.session.RankRaceDay(cmd.Context(), date, hippodrome, course)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rankings)
			}
			return printRankings(cmd.OutOrStdout(), rankings)
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "race day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hippodrome, "hippodrome", "", "hippodrome name, e.g. ParisLongchamp")
	cmd.Flags().StringVar(&course, "course", "", "only rank this course")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full score breakdown as JSON")
	_ = cmd.MarkFlagRequired("hippodrome")

	return cmd
}

func printRankings(out io.Writer, rankings []service.CourseRanking) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, r := range rankings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%dm)\n", r.Course, r.Context.DistanceMeters)
		fmt.Fprintln(w, "POS\tN°\tNAME\tSCORE\tHORSE\tJOCKEY\tTRAINER\tBREEDER\tOWNER\tCORDE\tODDS")
		for _, p := range r.Participants {
			b := p.Breakdown
			fmt.Fprintf(w, "%d\t%d\t%s\t%.2f\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Position, b.Number, b.HorseName, b.Total,
				rankLabel(b, models.CategoryHorse),
				rankLabel(b, models.CategoryJockey),
				rankLabel(b, models.CategoryTrainer),
				rankLabel(b, models.CategoryBreeder),
				rankLabel(b, models.CategoryOwner),
				cordeLabel(b.Corde),
				oddsLabel(p),
			)
		}
	}
	return w.Flush()
}

func rankLabel(b models.ScoreBreakdown, category models.Category) string {
	cs, ok := b.PerCategory[category]
	if !ok {
		return models.UnresolvedLabel
	}
	return cs.RankLabel()
}

func cordeLabel(adj *models.CordeAdjustment) string {
	if adj == nil || !adj.Parsed {
		return "-"
	}
	return fmt.Sprintf("%d (%+.2f)", adj.PostPosition, adj.Delta)
}

func oddsLabel(p models.RankedParticipant) string {
	s := strconv.FormatFloat(p.Odds, 'f', 1, 64)
	if p.OddsEstimated {
		return "~" + s
	}
	return s
}

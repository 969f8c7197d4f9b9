package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/hippique/internal/models"
)

type stakeFlags struct {
	odds         []string
	budget       float64
	max          float64
	strategy     string
	excludeLow   int
	excludeHigh  int
	sizes        []int
	compareSizes bool
	asJSON       bool
}

func newStakeCmd(a *app) *cobra.Command {
	f := &stakeFlags{}

	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Compute a stake plan for a set of runners and their odds",
		Example: `  hippique stake --odds "ALPHA=2.0" --odds "BRAVO=3,5" --budget 50 --strategy dutch
  hippique stake --odds A=2 --odds B=4 --odds C=7 --odds D=12 --strategy mid_range --exclude-low 1 --exclude-high 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a)
			if err != nil {
				return err
			}

			var plans []*models.StakePlan
			if f.compareSizes {
				plans, err = a.session.CompareSubsetSizes(req)
			} else {
				var plan *models.StakePlan
				plan, err = a.session.ComputeStakePlan(req)
				plans = []*models.StakePlan{plan}
			}
			if err != nil {
				return err
			}

			displays := make([]models.DisplayPlan, 0, len(plans))
			for _, p := range plans {
				displays = append(displays, p.Display())
			}
			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(displays)
			}
			return printPlans(cmd.OutOrStdout(), displays)
		},
	}

	cmd.Flags().StringArrayVar(&f.odds, "odds", nil, "runner and decimal odds as NAME=ODDS, repeatable")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "total budget (default from config)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "maximum stake per runner (default from config)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "dutch, ev or mid_range (default from config)")
	cmd.Flags().IntVar(&f.excludeLow, "exclude-low", 0, "mid_range: drop this many favourites")
	cmd.Flags().IntVar(&f.excludeHigh, "exclude-high", 0, "mid_range: drop this many outsiders")
	cmd.Flags().IntSliceVar(&f.sizes, "sizes", nil, "subset sizes to evaluate")
	cmd.Flags().BoolVar(&f.compareSizes, "compare-sizes", false, "print one plan per subset size")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print plans as JSON")
	_ = cmd.MarkFlagRequired("odds")

	return cmd
}

// request merges flags over the configured staking defaults.
func (f *stakeFlags) request(cmd *cobra.Command, a *app) (models.StakeRequest, error) {
	entries, err := parseOdds(f.odds)
	if err != nil {
		return models.StakeRequest{}, err
	}

	defaults := a.cfg.Staking
	req := models.StakeRequest{
		Entries:         entries,
		TotalBudget:     defaults.TotalBudget,
		MaxPerEntrant:   defaults.MaxPerEntrant,
		ExcludeLow:      defaults.ExcludeLow,
		ExcludeHigh:     defaults.ExcludeHigh,
		SubsetSizes:     defaults.SubsetSizes,
		IterationBudget: defaults.IterationBudget,
	}
	strategyName := defaults.Strategy

	flags := cmd.Flags()
	if flags.Changed("budget") {
		req.TotalBudget = f.budget
		if !flags.Changed("max") && req.MaxPerEntrant > req.TotalBudget {
			req.MaxPerEntrant = req.TotalBudget
		}
	}
	if flags.Changed("max") {
		req.MaxPerEntrant = f.max
	}
	if flags.Changed("strategy") {
		strategyName = f.strategy
	}
	if flags.Changed("exclude-low") {
		req.ExcludeLow = f.excludeLow
	}
	if flags.Changed("exclude-high") {
		req.ExcludeHigh = f.excludeHigh
	}
	if flags.Changed("sizes") {
		req.SubsetSizes = f.sizes
	}

	req.Strategy, err = models.ParseStrategy(strategyName)
	if err != nil {
		return models.StakeRequest{}, err
	}
	return req, nil
}

// parseOdds reads NAME=ODDS pairs. Odds accept a decimal comma.
func parseOdds(pairs []string) ([]models.BetEntry, error) {
	entries := make([]models.BetEntry, 0, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --odds %q, expected NAME=ODDS", pair)
		}
		odds, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(raw), ",", ".", 1))
		if err != nil {
			return nil, fmt.Errorf("invalid odds for %s: %q", name, raw)
		}
		entries = append(entries, models.BetEntry{HorseName: name, Odds: odds.InexactFloat64()})
	}
	return entries, nil
}

func printPlans(out io.Writer, plans []models.DisplayPlan) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, p := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Strategy: %s  runners: %d  total stake: %s\n", p.Strategy, len(p.Entries), p.TotalStake)
		if len(p.Entries) == 0 {
			fmt.Fprintln(w, "No profitable allocation found")
			continue
		}
		fmt.Fprintln(w, "RUNNER\tODDS\tSTAKE\tPAYOUT\tNET")
		for _, line := range p.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", line.HorseName, line.Odds, line.Stake, line.GrossPayout, line.NetGain)
		}
		fmt.Fprintf(w, "Net gain min %s / avg %s / max %s  profitable: %t\n", p.MinNetGain, p.AvgNetGain, p.MaxNetGain, p.Profitable)
		if p.CapReached {
			fmt.Fprintln(w, "Search stopped at the iteration budget; best plan found so far")
		}
	}
	return w.Flush()
}

// cmd/cardwise/recommend.go
package main

import (
	"cardwise/internal/domain"
	"cardwise/internal/recommend"
	val "cardwise/internal/validator"
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type recommendOptions struct {
	groceries, dining, travel, other float64
	limit                            int
	asJSON                           bool
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank cards for an annual spend profile",
		Example: "  cardwise recommend --groceries 120000 --dining 180000 --travel 600000 --other 300000\n" +
			"  cardwise recommend --limit 10",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, root, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.groceries, "groceries", 0, "Annual groceries spend")
	cmd.Flags().Float64Var(&opts.dining, "dining", 0, "Annual dining spend")
	cmd.Flags().Float64Var(&opts.travel, "travel", 0, "Annual travel spend")
	cmd.Flags().Float64Var(&opts.other, "other", 0, "Annual spend on everything else")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "Max results (default from RECOMMEND_LIMIT)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the raw result as JSON")
	return cmd
}

// profileFromFlags: не переданный флаг означает «не указано», а не 0
func profileFromFlags(cmd *cobra.Command, opts *recommendOptions) domain.SpendProfile {
	var p domain.SpendProfile
	if cmd.Flags().Changed("groceries") {
		p.Groceries = domain.Amount(opts.groceries)
	}
	if cmd.Flags().Changed("dining") {
		p.Dining = domain.Amount(opts.dining)
	}
	if cmd.Flags().Changed("travel") {
		p.Travel = domain.Amount(opts.travel)
	}
	if cmd.Flags().Changed("other") {
		p.Other = domain.Amount(opts.other)
	}
	return p
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	profile := profileFromFlags(cmd, opts)
	if err := val.Struct(profile); err != nil {
		return err
	}
	if opts.limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	deps, cfg, err := root.open(cmd)
	if err != nil {
		return err
	}
	defer deps.Close()

	res := recommend.NewService(deps.Catalog, cfg.RecommendLimit).Recommend(profile, opts.limit)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(res.Results) == 0 {
		fmt.Fprintln(out, "No cards in the catalog.")
		return nil
	}
	if !res.FiltersApplied {
		fmt.Fprintln(out, "No spend given: ranking by fees and benefits only.")
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tCard\tRewards\tFee\tWelcome\tRenewal\tYear 1\tYear 2+\t")
	for i, v := range res.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1, v.Name,
			inr(v.EstimatedRewards), inr(v.AnnualFee), inr(v.WelcomeBenefit),
			inr(v.RenewalBenefit), inr(v.NetValueYear1), inr(v.NetValueSubsequent))
	}
	return tw.Flush()
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/comparison"
	"github.com/yourusername/bad-bets/internal/models"
)

var calcCmd = &cobra.Command{
	Use:   "calc <kind> --field=value ...",
	Short: "Run a calculator",
	Long: `Runs one calculator. Fields are passed as --name=value, --name value or
name=value; a decimal comma is accepted. Kinds: badbet, value, kelly,
arbitrage, margin2, margin3.`,
	Example: `  badbets calc badbet --odds=1.15 --stake=100
  badbets calc kelly --bankroll 1000 --odds 2.10 --probability 55`,
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, inputs, asJSON, help, err := parseCalcArgs(args)
		if help {
			return cmd.Help()
		}
		if err != nil {
			return err
		}

		result, err := calculator.Compute(kind, inputs)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"kind":   result.Kind(),
				"fields": result.Fields(),
			})
		}
		printFields(cmd.OutOrStdout(), result.Fields())
		return nil
	},
}

// parseCalcArgs splits raw calc arguments into the calculator kind and its
// inputs.
func parseCalcArgs(args []string) (kind calculator.Kind, inputs calculator.Inputs, asJSON, help bool, err error) {
	inputs = calculator.Inputs{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			return "", nil, false, true, nil
		case "--json":
			asJSON = true
			continue
		}

		if !strings.HasPrefix(arg, "-") && !strings.Contains(arg, "=") {
			if kind != "" {
				return "", nil, false, false, fmt.Errorf("unexpected argument %q", arg)
			}
			kind = calculator.Kind(arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !hasValue {
			if i+1 >= len(args) {
				return "", nil, false, false, fmt.Errorf("missing value for %q", arg)
			}
			i++
			value = args[i]
		}
		if name == "" {
			return "", nil, false, false, fmt.Errorf("invalid argument %q", arg)
		}
		inputs[name] = value
	}

	if kind == "" {
		return "", nil, false, false, fmt.Errorf("calculator kind is required")
	}
	if _, ok := calculator.Lookup(kind); !ok {
		return "", nil, false, false, fmt.Errorf("%w: %q", calculator.ErrUnknownCalculator, kind)
	}
	return kind, inputs, asJSON, false, nil
}

func printFields(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, fields[k])
	}
	tw.Flush()
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the provider ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		providers := cat.Providers()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), providers)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tID\tNAME\tRATING\tBONUS")
		for _, p := range providers {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", p.Rank, p.ID, p.Name, p.Rating, p.Bonus.Description)
		}
		return tw.Flush()
	},
}

var linkTracking affiliate.Tracking

var linkCmd = &cobra.Command{
	Use:   "link <provider>",
	Short: "Print a tracked affiliate link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := linkBuilder().Link(args[0], linkTracking)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

var badBetsSport string

var badBetsCmd = &cobra.Command{
	Use:   "bad-bets",
	Short: "List the bad bets of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		bets := cat.BadBets(badBetsSport)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), bets)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMATCH\tBET\tODDS\tSEVERITY\tWINS NEEDED")
		for _, b := range bets {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%d\n", b.ID, b.Match, b.Bet, b.Odds, b.Severity, b.WinsNeeded)
		}
		return tw.Flush()
	},
}

var compareStake float64

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show the worst-odds comparisons",
	RunE: func(cmd *cobra.Command, args []string) error {
		comparisons, err := repriceComparisons(cat.Comparisons(), compareStake)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), comparisons)
		}
		out := cmd.OutOrStdout()
		for _, c := range comparisons {
			fmt.Fprintf(out, "%s: %s (Einsatz %.2f, Verlust %.2f)\n", c.Match, c.Bet, c.Stake, c.Loss)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, q := range c.Quotes {
				fmt.Fprintf(tw, "  %s\t%.2f\t%s\n", q.Provider, q.Odds, q.Rating)
			}
			tw.Flush()
		}
		return nil
	},
}

// repriceComparisons re-rates the comparisons at stake; stake <= 0 keeps
// each comparison's own stake.
func repriceComparisons(in []models.Comparison, stake float64) ([]models.Comparison, error) {
	if stake <= 0 {
		return in, nil
	}
	out := make([]models.Comparison, len(in))
	for i, c := range in {
		rated, err := comparison.Compare(stake, c.Quotes)
		if err != nil {
			return nil, fmt.Errorf("comparison %s: %w", c.ID, err)
		}
		c.Stake = stake
		c.Quotes = rated.Quotes
		c.Loss = rated.Loss
		out[i] = c
	}
	return out, nil
}

func init() {
	linkCmd.Flags().StringVar(&linkTracking.Source, "source", "", "Tracking source")
	linkCmd.Flags().StringVar(&linkTracking.Campaign, "campaign", "", "Tracking campaign")
	linkCmd.Flags().StringVar(&linkTracking.Medium, "medium", "", "Tracking medium")

	badBetsCmd.Flags().StringVar(&badBetsSport, "sport", "", "Only bad bets for this sport (\"all\" for every sport)")

	compareCmd.Flags().Float64Var(&compareStake, "stake", 0, "Reprice the comparisons at this stake")
}

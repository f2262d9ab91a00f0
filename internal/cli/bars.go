package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tierflow/pkg/chart"
	"github.com/matzehuels/tierflow/pkg/flow"
)

// barWidth is the width of the longest bar in terminal cells.
const barWidth = 40

type barsFlags struct {
	chartFlags
	json bool
}

// barsCommand creates the bars command.
func (c *CLI) barsCommand() *cobra.Command {
	var f barsFlags

	cmd := &cobra.Command{
		Use:   "bars <records>",
		Short: "Print the per-country bar chart",
		Long: `Count records per country and print the top countries as a bar chart.
With --focus only the focused country is shown.`,
		Example: `  tierflow bars athletes.csv --top-countries 5
  tierflow bars athletes.csv --focus USA --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBars(cmd, args[0], &f)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.json, "json", false, "print the bars as JSON")
	return cmd
}

func (c *CLI) runBars(cmd *cobra.Command, input string, f *barsFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := f.options(cmd, cfg)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	recs, err := loadRecords(cmd.Context(), input, f.inputFormat)
	if err != nil {
		return err
	}

	fo := opts.FlowOptions()
	bars := chart.CountryBars(recs, fo.Columns, fo.Fallbacks, fo.TopCountries, fo.Focus)
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bars)
	}
	printBars(bars, fo.Focus)
	return nil
}

// printBars draws one labeled bar per country, scaled to the largest count.
func printBars(bars []chart.Bar, focus flow.Focus) {
	if len(bars) == 0 {
		if focus.Active() {
			printWarning("No records for %s", focus.Country())
		} else {
			printInfo("No records")
		}
		return
	}

	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, len([]rune(b.Country)))
	}
	maxCount := chart.MaxCount(bars)
	style := StyleValue.Foreground(tierColors[flow.TierCountry])
	for _, b := range bars {
		label := fmt.Sprintf("%-*s", labelWidth, b.Country)
		if b.Focused {
			label = StyleFocus.Render(label)
		}
		fmt.Fprintf(out, "%s %s %s\n", label, renderBar(b.Count, maxCount, barWidth, style), StyleNumber.Render(fmt.Sprint(b.Count)))
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tierflow/pkg/chart"
)

type pointsFlags struct {
	x, y, label string
	inputFormat string
	limit       int
	json        bool
}

// pointsCommand creates the points command.
func (c *CLI) pointsCommand() *cobra.Command {
	var f pointsFlags

	cmd := &cobra.Command{
		Use:   "points <records>",
		Short: "Print (x, y) pairs of two numeric columns",
		Long: `Extract the scatter data of two numeric columns. Rows where either value
is blank or not a finite number are dropped.`,
		Example: `  tierflow points athletes.csv --x height --y weight --label name`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPoints(cmd, args[0], &f)
		},
	}

	cmd.Flags().StringVar(&f.x, "x", "height", "column for the x axis")
	cmd.Flags().StringVar(&f.y, "y", "weight", "column for the y axis")
	cmd.Flags().StringVar(&f.label, "label", "name", "column labeling each point (empty for none)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "csv", "record format when reading stdin: csv, json or jsonl")
	cmd.Flags().IntVar(&f.limit, "limit", 20, "maximum rows to print in the table (0 for all)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print all points as JSON")
	return cmd
}

func (c *CLI) runPoints(cmd *cobra.Command, input string, f *pointsFlags) error {
	recs, err := loadRecords(cmd.Context(), input, f.inputFormat)
	if err != nil {
		return err
	}
	pts := chart.Points(recs, f.x, f.y, f.label)

	if f.json {
		if pts == nil {
			pts = []chart.Point{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pts)
	}

	if len(pts) == 0 {
		printInfo("No numeric pairs in %s and %s", f.x, f.y)
		return nil
	}
	shown := pts
	if f.limit > 0 && len(shown) > f.limit {
		shown = shown[:f.limit]
	}
	printPoints(shown, f.x, f.y)
	if len(shown) < len(pts) {
		printDetail("%d of %d points shown", len(shown), len(pts))
	}
	return nil
}

func printPoints(pts []chart.Point, x, y string) {
	rows := make([][]string, len(pts))
	for i, p := range pts {
		rows[i] = []string{p.Label, formatFloat(p.X), formatFloat(p.Y)}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("label", x, y).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col > 0:
				return StyleNumber.Padding(0, 1).Align(lipgloss.Right)
			default:
				return StyleValue.Padding(0, 1)
			}
		})
	fmt.Fprintln(out, t.Render())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

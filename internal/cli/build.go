package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/pipeline"
)

type buildFlags struct {
	chartFlags
	formats     string
	output      string
	title       string
	showWeights bool
	noCache     bool
	refresh     bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build <records>",
		Short: "Build a flow graph from a record file",
		Long: `Build a country → discipline → gender flow graph from a CSV, JSON or
JSON Lines record file (or "-" for stdin) and write it in one or more formats.

Formats: json (nodes and links for Sankey renderers), dot, svg, png.`,
		Example: `  tierflow build athletes.csv
  tierflow build athletes.csv --focus USA --format json,svg -o usa
  tierflow build athletes.csv --variant events --top-disciplines 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], &f)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.formats, "format", pipeline.FormatJSON, "comma-separated output formats: json, dot, svg, png")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path without extension, or - for stdout (default: input name)")
	cmd.Flags().StringVar(&f.title, "title", "", "diagram title for dot, svg and png")
	cmd.Flags().BoolVar(&f.showWeights, "weights", false, "label links with their weight in dot, svg and png")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the build cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and rebuild")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input string, f *buildFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	opts := f.options(cmd, cfg)
	opts.Formats = pipeline.ParseFormats(f.formats)
	opts.Title = f.title
	opts.ShowWeights = f.showWeights
	opts.Refresh = f.refresh
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if f.output == stdinPath && len(opts.Formats) != 1 {
		return fmt.Errorf("-o - needs exactly one format, got %d", len(opts.Formats))
	}

	recs, err := loadRecords(ctx, input, f.inputFormat)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, cfg, f.noCache)
	defer runner.Close()

	var spinner *Spinner
	if f.output != stdinPath && needsGraphviz(opts.Formats) {
		spinner = newSpinnerWithContext(ctx, "Rendering with Graphviz...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, recs, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if f.output == stdinPath {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := outputBase(input, f.output)
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Built %s flow graph", opts.Variant)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.Crossings, result.CacheInfo.BuildHit)
	printKeyValue("records", fmt.Sprintf("%d read, %d kept, %d exploded", result.Stats.Records, result.Stats.Filtered, result.Stats.Exploded))
	if opts.Focus != "" {
		printKeyValue("focus", StyleFocus.Render(opts.Focus))
	} else {
		printKeyValue("countries", summarize(keys(result.Countries), 6))
	}
	printKeyValue("disciplines", summarize(keys(result.Categories), 6))
	for _, path := range written {
		printFile(path)
	}
	if input != stdinPath {
		printNextStep("Explore interactively", fmt.Sprintf("%s explore %s", appName, input))
	}
	return nil
}

// outputBase returns the output path without extension. By default it is
// the input file name without its extension, in the current directory.
func outputBase(input, output string) string {
	if output != "" {
		return output
	}
	if input == stdinPath {
		return appName
	}
	name := filepath.Base(input)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func needsGraphviz(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatSVG || f == pipeline.FormatPNG {
			return true
		}
	}
	return false
}

// summarize joins at most n items and counts the rest.
func summarize(items []string, n int) string {
	if len(items) == 0 {
		return StyleDim.Render("none")
	}
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s %s", strings.Join(items[:n], ", "), StyleDim.Render(fmt.Sprintf("+%d more", len(items)-n)))
}

func keys(kcs []flow.KeyCount) []string {
	out := make([]string, len(kcs))
	for i, kc := range kcs {
		out[i] = kc.Key
	}
	return out
}

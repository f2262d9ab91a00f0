package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tierflow/pkg/config"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/pipeline"
	"github.com/matzehuels/tierflow/pkg/records"
)

// stdinPath reads records from standard input.
const stdinPath = "-"

// loadRecords reads a record file, or stdin when path is "-". Stdin has no
// extension, so its format comes from inputFormat.
func loadRecords(ctx context.Context, path, inputFormat string) ([]flow.RawRecord, error) {
	prog := newProgress(loggerFromContext(ctx))
	var (
		recs []flow.RawRecord
		err  error
	)
	if path == stdinPath {
		recs, err = records.Read(os.Stdin, records.Format(inputFormat))
	} else {
		recs, err = records.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	prog.done("loaded records", "source", path, "count", len(recs))
	return recs, nil
}

// chartFlags are the flags shared by every command that builds a chart.
// Each one overrides the matching config value only when set.
type chartFlags struct {
	topCountries   int
	topDisciplines int
	focus          string
	variant        string
	splitQuoted    bool
	inputFormat    string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.topCountries, "top-countries", pipeline.DefaultTopCountries, "number of countries to keep when no focus is set")
	fl.IntVar(&f.topDisciplines, "top-disciplines", pipeline.DefaultTopCategories, "number of disciplines (or events) to keep")
	fl.StringVar(&f.focus, "focus", "", "restrict the chart to one country")
	fl.StringVar(&f.variant, "variant", pipeline.DefaultVariant, "chart variant: disciplines or events")
	fl.BoolVar(&f.splitQuoted, "split-quoted", false, "split \"['a', 'b']\" lists into separate labels")
	fl.StringVar(&f.inputFormat, "input-format", string(records.FormatCSV), "record format when reading stdin: csv, json or jsonl")

	_ = cmd.RegisterFlagCompletionFunc("variant", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, v := range flow.Variants() {
			names = append(names, v.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// options merges cfg with the flags the user set explicitly.
func (f *chartFlags) options(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	fl := cmd.Flags()
	if fl.Changed("top-countries") {
		opts.TopCountries = f.topCountries
	}
	if fl.Changed("top-disciplines") {
		opts.TopCategories = f.topDisciplines
	}
	if fl.Changed("focus") {
		opts.Focus = f.focus
	}
	if fl.Changed("variant") {
		opts.Variant = f.variant
	}
	if fl.Changed("split-quoted") {
		opts.SplitQuotedLists = f.splitQuoted
	}
	return opts
}

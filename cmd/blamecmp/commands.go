package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blamecmp/blamecmp/internal/compare"
	"github.com/blamecmp/blamecmp/internal/config"
	"github.com/blamecmp/blamecmp/internal/format"
	"github.com/blamecmp/blamecmp/internal/history"
	"github.com/blamecmp/blamecmp/internal/repo"
	"github.com/blamecmp/blamecmp/internal/report"
	"github.com/blamecmp/blamecmp/internal/runner"
)

var runCfg config.Config
var historyLimit int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compare two blame implementations over a repository",
	Long: `Run both blame executables against every tracked text file of the work
tree, compare the outputs line-for-line, and print a corpus report. Exits
non-zero when any file did not fully match.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCfg.ApplyEnv()
		if err := runCfg.Validate(); err != nil {
			return err
		}

		workTree, gitDir, err := repo.Resolve(runCfg.WorkTree)
		if err != nil {
			return err
		}

		refFmt, err := format.For(runCfg.Baseline)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		candFmt, err := format.For(runCfg.Comparison)
		if err != nil {
			return fmt.Errorf("comparison: %w", err)
		}

		files, err := repo.ListTextFiles(gitDir)
		if err != nil {
			return err
		}

		take := runCfg.Take
		if take <= 0 {
			take = len(files)
		}
		if !runCfg.JSON {
			fmt.Printf("%d files to run blame for, skip %d, take %d\n", len(files), runCfg.Skip, take)
			fmt.Println("comparing blames")
		}

		window := repo.Window(files, runCfg.Skip, runCfg.Take)

		run := &runner.Runner{
			WorkTree:  workTree,
			GitDir:    gitDir,
			ExtraArgs: runCfg.ExtraArgs,
			Timeout:   runCfg.Timeout,
		}

		results := compareAll(cmd.Context(), run, refFmt, candFmt, window)
		if !runCfg.JSON {
			fmt.Println()
		}

		summary := report.Summarize(results)

		if runCfg.JSON {
			data, err := report.JSON(results, summary)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			fmt.Print(report.Render(results, summary, runCfg.MaxDetail))
		}

		if !runCfg.NoHistory {
			rec := &history.Record{
				WorkTree:   workTree,
				Baseline:   runCfg.Baseline,
				Comparison: runCfg.Comparison,
				Summary:    *summary,
			}
			if err := history.Append(rec); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not record run: %s\n", err)
			}
		}

		if summary.NonMatchingFiles() > 0 {
			os.Exit(1)
		}
		return nil
	},
}

// compareAll compares every windowed file, dispatching across a bounded pool
// when --jobs asks for one. Results are stored by input index so reporting
// and aggregation always see enumeration order; each comparison is a pure
// function of its two captured outputs, so workers share nothing else.
func compareAll(ctx context.Context, run *runner.Runner, refFmt, candFmt *format.Format, files []string) []report.FileResult {
	results := make([]report.FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runCfg.Jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			outcome := compareOne(ctx, run, refFmt, candFmt, file)
			results[i] = report.FileResult{Path: file, Outcome: outcome}
			if !runCfg.JSON {
				if outcome.Matches() {
					fmt.Print(".")
				} else {
					fmt.Print("x")
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; failures become per-file outcomes

	return results
}

// compareOne captures both blame outputs for one file and classifies them.
// Invocation failures are terminal for the file only, never for the run.
func compareOne(ctx context.Context, run *runner.Runner, refFmt, candFmt *format.Format, file string) compare.Outcome {
	refOut, err := run.Blame(ctx, runCfg.Baseline, file)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "\n%s\n", err)
		}
		return compare.Outcome{Kind: compare.KindExecutionFailure}
	}

	candOut, err := run.Blame(ctx, runCfg.Comparison, file)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "\n%s\n", err)
		}
		return compare.Outcome{Kind: compare.KindExecutionFailure}
	}

	return compare.File(refOut, candOut, refFmt, candFmt)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List summaries of past comparison runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := history.List(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		for _, r := range records {
			line := fmt.Sprintf("%s  %s  %d files, %d matched",
				r.RanAt.Local().Format(time.DateTime), r.WorkTree,
				r.Summary.TotalFiles, r.Summary.MatchedFiles)
			if pct, ok := r.Summary.MatchPercent(); ok {
				line += fmt.Sprintf(", %.2f%% of lines matching", pct)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCfg.WorkTree, "git-work-tree", "", "path to the repository work tree")
	runCmd.Flags().StringVar(&runCfg.Baseline, "baseline-executable", "", "reference blame executable (name must end in \"git\")")
	runCmd.Flags().StringVar(&runCfg.Comparison, "comparison-executable", "", "candidate blame executable (name must end in \"gix\")")
	runCmd.Flags().StringVar(&runCfg.ExtraArgs, "args", "", "extra arguments passed to both blame invocations")
	runCmd.Flags().IntVar(&runCfg.Skip, "skip", 0, "skip the first N enumerated files")
	runCmd.Flags().IntVar(&runCfg.Take, "take", 0, "compare at most N files after the skip (0 = all)")
	runCmd.Flags().IntVar(&runCfg.Jobs, "jobs", 1, "number of files to compare concurrently")
	runCmd.Flags().DurationVar(&runCfg.Timeout, "timeout", 0, "per-invocation timeout (0 = wait forever)")
	runCmd.Flags().IntVar(&runCfg.MaxDetail, "max-detail", report.DefaultMaxDetail, "maximum number of disagreement rows in the report")
	runCmd.Flags().BoolVar(&runCfg.JSON, "json", false, "emit the report as JSON")
	runCmd.Flags().BoolVar(&runCfg.NoHistory, "no-history", false, "do not record this run in the history ledger")
	rootCmd.AddCommand(runCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for blamecmp.

Bash:
  $ source <(blamecmp completion bash)

Zsh:
  $ blamecmp completion zsh > "${fpath[1]}/_blamecmp"

Fish:
  $ blamecmp completion fish | source

PowerShell:
  PS> blamecmp completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	rootCmd.AddCommand(completionCmd)
}

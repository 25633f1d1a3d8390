package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/diag"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/gitctx"
	"github.com/dshills/redline/internal/output"
	"github.com/dshills/redline/internal/pathfilter"
	"github.com/dshills/redline/internal/review"
)

var (
	flagFormat  string
	flagOut     string
	flagChanged bool
	flagFailOn  string
)

var reviewCmd = &cobra.Command{
	Use:   "review [file...]",
	Short: "Review documents now",
	Long: "Reviews the given text documents immediately, bypassing the cooldown, and " +
		"prints the diagnostics. With --changed, reviews the files that differ from " +
		"HEAD instead of an explicit list.",
	Args: cobra.ArbitraryArgs,
	RunE: runReviewCmd,
}

func init() {
	addReviewFlags(reviewCmd)
	reviewCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json, sarif, markdown")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Write the report to a file instead of stdout")
	reviewCmd.Flags().BoolVar(&flagChanged, "changed", false, "Review files changed since HEAD")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "ERROR", "Lowest severity that fails the run: ERROR, WARNING, INFO, HINT")
}

// parseFailOn validates the --fail-on value against the known severities.
func parseFailOn(v string) (review.Severity, error) {
	sev := review.ParseSeverity(v)
	if string(sev) != strings.ToUpper(strings.TrimSpace(v)) {
		return "", fmt.Errorf("invalid --fail-on severity: %s", v)
	}
	return sev, nil
}

// meetsThreshold reports whether any issue is at least as severe as the
// fail-on threshold.
func meetsThreshold(issues []review.ResolvedIssue, threshold review.Severity) bool {
	for _, issue := range issues {
		if review.SeverityRank(issue.Severity) >= review.SeverityRank(threshold) {
			return true
		}
	}
	return false
}

func runReviewCmd(cmd *cobra.Command, args []string) error {
	workspace, err := workspaceRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(workspace, buildOverrides())
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}
	failOn, err := parseFailOn(flagFailOn)
	if err != nil {
		exitCode = ExitUsageError
		return err
	}

	log := newLogger(cfg)
	defer log.Sync() //nolint:errcheck

	candidates := args
	if flagChanged {
		if len(args) > 0 {
			exitCode = ExitUsageError
			return fmt.Errorf("--changed and an explicit file list are mutually exclusive")
		}
		candidates, err = gitctx.ChangedFiles(workspace)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
	} else if len(args) == 0 {
		exitCode = ExitUsageError
		return fmt.Errorf("requires at least one file argument (or --changed)")
	}

	include, exclude := patternLists(cfg)
	filter := pathfilter.New(workspace, include, exclude)

	store := diag.NewStore(nil)
	r, err := buildRunner(cfg, workspace, log, store)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	var targets []string
	for _, path := range candidates {
		if !pathfilter.IsTextDocument(path) {
			if !flagChanged {
				fmt.Fprintf(os.Stderr, "skipping %s: not a text document\n", path)
			}
			continue
		}
		if filter.Excluded(path) {
			if !flagChanged {
				fmt.Fprintf(os.Stderr, "skipping %s: excluded by filter\n", path)
			}
			continue
		}
		targets = append(targets, path)
	}
	if len(targets) == 0 {
		if flagChanged {
			fmt.Fprintln(os.Stdout, "No changed text documents to review")
			return nil
		}
		exitCode = ExitUsageError
		return fmt.Errorf("no reviewable documents among the arguments")
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Workers)
	for _, path := range targets {
		path := path
		g.Go(func() error {
			doc, err := document.Load(path)
			if err != nil {
				return err
			}
			return r.ReviewDocument(ctx, doc)
		})
	}
	if err := g.Wait(); err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	sort.Strings(targets)
	report := &output.Report{Version: version}
	failed := false
	for _, path := range targets {
		issues := store.Get(path)
		report.Documents = append(report.Documents, output.DocumentResult{Path: path, Issues: issues})
		if meetsThreshold(issues, failOn) {
			failed = true
		}
	}

	if err := output.WriteReport(report, flagFormat, flagOut); err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	if failed {
		exitCode = ExitFindings
	}
	return nil
}

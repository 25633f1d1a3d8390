package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/diag"
	"github.com/dshills/redline/internal/pathfilter"
	"github.com/dshills/redline/internal/schedule"
	"github.com/dshills/redline/internal/watch"
)

var flagReviewOnStart bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and review documents on save",
	Long: "Watches the workspace for file saves and reviews changed text documents " +
		"through the cooldown-gated scheduler. Runs until interrupted.",
	Args: cobra.NoArgs,
	RunE: runWatchCmd,
}

func init() {
	addReviewFlags(watchCmd)
	watchCmd.Flags().BoolVar(&flagReviewOnStart, "review-on-start", true,
		"Review every eligible document once at startup (overrides autoReviewOnOpen)")
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	workspace, err := workspaceRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(workspace, buildOverrides())
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	log := newLogger(cfg)
	defer log.Sync() //nolint:errcheck

	include, exclude := patternLists(cfg)
	filter := pathfilter.New(workspace, include, exclude)

	store := diag.NewStore(nil)
	r, err := buildRunner(cfg, workspace, log, store)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	sched := schedule.New(schedule.NewThrottleState(), log, schedule.Options{
		Workers:  cfg.Workers,
		Cooldown: time.Duration(cfg.CooldownSeconds) * time.Second,
	})
	defer sched.Stop()

	if !cfg.OnSave() {
		log.Warn("autoReviewOnSave is disabled; save events will be ignored")
	}

	// The startup scan stands in for the editor's on-open trigger; the
	// flag overrides the config in either direction.
	submitOnStart := cfg.OnOpen()
	if cmd.Flags().Changed("review-on-start") {
		submitOnStart = flagReviewOnStart
	}

	w := watch.New(watch.Options{
		Root:          workspace,
		Filter:        filter,
		Scheduler:     sched,
		Runner:        r,
		Log:           log,
		SubmitOnStart: submitOnStart,
		IgnoreSaves:   !cfg.OnSave(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		exitCode = ExitRuntimeError
		return err
	}
	log.Info("watch stopped",
		zap.Int("documentsWithFindings", len(store.Documents())))
	return nil
}

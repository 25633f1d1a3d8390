package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/redline/internal/cache"
	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/diag"
	"github.com/dshills/redline/internal/llm"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/runner"
)

// Shared review flags
var (
	flagModel        string
	flagPort         int
	flagWorkers      int
	flagCooldown     int
	flagInstructions string
	flagInclude      string
	flagExclude      string
	flagWorkspace    string
	flagNoCache      bool
	flagLogLevel     string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name sent to the backend")
	cmd.Flags().IntVar(&flagPort, "port", 0, "Local backend port")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent review workers")
	cmd.Flags().IntVar(&flagCooldown, "cooldown", 0, "Per-document cooldown in seconds")
	cmd.Flags().StringVar(&flagInstructions, "instructions", "", "Custom instructions file appended to the prompt")
	cmd.Flags().StringVar(&flagInclude, "include", "", "Include path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude path globs (comma-separated)")
	cmd.Flags().StringVar(&flagWorkspace, "workspace", "", "Workspace root (default: current directory)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the review response cache")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagPort > 0 {
		m["port"] = fmt.Sprintf("%d", flagPort)
	}
	if flagWorkers > 0 {
		m["workers"] = fmt.Sprintf("%d", flagWorkers)
	}
	if flagCooldown > 0 {
		m["cooldownSeconds"] = fmt.Sprintf("%d", flagCooldown)
	}
	if flagInstructions != "" {
		m["customInstructionFile"] = flagInstructions
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

func workspaceRoot() (string, error) {
	if flagWorkspace != "" {
		return flagWorkspace, nil
	}
	return os.Getwd()
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func patternLists(cfg config.Config) (include, exclude []string) {
	include = cfg.Include
	exclude = cfg.Exclude
	if flagInclude != "" {
		include = splitComma(flagInclude)
	}
	if flagExclude != "" {
		exclude = append(exclude, splitComma(flagExclude)...)
	}
	return include, exclude
}

// buildRunner assembles the review runner from the effective config.
func buildRunner(cfg config.Config, workspace string, log *zap.Logger, sink diag.Sink) (*runner.Runner, error) {
	cacheEnabled := cfg.Cache.On() && !flagNoCache
	c, err := cache.New(cacheEnabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	return &runner.Runner{
		Client:       llm.New(cfg.Model, cfg.Port),
		Sink:         sink,
		Cache:        c,
		Model:        cfg.Model,
		Port:         cfg.Port,
		Instructions: config.CustomInstructions(cfg, workspace),
		Redact:       cfg.RedactSecrets,
		Log:          log,
	}, nil
}

func newLogger(cfg config.Config) *zap.Logger {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

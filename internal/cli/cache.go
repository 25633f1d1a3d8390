package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/cache"
	"github.com/dshills/redline/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the review response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached review responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if err := c.Clear(); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		fmt.Fprintln(os.Stdout, "Cache cleared")
		return nil
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and entry count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if !c.Enabled() {
			fmt.Fprintln(os.Stdout, "Cache: disabled")
			return nil
		}
		entries, err := os.ReadDir(c.Dir())
		if err != nil && !os.IsNotExist(err) {
			exitCode = ExitRuntimeError
			return err
		}
		count := 0
		for _, e := range entries {
			if !e.IsDir() {
				count++
			}
		}
		fmt.Fprintf(os.Stdout, "Cache: %s (%d entries)\n", c.Dir(), count)
		return nil
	},
}

func openCache() (*cache.Cache, error) {
	workspace, err := workspaceRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(workspace, nil)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.On(), cfg.Cache.Dir, cfg.Cache.TTLSeconds)
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage redline configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if _, err := os.Stat(path); err == nil {
			exitCode = ExitUsageError
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := config.Save(config.Default()); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		fmt.Fprintf(os.Stdout, "Created %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Prints the merged configuration: defaults, config file, workspace overlay, environment, and flags.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := workspaceRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(workspace, buildOverrides())
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := workspaceRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(workspace, buildOverrides())
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		val, err := configValue(cfg, args[0])
		if err != nil {
			exitCode = ExitUsageError
			return err
		}
		fmt.Fprintln(os.Stdout, val)
		return nil
	},
}

func configValue(cfg config.Config, key string) (string, error) {
	switch key {
	case "model":
		return cfg.Model, nil
	case "port":
		return fmt.Sprintf("%d", cfg.Port), nil
	case "workers":
		return fmt.Sprintf("%d", cfg.Workers), nil
	case "cooldownSeconds":
		return fmt.Sprintf("%d", cfg.CooldownSeconds), nil
	case "customInstructionFile":
		return cfg.CustomInstructionFile, nil
	case "redactSecrets":
		return fmt.Sprintf("%t", cfg.RedactSecrets), nil
	case "logLevel":
		return cfg.LogLevel, nil
	case "autoReviewOnSave":
		return fmt.Sprintf("%t", cfg.OnSave()), nil
	case "autoReviewOnOpen":
		return fmt.Sprintf("%t", cfg.OnOpen()), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Sets a field in the config file. Keys: model, port, workers, cooldownSeconds, customInstructionFile, redactSecrets, logLevel.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if err := config.SetField(&cfg, args[0], args[1]); err != nil {
			exitCode = ExitUsageError
			return err
		}
		if err := config.Save(cfg); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&flagWorkspace, "workspace", "", "Workspace root (default: current directory)")
	configGetCmd.Flags().StringVar(&flagWorkspace, "workspace", "", "Workspace root (default: current directory)")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

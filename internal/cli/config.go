package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tokentasks/internal/config"
)

// fileConfig is the YAML shape of the optional config file.
type fileConfig struct {
	ServerPort  string `yaml:"server_port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	RedisAddr   string `yaml:"redis_addr"`
}

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and scaffold configuration",
}

// configShowCmd prints the effective server configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.NewConfig()
		effective := fileConfig{
			ServerPort:  cfg.GetServerPort(),
			Environment: cfg.GetEnvironment(),
			LogLevel:    cfg.GetLogLevel(),
			RedisAddr:   cfg.GetRedisAddr(),
		}

		data, err := yaml.Marshal(effective)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		cmd.Print(string(data))
		return nil
	},
}

// configInitCmd writes a starter config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to $HOME/.tokentasks.yaml",
	RunE: func(cmd *cobra.Command, _ []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		path := filepath.Join(home, ".tokentasks.yaml")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		starter := fileConfig{
			ServerPort:  "8080",
			Environment: "development",
			LogLevel:    "info",
		}
		data, err := yaml.Marshal(starter)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		cmd.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

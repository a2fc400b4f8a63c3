// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio"
	"github.com/UriCaBa/initio/pkg/core"
)

var (
	cfgFile  string
	logLevel string
	debug    bool
	config   *core.Config
	logger   *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "initio",
	Short: "Windows setup orchestrator",
	Long: `initio - Windows setup orchestrator

Installs a curated set of applications through winget, keeps track of what
is already installed, and removes preinstalled Store bloatware.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/initio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(deselectCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(debloatCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if debug {
		config.Debug = true
	}
	logger = newLogger(config)
}

func newLogger(cfg *core.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		l.WithField("loglevel", cfg.LogLevel).Warn("Unknown log level, using info")
	}
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	return l
}

// newManager opens the facade with the loaded config and CLI logger.
func newManager() (*initio.Manager, error) {
	mgr, err := initio.NewManager(config, initio.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}
	return mgr, nil
}

// interruptible returns a context cancelled by Ctrl-C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

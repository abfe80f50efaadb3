package cmd

import (
	"context"
	"fmt"
	"os"

	"pitstop/internal/app"
	"pitstop/internal/config"
	"pitstop/internal/logger"

	"github.com/spf13/cobra"
)

// offlineAnnotation marks commands that only need configuration, not a
// fully wired app with credentials.
const offlineAnnotation = "offline"

var (
	configDir string
	logLevel  string

	// activeApp is the app built for the running command, closed by Execute.
	activeApp *app.App
)

var rootCmd = &cobra.Command{
	Use:   "pitstop",
	Short: "PitStop storefront support chatbot",
	Long:  `PitStop answers customer questions about a Shopify store's catalog and policies using a hosted LLM.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	SilenceUsage: true,
	Annotations:  map[string]string{offlineAnnotation: "true"},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsInitialization(cmd) {
			return nil
		}

		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger.Setup(cfg.Log.Level, cfg.Log.Environment, os.Stderr)

		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		if cmd.Annotations[offlineAnnotation] != "true" {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			appInstance, err := app.NewApp(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			activeApp = appInstance
			ctx = context.WithValue(ctx, appKey, appInstance)
		}
		cmd.SetContext(ctx)
		return nil
	},
}

// skipsInitialization reports whether cmd is one of cobra's built-in help or
// shell completion commands, which need neither configuration nor an app.
func skipsInitialization(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

// execute runs the command tree and closes the app whether or not the
// command failed.
func execute(ctx context.Context) error {
	defer func() {
		if activeApp != nil {
			activeApp.Close()
			activeApp = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func Execute() {
	if err := execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const (
	appKey    contextKey = "app"
	configKey contextKey = "config"
)

// GetAppFromContext retrieves the app instance built by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

// GetConfigFromContext retrieves the loaded configuration.
func GetConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding config.yaml and .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
}

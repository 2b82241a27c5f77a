package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"termchat/app"
	"termchat/config"
	"termchat/log"
)

var (
	version     = "0.3.0"
	pluginFlags []string
	debugFlag   bool
	noColorFlag bool

	rootCmd = &cobra.Command{
		Use:   "termchat",
		Short: "termchat - a terminal chat client extensible with Lua plugins",
		Long: `termchat is a terminal chat client. Lua plugins add commands,
timed tasks, windows and tab completion.

Load a plugin for one session with --plugin, or list it under "plugins" in
the config file to load it on every start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			logCfg := cfg.LogConfig()
			if debugFlag {
				logCfg.Debug = true
			}
			log.InitializeWithConfig(logCfg)
			defer log.Close()

			if noColorFlag {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			configPath, err := config.GetConfigPath()
			if err != nil {
				log.WarningLog.Printf("config changes will not be saved: %v", err)
				configPath = ""
			}

			return app.Run(cmd.Context(), app.Options{
				Config:     cfg,
				ConfigPath: configPath,
				Scripts:    pluginFlags,
			})
		},
	}

	resetConfigCmd = &cobra.Command{
		Use:   "reset-config",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to reset config: %w", err)
			}
			path, _ := config.GetConfigPath()
			fmt.Printf("Configuration reset to defaults: %s\n", path)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of termchat",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("termchat version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringArrayVarP(&pluginFlags, "plugin", "p", nil, "Lua plugin script to load (repeatable)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Write debug output to the log file")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colours")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

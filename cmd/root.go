package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"setup-lint/internal/bootstrap"
	"setup-lint/internal/config"
	"setup-lint/internal/installer"
	"setup-lint/internal/logger"
	"setup-lint/internal/progress"
)

// Command-line flags. Only --yarn changes what gets installed; the rest
// control where the profile comes from and how much is actually done.
var (
	debug       bool
	useYarn     bool
	configPath  string
	dryRun      bool
	skipInstall bool
)

// rootCmd installs the lint/format dev dependencies and merges their
// configuration into the nearest package.json.
var rootCmd = &cobra.Command{
	Use:   "setup-lint",
	Short: "Install eslint and prettier and configure them in package.json",
	Long: `setup-lint installs eslint, prettier and a shared eslint config as
development dependencies, then writes the "eslintConfig" and "prettier"
sections into the nearest package.json.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun runs before the command; it sets up logging.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := config.LoadProfile(configPath)
		if err != nil {
			return err
		}

		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		opts := bootstrap.Options{
			WorkDir:     wd,
			Manager:     installer.Select(useYarn),
			Profile:     profile,
			Installer:   installer.ExecInstaller{},
			Progress:    progress.New("Installing devDependencies", os.Stdout),
			SkipInstall: skipInstall,
		}
		if dryRun {
			opts.Installer = installer.DryRunInstaller{Out: cmd.ErrOrStderr()}
			opts.Progress = progress.Nop{}
			opts.Output = cmd.OutOrStdout()
		}

		res, err := bootstrap.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		logger.Debug("[DEBUG] Updated %s (installed: %t, written: %t)\n", res.ManifestPath, res.Installed, res.Written)
		if !dryRun {
			logger.Success("\nDone!")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&useYarn, "yarn", false, "Install with yarn instead of npm")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a profile YAML file (defaults to the built-in profile)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the merged package.json instead of installing and writing")
	rootCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Only merge the configuration, do not install dependencies")
}

// Execute runs the root command. Any failure is printed in red and the
// process exits with status 1; an interrupt cancels a running install.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		if interrupted {
			logger.Warn("[WARN] Interrupted\n")
		}
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

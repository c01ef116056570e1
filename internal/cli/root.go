// Package cli provides the niptreport command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"niptreport/internal/config"
	"niptreport/internal/log"
	"niptreport/internal/report"
)

// Version set at build time
var Version = "0.1.0"

// app state shared by subcommands, filled in PersistentPreRunE
type app struct {
	cfg        *config.AppConfig
	info       config.LoadConfigInfo
	logger     *log.Logger
	sourcePath string
}

// NewRootCmd creates the root command; running it without a subcommand serves the dashboard
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "niptreport",
		Short: "BRIA NIPT executive report",
		Long: `niptreport reads the monthly NIPT cost workbook and presents KPI tiles,
interactive charts and an executive summary, either as a local web dashboard
or as a terminal report.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config-dir", "", "directory holding config.toml (default: executable directory)")
	flags.String("data-dir", "", "directory holding the source workbook")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	serveCmd := newServeCommand(a)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newSummaryCommand(a))
	rootCmd.AddCommand(newConfigCommand())

	// bare invocation serves, with serve's flags available on the root
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if dir, _ := flags.GetString("config-dir"); dir != "" {
		cfg, info, err = config.LoadFromDir(dir)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return err
	}

	applyFlags(cfg, &info, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.info = info
	a.sourcePath = cfg.SourcePath(info.BaseDir)
	a.logger = log.New(log.Config{
		Level:     log.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		Component: log.ComponentCLI,
		Output:    cmd.ErrOrStderr(),
	})
	log.SetDefault(a.logger)

	if info.Path != "" {
		a.logger.Debug("config loaded", log.FieldFile, info.Path)
	}
	return nil
}

// applyFlags overrides configuration with explicitly set flags
func applyFlags(cfg *config.AppConfig, info *config.LoadConfigInfo, flags *pflag.FlagSet) {
	if flags.Changed("data-dir") {
		cfg.Data.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		cfg.Server.Port, _ = flags.GetInt("port")
		info.PortSpecified = true
	}
	if f := flags.Lookup("dev"); f != nil && f.Changed {
		cfg.Server.DevMode, _ = flags.GetBool("dev")
	}
	if f := flags.Lookup("no-browser"); f != nil && f.Changed {
		if v, _ := flags.GetBool("no-browser"); v {
			cfg.Server.OpenBrowser = false
		}
	}
	if f := flags.Lookup("no-watch"); f != nil && f.Changed {
		if v, _ := flags.GetBool("no-watch"); v {
			cfg.Data.Watch = false
		}
	}
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	return execute(NewRootCmd(), os.Stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	// halts were already printed by the command
	var halt *report.Halt
	if !errors.As(err, &halt) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

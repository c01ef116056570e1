package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"niptreport/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage config.toml",
		Args:  cobra.NoArgs,
		// an unreadable config.toml must not block rewriting it
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml",
		Long: `Write config.toml with default settings into the config directory
(--config-dir, or the executable's directory). An existing file is kept
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			dir, _ := flags.GetString("config-dir")
			if dir == "" {
				exeDir, err := config.GetExeDir()
				if err != nil {
					return fmt.Errorf("failed to locate executable: %w", err)
				}
				dir = exeDir
			}

			cfg := config.DefaultConfig()
			applyFlags(cfg, &config.LoadConfigInfo{}, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			force, _ := flags.GetBool("force")
			path, err := config.SaveToDir(cfg, dir, force)
			if err != nil {
				return err
			}

			st := newStyles()
			fmt.Fprintln(cmd.OutOrStdout(), st.Success.Render("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config.toml")
	return cmd
}

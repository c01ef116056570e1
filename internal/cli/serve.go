package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"niptreport/internal/importer"
	"niptreport/internal/log"
	"niptreport/internal/report"
	"niptreport/internal/server"
	"niptreport/internal/util"
)

// portAttempts ports tried above the configured one when it was not set explicitly
const portAttempts = 20

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard on localhost",
		Long: `Serve the interactive dashboard and executive summary on localhost.

The workbook is parsed on first request and cached until the file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd)
		},
	}

	cmd.Flags().Int("port", 0, "port to listen on (overrides config.toml)")
	cmd.Flags().Bool("dev", false, "development mode (gin debug logging, no browser)")
	cmd.Flags().Bool("no-browser", false, "do not open a browser")
	cmd.Flags().Bool("no-watch", false, "do not watch the workbook for changes")
	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	st := newStyles()
	fmt.Fprintln(out, st.Title.Render(report.Title(a.cfg.Report.Year)))

	dataDir := a.cfg.DataDir(a.info.BaseDir)
	if _, err := os.Stat(dataDir); err != nil {
		fmt.Fprintf(out, "Data directory: %s (missing)\n", dataDir)
	} else {
		fmt.Fprintf(out, "Data directory: %s\n", dataDir)
	}

	cache := importer.NewCache(a.sourcePath, importer.NewLoader(a.logger), a.logger)
	table, err := cache.Get()
	if halt := report.CheckTable(table, err, a.sourcePath); halt != nil {
		fmt.Fprintln(out, st.Error.Render(halt.Message))
		if halt.Hint != "" {
			fmt.Fprintln(out, st.Hint.Render(halt.Hint))
		}
	}

	port := a.cfg.Server.Port
	if !a.info.PortSpecified {
		port = util.FindAvailablePort(port, portAttempts)
	}
	ln, err := net.Listen("tcp", server.Addr(port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	srv, err := server.NewServer(a.cfg, cache, a.sourcePath, a.logger)
	if err != nil {
		_ = ln.Close()
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Serve(egctx, ln)
	})

	if a.cfg.Data.Watch {
		watcher, err := importer.NewWatcher(cache, a.logger)
		if err != nil {
			a.logger.Warn("file watcher disabled", log.FieldError, err)
		} else {
			eg.Go(func() error {
				return watcher.Run(egctx)
			})
		}
	}

	url := "http://localhost:" + strconv.Itoa(port)
	if a.cfg.Server.OpenBrowser && !a.cfg.Server.DevMode {
		fmt.Fprintf(out, "Opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Fprintf(out, "Could not open a browser, visit %s\n", url)
		}
	} else {
		fmt.Fprintf(out, "Dashboard: %s\n", url)
	}
	fmt.Fprintln(out, st.Muted.Render("Press Ctrl+C to stop."))

	return eg.Wait()
}

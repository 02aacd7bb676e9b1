package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/server"
	"github.com/DevSymphony/forge/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"dashboard", "dash"},
	Short:   "Start the web dashboard",
	Long: `Start a local web server with the scene editor.

The dashboard provides:
  - Suggestions with diff, impact cards and pattern warnings
  - Undo/redo history per browser session
  - A live preview feed over websocket
  - Lessons and example scenes`,
	RunE: runServe,
}

var (
	servePort      int
	serveNoBrowser bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", server.DefaultPort, "Port to run the dashboard on")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "do not open a browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.providerErr != nil {
		ui.PrintWarn("Text generation disabled: " + a.providerErr.Error())
	}

	port := servePort
	if !cmd.Flags().Changed("port") && a.cfg.Server.Port != 0 {
		port = a.cfg.Server.Port
	}
	openBrowser := !serveNoBrowser
	if a.cfg.Server.OpenBrowser != nil && !cmd.Flags().Changed("no-browser") {
		openBrowser = *a.cfg.Server.OpenBrowser
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(a.assistant, server.Options{
		Port:         port,
		OpenBrowser:  openBrowser,
		HistoryLimit: a.cfg.Server.HistoryLimit,
		MaxSessions:  a.cfg.Server.MaxSessions,
		Logger:       a.log,
	})
	return srv.Start(ctx)
}

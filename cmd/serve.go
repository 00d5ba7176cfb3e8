// cmd/serve.go
package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piclens/piclens/internal/config"
	"github.com/piclens/piclens/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a directory's image listing over HTTP (dev tool)",
	Long: `Runs the development image server: GET /api/images returns the
recursive image listing of the served directory as JSON, and
GET /api/images/file/{path} returns the raw bytes. Point the
browser at it with 'piclens --http http://<addr>'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandHome(args[0])
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ServeAddr
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(dir, cfg.MaxDepth, log).Start(ctx, addr)
}

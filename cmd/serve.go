package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/web"
	"github.com/spf13/cobra"
)

var (
	svListenAddr string
	svJSONLogs   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI for uploading and cleaning files",
	Long: `Serve starts a local web server with an upload form. Each upload is
cleaned with the configured pipeline and gets a results page with
scores, the action log, the narrative, and download links. Runs are
held in memory only and vanish when the process exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		if cmd.Flags().Changed("listen") && svListenAddr != "" {
			c.ListenAddr = svListenAddr
		}
		if svJSONLogs {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !svJSONLogs {
			fmt.Printf("✓ Smart Data Cleaner web UI on http://%s (Ctrl-C to stop)\n", c.ListenAddr)
		}
		return web.New(c).ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&svListenAddr, "listen", "", "listen address (overrides config listen_addr)")
	serveCmd.Flags().BoolVar(&svJSONLogs, "json-logs", false, "emit structured JSON logs")
}

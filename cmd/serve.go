package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/server"
	"github.com/spf13/cobra"
)

var serveOpts struct {
	addr     string
	count    int
	pageSize int
	latency  time.Duration
	seed     int64
}

// serveCmd runs a demo incidents API to point the TUI at
var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Run a demo incidents API",
	Long:         `Serve generated incidents over GET /incidents?page=N, returning X-Total-Count with every page.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveOpts.count < 0 {
			return fmt.Errorf("serveCmd: --count must not be negative, got %d", serveOpts.count)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		list := server.DemoIncidents(serveOpts.count, serveOpts.seed)
		s := server.New(list,
			server.WithPageSize(serveOpts.pageSize),
			server.WithLatency(serveOpts.latency),
		)

		log.Info("serveCmd", "addr", serveOpts.addr, "count", len(list), "seed", serveOpts.seed)
		return s.Run(ctx, serveOpts.addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveOpts.addr, "addr", "a", "localhost:3333", "Address to listen on")
	serveCmd.Flags().IntVarP(&serveOpts.count, "count", "n", 42, "Number of incidents to generate")
	serveCmd.Flags().IntVarP(&serveOpts.pageSize, "page-size", "p", server.DefaultPageSize, "Incidents per page")
	serveCmd.Flags().DurationVar(&serveOpts.latency, "latency", 0, "Delay added to every response")
	serveCmd.Flags().Int64Var(&serveOpts.seed, "seed", 1, "Seed for the generated incidents")
}

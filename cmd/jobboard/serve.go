package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
)

var (
	servePort       int
	serveSessionTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the form API server",
	Long:  `Start an HTTP server that keeps job-posting forms in sessions and submits them to the job service.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", server.DefaultSessionTTL, "Drop form sessions left untouched this long")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	projector, err := newProjector()
	if err != nil {
		return err
	}
	template, err := templateSource("")
	if err != nil {
		return err
	}

	port := settings.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:       port,
		Jobs:       client,
		Template:   template,
		Projector:  projector,
		SessionTTL: serveSessionTTL,
		RateLimit:  ratelimit.Settings(settings.RateLimitRPS, settings.RateLimitBurst, settings.RateLimitDisable, settings.RateLimitWhitelist),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

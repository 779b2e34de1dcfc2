package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"aria/internal/delivery/server"
	"aria/internal/logging"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the proactive monitor loops",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			return runServe(application)
		},
	}
}

func runServe(application *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.speaker.Start()
	defer application.speaker.Stop()

	application.assistant.StartMonitor()
	defer application.assistant.StopMonitor()

	srv := server.New(
		application.cfg.Server,
		application.assistant,
		application.center,
		application.metrics,
		logging.NewComponentLogger("server"),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	application.logger.Info("aria serving on %s", application.cfg.Server.Addr)
	return g.Wait()
}

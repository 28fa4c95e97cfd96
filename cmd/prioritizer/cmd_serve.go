package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"feature-prioritizer/internal/bootstrap"
	"feature-prioritizer/internal/server"
	"feature-prioritizer/internal/tracer"

	"github.com/spf13/cobra"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.loadConfig()
			if port != "" {
				cfg.App.Port = port
			}

			shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled)
			defer shutdownTracer(context.Background())

			container, err := bootstrap.NewContainer(cfg, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer container.Close()

			if container.ConsumerService != nil {
				if err := container.ConsumerService.Consume(cmd.Context()); err != nil {
					return err
				}
			}
			container.SessionService.Restore(cmd.Context())

			srv := server.New(cfg, container)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = srv.Shutdown()
			}()
			return srv.Run()
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: APP_PORT)")
	return cmd
}

// Command prioritizer ranks product features with RICE or MoSCoW from the
// terminal. The collection persists between runs in the configured store.
package main

import (
	"context"
	"fmt"
	"os"

	"feature-prioritizer/internal/bootstrap"
	"feature-prioritizer/internal/config"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/service"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "prioritizer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	store     string
	dataDir   string
	logFile   string
	framework string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Prioritize product features with RICE or MoSCoW",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.store, "store", "", "Storage driver (memory, file, redis, postgres); defaults to file")
	cmd.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "Directory for the file store")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Log file path")
	cmd.PersistentFlags().StringVarP(&g.framework, "framework", "f", "rice", "Framework (rice or moscow)")

	cmd.AddCommand(
		newAddCmd(g),
		newListCmd(g),
		newDeleteCmd(g),
		newClearCmd(g),
		newSampleCmd(g),
		newTemplateCmd(g),
		newImportCmd(g),
		newExportCmd(g),
		newBackupCmd(g),
		newRestoreCmd(g),
		newServeCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// loadConfig applies flag overrides on top of env configuration.
func (g *globalFlags) loadConfig() *config.Config {
	cfg := config.Load()
	if _, set := os.LookupEnv("STORAGE_DRIVER"); !set {
		cfg.Storage.Driver = config.StorageFile
	}
	if g.store != "" {
		cfg.Storage.Driver = g.store
	}
	if g.dataDir != "" {
		cfg.Storage.FileDir = g.dataDir
	}
	if g.logFile != "" {
		cfg.App.LogFilePath = g.logFile
	}
	return cfg
}

// openSession restores the persisted collection. Logs go to the log file only.
func (g *globalFlags) openSession(ctx context.Context) (service.ISessionService, func(), error) {
	cfg := g.loadConfig()
	container, err := bootstrap.NewContainer(cfg, bootstrap.Options{
		Logger:        logger.NewIsolatedLogger(cfg.App.LogFilePath),
		DisableEvents: true,
	})
	if err != nil {
		return nil, func() {}, err
	}
	container.SessionService.Restore(ctx)
	return container.SessionService, container.Close, nil
}

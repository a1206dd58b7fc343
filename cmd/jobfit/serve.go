package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GetFractional/Job-Hunter-sub002/internal/candidates"
	"github.com/GetFractional/Job-Hunter-sub002/internal/pipeline"
	"github.com/GetFractional/Job-Hunter-sub002/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analysis pipeline and the candidate review loop.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := candidates.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open candidate store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	manager := candidates.NewManager(store)
	analyzer, err := pipeline.New(cfg, manager, log)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, analyzer, manager, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

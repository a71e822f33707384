// Command vigie runs the public status page API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigie-status/vigie/internal/app"
	"github.com/vigie-status/vigie/internal/config"
	"github.com/vigie-status/vigie/internal/identity"
	"github.com/vigie-status/vigie/internal/version"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to YAML config file (optional, VIGIE_* env vars apply on top)")
		seed         = flag.Bool("seed", false, "seed the demonstration dataset on startup")
		hashPassword = flag.String("hash-password", "", "print the bcrypt hash of the given password and exit")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("vigie %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildDate)
		return
	}

	if *hashPassword != "" {
		hash, err := identity.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash password:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if err := run(*configPath, *seed); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}

	if seed {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := application.Seed(seedCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("seed fixtures: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
